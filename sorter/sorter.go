// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sorter provides coordinate ordering of GFF records.
//
// Records are ordered by sequence name, then start, then end. The
// sequence name is compared byte-wise and the coordinates numerically.
// All Sorters are stable.
package sorter

import (
	"sort"

	"github.com/kortschak/polycistron/record"
)

// Sorter orders GFF records by (sequence name, start, end).
type Sorter interface {
	Sort([]*record.Record) ([]*record.Record, error)
}

// InMemory is an in-process Sorter.
type InMemory struct{}

// Sort sorts recs in place and returns it.
func (InMemory) Sort(recs []*record.Record) ([]*record.Record, error) {
	sort.SliceStable(recs, func(i, j int) bool { return Less(recs[i], recs[j]) })
	return recs, nil
}

// Less returns whether a sorts before b.
func Less(a, b *record.Record) bool {
	if a.SeqName != b.SeqName {
		return a.SeqName < b.SeqName
	}
	if a.FeatStart != b.FeatStart {
		return a.FeatStart < b.FeatStart
	}
	return a.FeatEnd < b.FeatEnd
}

// IsSorted returns whether recs are in coordinate order.
func IsSorted(recs []*record.Record) bool {
	return sort.SliceIsSorted(recs, func(i, j int) bool { return Less(recs[i], recs[j]) })
}
