// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotate

import (
	"fmt"
	"io"
	"sort"

	"github.com/biogo/store/interval"

	"github.com/kortschak/polycistron/record"
)

// Index provides lookup of polycistrons by location and by member ID.
type Index struct {
	trees  map[string]*interval.IntTree
	member map[string]*Polycistron
}

// NewIndex returns an Index holding the polycistrons in ps.
func NewIndex(ps []*Polycistron) (*Index, error) {
	idx := &Index{
		trees:  make(map[string]*interval.IntTree),
		member: make(map[string]*Polycistron),
	}
	for i, p := range ps {
		t, ok := idx.trees[p.SeqName()]
		if !ok {
			t = &interval.IntTree{}
			idx.trees[p.SeqName()] = t
		}
		err := t.Insert(polyInterval{Polycistron: p, id: uintptr(i)}, true)
		if err != nil {
			return nil, fmt.Errorf("annotate: failed to index %s: %w", p.ID, err)
		}
		for _, m := range p.Members {
			idx.member[m] = p
		}
	}
	for _, t := range idx.trees {
		t.AdjustRanges()
	}
	return idx, nil
}

// ReadIndex returns an Index of the polycistron records in the
// annotated GFF file read from r. Other records are ignored.
func ReadIndex(r io.Reader) (*Index, error) {
	f, err := record.Read(r)
	if err != nil {
		return nil, err
	}
	seqs := NewSequences(f.Header)
	var ps []*Polycistron
	for _, rec := range f.Body {
		p, err := ParsePolycistron(rec, seqs)
		if err == ErrNotPolycistron {
			continue
		}
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return NewIndex(ps)
}

// Overlapping returns the polycistrons on seqName that overlap the
// zero-based half-open interval [start, end), ordered by start.
func (idx *Index) Overlapping(seqName string, start, end int) []*Polycistron {
	t, ok := idx.trees[seqName]
	if !ok {
		return nil
	}
	hits := t.Get(polyInterval{Polycistron: &Polycistron{FeatStart: start, FeatEnd: end}})
	ps := make([]*Polycistron, len(hits))
	for i, h := range hits {
		ps[i] = h.(polyInterval).Polycistron
	}
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Start() != ps[j].Start() {
			return ps[i].Start() < ps[j].Start()
		}
		return ps[i].End() < ps[j].End()
	})
	return ps
}

// Containing returns the polycistron that has the feature id as a
// member.
func (idx *Index) Containing(id string) (*Polycistron, bool) {
	p, ok := idx.member[id]
	return p, ok
}

// polyInterval adds an interval.IntTree identity to a polycistron.
type polyInterval struct {
	*Polycistron
	id uintptr
}

func (i polyInterval) ID() uintptr { return i.id }
func (i polyInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.Start(), End: i.End()}
}
func (i polyInterval) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return i.End() > b.Start && i.Start() < b.End
}
