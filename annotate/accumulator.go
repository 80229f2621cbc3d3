// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotate

import (
	"strconv"

	"github.com/kortschak/polycistron/record"
)

// Sink receives the output of an Accumulator in stream order.
type Sink interface {
	// Pass is called with every record added
	// to the Accumulator.
	Pass(*record.Record) error

	// Emit is called with each finalized
	// polycistron.
	Emit(*Polycistron) error
}

// group is an open polycistron.
type group struct {
	seqName string
	typ     string
	strand  string

	start, end int
	members    []string

	score, frame string
}

func newGroup(r *record.Record) *group {
	return &group{
		seqName: r.SeqName,
		typ:     r.Type(),
		strand:  r.Strand,
		start:   r.FeatStart,
		end:     r.FeatEnd,
		members: []string{r.ID},
		score:   r.Score,
		frame:   r.Frame,
	}
}

// continuedBy returns whether r extends the group.
func (g *group) continuedBy(r *record.Record) bool {
	return r.SeqName == g.seqName && r.Type() == g.typ && r.Strand == g.strand
}

// Accumulator groups a coordinate sorted stream of records into
// polycistrons.
type Accumulator struct {
	counts *Counters
	seqs   *Sequences
	sink   Sink
	open   *group
}

// NewAccumulator returns an Accumulator that numbers polycistrons
// using counts and sends its output to sink. Polycistrons are located
// on sequences taken from seqs, which may be nil.
func NewAccumulator(counts *Counters, seqs *Sequences, sink Sink) *Accumulator {
	if seqs == nil {
		seqs = &Sequences{}
	}
	return &Accumulator{counts: counts, seqs: seqs, sink: sink}
}

// Add adds the next record in sorted order. The record is passed to
// the sink and, if it closes the currently open group, the finalized
// polycistron is emitted after it.
func (a *Accumulator) Add(r *record.Record) error {
	err := a.sink.Pass(r)
	if err != nil {
		return err
	}
	if !r.IsDesired() {
		return nil
	}
	if a.open == nil {
		a.open = newGroup(r)
		return nil
	}
	if !a.open.continuedBy(r) {
		err = a.finalize()
		a.open = newGroup(r)
		return err
	}

	// The sorted stream guarantees that a later record's
	// end supersedes, so this is not a max.
	a.open.end = r.FeatEnd
	a.open.members = append(a.open.members, r.ID)
	return nil
}

// Close finalizes any open group. It must be called at the end of
// the record stream.
func (a *Accumulator) Close() error {
	if a.open == nil {
		return nil
	}
	err := a.finalize()
	a.open = nil
	return err
}

func (a *Accumulator) finalize() error {
	g := a.open
	p := &Polycistron{
		ID:        TypePrefix + g.typ + "_" + strconv.Itoa(a.counts.next(g.typ)),
		Chr:       a.seqs.Get(g.seqName),
		Type:      g.typ,
		Strand:    g.strand,
		FeatStart: g.start,
		FeatEnd:   g.end,
		Members:   g.members,
		Score:     g.score,
		Frame:     g.frame,
	}
	return a.sink.Emit(p)
}
