// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package annotate annotates polycistronic transcription units in
// trypanosomatid GFF annotations.
//
// A polycistron is a run of adjacent features of the same type on the
// same sequence and strand in coordinate sorted order. Each run is
// summarized by a synthetic GFF record of type Polycistron-<type> that
// lists the IDs of its members.
package annotate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/feat/genome"

	"github.com/kortschak/polycistron/record"
)

const (
	// Source is the source column value of synthetic records.
	Source = "annotatePolycistron"

	// TypePrefix prefixes the member feature type to give the
	// synthetic record's feature type.
	TypePrefix = "Polycistron-"
)

// ErrNotPolycistron is returned by ParsePolycistron for records that
// were not produced by the annotator.
var ErrNotPolycistron = errors.New("annotate: not a polycistron record")

// Counters holds the number of polycistrons annotated for each feature type.
type Counters struct {
	CDS    int
	NcRNA  int
	RRNA   int
	SnoRNA int
	TRNA   int
}

func (c *Counters) counter(typ string) *int {
	switch typ {
	case "CDS":
		return &c.CDS
	case "ncRNA":
		return &c.NcRNA
	case "rRNA":
		return &c.RRNA
	case "snoRNA":
		return &c.SnoRNA
	case "tRNA":
		return &c.TRNA
	default:
		return nil
	}
}

// next increments the count for typ and returns the new value.
func (c *Counters) next(typ string) int {
	n := c.counter(typ)
	if n == nil {
		panic(fmt.Sprintf("annotate: no counter for feature type %q", typ))
	}
	*n++
	return *n
}

// Count returns the number of polycistrons of type typ.
func (c *Counters) Count(typ string) int {
	n := c.counter(typ)
	if n == nil {
		return 0
	}
	return *n
}

// Total returns the total number of polycistrons.
func (c *Counters) Total() int {
	return c.CDS + c.NcRNA + c.RRNA + c.SnoRNA + c.TRNA
}

// Polycistron is a finalized group of adjacent features. It satisfies
// the feat.Feature and feat.Orienter interfaces.
type Polycistron struct {
	// ID is the ID of the synthetic record,
	// Polycistron-<type>_<n>.
	ID string

	Chr    *genome.Chromosome
	Type   string // Member feature type.
	Strand string

	// FeatStart and FeatEnd are zero-based
	// half-open coordinates.
	FeatStart, FeatEnd int

	// Members holds member IDs in stream order.
	Members []string

	// Score and Frame are the raw column
	// values of the first member.
	Score, Frame string
}

func (p *Polycistron) Start() int          { return p.FeatStart }
func (p *Polycistron) End() int            { return p.FeatEnd }
func (p *Polycistron) Len() int            { return p.FeatEnd - p.FeatStart }
func (p *Polycistron) Name() string        { return p.ID }
func (p *Polycistron) Description() string { return TypePrefix + p.Type }

// Location returns the sequence holding p.
func (p *Polycistron) Location() feat.Feature {
	if p.Chr == nil {
		return nil
	}
	return p.Chr
}

func (p *Polycistron) Orientation() feat.Orientation {
	switch p.Strand {
	case "+":
		return feat.Forward
	case "-":
		return feat.Reverse
	default:
		return feat.NotOriented
	}
}

// SeqName returns the name of the sequence holding p.
func (p *Polycistron) SeqName() string {
	if p.Chr == nil {
		return ""
	}
	return p.Chr.Chr
}

// Attributes returns the GFF3 attribute column for p.
func (p *Polycistron) Attributes() string {
	return fmt.Sprintf("ID=%s;contentCount=%d;content=%s", p.ID, len(p.Members), strings.Join(p.Members, ","))
}

// String returns the GFF line for p using one-based closed coordinates.
func (p *Polycistron) String() string {
	return strings.Join([]string{
		p.SeqName(),
		Source,
		p.Description(),
		strconv.Itoa(feat.ZeroToOne(p.FeatStart)),
		strconv.Itoa(p.FeatEnd),
		p.Score,
		p.Strand,
		p.Frame,
		p.Attributes(),
	}, "\t")
}

// Record returns the synthetic GFF record for p.
func (p *Polycistron) Record() (*record.Record, error) {
	return record.Parse(p.String())
}

// ParsePolycistron returns the Polycistron described by a synthetic
// record read back from an annotated file. The polycistron's sequence
// is taken from seqs, which may be nil.
func ParsePolycistron(r *record.Record, seqs *Sequences) (*Polycistron, error) {
	if r.Source != Source || !strings.HasPrefix(r.Type(), TypePrefix) {
		return nil, ErrNotPolycistron
	}
	if seqs == nil {
		seqs = &Sequences{}
	}
	p := &Polycistron{
		ID:        r.ID,
		Chr:       seqs.Get(r.SeqName),
		Type:      strings.TrimPrefix(r.Type(), TypePrefix),
		Strand:    r.Strand,
		FeatStart: r.FeatStart,
		FeatEnd:   r.FeatEnd,
		Score:     r.Score,
		Frame:     r.Frame,
	}
	content := r.FeatAttributes.Get("content")
	if content != "" {
		p.Members = strings.Split(content, ",")
	}
	count := r.FeatAttributes.Get("contentCount")
	if count != "" {
		n, err := strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("annotate: bad contentCount for %s: %w", p.ID, err)
		}
		if n != len(p.Members) {
			return nil, fmt.Errorf("annotate: contentCount mismatch for %s: %d != %d", p.ID, n, len(p.Members))
		}
	}
	return p, nil
}
