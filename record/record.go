// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record provides a line-preserving GFF3 feature record.
//
// Records carry the raw text of the line they were parsed from so that
// they can be written back out verbatim, along with a biogo gff.Feature
// holding the parsed fields.
package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
)

var (
	ErrTooFewFields  = errors.New("record: too few fields")
	ErrBadCoordinate = errors.New("record: bad coordinate")
	ErrEmptyField    = errors.New("record: empty required field")
	ErrMissingID     = errors.New("record: missing ID attribute")
)

// MalformedRecordError is returned when a feature line cannot be parsed.
type MalformedRecordError struct {
	Line int // 1-based line number, zero if unknown.
	Text string
	Err  error
}

func (e *MalformedRecordError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("malformed record %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("malformed record at line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// desired is the set of feature types that can form polycistrons.
var desired = map[string]bool{
	"CDS":    true,
	"ncRNA":  true,
	"rRNA":   true,
	"snoRNA": true,
	"tRNA":   true,
}

// IsDesired returns whether typ is one of CDS, ncRNA, rRNA, snoRNA or tRNA.
func IsDesired(typ string) bool { return desired[typ] }

const (
	seqNameField = iota
	sourceField
	featureField
	startField
	endField
	scoreField
	strandField
	frameField
	attributeField

	numFields
)

// Record is a single GFF feature line.
type Record struct {
	gff.Feature

	// Line is the unmodified text of the line.
	Line string

	// Score, Strand, Frame and Attributes hold the
	// raw text of the corresponding columns.
	Score      string
	Strand     string
	Frame      string
	Attributes string

	// ID is the value of the ID attribute.
	ID string
}

// IsDesired returns whether the record's feature type can form a polycistron.
func (r *Record) IsDesired() bool { return IsDesired(r.Feature.Feature) }

// Type returns the feature type of the record.
func (r *Record) Type() string { return r.Feature.Feature }

// Parse returns a Record parsed from a tab-delimited GFF line. The
// line must not include the newline, but a trailing carriage return
// is ignored for parsing and retained in the record's Line.
func Parse(line string) (*Record, error) {
	fields := strings.Split(strings.TrimSuffix(line, "\r"), "\t")
	if len(fields) < numFields {
		return nil, &MalformedRecordError{Text: line, Err: ErrTooFewFields}
	}
	if fields[seqNameField] == "" || fields[strandField] == "" {
		return nil, &MalformedRecordError{Text: line, Err: ErrEmptyField}
	}
	start, err := strconv.Atoi(fields[startField])
	if err != nil {
		return nil, &MalformedRecordError{Text: line, Err: fmt.Errorf("%w: start: %v", ErrBadCoordinate, err)}
	}
	end, err := strconv.Atoi(fields[endField])
	if err != nil {
		return nil, &MalformedRecordError{Text: line, Err: fmt.Errorf("%w: end: %v", ErrBadCoordinate, err)}
	}
	if start < 1 || end < start {
		return nil, &MalformedRecordError{Text: line, Err: fmt.Errorf("%w: invalid range [%d,%d]", ErrBadCoordinate, start, end)}
	}

	attrs := ParseAttributes(fields[attributeField])
	r := &Record{
		Feature: gff.Feature{
			SeqName:        fields[seqNameField],
			Source:         fields[sourceField],
			Feature:        fields[featureField],
			FeatStart:      feat.OneToZero(start),
			FeatEnd:        end,
			FeatScore:      score(fields[scoreField]),
			FeatStrand:     strand(fields[strandField]),
			FeatFrame:      frame(fields[frameField]),
			FeatAttributes: attrs,
		},
		Line:       line,
		Score:      fields[scoreField],
		Strand:     fields[strandField],
		Frame:      fields[frameField],
		Attributes: fields[attributeField],
		ID:         attrs.Get("ID"),
	}
	if r.ID == "" && r.IsDesired() {
		return nil, &MalformedRecordError{Text: line, Err: ErrMissingID}
	}
	return r, nil
}

// ParseAttributes returns the key=value pairs held in a GFF3 attribute
// column. Pairs are separated by semicolons and a pair without an equals
// sign is returned as a tag with an empty value.
func ParseAttributes(s string) gff.Attributes {
	var attrs gff.Attributes
	for _, f := range strings.Split(s, ";") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		i := strings.Index(f, "=")
		if i < 0 {
			attrs = append(attrs, gff.Attribute{Tag: f})
			continue
		}
		attrs = append(attrs, gff.Attribute{Tag: f[:i], Value: f[i+1:]})
	}
	return attrs
}

func score(s string) *float64 {
	if s == "." {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func strand(s string) seq.Strand {
	switch s {
	case "+":
		return seq.Plus
	case "-":
		return seq.Minus
	default:
		return seq.None
	}
}

func frame(s string) gff.Frame {
	switch s {
	case "0", "1", "2":
		return gff.Frame(s[0] - '0')
	default:
		return gff.NoFrame
	}
}
