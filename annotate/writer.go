// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotate

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kortschak/polycistron/record"
	"github.com/kortschak/polycistron/sorter"
)

// Writer is a Sink that collects the annotated stream and writes it
// as a coordinate sorted GFF file.
type Writer struct {
	header []string
	body   []*record.Record

	emitted []*Polycistron
}

// NewWriter returns a Writer that will write header before the
// sorted body.
func NewWriter(header []string) *Writer {
	return &Writer{header: header}
}

// Pass appends r to the body.
func (w *Writer) Pass(r *record.Record) error {
	w.body = append(w.body, r)
	return nil
}

// Emit appends the synthetic record for p to the body.
func (w *Writer) Emit(p *Polycistron) error {
	r, err := p.Record()
	if err != nil {
		return err
	}
	w.body = append(w.body, r)
	w.emitted = append(w.emitted, p)
	return nil
}

// Polycistrons returns the polycistrons emitted to w.
func (w *Writer) Polycistrons() []*Polycistron { return w.emitted }

// Flush sorts the collected body with s and writes the header lines
// followed by the body lines to dst.
func (w *Writer) Flush(dst io.Writer, s sorter.Sorter) error {
	body, err := s.Sort(w.body)
	if err != nil {
		return fmt.Errorf("annotate: final sort: %w", err)
	}
	w.body = body

	bw := bufio.NewWriter(dst)
	for _, l := range w.header {
		_, err = fmt.Fprintln(bw, l)
		if err != nil {
			return err
		}
	}
	for _, r := range w.body {
		_, err = fmt.Fprintln(bw, r.Line)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}
