// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotate

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/kortschak/polycistron/record"
	"github.com/kortschak/polycistron/sorter"
)

// Annotator adds polycistron records to GFF files.
type Annotator struct {
	// Sorter is used for the initial and final sorts.
	// If nil, sorter.InMemory is used.
	Sorter sorter.Sorter

	// Progress receives progress messages. If nil,
	// messages are discarded.
	Progress io.Writer
}

// Report summarizes an annotation run.
type Report struct {
	Counts       Counters
	Polycistrons []*Polycistron

	// Sequences holds the sequences named in the
	// header and those holding polycistrons.
	Sequences *Sequences
}

// Annotate reads a GFF file from src and writes it to dst with a
// polycistron record added for each run of adjacent features of the
// same type on the same sequence and strand. Header lines are written
// first and the remaining lines are written in coordinate order.
//
// Counters are local to each call, so repeated runs over the same
// input give identical output.
func (a Annotator) Annotate(dst io.Writer, src io.Reader) (*Report, error) {
	s := a.Sorter
	if s == nil {
		s = sorter.InMemory{}
	}
	progress := a.Progress
	if progress == nil {
		progress = ioutil.Discard
	}

	fmt.Fprintln(progress, "Reading input file...")
	f, err := record.Read(src)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(progress, "Sorting input file...")
	body, err := s.Sort(f.Body)
	if err != nil {
		return nil, fmt.Errorf("annotate: initial sort: %w", err)
	}

	fmt.Fprintln(progress, "Processing...")
	var rep Report
	w := NewWriter(f.Header)
	rep.Sequences = NewSequences(f.Header)
	acc := NewAccumulator(&rep.Counts, rep.Sequences, w)
	for _, r := range body {
		err = acc.Add(r)
		if err != nil {
			return nil, err
		}
	}
	err = acc.Close()
	if err != nil {
		return nil, err
	}
	err = w.Flush(dst, s)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(progress, "Done!")

	rep.Polycistrons = w.Polycistrons()
	return &rep, nil
}
