// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

// MaxLineLength is the longest line a Scanner will accept.
const MaxLineLength = 1 << 26

// NewScanner returns a bufio.Scanner that splits r into newline
// terminated lines of up to MaxLineLength bytes. Unlike bufio.ScanLines,
// a carriage return before the newline is kept so that CRLF input is
// reproduced exactly when lines are written back with a newline.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, MaxLineLength)
	sc.Split(scanLines)
	return sc
}

func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// File is the content of a GFF file split into its header
// and feature body.
type File struct {
	// Header holds the comment and directive lines
	// in input order.
	Header []string

	// Body holds the feature records in input order.
	Body []*Record
}

// Read reads a GFF file from r. Lines beginning with '#' are collected
// into the header, blank lines are skipped and all other lines are parsed
// as feature records. Newlines are not retained, but carriage returns are.
func Read(r io.Reader) (*File, error) {
	var f File
	sc := NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		switch {
		case strings.TrimSuffix(line, "\r") == "":
			continue
		case line[0] == '#':
			f.Header = append(f.Header, line)
			continue
		}
		rec, err := Parse(line)
		if err != nil {
			var merr *MalformedRecordError
			if errors.As(err, &merr) {
				merr.Line = n
			}
			return nil, err
		}
		f.Body = append(f.Body, rec)
	}
	err := sc.Err()
	if err != nil {
		return nil, err
	}
	return &f, nil
}
