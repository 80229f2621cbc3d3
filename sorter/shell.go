// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sorter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"os/exec"
	"strings"
	"text/template"

	"github.com/biogo/external"

	"github.com/kortschak/polycistron/record"
)

var ErrMissingRequired = errors.New("sorter: missing required argument")

// SortCmd defines parameters for the POSIX sort utility.
type SortCmd struct {
	// Usage: sort [OPTION]... [FILE]...
	//
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}sort{{end}}"` // sort

	Stable    bool     `buildarg:"{{if .}}-s{{end}}"`                                             // -s: stabilize sort
	Separator string   `buildarg:"{{if .}}--field-separator={{.}}{{end}}"`                        // -t: field separator
	Keys      []string `buildarg:"{{range $i, $k := .}}{{if $i}}{{split}}{{end}}-k{{$k}}{{end}}"` // -k: sort keys

	Out string `buildarg:"{{if .}}-o{{split}}{{.}}{{end}}"` // -o: output file

	In string `buildarg:"{{.}}"` // input file
}

// BuildCommand returns an exec.Cmd built from the parameters in s.
func (s SortCmd) BuildCommand() (*exec.Cmd, error) {
	if s.In == "" || len(s.Keys) == 0 {
		return nil, ErrMissingRequired
	}
	cl, err := external.Build(s, template.FuncMap{})
	if err != nil {
		return nil, err
	}
	return exec.Command(cl[0], cl[1:]...), nil
}

// gffKeys are the sort keys for (sequence name, start, end).
var gffKeys = []string{"1,1", "4,4n", "5,5n"}

// Shell is a Sorter that uses an external sort program on a
// scratch file. Scratch files are removed before Sort returns.
type Shell struct {
	// Cmd is the path to sort. If empty, sort is
	// looked up in $PATH.
	Cmd string

	// Dir is the directory for scratch files. If
	// empty, the system temporary directory is used.
	Dir string
}

// Sort writes the lines of recs to a scratch file, sorts them with
// the external program and returns the records parsed from the result.
func (s Shell) Sort(recs []*record.Record) (sorted []*record.Record, err error) {
	in, err := ioutil.TempFile(s.Dir, "toSort-*.gff")
	if err != nil {
		return nil, err
	}
	defer os.Remove(in.Name())
	w := bufio.NewWriter(in)
	for _, r := range recs {
		_, err = fmt.Fprintln(w, r.Line)
		if err != nil {
			in.Close()
			return nil, err
		}
	}
	err = w.Flush()
	if err != nil {
		in.Close()
		return nil, err
	}
	err = in.Close()
	if err != nil {
		return nil, err
	}

	out, err := ioutil.TempFile(s.Dir, "sorted-*.gff")
	if err != nil {
		return nil, err
	}
	defer os.Remove(out.Name())
	err = out.Close()
	if err != nil {
		return nil, err
	}

	cmd, err := SortCmd{
		Cmd:       s.Cmd,
		Stable:    true,
		Separator: "\t",
		Keys:      gffKeys,
		Out:       out.Name(),
		In:        in.Name(),
	}.BuildCommand()
	if err != nil {
		return nil, err
	}
	// Byte-wise collation to match InMemory.
	cmd.Env = append(os.Environ(), "LC_ALL=C")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err = cmd.Run()
	if err != nil {
		return nil, fmt.Errorf("sorter: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	f, err := os.Open(out.Name())
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sorted = make([]*record.Record, 0, len(recs))
	sc := record.NewScanner(f)
	for sc.Scan() {
		r, err := record.Parse(sc.Text())
		if err != nil {
			return nil, err
		}
		sorted = append(sorted, r)
	}
	err = sc.Err()
	if err != nil {
		return nil, err
	}
	if len(sorted) != len(recs) {
		return nil, fmt.Errorf("sorter: record count mismatch: sent %d got %d", len(recs), len(sorted))
	}
	return sorted, nil
}
