// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// polycistron annotates the polycistronic transcription units of a
// trypanosomatid genome GFF annotation. Runs of adjacent CDS, ncRNA,
// rRNA, snoRNA and tRNA features on the same sequence and strand are
// summarized by an additional Polycistron-<type> feature listing the
// IDs of the run's members.
//
// The program is based on the annotatePolycistron python script by
// Alex Ranieri.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/kortschak/polycistron/annotate"
	"github.com/kortschak/polycistron/sorter"
)

var in, out string

var (
	sortBy  = flag.String("sort", "memory", "sort implementation: memory or shell")
	sortCmd = flag.String("sort-cmd", "", "path to sort if not in $PATH (shell sort only)")
	stats   = flag.Bool("stats", false, "print polycistron size statistics")
)

func init() {
	flag.StringVar(&in, "gff", "", "GFF input file name (required)")
	flag.StringVar(&in, "g", "", "short for -gff")
	flag.StringVar(&out, "out", "", "GFF output file name (default {input}_polycistronAnnotated.gff)")
	flag.StringVar(&out, "o", "", "short for -out")
}

func main() {
	flag.Parse()
	if in == "" {
		fmt.Fprintln(os.Stderr, "invalid argument: must have gff input file set")
		flag.Usage()
		os.Exit(1)
	}
	if out == "" {
		out = defaultOutput(in)
	}

	s, err := newSorter(*sortBy, *sortCmd, filepath.Dir(out))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid argument: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	rep, err := annotateFile(out, in, annotate.Annotator{Sorter: s, Progress: os.Stdout})
	if err != nil {
		log.Fatalf("failed to annotate %q: %v", in, err)
	}

	fmt.Println("Number of annotated features:")
	for _, typ := range annotate.Types {
		fmt.Printf("%s: %d\n", typ, rep.Counts.Count(typ))
	}
	if *stats {
		for _, st := range annotate.Summarize(rep.Polycistrons) {
			fmt.Printf("%s\tn=%d\tmembers=%d\tlength mean=%.1f sd=%.1f median=%.0f\tmembers mean=%.2f sd=%.2f median=%.0f max=%.0f\n",
				st.Type, st.Count, st.Members,
				st.MeanLength, st.StdLength, st.MedianLength,
				st.MeanMembers, st.StdMembers, st.MedianMembers, st.MaxMembers,
			)
		}
	}
}

// defaultOutput returns the input path with its extension replaced
// by _polycistronAnnotated.gff.
func defaultOutput(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_polycistronAnnotated.gff"
}

var errUnknownSort = errors.New("unknown sort")

// newSorter returns the sorter called name. The shell sorter runs cmd,
// or sort from $PATH if cmd is empty, with scratch files in dir.
func newSorter(name, cmd, dir string) (sorter.Sorter, error) {
	switch name {
	case "memory":
		return sorter.InMemory{}, nil
	case "shell":
		return sorter.Shell{Cmd: cmd, Dir: dir}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownSort, name)
	}
}

// annotateFile runs a on the GFF file at src, writing to dst. The
// output is written to a scratch file in the destination directory
// that is only renamed to dst when annotation succeeds.
func annotateFile(dst, src string, a annotate.Annotator) (*annotate.Report, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tmp, err := ioutil.TempFile(filepath.Dir(dst), filepath.Base(dst)+".*.tmp")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	err = tmp.Chmod(0644)
	if err != nil {
		return nil, err
	}

	rep, err := a.Annotate(tmp, f)
	if err != nil {
		return nil, err
	}
	err = tmp.Close()
	if err != nil {
		return nil, err
	}
	err = os.Rename(tmp.Name(), dst)
	if err != nil {
		return nil, err
	}
	return rep, nil
}
