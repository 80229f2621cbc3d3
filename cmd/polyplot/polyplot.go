// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// polyplot renders a histogram of polycistron sizes from a polycistron
// annotated GFF file.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/kortschak/polycistron/annotate"
	"github.com/kortschak/polycistron/record"
)

var (
	in     string
	by     string
	typ    string
	format string

	bins int
)

func init() {
	flag.StringVar(&in, "in", "", "file name of a polycistron annotated GFF file to be processed.")
	flag.StringVar(&by, "by", "members", "specifies the size measure: members or length.")
	flag.StringVar(&typ, "type", "", "specifies the member feature type to plot (default all).")
	flag.IntVar(&bins, "bins", 20, "specifies the number of histogram bins.")
	flag.StringVar(&format, "format", "svg", "specifies the output format: eps, jpg, jpeg, pdf, png, svg, and tiff.")
}

func parseFlags() {
	help := flag.Bool("help", false, "output this usage message.")
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if in == "" || bins < 1 || (by != "members" && by != "length") {
		flag.Usage()
		os.Exit(1)
	}
	for _, s := range []string{"eps", "jpg", "jpeg", "pdf", "png", "svg", "tiff"} {
		if format == s {
			return
		}
	}
	flag.Usage()
	os.Exit(1)
}

func main() {
	parseFlags()

	ps, err := readPolycistrons(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	v := sizes(ps, typ, by)
	if len(v) == 0 {
		fmt.Fprintf(os.Stderr, "no polycistrons in %s\n", in)
		os.Exit(1)
	}

	p, err := plot.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	h, err := plotter.NewHist(v, bins)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	p.Add(h)

	p.Title.Text = filepath.Base(in)
	if typ != "" {
		p.Title.Text += " " + annotate.TypePrefix + typ
	}
	switch by {
	case "members":
		p.X.Label.Text = "members"
	case "length":
		p.X.Label.Text = "length (bp)"
	}
	p.Y.Label.Text = "count"

	err = p.Save(19*vg.Centimeter, 15*vg.Centimeter, filepath.Base(in)+"."+by+"."+format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readPolycistrons(in string) ([]*annotate.Polycistron, error) {
	f, err := os.Open(in)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gff, err := record.Read(f)
	if err != nil {
		return nil, err
	}
	seqs := annotate.NewSequences(gff.Header)
	var ps []*annotate.Polycistron
	for _, r := range gff.Body {
		p, err := annotate.ParsePolycistron(r, seqs)
		if err == annotate.ErrNotPolycistron {
			continue
		}
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}

// sizes returns the member count or span length of each polycistron
// of the given type. An empty type selects all polycistrons.
func sizes(ps []*annotate.Polycistron, typ, by string) plotter.Values {
	var v plotter.Values
	for _, p := range ps {
		if typ != "" && p.Type != typ {
			continue
		}
		switch by {
		case "members":
			v = append(v, float64(len(p.Members)))
		case "length":
			v = append(v, float64(p.Len()))
		}
	}
	return v
}
