// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// polycarta renders a rings plot of the polycistrons of an annotated
// GFF file. Chromosome lengths are taken from the file's
// ##sequence-region directives. Forward and reverse strand polycistrons
// are drawn as blocks on separate rings inside the karyotype and the
// binned density of polycistron members is drawn as a trace.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/feat/genome"
	"github.com/biogo/graphics/rings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/kortschak/polycistron/annotate"
	"github.com/kortschak/polycistron/record"
)

var (
	in     string
	format string

	binLength int
)

func init() {
	flag.StringVar(&in, "in", "", "file name of a polycistron annotated GFF file to be processed.")
	flag.IntVar(&binLength, "length", 1e5, "specifies the density bin length.")
	flag.StringVar(&format, "format", "svg", "specifies the output format: eps, jpg, jpeg, pdf, png, svg, and tiff.")
}

func parseFlags() {
	help := flag.Bool("help", false, "output this usage message.")
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if in == "" || binLength < 1 {
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

	seqs, ps, err := readAnnotation(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	chrs, ps, skipped := placed(seqs, ps)
	if len(chrs) == 0 {
		fmt.Fprintf(os.Stderr, "no ##sequence-region directives in %s\n", in)
		os.Exit(1)
	}
	if skipped != 0 {
		log.Printf("skipped %d polycistrons outside described sequences", skipped)
	}

	p, err := plot.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	hs, err := tracks(chrs, ps, scoreFeatures(ps, chrs, binLength), 15*vg.Centimeter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p.Add(hs...)

	p.HideAxes()

	font, err := vg.MakeFont("Helvetica", 14)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p.Title.Text = filepath.Base(in)
	p.Title.TextStyle = draw.TextStyle{Color: color.Gray{0}, Font: font}

	err = p.Save(19*vg.Centimeter, 25*vg.Centimeter, filepath.Base(in)+".karyotype."+format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readAnnotation(in string) (*annotate.Sequences, []*annotate.Polycistron, error) {
	f, err := os.Open(in)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	gff, err := record.Read(f)
	if err != nil {
		return nil, nil, err
	}
	seqs := annotate.NewSequences(gff.Header)
	var ps []*annotate.Polycistron
	for _, r := range gff.Body {
		p, err := annotate.ParsePolycistron(r, seqs)
		if err == annotate.ErrNotPolycistron {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		ps = append(ps, p)
	}
	return seqs, ps, nil
}

// placed returns the sequences of known length and the polycistrons
// that lie within them. The number of polycistrons that could not be
// placed is also returned.
func placed(seqs *annotate.Sequences, ps []*annotate.Polycistron) (chrs []*genome.Chromosome, kept []*annotate.Polycistron, skipped int) {
	known := make(map[feat.Feature]bool)
	for _, c := range seqs.Chromosomes() {
		if c.Len() == 0 {
			continue
		}
		chrs = append(chrs, c)
		known[c] = true
	}
	for _, p := range ps {
		loc := p.Location()
		if loc == nil || !known[loc] || p.End() > loc.End() {
			skipped++
			continue
		}
		kept = append(kept, p)
	}
	return chrs, kept, skipped
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// scoreFeatures returns the number of polycistron members in bins of
// the given length along each chromosome. Members are counted in the
// bin holding their polycistron's midpoint.
func scoreFeatures(ps []*annotate.Polycistron, gen []*genome.Chromosome, length int) []rings.Scorer {
	var n int
	index := make(map[feat.Feature]int)
	gs := make([][]*bin, len(gen))
	for i, c := range gen {
		index[c] = i
		bins := make([]*bin, (c.Len()-1)/length+1)
		n += len(bins)
		for j := range bins {
			bins[j] = &bin{
				start:  j * length,
				end:    min(c.Len(), (j+1)*length),
				length: length,
				chr:    c,
			}
		}
		gs[i] = bins
	}
	for _, p := range ps {
		i, ok := index[p.Location()]
		if !ok {
			continue
		}
		gs[i][(p.Start()+p.End())/2/length].members += len(p.Members)
	}

	s := make([]rings.Scorer, 0, n)
	for _, c := range gs {
		for _, b := range c {
			s = append(s, b)
		}
	}
	return s
}

type bin struct {
	start, end int
	length     int
	chr        feat.Feature
	members    int
}

func (f *bin) Start() int             { return f.start }
func (f *bin) End() int               { return f.end }
func (f *bin) Len() int               { return f.end - f.start }
func (f *bin) Name() string           { return "" }
func (f *bin) Description() string    { return "polycistron member bin" }
func (f *bin) Location() feat.Feature { return f.chr }
func (f *bin) Scores() []float64 {
	factor := float64(f.length) / float64(f.Len())
	return []float64{float64(f.members) * factor}
}

// strands splits ps into forward and reverse strand blocks. Unoriented
// polycistrons are drawn with the forward strand.
func strands(ps []*annotate.Polycistron) (fwd, rev []feat.Feature) {
	for _, p := range ps {
		if p.Orientation() == feat.Reverse {
			rev = append(rev, typeBlock{p})
		} else {
			fwd = append(fwd, typeBlock{p})
		}
	}
	return fwd, rev
}

func tracks(chrs []*genome.Chromosome, ps []*annotate.Polycistron, scores []rings.Scorer, diameter vg.Length) ([]plot.Plotter, error) {
	var p []plot.Plotter

	radius := diameter / 2

	// Relative sizes.
	const (
		gap = 0.005

		label = 117. / 110.

		karyotypeInner = 100. / 110.
		karyotypeOuter = 1.

		forwardInner = 91. / 110.
		forwardOuter = 98. / 110.
		reverseInner = 83. / 110.
		reverseOuter = 90. / 110.

		countsInner = 80. / 110.
		countsOuter = 55. / 110.

		large = 6. / 110.
		small = 2. / 110.
	)

	sty := plotter.DefaultLineStyle
	sty.Width /= 2

	chr := make([]feat.Feature, len(chrs))
	for i, c := range chrs {
		chr[i] = c
	}
	hs, err := rings.NewGappedBlocks(
		chr,
		rings.Arc{Theta: rings.Complete / 4 * rings.CounterClockwise, Phi: rings.Complete * rings.Clockwise},
		radius*karyotypeInner, radius*karyotypeOuter, gap,
	)
	if err != nil {
		return nil, err
	}
	hs.LineStyle = sty

	p = append(p, hs)

	fwd, rev := strands(ps)
	for _, s := range []struct {
		name         string
		blocks       []feat.Feature
		inner, outer float64
	}{
		{name: "forward", blocks: fwd, inner: forwardInner, outer: forwardOuter},
		{name: "reverse", blocks: rev, inner: reverseInner, outer: reverseOuter},
	} {
		if len(s.blocks) == 0 {
			continue
		}
		b, err := rings.NewBlocks(s.blocks, hs, radius*vg.Length(s.inner), radius*vg.Length(s.outer))
		if err != nil {
			return nil, fmt.Errorf("%s polycistrons: %v", s.name, err)
		}
		p = append(p, b)
	}

	font, err := vg.MakeFont("Helvetica", radius*large)
	if err != nil {
		return nil, err
	}
	lb, err := rings.NewLabels(hs, radius*label, rings.NameLabels(hs.Set)...)
	if err != nil {
		return nil, err
	}
	lb.TextStyle = draw.TextStyle{Color: color.Gray16{0}, Font: font}
	p = append(p, lb)

	smallFont, err := vg.MakeFont("Helvetica", radius*small)
	if err != nil {
		return nil, err
	}

	ct, err := rings.NewScores(scores, hs, radius*countsInner, radius*countsOuter,
		&rings.Trace{
			LineStyles: func() []draw.LineStyle {
				ls := []draw.LineStyle{sty}
				ls[0].Color = color.Gray16{0}
				return ls
			}(),
			Join: true,
			Axis: &rings.Axis{
				Angle:     rings.Complete / 4,
				Grid:      plotter.DefaultGridLineStyle,
				LineStyle: sty,
				Tick: rings.TickConfig{
					Marker:    plot.DefaultTicks{},
					LineStyle: sty,
					Length:    2,
					Label:     draw.TextStyle{Color: color.Gray16{0}, Font: smallFont},
				},
			},
		},
	)
	if err != nil {
		return nil, err
	}
	p = append(p, ct)

	return p, nil
}

// typeBlock colours a polycistron block by its member feature type.
type typeBlock struct {
	*annotate.Polycistron
}

func (b typeBlock) FillColor() color.Color {
	switch b.Type {
	case "CDS":
		return color.RGBA{B: 0xcc, A: 0xff}
	case "tRNA":
		return color.RGBA{R: 0xff, G: 0x8c, A: 0xff}
	case "rRNA":
		return color.RGBA{R: 0xcc, A: 0xff}
	case "ncRNA":
		return color.RGBA{G: 0x8c, A: 0xff}
	case "snoRNA":
		return color.RGBA{R: 0x8c, B: 0x8c, A: 0xff}
	default:
		return color.Gray{0x80}
	}
}

func (b typeBlock) LineStyle() draw.LineStyle {
	return draw.LineStyle{}
}
