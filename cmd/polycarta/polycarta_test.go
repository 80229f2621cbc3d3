// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biogo/biogo/feat"
	"gopkg.in/check.v1"

	"github.com/kortschak/polycistron/annotate"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

const annotation = "##gff-version 3\n" +
	"##sequence-region chr1 1 1000\n" +
	"##sequence-region chr2 1 250\n" +
	"chr1\ts\tCDS\t100\t200\t.\t+\t0\tID=a1\n" +
	"chr1\ts\tCDS\t300\t400\t.\t+\t0\tID=a2\n" +
	"chr1\ts\tCDS\t500\t600\t.\t-\t0\tID=b1\n" +
	"chr1\ts\ttRNA\t900\t980\t.\t-\t.\tID=t1\n" +
	"chr2\ts\trRNA\t10\t60\t.\t+\t.\tID=r1\n" +
	"chr2\ts\trRNA\t200\t300\t.\t-\t.\tID=r2\n" +
	"chr3\ts\tCDS\t1\t10\t.\t+\t0\tID=c1\n"

func annotated(c *check.C) (*annotate.Sequences, []*annotate.Polycistron) {
	var buf bytes.Buffer
	_, err := annotate.Annotator{}.Annotate(&buf, strings.NewReader(annotation))
	c.Assert(err, check.Equals, nil)
	path := filepath.Join(c.MkDir(), "annotated.gff")
	c.Assert(ioutil.WriteFile(path, buf.Bytes(), 0644), check.Equals, nil)

	seqs, ps, err := readAnnotation(path)
	c.Assert(err, check.Equals, nil)
	return seqs, ps
}

func (s *S) TestPlaced(c *check.C) {
	seqs, ps := annotated(c)
	c.Assert(ps, check.HasLen, 6)

	chrs, kept, skipped := placed(seqs, ps)
	var names []string
	for _, chr := range chrs {
		names = append(names, chr.Name())
	}
	c.Check(names, check.DeepEquals, []string{"chr1", "chr2"})

	// r2 runs past the end of chr2 and chr3 has no length.
	c.Check(skipped, check.Equals, 2)
	var ids []string
	for _, p := range kept {
		ids = append(ids, p.ID)
	}
	c.Check(ids, check.DeepEquals, []string{"Polycistron-CDS_1", "Polycistron-CDS_2", "Polycistron-tRNA_1", "Polycistron-rRNA_1"})
}

func (s *S) TestScoreFeatures(c *check.C) {
	seqs, ps := annotated(c)
	chrs, kept, _ := placed(seqs, ps)

	scores := scoreFeatures(kept, chrs, 400)
	// chr1 has three bins and chr2 has one.
	c.Assert(scores, check.HasLen, 4)

	var got []int
	for _, sc := range scores {
		got = append(got, sc.(*bin).members)
	}
	// CDS_1 [99,400) has midpoint 249, CDS_2 [499,600) 549,
	// tRNA_1 [899,980) 939 and rRNA_1 [9,60) 34.
	c.Check(got, check.DeepEquals, []int{2, 1, 1, 1})

	last := scores[2].(*bin)
	c.Check(last.Start(), check.Equals, 800)
	c.Check(last.End(), check.Equals, 1000)
	c.Check(last.Location().Name(), check.Equals, "chr1")
	c.Check(last.Scores(), check.DeepEquals, []float64{2})
	c.Check(scores[3].(*bin).Scores(), check.DeepEquals, []float64{1.6})
}

func (s *S) TestStrands(c *check.C) {
	seqs, ps := annotated(c)
	_, kept, _ := placed(seqs, ps)

	fwd, rev := strands(kept)
	name := func(fs []feat.Feature) []string {
		var n []string
		for _, f := range fs {
			n = append(n, f.Name())
		}
		return n
	}
	c.Check(name(fwd), check.DeepEquals, []string{"Polycistron-CDS_1", "Polycistron-rRNA_1"})
	c.Check(name(rev), check.DeepEquals, []string{"Polycistron-CDS_2", "Polycistron-tRNA_1"})

	// Blocks are located on the karyotype's chromosomes.
	for _, f := range append(fwd, rev...) {
		c.Check(f.Location(), check.Equals, feat.Feature(seqs.Get(f.Location().Name())))
	}
	c.Check(rev[0].(typeBlock).FillColor(), check.Not(check.Equals), rev[1].(typeBlock).FillColor())
}
