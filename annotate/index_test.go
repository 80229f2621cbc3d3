// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotate

import (
	"bytes"
	"math"
	"strings"

	"gopkg.in/check.v1"
)

const indexInput = "##gff-version 3\n" +
	"chr1\ts\tCDS\t100\t200\t.\t+\t0\tID=a1\n" +
	"chr1\ts\tCDS\t300\t400\t.\t+\t0\tID=a2\n" +
	"chr1\ts\tCDS\t500\t600\t.\t-\t0\tID=b1\n" +
	"chr1\ts\ttRNA\t900\t980\t.\t-\t.\tID=t1\n" +
	"chr2\ts\tCDS\t50\t150\t.\t+\t0\tID=c1\n" +
	"chr2\ts\tgene\t50\t150\t.\t+\t.\tID=c1gene\n"

func annotated(c *check.C) []byte {
	var buf bytes.Buffer
	_, err := Annotator{}.Annotate(&buf, strings.NewReader(indexInput))
	c.Assert(err, check.Equals, nil)
	return buf.Bytes()
}

func names(ps []*Polycistron) []string {
	n := make([]string, len(ps))
	for i, p := range ps {
		n[i] = p.ID
	}
	return n
}

func (s *S) TestIndex(c *check.C) {
	idx, err := ReadIndex(bytes.NewReader(annotated(c)))
	c.Assert(err, check.Equals, nil)

	for i, t := range []struct {
		seq        string
		start, end int
		want       []string
	}{
		{seq: "chr1", start: 0, end: 99, want: []string{}},
		{seq: "chr1", start: 0, end: 100, want: []string{"Polycistron-CDS_1"}},
		{seq: "chr1", start: 399, end: 500, want: []string{"Polycistron-CDS_1", "Polycistron-CDS_2"}},
		{seq: "chr1", start: 400, end: 499, want: []string{}},
		{seq: "chr1", start: 0, end: 1000, want: []string{"Polycistron-CDS_1", "Polycistron-CDS_2", "Polycistron-tRNA_1"}},
		{seq: "chr1", start: 979, end: 980, want: []string{"Polycistron-tRNA_1"}},
		{seq: "chr1", start: 980, end: 990, want: []string{}},
		{seq: "chr2", start: 9, end: 60, want: []string{"Polycistron-CDS_3"}},
		{seq: "chr3", start: 0, end: 1000, want: []string{}},
	} {
		got := names(idx.Overlapping(t.seq, t.start, t.end))
		c.Check(got, check.DeepEquals, t.want, check.Commentf("Test %d", i))
	}

	p, ok := idx.Containing("a2")
	c.Assert(ok, check.Equals, true)
	c.Check(p.ID, check.Equals, "Polycistron-CDS_1")
	c.Check(p.Members, check.DeepEquals, []string{"a1", "a2"})
	_, ok = idx.Containing("c1gene")
	c.Check(ok, check.Equals, false)
}

func (s *S) TestSummarize(c *check.C) {
	ps := []*Polycistron{
		{Type: "CDS", FeatStart: 0, FeatEnd: 100, Members: []string{"a"}},
		{Type: "CDS", FeatStart: 0, FeatEnd: 300, Members: []string{"a", "b", "c"}},
		{Type: "tRNA", FeatStart: 10, FeatEnd: 20, Members: []string{"t"}},
	}
	got := Summarize(ps)
	c.Assert(got, check.HasLen, 2)

	cds := got[0]
	c.Check(cds.Type, check.Equals, "CDS")
	c.Check(cds.Count, check.Equals, 2)
	c.Check(cds.Members, check.Equals, 4)
	c.Check(cds.MeanLength, check.Equals, 200.0)
	c.Check(math.Abs(cds.StdLength-math.Sqrt(20000)) < 1e-9, check.Equals, true)
	c.Check(cds.MedianLength, check.Equals, 100.0)
	c.Check(cds.MeanMembers, check.Equals, 2.0)
	c.Check(cds.MaxMembers, check.Equals, 3.0)

	trna := got[1]
	c.Check(trna.Type, check.Equals, "tRNA")
	c.Check(trna.Count, check.Equals, 1)
	c.Check(trna.MeanLength, check.Equals, 10.0)
	c.Check(trna.MedianMembers, check.Equals, 1.0)
}
