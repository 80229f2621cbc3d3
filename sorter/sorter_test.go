// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sorter

import (
	"io/ioutil"
	"os"
	"os/exec"
	"strings"
	"testing"

	"gopkg.in/check.v1"

	"github.com/kortschak/polycistron/record"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

var unsorted = []string{
	"chr2\tsrc\tCDS\t50\t80\t.\t+\t0\tID=d",
	"chr10\tsrc\tCDS\t300\t400\t.\t+\t0\tID=c",
	"chr1\tsrc\tCDS\t1000\t1200\t.\t-\t0\tID=b2",
	"chr1\tsrc\tCDS\t200\t300\t.\t+\t0\tID=a2",
	"chr1\tsrc\tgene\t200\t300\t.\t+\t.\tID=a2gene",
	"chr1\tsrc\tCDS\t200\t250\t.\t+\t0\tID=a1",
	"chr1\tsrc\tCDS\t900\t1200\t.\t-\t0\tID=b1",
}

// Byte-wise order puts chr10 before chr2 and ties keep input order.
var sortedIDs = []string{"a1", "a2", "a2gene", "b1", "b2", "c", "d"}

func parseAll(c *check.C, lines []string) []*record.Record {
	recs := make([]*record.Record, len(lines))
	for i, l := range lines {
		r, err := record.Parse(l)
		c.Assert(err, check.Equals, nil)
		recs[i] = r
	}
	return recs
}

func ids(recs []*record.Record) []string {
	s := make([]string, len(recs))
	for i, r := range recs {
		s[i] = r.ID
	}
	return s
}

func (s *S) TestInMemory(c *check.C) {
	recs, err := InMemory{}.Sort(parseAll(c, unsorted))
	c.Assert(err, check.Equals, nil)
	c.Check(ids(recs), check.DeepEquals, sortedIDs)
	c.Check(IsSorted(recs), check.Equals, true)
}

func (s *S) TestInMemoryEmpty(c *check.C) {
	recs, err := InMemory{}.Sort(nil)
	c.Check(err, check.Equals, nil)
	c.Check(recs, check.HasLen, 0)
}

func (s *S) TestSortCmd(c *check.C) {
	cmd, err := SortCmd{
		Stable:    true,
		Separator: "\t",
		Keys:      gffKeys,
		Out:       "out.gff",
		In:        "in.gff",
	}.BuildCommand()
	c.Assert(err, check.Equals, nil)
	c.Check(cmd.Args, check.DeepEquals, []string{
		"sort", "-s", "--field-separator=\t", "-k1,1", "-k4,4n", "-k5,5n", "-o", "out.gff", "in.gff",
	})

	_, err = SortCmd{Keys: gffKeys}.BuildCommand()
	c.Check(err, check.Equals, ErrMissingRequired)
}

func (s *S) TestShell(c *check.C) {
	if _, err := exec.LookPath("sort"); err != nil {
		c.Skip("no sort executable")
	}
	dir, err := ioutil.TempDir("", "sorter")
	c.Assert(err, check.Equals, nil)
	defer os.RemoveAll(dir)

	recs, err := Shell{Dir: dir}.Sort(parseAll(c, unsorted))
	c.Assert(err, check.Equals, nil)
	c.Check(ids(recs), check.DeepEquals, sortedIDs)

	// Scratch files must not outlive the sort.
	left, err := ioutil.ReadDir(dir)
	c.Assert(err, check.Equals, nil)
	c.Check(left, check.HasLen, 0)
}

func (s *S) TestShellFailureCleanup(c *check.C) {
	dir, err := ioutil.TempDir("", "sorter")
	c.Assert(err, check.Equals, nil)
	defer os.RemoveAll(dir)

	_, err = Shell{Cmd: "/nonexistent/sort", Dir: dir}.Sort(parseAll(c, unsorted))
	c.Check(err, check.NotNil)

	left, err := ioutil.ReadDir(dir)
	c.Assert(err, check.Equals, nil)
	c.Check(left, check.HasLen, 0)
}

func (s *S) TestShellLongLines(c *check.C) {
	if _, err := exec.LookPath("sort"); err != nil {
		c.Skip("no sort executable")
	}
	// Lines longer than the default bufio.Scanner token limit, and
	// carriage returns, must survive the round trip through sort.
	note := ";Note=" + strings.Repeat("x", 1<<17)
	in := []string{
		"chr1\tsrc\tCDS\t300\t400\t.\t+\t0\tID=b" + note,
		"chr1\tsrc\tCDS\t100\t200\t.\t+\t0\tID=a\r",
	}
	recs, err := Shell{Dir: c.MkDir()}.Sort(parseAll(c, in))
	c.Assert(err, check.Equals, nil)
	c.Assert(recs, check.HasLen, 2)
	c.Check(recs[0].Line, check.Equals, in[1])
	c.Check(recs[1].Line, check.Equals, in[0])
	c.Check(ids(recs), check.DeepEquals, []string{"a", "b"})
}
