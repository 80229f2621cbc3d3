// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotate

import (
	"strconv"
	"strings"

	"github.com/biogo/biogo/feat/genome"
)

const sequenceRegion = "##sequence-region"

// Sequences holds the reference sequences of an annotation. All
// polycistrons on a sequence share a single *genome.Chromosome.
type Sequences struct {
	chrs   []*genome.Chromosome
	byName map[string]*genome.Chromosome
}

// NewSequences returns the sequences described by the
// ##sequence-region directives in header. Directives that do not
// have a name, start and end are ignored.
func NewSequences(header []string) *Sequences {
	s := &Sequences{byName: make(map[string]*genome.Chromosome)}
	for _, l := range header {
		fields := strings.Fields(l)
		if len(fields) != 4 || fields[0] != sequenceRegion {
			continue
		}
		end, err := strconv.Atoi(fields[3])
		if err != nil || end < 1 {
			continue
		}
		c := s.Get(fields[1])
		if end > c.Length {
			c.Length = end
		}
		c.Desc = sequenceRegion
	}
	return s
}

// Get returns the sequence called name, adding it with an unknown
// zero length if it is not already held.
func (s *Sequences) Get(name string) *genome.Chromosome {
	if s.byName == nil {
		s.byName = make(map[string]*genome.Chromosome)
	}
	c, ok := s.byName[name]
	if !ok {
		c = &genome.Chromosome{Chr: name}
		s.byName[name] = c
		s.chrs = append(s.chrs, c)
	}
	return c
}

// Chromosomes returns the held sequences in the order they were
// first seen.
func (s *Sequences) Chromosomes() []*genome.Chromosome { return s.chrs }
