// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annotate

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Types lists the member feature types in report order.
var Types = []string{"CDS", "tRNA", "ncRNA", "rRNA", "snoRNA"}

// Stats summarizes the polycistrons of one feature type.
type Stats struct {
	Type  string
	Count int

	// Members is the total number of member features.
	Members int

	MeanLength, StdLength, MedianLength    float64
	MeanMembers, StdMembers, MedianMembers float64
	MaxMembers                             float64
}

// Summarize returns size statistics for each type in Types that has
// at least one polycistron in ps.
func Summarize(ps []*Polycistron) []Stats {
	lengths := make(map[string][]float64)
	members := make(map[string][]float64)
	for _, p := range ps {
		lengths[p.Type] = append(lengths[p.Type], float64(p.Len()))
		members[p.Type] = append(members[p.Type], float64(len(p.Members)))
	}

	var s []Stats
	for _, typ := range Types {
		l := lengths[typ]
		if len(l) == 0 {
			continue
		}
		m := members[typ]
		sort.Float64s(l)
		sort.Float64s(m)
		st := Stats{
			Type:          typ,
			Count:         len(l),
			Members:       int(floats.Sum(m)),
			MedianLength:  stat.Quantile(0.5, stat.Empirical, l, nil),
			MedianMembers: stat.Quantile(0.5, stat.Empirical, m, nil),
			MaxMembers:    floats.Max(m),
		}
		st.MeanLength, st.StdLength = stat.MeanStdDev(l, nil)
		st.MeanMembers, st.StdMembers = stat.MeanStdDev(m, nil)
		s = append(s, st)
	}
	return s
}
