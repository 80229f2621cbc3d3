// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// polyquery reports the polycistrons of an annotated GFF file that
// overlap a region or contain a named feature.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/biogo/feat"

	"github.com/kortschak/polycistron/annotate"
)

var (
	in     = flag.String("in", "", "specify polycistron annotated gff file (required)")
	region = flag.String("region", "", "specify query region as name:start-end (one-based, inclusive)")
	id     = flag.String("id", "", "specify query feature ID")
)

func main() {
	flag.Parse()
	if *in == "" || (*region == "" && *id == "") {
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("failed to open %q: %v", *in, err)
	}
	idx, err := annotate.ReadIndex(f)
	f.Close()
	if err != nil {
		log.Fatalf("failed to index %q: %v", *in, err)
	}

	if *id != "" {
		p, ok := idx.Containing(*id)
		if !ok {
			log.Printf("no polycistron contains %q", *id)
		} else {
			fmt.Println(p)
		}
	}
	if *region != "" {
		name, start, end, err := parseRegion(*region)
		if err != nil {
			log.Fatalf("failed to parse region: %v", err)
		}
		for _, p := range idx.Overlapping(name, feat.OneToZero(start), end) {
			fmt.Println(p)
		}
	}
}

var errBadRegion = errors.New("region must be name:start-end")

// parseRegion parses a samtools style region.
func parseRegion(s string) (name string, start, end int, err error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return "", 0, 0, errBadRegion
	}
	name = s[:i]
	coords := strings.Split(strings.Replace(s[i+1:], ",", "", -1), "-")
	if name == "" || len(coords) != 2 {
		return "", 0, 0, errBadRegion
	}
	start, err = strconv.Atoi(coords[0])
	if err != nil {
		return "", 0, 0, err
	}
	end, err = strconv.Atoi(coords[1])
	if err != nil {
		return "", 0, 0, err
	}
	if start < 1 || end < start {
		return "", 0, 0, fmt.Errorf("invalid region interval: [%d,%d]", start, end)
	}
	return name, start, end, nil
}
