// SPDX-License-Identifier: MIT

package decfmt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/katalvlaran/dantzig/core"
	"github.com/katalvlaran/dantzig/decomp"
)

type clusterOptions struct {
	vertexMap []int
}

// ClusterOption configures a CLUSTER read.
type ClusterOption func(*clusterOptions)

// WithVertexMap declares that the clustered vertices are copies of
// constraints rather than constraints themselves: vertex v stands for
// constraint m[v]. Several vertices may map onto one constraint, as
// hyperedge expansions produce; a constraint whose copies land in
// different partitions becomes a master constraint. Entries outside the
// problem's constraint range are a programming error and panic.
func WithVertexMap(m []int) ClusterOption {
	return func(o *clusterOptions) { o.vertexMap = m }
}

// clusterEntry is one parsed "<vertex> <partition>" line.
type clusterEntry struct {
	vertex int
	part   int
	line   int
	src    string
}

// ReadCluster parses partitioner output from r, one "<vertex> <partition>"
// pair per line, vertices standing for constraints unless WithVertexMap
// says otherwise. Vertex ids may be 0- or 1-based; 1-based is assumed
// exactly when no 0 appears and the maximum id equals the vertex count.
// Partition ids are non-negative, the maximum plus one giving the block
// count before empty partitions are dropped. Variables follow their
// constraints' blocks.
func ReadCluster(p *core.Problem, r io.Reader, opts ...ClusterOption) (*decomp.Decomposition, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decfmt: %w", err)
	}
	return readCluster(p, "", string(src), opts...)
}

// ReadClusterFile is ReadCluster over a file path.
func ReadClusterFile(p *core.Problem, path string, opts ...ClusterOption) (*decomp.Decomposition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("decfmt: %w", err)
	}
	return readCluster(p, path, string(src), opts...)
}

func readCluster(p *core.Problem, path, src string, opts ...ClusterOption) (*decomp.Decomposition, error) {
	var o clusterOptions
	for _, opt := range opts {
		opt(&o)
	}
	nVertices := p.NConss()
	if o.vertexMap != nil {
		nVertices = len(o.vertexMap)
		for v, i := range o.vertexMap {
			if i < 0 || i >= p.NConss() {
				panic(fmt.Sprintf("decfmt: vertex map entry %d: constraint index %d out of range [0,%d)",
					v, i, p.NConss()))
			}
		}
	}

	entries, err := scanClusterLines(path, src)
	if err != nil {
		return nil, err
	}
	if len(entries) != nVertices {
		return nil, fmt.Errorf("decfmt: %s: %d vertex lines for %d vertices",
			sourceName(path), len(entries), nVertices)
	}

	hasZero, maxID := false, 0
	for _, e := range entries {
		if e.vertex == 0 {
			hasZero = true
		}
		if e.vertex > maxID {
			maxID = e.vertex
		}
	}
	oneBased := !hasZero && maxID == len(entries)

	// Fold vertices onto constraints. A constraint whose vertices sit in
	// several partitions couples them and goes to the master.
	seen := make([]bool, nVertices)
	consFirst := make([]int, p.NConss()) // partition+1, 0 = none yet
	consSpans := make([]bool, p.NConss())
	maxPart := -1
	for _, e := range entries {
		v := e.vertex
		if oneBased {
			v--
		}
		if v < 0 || v >= nVertices {
			return nil, &ParseError{
				Path: path, Line: e.line, Col: 1, Src: e.src,
				Msg: fmt.Sprintf("vertex %d out of range", e.vertex),
			}
		}
		if seen[v] {
			return nil, &ParseError{
				Path: path, Line: e.line, Col: 1, Src: e.src,
				Msg: fmt.Sprintf("vertex %d listed twice", e.vertex),
			}
		}
		seen[v] = true
		if e.part > maxPart {
			maxPart = e.part
		}
		cons := v
		if o.vertexMap != nil {
			cons = o.vertexMap[v]
		}
		switch {
		case consFirst[cons] == 0:
			consFirst[cons] = e.part + 1
		case consFirst[cons] != e.part+1:
			consSpans[cons] = true
		}
	}

	cand := decomp.NewCandidate(p)
	for k := 0; k <= maxPart; k++ {
		cand.AddBlock()
	}
	for i := 0; i < p.NConss(); i++ {
		switch {
		case consSpans[i]:
			cand.BookConsToMaster(i)
		case consFirst[i] != 0:
			cand.BookConsToBlock(i, consFirst[i])
		}
	}
	cand.Flush()

	cand.AssignOpenConssToMaster()
	cand.AssignOpenVarsByBlocks()
	cand.AddHistory(fmt.Sprintf("cluster: %s (%d partitions)", sourceName(path), maxPart+1))
	d, err := cand.ToDecomposition()
	if err != nil {
		return nil, fmt.Errorf("decfmt: %s: %w", sourceName(path), err)
	}
	return d, nil
}

// scanClusterLines parses the "<vertex> <partition>" lines, skipping
// blanks and comment lines.
func scanClusterLines(path, src string) ([]clusterEntry, error) {
	var entries []clusterEntry
	sc := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed[0] == '\\' || trimmed[0] == '#' {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) != 2 {
			return nil, &ParseError{
				Path: path, Line: lineNo, Col: 1, Src: line,
				Msg: fmt.Sprintf("want \"<vertex> <partition>\", got %d fields", len(fields)),
			}
		}
		vertex, err := strconv.Atoi(fields[0])
		if err != nil || vertex < 0 {
			return nil, &ParseError{
				Path: path, Line: lineNo, Col: fieldCol(line, 0), Src: line,
				Msg: fmt.Sprintf("bad vertex id %q", fields[0]),
			}
		}
		part, err := strconv.Atoi(fields[1])
		if err != nil || part < 0 {
			return nil, &ParseError{
				Path: path, Line: lineNo, Col: fieldCol(line, 1), Src: line,
				Msg: fmt.Sprintf("bad partition id %q", fields[1]),
			}
		}
		entries = append(entries, clusterEntry{vertex: vertex, part: part, line: lineNo, src: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("decfmt: %w", err)
	}
	return entries, nil
}

// fieldCol returns the 1-based column where the n-th whitespace-separated
// field of line starts.
func fieldCol(line string, n int) int {
	inField := false
	field := -1
	for i, r := range line {
		if unicode.IsSpace(r) {
			inField = false
			continue
		}
		if !inField {
			inField = true
			field++
			if field == n {
				return i + 1
			}
		}
	}
	return 1
}
