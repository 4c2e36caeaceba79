package morph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformedSWC is returned for SWC input that cannot be turned into a
// neuron: bad columns, duplicate or missing ids, or parent cycles.
var ErrMalformedSWC = errors.New("morph: malformed SWC")

// swcColumns is the number of mandatory SWC columns:
// id, type, x, y, z, radius, parent.
const swcColumns = 7

type swcRecord struct {
	id     int
	typ    int
	point  Point
	parent int
	line   int
}

// ReadSWC parses an SWC reconstruction. name is used for the neuron name and
// in error messages.
//
// Soma records (type 1) become the neuron's soma. Every other record whose
// parent is -1 or a soma record starts a neurite; its type gives the tree
// type. Sections break at branch points and terminations.
func ReadSWC(r io.Reader, name string) (*Neuron, error) {
	records, err := parseSWC(r, name)
	if err != nil {
		return nil, err
	}
	return buildNeuron(records, name)
}

// LoadNeuron reads an SWC file. The neuron is named after the file, without
// its extension.
func LoadNeuron(path string) (*Neuron, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("morph: open %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	nrn, err := ReadSWC(f, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nrn, nil
}

func parseSWC(r io.Reader, name string) ([]swcRecord, error) {
	var records []swcRecord
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < swcColumns {
			return nil, fmt.Errorf("%w: %s:%d: expected %d columns, got %d",
				ErrMalformedSWC, name, lineNo, swcColumns, len(fields))
		}

		var vals [swcColumns]float64
		for i := range vals {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: column %d: %v", ErrMalformedSWC, name, lineNo, i+1, err)
			}
			vals[i] = v
		}
		for _, col := range []int{0, 1, 6} {
			if vals[col] != math.Trunc(vals[col]) {
				return nil, fmt.Errorf("%w: %s:%d: column %d must be an integer, got %g",
					ErrMalformedSWC, name, lineNo, col+1, vals[col])
			}
		}

		records = append(records, swcRecord{
			id:     int(vals[0]),
			typ:    int(vals[1]),
			point:  Point{X: vals[2], Y: vals[3], Z: vals[4], R: vals[5]},
			parent: int(vals[6]),
			line:   lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("morph: reading %s: %w", name, err)
	}
	return records, nil
}

func buildNeuron(records []swcRecord, name string) (*Neuron, error) {
	index := make(map[int]int, len(records))
	for i, rec := range records {
		if prev, dup := index[rec.id]; dup {
			return nil, fmt.Errorf("%w: %s:%d: duplicate id %d (first seen on line %d)",
				ErrMalformedSWC, name, rec.line, rec.id, records[prev].line)
		}
		index[rec.id] = i
	}

	isSoma := func(i int) bool { return swcTreeType(records[i].typ) == Soma }

	// parentIdx[i] is the record index of i's parent, or -1.
	parentIdx := make([]int, len(records))
	children := make([][]int, len(records))
	uf := newUnionFind(len(records))
	for i, rec := range records {
		parentIdx[i] = -1
		if rec.parent == -1 {
			continue
		}
		p, ok := index[rec.parent]
		if !ok {
			return nil, fmt.Errorf("%w: %s:%d: id %d has unknown parent %d",
				ErrMalformedSWC, name, rec.line, rec.id, rec.parent)
		}
		if isSoma(i) && !isSoma(p) {
			return nil, fmt.Errorf("%w: %s:%d: soma point %d has non-soma parent %d",
				ErrMalformedSWC, name, rec.line, rec.id, rec.parent)
		}
		if !uf.union(i, p) {
			return nil, fmt.Errorf("%w: %s:%d: parent link %d -> %d closes a cycle",
				ErrMalformedSWC, name, rec.line, rec.id, rec.parent)
		}
		parentIdx[i] = p
		if !isSoma(i) {
			children[p] = append(children[p], i)
		}
	}

	nrn := &Neuron{Name: name}
	for i, rec := range records {
		if isSoma(i) {
			nrn.Soma = append(nrn.Soma, rec.point)
			continue
		}
		if p := parentIdx[i]; p == -1 || isSoma(p) {
			tree := &Tree{Type: swcTreeType(rec.typ)}
			tree.Root = buildSections(records, children, i)
			assignSectionIDs(tree)
			nrn.Trees = append(nrn.Trees, tree)
		}
	}
	return nrn, nil
}

// buildSections grows the section tree rooted at record root. A section
// continues while its last point has exactly one child; branch points end a
// section and each child starts a new one beginning at the branch point.
func buildSections(records []swcRecord, children [][]int, root int) *Section {
	type pending struct {
		section *Section
		next    int
	}

	rootSection := &Section{Points: []Point{records[root].point}}
	stack := []pending{{section: rootSection, next: root}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s, idx := cur.section, cur.next
		for len(children[idx]) == 1 {
			idx = children[idx][0]
			s.Points = append(s.Points, records[idx].point)
		}
		kids := children[idx]
		s.Children = make([]*Section, len(kids))
		for k, kid := range kids {
			s.Children[k] = &Section{Points: []Point{records[idx].point, records[kid].point}, Parent: s}
		}
		// Push in reverse so children are expanded in file order.
		for k := len(kids) - 1; k >= 0; k-- {
			stack = append(stack, pending{section: s.Children[k], next: kids[k]})
		}
	}
	return rootSection
}

// assignSectionIDs numbers the sections of t breadth first from 0.
func assignSectionIDs(t *Tree) {
	id := 0
	for s := range t.SectionsBreadthFirst() {
		s.ID = id
		id++
	}
}
