package morph

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

// Direction selects one of the three principal directions of a point cloud,
// ordered by decreasing variance.
type Direction int

const (
	FirstDirection Direction = iota
	SecondDirection
	ThirdDirection
)

// ErrUnknownDirection is returned when parsing an unrecognized direction.
var ErrUnknownDirection = errors.New("morph: unknown principal direction")

// ErrExtent is returned when the principal component analysis of a tree's
// points fails.
var ErrExtent = errors.New("morph: principal component analysis failed")

var directionNames = [...]string{"first", "second", "third"}

func (d Direction) String() string {
	if d >= FirstDirection && d <= ThirdDirection {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection converts "first", "second" or "third" into a Direction.
// An empty name parses as FirstDirection.
func ParseDirection(name string) (Direction, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return FirstDirection, nil
	}
	for i, n := range directionNames {
		if n == key {
			return Direction(i), nil
		}
	}
	return FirstDirection, fmt.Errorf("%w: %q", ErrUnknownDirection, name)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d < FirstDirection || d > ThirdDirection {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PrincipalDirectionExtent returns the extent of the tree's points along each
// of its three principal directions: the range of the point projections onto
// each principal component, largest variance first. Directions that the
// point cloud does not span (fewer than three points) have extent 0.
func PrincipalDirectionExtent(t *Tree) ([3]float64, error) {
	var extents [3]float64

	var flat []float64
	for p := range t.Points() {
		flat = append(flat, p.X, p.Y, p.Z)
	}
	n := len(flat) / 3
	if n < 2 {
		return extents, nil
	}

	points := mat.NewDense(n, 3, flat)
	var pc stat.PC
	if !pc.PrincipalComponents(points, nil) {
		return extents, fmt.Errorf("%w: %d points", ErrExtent, n)
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	_, k := vecs.Dims()
	for j := 0; j < k && j < len(extents); j++ {
		dir := r3.Vec{X: vecs.At(0, j), Y: vecs.At(1, j), Z: vecs.At(2, j)}
		lo, hi := projectionRange(points, dir)
		extents[j] = hi - lo
	}
	return extents, nil
}

// projectionRange returns the smallest and largest scalar projection of the
// rows of points onto dir.
func projectionRange(points *mat.Dense, dir r3.Vec) (lo, hi float64) {
	n, _ := points.Dims()
	for i := 0; i < n; i++ {
		p := r3.Vec{X: points.At(i, 0), Y: points.At(i, 1), Z: points.At(i, 2)}
		proj := r3.Dot(p, dir)
		if i == 0 || proj < lo {
			lo = proj
		}
		if i == 0 || proj > hi {
			hi = proj
		}
	}
	return lo, hi
}
