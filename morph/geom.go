package morph

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Distance returns the Euclidean distance between the positions of a and b.
// Radii are ignored.
func Distance(a, b Point) float64 {
	return r3.Norm(r3.Sub(a.Vec(), b.Vec()))
}

// DistanceSquared returns the squared Euclidean distance between a and b.
func DistanceSquared(a, b Point) float64 {
	return r3.Norm2(r3.Sub(a.Vec(), b.Vec()))
}

// PathLength returns the length of the polyline through points.
// Fewer than two points have length 0.
func PathLength(points []Point) float64 {
	var sum float64
	for i := 1; i < len(points); i++ {
		sum += Distance(points[i-1], points[i])
	}
	return sum
}

// Angle3Points returns the angle in radians at vertex p0 between the rays
// p0->p1 and p0->p2, in [0, π]. If either ray has zero length the angle is 0.
func Angle3Points(p0, p1, p2 Point) float64 {
	u := r3.Sub(p1.Vec(), p0.Vec())
	v := r3.Sub(p2.Vec(), p0.Vec())
	return math.Atan2(r3.Norm(r3.Cross(u, v)), r3.Dot(u, v))
}
