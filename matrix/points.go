package matrix

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

// Point is a city in the Euclidean plane.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// FromPoints builds the full Euclidean distance matrix of pts.
// Complexity: O(n²).
func FromPoints(pts []Point) (*Dense, error) {
	n := len(pts)
	if n == 0 {
		return nil, errors.Wrap(ErrDimension, "FromPoints: no points")
	}
	var i, j int
	for i = 0; i < n; i++ {
		if math.IsNaN(pts[i].X) || math.IsNaN(pts[i].Y) || math.IsInf(pts[i].X, 0) || math.IsInf(pts[i].Y, 0) {
			return nil, errors.Wrapf(ErrNaN, "FromPoints: point %d", i)
		}
	}
	m := &Dense{n: n, data: make([]float64, n*n)}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			m.Set(i, j, pts[i].Dist(pts[j]))
		}
	}

	return m, nil
}

// RandomEuclidean draws n points uniformly from the square [0, 100·√n)² and
// returns their distance matrix. The side grows with √n so the expected
// nearest-neighbour distance stays roughly constant across sizes.
func RandomEuclidean(n int, r *rand.Rand) (*Dense, []Point, error) {
	if n <= 0 {
		return nil, nil, errors.Wrapf(ErrDimension, "RandomEuclidean(%d)", n)
	}
	side := 100 * math.Sqrt(float64(n))
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{X: r.Float64() * side, Y: r.Float64() * side}
	}
	m, err := FromPoints(pts)
	if err != nil {
		return nil, nil, err
	}

	return m, pts, nil
}
