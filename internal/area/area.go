// Package area computes polygon surface areas in square kilometers for
// geometries expressed in either geographic degrees or projected meters.
package area

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/twpayne/go-geom"
)

// Defaults for the projected-coordinate heuristic.
const (
	DefaultProjectedThreshold = 0.6
	DefaultSampleSize         = 20
)

const sqMetersPerSqKm = 1e6

// Options tunes the projected-coordinate detection.
type Options struct {
	// ProjectedThreshold is the fraction of sampled points outside the
	// geographic range at which the geometry is treated as projected.
	ProjectedThreshold float64
	// SampleSize caps the number of coordinates inspected.
	SampleSize int
}

// DefaultOptions returns the default heuristic settings.
func DefaultOptions() Options {
	return Options{
		ProjectedThreshold: DefaultProjectedThreshold,
		SampleSize:         DefaultSampleSize,
	}
}

func (o Options) normalized() Options {
	if o.ProjectedThreshold <= 0 || o.ProjectedThreshold > 1 {
		o.ProjectedThreshold = DefaultProjectedThreshold
	}
	if o.SampleSize <= 0 {
		o.SampleSize = DefaultSampleSize
	}
	return o
}

// Km2 returns the area of a Polygon or MultiPolygon in square kilometers.
// Geographic input uses the spherical ring area; input that looks projected,
// or whose spherical area is not a positive finite number, falls back to the
// planar shoelace area with coordinates read as meters. Other geometry types
// and empty geometries have area 0. The result is always finite and >= 0.
func Km2(g geom.T, opts Options) float64 {
	switch g.(type) {
	case *geom.Polygon, *geom.MultiPolygon:
	default:
		return 0
	}
	if g.Empty() {
		return 0
	}

	opts = opts.normalized()

	if !IsProjected(g, opts) {
		if m2 := SphericalM2(g); finitePositive(m2) {
			return m2 / sqMetersPerSqKm
		}
	}

	m2 := PlanarM2(g)
	if !finitePositive(m2) {
		return 0
	}
	return m2 / sqMetersPerSqKm
}

// SphericalM2 returns the spherical area in square meters, treating
// coordinates as longitude/latitude degrees. Holes are subtracted.
func SphericalM2(g geom.T) float64 {
	switch t := g.(type) {
	case *geom.Polygon:
		return geo.Area(toOrbPolygon(t))
	case *geom.MultiPolygon:
		mp := make(orb.MultiPolygon, 0, t.NumPolygons())
		for i := 0; i < t.NumPolygons(); i++ {
			mp = append(mp, toOrbPolygon(t.Polygon(i)))
		}
		return geo.Area(mp)
	default:
		return 0
	}
}

// PlanarM2 returns the shoelace area in the input units squared: the outer
// ring minus its holes, summed across polygons.
func PlanarM2(g geom.T) float64 {
	switch t := g.(type) {
	case *geom.Polygon:
		return planarPolygon(t)
	case *geom.MultiPolygon:
		var sum float64
		for i := 0; i < t.NumPolygons(); i++ {
			sum += planarPolygon(t.Polygon(i))
		}
		return sum
	default:
		return 0
	}
}

func planarPolygon(p *geom.Polygon) float64 {
	n := p.NumLinearRings()
	if n == 0 {
		return 0
	}
	sum := RingArea(p.LinearRing(0))
	for i := 1; i < n; i++ {
		sum -= RingArea(p.LinearRing(i))
	}
	return sum
}

// RingArea returns the absolute shoelace area of a ring. It sums len-1
// consecutive pairs, so an open ring is closed only if the input repeats its
// first point. Rings with fewer than three points have area 0.
func RingArea(r *geom.LinearRing) float64 {
	if r == nil || r.NumCoords() < 3 {
		return 0
	}
	return math.Abs(r.Area())
}

// IsProjected reports whether enough sampled coordinates fall outside the
// longitude/latitude range to treat the geometry as projected meters.
func IsProjected(g geom.T, opts Options) bool {
	opts = opts.normalized()

	flat := g.FlatCoords()
	stride := g.Stride()
	if stride < 2 || len(flat) < stride {
		return false
	}

	// Sample indices spread evenly over every coordinate, so later parts of
	// a multi-part geometry are inspected too.
	total := len(flat) / stride
	sampled := min(total, opts.SampleSize)

	var outside int
	for k := 0; k < sampled; k++ {
		i := k * total / sampled
		x, y := flat[i*stride], flat[i*stride+1]
		if math.Abs(x) > 180 || math.Abs(y) > 90 {
			outside++
		}
	}
	return float64(outside)/float64(sampled) >= opts.ProjectedThreshold
}

func toOrbPolygon(p *geom.Polygon) orb.Polygon {
	out := make(orb.Polygon, 0, p.NumLinearRings())
	for i := 0; i < p.NumLinearRings(); i++ {
		lr := p.LinearRing(i)
		flat := lr.FlatCoords()
		stride := lr.Stride()
		if stride < 2 {
			continue
		}
		ring := make(orb.Ring, 0, lr.NumCoords())
		for j := 0; j+1 < len(flat); j += stride {
			ring = append(ring, orb.Point{flat[j], flat[j+1]})
		}
		out = append(out, ring)
	}
	return out
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
