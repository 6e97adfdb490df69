package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SampleOrbit returns n points evenly spaced in true anomaly around a closed
// orbit, starting at periapsis. Unbound orbits yield nil.
func SampleOrbit(el Elements, n int) []mgl64.Vec3 {
	if n <= 0 || !el.Bound() {
		return nil
	}

	rot := PlaneRotation(el)
	p := el.SemimajorAxis * (1 - el.Eccentricity*el.Eccentricity)
	points := make([]mgl64.Vec3, n)
	for i := range points {
		nu := 2 * math.Pi * float64(i) / float64(n)
		r := p / (1 + el.Eccentricity*math.Cos(nu))
		points[i] = rot.Rotate(mgl64.Vec3{r * math.Sin(nu), r * math.Cos(nu), 0})
	}
	return points
}
