// Package orbit holds the unit conventions and two-body math used by the
// simulation. Distances are in AU, times in seconds and GM in AU³/s².
package orbit

import "math"

const (
	// AU is the astronomical unit in kilometers.
	AU = 149597871.0

	// GMSun is the Sun's gravitational parameter in AU³/s².
	GMSun = 1.327124400e11 / AU / AU / AU

	// RSun is the solar radius in AU.
	RSun = 695800.0 / AU

	// Epsilon guards divisions by near-zero vector lengths.
	Epsilon = 1e-40

	// Acceleration is full-throttle vessel thrust in AU/s².
	Acceleration = 5e-10
)

// KmToAU converts kilometers to AU.
func KmToAU(km float64) float64 {
	return km / AU
}

// AUToKm converts AU to kilometers.
func AUToKm(au float64) float64 {
	return au * AU
}

// GMFromKm converts a gravitational parameter in km³/s² to AU³/s².
func GMFromKm(gm float64) float64 {
	return gm / AU / AU / AU
}

// Deg converts degrees to radians.
func Deg(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToDeg converts radians to degrees.
func ToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
