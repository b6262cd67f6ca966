// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-xr/pkg/math"
)

// Sun is a directional light placed by compass angles in degrees.
// Azimuth rotates around +Y starting at +Z; elevation is measured up from the horizon.
type Sun struct {
	Azimuth   float32
	Elevation float32
}

// ToSun returns the unit vector pointing from the scene towards the sun.
func (s Sun) ToSun() math.Vec3 {
	sinLat, cosLat := math32.Sincos(math.Radians(s.Elevation))
	sinLon, cosLon := math32.Sincos(math.Radians(s.Azimuth))
	return math.V3(cosLat*sinLon, sinLat, cosLat*cosLon)
}

// Direction returns the unit vector light travels along, away from the sun.
func (s Sun) Direction() math.Vec3 {
	return s.ToSun().Scale(-1)
}
