package lighting

import (
	"testing"

	"github.com/Faultbox/midgard-xr/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name string
		sun  Sun
		want math.Vec3
	}{
		{"overhead", Sun{Azimuth: 0, Elevation: 90}, math.V3(0, -1, 0)},
		{"horizon front", Sun{Azimuth: 0, Elevation: 0}, math.V3(0, 0, -1)},
		{"horizon right", Sun{Azimuth: 90, Elevation: 0}, math.V3(-1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sun.Direction()
			if !got.ApproxEqual(tt.want, 1e-6) {
				t.Errorf("Direction() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSunDirectionIsUnit(t *testing.T) {
	if l := (Sun{Azimuth: 35, Elevation: 55}).Direction().Length(); l < 0.99999 || l > 1.00001 {
		t.Errorf("length = %v", l)
	}
}
