package model

import (
	"fmt"
	"math/bits"
	"strings"
)

// Layer is a bitmask selecting which camera layers render an object.
type Layer uint32

const (
	Layer0 Layer = 1 << iota
	Layer1
	Layer2
	Layer3
	Layer4
	Layer5
	Layer6
	Layer7
	Layer8
	Layer9
	LayerVFX

	LayerDefault = Layer0
	LayerAll     Layer = 0xFFFF
	// LayerAllRegular is every layer except LayerVFX.
	LayerAllRegular = LayerAll &^ LayerVFX
)

var layerNames = map[string]Layer{
	"layer0": Layer0,
	"layer1": Layer1,
	"layer2": Layer2,
	"layer3": Layer3,
	"layer4": Layer4,
	"layer5": Layer5,
	"layer6": Layer6,
	"layer7": Layer7,
	"layer8": Layer8,
	"layer9": Layer9,
	"vfx":    LayerVFX,
	"all":    LayerAll,
}

// Has reports whether every bit of other is set in l.
func (l Layer) Has(other Layer) bool {
	return l&other == other
}

// Overlaps reports whether l and other share any bit.
func (l Layer) Overlaps(other Layer) bool {
	return l&other != 0
}

func (l Layer) String() string {
	if l == LayerAll {
		return "all"
	}
	var parts []string
	for rest := l; rest != 0; rest &= rest - 1 {
		bit := Layer(1) << bits.TrailingZeros32(uint32(rest))
		switch {
		case bit == LayerVFX:
			parts = append(parts, "vfx")
		case bit <= Layer9:
			parts = append(parts, fmt.Sprintf("layer%d", bits.TrailingZeros32(uint32(bit))))
		default:
			parts = append(parts, fmt.Sprintf("0x%x", uint32(bit)))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseLayers combines layer names ("layer0".."layer9", "vfx", "all") into a mask.
func ParseLayers(names []string) (Layer, error) {
	var mask Layer
	for _, name := range names {
		l, ok := layerNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown render layer %q", name)
		}
		mask |= l
	}
	return mask, nil
}
