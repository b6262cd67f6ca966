package model

import "testing"

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{0, "none"},
		{Layer0, "layer0"},
		{Layer2 | Layer9, "layer2|layer9"},
		{LayerVFX, "vfx"},
		{LayerAll, "all"},
	}
	for _, tt := range tests {
		if got := tt.layer.String(); got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", uint32(tt.layer), got, tt.want)
		}
	}
}

func TestParseLayers(t *testing.T) {
	got, err := ParseLayers([]string{"layer1", " VFX "})
	if err != nil {
		t.Fatalf("ParseLayers: %v", err)
	}
	if got != Layer1|LayerVFX {
		t.Errorf("ParseLayers = %v", got)
	}
	if _, err := ParseLayers([]string{"layer42"}); err == nil {
		t.Error("expected error for unknown layer")
	}
}

func TestLayerHas(t *testing.T) {
	mask := Layer0 | Layer1
	if !mask.Has(Layer1) || mask.Has(Layer2) {
		t.Errorf("Has on %v", mask)
	}
	if !LayerAll.Overlaps(LayerVFX) || LayerAllRegular.Overlaps(LayerVFX) {
		t.Error("Overlaps with vfx")
	}
}
