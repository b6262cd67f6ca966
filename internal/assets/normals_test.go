package assets

import "testing"

func TestFaceNormals(t *testing.T) {
	vertices := []Vertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 1, 0}},
		{Position: [3]float32{5, 5, 5}, Normal: [3]float32{0, 1, 0}},
	}
	faceNormals(vertices, []uint32{0, 1, 2})

	for i := 0; i < 3; i++ {
		if vertices[i].Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d normal = %v, want +Z", i, vertices[i].Normal)
		}
	}
	if vertices[3].Normal != [3]float32{0, 1, 0} {
		t.Errorf("unreferenced vertex normal changed to %v", vertices[3].Normal)
	}
}

func TestSmoothNormals(t *testing.T) {
	vertices := []Vertex{
		{Position: [3]float32{1, 1, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{1, 1, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{2, 0, 0}, Normal: [3]float32{0, 0, 1}},
	}
	smoothNormals(vertices)

	for i := 0; i < 2; i++ {
		n := vertices[i].Normal
		if abs(n[0]-0.70710677) > 1e-5 || abs(n[1]-0.70710677) > 1e-5 || n[2] != 0 {
			t.Errorf("shared vertex %d normal = %v", i, n)
		}
	}
	if vertices[2].Normal != [3]float32{0, 0, 1} {
		t.Errorf("lone vertex normal changed to %v", vertices[2].Normal)
	}
}

func TestDecodeYAMLComputesNormals(t *testing.T) {
	data := []byte("positions: [[0,0,0], [1,0,0], [0,1,0]]\nindices: [0, 1, 2]\n")
	mesh, err := decodeYAML("tri.yaml", data)
	if err != nil {
		t.Fatalf("decodeYAML: %v", err)
	}
	if got := mesh.Vertices()[0].Normal; got != [3]float32{0, 0, 1} {
		t.Errorf("normal = %v, want +Z", got)
	}
	if mesh.Name() != "tri.yaml" {
		t.Errorf("name = %q", mesh.Name())
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
