package assets

import "github.com/Faultbox/midgard-xr/pkg/math"

// faceNormals assigns each vertex the normalized sum of the normals of the
// triangles that reference it. Vertices outside every triangle keep their normal.
func faceNormals(vertices []Vertex, indices []uint32) {
	sums := make([]math.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		pa := vec(vertices[a].Position)
		n := vec(vertices[b].Position).Sub(pa).Cross(vec(vertices[c].Position).Sub(pa))
		sums[a] = sums[a].Add(n)
		sums[b] = sums[b].Add(n)
		sums[c] = sums[c].Add(n)
	}
	for i, s := range sums {
		if s.LengthSq() == 0 {
			continue
		}
		vertices[i].Normal = s.Normalize().Array()
	}
}

// smoothNormals averages normals of vertices that share a position, so split
// vertices at hard edges shade as one surface.
func smoothNormals(vertices []Vertex) {
	const epsilon float32 = 0.001

	byPos := make(map[[3]int32][]int)
	for i := range vertices {
		p := vertices[i].Position
		key := [3]int32{int32(p[0] / epsilon), int32(p[1] / epsilon), int32(p[2] / epsilon)}
		byPos[key] = append(byPos[key], i)
	}

	for _, idxs := range byPos {
		if len(idxs) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(vec(vertices[idx].Normal))
		}
		if sum.LengthSq() == 0 {
			continue
		}
		avg := sum.Normalize().Array()
		for _, idx := range idxs {
			vertices[idx].Normal = avg
		}
	}
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
