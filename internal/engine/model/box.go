package model

// boxFaces lists each face's outward normal and its four corners, chosen
// from the min (0) or max (1) side per axis, counter-clockwise seen from
// outside.
var boxFaces = [6]struct {
	normal  [3]float32
	corners [4][3]int
}{
	{[3]float32{0, 0, 1}, [4][3]int{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}},  // front
	{[3]float32{0, 0, -1}, [4][3]int{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}}, // back
	{[3]float32{0, 1, 0}, [4][3]int{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}},  // top
	{[3]float32{0, -1, 0}, [4][3]int{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}}, // bottom
	{[3]float32{-1, 0, 0}, [4][3]int{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}}, // left
	{[3]float32{1, 0, 0}, [4][3]int{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}},  // right
}

// BoxGeometry builds a flat-shaded box spanning boxMin..boxMax: 24 vertices
// (4 per face, unshared so each face keeps its own normal) and 36 indices.
func BoxGeometry(boxMin, boxMax [3]float32) ([]Vertex, []uint32) {
	side := [2][3]float32{boxMin, boxMax}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, face := range boxFaces {
		base := uint32(len(vertices))
		for _, c := range face.corners {
			vertices = append(vertices, Vertex{
				Position: [3]float32{side[c[0]][0], side[c[1]][1], side[c[2]][2]},
				Normal:   face.normal,
			})
		}
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return vertices, indices
}
