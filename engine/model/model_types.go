package model

import "math"

// Polyhedron identifies one of the regular solids used by the backdrop.
type Polyhedron int

const (
	PolyhedronOctahedron Polyhedron = iota
	PolyhedronTetrahedron
	PolyhedronIcosahedron
)

// String returns the lowercase name of the polyhedron.
func (p Polyhedron) String() string {
	switch p {
	case PolyhedronOctahedron:
		return "octahedron"
	case PolyhedronTetrahedron:
		return "tetrahedron"
	case PolyhedronIcosahedron:
		return "icosahedron"
	default:
		return "unknown"
	}
}

// polyhedronData holds the unit vertices and triangular faces of a solid.
type polyhedronData struct {
	vertices [][3]float64
	faces    [][3]uint32
}

var goldenRatio = (1 + math.Sqrt(5)) / 2

var polyhedra = map[Polyhedron]polyhedronData{
	PolyhedronTetrahedron: {
		vertices: [][3]float64{{1, 1, 1}, {-1, -1, 1}, {-1, 1, -1}, {1, -1, -1}},
		faces:    [][3]uint32{{2, 1, 0}, {0, 3, 2}, {1, 3, 0}, {2, 3, 1}},
	},
	PolyhedronOctahedron: {
		vertices: [][3]float64{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}},
		faces: [][3]uint32{
			{0, 2, 4}, {0, 4, 3}, {0, 3, 5}, {0, 5, 2},
			{1, 2, 5}, {1, 5, 3}, {1, 3, 4}, {1, 4, 2},
		},
	},
	PolyhedronIcosahedron: {
		vertices: [][3]float64{
			{-1, goldenRatio, 0}, {1, goldenRatio, 0}, {-1, -goldenRatio, 0}, {1, -goldenRatio, 0},
			{0, -1, goldenRatio}, {0, 1, goldenRatio}, {0, -1, -goldenRatio}, {0, 1, -goldenRatio},
			{goldenRatio, 0, -1}, {goldenRatio, 0, 1}, {-goldenRatio, 0, -1}, {-goldenRatio, 0, 1},
		},
		faces: [][3]uint32{
			{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
			{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
			{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
			{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
		},
	},
}

// wireframeEdges returns each undirected triangle edge once, as a line-list index stream,
// in the order the edges are first met.
func wireframeEdges(faces [][3]uint32) []uint32 {
	type edge struct{ a, b uint32 }
	seen := make(map[edge]struct{}, len(faces)*3)
	indices := make([]uint32, 0, len(faces)*3)
	for _, f := range faces {
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			e := edge{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			indices = append(indices, a, b)
		}
	}
	return indices
}

// scaledVertices projects unit-solid vertices onto a sphere of the given radius.
func scaledVertices(vertices [][3]float64, radius float64) []GPUVertex {
	out := make([]GPUVertex, len(vertices))
	for i, v := range vertices {
		l := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		s := radius / l
		out[i] = GPUVertex{Position: [3]float32{float32(v[0] * s), float32(v[1] * s), float32(v[2] * s)}}
	}
	return out
}
