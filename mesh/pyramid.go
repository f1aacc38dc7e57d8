package mesh

// Vertex is a position in object space and an RGB color in [0,1].
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// Face is a run of indices into the vertex buffer.
type Face struct {
	Name  string
	Start int
	Count int
}

// Geometry is an indexed vertex set. Indices are single bytes, so a geometry
// holds at most 256 vertices.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint8
	Faces    []Face
}

// floatsPerVertex is the interleaved width: three position then three color.
const floatsPerVertex = 6

// Pyramid returns the square-based pyramid: apex first, then the base corners
// front-left, front-right, back-right, back-left.
func Pyramid() *Geometry {
	return &Geometry{
		Vertices: []Vertex{
			{Position: [3]float32{0, 1, 0}, Color: [3]float32{1, 0, 0}},
			{Position: [3]float32{-1, -1, 1}, Color: [3]float32{0, 1, 0}},
			{Position: [3]float32{1, -1, 1}, Color: [3]float32{0, 0, 1}},
			{Position: [3]float32{1, -1, -1}, Color: [3]float32{1, 0, 0}},
			{Position: [3]float32{-1, -1, -1}, Color: [3]float32{0, 1, 0}},
		},
		Indices: []uint8{
			0, 1, 2,
			0, 2, 3,
			0, 3, 4,
			0, 4, 1,
			1, 2, 3, 4,
		},
		Faces: []Face{
			{Name: "front", Start: 0, Count: 3},
			{Name: "right", Start: 3, Count: 3},
			{Name: "back", Start: 6, Count: 3},
			{Name: "left", Start: 9, Count: 3},
			{Name: "bottom", Start: 12, Count: 4},
		},
	}
}

// Interleave flattens the vertices into position/color runs ready for a
// single array buffer.
func (g *Geometry) Interleave() []float32 {
	out := make([]float32, 0, len(g.Vertices)*floatsPerVertex)
	for _, v := range g.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Color[:]...)
	}
	return out
}

// FaceIndices returns the indices belonging to f.
func (g *Geometry) FaceIndices(f Face) []uint8 {
	return g.Indices[f.Start : f.Start+f.Count]
}
