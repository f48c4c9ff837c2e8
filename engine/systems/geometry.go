package systems

import (
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/mesh"
)

const (
	DefaultMeshName = "default"
	// DefaultSegments is used when a round primitive is asked for fewer than
	// three segments.
	DefaultSegments uint32 = 16
)

/**
 * @brief Adds a rows x columns grid of quads to m. The grid spans colAxis and
 * rowAxis around center; its faces point along rowAxis x colAxis.
 */
func addGridFace(m *mesh.Mesh, center, colAxis, rowAxis, normal math.Vec3, columns, rows uint32, tileX, tileY float32) error {
	vb := m.Vertices()
	start := vb.Len()
	origin := center.Sub(colAxis.MulScalar(0.5)).Sub(rowAxis.MulScalar(0.5))
	for r := uint32(0); r <= rows; r++ {
		fr := float32(r) / float32(rows)
		for c := uint32(0); c <= columns; c++ {
			fc := float32(c) / float32(columns)
			position := origin.Add(colAxis.MulScalar(fc)).Add(rowAxis.MulScalar(fr))
			vb.AddVertex(position, normal, math.NewVec2(fc*tileX, fr*tileY))
		}
	}
	return m.Triangles().AddRegularGrid(start, int(columns), int(rows), false)
}

func finishGenerated(m *mesh.Mesh) *mesh.Mesh {
	m.HasUVMap = true
	if err := m.ComputeTangents(); err != nil {
		core.LogWarn("generated mesh '%s': %s", m.Name, err)
	}
	m.ComputeLocalBoundingBox()
	return m
}

func meshName(name string) string {
	if len(name) > 0 {
		return name
	}
	return DefaultMeshName
}

/**
 * @brief Generates a plane in the XY plane, facing +Z and centered on the origin.
 *
 * @param width The overall width of the plane. Must be positive.
 * @param height The overall height of the plane. Must be positive.
 * @param xSegmentCount The number of segments along the x-axis. Must be non-zero.
 * @param ySegmentCount The number of segments along the y-axis. Must be non-zero.
 * @param tileX The number of times the texture should tile across the x-axis. Must be non-zero.
 * @param tileY The number of times the texture should tile across the y-axis. Must be non-zero.
 * @param name The name of the generated mesh.
 * @return The generated mesh with (xSegmentCount+1)*(ySegmentCount+1) shared vertices.
 */
func GeneratePlane(width, height float32, xSegmentCount, ySegmentCount uint32, tileX, tileY float32, name string) (*mesh.Mesh, error) {
	if width <= 0 {
		core.LogWarn("Width must be positive. Defaulting to one.")
		width = 1.0
	}
	if height <= 0 {
		core.LogWarn("Height must be positive. Defaulting to one.")
		height = 1.0
	}
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if ySegmentCount < 1 {
		core.LogWarn("ySegmentCount must be a positive number. Defaulting to one.")
		ySegmentCount = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	m := mesh.New(meshName(name))
	// Rows run top to bottom so the faces point to +Z.
	err := addGridFace(m, math.NewVec3Zero(), math.NewVec3(width, 0, 0), math.NewVec3(0, -height, 0),
		math.NewVec3(0, 0, 1), xSegmentCount, ySegmentCount, tileX, tileY)
	if err != nil {
		return nil, err
	}
	return finishGenerated(m), nil
}

/**
 * @brief Generates an axis-aligned box centered on the origin. Each side has
 * its own four vertices, so the box edges are common edges once computed.
 */
func GenerateCube(width, height, depth, tileX, tileY float32, name string) (*mesh.Mesh, error) {
	if width <= 0 {
		core.LogWarn("Width must be positive. Defaulting to one.")
		width = 1.0
	}
	if height <= 0 {
		core.LogWarn("Height must be positive. Defaulting to one.")
		height = 1.0
	}
	if depth <= 0 {
		core.LogWarn("Depth must be positive. Defaulting to one.")
		depth = 1.0
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	hw, hh, hd := width*0.5, height*0.5, depth*0.5
	faces := []struct {
		center, col, row, normal math.Vec3
	}{
		// Front
		{math.NewVec3(0, 0, hd), math.NewVec3(width, 0, 0), math.NewVec3(0, -height, 0), math.NewVec3(0, 0, 1)},
		// Back
		{math.NewVec3(0, 0, -hd), math.NewVec3(-width, 0, 0), math.NewVec3(0, -height, 0), math.NewVec3(0, 0, -1)},
		// Right
		{math.NewVec3(hw, 0, 0), math.NewVec3(0, 0, -depth), math.NewVec3(0, -height, 0), math.NewVec3(1, 0, 0)},
		// Left
		{math.NewVec3(-hw, 0, 0), math.NewVec3(0, 0, depth), math.NewVec3(0, -height, 0), math.NewVec3(-1, 0, 0)},
		// Top
		{math.NewVec3(0, hh, 0), math.NewVec3(width, 0, 0), math.NewVec3(0, 0, depth), math.NewVec3(0, 1, 0)},
		// Bottom
		{math.NewVec3(0, -hh, 0), math.NewVec3(width, 0, 0), math.NewVec3(0, 0, -depth), math.NewVec3(0, -1, 0)},
	}

	m := mesh.New(meshName(name))
	for _, f := range faces {
		if err := addGridFace(m, f.center, f.col, f.row, f.normal, 1, 1, tileX, tileY); err != nil {
			return nil, err
		}
	}
	return finishGenerated(m), nil
}

// addFan adds a closed fan at center. The rim runs counter-clockwise seen
// from the side normal points to, starting on the first axis.
func addFan(m *mesh.Mesh, center, first, second, normal math.Vec3, radius float32, segments uint32) error {
	vb := m.Vertices()
	start := vb.AddVertex(center, normal, math.NewVec2(0.5, 0.5))
	for i := uint32(0); i < segments; i++ {
		angle := 2 * math.K_PI * float32(i) / float32(segments)
		cos, sin := math.Cos(angle), math.Sin(angle)
		position := center.Add(first.MulScalar(cos * radius)).Add(second.MulScalar(sin * radius))
		vb.AddVertex(position, normal, math.NewVec2(0.5+0.5*cos, 0.5-0.5*sin))
	}
	return m.Triangles().AddTriangleFan(start, int(segments)-1, true)
}

/**
 * @brief Generates a disc in the XY plane, facing +Z, as a closed triangle fan.
 */
func GenerateDisc(radius float32, segments uint32, name string) (*mesh.Mesh, error) {
	if radius <= 0 {
		core.LogWarn("Radius must be positive. Defaulting to one.")
		radius = 1.0
	}
	if segments < 3 {
		core.LogWarn("Segments must be at least 3. Defaulting to %d.", DefaultSegments)
		segments = DefaultSegments
	}

	m := mesh.New(meshName(name))
	err := addFan(m, math.NewVec3Zero(), math.NewVec3(1, 0, 0), math.NewVec3(0, 1, 0), math.NewVec3(0, 0, 1), radius, segments)
	if err != nil {
		return nil, err
	}
	return finishGenerated(m), nil
}

/**
 * @brief Generates a closed cylinder along the Y axis, centered on the origin.
 * The side is a single row grid whose last column is stitched back to the
 * first; the caps are closed fans with their own rim vertices.
 */
func GenerateCylinder(radius, height float32, segments uint32, name string) (*mesh.Mesh, error) {
	if radius <= 0 {
		core.LogWarn("Radius must be positive. Defaulting to one.")
		radius = 1.0
	}
	if height <= 0 {
		core.LogWarn("Height must be positive. Defaulting to one.")
		height = 1.0
	}
	if segments < 3 {
		core.LogWarn("Segments must be at least 3. Defaulting to %d.", DefaultSegments)
		segments = DefaultSegments
	}

	m := mesh.New(meshName(name))
	vb := m.Vertices()
	half := height * 0.5
	// Row 0 is the top ring. Angles run from +X towards -Z so that the side
	// faces point outwards.
	for row := 0; row < 2; row++ {
		y := half
		if row == 1 {
			y = -half
		}
		for i := uint32(0); i < segments; i++ {
			angle := 2 * math.K_PI * float32(i) / float32(segments)
			normal := math.NewVec3(math.Cos(angle), 0, -math.Sin(angle))
			vb.AddVertex(normal.MulScalar(radius).Add(math.NewVec3(0, y, 0)), normal,
				math.NewVec2(float32(i)/float32(segments), float32(row)))
		}
	}
	if err := m.Triangles().AddRegularGrid(0, int(segments)-1, 1, true); err != nil {
		return nil, err
	}

	if err := addFan(m, math.NewVec3(0, half, 0), math.NewVec3(1, 0, 0), math.NewVec3(0, 0, -1), math.NewVec3(0, 1, 0), radius, segments); err != nil {
		return nil, err
	}
	if err := addFan(m, math.NewVec3(0, -half, 0), math.NewVec3(1, 0, 0), math.NewVec3(0, 0, 1), math.NewVec3(0, -1, 0), radius, segments); err != nil {
		return nil, err
	}
	return finishGenerated(m), nil
}
