package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/math"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/mesh"
)

// ObjLoader reads Wavefront OBJ files.
type ObjLoader struct{}

// Load parses the OBJ file at path. The mesh is named after the file.
func (ol *ObjLoader) Load(path string) (*mesh.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	m, err := ParseOBJ(file, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// objCorner is one face corner: position, uv and normal indices, -1 when
// absent.
type objCorner [3]int

type objBuilder struct {
	positions []math.Vec3
	uvs       []math.Vec2
	normals   []math.Vec3

	corners map[objCorner]uint32
	// Flat vertex attributes, one entry per distinct corner.
	outPositions []float32
	outNormals   []float32
	outUVs       []float32

	submeshes [][]uint32
}

/**
 * @brief Parses OBJ data into a mesh.
 * Supported statements are v, vt, vn and f; o and g start a new submesh.
 * Polygons are fan-triangulated. Each distinct v/vt/vn corner becomes its
 * own vertex, so positions shared with different uvs or normals are not
 * welded. When the file has no normals the mesh gets smoothed ones.
 *
 * @param r The OBJ data.
 * @param name The name of the mesh.
 * @return The mesh, or an error naming the offending line.
 */
func ParseOBJ(r io.Reader, name string) (*mesh.Mesh, error) {
	b := &objBuilder{
		corners:   make(map[objCorner]uint32),
		submeshes: [][]uint32{nil},
	}

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		fields := strings.Fields(line)
		var err error
		switch fields[0] {
		case "v":
			var v math.Vec3
			v, err = parseVec3(fields[1:])
			b.positions = append(b.positions, v)
		case "vn":
			var v math.Vec3
			v, err = parseVec3(fields[1:])
			b.normals = append(b.normals, v)
		case "vt":
			var v math.Vec2
			v, err = parseVec2(fields[1:])
			b.uvs = append(b.uvs, v)
		case "f":
			err = b.addFace(fields[1:])
		case "o", "g":
			if len(b.submeshes[len(b.submeshes)-1]) > 0 {
				b.submeshes = append(b.submeshes, nil)
			}
		case "mtllib", "usemtl", "s", "l", "p":
		default:
			core.LogDebug("obj '%s': unknown statement '%s' on line %d. Skipping...", name, fields[0], lineNumber)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var normals []float32
	if len(b.normals) > 0 {
		normals = b.outNormals
	}
	var uvs [][]float32
	if len(b.uvs) > 0 {
		uvs = [][]float32{b.outUVs}
	}
	var submeshes [][]uint32
	for _, s := range b.submeshes {
		if len(s) > 0 {
			submeshes = append(submeshes, s)
		}
	}

	m, err := mesh.NewFromArrays(name, b.outPositions, normals, uvs, submeshes...)
	if err != nil {
		return nil, err
	}
	if normals == nil {
		m.SmoothNormals()
	}
	core.LogDebug("obj '%s': %d vertices, %d triangles in %d submeshes.", name, m.VertexCount(), m.TriangleCount(), len(submeshes))
	return m, nil
}

func (b *objBuilder) addFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face with %d corners: %w", len(fields), core.ErrInsufficientVertices)
	}
	indices := make([]uint32, len(fields))
	for i, field := range fields {
		corner, err := b.parseCorner(field)
		if err != nil {
			return err
		}
		indices[i] = b.vertex(corner)
	}

	current := len(b.submeshes) - 1
	for i := 1; i+1 < len(indices); i++ {
		b.submeshes[current] = append(b.submeshes[current], indices[0], indices[i], indices[i+1])
	}
	return nil
}

// parseCorner reads v, v/vt, v//vn or v/vt/vn. Indices are 1-based;
// negative ones count back from the last element read so far.
func (b *objBuilder) parseCorner(field string) (objCorner, error) {
	parts := strings.Split(field, "/")
	if len(parts) > 3 {
		return objCorner{}, fmt.Errorf("face corner '%s': %w", field, core.ErrInvalidArgument)
	}
	corner := objCorner{-1, -1, -1}
	counts := [3]int{len(b.positions), len(b.uvs), len(b.normals)}
	for i, part := range parts {
		if part == "" {
			if i == 0 {
				return objCorner{}, fmt.Errorf("face corner '%s' has no position: %w", field, core.ErrInvalidArgument)
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return objCorner{}, fmt.Errorf("face corner '%s': %w", field, core.ErrInvalidArgument)
		}
		index := n - 1
		if n < 0 {
			index = counts[i] + n
		}
		if n == 0 || index < 0 || index >= counts[i] {
			return objCorner{}, fmt.Errorf("face corner '%s' (count=%d): %w", field, counts[i], core.ErrIndexOutOfRange)
		}
		corner[i] = index
	}
	return corner, nil
}

func (b *objBuilder) vertex(corner objCorner) uint32 {
	if index, ok := b.corners[corner]; ok {
		return index
	}
	index := uint32(len(b.outPositions) / 3)
	b.corners[corner] = index

	p := b.positions[corner[0]]
	b.outPositions = append(b.outPositions, p.X, p.Y, p.Z)

	var uv math.Vec2
	if corner[1] >= 0 {
		uv = b.uvs[corner[1]]
	}
	b.outUVs = append(b.outUVs, uv.X, uv.Y)

	var n math.Vec3
	if corner[2] >= 0 {
		n = b.normals[corner[2]]
	}
	b.outNormals = append(b.outNormals, n.X, n.Y, n.Z)
	return index
}

func parseFloats(fields []string, count int) ([]float32, error) {
	if len(fields) < count {
		return nil, fmt.Errorf("expected %d values, got %d: %w", count, len(fields), core.ErrInvalidArgument)
	}
	out := make([]float32, count)
	for i := 0; i < count; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value '%s': %w", fields[i], core.ErrInvalidArgument)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	f, err := parseFloats(fields, 3)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.NewVec3(f[0], f[1], f[2]), nil
}

// parseVec2 accepts a lone u, with v defaulting to zero.
func parseVec2(fields []string) (math.Vec2, error) {
	if len(fields) == 1 {
		f, err := parseFloats(fields, 1)
		if err != nil {
			return math.Vec2{}, err
		}
		return math.NewVec2(f[0], 0), nil
	}
	f, err := parseFloats(fields, 2)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.NewVec2(f[0], f[1]), nil
}
