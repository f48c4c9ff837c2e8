package kernel

import (
	"fmt"

	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/core"
	"github.com/MagisterBYTE/Lotus.Basis-sub002/engine/mesh"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Box returns an axis aligned box of the given size centered on the origin.
func Box(x, y, z float64) (sdf.SDF3, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("box size (%g, %g, %g): %w", x, y, z, core.ErrInvalidArgument)
	}
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, fmt.Errorf("box: %w", err)
	}
	return s, nil
}

// Cylinder returns a cylinder along the Z axis centered on the origin.
func Cylinder(height, radius float64) (sdf.SDF3, error) {
	if height <= 0 || radius <= 0 {
		return nil, fmt.Errorf("cylinder height=%g radius=%g: %w", height, radius, core.ErrInvalidArgument)
	}
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}
	return s, nil
}

func Sphere(radius float64) (sdf.SDF3, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius=%g: %w", radius, core.ErrInvalidArgument)
	}
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	return s, nil
}

// Translate moves a solid by (x, y, z).
func Translate(s sdf.SDF3, x, y, z float64) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

/**
 * @brief Tessellates a solid with uniform marching cubes.
 * Every triangle gets its own three vertices carrying the face normal, so the
 * result is not welded and its shared edges come out as common edges.
 *
 * @param name The name of the mesh.
 * @param s The solid.
 * @param cells The number of cells along the longest side of the bounding box.
 * @return The mesh with its bounding box computed.
 */
func Tessellate(name string, s sdf.SDF3, cells int) (*mesh.Mesh, error) {
	if s == nil {
		return nil, fmt.Errorf("tessellate '%s': nil solid: %w", name, core.ErrInvalidArgument)
	}
	if cells < 1 {
		return nil, fmt.Errorf("tessellate '%s': cells=%d: %w", name, cells, core.ErrInvalidArgument)
	}

	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	if len(triangles) == 0 {
		return nil, fmt.Errorf("tessellate '%s': no surface at %d cells: %w", name, cells, core.ErrDegenerateGeometry)
	}

	positions := make([]float32, 0, len(triangles)*9)
	normals := make([]float32, 0, len(triangles)*9)
	indices := make([]uint32, 0, len(triangles)*3)
	for _, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			indices = append(indices, uint32(len(positions)/3))
			positions = append(positions, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, float32(n.X), float32(n.Y), float32(n.Z))
		}
	}

	m, err := mesh.NewFromArrays(name, positions, normals, nil, indices)
	if err != nil {
		return nil, err
	}
	core.LogDebug("kernel: tessellated '%s' at %d cells into %d triangles.", name, cells, m.TriangleCount())
	return m, nil
}
