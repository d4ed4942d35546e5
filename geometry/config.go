// Package geometry composes the attribute calculators into mesh-level
// operations: deriving the full set of per-vertex attributes and bounding
// volumes for a configuration, and deduplicating vertices after a loader
// has emitted one vertex per face corner.
package geometry

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/geometry-tools/bounding"
	"github.com/spaghettifunk/geometry-tools/math"
	"github.com/spaghettifunk/geometry-tools/vectors"
)

// Meshes with at least this many faces accumulate normals on the parallel
// path; below it the goroutine handoff costs more than it saves.
const parallelFaceThreshold = 4096

/**
 * @brief Represents the configuration for a geometry: flat per-vertex
 * attribute arrays plus the derived values filled in by DeriveAttributes.
 */
type Config struct {
	/** @brief The Name of the geometry. */
	Name string

	/** @brief An array of vertex positions. */
	Positions []math.Vec3
	/** @brief An array of vertex normals. May be empty until derived. */
	Normals []math.Vec3
	/** @brief An array of texture coordinates. */
	UVs []math.Vec2
	/** @brief An array of triangle indices. */
	Indices []uint32

	/** @brief Derived per-vertex tangents with the handedness sign in W. */
	Tangents []math.Vec4

	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief A sphere containing the whole geometry. */
	Sphere math.Sphere
}

// NewConfig builds a configuration around the supplied arrays. An empty
// name is replaced with a generated one so every geometry stays addressable.
func NewConfig(name string, positions []math.Vec3, normals []math.Vec3, uvs []math.Vec2, indices []uint32) *Config {
	if name == "" {
		name = uuid.New().String()
	}
	return &Config{
		Name:      name,
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   indices,
	}
}

// DeriveOptions selects which attributes DeriveAttributes computes.
// Bounding volumes are always refreshed.
type DeriveOptions struct {
	// SmoothNormals replaces the normal array with smooth per-vertex
	// normals computed from positions and indices.
	SmoothNormals bool
	// Tangents fills the packed tangent array. Requires normals (supplied
	// or derived in the same call) and UVs.
	Tangents bool
	// Goroutines bounds the parallel normal accumulation on large meshes;
	// 0 selects one goroutine per CPU.
	Goroutines int
}

// DeriveAttributes computes the requested per-vertex attributes and the
// bounding volumes of the configuration in place. On error the config is
// left unchanged.
func (c *Config) DeriveAttributes(opts DeriveOptions) error {
	normals := c.Normals
	if opts.SmoothNormals {
		var derived []math.Vec3
		var err error
		if len(c.Indices)/3 >= parallelFaceThreshold {
			derived, err = vectors.CalculateSmoothNormalsParallel(c.Positions, c.Indices, opts.Goroutines)
		} else {
			derived, err = vectors.CalculateSmoothNormals(c.Positions, c.Indices)
		}
		if err != nil {
			return err
		}
		// A mesh with no faces derives no normals; keep whatever the
		// loader supplied.
		if len(derived) > 0 {
			normals = derived
		}
	}

	tangents := c.Tangents
	if opts.Tangents {
		derived, err := vectors.CalculateTangents(c.Positions, normals, c.UVs, c.Indices)
		if err != nil {
			return err
		}
		tangents = derived
	}

	c.Normals = normals
	c.Tangents = tangents
	c.Extents = bounding.AABBFromPoints(c.Positions)
	c.Sphere = bounding.SphereFromPoints(c.Positions)
	c.Center = c.Sphere.Center
	return nil
}
