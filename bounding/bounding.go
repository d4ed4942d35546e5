// Package bounding calculates bounding spheres and axis-aligned bounding
// boxes for collections of points. All functions are pure reductions: they
// never fail and return zeroed results for empty input.
package bounding

import (
	"github.com/chewxy/math32"

	"github.com/spaghettifunk/geometry-tools/math"
)

/**
 * @brief Calculates the axis-aligned bounding box containing all the
 * supplied points. If points is empty, both extents are zero.
 */
func AABBFromPoints(points []math.Vec3) math.Extents3D {
	if len(points) == 0 {
		return math.Extents3D{}
	}

	minXYZ := points[0]
	maxXYZ := points[0]
	for _, point := range points[1:] {
		minXYZ = minXYZ.Min(point)
		maxXYZ = maxXYZ.Max(point)
	}

	return math.Extents3D{Min: minXYZ, Max: maxXYZ}
}

/**
 * @brief Calculates a sphere that contains all the supplied points.
 * The result may be larger than the optimal solution: the center is the
 * arithmetic mean of the points rather than the true minimal-enclosing
 * center, which avoids an iterative refinement pass.
 * If points is empty, the center and radius are both zero.
 */
func SphereFromPoints(points []math.Vec3) math.Sphere {
	if len(points) == 0 {
		return math.Sphere{}
	}

	sum := math.NewVec3Zero()
	for _, point := range points {
		sum = sum.Add(point)
	}
	center := sum.MulScalar(1.0 / float32(len(points)))

	// Find the smallest radius that contains all points given the center.
	radiusSquared := float32(0.0)
	for _, point := range points {
		if lengthSquared := point.DistanceSquared(center); lengthSquared > radiusSquared {
			radiusSquared = lengthSquared
		}
	}

	return math.Sphere{Center: center, Radius: math32.Sqrt(radiusSquared)}
}

/**
 * @brief Calculates a sphere that fully contains all the supplied spheres.
 * The result may be larger than the optimal solution.
 * If spheres is empty, the center and radius are both zero.
 */
func SphereFromSpheres(spheres []math.Sphere) math.Sphere {
	if len(spheres) == 0 {
		return math.Sphere{}
	}

	sum := math.NewVec3Zero()
	for _, sphere := range spheres {
		sum = sum.Add(sphere.Center)
	}
	center := sum.MulScalar(1.0 / float32(len(spheres)))

	// A sphere is contained when the distance between centers plus its
	// radius does not exceed the enclosing radius, so grow the radius to
	// the largest such sum.
	radius := float32(0.0)
	for _, sphere := range spheres {
		if length := sphere.Center.Distance(center) + sphere.Radius; length > radius {
			radius = length
		}
	}

	return math.Sphere{Center: center, Radius: radius}
}
