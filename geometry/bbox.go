// Package geometry builds world-to-grid placements from simple shapes.
// Grounded on original_source/volpy/geometry.py.
package geometry

import "volraster/vec"

// BBox is an axis-aligned box given by two opposite corners. Transform maps
// the box onto the grid's centered unit cube [-0.5, 0.5]^3.
type BBox struct {
	C0, C1 vec.Vec3
}

// NewBBox builds a BBox from two opposite corners.
func NewBBox(c0, c1 vec.Vec3) BBox {
	return BBox{C0: c0, C1: c1}
}

// Transform returns the world->grid matrix mapping C0 to (-0.5,-0.5,-0.5,1)
// and C1 to (0.5,0.5,0.5,1) (spec.md §8 round-trip).
func (b BBox) Transform() vec.Mat4 {
	extent := b.C1.Sub(b.C0)
	sx, sy, sz := 1/extent.X, 1/extent.Y, 1/extent.Z
	center := b.C0.Add(b.C1).Mul(0.5)
	return vec.Translate(-center.X, -center.Y, -center.Z).Mul(vec.Scale(sx, sy, sz))
}

// InverseTransform returns the grid->world matrix, the inverse of Transform.
func (b BBox) InverseTransform() vec.Mat4 {
	inv, ok := b.Transform().Invert()
	if !ok {
		// A BBox with non-degenerate corners always has an invertible
		// transform; this only fires for a zero-volume box.
		return vec.Mat4Identity()
	}
	return inv
}
