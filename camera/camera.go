// Package camera implements the pinhole camera of spec.md §4.2: an
// orthonormal (right, up, view) basis that casts near-plane ray batches
// from normalized image coordinates.
//
// Grounded on original_source/volpy/camera.py and the teacher's
// scene/camera.go (constructor/mutator shape), generalized from the
// teacher's quaternion look-at rig to the eye/view/up/right rig spec.md
// requires.
package camera

import (
	"github.com/chewxy/math32"

	"volraster/vec"
	"volraster/volerr"
)

const (
	DefaultFOV    = 60.0
	DefaultAspect = 16.0 / 9.0
	DefaultNear   = 0.1
	DefaultFar    = 2.0
)

// DefaultUp is the up direction used when a caller does not supply one.
var DefaultUp = vec.Vec3{X: 0, Y: 1, Z: 0}

// Camera is a pinhole camera. Eye, View, Up, Right, FOV, AspectRatio, Near
// and Far satisfy the invariants of spec.md §3: |view|=|up|=|right|=1 and
// all three are pairwise orthogonal, re-derived any time View or Up is set.
type Camera struct {
	eye         vec.Vec3
	view        vec.Vec3
	up          vec.Vec3
	right       vec.Vec3
	fov         float32 // degrees, horizontal
	aspectRatio float32
	near        float32
	far         float32

	tanHalfHFov float32
	tanHalfVFov float32
}

// New constructs a Camera with the given eye/view/up and spec.md §4.2
// defaults for fov/aspect/near/far, orthonormalizing view and up and
// deriving right.
func New(eye, view, up vec.Vec3) *Camera {
	c := &Camera{
		eye: eye,
		fov: DefaultFOV,
		aspectRatio: DefaultAspect,
		near: DefaultNear,
		far:  DefaultFar,
	}
	c.SetViewUp(view, up)
	c.updateFOV()
	return c
}

// Eye returns the camera's world-space position.
func (c *Camera) Eye() vec.Vec3 { return c.eye }

// SetEye relocates the camera; it does not affect the orthonormal basis.
func (c *Camera) SetEye(eye vec.Vec3) { c.eye = eye }

// View returns the unit view (forward) direction.
func (c *Camera) View() vec.Vec3 { return c.view }

// SetView re-orthonormalizes the whole basis against the new view
// direction, matching spec.md §9's orthonormalization policy: mutating
// view updates the cached up and right.
func (c *Camera) SetView(view vec.Vec3) { c.SetViewUp(view, c.up) }

// Up returns the unit up direction, orthogonal to View.
func (c *Camera) Up() vec.Vec3 { return c.up }

// SetUp re-orthonormalizes up (and right) against the current view.
func (c *Camera) SetUp(up vec.Vec3) { c.SetViewUp(c.view, up) }

// SetViewUp sets view and up together and recomputes the derived basis.
// view is normalized first; up is projected to be orthogonal to view, then
// normalized; right = view x up.
func (c *Camera) SetViewUp(view, up vec.Vec3) {
	view = view.Normalize()
	up = up.Sub(view.Mul(up.Dot(view))).Normalize()
	c.view = view
	c.up = up
	c.right = view.Cross(up)
}

// Right returns the unit right direction (view x up). There is no setter:
// assigning to it is a compile-time impossibility in Go, which is how this
// package enforces spec.md §4.2's ReadOnlyField contract for the derived
// right field (see volerr.ReadOnlyFieldError for the error a duck-typed
// binding of this API should raise if it exposes field assignment).
func (c *Camera) Right() vec.Vec3 { return c.right }

// FOV returns the horizontal field of view in degrees.
func (c *Camera) FOV() float32 { return c.fov }

// SetFOV updates the horizontal field of view and recomputes the cached
// tan(fov/2) and tan(vfov/2) used by Cast.
func (c *Camera) SetFOV(fov float32) {
	c.fov = fov
	c.updateFOV()
}

// AspectRatio returns width/height.
func (c *Camera) AspectRatio() float32 { return c.aspectRatio }

// SetAspectRatio updates the aspect ratio and recomputes cached tan(vfov/2).
func (c *Camera) SetAspectRatio(aspect float32) {
	c.aspectRatio = aspect
	c.updateFOV()
}

func (c *Camera) Near() float32 { return c.near }
func (c *Camera) SetNear(near float32) { c.near = near }

func (c *Camera) Far() float32 { return c.far }
func (c *Camera) SetFar(far float32) { c.far = far }

func (c *Camera) updateFOV() {
	c.tanHalfHFov = math32.Tan(c.fov * math32.Pi / 180.0 / 2)
	c.tanHalfVFov = c.tanHalfHFov / c.aspectRatio
}

// Cast generates a near-plane ray batch from normalized image coordinates
// (spec.md §4.2). imx and imy must be equal length and every element must
// lie in [0, 1]. Neither input is mutated.
func (c *Camera) Cast(imx, imy []float32) (origins, dirs []vec.Vec3, err error) {
	if len(imx) != len(imy) {
		return nil, nil, &volerr.LengthMismatchError{A: len(imx), B: len(imy)}
	}
	for i, x := range imx {
		if x < 0 || x > 1 {
			return nil, nil, &volerr.InvalidRangeError{Field: "imx", Value: x}
		}
		if y := imy[i]; y < 0 || y > 1 {
			return nil, nil, &volerr.InvalidRangeError{Field: "imy", Value: y}
		}
	}

	n := len(imx)
	origins = make([]vec.Vec3, n)
	dirs = make([]vec.Vec3, n)
	for i := 0; i < n; i++ {
		x := (2*imx[i] - 1) * c.tanHalfHFov
		y := (2*imy[i] - 1) * c.tanHalfVFov
		d := c.up.Mul(y).Add(c.right.Mul(x)).Add(c.view).Normalize()
		dirs[i] = d
		origins[i] = c.eye.Add(d.Mul(c.near))
	}
	return origins, dirs, nil
}
