// Package field implements spec.md §4.3: a small closed set of Field<T>
// variants dispatched through one interface, rather than an open
// inheritance hierarchy (spec.md §9 Design Notes).
//
// Grounded on original_source/volpy/scene.py's duck-typed emit/emit_color
// callables, generalized to a closed Grid/Func/Constant set. Element pairs
// a density Field with an optional color Field; it does not itself
// implement Field.
package field

import "volraster/vec"

// Field is any batched sampler over homogeneous world-space points. Scalar
// fields write one value per point into out[n][0]; vector fields write D
// values into out[n][0:D]. Implementations must be safe for concurrent
// calls from multiple goroutines (spec.md §5 "Shared state").
type Field interface {
	Evaluate(points []vec.Vec4, out [][]float32)
}

// Func adapts a plain function into a Field. The function must be
// stateless or safe for concurrent invocation; it is called directly by
// every worker's goroutine.
type Func func(points []vec.Vec4, out [][]float32)

func (f Func) Evaluate(points []vec.Vec4, out [][]float32) { f(points, out) }

// Constant is a Field that returns the same value at every point,
// regardless of position.
type Constant []float32

func (c Constant) Evaluate(points []vec.Vec4, out [][]float32) {
	for n := range points {
		copy(out[n], c)
	}
}

// ConstantScalar builds a one-channel Constant field.
func ConstantScalar(v float32) Constant { return Constant{v} }

// ConstantColor builds a three-channel Constant field.
func ConstantColor(rgb vec.Vec3) Constant { return Constant{rgb.X, rgb.Y, rgb.Z} }

// White is the default color field used wherever an Element's color is
// unset (spec.md §3 Element: "Color=None means white").
var White = ConstantColor(vec.Vec3{X: 1, Y: 1, Z: 1})

// EvaluateScalar is a convenience that allocates the output buffer and
// returns it as a flat []float32, one value per point.
func EvaluateScalar(f Field, points []vec.Vec4) []float32 {
	out := make([][]float32, len(points))
	buf := make([]float32, len(points))
	for i := range out {
		out[i] = buf[i : i+1]
	}
	f.Evaluate(points, out)
	return buf
}

// EvaluateScalarInto evaluates f into a caller-owned buffer, avoiding a
// fresh allocation per step in the integrator's hot loop.
func EvaluateScalarInto(f Field, points []vec.Vec4, buf []float32) {
	out := make([][]float32, len(points))
	for i := range out {
		out[i] = buf[i : i+1]
	}
	f.Evaluate(points, out)
}

// EvaluateColor is a convenience that allocates the output buffer and
// returns it as a flat []vec.Vec3, one color per point.
func EvaluateColor(f Field, points []vec.Vec4) []vec.Vec3 {
	out := make([][]float32, len(points))
	raw := make([]float32, len(points)*3)
	for i := range out {
		out[i] = raw[i*3 : i*3+3]
	}
	f.Evaluate(points, out)
	colors := make([]vec.Vec3, len(points))
	for i, row := range out {
		colors[i] = vec.Vec3{X: row[0], Y: row[1], Z: row[2]}
	}
	return colors
}
