// Package volerr defines the typed error kinds raised synchronously by
// volraster's public surface (spec.md §7). Each kind is a small comparable
// struct implementing error, wrapped with fmt.Errorf's %w the way the
// teacher repo wraps internal failures (renderer/renderer.go, io/scene_io.go).
package volerr

import "fmt"

// InvalidRangeError reports an image-plane coordinate outside [0,1].
type InvalidRangeError struct {
	Field string
	Value float32
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s must be in range [0, 1], got %v", e.Field, e.Value)
}

// LengthMismatchError reports paired inputs of unequal length.
type LengthMismatchError struct {
	A, B int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("paired inputs must have the same length, got %d and %d", e.A, e.B)
}

// InvalidShapeError reports an unusable image or grid shape: a non-positive
// image width or height, a non-positive grid extent, or a negative grid
// vector dimension.
type InvalidShapeError struct {
	Reason string
}

func (e *InvalidShapeError) Error() string {
	return "invalid shape: " + e.Reason
}

// InvalidTransformError reports a non-invertible or ill-conditioned grid
// transform supplied at construction.
type InvalidTransformError struct {
	Reason string
}

func (e *InvalidTransformError) Error() string {
	return "invalid transform: " + e.Reason
}

// InvalidWorkersError reports workers < 1.
type InvalidWorkersError struct{}

func (e *InvalidWorkersError) Error() string {
	return "Must have at least 1 worker."
}

// InvalidToleranceError reports tol <= 0.
type InvalidToleranceError struct {
	Tol float64
}

func (e *InvalidToleranceError) Error() string {
	return fmt.Sprintf("Tolerance must be >0, got %v.", e.Tol)
}

// InvalidMethodError reports an unrecognized concurrency method name.
type InvalidMethodError struct {
	Name string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("Invalid method: %s", e.Name)
}

// EmptySceneError reports a render call with neither ambient nor diffuse set.
type EmptySceneError struct{}

func (e *EmptySceneError) Error() string {
	return "At least one scene element is required."
}

// ReadOnlyFieldError reports an attempted assignment to a derived,
// read-only Camera field (e.g. right).
type ReadOnlyFieldError struct {
	Field string
}

func (e *ReadOnlyFieldError) Error() string {
	return fmt.Sprintf("%s is read-only", e.Field)
}
