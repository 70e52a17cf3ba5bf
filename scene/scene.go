// Package scene implements spec.md §4.6: the Scene aggregate and its
// render driver, which validates inputs, generates the pixel grid,
// invokes the worker pool, and reshapes the result into an Image.
//
// Replaces the teacher's GPU-facing scene/scene.go (a mesh/node/light
// scene-graph manager) entirely; grounded on original_source/volpy/scene.py
// for the render/_linspace_rays/_cast_rays shape, generalized to spec.md's
// ambient+diffuse+lights model.
package scene

import (
	"runtime"

	"volraster/camera"
	"volraster/field"
	"volraster/integrate"
	"volraster/vec"
	"volraster/volerr"
	"volraster/workerpool"
)

// Image is a row-major (H, W, 4) tensor of float32 in [0,1]; channel order
// RGBA, A the accumulated opacity 1-T_final (spec.md §3).
type Image struct {
	Width, Height int
	Pix           []float32 // len == Width*Height*4, row-major, row 0 = top
}

// At returns the RGBA channels of pixel (x, y).
func (im *Image) At(x, y int) [4]float32 {
	i := (y*im.Width + x) * 4
	return [4]float32{im.Pix[i], im.Pix[i+1], im.Pix[i+2], im.Pix[i+3]}
}

// Scene bundles the ambient/diffuse volumetric elements, lights, and
// camera that together define a render (spec.md §3). The zero value's
// Camera is nil; use New or set Camera explicitly before rendering.
type Scene struct {
	Ambient *field.Element
	Diffuse *field.Element
	Lights  []field.Light
	Camera  *camera.Camera
	Scatter float32
}

// New builds a Scene. cam may be nil, in which case a default camera at the
// origin looking down +Z is used (original_source/volpy/scene.py's
// _default_camera).
func New(ambient, diffuse *field.Element, cam *camera.Camera, scatter float32) *Scene {
	if cam == nil {
		cam = camera.New(vec.Vec3{}, vec.Vec3{X: 0, Y: 0, Z: 1}, camera.DefaultUp)
	}
	return &Scene{Ambient: ambient, Diffuse: diffuse, Camera: cam, Scatter: scatter}
}

// AddLight appends a light to the scene.
func (s *Scene) AddLight(l field.Light) {
	s.Lights = append(s.Lights, l)
}

// RenderOptions configures a single render call (spec.md §4.6, §6).
type RenderOptions struct {
	Width, Height int
	Step          float32 // 0 means (far-near)/100
	Workers       int     // 0 means runtime.NumCPU()
	Tol           float32 // 0 means DefaultTol
	Method        workerpool.Method
}

// DefaultTol is used when RenderOptions.Tol is left at its zero value.
const DefaultTol = 1e-6

// Render validates opts, generates the pixel grid, casts rays through the
// scene's camera, marches them under the worker pool, and reshapes the
// result to an (H, W, 4) Image (spec.md §4.6).
//
// Validation order matches spec.md §4.6: workers >= 1, then tol > 0, then
// shape has length 2 (guaranteed by RenderOptions' Width/Height fields),
// then at least one of Ambient/Diffuse is set.
func (s *Scene) Render(opts RenderOptions) (*Image, error) {
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		return nil, &volerr.InvalidWorkersError{}
	}

	tol := opts.Tol
	if tol == 0 {
		tol = DefaultTol
	}
	if tol <= 0 {
		return nil, &volerr.InvalidToleranceError{Tol: float64(tol)}
	}

	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, &volerr.InvalidShapeError{Reason: "width and height must be positive"}
	}

	if s.Ambient == nil && s.Diffuse == nil {
		return nil, &volerr.EmptySceneError{}
	}

	method := opts.Method
	if method == "" {
		method = workerpool.Thread
	}
	if err := workerpool.ValidateMethod(method); err != nil {
		return nil, err
	}

	step := opts.Step
	if step == 0 {
		step = (s.Camera.Far() - s.Camera.Near()) / 100
	}

	imx, imy := pixelGrid(opts.Width, opts.Height)
	origins, dirs, err := s.Camera.Cast(imx, imy)
	if err != nil {
		return nil, err
	}

	params := integrate.Params{
		Ambient: s.Ambient,
		Diffuse: s.Diffuse,
		Lights:  s.Lights,
		Scatter: s.Scatter,
		Near:    s.Camera.Near(),
		Far:     s.Camera.Far(),
		Step:    step,
		Tol:     tol,
	}

	light, err := workerpool.Run(len(origins), workers, method, func(c workerpool.Chunk) ([]vec.Vec4, error) {
		positions := make([]vec.Vec3, c.Len)
		copy(positions, origins[c.Start:c.Start+c.Len])
		directions := dirs[c.Start : c.Start+c.Len]
		return integrate.Run(params, positions, directions), nil
	})
	if err != nil {
		return nil, err
	}

	pix := make([]float32, opts.Width*opts.Height*4)
	for i, l := range light {
		pix[i*4+0] = l.X
		pix[i*4+1] = l.Y
		pix[i*4+2] = l.Z
		pix[i*4+3] = l.W
	}
	return &Image{Width: opts.Width, Height: opts.Height, Pix: pix}, nil
}

// pixelGrid generates normalized (imx, imy) coordinates via the Cartesian
// product of linspace(0,1,H) (imy, outer) x linspace(0,1,W) (imx, inner),
// in row-major order, matching spec.md §4.6.
func pixelGrid(w, h int) (imx, imy []float32) {
	n := w * h
	imx = make([]float32, n)
	imy = make([]float32, n)
	for row := 0; row < h; row++ {
		y := linspaceAt(row, h)
		for col := 0; col < w; col++ {
			x := linspaceAt(col, w)
			idx := row*w + col
			imx[idx] = x
			imy[idx] = y
		}
	}
	return imx, imy
}

func linspaceAt(i, n int) float32 {
	if n <= 1 {
		return 0
	}
	return float32(i) / float32(n-1)
}
