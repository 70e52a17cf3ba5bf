// Command volshow renders a procedurally generated scene to a PNG file.
// It is a thin CLI driver over package scene, not part of the core
// library surface (SPEC_FULL.md §6).
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/image/draw"

	"volraster/camera"
	"volraster/field"
	"volraster/grid"
	"volraster/scene"
	"volraster/vec"
	"volraster/workerpool"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "volshow:", err)
		os.Exit(1)
	}
}

func run() error {
	width := pflag.Int("width", 256, "image width in pixels")
	height := pflag.Int("height", 256, "image height in pixels")
	workers := pflag.Int("workers", 0, "number of workers (0 = runtime.NumCPU)")
	method := pflag.String("method", "thread", "concurrency method: thread or fork")
	tol := pflag.Float32("tol", float32(scene.DefaultTol), "transmissivity tolerance")
	step := pflag.Float32("step", 0, "ray march step size (0 = (far-near)/100)")
	out := pflag.String("out", "volshow.png", "output PNG path")
	thumb := pflag.Int("thumbnail", 0, "also write an NxN preview thumbnail (0 = skip)")
	pflag.Parse()

	s := demoScene()

	img, err := s.Render(scene.RenderOptions{
		Width:   *width,
		Height:  *height,
		Workers: *workers,
		Method:  workerpool.Method(*method),
		Tol:     *tol,
		Step:    *step,
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	rgba := toRGBA(img)
	if err := writePNG(*out, rgba); err != nil {
		return err
	}

	if *thumb > 0 {
		return writePNG(thumbnailPath(*out), downsample(rgba, *thumb, *thumb))
	}
	return nil
}

// thumbnailPath derives "name.thumb.png" from "name.png".
func thumbnailPath(path string) string {
	if ext := ".png"; strings.HasSuffix(path, ext) {
		return strings.TrimSuffix(path, ext) + ".thumb" + ext
	}
	return path + ".thumb.png"
}

// downsample scales src to w x h using a high-quality resampling filter.
func downsample(src *image.RGBA, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// demoScene builds a small scalar-grid sphere rendered as the scene's
// ambient element, grounded on original_source/volpy's example scenes. The
// scene also carries one unoccluded white light; it adds nothing to the
// image, because the integrator applies lights only to a diffuse element and
// this scene has none.
func demoScene() *scene.Scene {
	const n = 32
	data := make([]float64, n*n*n)
	for i := 0; i < n; i++ {
		x := float64(i)/float64(n-1) - 0.5
		for j := 0; j < n; j++ {
			y := float64(j)/float64(n-1) - 0.5
			for k := 0; k < n; k++ {
				z := float64(k)/float64(n-1) - 0.5
				r := math.Sqrt(x*x + y*y + z*z)
				density := 0.0
				if r < 0.4 {
					density = 1.0
				}
				data[(i*n+j)*n+k] = density
			}
		}
	}
	arr := grid.NewScalarArray(n, n, n, data)
	transform := vec.Mat4Identity()
	g, err := grid.New(arr, &transform, 0)
	if err != nil {
		panic(err)
	}

	ambient := field.NewElement(field.Func(g.Evaluate), field.ConstantColor(vec.Vec3{X: 0.9, Y: 0.4, Z: 0.2}))

	cam := camera.New(
		vec.Vec3{X: 0, Y: 0, Z: -2},
		vec.Vec3{X: 0, Y: 0, Z: 1},
		camera.DefaultUp,
	)

	s := scene.New(&ambient, nil, cam, 4)
	s.AddLight(field.NewLight(field.ConstantScalar(1), vec.Vec3{X: 1, Y: 1, Z: 1}))
	return s
}

// toRGBA converts a scene.Image's float32 RGBA tensor into a standard
// library image.
func toRGBA(img *scene.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			out.Set(x, y, color.RGBA{
				R: toByte(c[0]),
				G: toByte(c[1]),
				B: toByte(c[2]),
				A: toByte(c[3]),
			})
		}
	}
	return out
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
