// Package grid implements spec.md §4.1: a trilinear voxel-grid sampler
// with an affine world<->grid placement. Replaces the teacher's
// scene/grid.go (previously a GL_LINES wireframe-mesh helper) entirely.
//
// Grounded on original_source/volpy/grid.py for the sampler contract and
// original_source/volpy/geometry.py (via package geometry) for placement.
package grid

import (
	"github.com/chewxy/math32"

	"volraster/vec"
	"volraster/volerr"
	"volraster/workerpool"
)

// Array is the backing storage for a Grid: either a scalar field, shape
// (Nx, Ny, Nz), or a vector field, shape (Nx, Ny, Nz, D). Data is stored
// row-major, f64-promoted-on-read per spec.md §4.1 Numerics, with Dim()==0
// for a scalar grid.
type Array struct {
	Nx, Ny, Nz, Dim int
	Data            []float64 // len == Nx*Ny*Nz*max(Dim,1)
}

// NewScalarArray builds a scalar Array of shape (nx,ny,nz) with data in
// lexicographic (i outer, k inner) order.
func NewScalarArray(nx, ny, nz int, data []float64) Array {
	return Array{Nx: nx, Ny: ny, Nz: nz, Dim: 0, Data: data}
}

// NewVectorArray builds a vector Array of shape (nx,ny,nz,dim).
func NewVectorArray(nx, ny, nz, dim int, data []float64) Array {
	return Array{Nx: nx, Ny: ny, Nz: nz, Dim: dim, Data: data}
}

func (a Array) channels() int {
	if a.Dim == 0 {
		return 1
	}
	return a.Dim
}

func (a Array) at(i, j, k, c int) float64 {
	ch := a.channels()
	idx := ((i*a.Ny+j)*a.Nz+k)*ch + c
	return a.Data[idx]
}

func (a Array) set(i, j, k, c int, v float64) {
	ch := a.channels()
	idx := ((i*a.Ny+j)*a.Nz+k)*ch + c
	a.Data[idx] = v
}

// Grid is a voxel-backed Field. It is constructed once and is safe for
// concurrent read-only sampling by multiple workers.
type Grid struct {
	array      Array
	transform  vec.Mat4 // world -> normalized grid space [-0.5, 0.5]^3
	itransform vec.Mat4 // grid -> world, transform's inverse
	def        float32
}

// New constructs a Grid. transform maps world space to the grid's centered
// unit cube; if nil, identity is used. transform must be invertible (or
// not ill-conditioned below a fixed epsilon), else InvalidTransformError.
// array.Dim must be 0 (scalar) or a positive int (vector); any other shape
// fails with InvalidShapeError.
func New(array Array, transform *vec.Mat4, def float32) (*Grid, error) {
	if array.Nx <= 0 || array.Ny <= 0 || array.Nz <= 0 {
		return nil, &volerr.InvalidShapeError{Reason: "grid extents must be positive"}
	}
	if array.Dim < 0 {
		return nil, &volerr.InvalidShapeError{Reason: "vector dimension must be positive"}
	}
	t := vec.Mat4Identity()
	if transform != nil {
		t = *transform
	}
	it, ok := t.Invert()
	if !ok {
		return nil, &volerr.InvalidTransformError{Reason: "transform is singular or ill-conditioned"}
	}
	return &Grid{array: array, transform: t, itransform: it, def: def}, nil
}

// Indices returns every (i,j,k) voxel coordinate in lexicographic order (i
// outer, k inner).
func (g *Grid) Indices() [][3]int {
	out := make([][3]int, 0, g.array.Nx*g.array.Ny*g.array.Nz)
	for i := 0; i < g.array.Nx; i++ {
		for j := 0; j < g.array.Ny; j++ {
			for k := 0; k < g.array.Nz; k++ {
				out = append(out, [3]int{i, j, k})
			}
		}
	}
	return out
}

// IGSpace maps voxel indices to homogeneous grid-space points.
func (g *Grid) IGSpace(indices [][3]int) []vec.Vec4 {
	out := make([]vec.Vec4, len(indices))
	nx, ny, nz := float32(g.array.Nx-1), float32(g.array.Ny-1), float32(g.array.Nz-1)
	for n, idx := range indices {
		out[n] = vec.Vec4{
			X: float32(idx[0])/denom(nx) - 0.5,
			Y: float32(idx[1])/denom(ny) - 0.5,
			Z: float32(idx[2])/denom(nz) - 0.5,
			W: 1,
		}
	}
	return out
}

func denom(n float32) float32 {
	if n == 0 {
		return 1
	}
	return n
}

// GWSpace maps grid-space points to world space: gspace * itransform.
func (g *Grid) GWSpace(gspace []vec.Vec4) []vec.Vec4 {
	out := make([]vec.Vec4, len(gspace))
	for i, p := range gspace {
		out[i] = p.MulMat(g.itransform)
	}
	return out
}

// Sample evaluates the grid at each homogeneous world-space point in
// points. For a scalar grid, each output has length 1; for a vector grid
// of dimension D, each output has length D.
func (g *Grid) Sample(points []vec.Vec4, out [][]float32) {
	ch := g.array.channels()
	for n, p := range points {
		row := out[n]
		gp := p.MulMat(g.transform)
		if gp.X < -0.5 || gp.X > 0.5 || gp.Y < -0.5 || gp.Y > 0.5 || gp.Z < -0.5 || gp.Z > 0.5 {
			for c := 0; c < ch; c++ {
				row[c] = g.def
			}
			continue
		}
		u := (gp.X + 0.5) * float32(g.array.Nx-1)
		v := (gp.Y + 0.5) * float32(g.array.Ny-1)
		w := (gp.Z + 0.5) * float32(g.array.Nz-1)

		i0, fu := splitIndex(u, g.array.Nx)
		j0, fv := splitIndex(v, g.array.Ny)
		k0, fw := splitIndex(w, g.array.Nz)
		i1, j1, k1 := clampUpper(i0, g.array.Nx), clampUpper(j0, g.array.Ny), clampUpper(k0, g.array.Nz)

		for c := 0; c < ch; c++ {
			c000 := g.array.at(i0, j0, k0, c)
			c100 := g.array.at(i1, j0, k0, c)
			c010 := g.array.at(i0, j1, k0, c)
			c110 := g.array.at(i1, j1, k0, c)
			c001 := g.array.at(i0, j0, k1, c)
			c101 := g.array.at(i1, j0, k1, c)
			c011 := g.array.at(i0, j1, k1, c)
			c111 := g.array.at(i1, j1, k1, c)

			row[c] = trilerp(
				float32(c000), float32(c100), float32(c010), float32(c110),
				float32(c001), float32(c101), float32(c011), float32(c111),
				fu, fv, fw,
			)
		}
	}
}

func trilerp(c000, c100, c010, c110, c001, c101, c011, c111, fu, fv, fw float32) float32 {
	c00 := c000*(1-fu) + c100*fu
	c10 := c010*(1-fu) + c110*fu
	c01 := c001*(1-fu) + c101*fu
	c11 := c011*(1-fu) + c111*fu
	c0 := c00*(1-fv) + c10*fv
	c1 := c01*(1-fv) + c11*fv
	return c0*(1-fw) + c1*fw
}

func splitIndex(u float32, n int) (int, float32) {
	i0 := int(math32.Floor(u))
	fu := u - float32(i0)
	if i0 < 0 {
		i0, fu = 0, 0
	}
	if i0 > n-1 {
		i0, fu = n-1, 0
	}
	return i0, fu
}

func clampUpper(i0, n int) int {
	if i0+1 > n-1 {
		return n - 1
	}
	return i0 + 1
}

// Stamp overwrites every voxel with field evaluated at that voxel's world
// position.
func (g *Grid) Stamp(field func(points []vec.Vec4, out [][]float32)) {
	indices := g.Indices()
	world := g.GWSpace(g.IGSpace(indices))
	ch := g.array.channels()
	out := make([][]float32, len(world))
	buf := make([]float32, len(world)*ch)
	for i := range out {
		out[i] = buf[i*ch : i*ch+ch]
	}
	field(world, out)
	for n, idx := range indices {
		for c := 0; c < ch; c++ {
			g.array.set(idx[0], idx[1], idx[2], c, float64(out[n][c]))
		}
	}
}

// PStamp stamps the grid the same way Stamp does, but evaluates field
// under the worker pool (spec.md §4.1 pstamp).
func (g *Grid) PStamp(field func(points []vec.Vec4, out [][]float32), workers int, method workerpool.Method) error {
	indices := g.Indices()
	world := g.GWSpace(g.IGSpace(indices))
	ch := g.array.channels()

	rows, err := workerpool.Peval(field, world, ch, method, workers)
	if err != nil {
		return err
	}
	for n, idx := range indices {
		for c := 0; c < ch; c++ {
			g.array.set(idx[0], idx[1], idx[2], c, float64(rows[n][c]))
		}
	}
	return nil
}

// Channels reports 1 for a scalar grid, or D for a vector grid of
// dimension D.
func (g *Grid) Channels() int { return g.array.channels() }

// Evaluate implements field.Field, letting a *Grid stand in anywhere a
// batched Field is expected (spec.md §4.3).
func (g *Grid) Evaluate(points []vec.Vec4, out [][]float32) { g.Sample(points, out) }
