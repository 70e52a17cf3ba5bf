package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volraster/vec"
	"volraster/volerr"
	"volraster/workerpool"
)

func newUnitCubeGrid(t *testing.T, nx, ny, nz int, data []float64, def float32) *Grid {
	t.Helper()
	arr := NewScalarArray(nx, ny, nz, data)
	identity := vec.Mat4Identity()
	g, err := New(arr, &identity, def)
	require.NoError(t, err)
	return g
}

func TestNewRejectsNonPositiveExtent(t *testing.T) {
	arr := NewScalarArray(0, 2, 2, nil)
	_, err := New(arr, nil, 0)
	var shapeErr *volerr.InvalidShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestNewRejectsSingularTransform(t *testing.T) {
	arr := NewScalarArray(2, 2, 2, make([]float64, 8))
	singular := vec.Mat4Scale(vec.NewVec3(1, 1, 0))
	_, err := New(arr, &singular, 0)
	var transformErr *volerr.InvalidTransformError
	assert.ErrorAs(t, err, &transformErr)
}

func TestSampleOutOfBoundsReturnsDefault(t *testing.T) {
	data := []float64{0, 0, 0, 0, 0, 0, 0, 0}
	g := newUnitCubeGrid(t, 2, 2, 2, data, -1)

	points := []vec.Vec4{{X: 10, Y: 0, Z: 0, W: 1}}
	out := [][]float32{make([]float32, 1)}
	g.Sample(points, out)

	assert.Equal(t, float32(-1), out[0][0])
}

func TestSampleTrilerpMidpoint(t *testing.T) {
	// 2x2x2 grid, voxel (1,1,1)=1, all others=0. World space == grid space
	// under identity transform. The cube center should average to 1/8.
	data := make([]float64, 8)
	data[7] = 1 // (1,1,1)
	g := newUnitCubeGrid(t, 2, 2, 2, data, 0)

	points := []vec.Vec4{{X: 0, Y: 0, Z: 0, W: 1}}
	out := [][]float32{make([]float32, 1)}
	g.Sample(points, out)

	assert.InDelta(t, 0.125, out[0][0], 1e-5)
}

func TestSampleExactVoxel(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	g := newUnitCubeGrid(t, 2, 2, 2, data, 0)

	// grid-space corner (-0.5,-0.5,-0.5) is voxel (0,0,0) -> data[0] == 1.
	points := []vec.Vec4{{X: -0.5, Y: -0.5, Z: -0.5, W: 1}}
	out := [][]float32{make([]float32, 1)}
	g.Sample(points, out)

	assert.InDelta(t, 1, out[0][0], 1e-5)
}

func TestStampThenSampleRoundTrips(t *testing.T) {
	g := newUnitCubeGrid(t, 3, 3, 3, make([]float64, 27), 0)

	g.Stamp(func(points []vec.Vec4, out [][]float32) {
		for i, p := range points {
			out[i][0] = p.X + p.Y + p.Z
		}
	})

	idx := g.Indices()
	world := g.GWSpace(g.IGSpace(idx))
	out := make([][]float32, len(world))
	buf := make([]float32, len(world))
	for i := range out {
		out[i] = buf[i : i+1]
	}
	g.Sample(world, out)

	for i, p := range world {
		assert.InDelta(t, p.X+p.Y+p.Z, out[i][0], 1e-4)
	}
}

func TestPStampMatchesStamp(t *testing.T) {
	serial := newUnitCubeGrid(t, 4, 4, 4, make([]float64, 64), 0)
	parallel := newUnitCubeGrid(t, 4, 4, 4, make([]float64, 64), 0)

	field := func(points []vec.Vec4, out [][]float32) {
		for i, p := range points {
			out[i][0] = p.X * p.Y * p.Z
		}
	}

	serial.Stamp(field)
	err := parallel.PStamp(field, 3, workerpool.Thread)
	require.NoError(t, err)

	assert.Equal(t, serial.array.Data, parallel.array.Data)
}

func TestChannelsVectorGrid(t *testing.T) {
	arr := NewVectorArray(2, 2, 2, 3, make([]float64, 2*2*2*3))
	identity := vec.Mat4Identity()
	g, err := New(arr, &identity, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Channels())
}
