package workerpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volraster/vec"
)

func TestPevalMatchesDirectEvaluation(t *testing.T) {
	points := make([]vec.Vec4, 50)
	for i := range points {
		points[i] = vec.Vec4{X: float32(i)}
	}
	f := func(pts []vec.Vec4, out [][]float32) {
		for i, p := range pts {
			out[i][0] = p.X * 2
			out[i][1] = p.X * 3
		}
	}

	want := make([][]float32, len(points))
	buf := make([]float32, len(points)*2)
	for i := range want {
		want[i] = buf[i*2 : i*2+2]
	}
	f(points, want)

	got, err := Peval(f, points, 2, Thread, 7)
	require.NoError(t, err)
	require.Len(t, got, len(points))
	for i := range got {
		assert.Equal(t, want[i], got[i])
	}
}

func TestPevalSingleWorkerMatchesMultiWorker(t *testing.T) {
	points := make([]vec.Vec4, 30)
	for i := range points {
		points[i] = vec.Vec4{X: float32(i), Y: float32(i * i)}
	}
	f := func(pts []vec.Vec4, out [][]float32) {
		for i, p := range pts {
			out[i][0] = p.X + p.Y
		}
	}

	single, err := Peval(f, points, 1, Thread, 1)
	require.NoError(t, err)
	multi, err := Peval(f, points, 1, Thread, 6)
	require.NoError(t, err)
	assert.Equal(t, single, multi)
}
