package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volraster/vec"
	"volraster/volerr"
)

func TestNewOrthonormalizesBasis(t *testing.T) {
	c := New(vec.Vec3{}, vec.NewVec3(1, 1, 0), vec.NewVec3(0, 1, 0))

	assert.InDelta(t, 1, c.View().Length(), 1e-5)
	assert.InDelta(t, 1, c.Up().Length(), 1e-5)
	assert.InDelta(t, 1, c.Right().Length(), 1e-5)
	assert.InDelta(t, 0, c.View().Dot(c.Up()), 1e-5)
	assert.InDelta(t, 0, c.View().Dot(c.Right()), 1e-5)
	assert.InDelta(t, 0, c.Up().Dot(c.Right()), 1e-5)
}

func TestSetViewReorthonormalizesUp(t *testing.T) {
	c := New(vec.Vec3{}, vec.NewVec3(0, 0, 1), vec.NewVec3(0, 1, 0))
	c.SetView(vec.NewVec3(1, 0, 0))

	assert.InDelta(t, 0, c.View().Dot(c.Up()), 1e-5)
	assert.InDelta(t, 1, c.Up().Length(), 1e-5)
}

func TestCastCenterPixelMatchesView(t *testing.T) {
	c := New(vec.NewVec3(0, 0, 0), vec.NewVec3(0, 0, 1), DefaultUp)

	origins, dirs, err := c.Cast([]float32{0.5}, []float32{0.5})
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	assert.InDelta(t, c.View().X, dirs[0].X, 1e-5)
	assert.InDelta(t, c.View().Y, dirs[0].Y, 1e-5)
	assert.InDelta(t, c.View().Z, dirs[0].Z, 1e-5)

	wantOrigin := c.Eye().Add(c.View().Mul(c.Near()))
	assert.InDelta(t, wantOrigin.X, origins[0].X, 1e-5)
	assert.InDelta(t, wantOrigin.Y, origins[0].Y, 1e-5)
	assert.InDelta(t, wantOrigin.Z, origins[0].Z, 1e-5)
}

func TestCastLengthMismatch(t *testing.T) {
	c := New(vec.Vec3{}, vec.NewVec3(0, 0, 1), DefaultUp)
	_, _, err := c.Cast([]float32{0.5, 0.5}, []float32{0.5})
	var lenErr *volerr.LengthMismatchError
	assert.ErrorAs(t, err, &lenErr)
}

func TestCastOutOfRange(t *testing.T) {
	c := New(vec.Vec3{}, vec.NewVec3(0, 0, 1), DefaultUp)
	_, _, err := c.Cast([]float32{1.5}, []float32{0.5})
	var rangeErr *volerr.InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestSetFOVUpdatesFrustum(t *testing.T) {
	c := New(vec.Vec3{}, vec.NewVec3(0, 0, 1), DefaultUp)
	origins1, _, _ := c.Cast([]float32{1}, []float32{0.5})
	c.SetFOV(120)
	origins2, _, _ := c.Cast([]float32{1}, []float32{0.5})
	assert.NotEqual(t, origins1[0].X, origins2[0].X)
}
