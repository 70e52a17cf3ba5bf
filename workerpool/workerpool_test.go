package workerpool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volraster/volerr"
)

func TestPartitionCoversEveryItem(t *testing.T) {
	chunks := Partition(10, 3)
	total := 0
	for _, c := range chunks {
		total += c.Len
	}
	assert.Equal(t, 10, total)
	assert.Equal(t, 0, chunks[0].Start)
}

func TestPartitionEmpty(t *testing.T) {
	assert.Nil(t, Partition(0, 4))
}

func TestPartitionFewerItemsThanWorkers(t *testing.T) {
	chunks := Partition(2, 8)
	assert.Len(t, chunks, 2)
	for _, c := range chunks {
		assert.Equal(t, 1, c.Len)
	}
}

func TestRunPreservesOrder(t *testing.T) {
	n := 97
	got, err := Run(n, 4, Thread, func(c Chunk) ([]int, error) {
		out := make([]int, c.Len)
		for i := range out {
			out[i] = c.Start + i
		}
		return out, nil
	})
	require.NoError(t, err)
	require.Len(t, got, n)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestRunInvalidWorkers(t *testing.T) {
	_, err := Run(4, 0, Thread, func(c Chunk) ([]int, error) { return nil, nil })
	var workersErr *volerr.InvalidWorkersError
	assert.ErrorAs(t, err, &workersErr)
}

func TestRunInvalidMethod(t *testing.T) {
	_, err := Run(4, 1, Method("spawn"), func(c Chunk) ([]int, error) { return nil, nil })
	var methodErr *volerr.InvalidMethodError
	assert.ErrorAs(t, err, &methodErr)
}

func TestRunPropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	_, err := Run(4, 2, Thread, func(c Chunk) ([]int, error) { return nil, sentinel })
	assert.ErrorIs(t, err, sentinel)
}

func TestForkIsAliasForThread(t *testing.T) {
	n := 23
	work := func(c Chunk) ([]int, error) {
		out := make([]int, c.Len)
		for i := range out {
			out[i] = c.Start + i
		}
		return out, nil
	}
	thread, err := Run(n, 5, Thread, work)
	require.NoError(t, err)
	fork, err := Run(n, 5, Fork, work)
	require.NoError(t, err)
	assert.Equal(t, thread, fork)
}

func TestValidateMethod(t *testing.T) {
	assert.NoError(t, ValidateMethod(Thread))
	assert.NoError(t, ValidateMethod(Fork))
	assert.Error(t, ValidateMethod(Method("bogus")))
}
