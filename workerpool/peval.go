package workerpool

import "volraster/vec"

// PointFunc evaluates a batched field over homogeneous world-space points,
// writing D values per point into out[n][0:D]. This is the same shape as
// field.Field.Evaluate; Peval is kept independent of package field so it
// can be reused for any batched function (spec.md §6).
type PointFunc func(points []vec.Vec4, out [][]float32)

// Peval evaluates f in parallel over xyz, partitioned and executed exactly
// as Run partitions a ray batch, with channels held fixed per call
// (spec.md §4.5, §6, §8 "Parallelism"). It returns exactly the value
// f(xyz) would, for any number of workers. workers<1 fails with
// InvalidWorkersError; an unrecognized method fails with
// InvalidMethodError.
func Peval(f PointFunc, xyz []vec.Vec4, channels int, method Method, workers int) ([][]float32, error) {
	rows, err := Run(len(xyz), workers, method, func(c Chunk) ([][]float32, error) {
		chunkPoints := xyz[c.Start : c.Start+c.Len]
		out := make([][]float32, c.Len)
		buf := make([]float32, c.Len*channels)
		for i := range out {
			out[i] = buf[i*channels : i*channels+channels]
		}
		f(chunkPoints, out)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
