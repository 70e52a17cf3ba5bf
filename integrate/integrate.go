// Package integrate implements spec.md §4.4: the emission-absorption (plus
// optional single-scatter diffuse) ray-marching integrator. A chunk of
// rays is marched independently of every other chunk (spec.md §5), which
// is what lets package workerpool parallelize over chunks.
//
// Grounded on original_source/volpy/scene.py's TraceRay.run, generalized
// from its single emit/emit_color pair to spec.md's ambient+diffuse+lights
// model.
package integrate

import (
	"github.com/chewxy/math32"

	"volraster/field"
	"volraster/vec"
)

// epsilon guards the ambient/diffuse extinction-fraction weighting
// (spec.md §4.4 step 5) against division by zero when both densities are
// zero at a sample point.
const epsilon = 1e-8

// Params bundles the read-only scene state a chunk needs, independent of
// any particular Scene representation.
type Params struct {
	Ambient *field.Element
	Diffuse *field.Element
	Lights  []field.Light
	Scatter float32
	Near    float32
	Far     float32
	Step    float32
	Tol     float32
}

// Run marches positions/directions (equal length, directions unit) from
// Params.Near to Params.Far in Params.Step increments, returning one RGBA
// accumulation per ray. positions is advanced in place, matching spec.md
// §4.4's contract that each chunk owns and mutates its own scratch slices.
func Run(p Params, positions []vec.Vec3, directions []vec.Vec3) []vec.Vec4 {
	m := len(positions)
	transmit := make([]float32, m)
	light := make([]vec.Vec4, m)
	for i := range transmit {
		transmit[i] = 1
	}

	points := make([]vec.Vec4, m)
	sigmaA := make([]float32, m)
	sigmaD := make([]float32, m)
	var ambColor, difColor []vec.Vec3

	hasAmbient := p.Ambient != nil
	hasDiffuse := p.Diffuse != nil

	distance := p.Near
	for distance < p.Far && maxOf(transmit) > p.Tol {
		for i := range points {
			points[i] = positions[i].ToVec4(1)
		}

		if hasAmbient {
			field.EvaluateScalarInto(p.Ambient.Density, points, sigmaA)
			ambColor = field.EvaluateColor(p.Ambient.ColorOrWhite(), points)
		} else {
			for i := range sigmaA {
				sigmaA[i] = 0
			}
		}
		if hasDiffuse {
			field.EvaluateScalarInto(p.Diffuse.Density, points, sigmaD)
			difColor = field.EvaluateColor(p.Diffuse.ColorOrWhite(), points)
		} else {
			for i := range sigmaD {
				sigmaD[i] = 0
			}
		}

		var occlusion [][]float32 // occlusion[l][i], one batched evaluation per light
		if hasDiffuse && len(p.Lights) > 0 {
			occlusion = make([][]float32, len(p.Lights))
			for li, l := range p.Lights {
				occlusion[li] = field.EvaluateScalar(l.Occlusion, points)
			}
		}

		for i := 0; i < m; i++ {
			if transmit[i] <= p.Tol {
				continue
			}
			sa, sd := sigmaA[i], sigmaD[i]
			sigma := sa + sd
			tau := math32.Exp(-p.Scatter * sigma * p.Step)

			if hasAmbient {
				tauA := math32.Exp(-p.Scatter * sa * p.Step)
				weight := float32(1)
				if hasDiffuse {
					weight = sa / math32.Max(sigma, epsilon)
				}
				factor := transmit[i] * (1 - tauA) * weight
				light[i].X += factor * ambColor[i].X
				light[i].Y += factor * ambColor[i].Y
				light[i].Z += factor * ambColor[i].Z
			}

			if hasDiffuse {
				tauD := math32.Exp(-p.Scatter * sd * p.Step)
				weight := float32(1)
				if hasAmbient {
					weight = sd / math32.Max(sigma, epsilon)
				}
				for li, l := range p.Lights {
					occ := occlusion[li][i]
					factor := transmit[i] * (1 - tauD) * weight * occ
					light[i].X += factor * difColor[i].X * l.Color.X
					light[i].Y += factor * difColor[i].Y * l.Color.Y
					light[i].Z += factor * difColor[i].Z * l.Color.Z
				}
			}

			transmit[i] *= tau
		}

		for i := range positions {
			positions[i] = positions[i].Add(directions[i].Mul(p.Step))
		}
		distance += p.Step
	}

	for i := range light {
		light[i].W = 1 - transmit[i]
	}
	return light
}

func maxOf(xs []float32) float32 {
	m := float32(0)
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
