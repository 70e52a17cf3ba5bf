package field

import "volraster/vec"

// Element pairs a density field with an optional color field (spec.md §3).
// A nil Color means white.
type Element struct {
	Density Field
	Color   Field // nil means white
}

// NewElement builds an Element. color may be nil.
func NewElement(density Field, color Field) Element {
	return Element{Density: density, Color: color}
}

// ColorOrWhite returns Color if set, else the shared White constant field.
func (e Element) ColorOrWhite() Field {
	if e.Color != nil {
		return e.Color
	}
	return White
}

// Light pairs an occlusion field with a color (spec.md §3). The occlusion
// field returns, for each world point, the scalar attenuation from that
// point toward the light: 0 fully shadowed, 1 fully lit.
type Light struct {
	Occlusion Field
	Color     vec.Vec3
}

// NewLight builds a Light.
func NewLight(occlusion Field, color vec.Vec3) Light {
	return Light{Occlusion: occlusion, Color: color}
}
