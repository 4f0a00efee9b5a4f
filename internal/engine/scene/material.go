package scene

// HeightMaterial displaces tiles with a procedural height field in the
// vertex shader and shades them by height. Shared vertices receive the
// same displacement, so seams between tiles stay closed.
type HeightMaterial struct {
	Amplitude float32
	Frequency float32

	LowColor  [3]float32
	HighColor [3]float32
	FogColor  [3]float32
	FogFar    float32

	Wireframe bool
}

var defaultMaterial = DefaultHeightMaterial()

// DefaultHeightMaterial returns rolling green hills.
func DefaultHeightMaterial() HeightMaterial {
	return HeightMaterial{
		Amplitude: 12,
		Frequency: 0.01,
		LowColor:  [3]float32{0.22, 0.38, 0.18},
		HighColor: [3]float32{0.62, 0.58, 0.45},
		FogColor:  [3]float32{0.55, 0.65, 0.75},
		FogFar:    1500,
	}
}
