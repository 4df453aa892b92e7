package color

// srgb8ToLinearLUT maps every 8-bit sRGB channel value to linear float32.
// Author colors carry 8-bit channels, so the table covers every input exactly.
var srgb8ToLinearLUT [256]float32

func init() {
	for i := range srgb8ToLinearLUT {
		srgb8ToLinearLUT[i] = float32(SRGBToLinear64(float64(i) / 255.0))
	}
}

// SRGB8ToLinear converts an 8-bit sRGB channel to linear float32 in [0,1].
func SRGB8ToLinear(v uint8) float32 {
	return srgb8ToLinearLUT[v]
}
