package frontier

// epsilon keeps inverse-distance weights finite when a grid cell center
// coincides exactly with a sample point.
const epsilon = 0.1

// Sample is one interpolated point of the reconstructed fitness surface.
type Sample struct {
	GridX, GridZ int     // Grid cell indices, 0..resolution-1
	X, Z         float64 // Cell center in the normalized (quality, speed) plane
	Height       float64 // Interpolated complexity at the cell center
	Fitness      float64 // Interpolated combined fitness at the cell center
}

// Reconstruct approximates a continuous fitness surface from scattered
// samples using inverse-distance weighting (a Shepard-interpolation
// variant) on a resolution × resolution grid over the normalized
// (quality, speed) plane.
//
// Each input point contributes to a cell with weight 1/(d²+ε), where d is
// the planar distance from the point's (quality, speed) coordinates to
// the cell center. Height interpolates complexity; Fitness interpolates
// the combined fitness scalar.
//
// Samples are emitted row-major (Z outer, X inner). The cost is
// O(resolution² × n); callers with large inputs should reduce the
// resolution or pre-bucket their points. Zero input points or a
// non-positive resolution yield an empty result, not an error. Objective
// values outside [0,1] are accepted - weights stay well-defined for any
// finite input.
func Reconstruct(points []Point, resolution int) []Sample {
	if len(points) == 0 || resolution <= 0 {
		return nil
	}

	samples := make([]Sample, 0, resolution*resolution)
	for gz := 0; gz < resolution; gz++ {
		cz := (float64(gz) + 0.5) / float64(resolution)
		for gx := 0; gx < resolution; gx++ {
			cx := (float64(gx) + 0.5) / float64(resolution)

			var weightSum, heightSum, fitnessSum float64
			for _, p := range points {
				dx := p.Quality - cx
				dz := p.Speed - cz
				w := 1 / (dx*dx + dz*dz + epsilon)
				weightSum += w
				heightSum += w * p.Complexity
				fitnessSum += w * p.Fitness
			}

			samples = append(samples, Sample{
				GridX:   gx,
				GridZ:   gz,
				X:       cx,
				Z:       cz,
				Height:  heightSum / weightSum,
				Fitness: fitnessSum / weightSum,
			})
		}
	}
	return samples
}
