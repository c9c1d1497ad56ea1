// Package zone segments a reference pattern into colour blobs and scores a
// painting against each blob.
package zone

// Options tunes segmentation and per-zone scoring.
type Options struct {
	MinShapePixels     int     `json:"min_shape_pixels"`
	Padding            int     `json:"padding"`
	ToleranceRadius    float64 `json:"tolerance_radius"`
	MinCoverage        float64 `json:"min_coverage"`
	MinPrecision       float64 `json:"min_precision"`
	OverflowMultiplier float64 `json:"overflow_multiplier"`
	MaxOverflowPenalty float64 `json:"max_overflow_penalty"`
	LocationFullRadius float64 `json:"location_full_radius"`
	SizeLower          float64 `json:"size_lower"`
	SizeUpper          float64 `json:"size_upper"`
	ShapeWeight        float64 `json:"shape_weight"`
	LocationWeight     float64 `json:"location_weight"`
	SizeWeight         float64 `json:"size_weight"`
}

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		MinShapePixels:     20,
		Padding:            10,
		ToleranceRadius:    5,
		MinCoverage:        0.6,
		MinPrecision:       0.6,
		OverflowMultiplier: 1.5,
		MaxOverflowPenalty: 0.8,
		LocationFullRadius: 30,
		SizeLower:          0.7,
		SizeUpper:          1.3,
		ShapeWeight:        0.5,
		LocationWeight:     0.25,
		SizeWeight:         0.25,
	}
}
