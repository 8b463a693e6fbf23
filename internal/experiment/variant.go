package experiment

// Variant is one arm of an experiment (e.g. control vs. treatment).
// Weight is normalized against its siblings when the experiment is
// constructed. Counters are only ever mutated through Experiment
// assignment and conversion recording.
type Variant struct {
	Name        string
	Weight      float64
	Conversions int
	Exposures   int
	Metadata    map[string]any
}

// NewVariant returns a variant with the default weight of 1.
func NewVariant(name string) *Variant {
	return &Variant{Name: name, Weight: 1}
}

// NewWeightedVariant returns a variant with an explicit pre-normalization
// weight. Higher weight means a larger share of assignments.
func NewWeightedVariant(name string, weight float64) *Variant {
	return &Variant{Name: name, Weight: weight}
}

// ConversionRate returns conversions/exposures, or 0 when the variant has
// not been exposed yet.
func (v *Variant) ConversionRate() float64 {
	if v.Exposures == 0 {
		return 0
	}
	return float64(v.Conversions) / float64(v.Exposures)
}

func (v *Variant) recordExposure() {
	v.Exposures++
}

func (v *Variant) recordConversion() {
	v.Conversions++
}
