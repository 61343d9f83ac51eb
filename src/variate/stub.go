package variate

// Stub is a Source whose draws are scripted by the test that owns it. A nil
// function panics, so a test cannot silently rely on a distribution it never
// scripted.
type Stub struct {
	LogNormalFunc  func(mu, sigma float64) float64
	NormalFunc     func(mu, sigma float64) float64
	UniformIntFunc func(n int) int
}

// SampleLogNormal implements Source.
func (s *Stub) SampleLogNormal(mu, sigma float64) float64 {
	if s.LogNormalFunc == nil {
		panic("variate: stub lognormal draw not scripted")
	}
	return s.LogNormalFunc(mu, sigma)
}

// SampleNormal implements Source.
func (s *Stub) SampleNormal(mu, sigma float64) float64 {
	if s.NormalFunc == nil {
		panic("variate: stub normal draw not scripted")
	}
	return s.NormalFunc(mu, sigma)
}

// SampleUniformInt implements Source.
func (s *Stub) SampleUniformInt(n int) int {
	if s.UniformIntFunc == nil {
		panic("variate: stub uniform draw not scripted")
	}
	return s.UniformIntFunc(n)
}
