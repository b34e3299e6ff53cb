package analysis

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

var ErrTooShort = errors.New("analysis: series too short")

// PowerSpectrum returns the magnitude of each non-negative frequency bin of
// series after removing its mean.
func PowerSpectrum(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}
	mean := stat.Mean(series, nil)
	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	coeffs := fourier.NewFFT(len(centered)).Coefficients(nil, centered)
	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantFrequency returns the strongest non-zero frequency in cycles per
// unit time for a series sampled every dt.
func DominantFrequency(series []float64, dt float64) (freq, power float64, err error) {
	if len(series) < 4 || dt <= 0 {
		return 0, 0, ErrTooShort
	}
	ps := PowerSpectrum(series)
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	fft := fourier.NewFFT(len(series))
	return fft.Freq(best) / dt, ps[best], nil
}
