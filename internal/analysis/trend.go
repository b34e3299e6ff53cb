package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Trend is a least-squares line through a series.
type Trend struct {
	Intercept float64
	Slope     float64
	R2        float64
}

func FitTrend(times, values []float64) (Trend, error) {
	if len(times) < 2 || len(times) != len(values) {
		return Trend{}, ErrTooShort
	}
	alpha, beta := stat.LinearRegression(times, values, nil, false)
	r2 := stat.RSquared(times, values, nil, alpha, beta)
	if math.IsNaN(r2) {
		r2 = 1
	}
	return Trend{Intercept: alpha, Slope: beta, R2: r2}, nil
}

// Detrend subtracts the fitted line from values.
func (t Trend) Detrend(times, values []float64) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		out[i] = values[i] - (t.Intercept + t.Slope*times[i])
	}
	return out
}

// Report is the analysis of one metric series.
type Report struct {
	Name      string
	Trend     Trend
	Frequency float64
	Power     float64
	Min, Max  float64
}

// Analyze fits a trend to the series and looks for periodic motion in the
// residual. Samples are assumed evenly spaced.
func Analyze(name string, times, values []float64) (Report, error) {
	tr, err := FitTrend(times, values)
	if err != nil {
		return Report{}, err
	}
	r := Report{Name: name, Trend: tr, Min: values[0], Max: values[0]}
	for _, v := range values {
		r.Min, r.Max = math.Min(r.Min, v), math.Max(r.Max, v)
	}

	dt := (times[len(times)-1] - times[0]) / float64(len(times)-1)
	if f, p, err := DominantFrequency(tr.Detrend(times, values), dt); err == nil {
		r.Frequency, r.Power = f, p
	}
	return r, nil
}
