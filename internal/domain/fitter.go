package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	m "otime.dev/pkg/otime/internal/model"
)

// DefaultMaxDegree bounds the polynomial degrees a Fitter tries.
const DefaultMaxDegree = 4

// Fitter selects the growth model that explains a set of samples.
type Fitter interface {
	Fit(samples m.Samples, minAccuracy float64) (m.FitResult, error)
}

type polyFitter struct {
	maxDegree int
}

// NewFitter creates a Fitter that tries polynomial degrees 0..maxDegree,
// lowest first, and settles on the first one whose score reaches the
// requested accuracy. A non-positive maxDegree selects DefaultMaxDegree.
func NewFitter(maxDegree int) Fitter {
	if maxDegree <= 0 {
		maxDegree = DefaultMaxDegree
	}

	return &polyFitter{maxDegree: maxDegree}
}

func (f *polyFitter) Fit(samples m.Samples, minAccuracy float64) (m.FitResult, error) {
	distinct := samples.DistinctSizes()
	if distinct < 2 {
		return m.FitResult{Degree: m.NoDegree}, fmt.Errorf("%w: %d distinct size(s)", ErrInsufficientData, distinct)
	}

	xs, ys := normalize(samples)

	bound := min(f.maxDegree, distinct-1)
	result := m.FitResult{Degree: m.NoDegree, Scores: make([]m.DegreeScore, 0, bound+1)}

	for degree := 0; degree <= bound; degree++ {
		score, err := scoreDegree(xs, ys, degree)
		if err != nil {
			return m.FitResult{Degree: m.NoDegree}, err
		}

		result.Scores = append(result.Scores, m.DegreeScore{Degree: degree, Score: score})
		slog.Debug("scored degree", "degree", degree, "score", score, "threshold", minAccuracy)

		if score >= minAccuracy {
			result.Degree = degree
			result.Accuracy = score

			return result, nil
		}
	}

	return result, nil
}

// normalize maps sizes onto [0, 1] and elapsed times onto seconds.
func normalize(samples m.Samples) ([]float64, []float64) {
	largest := 0
	for _, s := range samples {
		largest = max(largest, s.Size)
	}

	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))

	for i, s := range samples {
		xs[i] = float64(s.Size) / float64(largest)
		ys[i] = s.Elapsed.Seconds()
	}

	return xs, ys
}

func scoreDegree(xs, ys []float64, degree int) (float64, error) {
	if degree == 0 {
		return flatness(ys), nil
	}

	coef, err := polyFit(xs, ys, degree)
	if err != nil {
		return 0, err
	}

	estimates := make([]float64, len(xs))
	for i, x := range xs {
		estimates[i] = polyEval(coef, x)
	}

	return rSquared(estimates, ys), nil
}

// flatness scores the constant model as 1 - coefficient of variation. R²
// against the mean is zero by construction, so it cannot rank degree 0.
func flatness(ys []float64) float64 {
	mean, std := stat.MeanStdDev(ys, nil)
	if mean == 0 {
		if std == 0 {
			return 1
		}

		return 0
	}

	return clamp01(1 - std/math.Abs(mean))
}

func rSquared(estimates, ys []float64) float64 {
	if stat.Variance(ys, nil) == 0 {
		return 1
	}

	return clamp01(stat.RSquaredFrom(estimates, ys, nil))
}

// polyFit solves the least-squares problem V·c = y for the Vandermonde
// matrix V of xs.
func polyFit(xs, ys []float64, degree int) ([]float64, error) {
	vandermonde := mat.NewDense(len(xs), degree+1, nil)

	for i, x := range xs {
		p := 1.0
		for j := 0; j <= degree; j++ {
			vandermonde.Set(i, j, p)
			p *= x
		}
	}

	var coef mat.VecDense
	if err := coef.SolveVec(vandermonde, mat.NewVecDense(len(ys), ys)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("least squares for degree %d: %w", degree, err)
		}

		slog.Debug("ill-conditioned fit", "degree", degree, "condition", float64(cond))
	}

	return coef.RawVector().Data, nil
}

func polyEval(coef []float64, x float64) float64 {
	y := 0.0
	for i := len(coef) - 1; i >= 0; i-- {
		y = y*x + coef[i]
	}

	return y
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
