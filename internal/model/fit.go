package model

import "fmt"

// NoDegree marks a fit in which no tested degree reached the accuracy threshold.
const NoDegree = -1

// DegreeScore is the goodness of fit of one candidate degree.
type DegreeScore struct {
	Degree int     `yaml:"degree"`
	Score  float64 `yaml:"score"`
}

// FitResult is the outcome of growth-model selection.
type FitResult struct {
	Degree   int           `yaml:"degree"`
	Accuracy float64       `yaml:"accuracy"` // meaningful only when Accepted
	Scores   []DegreeScore `yaml:"scores,omitempty"`
}

// Accepted reports whether a degree met the threshold.
func (f FitResult) Accepted() bool {
	return f.Degree != NoDegree
}

// Best returns the highest score among the tested degrees.
func (f FitResult) Best() (DegreeScore, bool) {
	if len(f.Scores) == 0 {
		return DegreeScore{}, false
	}

	best := f.Scores[0]
	for _, s := range f.Scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	return best, true
}

// ComplexityName returns the usual big-O notation for a polynomial degree.
func ComplexityName(degree int) string {
	switch degree {
	case NoDegree:
		return "unknown"
	case 0:
		return "O(1)"
	case 1:
		return "O(n)"
	default:
		return fmt.Sprintf("O(n^%d)", degree)
	}
}
