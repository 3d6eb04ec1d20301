package model

import "time"

// Report is the persisted form of a sweep.
type Report struct {
	ID          string        `yaml:"id"`
	Target      string        `yaml:"target"`
	CreatedAt   time.Time     `yaml:"created_at"`
	MaxSize     int           `yaml:"max_size"`
	Step        int           `yaml:"step"`
	Index       int           `yaml:"index"`
	MinAccuracy float64       `yaml:"min_accuracy"`
	Samples     Samples       `yaml:"samples"`
	Rejections  []Rejection   `yaml:"rejections,omitempty"`
	Total       time.Duration `yaml:"total"`
	Fit         FitResult     `yaml:"fit"`
	FitError    string        `yaml:"fit_error,omitempty"`
}

// TargetInfo describes a registered target function.
type TargetInfo struct {
	Name        string
	Description string
	Expected    string // complexity the target is written to have
	Index       int
	Base        []int
}
