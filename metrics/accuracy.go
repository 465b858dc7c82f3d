package metrics

import "fmt"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"
import "gonum.org/v1/gonum/mat"

import "github.com/avgm/reviewscore/tensor"

// Accuracy counts exact class matches
func Accuracy() Factory {
	return AccuracyThreshold(0)
}

// AccuracyThreshold counts predictions within threshold classes of the true label
func AccuracyThreshold(threshold int) Factory {
	if threshold < 0 {
		panic(fmt.Sprintf("metrics: negative accuracy threshold %d", threshold))
	}
	return func() Metric {
		return &ThresholdAccuracy{Threshold: threshold}
	}
}

// ThresholdAccuracy is the accumulator behind Accuracy and AccuracyThreshold
type ThresholdAccuracy struct {
	Threshold int

	correct int
	total   int
	history []float64
}

func (a *ThresholdAccuracy) Update(scores mat.Matrix, labels *tensor.Int64) {
	rows, cols := scores.Dims()
	if rows != labels.Len() {
		panic(fmt.Sprintf("metrics: %d score rows for %d labels", rows, labels.Len()))
	}
	var row = make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, scores)
		var diff = int64(floats.MaxIdx(row)) - labels.Data[i]
		if diff < 0 {
			diff = -diff
		}
		if diff <= int64(a.Threshold) {
			a.correct++
		}
	}
	a.total += rows
}

func (a *ThresholdAccuracy) Current() (float64, error) {
	if a.total == 0 {
		return 0, errors.Wrapf(ErrNoSamples, "%s", a.Name())
	}
	return float64(a.correct) / float64(a.total), nil
}

func (a *ThresholdAccuracy) Reset() error {
	current, err := a.Current()
	if err != nil {
		return err
	}
	a.history = append(a.history, current)
	a.correct = 0
	a.total = 0
	return nil
}

func (a *ThresholdAccuracy) History() []float64 {
	return a.history
}

func (a *ThresholdAccuracy) Name() string {
	return fmt.Sprintf("Acc%d", a.Threshold)
}

// Counts exposes the raw counters
func (a *ThresholdAccuracy) Counts() (correct, total int) {
	return a.correct, a.total
}

func (a *ThresholdAccuracy) String() string {
	current, err := a.Current()
	if err != nil {
		return "n/a"
	}
	return Format(current)
}

// Format renders a metric value as a percentage with two decimals
func Format(v float64) string {
	return fmt.Sprintf("%.2f%%", 100*v)
}
