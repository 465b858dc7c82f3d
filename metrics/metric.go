package metrics

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

import "github.com/avgm/reviewscore/tensor"

// ErrNoSamples is returned when a metric value is requested before any update
var ErrNoSamples = errors.New("metric has no samples")

// Metric is a stateful running accumulator of a scalar quality measure
type Metric interface {
	// Update accumulates a batch of per-class scores against true labels
	Update(scores mat.Matrix, labels *tensor.Int64)

	// Reset appends the current value to the history and zeroes the counters
	Reset() error

	// Current is the value accumulated since the last reset
	Current() (float64, error)

	// History holds one value per reset, oldest first
	History() []float64

	// Name is a short deterministic label such as "Acc0"
	Name() string
}

// Factory creates a fresh independent metric instance
type Factory func() Metric
