package trainer

import "gonum.org/v1/gonum/mat"

import "github.com/avgm/reviewscore/datasets"
import "github.com/avgm/reviewscore/tensor"

// Model is the forward computation of a concrete architecture
type Model interface {
	// Forward returns per-class scores for each row of the padded tokens,
	// in the same row order. lengths holds the true length of each row.
	Forward(tokens, lengths *tensor.Int64) (*mat.Dense, error)

	// Backward accumulates parameter gradients given the gradient of the
	// scores returned by the last Forward call
	Backward(grad *mat.Dense) error
}

// PhaseSetter is implemented by models that behave differently in training,
// e.g. with dropout. The trainer calls it on every phase switch.
type PhaseSetter interface {
	SetTraining(training bool)
}

// Criterion maps scores and labels to a scalar loss and its gradient
type Criterion interface {
	Loss(scores *mat.Dense, labels *tensor.Int64) (loss float64, grad *mat.Dense, err error)
}

// Optimizer updates the model parameters from their gradients
type Optimizer interface {
	ZeroGrad()
	Step()
}

// BatchSource starts a new pass of batches each time it is asked
type BatchSource interface {
	Batches() (datasets.Stream, error)
}

// Phase is either Training or Evaluating
type Phase int

const (
	Training Phase = iota
	Evaluating
)

func (p Phase) String() string {
	switch p {
	case Training:
		return "train"
	case Evaluating:
		return "eval"
	}
	return "unknown"
}
