// Package costfuncs implements loss criteria over per-class score matrices.
package costfuncs

import "math"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"
import "gonum.org/v1/gonum/mat"

import "github.com/avgm/reviewscore/tensor"

// CrossEntropyLoss is the mean softmax cross-entropy of raw scores against class labels
type CrossEntropyLoss struct{}

// CrossEntropy returns the cross-entropy criterion
func CrossEntropy() CrossEntropyLoss {
	return CrossEntropyLoss{}
}

func (CrossEntropyLoss) String() string {
	return "cross-entropy"
}

// Loss returns the loss and its gradient with respect to the scores
func (CrossEntropyLoss) Loss(scores *mat.Dense, labels *tensor.Int64) (float64, *mat.Dense, error) {
	rows, classes := scores.Dims()
	if rows != labels.Len() {
		return 0, nil, errors.Errorf("cross-entropy: %d score rows for %d labels", rows, labels.Len())
	}
	if rows == 0 {
		return 0, nil, errors.New("cross-entropy: empty batch")
	}
	var grad = mat.NewDense(rows, classes, nil)
	var sum float64
	var n = float64(rows)
	for i := 0; i < rows; i++ {
		var y = labels.Data[i]
		if y < 0 || y >= int64(classes) {
			return 0, nil, errors.Errorf("cross-entropy: label %d outside [0, %d)", y, classes)
		}
		var row = scores.RawRowView(i)
		var lse = floats.LogSumExp(row)
		sum += lse - row[y]

		var g = grad.RawRowView(i)
		for j, s := range row {
			g[j] = math.Exp(s-lse) / n
		}
		g[y] -= 1 / n
	}
	return sum / n, grad, nil
}
