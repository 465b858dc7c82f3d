package costfuncs

import "math"
import "testing"

import "github.com/stretchr/testify/require"
import "gonum.org/v1/gonum/mat"

import "github.com/avgm/reviewscore/tensor"

func TestCrossEntropyUniform(t *testing.T) {
	var scores = mat.NewDense(2, 4, nil)
	loss, grad, err := CrossEntropy().Loss(scores, tensor.NewInt64([]int64{0, 3}, 2))
	require.NoError(t, err)
	require.InDelta(t, math.Log(4), loss, 1e-12)

	// softmax 1/4 everywhere, minus one at the label, averaged over 2 rows
	require.InDelta(t, (0.25-1)/2, grad.At(0, 0), 1e-12)
	require.InDelta(t, 0.25/2, grad.At(0, 1), 1e-12)
	require.InDelta(t, (0.25-1)/2, grad.At(1, 3), 1e-12)
}

func TestCrossEntropyGradientMatchesFiniteDifference(t *testing.T) {
	var scores = mat.NewDense(2, 3, []float64{0.3, -1.2, 2.0, 0.1, 0.4, -0.5})
	var labels = tensor.NewInt64([]int64{2, 0}, 2)
	_, grad, err := CrossEntropy().Loss(scores, labels)
	require.NoError(t, err)

	const h = 1e-6
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			var v = scores.At(i, j)
			scores.Set(i, j, v+h)
			up, _, _ := CrossEntropy().Loss(scores, labels)
			scores.Set(i, j, v-h)
			down, _, _ := CrossEntropy().Loss(scores, labels)
			scores.Set(i, j, v)
			require.InDelta(t, (up-down)/(2*h), grad.At(i, j), 1e-6)
		}
	}
}

func TestCrossEntropyStableForLargeScores(t *testing.T) {
	var scores = mat.NewDense(1, 2, []float64{1000, 0})
	loss, _, err := CrossEntropy().Loss(scores, tensor.NewInt64([]int64{0}, 1))
	require.NoError(t, err)
	require.False(t, math.IsNaN(loss))
	require.InDelta(t, 0, loss, 1e-9)
}

func TestCrossEntropyErrors(t *testing.T) {
	var scores = mat.NewDense(1, 3, nil)
	_, _, err := CrossEntropy().Loss(scores, tensor.NewInt64([]int64{3}, 1))
	require.Error(t, err)
	_, _, err = CrossEntropy().Loss(scores, tensor.NewInt64([]int64{0, 1}, 2))
	require.Error(t, err)
}

func TestCrossEntropyLossZeroValue(t *testing.T) {
	var c CrossEntropyLoss = CrossEntropy()
	require.Equal(t, "cross-entropy", c.String())
	loss, _, err := CrossEntropyLoss{}.Loss(mat.NewDense(1, 2, nil), tensor.NewInt64([]int64{1}, 1))
	require.NoError(t, err)
	require.InDelta(t, math.Log(2), loss, 1e-12)
}
