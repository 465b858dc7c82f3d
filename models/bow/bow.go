// Package bow is a baseline review scorer: the mean of the token embeddings
// of a review fed to a linear layer.
package bow

import "math/rand"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

import "github.com/avgm/reviewscore/optimizers"
import "github.com/avgm/reviewscore/tensor"

// Model is a bag of embeddings classifier
type Model struct {
	vocab, dim, classes int
	padding             int64

	embedding *optimizers.Param // [vocab x dim]
	weight    *optimizers.Param // [dim x classes]
	bias      *optimizers.Param // [classes]

	// forward state kept for Backward
	hidden  *mat.Dense
	tokens  *tensor.Int64
	lengths []int
	counts  []int
}

// New initializes a model with small random weights drawn from rng
func New(vocab, dim, classes int, paddingIndex int64, rng *rand.Rand) (*Model, error) {
	if vocab <= 0 || dim <= 0 || classes <= 0 {
		return nil, errors.Errorf("bow: bad sizes vocab=%d dim=%d classes=%d", vocab, dim, classes)
	}
	var m = &Model{
		vocab:     vocab,
		dim:       dim,
		classes:   classes,
		padding:   paddingIndex,
		embedding: optimizers.NewParam("embedding", vocab*dim),
		weight:    optimizers.NewParam("weight", dim*classes),
		bias:      optimizers.NewParam("bias", classes),
	}
	for i := range m.embedding.Value {
		m.embedding.Value[i] = 0.1 * rng.NormFloat64()
	}
	if paddingIndex >= 0 && paddingIndex < int64(vocab) {
		copy(m.embedding.Value[int(paddingIndex)*dim:], make([]float64, dim))
	}
	for i := range m.weight.Value {
		m.weight.Value[i] = 0.1 * rng.NormFloat64()
	}
	return m, nil
}

// Params lists the trainable parameters
func (m *Model) Params() []*optimizers.Param {
	return []*optimizers.Param{m.embedding, m.weight, m.bias}
}

// Forward scores each row of tokens using its first lengths[i] tokens.
// Padding tokens never contribute to the mean.
func (m *Model) Forward(tokens, lengths *tensor.Int64) (*mat.Dense, error) {
	var rows = tokens.Rows()
	if rows != lengths.Len() {
		return nil, errors.Errorf("bow: %d token rows for %d lengths", rows, lengths.Len())
	}
	var hidden = mat.NewDense(rows, m.dim, nil)
	var counts = make([]int, rows)
	for i := 0; i < rows; i++ {
		var n = int(lengths.Data[i])
		if n > tokens.Cols() {
			return nil, errors.Errorf("bow: row %d length %d exceeds width %d", i, n, tokens.Cols())
		}
		var h = hidden.RawRowView(i)
		for _, tok := range tokens.Row(i)[:n] {
			if tok == m.padding {
				continue
			}
			if tok < 0 || tok >= int64(m.vocab) {
				return nil, errors.Errorf("bow: token %d outside vocabulary of %d", tok, m.vocab)
			}
			var e = m.embedding.Value[int(tok)*m.dim : int(tok+1)*m.dim]
			for k := range h {
				h[k] += e[k]
			}
			counts[i]++
		}
		if counts[i] > 0 {
			for k := range h {
				h[k] /= float64(counts[i])
			}
		}
	}

	var scores = mat.NewDense(rows, m.classes, nil)
	scores.Mul(hidden, mat.NewDense(m.dim, m.classes, m.weight.Value))
	for i := 0; i < rows; i++ {
		var s = scores.RawRowView(i)
		for j := range s {
			s[j] += m.bias.Value[j]
		}
	}
	m.hidden, m.tokens, m.lengths, m.counts = hidden, tokens, lengths.Ints(), counts
	return scores, nil
}

// Backward accumulates parameter gradients from the gradient of the last Forward's scores
func (m *Model) Backward(grad *mat.Dense) error {
	if m.hidden == nil {
		return errors.New("bow: backward without forward")
	}
	rows, cols := grad.Dims()
	if r, _ := m.hidden.Dims(); r != rows || cols != m.classes {
		return errors.Errorf("bow: gradient is %dx%d, scores were %dx%d", rows, cols, r, m.classes)
	}

	var dw mat.Dense
	dw.Mul(m.hidden.T(), grad)
	var wg = mat.NewDense(m.dim, m.classes, m.weight.Grad)
	wg.Add(wg, &dw)

	for i := 0; i < rows; i++ {
		for j, g := range grad.RawRowView(i) {
			m.bias.Grad[j] += g
		}
	}

	var dh mat.Dense
	dh.Mul(grad, mat.NewDense(m.dim, m.classes, m.weight.Value).T())
	for i := 0; i < rows; i++ {
		if m.counts[i] == 0 {
			continue
		}
		var d = dh.RawRowView(i)
		var scale = 1 / float64(m.counts[i])
		for _, tok := range m.tokens.Row(i)[:m.lengths[i]] {
			if tok == m.padding {
				continue
			}
			var e = m.embedding.Grad[int(tok)*m.dim : int(tok+1)*m.dim]
			for k := range e {
				e[k] += scale * d[k]
			}
		}
	}
	m.hidden, m.tokens, m.lengths, m.counts = nil, nil, nil, nil
	return nil
}
