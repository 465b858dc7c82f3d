// Package optimizers holds trainable parameters and the rules that update them.
package optimizers

// Param is a flat trainable parameter with its accumulated gradient
type Param struct {
	Name  string
	Value []float64
	Grad  []float64
}

// NewParam allocates a zero parameter of the given size
func NewParam(name string, size int) *Param {
	return &Param{
		Name:  name,
		Value: make([]float64, size),
		Grad:  make([]float64, size),
	}
}

// SGD is stochastic gradient descent with classical momentum
type SGD struct {
	LearningRate float64
	Momentum     float64

	params   []*Param
	velocity [][]float64
}

// NewSGD updates params with the given learning rate. Momentum 0 is plain gradient descent.
func NewSGD(params []*Param, learningRate, momentum float64) *SGD {
	var s = &SGD{
		LearningRate: learningRate,
		Momentum:     momentum,
		params:       params,
		velocity:     make([][]float64, len(params)),
	}
	for i, p := range params {
		s.velocity[i] = make([]float64, len(p.Value))
	}
	return s
}

// ZeroGrad clears the accumulated gradients
func (s *SGD) ZeroGrad() {
	for _, p := range s.params {
		for i := range p.Grad {
			p.Grad[i] = 0
		}
	}
}

// Step applies one update from the accumulated gradients
func (s *SGD) Step() {
	for k, p := range s.params {
		var v = s.velocity[k]
		for i, g := range p.Grad {
			v[i] = s.Momentum*v[i] + g
			p.Value[i] -= s.LearningRate * v[i]
		}
	}
}
