package trainer

import "github.com/google/uuid"
import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/avgm/reviewscore/device"
import "github.com/avgm/reviewscore/metrics"

// DefaultPrintEvery is the progress cadence when Options.PrintEvery is zero
const DefaultPrintEvery = 25

// Options configure a Trainer
type Options struct {
	Device     device.Device     // where batches live, required
	Metrics    []metrics.Factory // instantiated once per phase
	PrintEvery int               // batches between progress entries, default 25
	Logger     *zap.Logger       // progress entries, default no-op

	ProgressBar bool // draw a terminal progress bar per epoch
}

// Trainer runs epochs of a model
type Trainer struct {
	model     Model
	criterion Criterion
	optimizer Optimizer

	device      device.Device
	phase       Phase
	metrics     map[Phase][]metrics.Metric
	printEvery  int
	log         *zap.Logger
	progressBar bool
	run         uuid.UUID

	results []EpochResult
}

// New creates a trainer in the training phase
func New(model Model, criterion Criterion, optimizer Optimizer, o Options) (*Trainer, error) {
	if model == nil || criterion == nil || optimizer == nil {
		return nil, errors.New("trainer needs a model, a criterion and an optimizer")
	}
	if o.Device == nil {
		return nil, errors.New("trainer needs an explicit device")
	}
	if o.PrintEvery < 0 {
		return nil, errors.Errorf("negative print cadence %d", o.PrintEvery)
	}
	if o.PrintEvery == 0 {
		o.PrintEvery = DefaultPrintEvery
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	var t = &Trainer{
		model:       model,
		criterion:   criterion,
		optimizer:   optimizer,
		device:      o.Device,
		metrics:     make(map[Phase][]metrics.Metric),
		printEvery:  o.PrintEvery,
		progressBar: o.ProgressBar,
		run:         uuid.New(),
	}
	t.log = o.Logger.With(zap.String("run", t.run.String()))
	for _, phase := range []Phase{Training, Evaluating} {
		for _, f := range o.Metrics {
			t.metrics[phase] = append(t.metrics[phase], f())
		}
	}
	t.Train()
	return t, nil
}

// Train switches to the training phase
func (t *Trainer) Train() {
	t.setPhase(Training)
}

// Eval switches to the evaluation phase
func (t *Trainer) Eval() {
	t.setPhase(Evaluating)
}

func (t *Trainer) setPhase(p Phase) {
	t.phase = p
	if ps, ok := t.model.(PhaseSetter); ok {
		ps.SetTraining(p == Training)
	}
}

// Phase is the current phase
func (t *Trainer) Phase() Phase {
	return t.phase
}

// Metrics returns the metric set of a phase
func (t *Trainer) Metrics(p Phase) []metrics.Metric {
	return t.metrics[p]
}

// Run identifies this trainer in its log entries
func (t *Trainer) Run() string {
	return t.run.String()
}

// Results lists the epochs run by Fit, in order
func (t *Trainer) Results() []EpochResult {
	return t.results
}
