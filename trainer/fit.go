package trainer

import "github.com/montanaflynn/stats"
import "github.com/pkg/errors"
import "go.uber.org/zap"

import "github.com/avgm/reviewscore/metrics"

// Fit runs epochs training epochs over train, each followed by an evaluation
// epoch over valid when valid is not nil. At the end of every epoch the
// metrics of that phase are reset, so their history has one value per epoch.
// Pass an untyped nil to skip evaluation, a nil *datasets.Loader fails.
func (t *Trainer) Fit(train, valid BatchSource, epochs int) error {
	if train == nil {
		return errors.New("fit needs a training source")
	}
	for n := 0; n < epochs; n++ {
		t.Train()
		if err := t.epoch(train, n); err != nil {
			return err
		}
		if valid != nil {
			t.Eval()
			if err := t.epoch(valid, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Trainer) epoch(source BatchSource, n int) error {
	stream, err := source.Batches()
	if err != nil {
		return errors.Wrapf(err, "%s epoch %d: starting batches", t.phase, n)
	}
	result, err := t.RunEpoch(stream, n)
	if err != nil {
		return err
	}
	t.results = append(t.results, result)
	t.log.Info("epoch done",
		zap.Int("epoch", n+1),
		zap.Stringer("phase", t.phase),
		zap.Int("batches", result.Batches),
		zap.Int("examples", result.Examples),
		zap.Float64("loss", result.MeanLoss()),
	)
	if result.Examples == 0 {
		t.log.Warn("empty epoch, metrics not reset", zap.Int("epoch", n+1), zap.Stringer("phase", t.phase))
		return nil
	}
	for _, m := range t.metrics[t.phase] {
		if err := m.Reset(); err != nil {
			return errors.Wrapf(err, "%s epoch %d: resetting %s", t.phase, n, m.Name())
		}
	}
	return nil
}

// MetricSummary aggregates the history of one metric
type MetricSummary struct {
	Name   string
	Epochs int
	Mean   float64
	Best   float64
	Last   float64
}

// Summary aggregates the history of every metric of a phase. Metrics without
// history are skipped.
func (t *Trainer) Summary(p Phase) ([]MetricSummary, error) {
	var o []MetricSummary
	for _, m := range t.metrics[p] {
		var h = m.History()
		if len(h) == 0 {
			continue
		}
		mean, err := stats.Mean(h)
		if err != nil {
			return nil, errors.Wrapf(err, "mean of %s", m.Name())
		}
		best, err := stats.Max(h)
		if err != nil {
			return nil, errors.Wrapf(err, "max of %s", m.Name())
		}
		o = append(o, MetricSummary{
			Name:   m.Name(),
			Epochs: len(h),
			Mean:   mean,
			Best:   best,
			Last:   h[len(h)-1],
		})
	}
	return o, nil
}

func (s MetricSummary) String() string {
	return s.Name + " last " + metrics.Format(s.Last) + " best " + metrics.Format(s.Best) + " mean " + metrics.Format(s.Mean)
}
