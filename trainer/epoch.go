package trainer

import "fmt"
import "io"

import "github.com/pkg/errors"
import "github.com/sbwhitecap/tqdm"
import "github.com/sbwhitecap/tqdm/iterators"
import "go.uber.org/zap"

import "github.com/avgm/reviewscore/datasets"
import "github.com/avgm/reviewscore/metrics"

// EpochResult sums up one pass over a batch stream
type EpochResult struct {
	Phase    Phase
	Epoch    int
	Batches  int
	Examples int
	Loss     float64 // sum of the per-batch losses
}

// MeanLoss is the loss averaged over batches
func (r EpochResult) MeanLoss() float64 {
	if r.Batches == 0 {
		return 0
	}
	return r.Loss / float64(r.Batches)
}

type epoch struct {
	t      *Trainer
	stream datasets.Stream
	result EpochResult

	lastLoss    float64
	lastPrinted int
}

// RunEpoch consumes the stream once in the current phase. Metrics of the
// phase accumulate but are not reset. The first error from the stream, the
// model or the criterion aborts the epoch and is returned.
func (t *Trainer) RunEpoch(stream datasets.Stream, n int) (EpochResult, error) {
	defer stream.Close()
	var e = &epoch{
		t:           t,
		stream:      stream,
		result:      EpochResult{Phase: t.phase, Epoch: n},
		lastPrinted: -1,
	}
	var err error
	if t.progressBar && stream.Len() > 0 {
		var desc = fmt.Sprintf("%s: Epoch %d", t.phase, n+1)
		var stepErr error
		err = tqdm.With(iterators.Interval(0, stream.Len()), desc, func(v interface{}) (brk bool) {
			done, err := e.step(v.(int))
			if err != nil {
				stepErr = err
				return true
			}
			return done
		})
		if stepErr != nil {
			err = stepErr
		} else if err == nil {
			// the stream may hold more batches than it announced
			err = e.rest(e.result.Batches)
		}
	} else {
		err = e.rest(0)
	}
	if err != nil {
		return e.result, err
	}
	if e.result.Batches > 0 && e.lastPrinted != e.result.Batches-1 {
		e.progress(e.result.Batches-1, e.lastLoss)
	}
	return e.result, nil
}

func (e *epoch) rest(idx int) error {
	for ; ; idx++ {
		done, err := e.step(idx)
		if err != nil || done {
			return err
		}
	}
}

func (e *epoch) step(idx int) (done bool, err error) {
	var t = e.t
	b, err := e.stream.Next()
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "%s epoch %d batch %d", t.phase, e.result.Epoch, idx)
	}
	defer b.Release(t.device)

	var training = t.phase == Training
	if training {
		t.optimizer.ZeroGrad()
	}
	scores, err := t.model.Forward(b.Tokens, b.Lengths)
	if err != nil {
		return false, errors.Wrapf(err, "%s epoch %d batch %d: forward", t.phase, e.result.Epoch, idx)
	}
	loss, grad, err := t.criterion.Loss(scores, b.Labels)
	if err != nil {
		return false, errors.Wrapf(err, "%s epoch %d batch %d: criterion", t.phase, e.result.Epoch, idx)
	}
	e.result.Loss += loss
	e.result.Batches++
	e.result.Examples += b.Size()
	e.lastLoss = loss
	for _, m := range t.metrics[t.phase] {
		m.Update(scores, b.Labels)
	}
	if training {
		if err := t.model.Backward(grad); err != nil {
			return false, errors.Wrapf(err, "%s epoch %d batch %d: backward", t.phase, e.result.Epoch, idx)
		}
		t.optimizer.Step()
	}
	if idx%t.printEvery == 0 {
		e.progress(idx, loss)
	}
	return false, nil
}

// progress emits one observation with the loss and every active metric
func (e *epoch) progress(idx int, loss float64) {
	var t = e.t
	e.lastPrinted = idx
	t.log.Info("progress",
		zap.Int("epoch", e.result.Epoch+1),
		zap.Stringer("phase", t.phase),
		zap.Int("batch", idx),
		zap.Float64("loss", loss),
		zap.Any("metrics", t.formatMetrics(t.phase)),
	)
}

// formatMetrics maps each metric name of a phase to its formatted current value
func (t *Trainer) formatMetrics(p Phase) map[string]string {
	var o = make(map[string]string, len(t.metrics[p]))
	for _, m := range t.metrics[p] {
		v, err := m.Current()
		if err != nil {
			o[m.Name()] = "n/a"
			continue
		}
		o[m.Name()] = metrics.Format(v)
	}
	return o
}
