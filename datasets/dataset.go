package datasets

import "math/rand"

import "github.com/pkg/errors"

import "github.com/avgm/reviewscore/device"
import "github.com/avgm/reviewscore/parallel"

// Dataset exposes a table as indexable labeled examples
type Dataset struct {
	table    *Table
	collator Collator
}

// NewDataset wraps a table. Batches are padded with paddingIndex and placed on dev.
func NewDataset(table *Table, paddingIndex int64, dev device.Device) (*Dataset, error) {
	if table == nil {
		return nil, errors.New("dataset needs a table")
	}
	if dev == nil {
		return nil, errors.New("dataset needs an explicit device")
	}
	return &Dataset{
		table:    table,
		collator: Collator{PaddingIndex: paddingIndex, Device: dev},
	}, nil
}

// Len is the number of examples
func (d *Dataset) Len() int {
	return d.table.Len()
}

// At returns example i
func (d *Dataset) At(i int) (Example, error) {
	r, err := d.table.Row(i)
	if err != nil {
		return Example{}, err
	}
	return Example{Tokens: r.TokenIDs, Label: r.Score, Length: r.NTokens}, nil
}

// Collator returns the collator used for the batches of this dataset
func (d *Dataset) Collator() Collator {
	return d.collator
}

// Loader partitions the dataset into batches of batchSize. When shuffle is set
// every call to Batches draws a fresh permutation from rng, so a seeded rng
// reproduces the batch order. workers is the number of batches collated ahead
// of the consumer, 0 collates on demand.
func (d *Dataset) Loader(batchSize int, shuffle bool, rng *rand.Rand, workers int) (*Loader, error) {
	if batchSize <= 0 {
		return nil, errors.Wrapf(ErrPrecondition, "batch size %d", batchSize)
	}
	if shuffle && rng == nil {
		return nil, errors.New("shuffling loader needs a random source")
	}
	return &Loader{
		dataset:   d,
		batchSize: batchSize,
		shuffle:   shuffle,
		rng:       rng,
		workers:   workers,
	}, nil
}

// Loader produces batch streams over a dataset
type Loader struct {
	dataset   *Dataset
	batchSize int
	shuffle   bool
	rng       *rand.Rand
	workers   int
}

// Len is the number of batches per stream, 0 for a nil loader
func (l *Loader) Len() int {
	if l == nil {
		return 0
	}
	return (l.dataset.Len() + l.batchSize - 1) / l.batchSize
}

// Device is where the batches are placed
func (l *Loader) Device() device.Device {
	return l.dataset.collator.Device
}

// Batches starts a new pass over the dataset
func (l *Loader) Batches() (Stream, error) {
	if l == nil {
		return nil, errors.Wrap(ErrPrecondition, "batches of a nil loader")
	}
	var n = l.dataset.Len()
	var order []int
	if l.shuffle {
		order = l.rng.Perm(n)
	} else {
		order = make([]int, n)
		for i := range order {
			order[i] = i
		}
	}
	var size = l.batchSize
	p := parallel.Prefetch(l.Len(), l.workers, func(b int) (*Batch, error) {
		var lo, hi = b * size, (b + 1) * size
		if hi > n {
			hi = n
		}
		var examples = make([]Example, 0, hi-lo)
		for _, i := range order[lo:hi] {
			e, err := l.dataset.At(i)
			if err != nil {
				return nil, err
			}
			examples = append(examples, e)
		}
		return l.dataset.collator.Collate(examples)
	})
	return &stream{p: p, device: l.Device()}, nil
}
