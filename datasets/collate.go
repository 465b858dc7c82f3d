package datasets

import "sort"

import "github.com/pkg/errors"

import "github.com/avgm/reviewscore/device"
import "github.com/avgm/reviewscore/tensor"

// Example is one labeled token sequence
type Example struct {
	Tokens []int64
	Label  int64
	Length int64
}

// Batch is a padded batch. Row i of Tokens holds Lengths.Data[i] real tokens
// followed by padding, and rows are sorted by descending length.
type Batch struct {
	Tokens  *tensor.Int64 // [batch x longest], on the compute device
	Labels  *tensor.Int64 // [batch], on the compute device
	Lengths *tensor.Int64 // [batch], always on the host
}

// Size is the number of rows
func (b *Batch) Size() int {
	return b.Labels.Len()
}

// Release frees the device copies of the batch tensors
func (b *Batch) Release(d device.Device) error {
	err := d.Release(b.Tokens)
	if err2 := d.Release(b.Labels); err == nil {
		err = err2
	}
	return err
}

// Collator pads examples into batches
type Collator struct {
	PaddingIndex int64
	Device       device.Device
}

// Collate sorts the examples by descending length, keeping the input order of
// equal lengths, and right pads every sequence to the longest one.
func (c Collator) Collate(examples []Example) (*Batch, error) {
	if len(examples) == 0 {
		return nil, errors.Wrap(ErrPrecondition, "collate empty batch")
	}
	for i, e := range examples {
		if int64(len(e.Tokens)) != e.Length {
			return nil, errors.Wrapf(ErrPrecondition, "example %d: length %d but %d tokens", i, e.Length, len(e.Tokens))
		}
	}
	var sorted = make([]Example, len(examples))
	copy(sorted, examples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Tokens) > len(sorted[j].Tokens)
	})

	var width = len(sorted[0].Tokens)
	var tokens = tensor.Filled(c.PaddingIndex, len(sorted), width)
	var labels = tensor.Filled(0, len(sorted))
	var lengths = tensor.Filled(0, len(sorted))
	for i, e := range sorted {
		copy(tokens.Row(i), e.Tokens)
		labels.Data[i] = e.Label
		lengths.Data[i] = e.Length
	}

	if err := c.Device.Place(tokens); err != nil {
		return nil, errors.Wrap(err, "placing tokens")
	}
	if err := c.Device.Place(labels); err != nil {
		c.Device.Release(tokens)
		return nil, errors.Wrap(err, "placing labels")
	}
	if err := device.Host.Place(lengths); err != nil {
		return nil, err
	}
	return &Batch{Tokens: tokens, Labels: labels, Lengths: lengths}, nil
}
