package datasets

import "io"
import "math/rand"
import "sync/atomic"
import "testing"

import "github.com/pkg/errors"
import "github.com/stretchr/testify/require"

import "github.com/avgm/reviewscore/device"
import "github.com/avgm/reviewscore/tensor"

func reviews(n int) []Review {
	var rows = make([]Review, n)
	for i := range rows {
		var ids = make(TokenIDs, i%5+1)
		for j := range ids {
			ids[j] = int64(10 + i)
		}
		rows[i] = Review{TokenIDs: ids, Score: int64(i), NTokens: int64(len(ids))}
	}
	return rows
}

func newDataset(t *testing.T, n int) *Dataset {
	table, err := NewTable(reviews(n))
	require.NoError(t, err)
	d, err := NewDataset(table, pad, device.Host)
	require.NoError(t, err)
	return d
}

func drain(t *testing.T, s Stream) (batches []*Batch) {
	defer s.Close()
	for {
		b, err := s.Next()
		if err == io.EOF {
			return
		}
		require.NoError(t, err)
		batches = append(batches, b)
	}
}

func TestDatasetAt(t *testing.T) {
	var d = newDataset(t, 3)
	require.Equal(t, 3, d.Len())

	e, err := d.At(2)
	require.NoError(t, err)
	require.Equal(t, int64(2), e.Label)
	require.Equal(t, int64(3), e.Length)
	require.Equal(t, []int64{12, 12, 12}, e.Tokens)

	for _, i := range []int{-1, 3} {
		_, err = d.At(i)
		require.True(t, errors.Is(err, ErrPrecondition), "index %d", i)
	}
}

func TestNewDatasetNeedsDevice(t *testing.T) {
	table, err := NewTable(nil)
	require.NoError(t, err)
	_, err = NewDataset(table, pad, nil)
	require.Error(t, err)
}

func TestLoaderPartitions(t *testing.T) {
	var d = newDataset(t, 10)
	for _, workers := range []int{0, 3} {
		l, err := d.Loader(4, false, nil, workers)
		require.NoError(t, err)
		require.Equal(t, 3, l.Len())

		s, err := l.Batches()
		require.NoError(t, err)
		require.Equal(t, 3, s.Len())

		var sizes []int
		var seen = make(map[int64]int)
		for _, b := range drain(t, s) {
			sizes = append(sizes, b.Size())
			for _, y := range b.Labels.Data {
				seen[y]++
			}
		}
		require.Equal(t, []int{4, 4, 2}, sizes)
		require.Len(t, seen, 10)
	}
}

func TestLoaderSequentialOrder(t *testing.T) {
	var d = newDataset(t, 6)
	l, err := d.Loader(3, false, nil, 2)
	require.NoError(t, err)
	s, err := l.Batches()
	require.NoError(t, err)
	var batches = drain(t, s)
	// lengths are 1,2,3 then 4,5,1, sorted descending inside each batch
	require.Equal(t, []int64{2, 1, 0}, batches[0].Labels.Data)
	require.Equal(t, []int64{4, 3, 5}, batches[1].Labels.Data)
}

func labelOrder(t *testing.T, l *Loader) (o []int64) {
	s, err := l.Batches()
	require.NoError(t, err)
	for _, b := range drain(t, s) {
		o = append(o, b.Labels.Data...)
	}
	return
}

func TestLoaderShuffleIsSeeded(t *testing.T) {
	var d = newDataset(t, 40)
	a, err := d.Loader(8, true, rand.New(rand.NewSource(7)), 4)
	require.NoError(t, err)
	b, err := d.Loader(8, true, rand.New(rand.NewSource(7)), 0)
	require.NoError(t, err)

	first := labelOrder(t, a)
	require.Equal(t, first, labelOrder(t, b))

	// a fresh permutation per pass
	require.NotEqual(t, first, labelOrder(t, a))
}

func TestLoaderArguments(t *testing.T) {
	var d = newDataset(t, 2)
	_, err := d.Loader(0, false, nil, 0)
	require.True(t, errors.Is(err, ErrPrecondition))
	_, err = d.Loader(2, true, nil, 0)
	require.Error(t, err)
}

func TestEmptyDatasetStream(t *testing.T) {
	var d = newDataset(t, 0)
	l, err := d.Loader(4, false, nil, 2)
	require.NoError(t, err)
	s, err := l.Batches()
	require.NoError(t, err)
	require.Empty(t, drain(t, s))
}

func TestSliceStream(t *testing.T) {
	var c = Collator{PaddingIndex: pad, Device: device.Host}
	b, err := c.Collate([]Example{example(1, 0)})
	require.NoError(t, err)
	var s = SliceStream{b, b}
	require.Equal(t, 2, s.Len())
	require.Len(t, drain(t, &s), 2)
}

func TestNilLoader(t *testing.T) {
	var l *Loader
	require.Equal(t, 0, l.Len())
	_, err := l.Batches()
	require.True(t, errors.Is(err, ErrPrecondition))
}

type countingDevice struct {
	placed, released int32
}

func (d *countingDevice) String() string { return "counting" }

func (d *countingDevice) Place(t *tensor.Int64) error {
	atomic.AddInt32(&d.placed, 1)
	t.Device = "counting"
	return nil
}

func (d *countingDevice) Release(t *tensor.Int64) error {
	atomic.AddInt32(&d.released, 1)
	return nil
}

func TestStreamCloseReleasesCollatedBatches(t *testing.T) {
	table, err := NewTable(reviews(40))
	require.NoError(t, err)
	var dev = new(countingDevice)
	d, err := NewDataset(table, pad, dev)
	require.NoError(t, err)
	l, err := d.Loader(4, false, nil, 3)
	require.NoError(t, err)

	s, err := l.Batches()
	require.NoError(t, err)
	b, err := s.Next()
	require.NoError(t, err)
	s.Close()
	require.NoError(t, b.Release(dev))

	// tokens and labels of every collated batch, including the ones Next never returned
	require.Equal(t, atomic.LoadInt32(&dev.placed), atomic.LoadInt32(&dev.released))
	require.GreaterOrEqual(t, dev.placed, int32(2))
}
