package datasets

import "io"

import "github.com/avgm/reviewscore/device"
import "github.com/avgm/reviewscore/parallel"

// Stream is one finite pass of batches. It cannot be restarted, a new pass
// needs a new call to Loader.Batches.
type Stream interface {
	// Next returns the next batch, or io.EOF after the last one
	Next() (*Batch, error)

	// Len is the total number of batches in the pass
	Len() int

	// Close stops background collation and releases batches collated ahead
	// that Next never returned
	Close()
}

type stream struct {
	p      *parallel.Prefetcher[*Batch]
	device device.Device
}

func (s *stream) Next() (*Batch, error) {
	b, ok, err := s.p.Next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.EOF
	}
	return b, nil
}

func (s *stream) Len() int {
	return s.p.Len()
}

func (s *stream) Close() {
	s.p.Drain(func(b *Batch) {
		b.Release(s.device)
	})
}

// SliceStream streams batches that are already collated
type SliceStream []*Batch

func (s *SliceStream) Next() (*Batch, error) {
	if len(*s) == 0 {
		return nil, io.EOF
	}
	b := (*s)[0]
	*s = (*s)[1:]
	return b, nil
}

// Len is the number of batches left
func (s *SliceStream) Len() int {
	return len(*s)
}

func (s *SliceStream) Close() {}
