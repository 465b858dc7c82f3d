package device

import "strconv"
import "strings"
import "sync"

import "github.com/pkg/errors"

import "github.com/avgm/reviewscore/tensor"

// ErrUnknownDevice is returned by Parse for names no linked backend can open
var ErrUnknownDevice = errors.New("unknown device")

// Device places tensors into its memory
type Device interface {
	// String is the canonical device name, e.g. "cpu" or "cuda:0"
	String() string

	// Place copies the tensor into device memory and records the placement on it
	Place(t *tensor.Int64) error

	// Release frees the device copy of a tensor placed earlier
	Release(t *tensor.Int64) error
}

// Opener opens the device with the given ordinal
type Opener func(ordinal int) (Device, error)

var (
	mut     sync.Mutex
	openers = make(map[string]Opener)
	opened  = make(map[string]Device)
)

// Register makes a device kind available to Parse. It is meant to be called
// from the init function of a backend package.
func Register(kind string, open Opener) {
	mut.Lock()
	defer mut.Unlock()
	if open == nil {
		panic("device: Register opener is nil")
	}
	if _, dup := openers[kind]; dup {
		panic("device: Register called twice for " + kind)
	}
	openers[kind] = open
}

// Parse resolves a device name such as "cpu", "cuda" or "cuda:1".
// The same name always yields the same Device value.
func Parse(name string) (Device, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.Wrap(ErrUnknownDevice, "empty device name")
	}
	if name == "cpu" || name == "host" {
		return Host, nil
	}
	kind, ordinal := name, 0
	if i := strings.IndexByte(name, ':'); i >= 0 {
		n, err := strconv.Atoi(name[i+1:])
		if err != nil || n < 0 {
			return nil, errors.Wrapf(ErrUnknownDevice, "bad ordinal in %q", name)
		}
		kind, ordinal = name[:i], n
	}
	var canonical = kind + ":" + strconv.Itoa(ordinal)

	mut.Lock()
	defer mut.Unlock()
	if d, ok := opened[canonical]; ok {
		return d, nil
	}
	open, ok := openers[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDevice, "%q (no backend linked for %s)", name, kind)
	}
	d, err := open(ordinal)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", canonical)
	}
	opened[canonical] = d
	return d, nil
}

// IsHost reports whether d keeps tensors in host memory
func IsHost(d Device) bool {
	_, ok := d.(*host)
	return ok
}
