package device

import "github.com/klauspost/cpuid/v2"

import "github.com/avgm/reviewscore/tensor"

type host struct {
	workers int
	avx512  bool
}

// Host is the CPU device. Tensors placed on it are left where they are.
var Host = newHost()

func newHost() *host {
	var h = &host{workers: cpuid.CPU.LogicalCores}
	if h.workers < 1 {
		h.workers = 1
	}
	h.avx512 = cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ)
	return h
}

func (h *host) String() string {
	return "cpu"
}

func (h *host) Place(t *tensor.Int64) error {
	t.Device = "cpu"
	t.Handle = nil
	return nil
}

func (h *host) Release(t *tensor.Int64) error {
	return nil
}

// Workers is the number of logical cores, at least 1. It sizes batch prefetching.
func Workers() int {
	return Host.workers
}

// Brand is the processor brand string
func Brand() string {
	return cpuid.CPU.BrandName
}

// AVX512 reports whether the host supports the AVX512 foundation and DQ sets
func AVX512() bool {
	return Host.avx512
}
