//go:build cuda

// Package cu places batch tensors into CUDA device memory.
//
// Importing the package registers the "cuda" device kind, so "cuda" and
// "cuda:N" become valid device names for device.Parse.
package cu

import "fmt"
import "sync"
import "unsafe"

import "github.com/pkg/errors"
import "gorgonia.org/cu"

import "github.com/avgm/reviewscore/device"
import "github.com/avgm/reviewscore/tensor"

func init() {
	device.Register("cuda", Open)
}

// Device is one CUDA device with its own context
type Device struct {
	ordinal int
	name    string
	memory  int64

	mut sync.Mutex
	ctx cu.CUContext
}

type buffer struct {
	ctx  cu.CUContext
	ptr  cu.DevicePtr
	size int64
}

func (b *buffer) Free() error {
	if err := cu.SetCurrentContext(b.ctx); err != nil {
		return err
	}
	return cu.MemFree(b.ptr)
}

// Open creates a context on the device with the given ordinal
func Open(ordinal int) (device.Device, error) {
	devices, err := cu.NumDevices()
	if err != nil {
		return nil, errors.Wrap(err, "counting CUDA devices")
	}
	if ordinal >= devices {
		return nil, errors.Errorf("CUDA device %d requested, %d present", ordinal, devices)
	}
	dev, err := cu.GetDevice(ordinal)
	if err != nil {
		return nil, errors.Wrapf(err, "getting CUDA device %d", ordinal)
	}
	ctx, err := dev.MakeContext(cu.SchedAuto)
	if err != nil {
		return nil, errors.Wrapf(err, "creating context on CUDA device %d", ordinal)
	}
	name, _ := dev.Name()
	memory, _ := dev.TotalMem()
	return &Device{
		ordinal: ordinal,
		name:    name,
		memory:  memory,
		ctx:     ctx,
	}, nil
}

func (d *Device) String() string {
	return fmt.Sprintf("cuda:%d", d.ordinal)
}

// Name is the hardware name reported by the driver
func (d *Device) Name() string {
	return d.name
}

// TotalMem is the device memory in bytes
func (d *Device) TotalMem() int64 {
	return d.memory
}

// Place copies the tensor data to device memory
func (d *Device) Place(t *tensor.Int64) error {
	if t.Handle != nil {
		return errors.Errorf("tensor %v already placed", t)
	}
	d.mut.Lock()
	defer d.mut.Unlock()

	if err := cu.SetCurrentContext(d.ctx); err != nil {
		return errors.Wrap(err, "setting CUDA context")
	}
	var size = int64(len(t.Data)) * int64(unsafe.Sizeof(int64(0)))
	if size == 0 {
		t.Device = d.String()
		return nil
	}
	ptr, err := cu.MemAlloc(size)
	if err != nil {
		return errors.Wrapf(err, "allocating %d bytes on %s", size, d)
	}
	err = cu.MemcpyHtoD(ptr, unsafe.Pointer(&t.Data[0]), size)
	if err != nil {
		cu.MemFree(ptr)
		return errors.Wrapf(err, "copying %v to %s", t, d)
	}
	t.Device = d.String()
	t.Handle = &buffer{ctx: d.ctx, ptr: ptr, size: size}
	return nil
}

// Release frees the device copy, the host data stays valid
func (d *Device) Release(t *tensor.Int64) error {
	if t.Handle == nil {
		return nil
	}
	d.mut.Lock()
	defer d.mut.Unlock()
	err := t.Handle.Free()
	t.Handle = nil
	return err
}

// Close destroys the device context
func (d *Device) Close() {
	d.mut.Lock()
	defer d.mut.Unlock()
	d.ctx.Destroy()
}
