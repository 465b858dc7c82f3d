package tensor

import "fmt"

// Handle is device memory mirroring a tensor's host data
type Handle interface {
	Free() error
}

// Int64 is a row-major tensor of int64 values. Data always stays readable
// on the host, Device names where the tensor was placed and Handle holds
// the device copy when the placement is not the host.
type Int64 struct {
	Shape  []int
	Data   []int64
	Device string
	Handle Handle
}

// NewInt64 wraps data with the given shape, panicking on a size mismatch
func NewInt64(data []int64, shape ...int) *Int64 {
	var size = 1
	for _, s := range shape {
		size *= s
	}
	if size != len(data) {
		panic(fmt.Sprintf("tensor: %d values do not fill shape %v", len(data), shape))
	}
	return &Int64{Shape: shape, Data: data}
}

// Filled allocates a tensor of the given shape filled with v
func Filled(v int64, shape ...int) *Int64 {
	var size = 1
	for _, s := range shape {
		size *= s
	}
	var data = make([]int64, size)
	if v != 0 {
		for i := range data {
			data[i] = v
		}
	}
	return &Int64{Shape: shape, Data: data}
}

// Len is the number of values
func (t *Int64) Len() int {
	return len(t.Data)
}

// Rows is the size of the first dimension
func (t *Int64) Rows() int {
	if len(t.Shape) == 0 {
		return 0
	}
	return t.Shape[0]
}

// Cols is the size of the second dimension, 1 for vectors
func (t *Int64) Cols() int {
	if len(t.Shape) < 2 {
		return 1
	}
	return t.Shape[1]
}

// Row returns the i-th row of a matrix without copying
func (t *Int64) Row(i int) []int64 {
	var c = t.Cols()
	return t.Data[i*c : (i+1)*c]
}

// At returns the value at row i, column j
func (t *Int64) At(i, j int) int64 {
	return t.Data[i*t.Cols()+j]
}

// Ints copies a vector into a plain int slice
func (t *Int64) Ints() []int {
	var o = make([]int, len(t.Data))
	for i, v := range t.Data {
		o[i] = int(v)
	}
	return o
}

func (t *Int64) String() string {
	return fmt.Sprintf("Int64%v@%s", t.Shape, t.Device)
}
