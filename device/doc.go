// Package device resolves the explicit compute device that batches are placed on.
//
// There is no process-wide default: callers parse a device name once and pass
// the value to the dataset and the trainer. Token and label tensors go to the
// device, length vectors always stay on the Host.
package device
