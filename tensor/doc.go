// Package tensor implements the integer tensor carried by padded review batches.
package tensor
