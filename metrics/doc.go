// Package metrics implements running accuracy accumulators over a pass through data.
package metrics
