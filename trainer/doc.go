// Package trainer runs training and evaluation epochs of a review scoring model.
//
// A Trainer owns the model, the criterion, the optimizer and one set of
// metrics per phase. Fit alternates a training epoch with an optional
// evaluation epoch. Only the training phase clears gradients and steps the
// optimizer, both phases accumulate their own metrics.
package trainer
