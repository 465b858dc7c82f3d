package datasets

import "github.com/pkg/errors"

// ErrPrecondition is wrapped by errors about invalid arguments such as an
// empty batch, a row index out of range or a nil loader.
var ErrPrecondition = errors.New("precondition failed")

func indexError(i, n int) error {
	return errors.Wrapf(ErrPrecondition, "index %d out of range [0, %d)", i, n)
}
