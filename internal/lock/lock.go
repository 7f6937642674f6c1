package lock

import (
	"fmt"

	"github.com/gofrs/flock"
)

// Acquire takes the exclusive single-instance lock. A second launch fails
// fast instead of waiting for the first one to exit.
func Acquire(path string) (*flock.Flock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("lock %s: held by another instance", path)
	}
	return fl, nil
}
