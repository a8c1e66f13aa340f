package pipeline

import (
	"github.com/distribution/reference"
	"github.com/pkg/errors"
)

// ValidateImage checks that a base image forms a valid container image
// reference. The emitter does not call it; invalid references are still
// emitted as written.
func ValidateImage(image string) error {
	if _, err := reference.ParseNormalizedNamed(image); err != nil {
		return errors.Wrapf(err, "invalid base image %q", image)
	}
	return nil
}
