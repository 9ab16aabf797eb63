package service

import (
	"errors"

	"github.com/noah-isme/classroom-core/internal/repository"
	appErrors "github.com/noah-isme/classroom-core/pkg/errors"
)

// lookupError maps repository failures onto typed errors.
func lookupError(err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, what+" not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, "failed to load "+what)
}
