package service

import (
	"errors"

	internal_errors "github.com/simplechat/simplechat/shared/errors"
)

// notFound turns the storage ErrNotFound signal into a NotFoundError for callers.
func notFound(err error, what string) error {
	if errors.Is(err, internal_errors.ErrNotFound) {
		return &internal_errors.NotFoundError{Message: what}
	}
	return err
}

func forbidden(message string) error {
	return &internal_errors.ForbiddenError{Message: message}
}
