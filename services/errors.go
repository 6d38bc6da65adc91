package services

import (
	"errors"
	"fmt"

	"yamdb-api/models"

	"gorm.io/gorm"
)

const (
	msgRequired      = "This field is required."
	msgNotFound      = "Not found."
	msgUsernameTaken = "A user with that username already exists."
	msgEmailTaken    = "A user with that email already exists."
)

// lookupError turns a missing row into ErrorNotFound and wraps anything else.
func lookupError(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ErrorNotFound{Message: msgNotFound}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// writeError maps a unique index violation onto a validation error for field.
func writeError(err error, op, field, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewValidationError(field, message)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// findOptional returns (nil, nil) when the row does not exist.
func findOptional(user *models.User, err error) (*models.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
