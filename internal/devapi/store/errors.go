package store

import (
	"errors"

	"github.com/dmitrijs2005/pharmadmin/internal/common"
)

var (
	ErrNotFound          = common.ErrorNotFound
	ErrUnknownCollection = errors.New("unknown collection")
	ErrDuplicateAccount  = errors.New("account already exists")
)

// ValidationError rejects a record. Message is meant for the end user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }

func invalid(msg string) error { return &ValidationError{Message: msg} }
