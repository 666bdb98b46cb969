package models

import (
	"fmt"

	apperrors "github.com/julianstephens/qingka/internal/errors"
)

var (
	ErrInvalidProfile = fmt.Errorf("profile: %w", apperrors.ErrInvalid)
	ErrInvalidPost    = fmt.Errorf("post: %w", apperrors.ErrInvalid)
	ErrInvalidEvent   = fmt.Errorf("event: %w", apperrors.ErrInvalid)
	ErrInvalidMessage = fmt.Errorf("message: %w", apperrors.ErrInvalid)
)
