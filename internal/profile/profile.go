// Package profile persists one UserProfile per user in the profile namespace.
package profile

import (
	"fmt"
	"strings"

	"github.com/julianstephens/qingka/internal/constants"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/logger"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/storage"
)

var ErrEmptyUserID = fmt.Errorf("user id cannot be empty: %w", apperrors.ErrInvalid)

type Repository struct {
	store storage.Provider
}

func NewRepository(store storage.Provider) *Repository {
	return &Repository{store: store}
}

// Load returns the user's saved profile, or the default profile when nothing
// usable is stored.
func (r *Repository) Load(userID string) (models.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return models.UserProfile{}, ErrEmptyUserID
	}

	var p models.UserProfile
	if !storage.GetJSON(r.store, constants.NamespaceProfile, userID, &p) {
		return models.DefaultProfile(), nil
	}
	return p, nil
}

// Save validates p and replaces the stored profile with it.
func (r *Repository) Save(userID string, p models.UserProfile) error {
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyUserID
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := storage.SetJSON(r.store, constants.NamespaceProfile, userID, p); err != nil {
		return err
	}
	logger.Debug("Saved profile", "user", userID)
	return nil
}

// Reset drops the stored profile so the next Load returns the default.
func (r *Repository) Reset(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyUserID
	}
	if err := r.store.Remove(constants.NamespaceProfile, userID); err != nil {
		return fmt.Errorf("failed to reset profile: %w", err)
	}
	return nil
}
