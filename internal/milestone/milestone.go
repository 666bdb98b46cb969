// Package milestone persists each user's date-anchored events and computes
// their day counts.
package milestone

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/julianstephens/qingka/internal/constants"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/logger"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/storage"
)

var (
	ErrEventNotFound = fmt.Errorf("event: %w", apperrors.ErrNotFound)
	ErrEmptyUserID   = fmt.Errorf("user id cannot be empty: %w", apperrors.ErrInvalid)
)

type Repository struct {
	store storage.Provider
	mu    sync.Mutex
	newID func() (uuid.UUID, error)
}

func NewRepository(store storage.Provider) *Repository {
	return &Repository{
		store: store,
		newID: uuid.NewV7,
	}
}

func (r *Repository) load(userID string) []models.DaysMatterEvent {
	var events []models.DaysMatterEvent
	if !storage.GetJSON(r.store, constants.NamespaceMilestones, userID, &events) || events == nil {
		return []models.DaysMatterEvent{}
	}
	return events
}

// List returns the user's events in insertion order.
func (r *Repository) List(userID string) ([]models.DaysMatterEvent, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	return r.load(userID), nil
}

// Create validates e, assigns it an id, and appends it to the user's events.
func (r *Repository) Create(userID string, e models.DaysMatterEvent) (models.DaysMatterEvent, error) {
	if strings.TrimSpace(userID) == "" {
		return models.DaysMatterEvent{}, ErrEmptyUserID
	}
	e.Title = strings.TrimSpace(e.Title)
	if err := e.Validate(); err != nil {
		return models.DaysMatterEvent{}, err
	}

	id, err := r.newID()
	if err != nil {
		return models.DaysMatterEvent{}, fmt.Errorf("failed to generate event id: %w", err)
	}
	e.ID = id.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	events := append(r.load(userID), e)
	if err := storage.SetJSON(r.store, constants.NamespaceMilestones, userID, events); err != nil {
		return models.DaysMatterEvent{}, err
	}
	logger.Debug("Created milestone", "user", userID, "id", e.ID, "type", e.Type)
	return e, nil
}

func (r *Repository) Delete(userID, id string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyUserID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	events := r.load(userID)
	for i, e := range events {
		if e.ID == id {
			events = append(events[:i], events[i+1:]...)
			return storage.SetJSON(r.store, constants.NamespaceMilestones, userID, events)
		}
	}
	return fmt.Errorf("%w: %s", ErrEventNotFound, id)
}
