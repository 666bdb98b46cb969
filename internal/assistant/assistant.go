// Package assistant keeps each user's conversation with the health assistant
// and builds the profile context sent alongside a question.
package assistant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/qingka/internal/constants"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/storage"
)

var ErrEmptyUserID = fmt.Errorf("user id cannot be empty: %w", apperrors.ErrInvalid)

type Repository struct {
	store storage.Provider
	mu    sync.Mutex
	now   func() time.Time
	newID func() (uuid.UUID, error)
}

func NewRepository(store storage.Provider) *Repository {
	return &Repository{
		store: store,
		now:   time.Now,
		newID: uuid.NewV7,
	}
}

func (r *Repository) History(userID string) ([]models.ChatMessage, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	return r.load(userID), nil
}

func (r *Repository) load(userID string) []models.ChatMessage {
	var msgs []models.ChatMessage
	if !storage.GetJSON(r.store, constants.NamespaceAssistant, userID, &msgs) || msgs == nil {
		return []models.ChatMessage{}
	}
	return msgs
}

// Append stamps msg with an id and the current time and adds it to the end
// of the user's history.
func (r *Repository) Append(userID string, msg models.ChatMessage) (models.ChatMessage, error) {
	if strings.TrimSpace(userID) == "" {
		return models.ChatMessage{}, ErrEmptyUserID
	}
	msg.Content = strings.TrimSpace(msg.Content)
	if err := msg.Validate(); err != nil {
		return models.ChatMessage{}, err
	}

	id, err := r.newID()
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("failed to generate message id: %w", err)
	}
	msg.ID = id.String()
	msg.Timestamp = r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	history := append(r.load(userID), msg)
	if err := storage.SetJSON(r.store, constants.NamespaceAssistant, userID, history); err != nil {
		return models.ChatMessage{}, err
	}
	return msg, nil
}

func (r *Repository) Clear(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyUserID
	}
	if err := r.store.Remove(constants.NamespaceAssistant, userID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Context renders the user-context block that accompanies a question: the
// profile essentials, the contents of the last few messages, and the
// consultation category.
func Context(p models.UserProfile, history []models.ChatMessage, category string) string {
	start := len(history) - constants.AssistantContextMessages
	if start < 0 {
		start = 0
	}
	recent := make([]string, 0, len(history)-start)
	for _, m := range history[start:] {
		recent = append(recent, m.Content)
	}
	var recentJSON bytes.Buffer
	enc := json.NewEncoder(&recentJSON)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(recent)

	var b strings.Builder
	b.WriteString("[用户信息]\n")
	fmt.Fprintf(&b, "患者昵称: %s\n", p.Name)
	fmt.Fprintf(&b, "癌种: %s\n", p.CancerType)
	fmt.Fprintf(&b, "当前状态: %s\n", p.TreatmentStatus)
	fmt.Fprintf(&b, "近期对话背景: %s\n", bytes.TrimRight(recentJSON.Bytes(), "\n"))
	fmt.Fprintf(&b, "当前咨询分类: %s\n", category)
	return b.String()
}
