package feed

import (
	"errors"
	"sync"

	"github.com/julianstephens/qingka/internal/models"
)

// Viewer tracks which post a caller has open in a detail view. It stores
// only the id and re-reads the post on every Current call, so it never
// shows a stale or deleted post.
type Viewer struct {
	repo *Repository
	mu   sync.Mutex
	open string
}

func NewViewer(repo *Repository) *Viewer {
	return &Viewer{repo: repo}
}

func (v *Viewer) Open(id string) (models.SocialPost, error) {
	post, err := v.repo.Get(id)
	if err != nil {
		return models.SocialPost{}, err
	}
	v.mu.Lock()
	v.open = id
	v.mu.Unlock()
	return post, nil
}

// Current returns the open post. If it has disappeared from the feed the
// view is closed and ok is false.
func (v *Viewer) Current() (models.SocialPost, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.open == "" {
		return models.SocialPost{}, false
	}
	post, err := v.repo.Get(v.open)
	if err != nil {
		v.open = ""
		return models.SocialPost{}, false
	}
	return post, true
}

func (v *Viewer) Close() {
	v.mu.Lock()
	v.open = ""
	v.mu.Unlock()
}

// Delete removes the post and closes the view if it was showing that post.
func (v *Viewer) Delete(id string) error {
	err := v.repo.Delete(id)
	if err != nil && !errors.Is(err, ErrPostNotFound) {
		return err
	}
	v.mu.Lock()
	if v.open == id {
		v.open = ""
	}
	v.mu.Unlock()
	return err
}
