// Package feed persists the global community feed as a single collection.
// Every mutation rewrites the whole collection; concurrent writers in other
// processes are last-writer-wins.
package feed

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/qingka/internal/constants"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/logger"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/storage"
)

var ErrPostNotFound = fmt.Errorf("post: %w", apperrors.ErrNotFound)

// Draft is the user-supplied part of a new post.
type Draft struct {
	Author     string
	Content    string
	FullBody   string
	Tags       []string
	CoverEmoji string
}

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

func (r *Repository) load() []models.SocialPost {
	var posts []models.SocialPost
	if !storage.GetJSON(r.store, constants.NamespaceFeed, constants.FeedKey, &posts) || posts == nil {
		return []models.SocialPost{}
	}
	return posts
}

func (r *Repository) save(posts []models.SocialPost) error {
	return storage.SetJSON(r.store, constants.NamespaceFeed, constants.FeedKey, posts)
}

// List returns posts in stored order (newest first). A non-empty filterTag
// other than "all" keeps only posts carrying that tag.
func (r *Repository) List(filterTag string) ([]models.SocialPost, error) {
	posts := r.load()
	if filterTag == "" || filterTag == constants.FeedFilterAll {
		return posts, nil
	}

	filtered := make([]models.SocialPost, 0, len(posts))
	for _, p := range posts {
		if p.HasTag(filterTag) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (r *Repository) Get(id string) (models.SocialPost, error) {
	for _, p := range r.load() {
		if p.ID == id {
			return p, nil
		}
	}
	return models.SocialPost{}, fmt.Errorf("%w: %s", ErrPostNotFound, id)
}

// Create publishes d at the head of the feed.
func (r *Repository) Create(d Draft) (models.SocialPost, error) {
	id, err := r.newID()
	if err != nil {
		return models.SocialPost{}, fmt.Errorf("failed to generate post id: %w", err)
	}

	author := strings.TrimSpace(d.Author)
	if author == "" {
		author = constants.DefaultAuthor
	}
	cover := strings.TrimSpace(d.CoverEmoji)
	if cover == "" {
		cover = constants.DefaultCoverEmoji
	}

	post := models.SocialPost{
		ID:         id.String(),
		Author:     author,
		Content:    strings.TrimSpace(d.Content),
		FullBody:   strings.TrimSpace(d.FullBody),
		Tags:       normalizeTags(d.Tags),
		Timestamp:  r.now(),
		CoverEmoji: cover,
	}
	if err := post.Validate(); err != nil {
		return models.SocialPost{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	posts := append([]models.SocialPost{post}, r.load()...)
	if err := r.save(posts); err != nil {
		return models.SocialPost{}, err
	}
	logger.Debug("Created post", "id", post.ID, "tags", post.Tags)
	return post, nil
}

// ToggleLike flips the viewer's like and moves the like count with it.
func (r *Repository) ToggleLike(id string) (models.SocialPost, error) {
	return r.update(id, func(p *models.SocialPost) {
		p.IsLiked = !p.IsLiked
		p.Likes = step(p.Likes, p.IsLiked)
	})
}

// ToggleFavorite flips the viewer's favorite and moves the favorite count with it.
func (r *Repository) ToggleFavorite(id string) (models.SocialPost, error) {
	return r.update(id, func(p *models.SocialPost) {
		p.IsFavorited = !p.IsFavorited
		p.Favorites = step(p.Favorites, p.IsFavorited)
	})
}

func (r *Repository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := r.load()
	for i, p := range posts {
		if p.ID == id {
			posts = append(posts[:i], posts[i+1:]...)
			if err := r.save(posts); err != nil {
				return err
			}
			logger.Debug("Deleted post", "id", id)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrPostNotFound, id)
}

// Seed writes the sample posts when the feed has never been written and
// reports how many were added.
func (r *Repository) Seed() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok, err := r.store.Get(constants.NamespaceFeed, constants.FeedKey)
	if err != nil {
		return 0, fmt.Errorf("failed to check feed: %w", err)
	}
	if ok {
		return 0, nil
	}

	posts := SamplePosts(r.now())
	if err := r.save(posts); err != nil {
		return 0, err
	}
	logger.Info("Seeded feed", "posts", len(posts))
	return len(posts), nil
}

func (r *Repository) update(id string, fn func(*models.SocialPost)) (models.SocialPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := r.load()
	for i := range posts {
		if posts[i].ID != id {
			continue
		}
		fn(&posts[i])
		if err := r.save(posts); err != nil {
			return models.SocialPost{}, err
		}
		return posts[i], nil
	}
	return models.SocialPost{}, fmt.Errorf("%w: %s", ErrPostNotFound, id)
}

// step moves a counter by one in the direction of on, never below zero.
func step(n int, on bool) int {
	if on {
		return n + 1
	}
	if n <= 0 {
		return 0
	}
	return n - 1
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
