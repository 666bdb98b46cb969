package models

import (
	"fmt"
	"strings"
	"time"
)

// SocialPost is a published share in the community feed.
// IsLiked and IsFavorited are relative to the local viewer.
type SocialPost struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	FullBody    string    `json:"fullBody,omitempty"`
	Tags        []string  `json:"tags"`
	Likes       int       `json:"likes"`
	Favorites   int       `json:"favorites"`
	Comments    int       `json:"comments"`
	IsLiked     bool      `json:"isLiked"`
	IsFavorited bool      `json:"isFavorited"`
	Timestamp   time.Time `json:"timestamp"`
	CoverEmoji  string    `json:"coverEmoji,omitempty"`
}

func (p SocialPost) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Body returns the long text when present, falling back to the short content.
func (p SocialPost) Body() string {
	if p.FullBody != "" {
		return p.FullBody
	}
	return p.Content
}

func (p *SocialPost) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidPost)
	}
	if strings.TrimSpace(p.Author) == "" {
		return fmt.Errorf("%w: author cannot be empty", ErrInvalidPost)
	}
	if strings.TrimSpace(p.Content) == "" {
		return fmt.Errorf("%w: content cannot be empty", ErrInvalidPost)
	}
	if p.Likes < 0 || p.Favorites < 0 || p.Comments < 0 {
		return fmt.Errorf("%w: counters cannot be negative", ErrInvalidPost)
	}
	return nil
}
