package posts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/qingka/internal/cli"
	"github.com/julianstephens/qingka/internal/constants"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/feed"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/tui/forms"
)

type PostCmd struct {
	List       PostListCmd       `cmd:"" help:"List feed posts." default:"1"`
	Add        PostAddCmd        `cmd:"" help:"Publish a new post."`
	Show       PostShowCmd       `cmd:"" help:"Show one post in full."`
	Like       PostLikeCmd       `cmd:"" help:"Toggle like on a post."`
	Favorite   PostFavoriteCmd   `cmd:"" help:"Toggle favorite on a post."`
	Delete     PostDeleteCmd     `cmd:"" help:"Delete a post."`
	Categories PostCategoriesCmd `cmd:"" help:"List share categories."`
}

type PostListCmd struct {
	Tag  string `help:"Only show posts with this tag (\"all\" for every post)."`
	JSON bool   `help:"Print posts as JSON."`
}

func (c *PostListCmd) Run(ctx *cli.Context) error {
	posts, err := ctx.Feed.List(c.Tag)
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(posts, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal posts: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if len(posts) == 0 {
		ctx.Println("No posts yet. Use 'qingka post add' to share one.")
		return nil
	}
	for _, p := range posts {
		ctx.Println(Summary(p))
	}
	return nil
}

// Summary renders one post as a single list line.
func Summary(p models.SocialPost) string {
	like, fav := "♡", "☆"
	if p.IsLiked {
		like = "♥"
	}
	if p.IsFavorited {
		fav = "★"
	}
	return fmt.Sprintf("%s %s  %s: %s  [%s]  %s%d %s%d  %s",
		shortID(p.ID), p.CoverEmoji, p.Author, p.Content,
		strings.Join(p.Tags, ", "), like, p.Likes, fav, p.Favorites,
		p.Timestamp.Local().Format("2006-01-02 15:04"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID accepts a full id or a unique prefix of one.
func resolveID(ctx *cli.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("post id cannot be empty: %w", apperrors.ErrInvalid)
	}
	posts, err := ctx.Feed.List("")
	if err != nil {
		return "", err
	}
	var matches []string
	for _, p := range posts {
		if p.ID == ref {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", feed.ErrPostNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("post id prefix %q is ambiguous (%d matches): %w", ref, len(matches), apperrors.ErrInvalid)
	}
}

// PostAddCmd publishes from flags, or opens the share editor when no content is given.
type PostAddCmd struct {
	Content  string   `arg:"" optional:"" help:"Short text shown in the feed."`
	Body     string   `help:"Full text shown in the detail view."`
	Category string   `help:"Share category (美食, 美景, 美物, 美文)."`
	Tag      []string `help:"Extra tags (repeatable)." default:"${draft_tags}"`
	Emoji    string   `help:"Cover emoji."`
	Author   string   `help:"Author name." default:"${default_author}"`
}

func (c *PostAddCmd) Run(ctx *cli.Context) error {
	var draft feed.Draft
	if strings.TrimSpace(c.Content) == "" {
		fields := forms.NewPostFields()
		if err := forms.NewPostForm(fields).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.Println("Post cancelled.")
				return nil
			}
			return err
		}
		draft = fields.Draft()
	} else {
		draft = c.draft()
	}

	post, err := ctx.Feed.Create(draft)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Published post %s\n", shortID(post.ID))
	return nil
}

func (c *PostAddCmd) draft() feed.Draft {
	tags := c.Tag
	if c.Category != "" {
		tags = append([]string{c.Category}, tags...)
	}
	author := c.Author
	if strings.TrimSpace(author) == "" {
		author = constants.DefaultAuthor
	}
	return feed.Draft{
		Author:     author,
		Content:    c.Content,
		FullBody:   c.Body,
		Tags:       tags,
		CoverEmoji: c.Emoji,
	}
}

type PostShowCmd struct {
	ID string `arg:"" help:"Post id or unique prefix."`
}

func (c *PostShowCmd) Run(ctx *cli.Context) error {
	id, err := resolveID(ctx, c.ID)
	if err != nil {
		return err
	}
	p, err := ctx.Feed.Get(id)
	if err != nil {
		return err
	}

	ctx.Printf("%s %s\n", p.CoverEmoji, p.Author)
	ctx.Printf("%s\n\n", p.Timestamp.Local().Format(time.DateTime))
	ctx.Println(p.Body())
	ctx.Println()
	if len(p.Tags) > 0 {
		ctx.Printf("#%s\n", strings.Join(p.Tags, " #"))
	}
	ctx.Printf("赞 %d  收藏 %d  评论 %d\n", p.Likes, p.Favorites, p.Comments)
	ctx.Printf("id: %s\n", p.ID)
	return nil
}

type PostLikeCmd struct {
	ID string `arg:"" help:"Post id or unique prefix."`
}

func (c *PostLikeCmd) Run(ctx *cli.Context) error {
	id, err := resolveID(ctx, c.ID)
	if err != nil {
		return err
	}
	p, err := ctx.Feed.ToggleLike(id)
	if err != nil {
		return err
	}
	if p.IsLiked {
		ctx.Printf("♥ Liked %s (%d)\n", shortID(p.ID), p.Likes)
	} else {
		ctx.Printf("♡ Unliked %s (%d)\n", shortID(p.ID), p.Likes)
	}
	return nil
}

type PostFavoriteCmd struct {
	ID string `arg:"" help:"Post id or unique prefix."`
}

func (c *PostFavoriteCmd) Run(ctx *cli.Context) error {
	id, err := resolveID(ctx, c.ID)
	if err != nil {
		return err
	}
	p, err := ctx.Feed.ToggleFavorite(id)
	if err != nil {
		return err
	}
	if p.IsFavorited {
		ctx.Printf("★ Saved %s (%d)\n", shortID(p.ID), p.Favorites)
	} else {
		ctx.Printf("☆ Unsaved %s (%d)\n", shortID(p.ID), p.Favorites)
	}
	return nil
}

type PostDeleteCmd struct {
	ID string `arg:"" help:"Post id or unique prefix."`
}

func (c *PostDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolveID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Feed.Delete(id); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted post %s\n", shortID(id))
	return nil
}

type PostCategoriesCmd struct{}

func (c *PostCategoriesCmd) Run(ctx *cli.Context) error {
	for _, cat := range feed.Categories() {
		ctx.Printf("%s %s (%s)\n", cat.Emoji, cat.Title, cat.ID)
	}
	return nil
}
