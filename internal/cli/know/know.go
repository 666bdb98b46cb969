package know

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/qingka/internal/cli"
	"github.com/julianstephens/qingka/internal/knowledge"
)

type KnowCmd struct {
	List     KnowListCmd     `cmd:"" help:"List consultation categories." default:"1"`
	Show     KnowShowCmd     `cmd:"" help:"Show a category with its subtopics and guides."`
	Articles KnowArticlesCmd `cmd:"" help:"List reading-list articles."`
}

type KnowListCmd struct {
	JSON bool `help:"Print categories as JSON."`
}

func (c *KnowListCmd) Run(ctx *cli.Context) error {
	cats := knowledge.Categories()
	if c.JSON {
		return printJSON(ctx, cats)
	}
	for _, cat := range cats {
		ctx.Printf("%-11s %s  %s\n", cat.ID, cat.Title, cat.Description)
	}
	return nil
}

type KnowShowCmd struct {
	ID   string `arg:"" help:"Category id."`
	JSON bool   `help:"Print the category as JSON."`
}

func (c *KnowShowCmd) Run(ctx *cli.Context) error {
	cat, err := knowledge.Lookup(strings.TrimSpace(c.ID))
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(ctx, cat)
	}
	ctx.Printf("%s (%s)\n", cat.Title, cat.ID)
	ctx.Println(cat.Description)
	ctx.Printf("话题: %s\n", strings.Join(cat.Subtopics, "、"))
	for _, g := range cat.Guides {
		ctx.Printf("  • %s\n", g)
	}
	return nil
}

// KnowArticlesCmd filters by the selected user's cancer type unless
// --cancer or --all says otherwise.
type KnowArticlesCmd struct {
	Cancer string `help:"Only articles for this cancer type plus general ones."`
	All    bool   `help:"Ignore the profile and list every article."`
	JSON   bool   `help:"Print articles as JSON."`
}

func (c *KnowArticlesCmd) Run(ctx *cli.Context) error {
	cancer := strings.TrimSpace(c.Cancer)
	if cancer == "" && !c.All && ctx.UserID != "" {
		p, err := ctx.Profiles.Load(ctx.UserID)
		if err != nil {
			return err
		}
		cancer = p.CancerType
	}
	if c.All {
		cancer = ""
	}

	articles := knowledge.Articles(cancer)
	if c.JSON {
		return printJSON(ctx, articles)
	}
	for _, a := range articles {
		ctx.Printf("%d  [%s] %s  (%s)\n", a.ID, a.Tag, a.Title, a.Cancer)
	}
	return nil
}

func printJSON(ctx *cli.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal knowledge: %w", err)
	}
	ctx.Println(string(data))
	return nil
}
