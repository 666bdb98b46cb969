package days

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/qingka/internal/cli"
	apperrors "github.com/julianstephens/qingka/internal/errors"
	"github.com/julianstephens/qingka/internal/milestone"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/tui/forms"
)

type DaysCmd struct {
	List   DaysListCmd   `cmd:"" help:"List milestones with their day counts." default:"1"`
	Add    DaysAddCmd    `cmd:"" help:"Add a milestone."`
	Delete DaysDeleteCmd `cmd:"" help:"Delete a milestone."`
}

type DaysListCmd struct {
	JSON bool `help:"Print milestones as JSON."`
}

type eventView struct {
	models.DaysMatterEvent
	Days int `json:"days"`
}

func (c *DaysListCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	events, err := ctx.Milestones.List(userID)
	if err != nil {
		return err
	}
	today := ctx.Today()

	if c.JSON {
		views := make([]eventView, len(events))
		for i, e := range events {
			views[i] = eventView{DaysMatterEvent: e, Days: milestone.DisplayDays(e, today)}
		}
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal milestones: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if len(events) == 0 {
		ctx.Println("No milestones yet. Use 'qingka days add' to create one.")
		return nil
	}
	for _, e := range events {
		ctx.Printf("%-8s %s  (%s)\n", shortID(e.ID), milestone.Describe(e, today), e.StartDate)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type DaysAddCmd struct {
	Title     string `arg:"" optional:"" help:"Milestone title."`
	Date      string `help:"Anchor date (YYYY-MM-DD); defaults to today."`
	Countdown bool   `help:"Count down to the date instead of up from it."`
}

func (c *DaysAddCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	fields := forms.NewDayFields(ctx.Today())
	if strings.TrimSpace(c.Title) == "" {
		if err := forms.NewDayForm(fields).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				ctx.Println("Cancelled.")
				return nil
			}
			return err
		}
	} else {
		fields.Title = c.Title
		if c.Date != "" {
			fields.StartDate = c.Date
		}
		if c.Countdown {
			fields.Type = string(models.CountDown)
		}
	}

	e, err := ctx.Milestones.Create(userID, fields.Event())
	if err != nil {
		return err
	}
	ctx.Printf("✓ Added %s\n", milestone.Describe(e, ctx.Today()))
	return nil
}

type DaysDeleteCmd struct {
	ID string `arg:"" help:"Milestone id or unique prefix."`
}

func (c *DaysDeleteCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	events, err := ctx.Milestones.List(userID)
	if err != nil {
		return err
	}

	var matches []models.DaysMatterEvent
	for _, e := range events {
		if e.ID == c.ID {
			matches = []models.DaysMatterEvent{e}
			break
		}
		if c.ID != "" && strings.HasPrefix(e.ID, c.ID) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return fmt.Errorf("%w: %s", milestone.ErrEventNotFound, c.ID)
	case 1:
	default:
		return fmt.Errorf("milestone id prefix %q is ambiguous (%d matches): %w", c.ID, len(matches), apperrors.ErrInvalid)
	}

	if err := ctx.Milestones.Delete(userID, matches[0].ID); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted %s\n", matches[0].Title)
	return nil
}
