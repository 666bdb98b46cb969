package profiles

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/qingka/internal/cli"
	"github.com/julianstephens/qingka/internal/models"
	"github.com/julianstephens/qingka/internal/tui/forms"
)

type ProfileCmd struct {
	Show  ProfileShowCmd  `cmd:"" help:"Show the current profile." default:"1"`
	Set   ProfileSetCmd   `cmd:"" help:"Update profile fields."`
	Edit  ProfileEditCmd  `cmd:"" help:"Edit the profile interactively."`
	Reset ProfileResetCmd `cmd:"" help:"Forget the saved profile."`
}

type ProfileShowCmd struct {
	JSON bool `help:"Print the profile as JSON."`
}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	p, err := ctx.Profiles.Load(userID)
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal profile: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Printf("%s, %d岁 (%s)\n", p.Name, p.Age, p.Gender)
	ctx.Printf("  癌种:     %s\n", p.CancerType)
	ctx.Printf("  治疗方式: %s\n", strings.Join(p.TreatmentType, "、"))
	ctx.Printf("  当前状态: %s, 第 %d 周期, 自 %s\n", p.TreatmentStatus.Label(), p.CurrentCycle, p.TreatmentStartDate)
	ctx.Printf("  伴侣状态: %s\n", p.PartnerStatus)
	ctx.Printf("  生育顾虑: %t\n", p.FertilityConcerns)
	if p.Height != nil {
		ctx.Printf("  身高:     %.1f cm\n", *p.Height)
	}
	if p.Weight != nil {
		ctx.Printf("  体重:     %.1f kg\n", *p.Weight)
	}
	if p.NutritionStatus != nil {
		ctx.Printf("  营养状况: %s\n", *p.NutritionStatus)
	}
	if p.DetailedIllness != nil {
		ctx.Printf("  病情详情: %s\n", *p.DetailedIllness)
	}
	return nil
}

// ProfileSetCmd changes only the flags that were given.
type ProfileSetCmd struct {
	Name          *string  `help:"Display name."`
	Age           *int     `help:"Age in years."`
	Gender        *string  `help:"FEMALE, MALE or OTHER."`
	CancerType    *string  `help:"Cancer type."`
	TreatmentType []string `help:"Treatment types (repeat or comma separate)."`
	Status        *string  `help:"TREATMENT, RECOVERY or FOLLOWUP."`
	StartDate     *string  `help:"Treatment start date (YYYY-MM-DD)."`
	Cycle         *int     `help:"Current treatment cycle."`
	Partner       *string  `help:"Partner status."`
	Fertility     *bool    `help:"Whether fertility is a concern (--fertility=false to clear)."`
	Height        *float64 `help:"Height in cm."`
	Weight        *float64 `help:"Weight in kg."`
	Nutrition     *string  `help:"Nutrition status (良好, 中等, 较差)."`
	Illness       *string  `help:"Free-text illness details."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	p, err := ctx.Profiles.Load(userID)
	if err != nil {
		return err
	}

	c.apply(&p)
	if err := ctx.Profiles.Save(userID, p); err != nil {
		return err
	}
	ctx.Printf("✓ Profile saved for %s\n", userID)
	return nil
}

func (c *ProfileSetCmd) apply(p *models.UserProfile) {
	if c.Name != nil {
		p.Name = strings.TrimSpace(*c.Name)
	}
	if c.Age != nil {
		p.Age = *c.Age
	}
	if c.Gender != nil {
		p.Gender = models.Gender(*c.Gender)
	}
	if c.CancerType != nil {
		p.CancerType = strings.TrimSpace(*c.CancerType)
	}
	if len(c.TreatmentType) > 0 {
		p.TreatmentType = forms.SplitList(strings.Join(c.TreatmentType, ","))
	}
	if c.Status != nil {
		p.TreatmentStatus = models.TreatmentStatus(*c.Status)
	}
	if c.StartDate != nil {
		p.TreatmentStartDate = strings.TrimSpace(*c.StartDate)
	}
	if c.Cycle != nil {
		p.CurrentCycle = *c.Cycle
	}
	if c.Partner != nil {
		p.PartnerStatus = strings.TrimSpace(*c.Partner)
	}
	if c.Fertility != nil {
		p.FertilityConcerns = *c.Fertility
	}
	if c.Height != nil {
		p.Height = c.Height
	}
	if c.Weight != nil {
		p.Weight = c.Weight
	}
	if c.Nutrition != nil {
		p.NutritionStatus = optional(*c.Nutrition)
	}
	if c.Illness != nil {
		p.DetailedIllness = optional(*c.Illness)
	}
}

// optional maps an explicitly empty flag value to "unset".
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

type ProfileEditCmd struct{}

func (c *ProfileEditCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	p, err := ctx.Profiles.Load(userID)
	if err != nil {
		return err
	}

	fields := forms.ProfileFieldsFrom(p)
	if err := forms.NewProfileForm(fields).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			ctx.Println("Edit cancelled.")
			return nil
		}
		return err
	}

	updated, err := fields.Profile()
	if err != nil {
		return err
	}
	if err := ctx.Profiles.Save(userID, updated); err != nil {
		return err
	}
	ctx.Printf("✓ Profile saved for %s\n", userID)
	return nil
}

type ProfileResetCmd struct{}

func (c *ProfileResetCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	if err := ctx.Profiles.Reset(userID); err != nil {
		return err
	}
	ctx.Printf("✓ Profile for %s reset to defaults\n", userID)
	return nil
}
