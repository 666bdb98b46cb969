// Package forms holds the huh forms shared by the CLI and the TUI, together
// with the string-backed field structs they edit.
package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/qingka/internal/constants"
	"github.com/julianstephens/qingka/internal/feed"
	"github.com/julianstephens/qingka/internal/models"
)

// ProfileFields mirrors models.UserProfile with form-friendly types.
// Empty optional fields mean "unset".
type ProfileFields struct {
	Name               string
	Age                string
	Gender             string
	CancerType         string
	TreatmentType      string // comma separated
	TreatmentStatus    string
	TreatmentStartDate string
	CurrentCycle       string
	PartnerStatus      string
	FertilityConcerns  bool
	Height             string
	Weight             string
	NutritionStatus    string
	DetailedIllness    string
}

func ProfileFieldsFrom(p models.UserProfile) *ProfileFields {
	f := &ProfileFields{
		Name:               p.Name,
		Age:                strconv.Itoa(p.Age),
		Gender:             string(p.Gender),
		CancerType:         p.CancerType,
		TreatmentType:      strings.Join(p.TreatmentType, ", "),
		TreatmentStatus:    string(p.TreatmentStatus),
		TreatmentStartDate: p.TreatmentStartDate,
		CurrentCycle:       strconv.Itoa(p.CurrentCycle),
		PartnerStatus:      p.PartnerStatus,
		FertilityConcerns:  p.FertilityConcerns,
	}
	if p.Height != nil {
		f.Height = strconv.FormatFloat(*p.Height, 'f', -1, 64)
	}
	if p.Weight != nil {
		f.Weight = strconv.FormatFloat(*p.Weight, 'f', -1, 64)
	}
	if p.NutritionStatus != nil {
		f.NutritionStatus = *p.NutritionStatus
	}
	if p.DetailedIllness != nil {
		f.DetailedIllness = *p.DetailedIllness
	}
	return f
}

// Profile converts the fields back into a profile and validates it.
func (f *ProfileFields) Profile() (models.UserProfile, error) {
	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: age must be a number", models.ErrInvalidProfile)
	}
	cycle, err := strconv.Atoi(strings.TrimSpace(f.CurrentCycle))
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%w: current cycle must be a number", models.ErrInvalidProfile)
	}

	p := models.UserProfile{
		Name:               strings.TrimSpace(f.Name),
		Age:                age,
		Gender:             models.Gender(f.Gender),
		CancerType:         strings.TrimSpace(f.CancerType),
		TreatmentType:      SplitList(f.TreatmentType),
		TreatmentStatus:    models.TreatmentStatus(f.TreatmentStatus),
		TreatmentStartDate: strings.TrimSpace(f.TreatmentStartDate),
		CurrentCycle:       cycle,
		PartnerStatus:      strings.TrimSpace(f.PartnerStatus),
		FertilityConcerns:  f.FertilityConcerns,
	}
	if p.Height, err = optionalFloat("height", f.Height); err != nil {
		return models.UserProfile{}, err
	}
	if p.Weight, err = optionalFloat("weight", f.Weight); err != nil {
		return models.UserProfile{}, err
	}
	p.NutritionStatus = optionalString(f.NutritionStatus)
	p.DetailedIllness = optionalString(f.DetailedIllness)

	if err := p.Validate(); err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

func optionalFloat(name, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", models.ErrInvalidProfile, name)
	}
	return &v, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// SplitList splits a comma separated list, dropping blanks. Both ASCII and
// full-width commas are accepted.
func SplitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '，' })
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func positiveInt(field string, allowZero bool) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a number", field)
		}
		if n < 0 || (n == 0 && !allowZero) {
			return fmt.Errorf("%s must be positive", field)
		}
		return nil
	}
}

func optionalPositive(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("%s must be a positive number", field)
		}
		return nil
	}
}

func validDate(s string) error {
	if _, err := time.Parse(constants.DateFormat, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	return nil
}

func NewProfileForm(f *ProfileFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("昵称 Name").
				Value(&f.Name).
				Validate(notEmpty("name")),
			huh.NewInput().
				Title("年龄 Age").
				Value(&f.Age).
				Validate(positiveInt("age", false)),
			huh.NewSelect[string]().
				Title("性别 Gender").
				Options(
					huh.NewOption("女 Female", string(models.GenderFemale)),
					huh.NewOption("男 Male", string(models.GenderMale)),
					huh.NewOption("其他 Other", string(models.GenderOther)),
				).
				Value(&f.Gender),
			huh.NewInput().
				Title("伴侣状态 Partner status").
				Value(&f.PartnerStatus),
			huh.NewConfirm().
				Title("有生育方面的顾虑? Fertility concerns").
				Value(&f.FertilityConcerns),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("癌种 Cancer type").
				Value(&f.CancerType).
				Validate(notEmpty("cancer type")),
			huh.NewInput().
				Title("治疗方式 Treatment types (comma separated)").
				Value(&f.TreatmentType),
			huh.NewSelect[string]().
				Title("当前状态 Treatment status").
				Options(
					huh.NewOption(models.StatusTreatment.Label(), string(models.StatusTreatment)),
					huh.NewOption(models.StatusRecovery.Label(), string(models.StatusRecovery)),
					huh.NewOption(models.StatusFollowup.Label(), string(models.StatusFollowup)),
				).
				Value(&f.TreatmentStatus),
			huh.NewInput().
				Title("开始治疗日期 Treatment start (YYYY-MM-DD)").
				Value(&f.TreatmentStartDate).
				Validate(validDate),
			huh.NewInput().
				Title("当前周期 Current cycle").
				Value(&f.CurrentCycle).
				Validate(positiveInt("current cycle", true)),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("身高 Height (cm, optional)").
				Value(&f.Height).
				Validate(optionalPositive("height")),
			huh.NewInput().
				Title("体重 Weight (kg, optional)").
				Value(&f.Weight).
				Validate(optionalPositive("weight")),
			huh.NewSelect[string]().
				Title("营养状况 Nutrition status").
				Options(
					huh.NewOption("未填写 Not set", ""),
					huh.NewOption(constants.NutritionGood, constants.NutritionGood),
					huh.NewOption(constants.NutritionFair, constants.NutritionFair),
					huh.NewOption(constants.NutritionPoor, constants.NutritionPoor),
				).
				Value(&f.NutritionStatus),
			huh.NewText().
				Title("病情详情 Illness details (optional)").
				Value(&f.DetailedIllness),
		),
	).WithTheme(huh.ThemeDracula())
}

// PostFields backs the share editor.
type PostFields struct {
	Category   string
	Content    string
	FullBody   string
	Tags       string // comma separated
	CoverEmoji string
}

func NewPostFields() *PostFields {
	return &PostFields{
		Category: constants.CategoryFood,
		Tags:     strings.Join(constants.DefaultDraftTags, ", "),
	}
}

// Draft builds the feed draft. The chosen category is always the first tag.
func (f *PostFields) Draft() feed.Draft {
	tags := SplitList(f.Tags)
	if f.Category != "" {
		tags = append([]string{f.Category}, tags...)
	}
	return feed.Draft{
		Author:     constants.DefaultAuthor,
		Content:    strings.TrimSpace(f.Content),
		FullBody:   strings.TrimSpace(f.FullBody),
		Tags:       tags,
		CoverEmoji: strings.TrimSpace(f.CoverEmoji),
	}
}

func NewPostForm(f *PostFields) *huh.Form {
	var options []huh.Option[string]
	for _, c := range feed.Categories() {
		if c.ID == constants.FeedFilterAll {
			continue
		}
		options = append(options, huh.NewOption(c.Emoji+" "+c.Title, c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("分类 Category").
				Options(options...).
				Value(&f.Category),
			huh.NewInput().
				Title("分享 Content").
				Value(&f.Content).
				Validate(notEmpty("content")),
			huh.NewText().
				Title("正文 Full text (optional)").
				Value(&f.FullBody),
			huh.NewInput().
				Title("标签 Tags (comma separated)").
				Value(&f.Tags),
			huh.NewInput().
				Title("封面 Cover emoji (optional)").
				Placeholder(constants.DefaultCoverEmoji).
				Value(&f.CoverEmoji),
		),
	).WithTheme(huh.ThemeDracula())
}

// DayFields backs the milestone editor.
type DayFields struct {
	Title     string
	Type      string
	StartDate string
}

func NewDayFields(today time.Time) *DayFields {
	return &DayFields{
		Type:      string(models.CountUp),
		StartDate: today.Format(constants.DateFormat),
	}
}

func (f *DayFields) Event() models.DaysMatterEvent {
	return models.DaysMatterEvent{
		Title:     strings.TrimSpace(f.Title),
		Type:      models.MilestoneType(f.Type),
		StartDate: strings.TrimSpace(f.StartDate),
	}
}

func NewDayForm(f *DayFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("标题 Title").
				Value(&f.Title).
				Validate(notEmpty("title")),
			huh.NewSelect[string]().
				Title("类型 Type").
				Options(
					huh.NewOption("已经 Days since", string(models.CountUp)),
					huh.NewOption("还有 Days until", string(models.CountDown)),
				).
				Value(&f.Type),
			huh.NewInput().
				Title("日期 Date (YYYY-MM-DD)").
				Value(&f.StartDate).
				Validate(validDate),
		),
	).WithTheme(huh.ThemeDracula())
}
