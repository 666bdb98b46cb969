package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/qingka/internal/constants"
)

type Gender string

const (
	GenderFemale Gender = "FEMALE"
	GenderMale   Gender = "MALE"
	GenderOther  Gender = "OTHER"
)

type TreatmentStatus string

const (
	StatusTreatment TreatmentStatus = "TREATMENT"
	StatusRecovery  TreatmentStatus = "RECOVERY"
	StatusFollowup  TreatmentStatus = "FOLLOWUP"
)

// UserProfile is the health profile of a single user. It is always written whole.
type UserProfile struct {
	Name               string          `json:"name"`
	Age                int             `json:"age"`
	Gender             Gender          `json:"gender"`
	CancerType         string          `json:"cancerType"`
	TreatmentType      []string        `json:"treatmentType"`
	TreatmentStatus    TreatmentStatus `json:"treatmentStatus"`
	TreatmentStartDate string          `json:"treatmentStartDate"` // YYYY-MM-DD
	CurrentCycle       int             `json:"currentCycle"`
	PartnerStatus      string          `json:"partnerStatus"`
	FertilityConcerns  bool            `json:"fertilityConcerns"`
	Height             *float64        `json:"height,omitempty"` // cm
	Weight             *float64        `json:"weight,omitempty"` // kg
	NutritionStatus    *string         `json:"nutritionStatus,omitempty"`
	DetailedIllness    *string         `json:"detailedIllness,omitempty"`
}

// DefaultProfile returns the profile a user starts with before their first save.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:               constants.DefaultProfileName,
		Age:                constants.DefaultProfileAge,
		Gender:             GenderFemale,
		CancerType:         constants.DefaultProfileCancerType,
		TreatmentType:      []string{constants.DefaultProfileTreatmentType},
		TreatmentStatus:    StatusTreatment,
		TreatmentStartDate: constants.DefaultProfileTreatmentStart,
		CurrentCycle:       constants.DefaultProfileCurrentCycle,
		PartnerStatus:      constants.DefaultProfilePartnerStatus,
		FertilityConcerns:  constants.DefaultProfileFertilityConcerns,
	}
}

func (g Gender) Valid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderOther:
		return true
	}
	return false
}

func (s TreatmentStatus) Valid() bool {
	switch s {
	case StatusTreatment, StatusRecovery, StatusFollowup:
		return true
	}
	return false
}

// Label returns the display label used on the home card.
func (s TreatmentStatus) Label() string {
	switch s {
	case StatusTreatment:
		return "治疗中"
	case StatusRecovery:
		return "康复期"
	case StatusFollowup:
		return "长期随访"
	default:
		return string(s)
	}
}

func (p *UserProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidProfile)
	}
	if p.Age <= 0 {
		return fmt.Errorf("%w: age must be positive, got %d", ErrInvalidProfile, p.Age)
	}
	if !p.Gender.Valid() {
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidProfile, p.Gender)
	}
	if !p.TreatmentStatus.Valid() {
		return fmt.Errorf("%w: unknown treatment status %q", ErrInvalidProfile, p.TreatmentStatus)
	}
	if _, err := time.Parse(constants.DateFormat, p.TreatmentStartDate); err != nil {
		return fmt.Errorf("%w: invalid treatment start date (expected YYYY-MM-DD): %v", ErrInvalidProfile, err)
	}
	if p.CurrentCycle < 0 {
		return fmt.Errorf("%w: current cycle cannot be negative", ErrInvalidProfile)
	}
	if p.Height != nil && *p.Height <= 0 {
		return fmt.Errorf("%w: height must be positive", ErrInvalidProfile)
	}
	if p.Weight != nil && *p.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidProfile)
	}
	if p.NutritionStatus != nil {
		switch *p.NutritionStatus {
		case constants.NutritionGood, constants.NutritionFair, constants.NutritionPoor:
		default:
			return fmt.Errorf("%w: unknown nutrition status %q", ErrInvalidProfile, *p.NutritionStatus)
		}
	}
	return nil
}
