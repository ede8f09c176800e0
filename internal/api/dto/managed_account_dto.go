package dto

import (
	"fmt"

	"github.com/supportflow/opsdash/internal/domain"
)

// CreateManagedAccountRequest payload.
type CreateManagedAccountRequest struct {
	CompanyName         string                   `json:"companyName"`
	Industry            *string                  `json:"industry"`
	PrimaryContactName  string                   `json:"primaryContactName"`
	ContactEmail        string                   `json:"contactEmail"`
	ContactPhone        *string                  `json:"contactPhone"`
	ExpectedVolume      *string                  `json:"expectedVolume"`
	CurrentPlatforms    *[]string                `json:"currentPlatforms"`
	SpecialRequirements *string                  `json:"specialRequirements"`
	OnboardingStatus    *domain.OnboardingStatus `json:"onboardingStatus"`
	OnboardingStep      *int                     `json:"onboardingStep"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r CreateManagedAccountRequest) Validate() map[string]any {
	details := map[string]any{}
	requireString(details, "companyName", r.CompanyName)
	requireString(details, "primaryContactName", r.PrimaryContactName)
	requireString(details, "contactEmail", r.ContactEmail)
	validateOnboarding(details, r.OnboardingStatus, r.OnboardingStep)
	if len(details) == 0 {
		return nil
	}
	return details
}

// ToDomain builds the account with defaults resolved: onboarding
// pending at step 1.
func (r CreateManagedAccountRequest) ToDomain() domain.ManagedAccount {
	account := domain.ManagedAccount{
		CompanyName:        r.CompanyName,
		PrimaryContactName: r.PrimaryContactName,
		ContactEmail:       r.ContactEmail,
		CurrentPlatforms:   []string{},
		OnboardingStatus:   domain.OnboardingPending,
		OnboardingStep:     1,
	}
	if r.Industry != nil {
		account.Industry = *r.Industry
	}
	if r.ContactPhone != nil {
		account.ContactPhone = *r.ContactPhone
	}
	if r.ExpectedVolume != nil {
		account.ExpectedVolume = *r.ExpectedVolume
	}
	if r.CurrentPlatforms != nil {
		account.CurrentPlatforms = append([]string{}, *r.CurrentPlatforms...)
	}
	if r.SpecialRequirements != nil {
		account.SpecialRequirements = *r.SpecialRequirements
	}
	if r.OnboardingStatus != nil {
		account.OnboardingStatus = *r.OnboardingStatus
	}
	if r.OnboardingStep != nil {
		account.OnboardingStep = *r.OnboardingStep
	}
	return account
}

// UpdateManagedAccountRequest carries a partial account for PATCH.
type UpdateManagedAccountRequest struct {
	CompanyName         *string                  `json:"companyName"`
	Industry            *string                  `json:"industry"`
	PrimaryContactName  *string                  `json:"primaryContactName"`
	ContactEmail        *string                  `json:"contactEmail"`
	ContactPhone        *string                  `json:"contactPhone"`
	ExpectedVolume      *string                  `json:"expectedVolume"`
	CurrentPlatforms    *[]string                `json:"currentPlatforms"`
	SpecialRequirements *string                  `json:"specialRequirements"`
	OnboardingStatus    *domain.OnboardingStatus `json:"onboardingStatus"`
	OnboardingStep      *int                     `json:"onboardingStep"`
}

// Validate checks enum membership and step bounds of supplied fields only.
func (r UpdateManagedAccountRequest) Validate() map[string]any {
	details := map[string]any{}
	validateOnboarding(details, r.OnboardingStatus, r.OnboardingStep)
	if len(details) == 0 {
		return nil
	}
	return details
}

// ToUpdate maps the request onto the storage update shape.
func (r UpdateManagedAccountRequest) ToUpdate() domain.ManagedAccountUpdate {
	return domain.ManagedAccountUpdate{
		CompanyName:         r.CompanyName,
		Industry:            r.Industry,
		PrimaryContactName:  r.PrimaryContactName,
		ContactEmail:        r.ContactEmail,
		ContactPhone:        r.ContactPhone,
		ExpectedVolume:      r.ExpectedVolume,
		CurrentPlatforms:    r.CurrentPlatforms,
		SpecialRequirements: r.SpecialRequirements,
		OnboardingStatus:    r.OnboardingStatus,
		OnboardingStep:      r.OnboardingStep,
	}
}

func validateOnboarding(details map[string]any, status *domain.OnboardingStatus, step *int) {
	if status != nil && !domain.ValidOnboardingStatus(*status) {
		details["onboardingStatus"] = "must be one of pending, in_progress, completed"
	}
	if step != nil && (*step < 1 || *step > domain.OnboardingSteps) {
		details["onboardingStep"] = fmt.Sprintf("must be between 1 and %d", domain.OnboardingSteps)
	}
}
