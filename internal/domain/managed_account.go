package domain

import "time"

// OnboardingStatus enumerates states of the four-step account onboarding flow.
type OnboardingStatus string

const (
	OnboardingPending    OnboardingStatus = "pending"
	OnboardingInProgress OnboardingStatus = "in_progress"
	OnboardingCompleted  OnboardingStatus = "completed"
)

// ValidOnboardingStatus reports whether s is a known onboarding status.
func ValidOnboardingStatus(s OnboardingStatus) bool {
	switch s {
	case OnboardingPending, OnboardingInProgress, OnboardingCompleted:
		return true
	}
	return false
}

// OnboardingSteps is the number of steps in the onboarding wizard.
const OnboardingSteps = 4

// ManagedAccount is a client organization being onboarded into the
// support-automation service.
type ManagedAccount struct {
	ID                  string           `json:"id"`
	CompanyName         string           `json:"companyName"`
	Industry            string           `json:"industry"`
	PrimaryContactName  string           `json:"primaryContactName"`
	ContactEmail        string           `json:"contactEmail"`
	ContactPhone        string           `json:"contactPhone"`
	ExpectedVolume      string           `json:"expectedVolume"`
	CurrentPlatforms    []string         `json:"currentPlatforms"`
	SpecialRequirements string           `json:"specialRequirements"`
	OnboardingStatus    OnboardingStatus `json:"onboardingStatus"`
	OnboardingStep      int              `json:"onboardingStep"`
	CreatedAt           time.Time        `json:"createdAt"`
}

// ManagedAccountUpdate carries a partial account; nil fields are left
// untouched by the merge.
type ManagedAccountUpdate struct {
	CompanyName         *string
	Industry            *string
	PrimaryContactName  *string
	ContactEmail        *string
	ContactPhone        *string
	ExpectedVolume      *string
	CurrentPlatforms    *[]string
	SpecialRequirements *string
	OnboardingStatus    *OnboardingStatus
	OnboardingStep      *int
}
