package models

// OnboardingContextModel is the single-row onboarding questionnaire for a user.
// Upserted on user_id; every field is optional from the renderer's point of view.
type OnboardingContextModel struct {
	Base
	UserID         string      `json:"user_id"         gorm:"uniqueIndex;not null"`
	Name           string      `json:"name"`
	Company        string      `json:"company"`
	Role           string      `json:"role"`
	Email          string      `json:"email"`
	Industry       string      `json:"industry"`
	CompanyMission string      `json:"company_mission" gorm:"type:text"`
	TargetAudience string      `json:"target_audience" gorm:"type:text"`
	TopicsToPost   string      `json:"topics_to_post"  gorm:"type:text"`
	SelectedGoals  StringArray `json:"selected_goals"  gorm:"type:text;serializer:json"`
	SelectedHooks  StringArray `json:"selected_hooks"  gorm:"type:text;serializer:json"`
}

func (OnboardingContextModel) TableName() string { return "onboarding_context" }
