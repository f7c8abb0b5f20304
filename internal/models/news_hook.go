package models

// NewsHookModel is a stored content hook previously generated for a user,
// optionally tied to the industry digest it was derived from. Prompt context
// reads the most recent rows instead of doing a live provider fetch.
type NewsHookModel struct {
	Base
	UserID       string `json:"user_id"       gorm:"index;not null"`
	Hook         string `json:"hook"          gorm:"type:text;not null"`
	Industry     string `json:"industry"`
	IndustrySlug string `json:"industry_slug" gorm:"index"`
	Summary      string `json:"summary"       gorm:"type:text"`
}

func (NewsHookModel) TableName() string { return "news_hooks" }
