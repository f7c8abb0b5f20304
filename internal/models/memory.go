package models

// UserMemoryModel is a free-text fact remembered about a user, appended in
// small batches and read back newest-first when building prompt context.
type UserMemoryModel struct {
	Base
	UserID     string `json:"user_id"    gorm:"index;not null"`
	Memory     string `json:"memory"     gorm:"type:text;not null"`
	Source     string `json:"source"     gorm:"size:100;not null;default:'unspecified'"`
	Importance int    `json:"importance" gorm:"not null;default:3"`
}

func (UserMemoryModel) TableName() string { return "user_memories" }
