package onboarding

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/draftshift/core/internal/models"
	"github.com/draftshift/core/internal/pkg/httperr"
)

// Input is the onboarding payload submitted after signup. Email is optional
// since it is already known from the account.
type Input struct {
	Name           string   `json:"name"`
	Company        string   `json:"company"`
	Role           string   `json:"role"`
	Email          string   `json:"email"`
	Industry       string   `json:"industry"`
	CompanyMission string   `json:"company_mission"`
	TargetAudience string   `json:"target_audience"`
	TopicsToPost   string   `json:"topics_to_post"`
	SelectedGoals  []string `json:"selected_goals"`
	SelectedHooks  []string `json:"selected_hooks"`
}

// Store abstracts row-store access for the single-row-per-user onboarding
// context.
type Store interface {
	GetByUser(ctx context.Context, userID string) (*models.OnboardingContextModel, error)
	Upsert(ctx context.Context, row *models.OnboardingContextModel) error
}

type gormStore struct {
	db *gorm.DB
}

func (g gormStore) GetByUser(ctx context.Context, userID string) (*models.OnboardingContextModel, error) {
	var row models.OnboardingContextModel
	err := g.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (g gormStore) Upsert(ctx context.Context, row *models.OnboardingContextModel) error {
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "company", "role", "email", "industry",
			"company_mission", "target_audience", "topics_to_post",
			"selected_goals", "selected_hooks", "updated_at",
		}),
	}).Create(row).Error
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{store: gormStore{db: db}, logger: logger}
}

func newServiceWithStore(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// GetByUser returns the user's onboarding row, or nil when none exists.
// Absence is not an error.
func (s *Service) GetByUser(ctx context.Context, userID string) (*models.OnboardingContextModel, error) {
	return s.store.GetByUser(ctx, userID)
}

// Upsert writes the user's onboarding row, replacing any previous submission.
func (s *Service) Upsert(ctx context.Context, userID string, input Input) (*models.OnboardingContextModel, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, httperr.BadRequest("name is required")
	}
	row := &models.OnboardingContextModel{
		UserID:         userID,
		Name:           strings.TrimSpace(input.Name),
		Company:        strings.TrimSpace(input.Company),
		Role:           strings.TrimSpace(input.Role),
		Email:          strings.TrimSpace(input.Email),
		Industry:       strings.TrimSpace(input.Industry),
		CompanyMission: strings.TrimSpace(input.CompanyMission),
		TargetAudience: strings.TrimSpace(input.TargetAudience),
		TopicsToPost:   strings.TrimSpace(input.TopicsToPost),
		SelectedGoals:  input.SelectedGoals,
		SelectedHooks:  input.SelectedHooks,
	}
	if err := s.store.Upsert(ctx, row); err != nil {
		s.logger.Error("failed to upsert onboarding context",
			zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return row, nil
}
