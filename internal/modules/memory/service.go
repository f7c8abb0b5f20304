package memory

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draftshift/core/internal/models"
	"github.com/draftshift/core/internal/pkg/httperr"
)

const (
	maxBatchSize      = 5
	maxMemoryLength   = 500
	maxSourceLength   = 100
	defaultSource     = "unspecified"
	defaultImportance = 3
	maxListLimit      = 20
)

// ItemInput is one memory bullet submitted by a client. Importance is a
// pointer so an explicit 0 clamps instead of reading as absent.
type ItemInput struct {
	Memory     string `json:"memory"`
	Source     string `json:"source"`
	Importance *int   `json:"importance"`
}

// Store abstracts row-store access for user memories.
type Store interface {
	Recent(ctx context.Context, userID string, limit int) ([]models.UserMemoryModel, error)
	InsertBatch(ctx context.Context, rows []models.UserMemoryModel) ([]models.UserMemoryModel, error)
}

type gormStore struct {
	db *gorm.DB
}

func (g gormStore) Recent(ctx context.Context, userID string, limit int) ([]models.UserMemoryModel, error) {
	var rows []models.UserMemoryModel
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (g gormStore) InsertBatch(ctx context.Context, rows []models.UserMemoryModel) ([]models.UserMemoryModel, error) {
	err := g.db.WithContext(ctx).Create(&rows).Error
	return rows, err
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

// Recent returns the user's newest memories, newest first.
func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]models.UserMemoryModel, error) {
	if limit < 1 || limit > maxListLimit {
		return nil, httperr.BadRequest("limit must be between 1 and %d", maxListLimit)
	}
	rows, err := s.store.Recent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.UserMemoryModel{}
	}
	return rows, nil
}

// AddBatch validates and inserts a batch of memories. Validation covers the
// whole batch before any row is written; a single bad item rejects the batch.
func (s *Service) AddBatch(ctx context.Context, userID string, items []ItemInput) ([]models.UserMemoryModel, error) {
	if len(items) == 0 {
		return nil, httperr.BadRequest("No memories provided")
	}
	if len(items) > maxBatchSize {
		return nil, httperr.BadRequest("Maximum %d memories per request", maxBatchSize)
	}

	rows := make([]models.UserMemoryModel, 0, len(items))
	for i, item := range items {
		text := strings.TrimSpace(item.Memory)
		if text == "" || utf8.RuneCountInString(text) > maxMemoryLength {
			return nil, httperr.BadRequest(
				"memories[%d].memory must be between 1 and %d characters after trimming", i, maxMemoryLength)
		}
		source := strings.TrimSpace(item.Source)
		if source == "" {
			source = defaultSource
		}
		if utf8.RuneCountInString(source) > maxSourceLength {
			return nil, httperr.BadRequest(
				"memories[%d].source must be at most %d characters", i, maxSourceLength)
		}
		rows = append(rows, models.UserMemoryModel{
			UserID:     userID,
			Memory:     text,
			Source:     source,
			Importance: clampImportance(item.Importance),
		})
	}

	inserted, err := s.store.InsertBatch(ctx, rows)
	if err != nil {
		s.logger.Error("failed to insert memory batch",
			zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return inserted, nil
}

func clampImportance(importance *int) int {
	if importance == nil {
		return defaultImportance
	}
	switch {
	case *importance < 1:
		return 1
	case *importance > 5:
		return 5
	}
	return *importance
}
