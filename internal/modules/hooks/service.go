package hooks

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/draftshift/core/internal/models"
	"github.com/draftshift/core/internal/pkg/httperr"
)

const (
	maxPageLimit     = 50
	defaultPageLimit = 10
)

// Page is one window of a user's stored hooks plus pagination metadata.
type Page struct {
	Hooks   []models.NewsHookModel
	Limit   int
	Offset  int
	Total   int64
	HasMore bool
}

// Store abstracts row-store access for generated news hooks.
type Store interface {
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.NewsHookModel, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Insert(ctx context.Context, row *models.NewsHookModel) error
	Recent(ctx context.Context, limit int, industrySlug string) ([]models.NewsHookModel, error)
}

type gormStore struct {
	db *gorm.DB
}

func (g gormStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.NewsHookModel, error) {
	var rows []models.NewsHookModel
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (g gormStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	var total int64
	err := g.db.WithContext(ctx).
		Model(&models.NewsHookModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

func (g gormStore) Insert(ctx context.Context, row *models.NewsHookModel) error {
	return g.db.WithContext(ctx).Create(row).Error
}

func (g gormStore) Recent(ctx context.Context, limit int, industrySlug string) ([]models.NewsHookModel, error) {
	q := g.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if industrySlug != "" {
		q = q.Where("industry_slug = ?", industrySlug)
	}
	var rows []models.NewsHookModel
	err := q.Find(&rows).Error
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

// ListByUser returns one page of the user's hooks, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) (*Page, error) {
	if limit < 1 || limit > maxPageLimit {
		return nil, httperr.BadRequest("Limit must be between 1 and %d", maxPageLimit)
	}
	if offset < 0 {
		return nil, httperr.BadRequest("Offset must be non-negative")
	}

	rows, err := s.store.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.NewsHookModel{}
	}
	return &Page{
		Hooks:   rows,
		Limit:   limit,
		Offset:  offset,
		Total:   total,
		HasMore: int64(offset+limit) < total,
	}, nil
}

// Bookmark stores a single hook for the user.
func (s *Service) Bookmark(ctx context.Context, userID, hook string) (*models.NewsHookModel, error) {
	hook = strings.TrimSpace(hook)
	if hook == "" {
		return nil, httperr.BadRequest("Hook text is required and must be a non-empty string")
	}
	row := &models.NewsHookModel{UserID: userID, Hook: hook}
	if err := s.store.Insert(ctx, row); err != nil {
		s.logger.Error("failed to bookmark hook",
			zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return row, nil
}

// Recent reads the latest generated hooks across users, optionally filtered
// by industry. Used by prompt-context assembly, not exposed over HTTP.
func (s *Service) Recent(ctx context.Context, limit int, industrySlug string) ([]models.NewsHookModel, error) {
	if limit < 1 {
		return []models.NewsHookModel{}, nil
	}
	return s.store.Recent(ctx, limit, industrySlug)
}
