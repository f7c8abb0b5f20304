package onboarding

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"

	"github.com/draftshift/core/internal/models"
	"github.com/draftshift/core/internal/pkg/httperr"
)

type fakeStore struct {
	rows map[string]*models.OnboardingContextModel
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string]*models.OnboardingContextModel)}
}

func (f *fakeStore) GetByUser(_ context.Context, userID string) (*models.OnboardingContextModel, error) {
	return f.rows[userID], nil
}

func (f *fakeStore) Upsert(_ context.Context, row *models.OnboardingContextModel) error {
	f.rows[row.UserID] = row
	return nil
}

func TestGetByUserAbsentIsNilNotError(t *testing.T) {
	svc := newServiceWithStore(newFakeStore(), zap.NewNop())

	record, err := svc.GetByUser(context.Background(), "user-1")

	assert.Equal(t, err, nil)
	assert.Equal(t, record, (*models.OnboardingContextModel)(nil))
}

func TestUpsertRequiresName(t *testing.T) {
	svc := newServiceWithStore(newFakeStore(), zap.NewNop())

	_, err := svc.Upsert(context.Background(), "user-1", Input{Name: "  "})

	assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)
}

func TestUpsertReplacesPreviousSubmission(t *testing.T) {
	store := newFakeStore()
	svc := newServiceWithStore(store, zap.NewNop())

	_, err := svc.Upsert(context.Background(), "user-1", Input{Name: "Ada", Industry: "Technology"})
	assert.Equal(t, err, nil)

	record, err := svc.Upsert(context.Background(), "user-1", Input{Name: " Ada Lovelace ", Industry: "Finance"})
	assert.Equal(t, err, nil)
	assert.Equal(t, record.Name, "Ada Lovelace")

	stored, _ := svc.GetByUser(context.Background(), "user-1")
	assert.Equal(t, stored.Industry, "Finance")
}
