package memory

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"

	"github.com/draftshift/core/internal/models"
	"github.com/draftshift/core/internal/pkg/httperr"
)

type fakeStore struct {
	rows     []models.UserMemoryModel
	inserted []models.UserMemoryModel
	err      error
}

func (f *fakeStore) Recent(_ context.Context, _ string, limit int) ([]models.UserMemoryModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > len(f.rows) {
		limit = len(f.rows)
	}
	return f.rows[:limit], nil
}

func (f *fakeStore) InsertBatch(_ context.Context, rows []models.UserMemoryModel) ([]models.UserMemoryModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inserted = append(f.inserted, rows...)
	return rows, nil
}

func newTestService(store Store) *Service {
	return newServiceWithStore(store, zap.NewNop())
}

func importance(v int) *int {
	return &v
}

func TestRecentLimitValidation(t *testing.T) {
	svc := newTestService(&fakeStore{})

	for _, limit := range []int{0, -1, 21} {
		_, err := svc.Recent(context.Background(), "user-1", limit)
		assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)
	}
}

func TestRecentReturnsEmptySliceNotNil(t *testing.T) {
	svc := newTestService(&fakeStore{})

	rows, err := svc.Recent(context.Background(), "user-1", 10)

	assert.Equal(t, err, nil)
	if rows == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestAddBatchRejectsEmptyBatch(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.AddBatch(context.Background(), "user-1", nil)

	assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)
	assert.Equal(t, httperr.DetailOf(err), "No memories provided")
}

func TestAddBatchRejectsOversizedBatch(t *testing.T) {
	svc := newTestService(&fakeStore{})
	items := make([]ItemInput, 6)
	for i := range items {
		items[i] = ItemInput{Memory: "remember this"}
	}

	_, err := svc.AddBatch(context.Background(), "user-1", items)

	assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)
	assert.Equal(t, httperr.DetailOf(err), "Maximum 5 memories per request")
}

func TestAddBatchRejectsBlankMemory(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.AddBatch(context.Background(), "user-1", []ItemInput{
		{Memory: "valid entry"},
		{Memory: "   "},
	})

	assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)
	// A single invalid item rejects the whole batch.
	assert.Equal(t, len(store.inserted), 0)
}

func TestAddBatchRejectsOverlongMemory(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.AddBatch(context.Background(), "user-1", []ItemInput{
		{Memory: strings.Repeat("x", 501)},
	})

	assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)
}

func TestAddBatchRejectsOverlongSource(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.AddBatch(context.Background(), "user-1", []ItemInput{
		{Memory: "fine", Source: strings.Repeat("s", 101)},
	})

	assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)
}

func TestAddBatchDefaultsAndClamps(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	inserted, err := svc.AddBatch(context.Background(), "user-1", []ItemInput{
		{Memory: "  trimmed  "},
		{Memory: "low", Importance: importance(-2)},
		{Memory: "high", Importance: importance(9)},
		{Memory: "zero", Importance: importance(0)},
		{Memory: "explicit", Source: " custom ", Importance: importance(4)},
	})

	assert.Equal(t, err, nil)
	assert.Equal(t, len(inserted), 5)
	assert.Equal(t, inserted[0].Memory, "trimmed")
	assert.Equal(t, inserted[0].Source, "unspecified")
	assert.Equal(t, inserted[0].Importance, 3)
	assert.Equal(t, inserted[1].Importance, 1)
	assert.Equal(t, inserted[2].Importance, 5)
	assert.Equal(t, inserted[3].Importance, 1)
	assert.Equal(t, inserted[4].Source, "custom")
	assert.Equal(t, inserted[4].Importance, 4)
	assert.Equal(t, inserted[4].UserID, "user-1")
}

func TestAddBatchCountsCharactersNotBytes(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	// 400 characters but 1200 bytes; must be accepted.
	inserted, err := svc.AddBatch(context.Background(), "user-1", []ItemInput{
		{Memory: strings.Repeat("日", 400), Source: strings.Repeat("本", 100)},
	})

	assert.Equal(t, err, nil)
	assert.Equal(t, len(inserted), 1)

	_, err = svc.AddBatch(context.Background(), "user-1", []ItemInput{
		{Memory: strings.Repeat("日", 501)},
	})
	assert.Equal(t, httperr.StatusOf(err), http.StatusBadRequest)
}
