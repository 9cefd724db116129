package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DaviCMachado/my-price-tracker/internal/dto"
	"github.com/DaviCMachado/my-price-tracker/internal/mapping"
	"github.com/DaviCMachado/my-price-tracker/internal/model"
)

// ── In-memory PriceRecordRepository stub ─────────────────────────────────────

type stubRecordRepo struct {
	records map[uuid.UUID]*model.PriceRecord
	clock   time.Time
}

func newStubRecordRepo() *stubRecordRepo {
	return &stubRecordRepo{
		records: make(map[uuid.UUID]*model.PriceRecord),
		clock:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *stubRecordRepo) Create(_ context.Context, rec *model.PriceRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	// the real repository lets Postgres stamp recorded_at
	r.clock = r.clock.Add(time.Second)
	rec.RecordedAt = r.clock
	r.records[rec.ID] = rec
	return nil
}

func (r *stubRecordRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PriceRecord, error) {
	rec, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *stubRecordRepo) List(_ context.Context, _ dto.RecordFilter) ([]model.PriceRecord, int64, error) {
	out := make([]model.PriceRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

func (r *stubRecordRepo) ListAll(_ context.Context) ([]model.PriceRecord, error) {
	out := make([]model.PriceRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubRecordRepo) UpdateFields(_ context.Context, rec *model.PriceRecord) error {
	stored, ok := r.records[rec.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// column-scoped update: recorded_at and display_date stay untouched
	stored.Product = rec.Product
	stored.StoreName = rec.StoreName
	stored.Price = rec.Price
	stored.PromoFlag = rec.PromoFlag
	return nil
}

func (r *stubRecordRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

// ── Change notifier stub ─────────────────────────────────────────────────────

type stubNotifier struct{ calls int }

func (n *stubNotifier) NotifyChange(context.Context) { n.calls++ }

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRecordServiceCreate(t *testing.T) {
	repo := newStubRecordRepo()
	notifier := &stubNotifier{}
	svc := NewRecordService(repo, notifier)
	owner := uuid.New()

	resp, err := svc.Create(context.Background(), owner, dto.RecordDraftRequest{
		Product: "Leite", Store: "Rede Vivo", PriceText: "4.99",
	})
	require.NoError(t, err)

	assert.Equal(t, owner.String(), resp.OwnerID)
	assert.Equal(t, "4.99", resp.Price)
	assert.Equal(t, model.PromoWithoutLoyalty, resp.PromoFlag)
	assert.NotEmpty(t, resp.RecordedAt)
	assert.NotEmpty(t, resp.DisplayDate)
	assert.Equal(t, 1, notifier.calls)
}

func TestRecordServiceCreateInvalidDraft(t *testing.T) {
	repo := newStubRecordRepo()
	notifier := &stubNotifier{}
	svc := NewRecordService(repo, notifier)

	_, err := svc.Create(context.Background(), uuid.New(), dto.RecordDraftRequest{
		Product: "", Store: "X", PriceText: "3.50",
	})
	var verr *mapping.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, repo.records)
	assert.Zero(t, notifier.calls, "failed create must not notify")
}

func TestRecordServiceUpdatePreservesTimestamps(t *testing.T) {
	repo := newStubRecordRepo()
	notifier := &stubNotifier{}
	svc := NewRecordService(repo, notifier)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, dto.RecordDraftRequest{
		Product: "Leite", Store: "A", PriceText: "4.50",
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)
	before, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), owner, id, dto.RecordDraftRequest{
		Product: "Leite", Store: "B", PriceText: "4.20", PromoFlag: model.PromoWithLoyalty,
	})
	require.NoError(t, err)

	assert.Equal(t, "B", updated.Store)
	assert.Equal(t, "4.20", updated.Price)
	after, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, before.RecordedAt, after.RecordedAt)
	assert.Equal(t, before.DisplayDate, after.DisplayDate)
}

func TestRecordServiceUpdateForbiddenForNonOwner(t *testing.T) {
	repo := newStubRecordRepo()
	svc := NewRecordService(repo, &stubNotifier{})
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, dto.RecordDraftRequest{
		Product: "Leite", Store: "A", PriceText: "4.50",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), uuid.New(), uuid.MustParse(created.ID), dto.RecordDraftRequest{
		Product: "Leite", Store: "A", PriceText: "1.00",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRecordServiceDelete(t *testing.T) {
	repo := newStubRecordRepo()
	notifier := &stubNotifier{}
	svc := NewRecordService(repo, notifier)
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, dto.RecordDraftRequest{
		Product: "Leite", Store: "A", PriceText: "4.50",
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	require.NoError(t, svc.Delete(context.Background(), owner, id))
	assert.Empty(t, repo.records)
	assert.Equal(t, 2, notifier.calls)

	assert.ErrorIs(t, svc.Delete(context.Background(), owner, id), ErrNotFound)
}

func TestRecordServiceEditDraftRoundTrip(t *testing.T) {
	repo := newStubRecordRepo()
	svc := NewRecordService(repo, &stubNotifier{})
	owner := uuid.New()

	created, err := svc.Create(context.Background(), owner, dto.RecordDraftRequest{
		Product: "Café", Store: "Nicolini", PriceText: "12.5",
	})
	require.NoError(t, err)

	draft, err := svc.EditDraft(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, "Café", draft.Product)
	assert.Equal(t, "Nicolini", draft.Store)
	// editable text keeps the entered precision, not the display rounding
	assert.Equal(t, "12.5", draft.PriceText)
}
