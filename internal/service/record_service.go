package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DaviCMachado/my-price-tracker/internal/dto"
	"github.com/DaviCMachado/my-price-tracker/internal/mapping"
	"github.com/DaviCMachado/my-price-tracker/internal/model"
	"github.com/DaviCMachado/my-price-tracker/internal/repository"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// RecordService owns the write path for price records: drafts come in, get
// validated/normalized by the mapping layer, and go out to the repository.
// Every successful write triggers the change notifier — fire-and-forget.
type RecordService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req dto.RecordDraftRequest) (*dto.RecordResponse, error)
	List(ctx context.Context, filter dto.RecordFilter) (*dto.RecordListResponse, error)
	// EditDraft loads a record back into editable form state.
	EditDraft(ctx context.Context, id uuid.UUID) (*dto.RecordDraftRequest, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, req dto.RecordDraftRequest) (*dto.RecordResponse, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type recordService struct {
	repo     repository.PriceRecordRepository
	notifier ChangeNotifier
}

func NewRecordService(repo repository.PriceRecordRepository, notifier ChangeNotifier) RecordService {
	return &recordService{repo: repo, notifier: notifier}
}

func (s *recordService) Create(ctx context.Context, ownerID uuid.UUID, req dto.RecordDraftRequest) (*dto.RecordResponse, error) {
	payload, err := mapping.NewRecordPayload(draftFromRequest(req), time.Now())
	if err != nil {
		return nil, err
	}
	payload.OwnerID = ownerID
	if err := s.repo.Create(ctx, payload); err != nil {
		return nil, err
	}
	s.notifier.NotifyChange(ctx)
	resp := recordToDTO(payload)
	return &resp, nil
}

func (s *recordService) List(ctx context.Context, filter dto.RecordFilter) (*dto.RecordListResponse, error) {
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.RecordResponse, 0, len(records))
	for i := range records {
		data = append(data, recordToDTO(&records[i]))
	}
	return &dto.RecordListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *recordService) EditDraft(ctx context.Context, id uuid.UUID) (*dto.RecordDraftRequest, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	draft := mapping.DraftFromRecord(record)
	return &dto.RecordDraftRequest{
		Product:   draft.Product,
		Store:     draft.Store,
		PromoFlag: draft.PromoFlag,
		PriceText: draft.PriceText,
	}, nil
}

func (s *recordService) Update(ctx context.Context, ownerID, id uuid.UUID, req dto.RecordDraftRequest) (*dto.RecordResponse, error) {
	record, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := mapping.ApplyRecordEdit(record, draftFromRequest(req)); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, record); err != nil {
		return nil, err
	}
	s.notifier.NotifyChange(ctx)
	resp := recordToDTO(record)
	return &resp, nil
}

func (s *recordService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.NotifyChange(ctx)
	return nil
}

func (s *recordService) findOwned(ctx context.Context, ownerID, id uuid.UUID) (*model.PriceRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if record.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return record, nil
}

func draftFromRequest(req dto.RecordDraftRequest) mapping.RecordDraft {
	return mapping.RecordDraft{
		Product:   req.Product,
		Store:     req.Store,
		PromoFlag: req.PromoFlag,
		PriceText: req.PriceText,
	}
}

func recordToDTO(r *model.PriceRecord) dto.RecordResponse {
	return dto.RecordResponse{
		ID:          r.ID.String(),
		Product:     r.Product,
		Store:       r.StoreName,
		Price:       r.Price.StringFixed(2),
		PromoFlag:   r.PromoFlag,
		RecordedAt:  r.RecordedAt.UTC().Format(time.RFC3339),
		DisplayDate: r.DisplayDate,
		OwnerID:     r.OwnerID.String(),
	}
}
