package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DaviCMachado/my-price-tracker/internal/dto"
	"github.com/DaviCMachado/my-price-tracker/internal/mapping"
	"github.com/DaviCMachado/my-price-tracker/internal/model"
	"github.com/DaviCMachado/my-price-tracker/internal/repository"
)

// StoreService manages the store list. Stores are joined to price records by
// name only, so rename and delete deliberately leave historical records alone.
type StoreService interface {
	Create(ctx context.Context, ownerID uuid.UUID, req dto.StoreDraftRequest) (*dto.StoreResponse, error)
	List(ctx context.Context) ([]dto.StoreResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.StoreDraftRequest) (*dto.StoreResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type storeService struct {
	repo     repository.StoreRepository
	notifier ChangeNotifier
}

func NewStoreService(repo repository.StoreRepository, notifier ChangeNotifier) StoreService {
	return &storeService{repo: repo, notifier: notifier}
}

func mapStore(s *model.Store) dto.StoreResponse {
	return dto.StoreResponse{
		ID:       s.ID.String(),
		Name:     s.Name,
		Address:  s.Address,
		ColorTag: s.ColorTag,
	}
}

func (s *storeService) Create(ctx context.Context, ownerID uuid.UUID, req dto.StoreDraftRequest) (*dto.StoreResponse, error) {
	payload, err := mapping.NewStorePayload(mapping.StoreDraft{
		Name: req.Name, Address: req.Address, ColorTag: req.ColorTag,
	})
	if err != nil {
		return nil, err
	}
	payload.OwnerID = ownerID
	if err := s.repo.Create(ctx, payload); err != nil {
		return nil, err
	}
	s.notifier.NotifyChange(ctx)
	resp := mapStore(payload)
	return &resp, nil
}

func (s *storeService) List(ctx context.Context) ([]dto.StoreResponse, error) {
	stores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.StoreResponse, 0, len(stores))
	for i := range stores {
		result = append(result, mapStore(&stores[i]))
	}
	return result, nil
}

func (s *storeService) Update(ctx context.Context, id uuid.UUID, req dto.StoreDraftRequest) (*dto.StoreResponse, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := mapping.ApplyStoreEdit(store, mapping.StoreDraft{
		Name: req.Name, Address: req.Address, ColorTag: req.ColorTag,
	}); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	s.notifier.NotifyChange(ctx)
	resp := mapStore(store)
	return &resp, nil
}

func (s *storeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	// Hard delete, no cascade: records referencing this store keep their
	// captured name and fall back to the default color on display.
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.NotifyChange(ctx)
	return nil
}
