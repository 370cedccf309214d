package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/repository"
)

type itemService struct {
	items      repository.ItemRepo
	properties repository.PropertyRepo
	opts       options
}

func NewItemService(items repository.ItemRepo, properties repository.PropertyRepo, opts ...Option) ItemService {
	return &itemService{items: items, properties: properties, opts: newOptions(opts)}
}

func (s *itemService) Create(ctx context.Context, item *domain.ChecklistItem) error {
	item.Normalize()
	if err := item.Validate(); err != nil {
		return err
	}
	if _, err := s.properties.GetByID(ctx, item.PropertyID); err != nil {
		return err
	}
	item.UpdatedAt = s.opts.nowUTC()
	return s.items.Create(ctx, item)
}

func (s *itemService) GetByID(ctx context.Context, id int64) (*domain.ChecklistItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemService) List(ctx context.Context, filter domain.ItemFilter) ([]*domain.ChecklistItem, error) {
	return s.items.List(ctx, filter)
}

func (s *itemService) ListCategories(ctx context.Context, propertyID int64) ([]string, error) {
	return s.items.ListCategories(ctx, propertyID)
}

// Update replaces the mutable fields of an item and refreshes its timestamp.
func (s *itemService) Update(ctx context.Context, id int64, upd domain.ItemUpdate) (*domain.ChecklistItem, error) {
	if !upd.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown item status %q", domain.ErrValidation, upd.Status)
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Status = upd.Status
	item.ResponsibleParty = upd.ResponsibleParty
	item.DueDate = upd.DueDate
	item.Notes = upd.Notes
	item.Normalize()
	item.UpdatedAt = s.opts.nowUTC()

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id int64) error {
	return s.items.Delete(ctx, id)
}
