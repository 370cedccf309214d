package service

import (
	"context"
	"time"

	"github.com/alexanderramin/ddtrack/internal/db"
	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/repository"
)

type propertyService struct {
	properties repository.PropertyRepo
	uow        db.UnitOfWork
	opts       options
}

func NewPropertyService(properties repository.PropertyRepo, uow db.UnitOfWork, opts ...Option) PropertyService {
	return &propertyService{properties: properties, uow: uow, opts: newOptions(opts)}
}

func (s *propertyService) Create(ctx context.Context, p *domain.Property) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	now := s.opts.nowUTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.properties.Create(ctx, p)
}

func (s *propertyService) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	return s.properties.GetByID(ctx, id)
}

func (s *propertyService) List(ctx context.Context, activeOnly bool) ([]*domain.Property, error) {
	return s.properties.List(ctx, activeOnly)
}

func (s *propertyService) Update(ctx context.Context, p *domain.Property) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = s.opts.nowUTC()
	return s.properties.Update(ctx, p)
}

func (s *propertyService) Delete(ctx context.Context, id int64) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"property_id": id}
	defer func() {
		finishUseCase(ctx, s.opts.observer, "delete-property", startedAt, fields, err)
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProperties := repository.NewSQLitePropertyRepo(tx)
		txItems := repository.NewSQLiteItemRepo(tx)

		if _, err := txProperties.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := txItems.DeleteByProperty(ctx, id)
		if err != nil {
			return err
		}
		fields["items_deleted"] = n
		return txProperties.Delete(ctx, id)
	})
}
