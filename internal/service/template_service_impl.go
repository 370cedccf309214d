package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ddtrack/internal/db"
	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/repository"
)

type templateService struct {
	templates repository.TemplateRepo
	uow       db.UnitOfWork
	opts      options
}

func NewTemplateService(templates repository.TemplateRepo, uow db.UnitOfWork, opts ...Option) TemplateService {
	return &templateService{templates: templates, uow: uow, opts: newOptions(opts)}
}

// Create stores a new template. Only migration seeds the default template,
// so IsDefault is always cleared.
func (s *templateService) Create(ctx context.Context, t *domain.Template) error {
	t.Name = strings.TrimSpace(t.Name)
	if err := t.Validate(); err != nil {
		return err
	}
	t.IsDefault = false
	t.CreatedAt = s.opts.nowUTC()
	return s.templates.Create(ctx, t)
}

func (s *templateService) GetByID(ctx context.Context, id int64) (*domain.Template, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *templateService) List(ctx context.Context) ([]*domain.Template, error) {
	return s.templates.List(ctx)
}

func (s *templateService) ListItems(ctx context.Context, templateID int64) ([]*domain.TemplateItem, error) {
	if _, err := s.templates.GetByID(ctx, templateID); err != nil {
		return nil, err
	}
	return s.templates.ListItems(ctx, templateID)
}

func (s *templateService) AddItem(ctx context.Context, item *domain.TemplateItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if _, err := s.templates.GetByID(ctx, item.TemplateID); err != nil {
		return err
	}
	return s.templates.AddItem(ctx, item)
}

// Delete removes a template and its items. The default template is refused
// here and again by the store.
func (s *templateService) Delete(ctx context.Context, id int64) error {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.IsDefault {
		return fmt.Errorf("%w: default template %q cannot be deleted", domain.ErrConstraintViolation, t.Name)
	}
	return s.templates.Delete(ctx, id)
}

func (s *templateService) SaveAsTemplate(ctx context.Context, propertyID int64, name, description string) (tmpl *domain.Template, err error) {
	startedAt := time.Now()
	fields := map[string]any{"property_id": propertyID, "template": name}
	defer func() {
		finishUseCase(ctx, s.opts.observer, "save-as-template", startedAt, fields, err)
	}()

	tmpl = &domain.Template{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if err = tmpl.Validate(); err != nil {
		return nil, err
	}
	now := s.opts.now()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProperties := repository.NewSQLitePropertyRepo(tx)
		txItems := repository.NewSQLiteItemRepo(tx)
		txTemplates := repository.NewSQLiteTemplateRepo(tx)

		property, err := txProperties.GetByID(ctx, propertyID)
		if err != nil {
			return err
		}
		tmpl.AssetType = string(property.AssetType)
		if tmpl.AssetType == "" {
			tmpl.AssetType = domain.TemplateAssetAll
		}
		tmpl.CreatedAt = now.UTC()

		items, err := txItems.List(ctx, domain.ItemFilter{PropertyID: propertyID})
		if err != nil {
			return err
		}
		if err := txTemplates.Create(ctx, tmpl); err != nil {
			return err
		}
		for _, item := range items {
			ti := &domain.TemplateItem{
				TemplateID:     tmpl.ID,
				Category:       item.Category,
				ItemName:       item.ItemName,
				Notes:          item.Notes,
				DefaultDueDays: domain.OffsetFor(item.DueDate, now),
			}
			if err := txTemplates.AddItem(ctx, ti); err != nil {
				return fmt.Errorf("capturing %q: %w", item.ItemName, err)
			}
		}
		fields["item_count"] = len(items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *templateService) ApplyTemplate(ctx context.Context, propertyID, templateID int64) (created int, err error) {
	startedAt := time.Now()
	fields := map[string]any{"property_id": propertyID, "template_id": templateID}
	defer func() {
		fields["item_count"] = created
		finishUseCase(ctx, s.opts.observer, "apply-template", startedAt, fields, err)
	}()

	now := s.opts.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProperties := repository.NewSQLitePropertyRepo(tx)
		txItems := repository.NewSQLiteItemRepo(tx)
		txTemplates := repository.NewSQLiteTemplateRepo(tx)

		if _, err := txProperties.GetByID(ctx, propertyID); err != nil {
			return err
		}
		if _, err := txTemplates.GetByID(ctx, templateID); err != nil {
			return err
		}
		templateItems, err := txTemplates.ListItems(ctx, templateID)
		if err != nil {
			return err
		}
		for _, ti := range templateItems {
			if err := txItems.Create(ctx, ti.Instantiate(propertyID, now)); err != nil {
				return fmt.Errorf("instantiating %q: %w", ti.ItemName, err)
			}
		}
		created = len(templateItems)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
