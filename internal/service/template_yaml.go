package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/ddtrack/internal/db"
	"github.com/alexanderramin/ddtrack/internal/domain"
	"github.com/alexanderramin/ddtrack/internal/repository"
)

// templateDocument is the portable YAML form of a template.
type templateDocument struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	AssetType   string                 `yaml:"asset_type,omitempty"`
	Items       []templateDocumentItem `yaml:"items"`
}

type templateDocumentItem struct {
	Category       string `yaml:"category"`
	ItemName       string `yaml:"item_name"`
	Notes          string `yaml:"notes,omitempty"`
	DefaultDueDays int    `yaml:"default_due_days"`
}

func (s *templateService) ExportTemplate(ctx context.Context, templateID int64, w io.Writer) error {
	t, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return err
	}
	items, err := s.templates.ListItems(ctx, templateID)
	if err != nil {
		return err
	}

	doc := templateDocument{
		Name:        t.Name,
		Description: t.Description,
		AssetType:   t.AssetType,
		Items:       make([]templateDocumentItem, 0, len(items)),
	}
	for _, ti := range items {
		doc.Items = append(doc.Items, templateDocumentItem{
			Category:       ti.Category,
			ItemName:       ti.ItemName,
			Notes:          ti.Notes,
			DefaultDueDays: ti.DefaultDueDays,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding template %d: %w", templateID, err)
	}
	return enc.Close()
}

// ImportTemplate reads a YAML template document and stores it as a new,
// non-default template.
func (s *templateService) ImportTemplate(ctx context.Context, r io.Reader) (tmpl *domain.Template, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		finishUseCase(ctx, s.opts.observer, "import-template", startedAt, fields, err)
	}()

	var doc templateDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err = dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty template document", domain.ErrValidation)
		}
		return nil, fmt.Errorf("%w: decoding template: %v", domain.ErrValidation, err)
	}
	fields["template"] = doc.Name
	fields["item_count"] = len(doc.Items)

	tmpl = &domain.Template{
		Name:        strings.TrimSpace(doc.Name),
		Description: strings.TrimSpace(doc.Description),
		AssetType:   strings.TrimSpace(doc.AssetType),
		CreatedAt:   s.opts.nowUTC(),
	}
	if err = tmpl.Validate(); err != nil {
		return nil, err
	}
	items := make([]*domain.TemplateItem, 0, len(doc.Items))
	for i, di := range doc.Items {
		ti := &domain.TemplateItem{
			Category:       strings.TrimSpace(di.Category),
			ItemName:       strings.TrimSpace(di.ItemName),
			Notes:          di.Notes,
			DefaultDueDays: di.DefaultDueDays,
		}
		if err = ti.Validate(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, ti)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTemplates := repository.NewSQLiteTemplateRepo(tx)
		if err := txTemplates.Create(ctx, tmpl); err != nil {
			return err
		}
		for _, ti := range items {
			ti.TemplateID = tmpl.ID
			if err := txTemplates.AddItem(ctx, ti); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}
