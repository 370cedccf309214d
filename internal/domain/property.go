package domain

import (
	"fmt"
	"strings"
	"time"
)

type Property struct {
	ID        int64
	Name      string
	Address   string
	AssetType AssetType
	Status    PropertyStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the property belongs to the portfolio.
func (p *Property) IsActive() bool {
	return p.Status == PropertyActive
}

// Normalize trims fields and fills defaults for asset type and status.
func (p *Property) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	if p.AssetType == "" {
		p.AssetType = AssetOther
	}
	if p.Status == "" {
		p.Status = PropertyActive
	}
}

// Validate checks required fields and enum membership.
func (p *Property) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: property name is required", ErrValidation)
	}
	if !p.AssetType.Valid() {
		return fmt.Errorf("%w: unknown asset type %q", ErrValidation, p.AssetType)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: unknown property status %q", ErrValidation, p.Status)
	}
	return nil
}
