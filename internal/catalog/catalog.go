package catalog

import (
	"fmt"

	"github.com/keepsake-audio/store-backend/internal/config"
	"github.com/keepsake-audio/store-backend/internal/models"
)

// Package identifiers accepted on the checkout endpoint. The storefront
// hardcodes the same three values.
const (
	BasicPackageID   = "basic-package"
	PremiumPackageID = "premium-package"
	DeluxePackageID  = "deluxe-package"
)

// Catalog is the read-only set of purchasable packages, built once at
// startup. Lookup fails closed: an unknown id never falls back to a
// default price.
type Catalog struct {
	packages map[string]models.Package
	order    []string
}

func New(prices config.PriceConfig) (*Catalog, error) {
	rows := []models.Package{
		{
			ID:              BasicPackageID,
			DisplayName:     "Basic Memory Package",
			Description:     "For 1 person's voice. Up to 10 minutes of recording. Handcrafted card with QR code.",
			ProviderPriceID: prices.Basic,
		},
		{
			ID:              PremiumPackageID,
			DisplayName:     "Premium Memory Package",
			Description:     "For 1 person's voice. Up to 30 minutes of audio. QR keychain. Background music. Higher quality.",
			ProviderPriceID: prices.Premium,
		},
		{
			ID:              DeluxePackageID,
			DisplayName:     "Deluxe Memory Package",
			Description:     "For 2 people's voices. Up to 60 minutes. Custom memorabilia. Highest quality audio.",
			ProviderPriceID: prices.Deluxe,
		},
	}

	c := &Catalog{packages: make(map[string]models.Package, len(rows))}
	seen := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.ProviderPriceID == "" {
			return nil, fmt.Errorf("package %s has no price ID configured", row.ID)
		}
		if other, ok := seen[row.ProviderPriceID]; ok {
			return nil, fmt.Errorf("packages %s and %s share price ID %s", other, row.ID, row.ProviderPriceID)
		}
		seen[row.ProviderPriceID] = row.ID
		c.packages[row.ID] = row
		c.order = append(c.order, row.ID)
	}

	return c, nil
}

func (c *Catalog) Lookup(packageID string) (models.Package, error) {
	pkg, ok := c.packages[packageID]
	if !ok {
		return models.Package{}, fmt.Errorf("%w: %q", models.ErrPackageNotFound, packageID)
	}
	return pkg, nil
}

// All returns the packages in display order for the storefront listing.
func (c *Catalog) All() []models.Package {
	out := make([]models.Package, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.packages[id])
	}
	return out
}
