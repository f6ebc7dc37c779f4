package store

import (
	_ "embed"
	"fmt"

	"github.com/peeringlatam/network-planner/internal/store/model"
	"github.com/shopspring/decimal"
	"sigs.k8s.io/yaml"
)

//go:embed seed/catalog.yaml
var catalogYAML []byte

type catalogEntry struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
}

type catalogFile struct {
	Products []catalogEntry `json:"products"`
}

// LoadCatalog parses the bundled product catalog.
func LoadCatalog() ([]model.Product, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(data []byte) ([]model.Product, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for _, e := range f.Products {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog entry without name")
		}
		if e.Price.IsNegative() {
			return nil, fmt.Errorf("catalog entry %q has a negative price", e.Name)
		}
	}
	return toModelProducts(f.Products), nil
}
