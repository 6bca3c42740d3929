package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"bar-tpv/internal/model"

	"github.com/rs/zerolog"
)

//go:embed seed.json
var embeddedSeed []byte

// seedFile is the on-disk/embedded shape of the catalog seed data.
type seedFile struct {
	Categories []model.Category `json:"categories"`
	Products   []model.Product  `json:"products"`
}

// Load builds a catalog from the seed file at path, or from the embedded
// seed when path is empty.
func Load(path string, logger zerolog.Logger) (Catalog, error) {
	data := embeddedSeed
	source := "embedded"

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog seed %s: %w", path, err)
		}
		data = b
		source = path
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog seed %s: %w", source, err)
	}

	if len(seed.Products) == 0 {
		return nil, fmt.Errorf("catalog seed %s contains no products", source)
	}

	for i, p := range seed.Products {
		if p.Price < 0 {
			return nil, fmt.Errorf("catalog seed %s: product %d (%s) has negative price", source, i, p.Name)
		}
	}

	logger.Debug().Str("source", source).Msg("catalog seed read")
	return New(seed.Products, seed.Categories, logger), nil
}
