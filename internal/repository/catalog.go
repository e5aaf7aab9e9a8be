package repository

import (
	"context"
	"os"
	"sync"

	"github.com/currybox/currybox/internal/config"
	"github.com/currybox/currybox/internal/domain/catalog"
	ierr "github.com/currybox/currybox/internal/errors"
	"github.com/currybox/currybox/internal/logger"
	"gopkg.in/yaml.v3"
)

// fileCatalogRepository serves the externally supplied menu from a YAML file.
// The catalog is read-only for the lifetime of the process, so it is loaded
// once and shared without further synchronization.
type fileCatalogRepository struct {
	path   string
	logger *logger.Logger

	once    sync.Once
	catalog *catalog.Catalog
	loadErr error
}

// NewCatalogRepository creates the file-backed catalog adapter
func NewCatalogRepository(cfg *config.Configuration, logger *logger.Logger) catalog.Repository {
	return &fileCatalogRepository{
		path:   cfg.Catalog.Path,
		logger: logger,
	}
}

func (r *fileCatalogRepository) GetCatalog(ctx context.Context) (*catalog.Catalog, error) {
	r.once.Do(func() {
		data, err := os.ReadFile(r.path)
		if err != nil {
			r.loadErr = ierr.WithError(err).
				WithHint("The menu is temporarily unavailable").
				WithReportableDetails(map[string]any{"path": r.path}).
				Mark(ierr.ErrSystem)
			return
		}

		var c catalog.Catalog
		if err := yaml.Unmarshal(data, &c); err != nil {
			r.loadErr = ierr.WithError(err).
				WithHint("The menu is temporarily unavailable").
				Mark(ierr.ErrSystem)
			return
		}

		r.catalog = &c
		r.logger.Infow("catalog loaded",
			"path", r.path,
			"bunny_fillings", len(c.BunnyFillings),
			"family_curries", len(c.FamilyCurries),
			"sides", len(c.Sides),
			"sauces", len(c.Sauces),
			"drinks", len(c.Drinks),
		)
	})

	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.catalog, nil
}
