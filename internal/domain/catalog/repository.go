package catalog

import "context"

// Repository defines read-only access to the externally supplied catalog
type Repository interface {
	GetCatalog(ctx context.Context) (*Catalog, error)
}
