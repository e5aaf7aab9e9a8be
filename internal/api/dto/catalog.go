package dto

import (
	"github.com/currybox/currybox/internal/domain/catalog"
)

// CatalogResponse is the full externally supplied menu
type CatalogResponse struct {
	Catalog *catalog.Catalog `json:"catalog"`
}

// CatalogItemsResponse is one category's item list
type CatalogItemsResponse struct {
	Items []catalog.Item `json:"items"`
}
