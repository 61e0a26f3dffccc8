package catalog

import "context"

// Unit is one physical plant unit as reported by the plant-unit
// catalog, e.g. {Category: "Cement Mill", Unit: "Mill 1"}.
type Unit struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

// Catalog lists the plant units known to the site. The catalog is an
// external collaborator of the permission engine: accessd reads it to
// expand category-wide grants into concrete unit entries but does not
// own its lifecycle.
type Catalog interface {
	Units(ctx context.Context) ([]Unit, error)
}
