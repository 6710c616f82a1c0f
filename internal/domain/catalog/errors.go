package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrCatalogRead      = errors.New("catalog read failed")
	ErrCatalogParse     = errors.New("catalog parse failed")
	ErrInvalidCatalog   = errors.New("invalid catalog")
	ErrZeroRequirement  = errors.New("zero member requirement")
	ErrUnresolvableUnit = errors.New("unresolvable unit")
)
