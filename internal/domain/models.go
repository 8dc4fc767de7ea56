package domain

import "strconv"

// ProductID identifies a product within the catalog
type ProductID int64

func (id ProductID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ProductType is the catalog's variant tag
type ProductType string

const (
	ProductSimple   ProductType = "simple"
	ProductVariable ProductType = "variable"
	ProductGrouped  ProductType = "grouped"
	ProductExternal ProductType = "external"
)

// Product represents a catalog item
type Product struct {
	ID          ProductID   `json:"id" yaml:"id" validate:"required"`
	Name        string      `json:"name" yaml:"name" validate:"required"`
	Type        ProductType `json:"type" yaml:"type" validate:"required,oneof=simple variable grouped external"`
	IsVariation bool        `json:"is_variation" yaml:"is_variation"`
	ParentID    ProductID   `json:"parent_id,omitempty" yaml:"parent_id,omitempty" validate:"required_if=IsVariation true,excluded_unless=IsVariation true"`
	SKU         string      `json:"sku,omitempty" yaml:"sku,omitempty"`
	Price       string      `json:"price,omitempty" yaml:"price,omitempty"` // display only
}

// Catalog is the on-disk catalog document
type Catalog struct {
	Products []Product `json:"products" yaml:"products" validate:"unique=ID,dive"`
}
