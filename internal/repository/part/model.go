package repository

import (
	"time"
)

type PartEntity struct {
	ID               string         `bson:"_id"`
	Name             string         `bson:"name"`
	NameNorm         string         `bson:"name_norm"`
	Category         string         `bson:"category"`
	Price            float64        `bson:"price"`
	Wattage          float64        `bson:"wattage"`
	Manufacturer     string         `bson:"manufacturer,omitempty"`
	ManufacturerNorm string         `bson:"manufacturer_norm,omitempty"`
	InStock          bool           `bson:"in_stock"`
	Store            string         `bson:"store,omitempty"`
	Description      string         `bson:"description,omitempty"`
	Specs            map[string]any `bson:"specs,omitempty"`
	// Insertion sequence, keeps catalog order stable across reads.
	Seq       int64      `bson:"seq"`
	CreatedAt *time.Time `bson:"created_at,omitempty"`
}
