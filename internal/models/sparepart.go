package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SparePart is a stocked consumable. Compatibility entries are equipment
// names matched by exact string, not foreign keys.
type SparePart struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	MinQuantity   int                `bson:"min_quantity" json:"min_quantity"`
	Price         float64            `bson:"price" json:"price"`
	Supplier      string             `bson:"supplier" json:"supplier"`
	Compatibility []string           `bson:"compatibility" json:"compatibility"`
}

// BelowThreshold reports whether stock is at or under the reorder threshold.
func (p *SparePart) BelowThreshold() bool {
	return p.Quantity <= p.MinQuantity
}

// Validate checks the fields an operator must supply.
func (p *SparePart) Validate() error {
	if p.Name == "" {
		return errors.New("spare part name is required")
	}
	if p.Quantity < 0 || p.MinQuantity < 0 {
		return errors.New("spare part quantities cannot be negative")
	}
	return nil
}
