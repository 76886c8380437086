package repository

import (
	"context"

	"transportbill/models"
)

// LookupStore keeps the known consignee and destination names offered as
// suggestions on the entry form.
type LookupStore interface {
	// AddValue inserts name into category; an existing name is a no-op.
	AddValue(ctx context.Context, category models.LookupCategory, name string) error
	// ListValues returns the names of category in insertion order.
	ListValues(ctx context.Context, category models.LookupCategory) ([]string, error)
}
