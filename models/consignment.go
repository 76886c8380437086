package models

import "github.com/shopspring/decimal"

// ConsignmentItem is one billed line of a consignment (docket) on a bill.
type ConsignmentItem struct {
	ID          int64           `json:"id,omitempty" db:"id"`
	BillID      int64           `json:"bill_id,omitempty" db:"bill_id"`
	Seq         int             `json:"seq" db:"seq"`
	Date        string          `json:"date" db:"date" validate:"omitempty,datetime=2006-01-02"`
	ConNo       string          `json:"con_no" db:"con_no" validate:"required,max=64"`
	Consignee   string          `json:"consignee" db:"consignee" validate:"required,max=200"`
	Weight      string          `json:"weight" db:"weight" validate:"weight"`
	Destination string          `json:"destination" db:"destination" validate:"required,max=200"`
	Amount      decimal.Decimal `json:"amount" db:"amount" validate:"gte=0"`
}

// Normalize trims the free-text fields the way the entry form does.
func (c *ConsignmentItem) Normalize() {
	c.Date = trim(c.Date)
	c.ConNo = trim(c.ConNo)
	c.Consignee = trim(c.Consignee)
	c.Weight = trim(c.Weight)
	c.Destination = trim(c.Destination)
}

// Validate normalizes the item and checks every required field.
func (c *ConsignmentItem) Validate() error {
	c.Normalize()
	return validateStruct(c)
}

// ConsignmentInput is the raw entry-form shape of an item: amount and weight
// still arrive as text.
type ConsignmentInput struct {
	Date        string `json:"date"`
	ConNo       string `json:"con_no"`
	Consignee   string `json:"consignee"`
	WeightValue string `json:"weight_value"`
	WeightUnit  string `json:"weight_unit"`
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
}

// ToItem parses the input into a validated ConsignmentItem.
func (in ConsignmentInput) ToItem() (ConsignmentItem, error) {
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return ConsignmentItem{}, err
	}
	item := ConsignmentItem{
		Date:        in.Date,
		ConNo:       in.ConNo,
		Consignee:   in.Consignee,
		Weight:      FormatWeight(in.WeightValue, in.WeightUnit),
		Destination: in.Destination,
		Amount:      amount,
	}
	if err := item.Validate(); err != nil {
		return ConsignmentItem{}, err
	}
	return item, nil
}
