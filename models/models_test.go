package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem(conNo string, amount string) ConsignmentItem {
	return ConsignmentItem{
		Date:        "2024-05-01",
		ConNo:       conNo,
		Consignee:   "Sharma Traders",
		Weight:      "12 kg",
		Destination: "Indore",
		Amount:      decimal.RequireFromString(amount),
	}
}

func TestConsignmentInputToItem(t *testing.T) {
	item, err := ConsignmentInput{
		Date:        "2024-05-01",
		ConNo:       " 101 ",
		Consignee:   "Sharma Traders",
		WeightValue: "2.5",
		WeightUnit:  "quintal",
		Destination: "Indore ",
		Amount:      "450.50",
	}.ToItem()
	require.NoError(t, err)
	assert.Equal(t, "101", item.ConNo)
	assert.Equal(t, "2.5 quintal", item.Weight)
	assert.Equal(t, "Indore", item.Destination)
	assert.True(t, item.Amount.Equal(decimal.RequireFromString("450.5")))
}

func TestConsignmentInputRejectsBadAmount(t *testing.T) {
	for _, amount := range []string{"", "abc", "NaN", "Inf", "-5"} {
		_, err := ConsignmentInput{ConNo: "1", Consignee: "A", Destination: "B", Amount: amount}.ToItem()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "amount %q", amount)
		assert.Equal(t, "amount", verr.Field)
	}
}

func TestConsignmentItemValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*ConsignmentItem)
		field string
	}{
		{"missing con no", func(c *ConsignmentItem) { c.ConNo = "  " }, "con_no"},
		{"missing consignee", func(c *ConsignmentItem) { c.Consignee = "" }, "consignee"},
		{"missing destination", func(c *ConsignmentItem) { c.Destination = "" }, "destination"},
		{"bad date", func(c *ConsignmentItem) { c.Date = "01-05-2024" }, "date"},
		{"bad weight unit", func(c *ConsignmentItem) { c.Weight = "3 tons" }, "weight"},
		{"negative amount", func(c *ConsignmentItem) { c.Amount = decimal.NewFromInt(-1) }, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem("1", "10")
			tt.edit(&item)
			var verr *ValidationError
			require.ErrorAs(t, item.Validate(), &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	item := validItem("1", "10")
	item.Date = ""
	item.Weight = ""
	require.NoError(t, item.Validate())
}

func TestParseWeight(t *testing.T) {
	v, u, err := ParseWeight("12.5 kg")
	require.NoError(t, err)
	assert.Equal(t, "12.5", v)
	assert.Equal(t, "kg", u)

	v, u, err = ParseWeight("40")
	require.NoError(t, err)
	assert.Equal(t, "40", v)
	assert.Empty(t, u)

	_, _, err = ParseWeight("heavy kg")
	assert.Error(t, err)

	assert.Equal(t, "3 quintal", FormatWeight(" 3 ", "quintal"))
	assert.Equal(t, "3", FormatWeight("3", ""))
	assert.Equal(t, "", FormatWeight("", "kg"))
}

func TestComputeTotals(t *testing.T) {
	items := []ConsignmentItem{validItem("1", "400"), validItem("2", "350.25"), validItem("3", "249.75")}
	totals := ComputeTotals(items, decimal.NewFromInt(18))
	assert.Equal(t, "1000.00", totals.Total.StringFixed(2))
	assert.Equal(t, "180.00", totals.GSTAmount.StringFixed(2))
	assert.Equal(t, "1180.00", totals.GrandTotal.StringFixed(2))

	totals = ComputeTotals(nil, decimal.NewFromInt(18))
	assert.True(t, totals.GrandTotal.IsZero())

	totals = ComputeTotals([]ConsignmentItem{validItem("1", "99.99")}, decimal.RequireFromString("2.5"))
	assert.Equal(t, "2.50", totals.GSTAmount.StringFixed(2))
	assert.Equal(t, "102.49", totals.GrandTotal.StringFixed(2))
}

func TestBillSnapshotValidate(t *testing.T) {
	snap := BillSnapshot{BillDate: "2024-05-01", Items: []ConsignmentItem{validItem("1", "10")}}
	require.NoError(t, snap.Validate())

	empty := BillSnapshot{BillDate: "2024-05-01"}
	var verr *ValidationError
	require.ErrorAs(t, empty.Validate(), &verr)
	assert.Equal(t, "items", verr.Field)

	noDate := BillSnapshot{Items: []ConsignmentItem{validItem("1", "10")}}
	require.ErrorAs(t, noDate.Validate(), &verr)
	assert.Equal(t, "bill_date", verr.Field)

	badItem := BillSnapshot{BillDate: "2024-05-01", Items: []ConsignmentItem{validItem("", "10")}}
	require.ErrorAs(t, badItem.Validate(), &verr)
	assert.Equal(t, "items[0].con_no", verr.Field)

	negative := BillSnapshot{BillDate: "2024-05-01", GSTPercent: decimal.NewFromInt(-1), Items: []ConsignmentItem{validItem("1", "10")}}
	require.ErrorAs(t, negative.Validate(), &verr)
	assert.Equal(t, "gst_percent", verr.Field)

	repeated := BillSnapshot{BillDate: "2024-05-01", Items: []ConsignmentItem{
		validItem("7", "10"), validItem("8", "10"), validItem(" 7 ", "20"),
	}}
	var dup *DuplicateConNoError
	require.ErrorAs(t, repeated.Validate(), &dup)
	assert.Equal(t, "7", dup.ConNo)
	assert.Equal(t, 0, dup.Index)
}

func TestItemDateDefaultsToBillDate(t *testing.T) {
	snap := BillSnapshot{BillDate: "2024-05-01"}
	assert.Equal(t, "2024-05-01", snap.ItemDate(ConsignmentItem{}))
	assert.Equal(t, "2024-04-30", snap.ItemDate(ConsignmentItem{Date: "2024-04-30"}))
}

func TestParseLookupCategory(t *testing.T) {
	c, err := ParseLookupCategory("consignee")
	require.NoError(t, err)
	assert.Equal(t, LookupConsignee, c)

	_, err = ParseLookupCategory("vehicle")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = NormalizeLookupName("   ")
	require.ErrorAs(t, err, &verr)
}

func TestWrapStorage(t *testing.T) {
	assert.NoError(t, WrapStorage("op", nil))

	base := errors.New("disk full")
	err := WrapStorage("commit bill", base)
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "commit bill", se.Op)
	assert.ErrorIs(t, err, base)

	assert.Same(t, err, WrapStorage("outer", err))
}

func TestPresentCopiesItems(t *testing.T) {
	b := &Bill{ID: 7, BillDate: "2024-05-01", Items: []ConsignmentItem{validItem("1", "10")}}
	p := Present(b)
	p.Items[0].ConNo = "changed"
	assert.Equal(t, "1", b.Items[0].ConNo)
	assert.Equal(t, 1, p.ItemCount)
	assert.Equal(t, int64(7), p.AsBill().ID)
}

func TestIssuerContacts(t *testing.T) {
	i := Issuer{Mobile: []MobileEntry{{Number: "98260", Label: "Office"}, {Number: "94250"}}}
	assert.Equal(t, "98260(Office), 94250", i.Contacts())
}
