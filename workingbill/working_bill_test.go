package workingbill

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transportbill/models"
)

func item(conNo, amount string) models.ConsignmentItem {
	return models.ConsignmentItem{
		ConNo:       conNo,
		Consignee:   "Sharma Traders",
		Weight:      "3 quintal",
		Destination: "Bhopal",
		Amount:      decimal.RequireFromString(amount),
	}
}

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intp(i int) *int { return &i }

func conNos(items []models.ConsignmentItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ConNo
	}
	return out
}

func TestAddAndRemoveKeepCountAndSum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := New()
	adds, removes := 0, 0
	ref := decimal.Zero

	for step := 0; step < 500; step++ {
		if w.Len() > 0 && rng.Intn(3) == 0 {
			i := rng.Intn(w.Len())
			ref = ref.Sub(w.Items()[i].Amount)
			require.NoError(t, w.RemoveItem(i))
			removes++
			continue
		}
		amount := decimal.New(rng.Int63n(100000), -2)
		require.NoError(t, w.AddOrUpdateItem(item(fmt.Sprintf("C%d", step), amount.String()), nil))
		ref = ref.Add(amount)
		adds++
	}

	assert.Equal(t, adds-removes, w.Len())
	assert.True(t, ref.Equal(w.ComputeTotals(decimal.Zero).Total))
	for i, it := range w.Items() {
		assert.Equal(t, i, it.Seq)
	}
}

func TestAddRejectsDuplicateConNo(t *testing.T) {
	w := New()
	require.NoError(t, w.AddOrUpdateItem(item("101", "10"), nil))
	require.NoError(t, w.AddOrUpdateItem(item("102", "20"), nil))
	before := w.Items()

	err := w.AddOrUpdateItem(item(" 101 ", "30"), nil)
	var dup *models.DuplicateConNoError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "101", dup.ConNo)
	assert.Equal(t, 0, dup.Index)
	assert.Equal(t, before, w.Items())
}

func TestUpdateInPlace(t *testing.T) {
	w := New()
	require.NoError(t, w.AddOrUpdateItem(item("101", "10"), nil))
	require.NoError(t, w.AddOrUpdateItem(item("102", "20"), nil))
	require.NoError(t, w.AddOrUpdateItem(item("103", "30"), nil))

	// keeping its own con no is fine
	require.NoError(t, w.AddOrUpdateItem(item("102", "25"), intp(1)))
	// renaming to a free con no is fine
	require.NoError(t, w.AddOrUpdateItem(item("202", "25"), intp(1)))
	assert.Equal(t, []string{"101", "202", "103"}, conNos(w.Items()))

	// colliding with another line is not
	var dup *models.DuplicateConNoError
	require.ErrorAs(t, w.AddOrUpdateItem(item("103", "25"), intp(1)), &dup)
	assert.Equal(t, 2, dup.Index)

	var ierr *models.IndexError
	require.ErrorAs(t, w.AddOrUpdateItem(item("900", "1"), intp(3)), &ierr)
	require.ErrorAs(t, w.AddOrUpdateItem(item("900", "1"), intp(-1)), &ierr)
	assert.Equal(t, 3, w.Len())
}

func TestAddValidatesItem(t *testing.T) {
	w := New()
	bad := item("", "10")
	var verr *models.ValidationError
	require.ErrorAs(t, w.AddOrUpdateItem(bad, nil), &verr)
	assert.Equal(t, "con_no", verr.Field)
	assert.Zero(t, w.Len())
}

func TestRemoveItem(t *testing.T) {
	w := New()
	var ierr *models.IndexError
	require.ErrorAs(t, w.RemoveItem(0), &ierr)

	for _, c := range []string{"a", "b", "c", "d"} {
		require.NoError(t, w.AddOrUpdateItem(item(c, "1"), nil))
	}

	_, err := w.StartEdit(2)
	require.NoError(t, err)

	require.NoError(t, w.RemoveItem(0))
	idx, ok := w.EditIndex()
	require.True(t, ok)
	assert.Equal(t, 1, idx, "pointer follows its line")
	assert.Equal(t, []string{"b", "c", "d"}, conNos(w.Items()))

	require.NoError(t, w.RemoveItem(2))
	idx, ok = w.EditIndex()
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	require.NoError(t, w.RemoveItem(1))
	_, ok = w.EditIndex()
	assert.False(t, ok, "removing the edited line clears the pointer")

	require.ErrorAs(t, w.RemoveItem(5), &ierr)
	assert.Equal(t, 5, ierr.Index)
	assert.Equal(t, 1, ierr.Len)
}

func TestStartEditAndSave(t *testing.T) {
	w := New()
	require.NoError(t, w.AddOrUpdateItem(item("101", "10"), nil))
	require.NoError(t, w.AddOrUpdateItem(item("102", "20"), nil))

	got, err := w.StartEdit(0)
	require.NoError(t, err)
	assert.Equal(t, "101", got.ConNo)

	got.Amount = decimal.NewFromInt(15)
	require.NoError(t, w.SaveItem(got))
	_, ok := w.EditIndex()
	assert.False(t, ok)
	assert.True(t, w.Items()[0].Amount.Equal(decimal.NewFromInt(15)))

	require.NoError(t, w.SaveItem(item("103", "5")))
	assert.Equal(t, 3, w.Len())

	_, err = w.StartEdit(1)
	require.NoError(t, err)
	w.CancelEdit()
	require.NoError(t, w.SaveItem(item("104", "5")))
	assert.Equal(t, 4, w.Len())
}

func TestComputeTotalsFollowsMutation(t *testing.T) {
	w := New()
	require.NoError(t, w.AddOrUpdateItem(item("1", "400"), nil))
	require.NoError(t, w.AddOrUpdateItem(item("2", "600"), nil))

	totals := w.ComputeTotals(pct("18"))
	assert.True(t, totals.Total.Equal(pct("1000")))
	assert.True(t, totals.GSTAmount.Equal(pct("180")))
	assert.True(t, totals.GrandTotal.Equal(pct("1180")))

	require.NoError(t, w.RemoveItem(0))
	totals = w.ComputeTotals(pct("5"))
	assert.True(t, totals.Total.Equal(pct("600")))
	assert.True(t, totals.GSTAmount.Equal(pct("30")))
	assert.True(t, totals.GrandTotal.Equal(pct("630")))
}

func TestToCommitSnapshot(t *testing.T) {
	w := New()
	var verr *models.ValidationError

	_, err := w.ToCommitSnapshot("2024-05-01", pct("18"))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)

	require.NoError(t, w.AddOrUpdateItem(item("1", "1000"), nil))

	_, err = w.ToCommitSnapshot(" ", pct("18"))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "bill_date", verr.Field)

	_, err = w.ToCommitSnapshot("2024-05-01", pct("-1"))
	require.ErrorAs(t, err, &verr)

	snap, err := w.ToCommitSnapshot("2024-05-01", pct("18"))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", snap.BillDate)
	assert.True(t, snap.GrandTotal.Equal(pct("1180")))
	require.NoError(t, snap.Validate())

	// the snapshot is detached from the draft
	snap.Items[0].ConNo = "changed"
	assert.Equal(t, "1", w.Items()[0].ConNo)
}

func TestResetClearsEverything(t *testing.T) {
	w := New()
	require.NoError(t, w.AddOrUpdateItem(item("1", "1"), nil))
	_, err := w.StartEdit(0)
	require.NoError(t, err)

	w.Reset()
	assert.Zero(t, w.Len())
	_, ok := w.EditIndex()
	assert.False(t, ok)
	assert.NotNil(t, w.Items())
}

func presented() models.PresentedBill {
	a, b := item("P1", "250"), item("P2", "750")
	a.ID, a.BillID, b.ID, b.BillID, b.Seq = 11, 7, 12, 7, 1
	return models.PresentedBill{
		ID:         7,
		BillDate:   "2024-04-02",
		GSTPercent: pct("12"),
		Total:      pct("1000"),
		GSTAmount:  pct("120"),
		GrandTotal: pct("1120"),
		ItemCount:  2,
		Items:      []models.ConsignmentItem{a, b},
	}
}

func TestLoadReadOnlyLocksUntilReset(t *testing.T) {
	w := New()
	require.NoError(t, w.AddOrUpdateItem(item("draft", "5"), nil))

	w.LoadReadOnly(presented())
	assert.True(t, w.Locked())
	assert.Equal(t, []string{"P1", "P2"}, conNos(w.Items()), "loading replaces, it does not merge")

	assert.True(t, errors.Is(w.AddOrUpdateItem(item("x", "1"), nil), models.ErrDraftLocked))
	assert.True(t, errors.Is(w.RemoveItem(0), models.ErrDraftLocked))
	_, err := w.StartEdit(0)
	assert.True(t, errors.Is(err, models.ErrDraftLocked))
	_, err = w.ToCommitSnapshot("2024-05-01", pct("0"))
	assert.True(t, errors.Is(err, models.ErrDraftLocked))

	state := w.State()
	assert.Equal(t, int64(7), state.ViewingBillID)
	assert.Equal(t, "2024-04-02", state.BillDate)

	bill, err := w.Preview("", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, int64(7), bill.ID)
	assert.True(t, bill.GSTAmount.Equal(pct("120")), "stored figures are printed as-is")

	w.Reset()
	assert.False(t, w.Locked())
	assert.Zero(t, w.Len())
	require.NoError(t, w.AddOrUpdateItem(item("x", "1"), nil))
}

func TestStartFromCopiesEditableLines(t *testing.T) {
	w := New()
	w.StartFrom(presented())
	assert.False(t, w.Locked())

	items := w.Items()
	require.Len(t, items, 2)
	assert.Zero(t, items[0].ID)
	assert.Zero(t, items[1].BillID)

	require.NoError(t, w.AddOrUpdateItem(item("P3", "1"), nil))
	snap, err := w.ToCommitSnapshot("2024-05-01", pct("12"))
	require.NoError(t, err)
	assert.Len(t, snap.Items, 3)
}

func TestPreviewDraft(t *testing.T) {
	w := New()
	require.NoError(t, w.AddOrUpdateItem(item("1", "99.99"), nil))

	bill, err := w.Preview("2024-05-01", pct("2.5"))
	require.NoError(t, err)
	assert.Zero(t, bill.ID)
	assert.True(t, bill.GSTAmount.Equal(pct("2.50")))
	assert.True(t, bill.GrandTotal.Equal(pct("102.49")))

	var verr *models.ValidationError
	_, err = w.Preview("", pct("2.5"))
	require.ErrorAs(t, err, &verr)
}
