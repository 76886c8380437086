package utils

import (
	"strconv"

	"transportbill/models"
)

// BuildPrintable lays out a bill for printing. It uses the stored totals as
// they are; nothing is recomputed from the items.
func BuildPrintable(bill *models.Bill, issuer models.Issuer) models.PrintableDocument {
	billNo := "-"
	if bill.ID > 0 {
		billNo = strconv.FormatInt(bill.ID, 10)
	}

	rows := make([]models.PrintableRow, len(bill.Items))
	for i, it := range bill.Items {
		date := it.Date
		if date == "" {
			date = bill.BillDate
		}
		rows[i] = models.PrintableRow{
			Sr:          i + 1,
			Date:        FormatDate(date),
			ConNo:       it.ConNo,
			Consignee:   it.Consignee,
			Weight:      it.Weight,
			Destination: it.Destination,
			Amount:      FormatCurrency(it.Amount),
		}
	}

	return models.PrintableDocument{
		Issuer:        issuer,
		Contacts:      issuer.Contacts(),
		BillNo:        billNo,
		Date:          FormatDate(bill.BillDate),
		GSTPercent:    FormatPercent(bill.GSTPercent),
		Total:         FormatCurrency(bill.Total),
		GSTAmount:     FormatCurrency(bill.GSTAmount),
		GrandTotal:    FormatCurrency(bill.GrandTotal),
		AmountInWords: AmountInWords(bill.GrandTotal),
		Rows:          rows,
	}
}
