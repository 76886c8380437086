package models

// PrintableDocument is the render-ready form of a bill: every value is
// already formatted for display.
type PrintableDocument struct {
	Issuer        Issuer
	Contacts      string
	BillNo        string // "-" for an unsaved draft
	Date          string // DD-MM-YYYY
	GSTPercent    string // e.g. "18%"
	Total         string
	GSTAmount     string
	GrandTotal    string
	AmountInWords string
	Rows          []PrintableRow
	CopyTitle     string
}

// PrintableRow mirrors one consignment item in print order.
type PrintableRow struct {
	Sr          int
	Date        string
	ConNo       string
	Consignee   string
	Weight      string
	Destination string
	Amount      string
}
