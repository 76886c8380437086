package utils

import (
	"bytes"
	_ "embed"
	"html/template"

	"transportbill/models"
)

//go:embed templates/bill_template.html
var billTemplateHTML string

var billTemplate = template.Must(template.New("bill").Parse(billTemplateHTML))

// DefaultCopyTitles is used when no copies are configured.
var DefaultCopyTitles = []string{"Original"}

const pageHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
@page { size: A4; margin: 20px; }
body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; margin: 0; padding: 0; }
.bill-copy { page-break-inside: avoid; page-break-after: always; }
.bill-copy:last-child { page-break-after: auto; }
.copy-title { text-align: right; font-style: italic; }
table { width: 100%; border-collapse: collapse; }
.header h1 { margin: 0 0 4px; font-size: 20px; }
.meta { text-align: right; vertical-align: top; }
.items { margin-top: 12px; }
.items th, .items td { border: 1px solid #333; padding: 4px; }
.num { text-align: right; }
.grand td { font-weight: bold; }
.words { margin-top: 10px; }
.sign { margin-top: 40px; text-align: right; }
</style>
</head>
<body>`

const pageTail = `</body></html>`

// RenderBillHTML renders one page section per copy title into a complete
// HTML document.
func RenderBillHTML(doc models.PrintableDocument, copies []string) (string, error) {
	if len(copies) == 0 {
		copies = DefaultCopyTitles
	}

	var out bytes.Buffer
	out.WriteString(pageHead)
	for _, title := range copies {
		doc.CopyTitle = title
		out.WriteString("<div class='bill-copy'>")
		if err := billTemplate.Execute(&out, doc); err != nil {
			return "", err
		}
		out.WriteString("</div>")
	}
	out.WriteString(pageTail)
	return out.String(), nil
}
