package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// GenerateBillPDF prints a rendered bill page to an A4 PDF with headless Chrome.
func GenerateBillPDF(ctx context.Context, html string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "bill_*.html")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	cctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(cctx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("printing pdf: %w", err)
	}
	return pdfBuf, nil
}

// SavePDF writes pdf under dir as bill_<billNo>_<timestamp>.pdf and returns
// the path.
func SavePDF(dir, billNo string, pdf []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("bill_%s_%s.pdf", billNo, time.Now().Format("20060102150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
