package export

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/pkg/logger"
	"go.uber.org/zap"
)

// PDFExporter prints the quote through a headless Chrome.
type PDFExporter struct {
	letterhead Letterhead
	chromePath string
	timeout    time.Duration
	logger     logger.ZapLogger
}

func NewPDFExporter(lh Letterhead, opts Options) *PDFExporter {
	return &PDFExporter{
		letterhead: lh,
		chromePath: opts.ChromePath,
		timeout:    opts.Timeout,
		logger:     opts.Logger,
	}
}

func (e *PDFExporter) Extension() string { return ".pdf" }

func (e *PDFExporter) Export(ctx context.Context, q *Quote, path string) error {
	if q.Empty() {
		return apperror.Export(path, errEmptyQuote)
	}

	html, err := e.RenderHTML(q)
	if err != nil {
		return apperror.Export(path, err)
	}

	pdf, err := e.print(ctx, html)
	if err != nil {
		e.logger.Error("Failed to print quote", zap.String("path", path), zap.Error(err))
		return apperror.Export(path, err)
	}

	err = writeFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	})
	if err != nil {
		return apperror.Export(path, err)
	}

	e.logger.Info("Quote exported",
		zap.String("path", path),
		zap.String("format", FormatPDF),
		zap.String("reference", q.Reference.String()),
		zap.Int("lines", len(q.Lines)),
		zap.Int("bytes", len(pdf)),
	)
	return nil
}

type htmlLine struct {
	Name      string
	Airflow   string
	Unit      string
	Quantity  string
	LineTotal string
}

// RenderHTML renders the quote page that gets printed.
func (e *PDFExporter) RenderHTML(q *Quote) (string, error) {
	lh := e.letterhead
	lines := make([]htmlLine, 0, len(q.Lines))
	for i := range q.Lines {
		l := &q.Lines[i]
		lines = append(lines, htmlLine{
			Name:      l.Name,
			Airflow:   l.airflowText(lh.AirflowLabel),
			Unit:      amount(l.UnitPrice),
			Quantity:  l.quantityText(),
			LineTotal: money(l.LineTotal),
		})
	}

	data := struct {
		Letterhead Letterhead
		Quote      *Quote
		Lines      []htmlLine
		GrandTotal string
	}{
		Letterhead: lh,
		Quote:      q,
		Lines:      lines,
		GrandTotal: money(q.GrandTotal),
	}

	var buf bytes.Buffer
	if err := quoteHTMLTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *PDFExporter) print(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if chromePath := detectChromePath(e.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		e.logger.Warn("Chrome not found in known locations, relying on chromedp lookup")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.5).
				WithMarginLeft(0.7).
				WithMarginRight(0.7).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// detectChromePath prefers the configured path, then CHROME_PATH, then the
// usual install locations.
func detectChromePath(configured string) string {
	candidates := []string{configured, os.Getenv("CHROME_PATH")}
	candidates = append(candidates,
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	)
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

var quoteHTMLTmpl = template.Must(template.New("quote.html").Parse(`<!DOCTYPE html>
<html lang="ar" dir="rtl">
<head>
<meta charset="utf-8">
<meta name="quote-reference" content="{{.Quote.Reference}}">
<title>{{.Letterhead.Title}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 11pt; margin: 0; }
.letterhead { display: flex; flex-direction: row-reverse; justify-content: space-between; border-bottom: 2px solid #c00; padding-bottom: 8px; }
.letterhead .en { direction: ltr; text-align: left; }
.letterhead .brands { text-align: center; }
.letterhead .ar { text-align: right; }
.letterhead p { margin: 0; }
.letterhead p:first-child { font-weight: bold; font-size: 14pt; }
h1 { text-align: center; font-size: 18pt; margin: 18px 0 6px; }
table.items { width: 100%; border-collapse: collapse; margin: 12px 0; }
table.items th, table.items td { border: 1px solid #000; padding: 4px 6px; }
table.items td.num { text-align: center; }
table.items td.type { text-align: right; }
table.items tr.total td { font-weight: bold; }
.airflow { direction: ltr; unicode-bidi: embed; font-size: 9pt; }
.notes p { margin: 2px 0; }
.contact { font-size: 9pt; margin-top: 16px; }
.contact .en { direction: ltr; text-align: left; }
.closing { margin-top: 12px; }
</style>
</head>
<body>
<div class="letterhead">
  <div class="en">{{range .Letterhead.English}}<p>{{.}}</p>{{end}}</div>
  <div class="brands">{{range .Letterhead.Brands}}<p>{{.}}</p>{{end}}</div>
  <div class="ar">{{range .Letterhead.Arabic}}<p>{{.}}</p>{{end}}</div>
</div>
<h1>{{.Letterhead.Title}}</h1>
<p class="customer">{{.Quote.Customer}}</p>
<table class="items">
<thead><tr><th>{{.Letterhead.TypeHeader}}</th><th>{{.Letterhead.UnitHeader}}</th><th>{{.Letterhead.QuantityHeader}}</th><th>{{.Letterhead.TotalHeader}}</th></tr></thead>
<tbody>
{{- range .Lines}}
<tr><td class="type">{{.Name}}{{if .Airflow}}<div class="airflow">{{.Airflow}}</div>{{end}}</td><td class="num">{{.Unit}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.LineTotal}}</td></tr>
{{- end}}
<tr class="total"><td class="type">{{.Letterhead.GrandTotal}}</td><td></td><td></td><td class="num">{{.GrandTotal}}</td></tr>
</tbody>
</table>
<div class="notes">
<p><strong>{{.Letterhead.NotesTitle}}</strong></p>
{{- range .Letterhead.Notes}}
<p>{{.}}</p>
{{- end}}
</div>
<div class="contact">
<p class="en">{{.Letterhead.ContactEnglish}}</p>
<p>{{.Letterhead.ContactArabic}}</p>
</div>
<p class="closing">{{.Letterhead.Closing}} {{.Quote.Date}}</p>
</body>
</html>`))
