package export

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/internal/pricelist"
	"github.com/fekuna/ventstock/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleTotals() *pricelist.Totals {
	axial := model.Fan{
		BaseModel:   model.BaseModel{ID: 1},
		Name:        "Axial-300",
		Airflow:     strPtr("2500 m3/h"),
		PriceRetail: decimal.RequireFromString("60.00"),
	}
	roof := model.Fan{
		BaseModel:      model.BaseModel{ID: 2},
		Name:           "Roof <R&D>",
		Description:    strPtr("roof unit"),
		PriceWholesale: decimal.RequireFromString("12.5"),
	}
	return &pricelist.Totals{
		Lines: []pricelist.Line{
			{
				Item:      pricelist.LineItem{FanID: 1, Quantity: 3, Tier: model.TierRetail, Order: 1},
				Fan:       axial,
				UnitPrice: axial.PriceRetail,
				LineTotal: decimal.NewFromInt(180),
			},
			{
				Item:      pricelist.LineItem{FanID: 2, Quantity: 1, Tier: model.TierWholesale, Order: 2},
				Fan:       roof,
				UnitPrice: roof.PriceWholesale,
				LineTotal: roof.PriceWholesale,
			},
		},
		GrandTotal: decimal.RequireFromString("192.5"),
	}
}

func TestNewQuote(t *testing.T) {
	q := NewQuote(sampleTotals(), "  السيد المحترم ", "")

	assert.Equal(t, "السيد المحترم", q.Customer)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), q.Date)
	assert.Equal(t, time.Now().Format(DateLayout), q.Date)
	require.Len(t, q.Lines, 2)
	assert.Equal(t, "Axial-300", q.Lines[0].Name)
	assert.Equal(t, "2500 m3/h", q.Lines[0].Airflow)
	assert.Equal(t, "roof unit", q.Lines[1].Description)
	assert.Equal(t, 3, q.Lines[0].Quantity)
	assert.True(t, q.GrandTotal.Equal(decimal.RequireFromString("192.5")))

	other := NewQuote(sampleTotals(), "x", "2024/03/18")
	assert.Equal(t, "2024/03/18", other.Date)
	assert.NotEqual(t, q.Reference, other.Reference)

	assert.True(t, NewQuote(nil, "x", "").Empty())
}

func TestAmountFormatting(t *testing.T) {
	assert.Equal(t, "180", amount(decimal.RequireFromString("180.00")))
	assert.Equal(t, "12", amount(decimal.RequireFromString("12.5")))
	assert.Equal(t, "14", amount(decimal.RequireFromString("13.5")))
	assert.Equal(t, "$ 193", money(decimal.RequireFromString("192.51")))
}

func readZipEntry(t *testing.T, path, name string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(b)
	}
	t.Fatalf("%s not found in %s", name, path)
	return ""
}

func assertWellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		require.NoError(t, err)
	}
}

func TestDocxExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.docx")
	q := NewQuote(sampleTotals(), "A & B", "2024/03/18")

	exp := NewDocxExporter(DefaultLetterhead(), logger.NewNop())
	require.NoError(t, exp.Export(context.Background(), q, path))

	for _, part := range []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/styles.xml"} {
		assertWellFormed(t, readZipEntry(t, path, part))
	}

	doc := readZipEntry(t, path, "word/document.xml")
	assertWellFormed(t, doc)

	for _, want := range []string{
		"عرض سعر",
		"A &amp; B",
		"Roof &lt;R&amp;D&gt;",
		"S&amp;P",
		"Airflow: 2500 m3/h",
		"$ 180",
		">60<",
		"$ 192",
		"ملاحظات:",
		"التسليم أرض الشركة بدمشق",
		"P.O.BOX 32157",
		"مع تحياتنا 2024/03/18",
		"<w:bidiVisual/>",
	} {
		assert.Contains(t, doc, want)
	}

	// columns run total, quantity, unit, type in a bidi visual table
	header := []string{"الإجمالي", "عدد", "الإفرادي", "النوع"}
	last := -1
	for _, h := range header {
		i := strings.Index(doc, h)
		require.GreaterOrEqual(t, i, 0, h)
		assert.Greater(t, i, last, h)
		last = i
	}

	assert.Less(t, strings.Index(doc, "Axial-300"), strings.Index(doc, "Roof &lt;R&amp;D&gt;"))
	assert.NotContains(t, doc, "Airflow: <")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestDocxExportEmptyQuote(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.docx")
	err := NewDocxExporter(DefaultLetterhead(), logger.NewNop()).
		Export(context.Background(), NewQuote(&pricelist.Totals{}, "x", ""), path)

	assert.True(t, apperror.IsExport(err))
	assert.NoFileExists(t, path)
}

func TestDocxExportUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "quote.docx")
	err := NewDocxExporter(DefaultLetterhead(), logger.NewNop()).
		Export(context.Background(), NewQuote(sampleTotals(), "x", ""), path)

	var ee *apperror.ExportError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, path, ee.Path)
	assert.NoFileExists(t, path)
}

func TestDocxExportKeepsExistingFileOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.docx")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewDocxExporter(DefaultLetterhead(), logger.NewNop()).Export(ctx, NewQuote(sampleTotals(), "x", ""), path)
	require.True(t, apperror.IsExport(err))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(b))
}

func TestRenderHTML(t *testing.T) {
	exp := NewPDFExporter(DefaultLetterhead(), Options{Logger: logger.NewNop()})
	q := NewQuote(sampleTotals(), "<script>x</script>", "2024/03/18")

	html, err := exp.RenderHTML(q)
	require.NoError(t, err)

	assert.Contains(t, html, `dir="rtl"`)
	assert.Contains(t, html, "عرض سعر")
	assert.Contains(t, html, "Airflow: 2500 m3/h")
	assert.Contains(t, html, "$ 180")
	assert.Contains(t, html, "$ 192")
	assert.Contains(t, html, "مع تحياتنا 2024/03/18")
	assert.Contains(t, html, q.Reference.String())
	assert.NotContains(t, html, "<script>x</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestPDFExport(t *testing.T) {
	if detectChromePath("") == "" {
		t.Skip("chrome not installed")
	}
	path := filepath.Join(t.TempDir(), "quote.pdf")
	exp := NewPDFExporter(DefaultLetterhead(), Options{Timeout: time.Minute, Logger: logger.NewNop()})

	require.NoError(t, exp.Export(context.Background(), NewQuote(sampleTotals(), "x", ""), path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "%PDF"))
}

func TestNew(t *testing.T) {
	exp, err := New("", DefaultLetterhead(), Options{})
	require.NoError(t, err)
	assert.IsType(t, &DocxExporter{}, exp)
	assert.Equal(t, ".docx", exp.Extension())

	exp, err = New("PDF", DefaultLetterhead(), Options{})
	require.NoError(t, err)
	assert.IsType(t, &PDFExporter{}, exp)

	_, err = New("odt", DefaultLetterhead(), Options{})
	assert.True(t, apperror.IsValidation(err))
}
