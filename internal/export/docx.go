package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"text/template"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/pkg/logger"
	"go.uber.org/zap"
)

// Twips per inch.
const twip = 1440

// Font sizes are in half points.
const (
	sizeLetterheadLead = 28
	sizeLetterhead     = 24
	sizeTitle          = 36
	sizeHeader         = 22
	sizeContact        = 18
)

type docxPara struct {
	Text  string
	Align string // left, center, right
	RTL   bool
	Bold  bool
	Size  int
}

type docxCell struct {
	Width int
	Paras []docxPara
}

type docxTable struct {
	BidiVisual bool
	Borders    bool
	Grid       []int
	Rows       [][]docxCell
}

type docxBlock struct {
	Para  *docxPara
	Table *docxTable
}

type DocxExporter struct {
	letterhead Letterhead
	logger     logger.ZapLogger
}

func NewDocxExporter(lh Letterhead, log logger.ZapLogger) *DocxExporter {
	return &DocxExporter{letterhead: lh, logger: log}
}

func (e *DocxExporter) Extension() string { return ".docx" }

func (e *DocxExporter) Export(ctx context.Context, q *Quote, path string) error {
	if q.Empty() {
		return apperror.Export(path, errEmptyQuote)
	}
	if err := ctx.Err(); err != nil {
		return apperror.Export(path, err)
	}

	var doc bytes.Buffer
	if err := documentTmpl.Execute(&doc, e.blocks(q)); err != nil {
		return apperror.Export(path, err)
	}

	err := writeFileAtomic(path, func(w io.Writer) error {
		return writePackage(w, doc.Bytes())
	})
	if err != nil {
		e.logger.Error("Failed to export quote", zap.String("path", path), zap.Error(err))
		return apperror.Export(path, err)
	}

	e.logger.Info("Quote exported",
		zap.String("path", path),
		zap.String("format", FormatDOCX),
		zap.String("reference", q.Reference.String()),
		zap.Int("lines", len(q.Lines)),
	)
	return nil
}

func (e *DocxExporter) blocks(q *Quote) []docxBlock {
	lh := e.letterhead
	var out []docxBlock
	para := func(p docxPara) { out = append(out, docxBlock{Para: &p}) }
	blank := func() { para(docxPara{RTL: true}) }
	table := func(t docxTable) { out = append(out, docxBlock{Table: &t}) }

	table(letterheadTable(lh))
	blank()

	para(docxPara{Text: lh.Title, Align: "center", RTL: true, Bold: true, Size: sizeTitle})
	para(docxPara{Text: q.Customer, Align: "right", RTL: true})
	blank()

	table(e.productTable(q))
	blank()

	para(docxPara{Text: lh.NotesTitle, Align: "right", RTL: true, Bold: true, Size: sizeHeader})
	for _, n := range lh.Notes {
		para(docxPara{Text: n, Align: "right", RTL: true})
	}
	blank()

	para(docxPara{Text: lh.ContactEnglish, Align: "left", Size: sizeContact})
	para(docxPara{Text: lh.ContactArabic, Align: "right", RTL: true, Size: sizeContact})
	para(docxPara{Text: lh.Closing + " " + q.Date, Align: "right", RTL: true})
	return out
}

func letterheadTable(lh Letterhead) docxTable {
	column := func(lines []string, align string, rtl bool, lead int) []docxPara {
		paras := make([]docxPara, 0, len(lines))
		for i, l := range lines {
			p := docxPara{Text: l, Align: align, RTL: rtl, Bold: i == 0}
			if i == 0 {
				p.Size = lead
			}
			paras = append(paras, p)
		}
		if len(paras) == 0 {
			// a table cell needs at least one paragraph
			paras = append(paras, docxPara{Align: align, RTL: rtl})
		}
		return paras
	}

	widths := []int{3 * twip, twip * 3 / 2, 3 * twip}
	return docxTable{
		Grid: widths,
		Rows: [][]docxCell{{
			{Width: widths[0], Paras: column(lh.English, "left", false, sizeLetterheadLead)},
			{Width: widths[1], Paras: column(lh.Brands, "center", false, sizeLetterhead)},
			{Width: widths[2], Paras: column(lh.Arabic, "right", true, sizeLetterheadLead)},
		}},
	}
}

// productTable lists columns in reading order for a bidi visual table, so
// the type column ends up rightmost.
func (e *DocxExporter) productTable(q *Quote) docxTable {
	lh := e.letterhead
	widths := []int{twip * 6 / 5, twip * 4 / 5, twip * 6 / 5, 4 * twip}

	header := func(text string) docxPara {
		return docxPara{Text: text, Align: "center", RTL: true, Bold: true, Size: sizeHeader}
	}
	centered := func(text string) []docxPara {
		return []docxPara{{Text: text, Align: "center", RTL: true}}
	}

	rows := [][]docxCell{{
		{Width: widths[0], Paras: []docxPara{header(lh.TotalHeader)}},
		{Width: widths[1], Paras: []docxPara{header(lh.QuantityHeader)}},
		{Width: widths[2], Paras: []docxPara{header(lh.UnitHeader)}},
		{Width: widths[3], Paras: []docxPara{header(lh.TypeHeader)}},
	}}

	for i := range q.Lines {
		l := &q.Lines[i]
		typeParas := []docxPara{{Text: l.Name, Align: "right", RTL: true}}
		if af := l.airflowText(lh.AirflowLabel); af != "" {
			typeParas = append(typeParas, docxPara{Text: af, Align: "right", RTL: true})
		}
		rows = append(rows, []docxCell{
			{Width: widths[0], Paras: centered(money(l.LineTotal))},
			{Width: widths[1], Paras: centered(l.quantityText())},
			{Width: widths[2], Paras: centered(amount(l.UnitPrice))},
			{Width: widths[3], Paras: typeParas},
		})
	}

	rows = append(rows, []docxCell{
		{Width: widths[0], Paras: []docxPara{{Text: money(q.GrandTotal), Align: "center", RTL: true, Bold: true}}},
		{Width: widths[1], Paras: centered("")},
		{Width: widths[2], Paras: centered("")},
		{Width: widths[3], Paras: []docxPara{{Text: lh.GrandTotal, Align: "right", RTL: true, Bold: true}}},
	})

	return docxTable{BidiVisual: true, Borders: true, Grid: widths, Rows: rows}
}

func xmlText(s string) (string, error) {
	var b bytes.Buffer
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", err
	}
	return b.String(), nil
}

var documentTmpl = template.Must(template.New("document.xml").Funcs(template.FuncMap{
	"x": xmlText,
}).Parse(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
<w:body>
{{- range .}}
{{- if .Para}}{{template "p" .Para}}{{end}}
{{- if .Table}}{{template "tbl" .Table}}{{end}}
{{- end}}
<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="720" w:right="1008" w:bottom="720" w:left="1008" w:header="708" w:footer="708" w:gutter="0"/><w:bidi/></w:sectPr>
</w:body>
</w:document>
{{- define "p"}}
<w:p><w:pPr>{{if .RTL}}<w:bidi/>{{end}}{{if .Align}}<w:jc w:val="{{.Align}}"/>{{end}}</w:pPr>
{{- if .Text}}<w:r><w:rPr><w:rFonts w:ascii="Arial" w:hAnsi="Arial" w:cs="Arial"/>{{if .Bold}}<w:b/><w:bCs/>{{end}}{{if .Size}}<w:sz w:val="{{.Size}}"/><w:szCs w:val="{{.Size}}"/>{{end}}{{if .RTL}}<w:rtl/>{{end}}</w:rPr><w:t xml:space="preserve">{{x .Text}}</w:t></w:r>{{end}}</w:p>
{{- end}}
{{- define "tbl"}}
<w:tbl><w:tblPr>{{if .BidiVisual}}<w:bidiVisual/>{{end}}<w:tblW w:w="0" w:type="auto"/><w:jc w:val="center"/>
{{- if .Borders}}<w:tblBorders><w:top w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:left w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:bottom w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:right w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:insideH w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="000000"/></w:tblBorders>{{end}}</w:tblPr>
<w:tblGrid>{{range .Grid}}<w:gridCol w:w="{{.}}"/>{{end}}</w:tblGrid>
{{- range .Rows}}
<w:tr>{{range .}}<w:tc><w:tcPr><w:tcW w:w="{{.Width}}" w:type="dxa"/></w:tcPr>{{range .Paras}}{{template "p" .}}{{end}}</w:tc>{{end}}</w:tr>
{{- end}}
</w:tbl>
{{- end}}`))

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Arial" w:hAnsi="Arial" w:cs="Arial"/><w:sz w:val="22"/><w:szCs w:val="22"/></w:rPr></w:rPrDefault></w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:pPr><w:bidi/></w:pPr></w:style>
</w:styles>`

func writePackage(w io.Writer, document []byte) error {
	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		body []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/document.xml", document},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return err
		}
		if _, err := f.Write(p.body); err != nil {
			return err
		}
	}
	return zw.Close()
}
