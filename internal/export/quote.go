package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/ventstock/internal/pricelist"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the quote date format, e.g. 2024/03/18.
const DateLayout = "2006/01/02"

type QuoteLine struct {
	Name        string
	Description string
	Airflow     string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
}

type Quote struct {
	Reference  uuid.UUID
	Customer   string
	Date       string
	Lines      []QuoteLine
	GrandTotal decimal.Decimal
}

// NewQuote freezes totals into a document model. A blank date means today.
func NewQuote(totals *pricelist.Totals, customer, date string) *Quote {
	date = strings.TrimSpace(date)
	if date == "" {
		date = time.Now().Format(DateLayout)
	}

	q := &Quote{
		Reference:  uuid.New(),
		Customer:   strings.TrimSpace(customer),
		Date:       date,
		GrandTotal: decimal.Zero,
	}
	if totals == nil {
		return q
	}

	q.Lines = make([]QuoteLine, 0, len(totals.Lines))
	for _, l := range totals.Lines {
		q.Lines = append(q.Lines, QuoteLine{
			Name:        l.Fan.Name,
			Description: deref(l.Fan.Description),
			Airflow:     deref(l.Fan.Airflow),
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Item.Quantity,
			LineTotal:   l.LineTotal,
		})
	}
	q.GrandTotal = totals.GrandTotal
	return q
}

func (q *Quote) Empty() bool { return q == nil || len(q.Lines) == 0 }

// Letterhead holds the fixed company text printed around the quote table.
type Letterhead struct {
	English []string
	Brands  []string
	Arabic  []string

	Title string
	// Column headings, right to left: type, unit price, quantity, total.
	TypeHeader     string
	UnitHeader     string
	QuantityHeader string
	TotalHeader    string
	GrandTotal     string
	AirflowLabel   string

	NotesTitle     string
	Notes          []string
	ContactEnglish string
	ContactArabic  string
	Closing        string
}

func DefaultLetterhead() Letterhead {
	return Letterhead{
		English: []string{"Technical Equipment", "Industrial-Domestic", "Ventilation", "M. Nazir Rabah", "& Sons"},
		Brands:  []string{"S&P", "CHAYSOL", "emc"},
		Arabic:  []string{"التجهيزات التقنية", "توربينات تهوية", "منزلية. صناعية", "محمد نذير رباح", "وأولاده"},

		Title:          "عرض سعر",
		TypeHeader:     "النوع",
		UnitHeader:     "الإفرادي",
		QuantityHeader: "عدد",
		TotalHeader:    "الإجمالي",
		GrandTotal:     "المجموع",
		AirflowLabel:   "Airflow",

		NotesTitle: "ملاحظات:",
		Notes: []string{
			"• المحرك الخارجي يتوفر لدينا نوع تشيكي يتم اختيار الاستطاعة المطلوبة على كتالوك التوربين حسب الغزارة والضغط",
			"• التسليم أرض الشركة بدمشق",
		},
		ContactEnglish: "DAMASCUS. SYRIA. TEL: (0096311) 2122066-2141283 - FAX: 2122048 - P.O.BOX 32157",
		ContactArabic:  "دمشق . برامكة . جانب الهجرة والجوازات - 21220662 / 2141283 - فاكس : 2122048 / ص . ب 32157 - س . ت 12661",
		Closing:        "مع تحياتنا",
	}
}

// Amounts are printed as whole numbers, half to even.
func amount(d decimal.Decimal) string {
	return d.StringFixedBank(0)
}

func money(d decimal.Decimal) string {
	return "$ " + amount(d)
}

func (l *QuoteLine) airflowText(label string) string {
	if l.Airflow == "" {
		return ""
	}
	return label + ": " + l.Airflow
}

func (l *QuoteLine) quantityText() string {
	return strconv.Itoa(l.Quantity)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
