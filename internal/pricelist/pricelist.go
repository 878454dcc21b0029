// Package pricelist assembles the ordered fan selection behind a quote.
// A PriceList belongs to one session and is not safe for concurrent use.
package pricelist

import (
	"context"
	"errors"
	"sort"

	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrAtBoundary is returned by MoveUp on the first line and MoveDown on the
// last one. The list is left as it was.
var ErrAtBoundary = errors.New("line item is already at the edge of the list")

// FanSource resolves fans by id. fan.UseCase satisfies it.
type FanSource interface {
	GetFan(ctx context.Context, id int64) (*model.Fan, error)
}

type LineItem struct {
	FanID    int64
	Quantity int
	Tier     model.PriceTier
	Order    int // 1-based display position
}

// Line is a LineItem priced against the fan as currently stored.
type Line struct {
	Item      LineItem
	Fan       model.Fan
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

type Totals struct {
	Lines      []Line
	GrandTotal decimal.Decimal
}

type PriceList struct {
	fans   FanSource
	items  []LineItem
	logger logger.ZapLogger
}

func New(fans FanSource, log logger.ZapLogger) *PriceList {
	return &PriceList{fans: fans, logger: log}
}

// AddItem appends fanID with quantity 1. The fan must exist and must not
// already be on the list.
func (p *PriceList) AddItem(ctx context.Context, fanID int64, tier model.PriceTier) (LineItem, error) {
	if !tier.Valid() {
		return LineItem{}, apperror.Validation("tier", "must be retail or wholesale")
	}

	f, err := p.fans.GetFan(ctx, fanID)
	if err != nil {
		return LineItem{}, err
	}
	if f == nil {
		return LineItem{}, apperror.NotFound("fan", fanID)
	}
	if p.indexOf(fanID) >= 0 {
		p.logger.Debug("fan already on price list", zap.Int64("fan_id", fanID))
		return LineItem{}, apperror.Duplicate("price list item", fanID)
	}

	item := LineItem{FanID: fanID, Quantity: 1, Tier: tier, Order: len(p.items) + 1}
	p.items = append(p.items, item)
	return item, nil
}

// RemoveItem reports whether fanID was on the list.
func (p *PriceList) RemoveItem(fanID int64) bool {
	i := p.indexOf(fanID)
	if i < 0 {
		return false
	}
	p.items = append(p.items[:i], p.items[i+1:]...)
	p.renumber()
	return true
}

func (p *PriceList) SetQuantity(fanID int64, qty int) error {
	if qty < 1 {
		return apperror.Validation("quantity", "must be at least 1")
	}
	i := p.indexOf(fanID)
	if i < 0 {
		return apperror.NotFound("price list item", fanID)
	}
	p.items[i].Quantity = qty
	return nil
}

func (p *PriceList) SetPriceTier(fanID int64, tier model.PriceTier) error {
	if !tier.Valid() {
		return apperror.Validation("tier", "must be retail or wholesale")
	}
	i := p.indexOf(fanID)
	if i < 0 {
		return apperror.NotFound("price list item", fanID)
	}
	p.items[i].Tier = tier
	return nil
}

func (p *PriceList) MoveUp(fanID int64) error {
	i := p.indexOf(fanID)
	if i < 0 {
		return apperror.NotFound("price list item", fanID)
	}
	if i == 0 {
		return ErrAtBoundary
	}
	p.swap(i, i-1)
	return nil
}

func (p *PriceList) MoveDown(fanID int64) error {
	i := p.indexOf(fanID)
	if i < 0 {
		return apperror.NotFound("price list item", fanID)
	}
	if i == len(p.items)-1 {
		return ErrAtBoundary
	}
	p.swap(i, i+1)
	return nil
}

// SortByIdentity orders the list by fan id, replacing the display order.
func (p *PriceList) SortByIdentity(ascending bool) {
	sort.SliceStable(p.items, func(i, j int) bool {
		if ascending {
			return p.items[i].FanID < p.items[j].FanID
		}
		return p.items[i].FanID > p.items[j].FanID
	})
	p.renumber()
}

func (p *PriceList) Clear() {
	p.items = nil
}

// Items returns a copy of the line items in display order.
func (p *PriceList) Items() []LineItem {
	out := make([]LineItem, len(p.items))
	copy(out, p.items)
	return out
}

func (p *PriceList) Len() int { return len(p.items) }

// ComputeTotals prices every line against the fan as stored right now.
// Nothing is cached between calls.
func (p *PriceList) ComputeTotals(ctx context.Context) (*Totals, error) {
	totals := &Totals{Lines: make([]Line, 0, len(p.items)), GrandTotal: decimal.Zero}

	for _, item := range p.items {
		f, err := p.fans.GetFan(ctx, item.FanID)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, apperror.NotFound("fan", item.FanID)
		}

		unit := f.UnitPrice(item.Tier)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totals.Lines = append(totals.Lines, Line{
			Item:      item,
			Fan:       *f,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
		totals.GrandTotal = totals.GrandTotal.Add(lineTotal)
	}

	return totals, nil
}

func (p *PriceList) indexOf(fanID int64) int {
	for i, it := range p.items {
		if it.FanID == fanID {
			return i
		}
	}
	return -1
}

func (p *PriceList) swap(i, j int) {
	p.items[i], p.items[j] = p.items[j], p.items[i]
	p.renumber()
}

func (p *PriceList) renumber() {
	for i := range p.items {
		p.items[i].Order = i + 1
	}
}
