package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fekuna/ventstock/config"
	"github.com/fekuna/ventstock/internal/apperror"
	"github.com/fekuna/ventstock/internal/export"
	fanDTO "github.com/fekuna/ventstock/internal/fan/dto"
	flexibleDTO "github.com/fekuna/ventstock/internal/flexible/dto"
	"github.com/fekuna/ventstock/internal/interchange"
	"github.com/fekuna/ventstock/internal/inventory"
	"github.com/fekuna/ventstock/internal/model"
	"github.com/fekuna/ventstock/internal/pricelist"
	sheetMetalDTO "github.com/fekuna/ventstock/internal/sheetmetal/dto"
	"github.com/fekuna/ventstock/internal/validation"
	"github.com/fekuna/ventstock/pkg/logger"
	"go.uber.org/zap"
)

const usage = `usage: ventstock <command> [arguments]

commands:
  migrate                              apply pending schema migrations
  list <catalog> [term]                list or search fans, sheet_metal or flexible
  add-fan [flags]                      add a fan
  add-sheet-metal [flags]              add a sheet metal item
  add-flexible [flags]                 add a flexible duct
  delete <catalog> <id>                delete an item
  adjust <fan-id> <delta>              change a fan's stock on hand
  catalog <fan-id>                     print the fan's catalog document path
  dump <file>                          write every catalog to a JSON file
  quote <request.json> <out>           build a price list and export it
`

var errUsage = errors.New("invalid arguments")

type cli struct {
	store  *inventory.Store
	cfg    *config.Config
	logger logger.ZapLogger
	out    io.Writer
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "migrate":
		fmt.Fprintf(c.out, "schema version %d\n", c.store.SchemaVersion())
		return nil
	case "list":
		return c.list(ctx, rest)
	case "add-fan":
		return c.addFan(ctx, rest)
	case "add-sheet-metal":
		return c.addSheetMetal(ctx, rest)
	case "add-flexible":
		return c.addFlexible(ctx, rest)
	case "delete":
		return c.delete(ctx, rest)
	case "adjust":
		return c.adjust(ctx, rest)
	case "catalog":
		return c.catalogDocument(ctx, rest)
	case "dump":
		return c.dump(ctx, rest)
	case "quote":
		return c.quote(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	}
	return usageError("unknown command " + strconv.Quote(cmd))
}

func usageError(msg string) error {
	return fmt.Errorf("%w: %s\n\n%s", errUsage, msg, usage)
}

func (c *cli) list(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usageError("list needs a catalog")
	}
	catalog, err := model.ParseCatalog(args[0])
	if err != nil {
		return usageError(err.Error())
	}
	term := strings.Join(args[1:], " ")

	items, err := c.store.Search(ctx, catalog, term)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	switch catalog {
	case model.CatalogFans:
		fmt.Fprintln(tw, "ID\tNAME\tAIRFLOW\tWHOLESALE\tRETAIL\tQTY\tDESCRIPTION")
		for _, it := range items {
			f := it.(*model.Fan)
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
				f.ID, f.Name, opt(f.Airflow), f.PriceWholesale.StringFixed(2), f.PriceRetail.StringFixed(2), f.Quantity, opt(f.Description))
		}
	case model.CatalogSheetMetal:
		fmt.Fprintln(tw, "ID\tTHICKNESS\tDIMENSIONS\tMEASUREMENT\tCOST\tEXTRA")
		for _, it := range items {
			s := it.(*model.SheetMetal)
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				s.ID, opt(s.Thickness), opt(s.Dimensions), opt(s.Measurement), s.Cost.StringFixed(2), opt(s.Extra))
		}
	case model.CatalogFlexible:
		fmt.Fprintln(tw, "ID\tDESCRIPTION\tDIAMETER\tCOLLECTION\tMETER")
		for _, it := range items {
			f := it.(*model.Flexible)
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				f.ID, opt(f.Description), opt(f.Diameter), opt(f.Collection), f.Meter.StringFixed(2))
		}
	}
	return tw.Flush()
}

func (c *cli) addFan(ctx context.Context, args []string) error {
	var form fanDTO.FanForm
	fs := flag.NewFlagSet("add-fan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&form.Name, "name", "", "fan name")
	fs.StringVar(&form.Description, "description", "", "description")
	fs.StringVar(&form.Airflow, "airflow", "", "airflow rating")
	fs.StringVar(&form.CatalogFilePath, "catalog", "", "catalog document path")
	fs.StringVar(&form.PriceWholesale, "wholesale", "", "wholesale price")
	fs.StringVar(&form.PriceRetail, "retail", "", "retail price")
	fs.StringVar(&form.Quantity, "quantity", "", "stock on hand")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	fields, err := fanDTO.ParseFanForm(form)
	if err != nil {
		return err
	}
	f, err := c.store.Fans.CreateFan(ctx, &fanDTO.CreateFanInput{FanFields: *fields})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "added fan %d\n", f.ID)
	return nil
}

func (c *cli) addSheetMetal(ctx context.Context, args []string) error {
	var form sheetMetalDTO.SheetMetalForm
	fs := flag.NewFlagSet("add-sheet-metal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&form.Thickness, "thickness", "", "thickness")
	fs.StringVar(&form.Dimensions, "dimensions", "", "dimensions")
	fs.StringVar(&form.Measurement, "measurement", "", "measurement unit")
	fs.StringVar(&form.Cost, "cost", "", "cost")
	fs.StringVar(&form.Extra, "extra", "", "extra or insulation note")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	fields, err := sheetMetalDTO.ParseSheetMetalForm(form)
	if err != nil {
		return err
	}
	s, err := c.store.SheetMetal.CreateSheetMetal(ctx, &sheetMetalDTO.CreateSheetMetalInput{SheetMetalFields: *fields})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "added sheet metal %d\n", s.ID)
	return nil
}

func (c *cli) addFlexible(ctx context.Context, args []string) error {
	var form flexibleDTO.FlexibleForm
	fs := flag.NewFlagSet("add-flexible", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&form.Description, "description", "", "description")
	fs.StringVar(&form.Diameter, "diameter", "", "diameter")
	fs.StringVar(&form.Collection, "collection", "", "collection or bundle note")
	fs.StringVar(&form.Meter, "meter", "", "price per meter")
	if err := fs.Parse(args); err != nil {
		return usageError(err.Error())
	}

	fields, err := flexibleDTO.ParseFlexibleForm(form)
	if err != nil {
		return err
	}
	f, err := c.store.Flexible.CreateFlexible(ctx, &flexibleDTO.CreateFlexibleInput{FlexibleFields: *fields})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "added flexible %d\n", f.ID)
	return nil
}

func (c *cli) delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("delete needs a catalog and an id")
	}
	catalog, err := model.ParseCatalog(args[0])
	if err != nil {
		return usageError(err.Error())
	}
	id, err := validation.ID("id", args[1])
	if err != nil {
		return err
	}
	if err := c.store.Delete(ctx, catalog, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "deleted %s %d\n", catalog, id)
	return nil
}

func (c *cli) adjust(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("adjust needs a fan id and a delta")
	}
	id, err := validation.ID("fan_id", args[0])
	if err != nil {
		return err
	}
	delta, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return apperror.Validation("delta", "must be a whole number")
	}

	adj, err := c.store.Fans.AdjustQuantity(ctx, id, delta)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "fan %d: %d -> %d\n", adj.FanID, adj.QuantityBefore, adj.QuantityAfter)
	return nil
}

func (c *cli) catalogDocument(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("catalog needs a fan id")
	}
	id, err := validation.ID("fan_id", args[0])
	if err != nil {
		return err
	}
	path, err := c.store.Fans.CatalogDocument(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, path)
	return nil
}

func (c *cli) dump(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("dump needs an output file")
	}
	snap, err := interchange.Dump(ctx, c.store)
	if err != nil {
		return err
	}
	if err := interchange.WriteFile(args[0], snap); err != nil {
		return err
	}

	counts := snap.Counts()
	c.logger.Info("Inventory dumped",
		zap.String("path", args[0]),
		zap.String("export_id", snap.ExportID.String()),
		zap.Int("fans", counts[model.CatalogFans]),
		zap.Int("sheet_metal", counts[model.CatalogSheetMetal]),
		zap.Int("flexible", counts[model.CatalogFlexible]),
	)
	fmt.Fprintf(c.out, "fans: %d\nsheet metal: %d\nflexible: %d\nwritten to %s\n",
		counts[model.CatalogFans], counts[model.CatalogSheetMetal], counts[model.CatalogFlexible], args[0])
	return nil
}

type quoteRequest struct {
	Customer string             `json:"customer"`
	Date     string             `json:"date"`
	Sort     string             `json:"sort"` // "", "asc" or "desc"
	Items    []quoteRequestItem `json:"items"`
}

type quoteRequestItem struct {
	FanID    int64  `json:"fan_id"`
	Tier     string `json:"tier"`
	Quantity int    `json:"quantity"`
}

func readQuoteRequest(path string) (*quoteRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.FileNotFound(path)
	}
	var req quoteRequest
	if err := json.Unmarshal(b, &req); err != nil {
		return nil, apperror.Validation("request", err.Error())
	}
	return &req, nil
}

// buildPriceList replays a quote request onto a fresh price list. Fans
// listed twice are reported and skipped.
func (c *cli) buildPriceList(ctx context.Context, req *quoteRequest) (*pricelist.PriceList, error) {
	pl := pricelist.New(c.store.Fans, c.logger)
	for _, it := range req.Items {
		tier := model.TierRetail
		if strings.TrimSpace(it.Tier) != "" {
			t, err := model.ParsePriceTier(it.Tier)
			if err != nil {
				return nil, apperror.Validation("tier", err.Error())
			}
			tier = t
		}

		if _, err := pl.AddItem(ctx, it.FanID, tier); err != nil {
			if apperror.IsDuplicate(err) {
				fmt.Fprintf(c.out, "fan %d already added, skipping\n", it.FanID)
				continue
			}
			return nil, err
		}
		if it.Quantity != 0 {
			if err := pl.SetQuantity(it.FanID, it.Quantity); err != nil {
				return nil, err
			}
		}
	}

	switch strings.ToLower(req.Sort) {
	case "asc":
		pl.SortByIdentity(true)
	case "desc":
		pl.SortByIdentity(false)
	}
	return pl, nil
}

func (c *cli) quote(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("quote needs a request file and an output path")
	}
	req, err := readQuoteRequest(args[0])
	if err != nil {
		return err
	}

	pl, err := c.buildPriceList(ctx, req)
	if err != nil {
		return err
	}
	totals, err := pl.ComputeTotals(ctx)
	if err != nil {
		return err
	}

	customer := req.Customer
	if strings.TrimSpace(customer) == "" {
		customer = c.cfg.Export.DefaultCustomer
	}
	q := export.NewQuote(totals, customer, req.Date)

	exp, err := export.New(c.cfg.Export.Format, export.DefaultLetterhead(), export.Options{
		ChromePath: c.cfg.Export.ChromePath,
		Timeout:    time.Duration(c.cfg.Export.TimeoutSeconds) * time.Second,
		Logger:     c.logger,
	})
	if err != nil {
		return err
	}

	out := args[1]
	if filepath.Ext(out) == "" {
		out += exp.Extension()
	}
	if !filepath.IsAbs(out) && filepath.Dir(out) == "." && c.cfg.Export.OutputDir != "" {
		out = filepath.Join(c.cfg.Export.OutputDir, out)
	}

	if err := exp.Export(ctx, q, out); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d lines, total %s, written to %s\n", len(q.Lines), q.GrandTotal.StringFixed(2), out)
	return nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, errUsage):
		return err.Error()
	case apperror.IsValidation(err):
		return "Invalid input: " + err.Error()
	case apperror.IsNotFound(err):
		return "Not found: " + err.Error()
	case apperror.IsDuplicate(err):
		return "Already added: " + err.Error()
	case errors.Is(err, pricelist.ErrAtBoundary):
		return err.Error()
	case apperror.IsExport(err):
		return "Failed to export: " + err.Error()
	case apperror.IsPersistence(err):
		return "Database error: " + err.Error()
	}
	return "Error: " + err.Error()
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), apperror.IsValidation(err):
		return 2
	case apperror.IsNotFound(err):
		return 3
	case apperror.IsDuplicate(err):
		return 4
	case apperror.IsExport(err):
		return 5
	case apperror.IsPersistence(err):
		return 6
	}
	return 1
}

func opt(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
