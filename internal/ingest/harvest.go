package ingest

import (
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/series"
)

// Input is one uploaded workbook: a name used for provenance and year
// detection, and its raw byte stream.
type Input struct {
	Name   string
	Reader io.Reader
}

// Options parameterise a harvest run.
type Options struct {
	DefaultYear int
	AmountLabel string
	PreviewRows int
}

// Harvester walks every sheet of every workbook and emits one monthly record
// per sheet it can interpret as a ledger.
type Harvester struct {
	opts   Options
	logger zerolog.Logger
}

// NewHarvester builds a harvester.
func NewHarvester(opts Options, logger zerolog.Logger) *Harvester {
	if opts.AmountLabel == "" {
		opts.AmountLabel = "VENTAS"
	}
	if opts.PreviewRows <= 0 {
		opts.PreviewRows = 15
	}
	return &Harvester{opts: opts, logger: logger.With().Str("component", "harvester").Logger()}
}

// Harvest processes the given workbooks in order. Per-file and per-sheet
// failures are isolated: they append a diagnostic and processing moves on.
// Sheets naming no recognisable month are assumed not to be ledger content
// and are skipped without a diagnostic.
func (h *Harvester) Harvest(inputs []Input) ([]series.Record, *Log) {
	log := &Log{}
	var records []series.Record

	for _, input := range inputs {
		recs, err := h.harvestFile(input, log)
		if err != nil {
			log.Addf("archivo %s omitido: %v", input.Name, err)
			h.logger.Warn().Err(err).Str("file", input.Name).Msg("workbook unreadable, skipping")
			continue
		}
		records = append(records, recs...)
	}

	return records, log
}

func (h *Harvester) harvestFile(input Input, log *Log) ([]series.Record, error) {
	book, err := excelize.OpenReader(input.Reader)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	year, provenance := ResolveYear(input.Name, h.opts.DefaultYear)
	h.logger.Debug().Str("file", input.Name).Int("year", year).
		Str("provenance", string(provenance)).Msg("year resolved")

	var records []series.Record
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			log.Addf("hoja %s!%s ilegible: %v", input.Name, sheet, err)
			continue
		}

		month, ok := ResolveMonth(sheet, previewText(rows, h.opts.PreviewRows))
		if !ok {
			h.logger.Debug().Str("file", input.Name).Str("sheet", sheet).Msg("no month in sheet, skipping")
			continue
		}

		amount, err := extractAmount(rows, h.opts.AmountLabel, h.opts.PreviewRows)
		switch {
		case errors.Is(err, errHeaderNotFound):
			log.Addf("hoja %s!%s: mes detectado pero sin encabezado %q", input.Name, sheet, h.opts.AmountLabel)
			continue
		case errors.Is(err, errAmountColumnMissing):
			log.Addf("hoja %s!%s: columna %q ausente tras normalizar", input.Name, sheet, h.opts.AmountLabel)
			continue
		case err != nil:
			log.Addf("hoja %s!%s: %v", input.Name, sheet, err)
			continue
		}

		records = append(records, series.Record{
			Date:   series.MonthDate(year, month),
			Amount: amount,
			Source: input.Name + "!" + sheet,
		})
		h.logger.Debug().Str("source", input.Name+"!"+sheet).
			Int("month", int(month)).Str("amount", amount.String()).Msg("sheet harvested")
	}

	return records, nil
}

// previewText flattens the first few rows into one string for month scanning.
func previewText(rows [][]string, previewRows int) string {
	limit := previewRows
	if limit > len(rows) {
		limit = len(rows)
	}
	var b strings.Builder
	for _, row := range rows[:limit] {
		for _, cell := range row {
			if cell == "" {
				continue
			}
			b.WriteString(cell)
			b.WriteByte(' ')
		}
	}
	return b.String()
}
