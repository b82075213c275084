package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/justt1n/driffle-tool/internal/domain"
	"github.com/justt1n/driffle-tool/internal/domain/entity"
	"github.com/justt1n/driffle-tool/internal/domain/value"
	"github.com/justt1n/driffle-tool/pkg/errcodes"
)

// Rule sheet column layout, zero-based within the read range A:N.
const (
	colCheck = iota
	colProductName
	colProductURL
	colProductCompare
	colCompareMode
	colMinAdjustment
	colMaxAdjustment
	colRounding
	colMinPrice
	colMaxPrice
	colBlacklist
	colRelax
	colNote
	colLastUpdate
)

// Row is one spreadsheet rule row before hydration. Bound and blacklist
// cells keep their raw text until Hydrate resolves references.
type Row struct {
	Rule entity.PricingRule

	minPriceRaw  string
	maxPriceRaw  string
	blacklistRaw string

	// Err carries a parse failure; the worker writes it back as a note
	// instead of evaluating the row.
	Err error
}

// LoadRules reads the rule sheet and returns every row whose check flag is
// set. Malformed rows are returned with Err set rather than dropped, so the
// operator sees the problem in the sheet.
func (s *Store) LoadRules(ctx context.Context) ([]Row, error) {
	readRange := fmt.Sprintf("%s!A%d:N", s.sheetName, s.firstRow)

	values, err := s.getValues(ctx, readRange)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.SheetUnavailable, "load rules")
	}

	var rows []Row

	for i, cells := range values {
		if !checked(cellString(cells, colCheck)) {
			continue
		}

		rows = append(rows, s.parseRow(s.firstRow+i, cells))
	}

	return rows, nil
}

func (s *Store) parseRow(rowIndex int, cells []any) Row {
	row := Row{
		Rule: entity.PricingRule{
			RowIndex:       rowIndex,
			ProductName:    cellString(cells, colProductName),
			ProductURL:     cellString(cells, colProductURL),
			ProductCompare: cellString(cells, colProductCompare),
		},
		minPriceRaw:  cellString(cells, colMinPrice),
		maxPriceRaw:  cellString(cells, colMaxPrice),
		blacklistRaw: cellString(cells, colBlacklist),
	}

	mode, err := value.ParseCompareMode(cellString(cells, colCompareMode))
	if err != nil {
		row.Err = err

		return row
	}

	row.Rule.CompareMode = mode

	if row.Rule.MinPriceAdjustment, err = parseFloatCell(cellString(cells, colMinAdjustment)); err != nil {
		row.Err = err

		return row
	}

	if row.Rule.MaxPriceAdjustment, err = parseFloatCell(cellString(cells, colMaxAdjustment)); err != nil {
		row.Err = err

		return row
	}

	if row.Rule.PriceRounding, err = parseIntCell(cellString(cells, colRounding)); err != nil {
		row.Err = err

		return row
	}

	relax, err := parseIntCell(cellString(cells, colRelax))
	if err != nil {
		row.Err = err

		return row
	}

	if relax != nil {
		row.Rule.Relax = *relax
	}

	return row
}

// Hydrate resolves the row's bound and blacklist cells. Literals are parsed
// in place; A1-style references are fetched from the linked sheet.
func (s *Store) Hydrate(ctx context.Context, row *Row) error {
	if row.Err != nil {
		return row.Err
	}

	var err error

	if row.Rule.MinPrice, err = s.resolveBound(ctx, row.minPriceRaw); err != nil {
		return fmt.Errorf("min price: %w", err)
	}

	if row.Rule.MaxPrice, err = s.resolveBound(ctx, row.maxPriceRaw); err != nil {
		return fmt.Errorf("max price: %w", err)
	}

	if row.Rule.Blacklist, err = s.resolveBlacklist(ctx, row.blacklistRaw); err != nil {
		return fmt.Errorf("blacklist: %w", err)
	}

	return nil
}

func (s *Store) resolveBound(ctx context.Context, raw string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	if !IsCellRef(raw) {
		return parseFloatCell(raw)
	}

	ref, err := parseCellRef(raw)
	if err != nil {
		return nil, err
	}

	values, err := s.getValues(ctx, ref)
	if err != nil {
		return nil, err
	}

	if len(values) == 0 || len(values[0]) == 0 {
		return nil, nil
	}

	return parseFloatCell(fmt.Sprint(values[0][0]))
}

func (s *Store) resolveBlacklist(ctx context.Context, raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	if !IsCellRef(raw) {
		return splitNames(raw), nil
	}

	ref, err := parseCellRef(raw)
	if err != nil {
		return nil, err
	}

	values, err := s.getValues(ctx, ref)
	if err != nil {
		return nil, err
	}

	var names []string

	for _, cells := range values {
		for _, cell := range cells {
			names = append(names, splitNames(fmt.Sprint(cell))...)
		}
	}

	return names, nil
}

func checked(flag string) bool {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

func cellString(cells []any, idx int) string {
	if idx >= len(cells) {
		return ""
	}

	return strings.TrimSpace(fmt.Sprint(cells[idx]))
}

// parseFloatCell tolerates the formats operators actually type into sheets:
// comma decimals, currency suffixes, surrounding whitespace.
func parseFloatCell(raw string) (*float64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return nil, nil
	}

	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.TrimRight(cleaned, "€$ ")

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, domain.NewError(errcodes.InvalidRowData,
			fmt.Sprintf("cell %q is not a number", raw))
	}

	return &parsed, nil
}

func parseIntCell(raw string) (*int, error) {
	parsed, err := parseFloatCell(raw)
	if err != nil || parsed == nil {
		return nil, err
	}

	asInt := int(*parsed)
	if float64(asInt) != *parsed {
		return nil, domain.NewError(errcodes.InvalidRowData,
			fmt.Sprintf("cell %q is not a whole number", raw))
	}

	return &asInt, nil
}

func splitNames(raw string) []string {
	var names []string

	for _, name := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	}) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}

	return names
}
