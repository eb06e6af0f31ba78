// Package importer replaces the product table with rows read from a spreadsheet.
package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"inventrack/internal/core/types"
	"inventrack/internal/domain/product"
)

// Recognised columns after header normalization. Others are ignored.
const (
	colCategory         = "category"
	colSubcategory      = "subcategory"
	colOriginalQuantity = "original_quantity"
	colWholesalePrice   = "wholesale_price"
	colRetailPrice      = "retail_price"
	colProductCode      = "product_code"
	colBarcodeValue     = "barcode_value"
)

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeHeader turns " Wholesale  Price" into "wholesale_price".
func NormalizeHeader(h string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(h)), "_")
}

// Record is one data row keyed by normalized header.
type Record struct {
	Line   int // 1-based sheet row, the header being line 1
	Values map[string]string
}

func (r Record) get(col string) string {
	return r.Values[col]
}

// Records pairs every data row with the header row. Missing trailing cells
// read as empty strings; columns with a blank header are dropped.
func Records(table [][]string) []Record {
	if len(table) == 0 {
		return nil
	}
	headers := make([]string, len(table[0]))
	for i, h := range table[0] {
		headers[i] = NormalizeHeader(h)
	}

	out := make([]Record, 0, len(table)-1)
	for i, row := range table[1:] {
		values := make(map[string]string, len(headers))
		for j, h := range headers {
			if h == "" {
				continue
			}
			if j < len(row) {
				values[h] = strings.TrimSpace(row[j])
			} else {
				values[h] = ""
			}
		}
		out = append(out, Record{Line: i + 2, Values: values})
	}
	return out
}

// Row is a record turned into a product. Product.ProductCode is empty when the
// sheet carries none; Service assigns one from the category series.
type Row struct {
	Line     int
	Product  product.Product
	Warnings []string
}

// ParseRecord applies the defaulting rules:
//   - an invalid or negative quantity becomes 0
//   - an invalid or negative wholesale price becomes 0
//   - an invalid, negative or empty retail price becomes the wholesale price
//   - the barcode defaults to the product code
//
// ok is false for rows with neither category nor subcategory.
func ParseRecord(rec Record) (row Row, ok bool) {
	category := rec.get(colCategory)
	subcategory := rec.get(colSubcategory)
	if category == "" && subcategory == "" {
		return Row{}, false
	}

	row.Line = rec.Line
	warn := func(format string, args ...any) {
		row.Warnings = append(row.Warnings, fmt.Sprintf(format, args...))
	}

	if _, present := rec.Values[colOriginalQuantity]; !present {
		warn("missing %s column", colOriginalQuantity)
	}
	qty, err := types.ParseQuantity(rec.get(colOriginalQuantity))
	if err != nil {
		warn("invalid quantity %q, using 0", rec.get(colOriginalQuantity))
		qty = 0
	}

	if _, present := rec.Values[colWholesalePrice]; !present {
		warn("missing %s column", colWholesalePrice)
	}
	wholesale, err := types.ParseMoney(rec.get(colWholesalePrice))
	if err != nil {
		warn("invalid wholesale price %q, using 0", rec.get(colWholesalePrice))
		wholesale = types.Zero()
	}

	retail, err := types.ParseMoney(rec.get(colRetailPrice))
	if err != nil {
		retail = wholesale
	}

	p := product.Product{
		ProductCode:      rec.get(colProductCode),
		Category:         category,
		Subcategory:      subcategory,
		OriginalQuantity: qty,
		CurrentQuantity:  qty,
		WholesalePrice:   wholesale,
		RetailPrice:      decimal.NewNullDecimal(retail),
	}
	if barcode := rec.get(colBarcodeValue); barcode != "" {
		p.BarcodeValue = &barcode
	}
	p.RecomputeTotals()

	row.Product = p
	return row, true
}
