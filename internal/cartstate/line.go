package cartstate

import (
	"github.com/shopspring/decimal"
)

// Line is one product in the cart: server identity and display fields plus
// the locally tracked quantity. The json tags mirror the server's cart rows
// so a fetched cart unmarshals straight into lines.
type Line struct {
	ProductID string          `json:"idproducts"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Entry is the persisted wire shape of a line: identifier and quantity
// only, display fields stay client-side.
type Entry struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// sanitize drops lines with an empty product id or a non-positive quantity.
// Running it twice yields the same result.
func sanitize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			continue
		}
		out = append(out, line)
	}
	return out
}

// dedupe folds duplicate product ids into the first occurrence by summing
// quantities, preserving first-occurrence order.
func dedupe(lines []Line) []Line {
	index := map[string]int{}
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if at, ok := index[line.ProductID]; ok {
			out[at].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(out)
		out = append(out, line)
	}
	return out
}

// countLines sums the quantities across all lines.
func countLines(lines []Line) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

// mergeLines combines a server cart with locally accumulated lines. Server
// lines are authoritative for display fields and ordering; local quantities
// for products the server already has are added in, and local-only products
// are appended in local order. Nothing is dropped.
func mergeLines(server, local []Line) []Line {
	out := make([]Line, len(server))
	copy(out, server)

	index := map[string]int{}
	for i, line := range out {
		index[line.ProductID] = i
	}

	for _, line := range local {
		if at, ok := index[line.ProductID]; ok {
			out[at].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(out)
		out = append(out, line)
	}
	return out
}

// entries converts lines to their persisted wire shape.
func entries(lines []Line) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		out = append(out, Entry{ID: line.ProductID, Quantity: line.Quantity})
	}
	return out
}
