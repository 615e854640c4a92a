package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Row is one cart line as served to clients: the stored quantity joined
// with the product's display fields. The field names are part of the wire
// contract and must not change.
type Row struct {
	ProductID uuid.UUID       `json:"idproducts"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Entry is one submitted cart line: identifier and quantity only.
type Entry struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// SanitizeEntries drops entries with a missing or unparsable id or a
// non-positive quantity, and folds duplicate ids into the first occurrence
// by summing quantities. Order of first occurrence is preserved.
func SanitizeEntries(entries []Entry) []ValidEntry {
	index := map[uuid.UUID]int{}
	out := make([]ValidEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.ID == "" || entry.Quantity <= 0 {
			continue
		}
		id, err := uuid.Parse(entry.ID)
		if err != nil {
			continue
		}
		if at, ok := index[id]; ok {
			out[at].Quantity += entry.Quantity
			continue
		}
		index[id] = len(out)
		out = append(out, ValidEntry{ProductID: id, Quantity: entry.Quantity})
	}
	return out
}

// ValidEntry is a sanitized cart line ready for persistence.
type ValidEntry struct {
	ProductID uuid.UUID
	Quantity  int
}
