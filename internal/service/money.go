package service

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/bq-cafe/pos-api/internal/database"
)

// ComputeTotal sums line amounts. The result does not depend on line order.
func ComputeTotal(lines []database.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(NumericToDecimal(l.Amount))
	}
	return total
}

// LineGroup is the quantity and amount of every line sharing an item name.
type LineGroup struct {
	ItemName string
	Qty      int32
	Amount   decimal.Decimal
}

// GroupLinesByName merges lines with the same item name, keeping the order in
// which each name first appears. Lines of one name at different prices are
// summed together.
func GroupLinesByName(lines []database.OrderItem) []LineGroup {
	idx := make(map[string]int, len(lines))
	var groups []LineGroup
	for _, l := range lines {
		i, ok := idx[l.ItemName]
		if !ok {
			i = len(groups)
			idx[l.ItemName] = i
			groups = append(groups, LineGroup{ItemName: l.ItemName, Amount: decimal.Zero})
		}
		groups[i].Qty += l.Qty
		groups[i].Amount = groups[i].Amount.Add(NumericToDecimal(l.Amount))
	}
	return groups
}

// lineAmount is price * qty.
func lineAmount(price pgtype.Numeric, qty int32) pgtype.Numeric {
	return DecimalToNumeric(NumericToDecimal(price).Mul(decimal.NewFromInt32(qty)))
}

// NumericToDecimal converts a NUMERIC column value. NULL or unreadable
// values read as zero.
func NumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DecimalToNumeric converts an amount for storage, fixed at two decimals.
func DecimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
