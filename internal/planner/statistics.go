package planner

// Statistic carries what the planner knows about a table's cardinality.
// A nil RowCount means unknown.
type Statistic struct {
	RowCount *float64
}

// UnknownStatistic is the statistic of a table nobody has estimated.
// The table adapter reports this unconditionally; estimation belongs to the
// cost model, not to the adapter.
var UnknownStatistic = Statistic{}

// IsUnknown reports whether no row count is available
func (s Statistic) IsUnknown() bool {
	return s.RowCount == nil
}
