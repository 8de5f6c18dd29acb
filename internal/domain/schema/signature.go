package schema

import (
	"fmt"
	"strings"
)

type ColumnType string

const (
	ColumnTypeString    ColumnType = "STRING"
	ColumnTypeLong      ColumnType = "LONG"
	ColumnTypeDouble    ColumnType = "DOUBLE"
	ColumnTypeBool      ColumnType = "BOOL"
	ColumnTypeTimestamp ColumnType = "TIMESTAMP"
)

// TimeColumnName is the reserved name of the primary time column. Row-type
// derivation treats a column with this name specially for native datasources.
const TimeColumnName = "__time"

// ParseColumnType converts a stored type string into a ColumnType
func ParseColumnType(s string) (ColumnType, error) {
	switch ColumnType(strings.ToUpper(s)) {
	case ColumnTypeString:
		return ColumnTypeString, nil
	case ColumnTypeLong:
		return ColumnTypeLong, nil
	case ColumnTypeDouble:
		return ColumnTypeDouble, nil
	case ColumnTypeBool:
		return ColumnTypeBool, nil
	case ColumnTypeTimestamp:
		return ColumnTypeTimestamp, nil
	default:
		return "", fmt.Errorf("unknown column type: %s", s)
	}
}

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// RowSignature is an ordered list of named, typed columns describing a
// table's shape. Column positions are load-bearing for row-type construction,
// so ordering is significant and must be preserved end-to-end.
// Treat a RowSignature as immutable once built.
type RowSignature struct {
	Columns []Column `json:"columns"`
}

// Len returns the number of columns in the signature
func (s RowSignature) Len() int {
	return len(s.Columns)
}

// ColumnType looks up the type of the named column.
// Returns the type and true if found, empty and false otherwise.
func (s RowSignature) ColumnType(name string) (ColumnType, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col.Type, true
		}
	}
	return "", false
}

// Contains reports whether the signature has a column with the given name
func (s RowSignature) Contains(name string) bool {
	_, ok := s.ColumnType(name)
	return ok
}

// Equal reports structural equality: same columns, same types, same order
func (s RowSignature) Equal(other RowSignature) bool {
	if len(s.Columns) != len(other.Columns) {
		return false
	}
	for i, col := range s.Columns {
		if col != other.Columns[i] {
			return false
		}
	}
	return true
}

func (s RowSignature) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, col := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col.Name)
		b.WriteString(":")
		b.WriteString(string(col.Type))
	}
	b.WriteString("}")
	return b.String()
}

// Builder assembles a RowSignature column by column
type Builder struct {
	columns []Column
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a column and returns the builder for chaining
func (b *Builder) Add(name string, colType ColumnType) *Builder {
	b.columns = append(b.columns, Column{Name: name, Type: colType})
	return b
}

// Build validates the accumulated columns and produces the signature.
// Column names must be non-empty and unique within the signature.
func (b *Builder) Build() (RowSignature, error) {
	seen := make(map[string]bool, len(b.columns))
	for _, col := range b.columns {
		if col.Name == "" {
			return RowSignature{}, fmt.Errorf("column name must not be empty")
		}
		if seen[col.Name] {
			return RowSignature{}, fmt.Errorf("duplicate column name: %s", col.Name)
		}
		seen[col.Name] = true
	}

	columns := make([]Column, len(b.columns))
	copy(columns, b.columns)
	return RowSignature{Columns: columns}, nil
}
