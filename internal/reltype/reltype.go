package reltype

import (
	"strings"
	"sync"

	"github.com/leengari/chronosql/internal/domain/schema"
)

// SQLTypeName is the optimizer-side SQL type of a row-type field
type SQLTypeName string

const (
	TypeVarchar   SQLTypeName = "VARCHAR"
	TypeBigint    SQLTypeName = "BIGINT"
	TypeDouble    SQLTypeName = "DOUBLE"
	TypeBoolean   SQLTypeName = "BOOLEAN"
	TypeTimestamp SQLTypeName = "TIMESTAMP"
)

// Field is one column of a relational row type
type Field struct {
	Name     string
	SQLType  SQLTypeName
	Nullable bool
}

// RelDataType is the optimizer's representation of a table's row shape.
// Instances are created through a Factory and are immutable; structurally
// equal row types built by the same factory share one instance.
type RelDataType struct {
	fields []Field
	digest string
}

// FieldCount returns the number of fields
func (t *RelDataType) FieldCount() int {
	return len(t.fields)
}

// Field returns the field at position i
func (t *RelDataType) Field(i int) Field {
	return t.fields[i]
}

// Fields returns a copy of the field list in declaration order
func (t *RelDataType) Fields() []Field {
	out := make([]Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// FieldNamed looks up a field by name.
// Returns the field and true if found, zero and false otherwise.
func (t *RelDataType) FieldNamed(name string) (Field, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// String returns the canonical form, e.g.
// RecordType(TIMESTAMP NOT NULL __time, VARCHAR dim)
func (t *RelDataType) String() string {
	return t.digest
}

func canonical(fields []Field) string {
	var b strings.Builder
	b.WriteString("RecordType(")
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(f.SQLType))
		if !f.Nullable {
			b.WriteString(" NOT NULL")
		}
		b.WriteString(" ")
		b.WriteString(f.Name)
	}
	b.WriteString(")")
	return b.String()
}

// Factory creates interned row types: two structurally equal field lists
// resolve to the same *RelDataType. Safe for concurrent use.
type Factory struct {
	mu    sync.Mutex
	cache map[string]*RelDataType
}

func NewFactory() *Factory {
	return &Factory{cache: make(map[string]*RelDataType)}
}

// CreateStructType builds (or returns the cached) row type for the fields
func (f *Factory) CreateStructType(fields []Field) *RelDataType {
	key := canonical(fields)

	f.mu.Lock()
	defer f.mu.Unlock()

	if t, ok := f.cache[key]; ok {
		return t
	}

	owned := make([]Field, len(fields))
	copy(owned, fields)
	t := &RelDataType{fields: owned, digest: key}
	f.cache[key] = t
	return t
}

// FromSignature converts a row signature into a relational row type,
// preserving column order.
//
// When typecastTimeColumn is set, the column named timeColumn is reported as
// a non-null TIMESTAMP regardless of its declared type. Callers planning over
// external datasources must NOT set it: an external reader may declare its
// time column as a plain string or number, and forcing a timestamp type there
// desynchronizes planner type inference from the reader's actual values
// (e.g. TIME_PARSE over a string time column would stop resolving).
func FromSignature(f *Factory, sig schema.RowSignature, timeColumn string, typecastTimeColumn bool) *RelDataType {
	fields := make([]Field, 0, sig.Len())
	for _, col := range sig.Columns {
		if typecastTimeColumn && col.Name == timeColumn {
			fields = append(fields, Field{
				Name:     col.Name,
				SQLType:  TypeTimestamp,
				Nullable: false,
			})
			continue
		}
		fields = append(fields, Field{
			Name:     col.Name,
			SQLType:  sqlTypeFor(col.Type),
			Nullable: true,
		})
	}
	return f.CreateStructType(fields)
}

func sqlTypeFor(t schema.ColumnType) SQLTypeName {
	switch t {
	case schema.ColumnTypeString:
		return TypeVarchar
	case schema.ColumnTypeLong:
		return TypeBigint
	case schema.ColumnTypeDouble:
		return TypeDouble
	case schema.ColumnTypeBool:
		return TypeBoolean
	case schema.ColumnTypeTimestamp:
		return TypeTimestamp
	default:
		// unrecognized storage types surface as text
		return TypeVarchar
	}
}
