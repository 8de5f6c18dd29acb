package datasource

import (
	"fmt"
	"strings"

	"github.com/leengari/chronosql/internal/domain/schema"
)

// Kind identifies a datasource variant
type Kind string

const (
	// KindTable is a native table addressed by name
	KindTable Kind = "table"
	// KindExternal is an ad-hoc external read (files/URIs with a declared schema)
	KindExternal Kind = "external"
)

// DataSource describes what is being read: a native table, an external
// connector invocation, etc. The set of variants is closed; code that
// dispatches on Kind() must handle every declared kind explicitly.
//
// Implementations are immutable values. Equal is structural and is part of
// the planner's table identity, so it must stay consistent with String().
type DataSource interface {
	Kind() Kind
	Equal(other DataSource) bool
	String() string

	// closes the variant set to this package
	isDataSource()
}

// TableDataSource identifies a native table by name
type TableDataSource struct {
	Name string `json:"name"`
}

func NewTableDataSource(name string) *TableDataSource {
	return &TableDataSource{Name: name}
}

func (s *TableDataSource) Kind() Kind {
	return KindTable
}

func (s *TableDataSource) Equal(other DataSource) bool {
	o, ok := other.(*TableDataSource)
	return ok && s.Name == o.Name
}

func (s *TableDataSource) String() string {
	return fmt.Sprintf("TableDataSource{name=%s}", s.Name)
}

func (s *TableDataSource) isDataSource() {}

// ExternalDataSource describes an anonymous external read: an input format,
// the URIs to read, and the schema the caller declared for the data. Two
// syntactically different reads are only the same datasource if all three
// match.
type ExternalDataSource struct {
	Format    string              `json:"format"`
	URIs      []string            `json:"uris"`
	Signature schema.RowSignature `json:"signature"`
}

func NewExternalDataSource(format string, uris []string, signature schema.RowSignature) *ExternalDataSource {
	return &ExternalDataSource{
		Format:    format,
		URIs:      uris,
		Signature: signature,
	}
}

func (s *ExternalDataSource) Kind() Kind {
	return KindExternal
}

func (s *ExternalDataSource) Equal(other DataSource) bool {
	o, ok := other.(*ExternalDataSource)
	if !ok {
		return false
	}
	if s.Format != o.Format || len(s.URIs) != len(o.URIs) {
		return false
	}
	for i, uri := range s.URIs {
		if uri != o.URIs[i] {
			return false
		}
	}
	return s.Signature.Equal(o.Signature)
}

func (s *ExternalDataSource) String() string {
	return fmt.Sprintf(
		"ExternalDataSource{format=%s, uris=[%s], signature=%s}",
		s.Format,
		strings.Join(s.URIs, ", "),
		s.Signature,
	)
}

func (s *ExternalDataSource) isDataSource() {}
