package planner

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/leengari/chronosql/internal/datasource"
	"github.com/leengari/chronosql/internal/domain/errors"
	"github.com/leengari/chronosql/internal/domain/schema"
	"github.com/leengari/chronosql/internal/plan"
	"github.com/leengari/chronosql/internal/reltype"
	"github.com/leengari/chronosql/internal/serde"
)

// TableTypeTable is the only table classification this adapter reports.
// Views and other classifications would be separate adapter types.
const TableTypeTable = "TABLE"

// Table adapts a resolved datasource and its row signature into the
// optimizer's table contract: row-type exposure, identity, and translation
// into a scan operator.
//
// A Table is immutable after construction and safe to share across
// concurrently-running planning passes without locking. RowType and ToRel are
// pure functions of the adapter and the supplied context; neither blocks.
//
// Identity (Equal/Hash) is defined over (source, signature) ONLY - see
// PlanningIdentity. The joinable/broadcast hints and the digest serializer
// are construction inputs, not identity inputs: two adapters that differ only
// in planning hints must still be recognized as the same table during plan
// canonicalization.
type Table struct {
	source     datasource.DataSource
	signature  schema.RowSignature
	serializer serde.DigestSerializer
	joinable   bool
	broadcast  bool
}

// NewTable validates and assembles a table adapter.
//
// The serializer is mandatory when source is external: external-source plan
// digests must come from a stable serialized form of the descriptor, so
// constructing an external table without a serializer is a wiring defect and
// fails with a ConfigurationError. A missing source or empty signature fails
// with an InvalidArgumentError.
func NewTable(
	source datasource.DataSource,
	signature schema.RowSignature,
	serializer serde.DigestSerializer,
	joinable bool,
	broadcast bool,
) (*Table, error) {
	if source == nil {
		return nil, errors.NewInvalidArgument("source", "datasource is required")
	}
	if signature.Len() == 0 {
		return nil, errors.NewInvalidArgument("signature", "row signature must have at least one column")
	}

	if source.Kind() == datasource.KindExternal && serializer == nil {
		// the serializer is what ExternalScanNode digests the descriptor with
		return nil, errors.NewConfiguration(
			"planner.Table",
			"digest serializer is required for external datasources",
		)
	}

	return &Table{
		source:     source,
		signature:  signature,
		serializer: serializer,
		joinable:   joinable,
		broadcast:  broadcast,
	}, nil
}

// Source returns the underlying datasource descriptor
func (t *Table) Source() datasource.DataSource {
	return t.source
}

// Signature returns the row signature the adapter was built with
func (t *Table) Signature() schema.RowSignature {
	return t.signature
}

// IsJoinable reports the externally-decided join hint
func (t *Table) IsJoinable() bool {
	return t.joinable
}

// IsBroadcast reports the externally-decided broadcast hint
func (t *Table) IsBroadcast() bool {
	return t.broadcast
}

// TableType classifies the adapter for the optimizer: always an ordinary
// table, never a view
func (t *Table) TableType() string {
	return TableTypeTable
}

// Statistic reports unknown cardinality/selectivity. Cost estimation is the
// optimizer's collaborator's job, not this adapter's.
func (t *Table) Statistic() Statistic {
	return UnknownStatistic
}

// IsRolledUp reports whether the column is pre-aggregated. This adapter never
// represents a rolled-up view, so the answer is false for every column name,
// known or not.
func (t *Table) IsRolledUp(column string) bool {
	return false
}

// RolledUpColumnValidInsideAgg reports whether the column may appear inside
// an aggregate call. Always true here, for any column name.
func (t *Table) RolledUpColumnValidInsideAgg(column string) bool {
	return true
}

// RowType derives the optimizer's row type from the signature using the
// reserved time column name.
func (t *Table) RowType(factory *reltype.Factory) *reltype.RelDataType {
	return t.RowTypeWithTimeColumn(factory, schema.TimeColumnName)
}

// RowTypeWithTimeColumn derives the row type with an explicit time column
// name.
//
// The one kind-sensitive typing rule lives here: the time column is typecast
// to TIMESTAMP if and only if the datasource is NOT external. External
// readers declare their own time column type (often a plain string), and the
// planner must see exactly what the reader will produce.
func (t *Table) RowTypeWithTimeColumn(factory *reltype.Factory, timeColumn string) *reltype.RelDataType {
	var typecastTimeColumn bool
	switch kind := t.source.Kind(); kind {
	case datasource.KindTable:
		typecastTimeColumn = true
	case datasource.KindExternal:
		typecastTimeColumn = false
	default:
		panic(fmt.Sprintf("unhandled datasource kind: %s", kind))
	}

	return reltype.FromSignature(factory, t.signature, timeColumn, typecastTimeColumn)
}

// ToRel translates the adapter into the logical scan operator for its
// datasource kind. For any well-formed adapter the translation succeeds; the
// error return exists for the external path's serializer, which NewTable has
// already guaranteed to be present.
func (t *Table) ToRel(ctx *Context, handle plan.TableHandle) (plan.Node, error) {
	rowType := t.RowTypeWithTimeColumn(ctx.TypeFactory, ctx.TimeColumn)

	switch kind := t.source.Kind(); kind {
	case datasource.KindExternal:
		// a plain TableScanNode digests on the table name, which an
		// anonymous external read does not have
		ext := t.source.(*datasource.ExternalDataSource)
		return plan.NewExternalScanNode(ext, rowType, t.serializer)
	case datasource.KindTable:
		return plan.NewTableScanNode(handle, rowType), nil
	default:
		panic(fmt.Sprintf("unhandled datasource kind: %s", kind))
	}
}

// Identity is the planning identity of a table adapter: the projection of
// its construction inputs that equality and hashing are defined over.
type Identity struct {
	Source    datasource.DataSource
	Signature schema.RowSignature
}

func (id Identity) Equal(other Identity) bool {
	return id.Source.Equal(other.Source) && id.Signature.Equal(other.Signature)
}

// Hash returns a 64-bit hash consistent with Equal
func (id Identity) Hash() uint64 {
	h := xxhash.New()
	h.WriteString(string(id.Source.Kind()))
	h.WriteString("\x00")
	h.WriteString(id.Source.String())
	h.WriteString("\x00")
	h.WriteString(id.Signature.String())
	return h.Sum64()
}

// PlanningIdentity projects the adapter down to the fields its identity is
// defined over
func (t *Table) PlanningIdentity() Identity {
	return Identity{
		Source:    t.source,
		Signature: t.signature,
	}
}

// Equal reports planning-identity equality; hints and serializer are ignored
func (t *Table) Equal(other *Table) bool {
	if t == other {
		return true
	}
	if other == nil {
		return false
	}
	return t.PlanningIdentity().Equal(other.PlanningIdentity())
}

// Hash returns the planning-identity hash
func (t *Table) Hash() uint64 {
	return t.PlanningIdentity().Hash()
}

func (t *Table) String() string {
	return fmt.Sprintf("Table{source=%s, signature=%s}", t.source, t.signature)
}
