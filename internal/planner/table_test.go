package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leengari/chronosql/internal/datasource"
	errs "github.com/leengari/chronosql/internal/domain/errors"
	"github.com/leengari/chronosql/internal/domain/schema"
	"github.com/leengari/chronosql/internal/plan"
	"github.com/leengari/chronosql/internal/reltype"
	"github.com/leengari/chronosql/internal/serde"
)

func testSignature(t *testing.T) schema.RowSignature {
	t.Helper()
	sig, err := schema.NewBuilder().
		Add(schema.TimeColumnName, schema.ColumnTypeString).
		Add("dim", schema.ColumnTypeString).
		Add("metric", schema.ColumnTypeLong).
		Build()
	require.NoError(t, err)
	return sig
}

func nativeTable(t *testing.T, name string, joinable, broadcast bool) *Table {
	t.Helper()
	tbl, err := NewTable(datasource.NewTableDataSource(name), testSignature(t), nil, joinable, broadcast)
	require.NoError(t, err)
	return tbl
}

func externalTable(t *testing.T, uris ...string) *Table {
	t.Helper()
	sig := testSignature(t)
	src := datasource.NewExternalDataSource("csv", uris, sig)
	tbl, err := NewTable(src, sig, serde.NewJSONSerializer(), false, false)
	require.NoError(t, err)
	return tbl
}

func TestNewTable_MissingInputs(t *testing.T) {
	sig := testSignature(t)

	_, err := NewTable(nil, sig, nil, false, false)
	var invalidArg *errs.InvalidArgumentError
	require.ErrorAs(t, err, &invalidArg)
	require.Equal(t, "source", invalidArg.Argument)

	_, err = NewTable(datasource.NewTableDataSource("metrics"), schema.RowSignature{}, nil, false, false)
	require.ErrorAs(t, err, &invalidArg)
	require.Equal(t, "signature", invalidArg.Argument)
}

func TestNewTable_ExternalRequiresSerializer(t *testing.T) {
	sig := testSignature(t)
	src := datasource.NewExternalDataSource("csv", []string{"s3://bucket/a.csv"}, sig)

	_, err := NewTable(src, sig, nil, false, false)
	var configErr *errs.ConfigurationError
	require.ErrorAs(t, err, &configErr)

	// same inputs with a serializer succeed
	tbl, err := NewTable(src, sig, serde.NewJSONSerializer(), false, false)
	require.NoError(t, err)
	require.NotNil(t, tbl)
}

func TestNewTable_NativeWithoutSerializer(t *testing.T) {
	// native tables never digest through a serializer, so none is required
	tbl, err := NewTable(datasource.NewTableDataSource("metrics"), testSignature(t), nil, true, false)
	require.NoError(t, err)
	require.True(t, tbl.IsJoinable())
	require.False(t, tbl.IsBroadcast())
}

func TestTable_EqualityOverIdentityOnly(t *testing.T) {
	a := nativeTable(t, "metrics", false, false)
	b := nativeTable(t, "metrics", true, true) // hints differ
	c := nativeTable(t, "events", false, false)

	// serializer attachment must not matter either
	d, err := NewTable(datasource.NewTableDataSource("metrics"), testSignature(t), serde.NewJSONSerializer(), false, false)
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.True(t, a.Equal(d))
	require.False(t, a.Equal(c))
	require.True(t, a.Equal(a))
	require.False(t, a.Equal(nil))
}

func TestTable_EqualityDependsOnSignature(t *testing.T) {
	sig, err := schema.NewBuilder().
		Add(schema.TimeColumnName, schema.ColumnTypeLong).
		Add("dim", schema.ColumnTypeString).
		Build()
	require.NoError(t, err)

	a := nativeTable(t, "metrics", false, false)
	b, err := NewTable(datasource.NewTableDataSource("metrics"), sig, nil, false, false)
	require.NoError(t, err)

	require.False(t, a.Equal(b))
}

func TestTable_EqualityAcrossKinds(t *testing.T) {
	sig := testSignature(t)
	native := nativeTable(t, "metrics", false, false)

	ext, err := NewTable(
		datasource.NewExternalDataSource("csv", []string{"metrics"}, sig),
		sig,
		serde.NewJSONSerializer(),
		false, false,
	)
	require.NoError(t, err)

	require.False(t, native.Equal(ext))
	require.False(t, ext.Equal(native))
}

func TestTable_HashConsistentWithEqual(t *testing.T) {
	a := nativeTable(t, "metrics", false, true)
	b := nativeTable(t, "metrics", true, false)
	c := nativeTable(t, "events", false, false)

	require.Equal(t, a.Hash(), b.Hash())
	require.NotEqual(t, a.Hash(), c.Hash())

	// hash is a pure function of the planning identity
	require.Equal(t, a.PlanningIdentity().Hash(), a.Hash())
}

func TestTable_RowTypeTypecastsTimeColumnForNative(t *testing.T) {
	factory := reltype.NewFactory()

	rowType := nativeTable(t, "metrics", false, false).RowType(factory)
	require.Equal(t, 3, rowType.FieldCount())

	timeField, ok := rowType.FieldNamed(schema.TimeColumnName)
	require.True(t, ok)
	require.Equal(t, reltype.TypeTimestamp, timeField.SQLType)
	require.False(t, timeField.Nullable)

	// the other columns map verbatim
	dim, _ := rowType.FieldNamed("dim")
	require.Equal(t, reltype.TypeVarchar, dim.SQLType)
	metric, _ := rowType.FieldNamed("metric")
	require.Equal(t, reltype.TypeBigint, metric.SQLType)
}

func TestTable_RowTypePreservesTimeColumnForExternal(t *testing.T) {
	factory := reltype.NewFactory()

	rowType := externalTable(t, "s3://bucket/a.csv").RowType(factory)

	// the signature declares __time as STRING and external sources keep it
	timeField, ok := rowType.FieldNamed(schema.TimeColumnName)
	require.True(t, ok)
	require.Equal(t, reltype.TypeVarchar, timeField.SQLType)
	require.True(t, timeField.Nullable)
}

func TestTable_RowTypeCustomTimeColumn(t *testing.T) {
	factory := reltype.NewFactory()
	sig, err := schema.NewBuilder().
		Add("event_time", schema.ColumnTypeString).
		Add("dim", schema.ColumnTypeString).
		Build()
	require.NoError(t, err)

	tbl, err := NewTable(datasource.NewTableDataSource("events"), sig, nil, false, false)
	require.NoError(t, err)

	rowType := tbl.RowTypeWithTimeColumn(factory, "event_time")
	field, ok := rowType.FieldNamed("event_time")
	require.True(t, ok)
	require.Equal(t, reltype.TypeTimestamp, field.SQLType)

	// the default reserved name does not match, so nothing is typecast
	rowType = tbl.RowType(factory)
	field, _ = rowType.FieldNamed("event_time")
	require.Equal(t, reltype.TypeVarchar, field.SQLType)
}

func TestTable_RowTypeOrderingPreserved(t *testing.T) {
	factory := reltype.NewFactory()
	rowType := nativeTable(t, "metrics", false, false).RowType(factory)

	require.Equal(t, schema.TimeColumnName, rowType.Field(0).Name)
	require.Equal(t, "dim", rowType.Field(1).Name)
	require.Equal(t, "metric", rowType.Field(2).Name)
}

func TestTable_RowTypeIdempotent(t *testing.T) {
	factory := reltype.NewFactory()
	tbl := nativeTable(t, "metrics", false, false)

	first := tbl.RowType(factory)
	second := tbl.RowType(factory)
	require.Same(t, first, second)
}

func TestTable_FixedAnswers(t *testing.T) {
	tbl := nativeTable(t, "metrics", false, false)

	require.Equal(t, TableTypeTable, tbl.TableType())
	require.True(t, tbl.Statistic().IsUnknown())

	for _, column := range []string{schema.TimeColumnName, "dim", "no_such_column", ""} {
		require.False(t, tbl.IsRolledUp(column))
		require.True(t, tbl.RolledUpColumnValidInsideAgg(column))
	}
}

func TestTable_ToRelNative(t *testing.T) {
	ctx := NewContext(nil)
	tbl := nativeTable(t, "metrics", false, false)

	node, err := tbl.ToRel(ctx, plan.TableHandle{Schema: "chronosql", Name: "metrics"})
	require.NoError(t, err)

	scan, ok := node.(*plan.TableScanNode)
	require.True(t, ok)
	require.Equal(t, "TableScan(table=[chronosql.metrics])", scan.Digest())

	// the digest depends only on the handle identity, not on the adapter's hints
	other := nativeTable(t, "metrics", true, true)
	otherNode, err := other.ToRel(ctx, plan.TableHandle{Schema: "chronosql", Name: "metrics"})
	require.NoError(t, err)
	require.Equal(t, node.Digest(), otherNode.Digest())
}

func TestTable_ToRelExternal(t *testing.T) {
	ctx := NewContext(nil)

	a := externalTable(t, "s3://bucket/a.csv")
	b := externalTable(t, "s3://bucket/a.csv")
	c := externalTable(t, "s3://bucket/b.csv")

	handle := plan.TableHandle{Schema: "chronosql", Name: "external"}

	nodeA, err := a.ToRel(ctx, handle)
	require.NoError(t, err)
	nodeB, err := b.ToRel(ctx, handle)
	require.NoError(t, err)
	nodeC, err := c.ToRel(ctx, handle)
	require.NoError(t, err)

	scanA, ok := nodeA.(*plan.ExternalScanNode)
	require.True(t, ok)
	scanB := nodeB.(*plan.ExternalScanNode)
	scanC := nodeC.(*plan.ExternalScanNode)

	// descriptors that serialize identically digest identically
	require.Equal(t, scanA.Digest(), scanB.Digest())
	require.Equal(t, scanA.DigestHash(), scanB.DigestHash())

	// different descriptors must not collapse into one cached plan
	require.NotEqual(t, scanA.Digest(), scanC.Digest())
}

func TestTable_ToRelIdempotent(t *testing.T) {
	ctx := NewContext(nil)
	handle := plan.TableHandle{Schema: "chronosql", Name: "external"}
	tbl := externalTable(t, "s3://bucket/a.csv")

	first, err := tbl.ToRel(ctx, handle)
	require.NoError(t, err)
	second, err := tbl.ToRel(ctx, handle)
	require.NoError(t, err)

	require.Equal(t, first.Digest(), second.Digest())
	require.Equal(t, first.NodeType(), second.NodeType())
}

func TestTable_ConcurrentUse(t *testing.T) {
	// one adapter shared across concurrent planning passes, no locking
	tbl := externalTable(t, "s3://bucket/a.csv")
	handle := plan.TableHandle{Schema: "chronosql", Name: "external"}

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			ctx := NewContext(nil)
			node, err := tbl.ToRel(ctx, handle)
			if err != nil {
				done <- err.Error()
				return
			}
			tbl.RowType(ctx.TypeFactory)
			done <- node.Digest()
		}()
	}

	first := <-done
	for i := 1; i < 8; i++ {
		require.Equal(t, first, <-done)
	}
}

func TestTable_String(t *testing.T) {
	tbl := nativeTable(t, "metrics", false, false)
	require.Contains(t, tbl.String(), "TableDataSource{name=metrics}")
	require.Contains(t, tbl.String(), "__time:STRING")
}

func TestPlanScan(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.Register("metrics", nativeTable(t, "metrics", true, false)))
	require.NoError(t, catalog.Register("events", externalTable(t, "s3://bucket/events.csv")))

	ctx := NewContext(nil)

	node, err := PlanScan(ctx, catalog, "chronosql", "metrics")
	require.NoError(t, err)
	require.Equal(t, "TABLE_SCAN", node.NodeType())
	require.Equal(t, true, node.Metadata()["joinable"])
	require.Equal(t, ctx.QueryID.String(), node.Metadata()["query_id"])

	node, err = PlanScan(ctx, catalog, "chronosql", "events")
	require.NoError(t, err)
	require.Equal(t, "EXTERNAL_SCAN", node.NodeType())

	_, err = PlanScan(ctx, catalog, "chronosql", "missing")
	require.Error(t, err)
}

func TestCatalog_RegisterDuplicate(t *testing.T) {
	catalog := NewCatalog()
	tbl := nativeTable(t, "metrics", false, false)

	require.NoError(t, catalog.Register("metrics", tbl))
	err := catalog.Register("metrics", tbl)
	require.Error(t, err)
	require.Equal(t, []string{"metrics"}, catalog.Names())
}
