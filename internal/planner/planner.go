package planner

import (
	"fmt"
	"log/slog"

	"github.com/leengari/chronosql/internal/plan"
)

// PlanScan resolves a table reference against the catalog and converts it
// into the logical scan leaf for its datasource kind
func PlanScan(ctx *Context, catalog *Catalog, schemaName, tableName string) (plan.Node, error) {
	// 1. Resolve the table reference
	table, err := catalog.Resolve(tableName)
	if err != nil {
		return nil, err
	}

	// 2. Translate into the scan operator
	handle := plan.TableHandle{Schema: schemaName, Name: tableName}
	node, err := table.ToRel(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to build scan for %s: %w", handle.QualifiedName(), err)
	}

	// 3. Attach metadata for explain output
	node.Metadata()["query_id"] = ctx.QueryID.String()
	node.Metadata()["source_kind"] = string(table.Source().Kind())
	node.Metadata()["row_type"] = table.RowTypeWithTimeColumn(ctx.TypeFactory, ctx.TimeColumn).String()
	node.Metadata()["joinable"] = table.IsJoinable()
	node.Metadata()["broadcast"] = table.IsBroadcast()

	ctx.Logger.Debug("planned scan",
		slog.String("query_id", ctx.QueryID.String()),
		slog.String("table", handle.QualifiedName()),
		slog.String("node_type", node.NodeType()),
	)

	return node, nil
}
