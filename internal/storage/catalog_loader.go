package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/chronosql/internal/config"
	"github.com/leengari/chronosql/internal/datasource"
	"github.com/leengari/chronosql/internal/domain/schema"
	"github.com/leengari/chronosql/internal/planner"
	"github.com/leengari/chronosql/internal/serde"
)

// LoadCatalog loads the planner catalog from the given directory path.
// Each subdirectory holds one table: meta.json for native tables,
// external.json for external tables.
func LoadCatalog(
	dir string,
	cfg *config.Config,
	serializer serde.DigestSerializer,
	logger *slog.Logger,
) (*planner.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	catalog := planner.NewCatalog()

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		tablePath := filepath.Join(dir, entry.Name())

		name, table, err := loadTable(tablePath, cfg, serializer)
		if err != nil {
			return nil, fmt.Errorf("failed to load table %s: %w", entry.Name(), err)
		}

		if err := catalog.Register(name, table); err != nil {
			return nil, err
		}
	}

	logger.Info("Catalog loaded successfully",
		slog.String("path", dir),
		slog.Int("table_count", catalog.Len()),
	)

	return catalog, nil
}

// loadTable reads one table directory and builds its adapter
func loadTable(tablePath string, cfg *config.Config, serializer serde.DigestSerializer) (string, *planner.Table, error) {
	metaPath := filepath.Join(tablePath, "meta.json")
	if _, err := os.Stat(metaPath); err == nil {
		return loadNativeTable(metaPath, cfg, serializer)
	}

	externalPath := filepath.Join(tablePath, "external.json")
	if _, err := os.Stat(externalPath); err == nil {
		return loadExternalTable(externalPath, cfg, serializer)
	}

	return "", nil, fmt.Errorf("no meta.json or external.json in %s", tablePath)
}

func loadNativeTable(metaPath string, cfg *config.Config, serializer serde.DigestSerializer) (string, *planner.Table, error) {
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read table meta: %w", err)
	}

	var meta TableMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", nil, fmt.Errorf("failed to parse table meta: %w", err)
	}

	signature, err := buildSignature(meta.Columns)
	if err != nil {
		return "", nil, err
	}

	joinable := cfg.Planner.DefaultJoinable
	if meta.Joinable != nil {
		joinable = *meta.Joinable
	}
	broadcast := cfg.Planner.DefaultBroadcast
	if meta.Broadcast != nil {
		broadcast = *meta.Broadcast
	}

	table, err := planner.NewTable(
		datasource.NewTableDataSource(meta.Name),
		signature,
		serializer,
		joinable,
		broadcast,
	)
	if err != nil {
		return "", nil, err
	}
	return meta.Name, table, nil
}

func loadExternalTable(externalPath string, cfg *config.Config, serializer serde.DigestSerializer) (string, *planner.Table, error) {
	data, err := os.ReadFile(externalPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read external table meta: %w", err)
	}

	var meta ExternalMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", nil, fmt.Errorf("failed to parse external table meta: %w", err)
	}

	signature, err := buildSignature(meta.Columns)
	if err != nil {
		return "", nil, err
	}

	// external tables never join or broadcast by default
	table, err := planner.NewTable(
		datasource.NewExternalDataSource(meta.Format, meta.URIs, signature),
		signature,
		serializer,
		false,
		false,
	)
	if err != nil {
		return "", nil, err
	}
	return meta.Name, table, nil
}

func buildSignature(columns []ColumnMeta) (schema.RowSignature, error) {
	builder := schema.NewBuilder()
	for _, col := range columns {
		colType, err := schema.ParseColumnType(col.Type)
		if err != nil {
			return schema.RowSignature{}, fmt.Errorf("column %s: %w", col.Name, err)
		}
		builder.Add(col.Name, colType)
	}
	return builder.Build()
}
