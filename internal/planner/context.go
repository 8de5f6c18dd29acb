package planner

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/leengari/chronosql/internal/domain/schema"
	"github.com/leengari/chronosql/internal/reltype"
)

// Context carries per-planning-pass construction state: a query identifier
// for logging, the interning type factory, and the reserved time column name
// in effect for this pass.
type Context struct {
	QueryID     uuid.UUID
	TypeFactory *reltype.Factory
	TimeColumn  string
	Logger      *slog.Logger
}

// NewContext creates a planning context with a fresh query ID and the default
// reserved time column
func NewContext(logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{
		QueryID:     uuid.New(),
		TypeFactory: reltype.NewFactory(),
		TimeColumn:  schema.TimeColumnName,
		Logger:      logger,
	}
}
