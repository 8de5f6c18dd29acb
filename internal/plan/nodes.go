package plan

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/leengari/chronosql/internal/datasource"
	"github.com/leengari/chronosql/internal/reltype"
	"github.com/leengari/chronosql/internal/serde"
)

// Node is the base interface for all logical plan nodes
type Node interface {
	// Children returns child nodes for tree walking
	Children() []Node

	// Metadata returns attached metadata (never nil)
	Metadata() map[string]any

	// NodeType returns the type identifier (for debugging/logging)
	NodeType() string

	// Digest returns the canonical form the optimizer uses to detect
	// structurally equivalent nodes for caching/canonicalization
	Digest() string
}

// TableHandle is the stable qualified identity of a catalog table
type TableHandle struct {
	Schema string
	Name   string
}

func (h TableHandle) QualifiedName() string {
	return h.Schema + "." + h.Name
}

// TableScanNode represents a scan over a native table (leaf node).
// Its digest is keyed on the stable qualified table name.
type TableScanNode struct {
	Handle  TableHandle
	RowType *reltype.RelDataType

	metadata map[string]any
}

func NewTableScanNode(handle TableHandle, rowType *reltype.RelDataType) *TableScanNode {
	return &TableScanNode{
		Handle:  handle,
		RowType: rowType,
	}
}

func (n *TableScanNode) Children() []Node {
	return nil // Leaf node has no children
}

func (n *TableScanNode) Metadata() map[string]any {
	if n.metadata == nil {
		n.metadata = make(map[string]any)
	}
	return n.metadata
}

func (n *TableScanNode) NodeType() string {
	return "TABLE_SCAN"
}

func (n *TableScanNode) Digest() string {
	return fmt.Sprintf("TableScan(table=[%s])", n.Handle.QualifiedName())
}

// ExternalScanNode represents a scan over an external datasource (leaf node).
//
// It cannot digest like TableScanNode: external datasources are anonymous, so
// there is no stable table name to key on, and two different external reads
// must not collapse into the same cached plan. The digest is derived from the
// serialized descriptor instead; descriptors that serialize to equal bytes
// produce equal digests.
type ExternalScanNode struct {
	Source  *datasource.ExternalDataSource
	RowType *reltype.RelDataType

	digest   string
	hash     uint64
	metadata map[string]any
}

// digestEnvelope pins the kind discriminator into the serialized form
type digestEnvelope struct {
	Kind   datasource.Kind                `json:"kind"`
	Source *datasource.ExternalDataSource `json:"source"`
}

// NewExternalScanNode serializes the descriptor eagerly so Digest() is total.
// A serialization failure means the serializer cannot handle a well-formed
// descriptor and is reported to the caller.
func NewExternalScanNode(
	source *datasource.ExternalDataSource,
	rowType *reltype.RelDataType,
	serializer serde.DigestSerializer,
) (*ExternalScanNode, error) {
	payload, err := serializer.SerializeForDigest(digestEnvelope{
		Kind:   source.Kind(),
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize external datasource for digest: %w", err)
	}

	return &ExternalScanNode{
		Source:  source,
		RowType: rowType,
		digest:  fmt.Sprintf("ExternalScan(source=[%s])", payload),
		hash:    xxhash.Sum64(payload),
	}, nil
}

func (n *ExternalScanNode) Children() []Node {
	return nil // Leaf node has no children
}

func (n *ExternalScanNode) Metadata() map[string]any {
	if n.metadata == nil {
		n.metadata = make(map[string]any)
	}
	return n.metadata
}

func (n *ExternalScanNode) NodeType() string {
	return "EXTERNAL_SCAN"
}

func (n *ExternalScanNode) Digest() string {
	return n.digest
}

// DigestHash returns a 64-bit fingerprint of the serialized descriptor
func (n *ExternalScanNode) DigestHash() uint64 {
	return n.hash
}
