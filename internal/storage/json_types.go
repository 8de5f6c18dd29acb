package storage

// TableMeta describes a native table (meta.json in a table directory)
type TableMeta struct {
	Name      string       `json:"name"`
	Columns   []ColumnMeta `json:"columns"`
	Joinable  *bool        `json:"joinable,omitempty"`
	Broadcast *bool        `json:"broadcast,omitempty"`
}

// ExternalMeta describes an external table (external.json in a table directory)
type ExternalMeta struct {
	Name    string       `json:"name"`
	Format  string       `json:"format"`
	URIs    []string     `json:"uris"`
	Columns []ColumnMeta `json:"columns"`
}

type ColumnMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
}
