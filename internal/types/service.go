package types

// Category represents service categories
type Category string

const (
	CategoryFilesystem Category = "filesystem"
	CategoryUtility    Category = "utility"
)

// Service represents a service definition exposed to the workflow host
type Service struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Category     Category    `json:"category"`
	Capabilities []string    `json:"capabilities"`
	Tools        []Tool      `json:"tools"`
	DataModels   []DataModel `json:"data_models,omitempty"`
}

// Tool represents one node operation with its declarative parameter schema
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
}

// DataModel represents a data structure referenced by tool results
type DataModel struct {
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields"`
}

// Context provides per-execution host context for node runs.
//
// Item and Binary expose the originating input record to nodes whose
// parameters reference it (e.g. writing a record property or a named
// binary field to disk).
type Context struct {
	RunID      *string                `json:"run_id,omitempty"`
	WorkflowID *string                `json:"workflow_id,omitempty"`
	ItemIndex  *int                   `json:"item_index,omitempty"`
	WorkDir    *string                `json:"work_dir,omitempty"`
	Item       map[string]interface{} `json:"item,omitempty"`
	Binary     map[string][]byte      `json:"binary,omitempty"`
}

// Result represents a node execution result.
//
// Data holds the single output record for one-in-one-out operations.
// Records, when non-nil, fans the input item out into one output record
// per element (e.g. a directory listing emitting one record per entry).
type Result struct {
	Success bool                     `json:"success"`
	Data    map[string]interface{}   `json:"data,omitempty"`
	Records []map[string]interface{} `json:"records,omitempty"`
	Error   *string                  `json:"error,omitempty"`
}
