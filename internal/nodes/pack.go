package nodes

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/flowgrid/flowfs/internal/types"
)

// Pack aggregates the filesystem nodes into one service provider. Tool
// IDs route to the owning node by exact match.
type Pack struct {
	base    *Base
	nodes   []Node
	routing map[string]Node
}

// NewPack creates the filesystem node pack.
func NewPack(opts Options, log *zap.Logger) *Pack {
	base := NewBase(opts, log)

	p := &Pack{
		base: base,
		nodes: []Node{
			&ReadNode{Base: base},
			&WriteNode{Base: base},
			&ListNode{Base: base},
			&StatNode{Base: base},
			&DeleteNode{Base: base},
			&CopyNode{Base: base},
			&MoveNode{Base: base},
			&MkdirNode{Base: base},
			&ExistsNode{Base: base},
			&SearchNode{Base: base},
			&StructuredNode{Base: base},
			&ArchiveNode{Base: base},
		},
	}

	p.routing = make(map[string]Node)
	for _, node := range p.nodes {
		for _, tool := range node.GetTools() {
			p.routing[tool.ID] = node
		}
	}

	return p
}

// Definition returns service metadata with the full node catalog.
func (p *Pack) Definition() types.Service {
	var tools []types.Tool
	for _, node := range p.nodes {
		tools = append(tools, node.GetTools()...)
	}

	return types.Service{
		ID:          "fs",
		Name:        "Filesystem Nodes",
		Description: "Filesystem primitives for workflow automation",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"read",
			"write",
			"list",
			"stat",
			"delete",
			"copy",
			"move",
			"mkdir",
			"exists",
			"search",
			"structured",
			"archive",
		},
		Tools: tools,
	}
}

// Execute routes a tool call to the owning node.
func (p *Pack) Execute(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	node, ok := p.routing[toolID]
	if !ok {
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
	return node.Run(toolID, params, runCtx)
}
