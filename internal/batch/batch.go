// Package batch executes one tool across an ordered batch of input
// items, pairing every output record with the input index it came from.
package batch

import (
	"time"

	"github.com/flowgrid/flowfs/internal/types"
)

// Item is one input record: a JSON object plus named binary payloads.
type Item struct {
	JSON   map[string]interface{} `json:"json"`
	Binary map[string][]byte      `json:"binary,omitempty"`
}

// ParamSource resolves the node parameters for the item at an index.
type ParamSource func(index int) map[string]interface{}

// StaticParams applies the same parameters to every item.
func StaticParams(params map[string]interface{}) ParamSource {
	return func(int) map[string]interface{} {
		return params
	}
}

// PerItemParams applies parameter sets positionally. Indexes beyond the
// slice resolve to nil.
func PerItemParams(sets []map[string]interface{}) ParamSource {
	return func(index int) map[string]interface{} {
		if index < 0 || index >= len(sets) {
			return nil
		}
		return sets[index]
	}
}

// LayeredParams overlays positional parameter sets on shared parameters.
// Item i resolves to the shared parameters with sets[i] merged on top.
func LayeredParams(static map[string]interface{}, sets []map[string]interface{}) ParamSource {
	return func(index int) map[string]interface{} {
		if index < 0 || index >= len(sets) || len(sets[index]) == 0 {
			return static
		}
		if len(static) == 0 {
			return sets[index]
		}
		merged := make(map[string]interface{}, len(static)+len(sets[index]))
		for k, v := range static {
			merged[k] = v
		}
		for k, v := range sets[index] {
			merged[k] = v
		}
		return merged
	}
}

// Output is one output record tagged with its originating input index.
// Failed marks error-shaped records produced under ContinueOnFail.
type Output struct {
	InputIndex int                    `json:"input_index"`
	Record     map[string]interface{} `json:"record"`
	Failed     bool                   `json:"failed,omitempty"`
}

// Options configure a run.
type Options struct {
	// ContinueOnFail turns item failures into error-shaped output
	// records instead of aborting the run.
	ContinueOnFail bool
	// WorkDir overrides the configured working directory for this run.
	WorkDir string
	// WorkflowID tags the run context for event consumers.
	WorkflowID string
}

// Summary reports one finished run.
type Summary struct {
	RunID    string        `json:"run_id"`
	ToolID   string        `json:"tool_id"`
	Items    int           `json:"items"`
	Failures int           `json:"failures"`
	Outputs  []Output      `json:"outputs"`
	Elapsed  time.Duration `json:"-"`
}

// Executor runs one tool call. The service registry satisfies this.
type Executor interface {
	Execute(toolID string, params map[string]interface{}, ctx *types.Context) (*types.Result, error)
}

// Sink receives run lifecycle events. The WebSocket hub satisfies this.
type Sink interface {
	Publish(event map[string]interface{})
}

// Recorder captures run metrics. The monitoring collector satisfies this.
type Recorder interface {
	RecordOperation(toolID, status string, duration time.Duration)
	RecordBatchRun(toolID string, items, failures int, duration time.Duration)
}

// Event types emitted to the sink over a run's lifecycle.
const (
	EventRunStarted    = "run_started"
	EventItemCompleted = "item_completed"
	EventItemFailed    = "item_failed"
	EventRunFinished   = "run_finished"
)
