package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowgrid/flowfs/internal/types"
)

// Runner drives sequential batch execution: each item is processed
// end-to-end before the next begins.
type Runner struct {
	exec    Executor
	sink    Sink
	metrics Recorder
}

// NewRunner creates a runner. Sink and metrics may be nil.
func NewRunner(exec Executor, sink Sink, metrics Recorder) *Runner {
	return &Runner{exec: exec, sink: sink, metrics: metrics}
}

// Run executes toolID once per item, in input order. Without
// ContinueOnFail the first failure aborts the run and the returned error
// carries the item index; the partial summary is still returned.
func (r *Runner) Run(toolID string, items []Item, source ParamSource, opts Options) (*Summary, error) {
	runID := uuid.New().String()
	started := time.Now()

	summary := &Summary{
		RunID:   runID,
		ToolID:  toolID,
		Items:   len(items),
		Outputs: []Output{},
	}

	r.publish(map[string]interface{}{
		"type":      EventRunStarted,
		"run_id":    runID,
		"tool":      toolID,
		"items":     len(items),
		"timestamp": time.Now().Unix(),
	})

	for i := range items {
		params := source(i)
		runCtx := itemContext(runID, i, items[i], opts)

		itemStart := time.Now()
		result, err := r.exec.Execute(toolID, params, runCtx)

		if err == nil && result != nil && result.Success {
			outputs := itemOutputs(i, result)
			summary.Outputs = append(summary.Outputs, outputs...)
			r.record(toolID, "success", time.Since(itemStart))
			r.publish(map[string]interface{}{
				"type":      EventItemCompleted,
				"run_id":    runID,
				"index":     i,
				"outputs":   len(outputs),
				"timestamp": time.Now().Unix(),
			})
			continue
		}

		msg := failureMessage(result, err)
		summary.Failures++
		r.record(toolID, "failure", time.Since(itemStart))
		r.publish(map[string]interface{}{
			"type":      EventItemFailed,
			"run_id":    runID,
			"index":     i,
			"error":     msg,
			"timestamp": time.Now().Unix(),
		})

		if !opts.ContinueOnFail {
			summary.Elapsed = time.Since(started)
			r.finish(summary, true)
			return summary, fmt.Errorf("item %d: %s", i, msg)
		}

		summary.Outputs = append(summary.Outputs, errorOutput(i, msg, params))
	}

	summary.Elapsed = time.Since(started)
	r.finish(summary, false)
	return summary, nil
}

func (r *Runner) finish(summary *Summary, aborted bool) {
	r.publish(map[string]interface{}{
		"type":       EventRunFinished,
		"run_id":     summary.RunID,
		"tool":       summary.ToolID,
		"items":      summary.Items,
		"failures":   summary.Failures,
		"outputs":    len(summary.Outputs),
		"aborted":    aborted,
		"elapsed_ms": summary.Elapsed.Milliseconds(),
		"timestamp":  time.Now().Unix(),
	})
	if r.metrics != nil {
		r.metrics.RecordBatchRun(summary.ToolID, summary.Items, summary.Failures, summary.Elapsed)
	}
}

func (r *Runner) publish(event map[string]interface{}) {
	if r.sink != nil {
		r.sink.Publish(event)
	}
}

func (r *Runner) record(toolID, status string, duration time.Duration) {
	if r.metrics != nil {
		r.metrics.RecordOperation(toolID, status, duration)
	}
}

// itemContext builds the per-item run context handed to the node.
func itemContext(runID string, index int, item Item, opts Options) *types.Context {
	runCtx := &types.Context{
		RunID:     &runID,
		ItemIndex: &index,
		Item:      item.JSON,
		Binary:    item.Binary,
	}
	if opts.WorkflowID != "" {
		runCtx.WorkflowID = &opts.WorkflowID
	}
	if opts.WorkDir != "" {
		runCtx.WorkDir = &opts.WorkDir
	}
	return runCtx
}

// itemOutputs expands one result into tagged output records: fanned-out
// Records when present, else the single Data record.
func itemOutputs(index int, result *types.Result) []Output {
	if result.Records != nil {
		outputs := make([]Output, 0, len(result.Records))
		for _, record := range result.Records {
			outputs = append(outputs, Output{InputIndex: index, Record: record})
		}
		return outputs
	}
	return []Output{{InputIndex: index, Record: result.Data}}
}

// errorOutput shapes a failure as an output record carrying the error
// message and, when the parameters name one, the offending path.
func errorOutput(index int, msg string, params map[string]interface{}) Output {
	record := map[string]interface{}{"error": msg}
	if path, ok := params["path"].(string); ok && path != "" {
		record["path"] = path
	} else if source, ok := params["source"].(string); ok && source != "" {
		record["path"] = source
	}
	return Output{InputIndex: index, Record: record, Failed: true}
}

func failureMessage(result *types.Result, err error) string {
	if err != nil {
		return err.Error()
	}
	if result != nil && result.Error != nil {
		return *result.Error
	}
	return "execution failed"
}
