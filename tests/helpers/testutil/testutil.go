// Package testutil provides testing utilities and helpers for service tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/flowgrid/flowfs/internal/nodes"
	"github.com/flowgrid/flowfs/internal/service"
	"github.com/flowgrid/flowfs/internal/types"
)

// NewTestPack creates a filesystem pack rooted at a fresh temp directory.
// Returns the pack and its working directory.
func NewTestPack(t *testing.T) (*nodes.Pack, string) {
	t.Helper()
	dir := t.TempDir()
	pack := nodes.NewPack(nodes.Options{WorkDir: dir}, zap.NewNop())
	return pack, dir
}

// NewTestRegistry creates a registry with the filesystem pack registered.
// Returns the registry and the pack's working directory.
func NewTestRegistry(t *testing.T) (*service.Registry, string) {
	t.Helper()
	pack, dir := NewTestPack(t)
	registry := service.NewRegistry()
	if err := registry.Register(pack); err != nil {
		t.Fatalf("Failed to register pack: %v", err)
	}
	return registry, dir
}

// RunContext builds a run context with an overridden working directory.
func RunContext(workDir string) *types.Context {
	return &types.Context{WorkDir: &workDir}
}

// WriteTestFile seeds one file under dir and returns its full path.
func WriteTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("Failed to create parent dirs: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return full
}

// WriteTestTree seeds a file tree under dir. Keys are slash-separated
// relative paths.
func WriteTestTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		WriteTestFile(t, dir, name, content)
	}
}

// MockServiceProvider is a mock implementation of service.Provider.
type MockServiceProvider struct {
	mock.Mock
}

// Definition mocks the Definition method.
func (m *MockServiceProvider) Definition() types.Service {
	args := m.Called()
	return args.Get(0).(types.Service)
}

// Execute mocks the Execute method.
func (m *MockServiceProvider) Execute(toolID string, params map[string]interface{}, runCtx *types.Context) (*types.Result, error) {
	args := m.Called(toolID, params, runCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Result), args.Error(1)
}

// NewMockServiceProvider creates a mock provider with a default definition.
func NewMockServiceProvider(t *testing.T, serviceID string) *MockServiceProvider {
	t.Helper()
	m := new(MockServiceProvider)

	m.On("Definition").Return(types.Service{
		ID:          serviceID,
		Name:        "Mock Service",
		Description: "Mock service for testing",
		Category:    types.CategoryFilesystem,
		Tools:       []types.Tool{},
	}).Maybe()

	return m
}

// CreateTestService creates a test service definition.
func CreateTestService(t *testing.T, id string, category types.Category) types.Service {
	t.Helper()

	return types.Service{
		ID:           id,
		Name:         "Test Service",
		Description:  "A test service for unit testing",
		Category:     category,
		Capabilities: []string{"test"},
		Tools: []types.Tool{
			{
				ID:          id + ".test",
				Name:        "test",
				Description: "Test tool",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// AssertSuccess is a helper to assert a successful result.
func AssertSuccess(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if !result.Success {
		t.Fatalf("Expected success, got error: %v", result.Error)
	}
}

// AssertError is a helper to assert an error result.
func AssertError(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if result.Success {
		t.Fatal("Expected error, got success")
	}
	if result.Error == nil {
		t.Fatal("Expected error message, got nil")
	}
}

// AssertDataField is a helper to assert a data field exists and matches expected value.
func AssertDataField(t *testing.T, result *types.Result, field string, expected interface{}) {
	t.Helper()
	AssertSuccess(t, result)

	if result.Data == nil {
		t.Fatal("Result data is nil")
	}

	actual, ok := result.Data[field]
	if !ok {
		t.Fatalf("Field %s not found in result data", field)
	}

	if actual != expected {
		t.Fatalf("Field %s: expected %v, got %v", field, expected, actual)
	}
}
