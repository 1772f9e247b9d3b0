package diagnostic

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_DeduplicatesByMessage(t *testing.T) {
	d := New(nil)

	d.AddWarning(ScopeDocument, "no_service", "Java inspection service is not configured", "doc1")
	d.AddWarning(ScopeDocument, "no_service", "Java inspection service is not configured", "doc2")
	d.AddError(ScopeMapping, "unresolved", "Java inspection service is not configured", "")

	assert.Len(t, d.Warnings, 1)
	assert.Empty(t, d.Errors)
	assert.True(t, d.IsValid())
}

func TestDiagnostics_ErrorCombinesEntries(t *testing.T) {
	d := New(nil)
	d.AddError(ScopeMapping, "unresolved_field", "field /a not found", "mapping.1")
	d.AddError(ScopeMapping, "missing_lookup", "lookup table t1 not found", "mapping.2")

	err := d.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[MAPPING] mapping.1: [unresolved_field] field /a not found")
	assert.Contains(t, err.Error(), "lookup table t1 not found")
}

func TestDiagnostics_AddAudit(t *testing.T) {
	d := New(nil)
	d.AddAudit("ERROR", "Conversion failed", "/name")
	d.AddAudit("WARN", "Value truncated", "/id")
	d.AddAudit("ALL", "done", "")

	require.Len(t, d.Errors, 1)
	assert.Equal(t, ScopeMapping, d.Errors[0].Scope)
	assert.Equal(t, "/name", d.Errors[0].Ref)
	assert.Len(t, d.Warnings, 1)
	assert.Len(t, d.Infos, 1)
}

func TestDiagnostics_LogsAcceptedEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d := New(logger)
	d.AddInfo(ScopeApplication, "loaded", "actions loaded", "")
	d.AddInfo(ScopeApplication, "loaded", "actions loaded", "")

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("actions loaded")))
}

func TestDiagnostics_MergeAndAll(t *testing.T) {
	a := New(nil)
	a.AddError(ScopeMapping, "e", "error one", "")

	b := New(nil)
	b.AddWarning(ScopeDocument, "w", "warning one", "")
	b.AddError(ScopeMapping, "e", "error one", "")

	a.Merge(b)

	all := a.All()
	require.Len(t, all, 2)
	assert.Equal(t, LevelError, all[0].Level)
	assert.Equal(t, LevelWarn, all[1].Level)

	a.Clear()
	assert.Empty(t, a.All())
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "unknown", Level(42).String())
}
