package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"agribot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func useTempStore(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "agri.db"))
	t.Setenv("STORE_SEED_ON_START", "true")
	t.Setenv("STORE_CONNECT_ATTEMPTS", "1")
	t.Setenv("LOG_LEVEL", "error")
}

func TestExportThenImport(t *testing.T) {
	useTempStore(t)
	file := filepath.Join(t.TempDir(), "bundle.json")

	out := runCommand(t, "export", file)
	assert.Contains(t, out, "3 fertilizers")

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var bundle model.KnowledgeBundle
	require.NoError(t, json.Unmarshal(data, &bundle))
	assert.Len(t, bundle.Crops, 8)
	assert.Len(t, bundle.Fertilizers, 3)

	useTempStore(t)
	t.Setenv("STORE_SEED_ON_START", "false")
	out = runCommand(t, "import", file)
	assert.Contains(t, out, "Imported 8 crops")
	assert.Contains(t, out, "3 fertilizers")
}
