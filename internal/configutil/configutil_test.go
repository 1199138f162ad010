package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl   string `json:"base_url"`
	OutputDir string `json:"output_dir"`
	Retries   int    `json:"retries"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sis.json5")

	_, err := ReadConfig[testConfig](path)
	require.ErrorIs(t, err, os.ErrNotExist)

	writeFile(t, path, `{
		// comments are allowed
		base_url: "https://example.com",
		output_dir: "out",
	}`)
	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{BaseUrl: "https://example.com", OutputDir: "out"}, cfg)

	writeFile(t, filepath.Join(dir, "sis.local.json5"), `{output_dir: "local-out", retries: 2}`)
	cfg, err = ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{BaseUrl: "https://example.com", OutputDir: "local-out", Retries: 2}, cfg)
}

func TestReadConfigWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sis.json5")
	defaults := testConfig{BaseUrl: "https://default.com", OutputDir: "."}

	cfg, err := ReadConfigWithDefaults(path, defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	writeFile(t, path, `{output_dir: "data"}`)
	cfg, err = ReadConfigWithDefaults(path, defaults)
	require.NoError(t, err)
	require.Equal(t, testConfig{BaseUrl: "https://default.com", OutputDir: "data"}, cfg)

	writeFile(t, path, `{output_dir: `)
	_, err = ReadConfigWithDefaults(path, defaults)
	require.Error(t, err)
}
