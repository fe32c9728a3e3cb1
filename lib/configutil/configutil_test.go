package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Endpoint string `json:"endpoint"`
	PageSize int    `json:"page_size"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "harvest.json5")
	err := os.WriteFile(path, []byte(`{
		// default harvest settings
		endpoint: "https://opac.kbr.be/oaiserver.ashx",
		page_size: 100,
	}`), 0600)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{
		Endpoint: "https://opac.kbr.be/oaiserver.ashx",
		PageSize: 100,
	}, config)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(
		filepath.Join(dir, "harvest.json5"),
		[]byte(`{endpoint: "https://example.org", page_size: 100}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(
		filepath.Join(dir, "harvest.local.json5"),
		[]byte(`{page_size: 25}`), 0600)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "harvest.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://example.org", config.Endpoint)
	require.Equal(t, 25, config.PageSize)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.True(t, os.IsNotExist(err))
}
