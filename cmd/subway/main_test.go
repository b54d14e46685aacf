package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/subway/internal/config"
)

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "subway version dev")
	assert.Contains(t, out.String(), "commit: unknown")
}

func TestApplyServeOverrides(t *testing.T) {
	cfg := config.NewAppConfig()

	got := applyServeOverrides(cfg, "", 0)
	assert.Equal(t, cfg.Addr(), got.Addr())

	got = applyServeOverrides(cfg, "127.0.0.1", 9000)
	assert.Equal(t, "127.0.0.1", got.Host())
	assert.Equal(t, 9000, got.Port())
}

func TestImportExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "missing.env")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("DB_URL", config.DefaultDBURL(dir))
	t.Setenv("LOG_LEVEL", "ERROR")

	input := filepath.Join(dir, "network.yaml")
	doc := `lines:
  - name: Line 2
    color: green
    sections:
      - {up: Gangnam, down: Yeoksam, length: 10}
      - {up: Yeoksam, down: Seolleung, length: 7}
`
	require.NoError(t, os.WriteFile(input, []byte(doc), 0o600))

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"import", "--env-file", envFile, input})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "imported 1 line(s), 2 section(s), 3 new station(s)")

	out.Reset()
	cmd = rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"export", "--env-file", envFile})
	require.NoError(t, cmd.Execute())

	exported := out.String()
	assert.Contains(t, exported, "Line 2")
	assert.Less(t, strings.Index(exported, "Gangnam"), strings.Index(exported, "Seolleung"))
}
