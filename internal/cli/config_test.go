package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dandxy89/lp-parser-rs/pkg/errors"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeTempConfig(t, `
[write]
precision = 3
max_line_length = 120
include_problem_name = false
`)

	cfg, err := loadConfigFile(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Write.Precision)
	assert.Equal(t, 3, *cfg.Write.Precision)
	require.NotNil(t, cfg.Write.MaxLineLength)
	assert.Equal(t, 120, *cfg.Write.MaxLineLength)
	require.NotNil(t, cfg.Write.IncludeProblemName)
	assert.False(t, *cfg.Write.IncludeProblemName)
	assert.Nil(t, cfg.Write.SectionSpacing, "unset keys stay nil")
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := loadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Write.Precision)
}

func TestLoadConfigFileMalformed(t *testing.T) {
	path := writeTempConfig(t, "[write\nprecision=")
	_, err := loadConfigFile(path)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeIO, apperrors.GetCode(err))
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := configPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", appName, "config.toml"), path)
}
