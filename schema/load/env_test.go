package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEnvSearchPath_Unset(t *testing.T) {
	t.Setenv("YASDL_TEST_SEARCH_PATH", "")

	opt, driver, err := LoadEnvSearchPath("YASDL_TEST_SEARCH_PATH")
	require.NoError(t, err)
	require.Empty(t, driver)

	cfg := defaultConfig()
	opt(cfg)
	require.Empty(t, cfg.searchPath)
}

func TestLoadEnvSearchPath_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yasdl.yaml")
	content := "search_path:\n  - /opt/yasdl/vendor\n  - /opt/yasdl/shared\ndriver: postgres\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("YASDL_TEST_SEARCH_PATH", path)

	opt, driver, err := LoadEnvSearchPath("YASDL_TEST_SEARCH_PATH")
	require.NoError(t, err)
	require.Equal(t, "postgres", driver)

	cfg := defaultConfig()
	opt(cfg)
	require.Equal(t, []string{"/opt/yasdl/vendor", "/opt/yasdl/shared"}, cfg.searchPath)
}

func TestLoadEnvSearchPath_MissingFile(t *testing.T) {
	t.Setenv("YASDL_TEST_SEARCH_PATH", filepath.Join(t.TempDir(), "nonexistent.yaml"))

	_, _, err := LoadEnvSearchPath("YASDL_TEST_SEARCH_PATH")
	require.Error(t, err)
}
