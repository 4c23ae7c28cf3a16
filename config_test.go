package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions_Defaults(t *testing.T) {
	v := viper.New()
	bindFlags(&cobra.Command{}, v)

	opts, err := loadOptions(v)
	require.NoError(t, err)
	assert.Equal(t, Options{IgnoreEngine: engineGit, TokenModel: defaultTiktokenModel}, opts)
}

func TestLoadOptions_NoIgnoreWins(t *testing.T) {
	v := viper.New()
	v.Set("ignore_engine", "INDEX")
	v.Set("no_ignore", true)

	opts, err := loadOptions(v)
	require.NoError(t, err)
	assert.Equal(t, engineNone, opts.IgnoreEngine)
}

func TestLoadOptions_RejectsUnknownEngine(t *testing.T) {
	v := viper.New()
	v.Set("ignore_engine", "pathspec")

	_, err := loadOptions(v)
	assert.ErrorContains(t, err, `unsupported ignore engine "pathspec"`)
}

func TestReadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("ignore_engine = \"index\"\nquiet = true\n"), 0o644))
	t.Setenv("SPITBALL_SHOW_TREE", "true")

	v := viper.New()
	bindFlags(&cobra.Command{}, v)
	used, warn, err := readConfig(v, cfg)
	require.NoError(t, err)
	assert.NoError(t, warn)
	assert.Equal(t, cfg, used)

	opts, err := loadOptions(v)
	require.NoError(t, err)
	assert.Equal(t, engineIndex, opts.IgnoreEngine)
	assert.True(t, opts.Quiet)
	assert.True(t, opts.ShowTree)
}

func TestReadConfig_FlagOverridesFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("ignore_engine = \"index\"\n"), 0o644))

	cmd := &cobra.Command{}
	v := viper.New()
	bindFlags(cmd, v)
	require.NoError(t, cmd.Flags().Set("ignore-engine", "none"))

	_, _, err := readConfig(v, cfg)
	require.NoError(t, err)
	opts, err := loadOptions(v)
	require.NoError(t, err)
	assert.Equal(t, engineNone, opts.IgnoreEngine)
}

func TestReadConfig_Malformed(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("ignore_engine = \n"), 0o644))

	_, warn, err := readConfig(viper.New(), cfg)
	assert.Error(t, err)
	assert.NoError(t, warn)
}

func TestReadConfig_MalformedDiscoveredFileWarns(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", appName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("ignore_engine = \n"), 0o644))

	v := viper.New()
	v.SetDefault("ignore_engine", engineGit)
	used, warn, err := readConfig(v, "")
	require.NoError(t, err)
	assert.Error(t, warn)
	assert.Empty(t, used)

	opts, err := loadOptions(v)
	require.NoError(t, err)
	assert.Equal(t, engineGit, opts.IgnoreEngine)
}

func TestReadConfig_IgnoresWorkingDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cwd := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cwd, "config.toml"), []byte("ignore_engine = \"none\"\n"), 0o644))
	chdirForTest(t, cwd)

	v := viper.New()
	used, warn, err := readConfig(v, "")
	require.NoError(t, err)
	assert.NoError(t, warn)
	assert.Empty(t, used)
	assert.Empty(t, v.GetString("ignore_engine"))
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
