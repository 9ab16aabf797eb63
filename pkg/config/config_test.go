package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.Policy.RejectDuplicateEnrollment)
	assert.False(t, cfg.Policy.StrictMaterialRemoval)
	assert.False(t, cfg.Policy.StrictTransitions)
	assert.False(t, cfg.Policy.EnforceGradeRange)
	assert.False(t, cfg.Policy.RequireCourseOwnership)
	assert.Equal(t, 0, cfg.Policy.MinGrade)
	assert.Equal(t, 100, cfg.Policy.MaxGrade)
	assert.Empty(t, cfg.Demo.ExportFormat)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENV", EnvProduction)
	t.Setenv("POLICY_REJECT_DUPLICATE_ENROLLMENT", "true")
	t.Setenv("POLICY_STRICT_TRANSITIONS", "true")
	t.Setenv("POLICY_MAX_GRADE", "10")
	t.Setenv("DEMO_EXPORT_FORMAT", " PDF ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.True(t, cfg.Policy.RejectDuplicateEnrollment)
	assert.True(t, cfg.Policy.StrictTransitions)
	assert.Equal(t, 10, cfg.Policy.MaxGrade)
	assert.Equal(t, "pdf", cfg.Demo.ExportFormat)
}

func TestLoadFromDotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	content := "POLICY_STRICT_MATERIAL_REMOVAL=true\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("POLICY_STRICT_MATERIAL_REMOVAL")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Policy.StrictMaterialRemoval)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvertedGradeRange(t *testing.T) {
	chdirTemp(t)
	t.Setenv("POLICY_MIN_GRADE", "50")
	t.Setenv("POLICY_MAX_GRADE", "40")

	_, err := Load()
	require.Error(t, err)
}
