package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FirstRunWritesTemplate(t *testing.T) {
	base := t.TempDir()

	cfg, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	data, err := os.ReadFile(FilePath(base))
	require.NoError(t, err)
	assert.Equal(t, configTemplate, string(data))

	// The written template must parse back to the same values.
	again, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	base := t.TempDir()
	content := `// comment line
{
  "invoice": { "currency": "€" },
  "defaults": { "worker_name": "Jane" }
}`
	require.NoError(t, os.WriteFile(FilePath(base), []byte(content), 0o600))

	cfg, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, "€", cfg.Invoice.Currency)
	assert.Equal(t, DefaultDueDays, cfg.Invoice.DueDays)
	assert.Equal(t, DefaultOutputDir, cfg.Invoice.OutputDir)
	assert.Equal(t, "Jane", cfg.Defaults.WorkerName)
	assert.Equal(t, DefaultSMTPPort, cfg.Mail.SMTPPort)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(FilePath(base), []byte(`{"invoice": {"due_days": 10}}`), 0o600))

	t.Setenv("HRC_DUE_DAYS", "14")
	t.Setenv("HRC_WORKER_NAME", "Env Worker")
	t.Setenv("HRC_SMTP_HOST", "smtp.example.com")

	cfg, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.Invoice.DueDays)
	assert.Equal(t, "Env Worker", cfg.Defaults.WorkerName)
	assert.Equal(t, "smtp.example.com", cfg.Mail.SMTPHost)
}

func TestLoad_InvalidJSON(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(FilePath(base), []byte(`{"invoice": `), 0o600))

	cfg, err := Load(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
	assert.Equal(t, defaultConfig(), cfg)
}

func TestStripLineComments(t *testing.T) {
	in := "// top\n{\n  // inner\n  \"a\": 1 // trailing stays\n}"
	got := string(stripLineComments([]byte(in)))
	assert.Equal(t, "{\n  \"a\": 1 // trailing stays\n}\n", got)
}
