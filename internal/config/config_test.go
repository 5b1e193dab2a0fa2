package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"storage_root": "/var/data/resumes",
		"database_url": "postgres://localhost/resumes",
		"smtp_host": "smtp.example.com",
		"smtp_port": 587,
		"delay_hours": 12,
		"batch_size": 50
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/data/resumes", cfg.StorageRoot)
	assert.Equal(t, "postgres://localhost/resumes", cfg.DatabaseURL)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 12, cfg.DelayHours)
	assert.Equal(t, 50, cfg.BatchSize)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"delay_hours": `)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, DefaultDelayHours, cfg.DelayHours)
	assert.Equal(t, DefaultRetryDelayMinutes, cfg.RetryDelayMinutes)
	assert.Equal(t, DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, DefaultPollIntervalMinutes, cfg.PollIntervalMinutes)
	assert.Equal(t, DefaultSendTimeoutSeconds, cfg.SendTimeoutSeconds)
	assert.Equal(t, DefaultMetricsAddr, cfg.MetricsAddr)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{DelayHours: 6, BatchSize: 10}
	cfg.ApplyDefaults()

	assert.Equal(t, 6, cfg.DelayHours)
	assert.Equal(t, 10, cfg.BatchSize)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty config is valid", cfg: Config{}},
		{name: "delay too large", cfg: Config{DelayHours: 49}, wantErr: "delay_hours"},
		{name: "negative delay", cfg: Config{DelayHours: -1}, wantErr: "delay_hours"},
		{name: "negative attempts", cfg: Config{MaxAttempts: -1}, wantErr: "max_attempts"},
		{name: "negative batch", cfg: Config{BatchSize: -1}, wantErr: "batch_size"},
		{name: "bad smtp port", cfg: Config{SMTPPort: 70000}, wantErr: "smtp_port"},
		{name: "negative upload ceiling", cfg: Config{MaxUploadBytes: -1}, wantErr: "max_upload_bytes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate_StorageRootMustBeDirectory(t *testing.T) {
	file := writeConfig(t, "{}")
	cfg := Config{StorageRoot: file}
	require.Error(t, cfg.Validate())

	cfg = Config{StorageRoot: t.TempDir()}
	assert.NoError(t, cfg.Validate())
}
