package cfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		want    *Config
		wantErr error
	}{
		{
			name: "defaults",
			want: &Config{
				ServerAddress:   ":3000",
				BaseURL:         "http://localhost:3000/",
				FileStoragePath: "data/links.json",
				MaxBodyBytes:    1 << 20,
				LogLevel:        "info",
			},
		},
		{
			name: "flags override defaults",
			args: []string{"-a", ":8080", "-b", "https://sho.rt", "-f", "/tmp/links.json", "--max-body-bytes", "512"},
			want: &Config{
				ServerAddress:   ":8080",
				BaseURL:         "https://sho.rt/",
				FileStoragePath: "/tmp/links.json",
				MaxBodyBytes:    512,
				LogLevel:        "info",
			},
		},
		{
			name: "env overrides defaults",
			env: map[string]string{
				"SERVER_ADDRESS":  ":9999",
				"METRICS_ADDRESS": ":9090",
				"LOG_PRETTY":      "true",
			},
			want: &Config{
				ServerAddress:   ":9999",
				BaseURL:         "http://localhost:3000/",
				FileStoragePath: "data/links.json",
				MetricsAddress:  ":9090",
				MaxBodyBytes:    1 << 20,
				LogLevel:        "info",
				LogPretty:       true,
			},
		},
		{
			name:    "base url is not a url",
			args:    []string{"-b", "localhost"},
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "negative body limit",
			args:    []string{"--max-body-bytes=-1"},
			wantErr: ErrInvalidMaxBodyBytes,
		},
		{
			name: "empty storage path keeps links in memory",
			args: []string{"-f", ""},
			want: &Config{
				ServerAddress: ":3000",
				BaseURL:       "http://localhost:3000/",
				MaxBodyBytes:  1 << 20,
				LogLevel:      "info",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			got, err := Load(tt.args)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"server_address": ":4000",
		"base_url": "http://links.local",
		"file_storage_path": "/var/lib/links.json",
		"static_dir": "public"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := Load([]string{"-c", path, "-a", ":5000"})
	require.NoError(t, err)

	assert.Equal(t, ":5000", got.ServerAddress, "flag wins over file")
	assert.Equal(t, "http://links.local/", got.BaseURL)
	assert.Equal(t, "/var/lib/links.json", got.FileStoragePath)
	assert.Equal(t, "public", got.StaticDir)
	assert.Equal(t, int64(1<<20), got.MaxBodyBytes)
}

func TestLoad_BrokenConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_address":`), 0o644))

	_, err := Load([]string{"-c", path})
	assert.Error(t, err)

	_, err = Load([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)
}
