package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LISTEN", "PASS_HASH", "AUDIO_TOKEN", "CERT_PATH", "SALUTE_OAUTH_URL",
		"SALUTE_API_URL", "SALUTE_SCOPE", "DISK_API_URL", "POLL_ATTEMPTS",
		"POLL_DIVISOR", "HTTP_TIMEOUT", "RUN_TIMEOUT", "MAX_AUDIO_BYTES",
		"FFMPEG_PATH", "FFPROBE_PATH", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PASS_HASH", "5f4dcc3b5aa765d61d8327deb882cf99")
	t.Setenv("AUDIO_TOKEN", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Listen)
	assert.Equal(t, "tls_certificate/certificate.cer", cfg.CertPath)
	assert.Equal(t, "SALUTE_SPEECH_PERS", cfg.Scope)
	assert.Equal(t, "https://smartspeech.sber.ru/rest/v1", cfg.APIURL)
	assert.Equal(t, 3, cfg.PollAttempts)
	assert.Equal(t, 10.0, cfg.PollDivisor)
	assert.Equal(t, 2*time.Minute, cfg.HTTPTimeout)
	assert.Equal(t, int64(512<<20), cfg.MaxAudioBytes)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_IniThenEnvPrecedence(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "transcriber.ini")
	content := "" +
		"pass_hash = fromfile\n" +
		"audio_token = filetoken\n" +
		"listen = :8080\n" +
		"poll_attempts = 5\n" +
		"salute_api_url = http://localhost:9000/rest/v1/\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("AUDIO_TOKEN", "envtoken")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fromfile", cfg.PassHash)
	assert.Equal(t, "envtoken", cfg.AudioToken)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 5, cfg.PollAttempts)
	assert.Equal(t, "http://localhost:9000/rest/v1", cfg.APIURL)
}

func TestLoad_MissingIniIsNoop(t *testing.T) {
	clearEnv(t)
	t.Setenv("PASS_HASH", "x")
	t.Setenv("AUDIO_TOKEN", "y")

	_, err := Load(filepath.Join(t.TempDir(), "absent.ini"))
	require.NoError(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing hash", map[string]string{"AUDIO_TOKEN": "y"}, "PASS_HASH"},
		{"missing token", map[string]string{"PASS_HASH": "x"}, "AUDIO_TOKEN"},
		{"zero attempts", map[string]string{"PASS_HASH": "x", "AUDIO_TOKEN": "y", "POLL_ATTEMPTS": "0"}, "POLL_ATTEMPTS"},
		{"bad divisor", map[string]string{"PASS_HASH": "x", "AUDIO_TOKEN": "y", "POLL_DIVISOR": "abc"}, "POLL_DIVISOR"},
		{"bad timeout", map[string]string{"PASS_HASH": "x", "AUDIO_TOKEN": "y", "RUN_TIMEOUT": "soon"}, "RUN_TIMEOUT"},
		{"bad format", map[string]string{"PASS_HASH": "x", "AUDIO_TOKEN": "y", "LOG_FORMAT": "xml"}, "LOG_FORMAT"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
