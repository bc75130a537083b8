package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

const (
	defaultCertPath      = "tls_certificate/certificate.cer"
	defaultListen        = ":5000"
	defaultOAuthURL      = "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"
	defaultAPIURL        = "https://smartspeech.sber.ru/rest/v1"
	defaultScope         = "SALUTE_SPEECH_PERS"
	defaultDiskURL       = "https://cloud-api.yandex.net"
	defaultPollAttempts  = 3
	defaultPollDivisor   = 10.0
	defaultHTTPTimeout   = 2 * time.Minute
	defaultRunTimeout    = 30 * time.Minute
	defaultMaxAudioBytes = int64(512 << 20)
)

// Config is read once at startup and passed down explicitly.
type Config struct {
	Listen string

	PassHash   string
	AudioToken string
	CertPath   string

	OAuthURL string
	APIURL   string
	Scope    string
	DiskURL  string

	PollAttempts int
	PollDivisor  float64

	HTTPTimeout   time.Duration
	RunTimeout    time.Duration
	MaxAudioBytes int64

	FFmpegPath  string
	FFprobePath string

	LogLevel  string
	LogFormat string
}

// source resolves a key from the environment first, then from the ini file.
type source struct {
	file *ini.File
}

func (s source) lookup(env string) (string, bool) {
	if v, ok := os.LookupEnv(env); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), true
	}
	if s.file == nil {
		return "", false
	}
	key := s.file.Section("").Key(strings.ToLower(env))
	if v := strings.TrimSpace(key.String()); v != "" {
		return v, true
	}
	return "", false
}

func (s source) str(env, def string) string {
	if v, ok := s.lookup(env); ok {
		return v
	}
	return def
}

func (s source) int(env string, def int) (int, error) {
	v, ok := s.lookup(env)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", env, err)
	}
	return n, nil
}

func (s source) int64(env string, def int64) (int64, error) {
	v, ok := s.lookup(env)
	if !ok {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", env, err)
	}
	return n, nil
}

func (s source) float(env string, def float64) (float64, error) {
	v, ok := s.lookup(env)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", env, err)
	}
	return f, nil
}

func (s source) duration(env string, def time.Duration) (time.Duration, error) {
	v, ok := s.lookup(env)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", env, err)
	}
	return d, nil
}

// Load builds the configuration. Precedence, lowest to highest: defaults, the
// optional ini file at path, .env, process environment. A missing ini file or
// .env is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var src source
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			f, err := ini.Load(path)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
			src.file = f
		}
	}

	cfg := &Config{
		Listen:      src.str("LISTEN", defaultListen),
		PassHash:    src.str("PASS_HASH", ""),
		AudioToken:  src.str("AUDIO_TOKEN", ""),
		CertPath:    src.str("CERT_PATH", defaultCertPath),
		OAuthURL:    src.str("SALUTE_OAUTH_URL", defaultOAuthURL),
		APIURL:      strings.TrimRight(src.str("SALUTE_API_URL", defaultAPIURL), "/"),
		Scope:       src.str("SALUTE_SCOPE", defaultScope),
		DiskURL:     strings.TrimRight(src.str("DISK_API_URL", defaultDiskURL), "/"),
		FFmpegPath:  src.str("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: src.str("FFPROBE_PATH", "ffprobe"),
		LogLevel:    src.str("LOG_LEVEL", "info"),
		LogFormat:   src.str("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.PollAttempts, err = src.int("POLL_ATTEMPTS", defaultPollAttempts); err != nil {
		return nil, err
	}
	if cfg.PollDivisor, err = src.float("POLL_DIVISOR", defaultPollDivisor); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = src.duration("HTTP_TIMEOUT", defaultHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.RunTimeout, err = src.duration("RUN_TIMEOUT", defaultRunTimeout); err != nil {
		return nil, err
	}
	if cfg.MaxAudioBytes, err = src.int64("MAX_AUDIO_BYTES", defaultMaxAudioBytes); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first missing or out-of-range setting.
func (c *Config) Validate() error {
	if c.PassHash == "" {
		return errors.New("PASS_HASH must be set")
	}
	if c.AudioToken == "" {
		return errors.New("AUDIO_TOKEN must be set")
	}
	if c.PollAttempts < 1 {
		return fmt.Errorf("POLL_ATTEMPTS must be >= 1, got %d", c.PollAttempts)
	}
	if c.PollDivisor <= 0 {
		return fmt.Errorf("POLL_DIVISOR must be > 0, got %v", c.PollDivisor)
	}
	if c.MaxAudioBytes <= 0 {
		return fmt.Errorf("MAX_AUDIO_BYTES must be > 0, got %d", c.MaxAudioBytes)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}
