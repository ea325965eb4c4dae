package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dgallion1/grafbreak/internal/linebreak"
)

type Config struct {
	Port string `toml:"port"`

	// Auth
	APIKey string `toml:"api_key"`

	// Layout
	TargetWidth         int     `toml:"target_width"`
	RatioMax            float64 `toml:"ratio_max"`
	HyphenPenalty       int     `toml:"hyphen_penalty"`
	FlaggedDemerits     float64 `toml:"flagged_demerits"`
	FinalHyphenDemerits float64 `toml:"final_hyphen_demerits"`
	Marker              string  `toml:"marker"`
	RejectUnknown       bool    `toml:"reject_unknown"`

	// Paragraphs shorter than this many runes are skipped in documents.
	MinParagraphRunes int `toml:"min_paragraph_runes"`

	// Worker pool
	WorkerCount        int `toml:"worker_count"`
	MaxQueueSize       int `toml:"max_queue_size"`
	MaxConcurrentBreak int `toml:"max_concurrent_break"`

	// Upload and fetch limits. Durations come from the environment only.
	MaxUploadBytes int64         `toml:"max_upload_bytes"`
	FetchTimeout   time.Duration `toml:"-"`

	// Job state
	JobTTL time.Duration `toml:"-"`

	// PDF
	PDFFallbackPdftotext bool `toml:"pdf_fallback_pdftotext"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	def := linebreak.DefaultOptions()
	return Config{
		Port: "8090",

		TargetWidth:         def.TargetWidth,
		RatioMax:            def.RatioMax,
		HyphenPenalty:       def.HyphenPenalty,
		FlaggedDemerits:     def.FlaggedDemerits,
		FinalHyphenDemerits: def.FinalHyphenDemerits,
		Marker:              def.Marker,

		MinParagraphRunes: 1,

		WorkerCount:        4,
		MaxQueueSize:       100,
		MaxConcurrentBreak: 8,

		MaxUploadBytes: 52428800, // 50MB
		FetchTimeout:   30 * time.Second,

		JobTTL: 1 * time.Hour,

		PDFFallbackPdftotext: true,
	}
}

// Load reads the configuration from the environment.
func Load() Config {
	return fromEnv(Defaults())
}

// LoadFile reads a TOML file over the defaults, then applies the environment.
// An empty path behaves like Load.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	return fromEnv(cfg), nil
}

func fromEnv(base Config) Config {
	cfg := Config{
		Port: envOr("PORT", base.Port),

		APIKey: envOr("GRAFBREAK_API_KEY", base.APIKey),

		TargetWidth:         envInt("TARGET_WIDTH", base.TargetWidth),
		RatioMax:            envFloat("RATIO_MAX", base.RatioMax),
		HyphenPenalty:       envInt("HYPHEN_PENALTY", base.HyphenPenalty),
		FlaggedDemerits:     envFloat("FLAGGED_DEMERITS", base.FlaggedDemerits),
		FinalHyphenDemerits: envFloat("FINAL_HYPHEN_DEMERITS", base.FinalHyphenDemerits),
		Marker:              envOr("BREAK_MARKER", base.Marker),
		RejectUnknown:       envBool("REJECT_UNKNOWN", base.RejectUnknown),

		MinParagraphRunes: envInt("MIN_PARAGRAPH_RUNES", base.MinParagraphRunes),

		WorkerCount:        envInt("WORKER_COUNT", base.WorkerCount),
		MaxQueueSize:       envInt("MAX_QUEUE_SIZE", base.MaxQueueSize),
		MaxConcurrentBreak: envInt("MAX_CONCURRENT_BREAK", base.MaxConcurrentBreak),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", base.MaxUploadBytes),
		FetchTimeout:   envDuration("FETCH_TIMEOUT", base.FetchTimeout),

		JobTTL: envDuration("JOB_TTL", base.JobTTL),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", base.PDFFallbackPdftotext),
	}

	def := Defaults()
	if cfg.TargetWidth <= 0 {
		cfg.TargetWidth = def.TargetWidth
	}
	if cfg.RatioMax < 0 {
		cfg.RatioMax = def.RatioMax
	}
	if cfg.Marker == "" {
		cfg.Marker = def.Marker
	}
	if cfg.MinParagraphRunes <= 0 {
		cfg.MinParagraphRunes = def.MinParagraphRunes
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = def.WorkerCount
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = def.MaxQueueSize
	}
	if cfg.MaxConcurrentBreak <= 0 {
		cfg.MaxConcurrentBreak = def.MaxConcurrentBreak
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = def.MaxUploadBytes
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = def.FetchTimeout
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = def.JobTTL
	}

	return cfg
}

// Validate checks the settings the HTTP server cannot run without.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("GRAFBREAK_API_KEY is required")
	}
	return nil
}

// BreakOptions maps the layout settings onto linebreak options.
func (c Config) BreakOptions() linebreak.Options {
	return linebreak.Options{
		TargetWidth:         c.TargetWidth,
		RatioMax:            c.RatioMax,
		HyphenPenalty:       c.HyphenPenalty,
		FlaggedDemerits:     c.FlaggedDemerits,
		FinalHyphenDemerits: c.FinalHyphenDemerits,
		Marker:              c.Marker,
		RejectUnknown:       c.RejectUnknown,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
