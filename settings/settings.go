// Package settings loads lazykit configuration from YAML, TOML or JSON files.
//
// A settings file has one top-level section per helper package:
//
//	codec:
//	  charset: utf-8
//	log:
//	  level: debug
//	  file: logs/app.log
//	  suppress:
//	    http: warn
//	retry:
//	  max_retries: 5
//	  delay: 500ms
//	time:
//	  offset_hours: 8
//
// Missing sections and fields keep their defaults. LAZYKIT_CHARSET,
// LAZYKIT_LOG_LEVEL and LAZYKIT_LOG_FILE override the file.
package settings

import (
	"os"
	"time"
)

// Settings groups the configuration of every helper package.
type Settings struct {
	Codec CodecSettings `mapstructure:"codec"`
	Log   LogSettings   `mapstructure:"log"`
	Retry RetrySettings `mapstructure:"retry"`
	Time  TimeSettings  `mapstructure:"time"`
}

// CodecSettings configures the codec registry.
type CodecSettings struct {
	Charset          string `mapstructure:"charset" validate:"required"`
	CharsetCacheSize int    `mapstructure:"charset_cache_size" validate:"min=1"`
}

// LogSettings configures logkit.
type LogSettings struct {
	Level      string            `mapstructure:"level" validate:"oneof=debug|info|warn|warning|error|critical|fatal"`
	File       string            `mapstructure:"file"`
	Color      bool              `mapstructure:"color"`
	Lowercase  bool              `mapstructure:"lowercase"`
	TimeFormat string            `mapstructure:"time_format"`
	MaxSizeMB  int               `mapstructure:"max_size_mb" validate:"min=1"`
	MaxBackups int               `mapstructure:"max_backups" validate:"min=0"`
	Suppress   map[string]string `mapstructure:"suppress"`
}

// RetrySettings configures retry defaults.
type RetrySettings struct {
	MaxRetries     int           `mapstructure:"max_retries" validate:"min=1"`
	Delay          time.Duration `mapstructure:"delay" validate:"min=0"`
	Backoff        float64       `mapstructure:"backoff" validate:"min=1"`
	MaxDuration    time.Duration `mapstructure:"max_duration" validate:"min=0"`
	AlertThreshold int           `mapstructure:"alert_threshold" validate:"min=0"`
}

// TimeSettings configures timekit.
type TimeSettings struct {
	OffsetHours int `mapstructure:"offset_hours" validate:"min=-12,max=14"`
}

// Defaults returns the settings used when no file is given.
func Defaults() Settings {
	return Settings{
		Codec: CodecSettings{
			Charset:          "utf-8",
			CharsetCacheSize: 64,
		},
		Log: LogSettings{
			Level:      "info",
			Color:      true,
			TimeFormat: "15:04:05",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
		Retry: RetrySettings{
			MaxRetries: 3,
			Delay:      time.Second,
			Backoff:    2.0,
		},
		Time: TimeSettings{
			OffsetHours: 8,
		},
	}
}

// Load returns Defaults overlaid by the file at path and the environment,
// then validates the result. An empty path skips the file.
func Load(path string, opts ...LoaderOption) (*Settings, error) {
	s := Defaults()

	if path != "" {
		l := NewLoader(path, opts...)
		l.MustRegister("codec", &s.Codec)
		l.MustRegister("log", &s.Log)
		l.MustRegister("retry", &s.Retry)
		l.MustRegister("time", &s.Time)
		if err := l.Load(); err != nil {
			return nil, err
		}
	}

	applyEnv(&s, os.LookupEnv)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func applyEnv(s *Settings, lookup func(string) (string, bool)) {
	if v, ok := lookup("LAZYKIT_CHARSET"); ok && v != "" {
		s.Codec.Charset = v
	}
	if v, ok := lookup("LAZYKIT_LOG_LEVEL"); ok && v != "" {
		s.Log.Level = v
	}
	if v, ok := lookup("LAZYKIT_LOG_FILE"); ok {
		s.Log.File = v
	}
}
