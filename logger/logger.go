package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type LogConfiguration struct {
	Level      string `yaml:"defaultLevel"`
	Format     string `yaml:"format"`
	OutputPath string `yaml:"outputPath"`
	TimeFormat string `yaml:"timeFormat"`

	// NoColor disables ANSI colors of the "console" format.
	NoColor bool `yaml:"noColor"`
}

const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatConsole = "console"
)

/*
New creates a logger based on given configuration.
Nil configuration is valid, defaults are used for every unset field.
*/
func New(cfg *LogConfiguration) (*slog.Logger, error) {
	if cfg == nil {
		cfg = &LogConfiguration{}
	}
	cfg.initDefaults()

	out, err := output(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("creating logger output: %w", err)
	}

	h, err := handler(cfg, out)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

/*
LoadConfiguration reads logger configuration from a yaml file.
Missing file is not an error, defaults are returned.
*/
func LoadConfiguration(fileName string) (*LogConfiguration, error) {
	cfg := &LogConfiguration{}
	f, err := os.Open(filepath.Clean(fileName))
	if err != nil {
		if os.IsNotExist(err) {
			cfg.initDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("opening logger configuration file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decoding logger configuration (%s): %w", fileName, err)
	}
	cfg.initDefaults()
	return cfg, nil
}

func (cfg *LogConfiguration) initDefaults() {
	if cfg.Level == "" {
		cfg.Level = slog.LevelInfo.String()
	}
	if cfg.Format == "" {
		cfg.Format = FormatConsole
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "stderr"
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = "15:04:05.0000"
	}
}

func (cfg *LogConfiguration) logLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(cfg.Level))); err != nil {
		return 0, fmt.Errorf("unknown log level %q: %w", cfg.Level, err)
	}
	return lvl, nil
}

func handler(cfg *LogConfiguration, out io.Writer) (slog.Handler, error) {
	lvl, err := cfg.logLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch cfg.Format {
	case FormatText:
		return slog.NewTextHandler(out, opts), nil
	case FormatJSON:
		return slog.NewJSONHandler(out, opts), nil
	case FormatConsole:
		// zerolog console writer gives the human friendly output, slog
		// records are piped into it as json.
		cw := zerolog.ConsoleWriter{
			Out:           out,
			NoColor:       cfg.NoColor,
			TimeFormat:    cfg.TimeFormat,
			PartsOrder:    []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName},
			FieldsExclude: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName},
		}
		return slog.NewJSONHandler(cw, &slog.HandlerOptions{
			Level: lvl,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				switch a.Key {
				case slog.TimeKey:
					a.Key = zerolog.TimestampFieldName
				case slog.LevelKey:
					a.Key = zerolog.LevelFieldName
					a.Value = slog.StringValue(strings.ToLower(a.Value.String()))
				case slog.MessageKey:
					a.Key = zerolog.MessageFieldName
				}
				return a
			},
		}), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

func output(path string) (io.Writer, error) {
	switch path {
	case "stdout":
		return os.Stdout, nil
	case "", "stderr":
		return os.Stderr, nil
	case "discard":
		return io.Discard, nil
	default:
		file, err := os.OpenFile(filepath.Clean(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // -rw-------
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		return file, nil
	}
}
