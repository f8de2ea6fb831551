package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfiguration(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := LoadConfiguration(filepath.Join(t.TempDir(), "no-such-file.yaml"))
		require.NoError(t, err)
		require.Equal(t, "INFO", cfg.Level)
		require.Equal(t, FormatConsole, cfg.Format)
		require.Equal(t, "stderr", cfg.OutputPath)
	})

	t.Run("values loaded from file", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "logger-config.yaml")
		require.NoError(t, os.WriteFile(fileName, []byte("defaultLevel: DEBUG\nformat: json\noutputPath: stdout\n"), 0600))

		cfg, err := LoadConfiguration(fileName)
		require.NoError(t, err)
		require.Equal(t, "DEBUG", cfg.Level)
		require.Equal(t, FormatJSON, cfg.Format)
		require.Equal(t, "stdout", cfg.OutputPath)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "logger-config.yaml")
		require.NoError(t, os.WriteFile(fileName, []byte("defaultLevel: [unterminated"), 0600))

		_, err := LoadConfiguration(fileName)
		require.ErrorContains(t, err, "decoding logger configuration")
	})
}

func TestNew(t *testing.T) {
	t.Run("nil configuration uses defaults", func(t *testing.T) {
		log, err := New(nil)
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("every supported format builds", func(t *testing.T) {
		for _, format := range []string{FormatText, FormatJSON, FormatConsole} {
			log, err := New(&LogConfiguration{Format: format, OutputPath: "discard"})
			require.NoError(t, err, "format %s", format)
			require.NotNil(t, log)
		}
	})

	t.Run("unknown format is an error", func(t *testing.T) {
		_, err := New(&LogConfiguration{Format: "xml"})
		require.ErrorContains(t, err, `unknown log format "xml"`)
	})

	t.Run("unknown level is an error", func(t *testing.T) {
		_, err := New(&LogConfiguration{Level: "chatty"})
		require.ErrorContains(t, err, `unknown log level "chatty"`)
	})

	t.Run("log file is created", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "wd.log")
		log, err := New(&LogConfiguration{Format: FormatText, OutputPath: fileName})
		require.NoError(t, err)
		log.Info("hello")

		content, err := os.ReadFile(fileName)
		require.NoError(t, err)
		require.Contains(t, string(content), "hello")
	})
}
