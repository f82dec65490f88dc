package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/indigo-web/smol/config"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		buff := new(bytes.Buffer)
		log, err := NewWithSink(config.Log{Level: zapcore.InfoLevel, Format: "json"}, zapcore.AddSync(buff))
		require.NoError(t, err)

		log.Debug("invisible")
		log.Info("connection accepted", zap.String("conn", "abc"))
		require.NoError(t, log.Sync())

		lines := strings.Split(strings.TrimSpace(buff.String()), "\n")
		require.Len(t, lines, 1)
		entry := gjson.Parse(lines[0])
		require.Equal(t, "info", entry.Get("level").String())
		require.Equal(t, "connection accepted", entry.Get("msg").String())
		require.Equal(t, "abc", entry.Get("conn").String())
		require.True(t, entry.Get("timestamp").Exists())
	})

	t.Run("debug level", func(t *testing.T) {
		buff := new(bytes.Buffer)
		log, err := NewWithSink(config.Log{Level: zapcore.DebugLevel, Format: "json"}, zapcore.AddSync(buff))
		require.NoError(t, err)

		log.Debug("visible")
		require.Equal(t, "debug", gjson.Get(buff.String(), "level").String())
	})

	t.Run("console", func(t *testing.T) {
		buff := new(bytes.Buffer)
		log, err := NewWithSink(config.Log{Level: zapcore.InfoLevel, Format: "console"}, zapcore.AddSync(buff))
		require.NoError(t, err)

		log.Warn("careful")
		require.Contains(t, buff.String(), "careful")
		require.False(t, gjson.Valid(buff.String()))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewWithSink(config.Log{Format: "xml"}, zapcore.AddSync(new(bytes.Buffer)))
		require.Error(t, err)
	})
}
