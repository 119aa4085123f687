package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("production writes JSON and drops debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := newLogger(&buf, false)
		log.Debug("hidden")
		log.Info("scan completed", "tail_number", "N9305P")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "scan completed", line["msg"])
		assert.Equal(t, "N9305P", line["tail_number"])
	})

	t.Run("development writes text including debug", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, true).Debug("cache miss")
		assert.Contains(t, buf.String(), "msg=\"cache miss\"")
	})
}
