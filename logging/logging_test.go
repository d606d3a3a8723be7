package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "json")

	log.Info("hidden")
	log.Warn("mirror failed", "user_id", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "mirror failed", entry["msg"])
	assert.Equal(t, "storefront", entry["service"])
	assert.Equal(t, float64(7), entry["user_id"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "text")

	log.Debug("cart reconciled", "lines", 2)

	out := buf.String()
	assert.Contains(t, out, "msg=\"cart reconciled\"")
	assert.Contains(t, out, "lines=2")
}
