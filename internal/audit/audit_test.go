package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audit")
	r := NewRecorder(dir)

	filename, err := r.Record(Event{
		Action: "store_reset",
		Detail: "durable store wiped before switch",
		Actor:  "urn:mehgu:user:admin",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".json"))

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "store_reset", got.Action)
	assert.Equal(t, "urn:mehgu:user:admin", got.Actor)
	assert.False(t, got.Occurred.IsZero())
}

func TestRecordKeepsExplicitTimestamp(t *testing.T) {
	r := NewRecorder(t.TempDir())
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	filename, err := r.Record(Event{Action: "permission_sync", Occurred: ts})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(r.Dir, filename))
	require.NoError(t, err)
	var got Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, ts, got.Occurred)
}

func TestRecordDistinctFilenames(t *testing.T) {
	r := NewRecorder(t.TempDir())
	first, err := r.Record(Event{Action: "a"})
	require.NoError(t, err)
	second, err := r.Record(Event{Action: "b"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
