// Package audit records maintenance events (store switches, resets,
// permission sweeps) as JSON files, one per event, so destructive operations
// leave a trail outside the database they may have just wiped.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Event is one recorded maintenance action.
type Event struct {
	Action   string    `json:"action"`
	Detail   string    `json:"detail,omitempty"`
	Actor    string    `json:"actor,omitempty"`
	Error    string    `json:"error,omitempty"`
	Occurred time.Time `json:"occurred"`
}

type Recorder struct {
	Dir string
}

func NewRecorder(dir string) *Recorder {
	return &Recorder{Dir: dir}
}

// Record writes the event to a fresh UUID-named file and returns the
// filename. The directory is created on first use.
func (r *Recorder) Record(e Event) (string, error) {
	if err := r.ensureDir(); err != nil {
		return "", fmt.Errorf("ensuring audit directory: %w", err)
	}
	if e.Occurred.IsZero() {
		e.Occurred = time.Now().UTC()
	}

	filename := fmt.Sprintf("%s.json", uuid.NewString())
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding audit event: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.Dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("writing audit file: %w", err)
	}
	return filename, nil
}

func (r *Recorder) ensureDir() error {
	if _, err := os.Stat(r.Dir); os.IsNotExist(err) {
		return os.MkdirAll(r.Dir, 0o755)
	}
	return nil
}
