package storage

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"
	"time"

	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
)

// BlobState describes one stored blob.
type BlobState string

const (
	BlobAbsent  BlobState = "absent"
	BlobOK      BlobState = "ok"
	BlobCorrupt BlobState = "corrupt"
)

// BlobHealth is the state of a single key.
type BlobHealth struct {
	Key   string    `json:"key"`
	State BlobState `json:"state"`
	Error string    `json:"error,omitempty"`
}

// HealthReport is the result of an integrity check.
type HealthReport struct {
	Healthy   bool         `json:"healthy"`
	CheckedAt time.Time    `json:"checked_at"`
	Blobs     []BlobHealth `json:"blobs"`
}

// Corrupt returns the keys whose blobs failed to decode.
func (h *HealthReport) Corrupt() []string {
	var keys []string
	for _, b := range h.Blobs {
		if b.State == BlobCorrupt {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// blobShapes maps each JSON key to a constructor for the value it must decode into.
var blobShapes = []struct {
	key   string
	shape func() any
}{
	{model.KeyTasks, func() any { return &[]*model.Task{} }},
	{model.KeyUsers, func() any { return &[]*model.User{} }},
	{model.KeyCurrentUser, func() any { return &model.SessionUser{} }},
	{model.KeyPomodoroSettings, func() any { return &model.SettingsPatch{} }},
}

// CheckIntegrity decodes every known blob and reports which ones are
// unreadable. Repositories already treat those as empty; the report lets a
// user find out why their data disappeared.
func CheckIntegrity(store BlobStore) (*HealthReport, error) {
	report := &HealthReport{Healthy: true, CheckedAt: time.Now()}
	for _, s := range blobShapes {
		raw, ok, err := store.Get(s.key)
		if err != nil {
			return nil, err
		}
		health := BlobHealth{Key: s.key, State: BlobAbsent}
		if ok {
			if err := json.Unmarshal([]byte(raw), s.shape()); err != nil {
				health.State = BlobCorrupt
				health.Error = err.Error()
				report.Healthy = false
			} else {
				health.State = BlobOK
			}
		}
		report.Blobs = append(report.Blobs, health)
	}
	return report, nil
}

// Repair removes the corrupt blobs listed in report. Their owners then read
// as empty collections or defaults.
func Repair(store BlobStore, report *HealthReport) (int, error) {
	removed := 0
	for _, key := range report.Corrupt() {
		if err := store.Remove(key); err != nil {
			return removed, err
		}
		removed++
		logging.Warn("removed corrupt blob", logging.KeyBlob, key)
	}
	return removed, nil
}

// ExportBlobs writes every known blob as one JSON object keyed by storage
// key. Readable blobs are embedded as JSON, unreadable ones as raw strings.
func ExportBlobs(store BlobStore, w io.Writer) (int, error) {
	out := make(map[string]any)
	keys := []string{model.KeyAuthToken, model.KeyLanguage}
	for _, s := range blobShapes {
		keys = append(keys, s.key)
	}
	for _, key := range keys {
		raw, ok, err := store.Get(key)
		if err != nil {
			return 0, err
		}
		if !ok || key == model.KeyAuthToken {
			continue
		}
		var v any
		if json.Unmarshal([]byte(raw), &v) == nil {
			out[key] = v
		} else {
			out[key] = raw
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return 0, err
	}
	logging.Info("blobs exported", logging.KeyCount, len(out))
	return len(out), nil
}

// ImportBlobs reads an object written by ExportBlobs and stores every known
// key it contains. Unknown keys and the auth token are skipped. String
// values are stored as is, everything else is re-encoded as JSON.
func ImportBlobs(store BlobStore, r io.Reader) (int, error) {
	var in map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return 0, errors.NewUserErrorWithField("file", "", "not a tasksync export", "Use a file written by 'tasksync export'.")
	}

	known := map[string]bool{model.KeyLanguage: true}
	for _, s := range blobShapes {
		known[s.key] = true
	}

	imported := 0
	for key, raw := range in {
		if !known[key] {
			logging.DebugLog("skipping unknown export key", logging.KeyBlob, key)
			continue
		}
		value := string(raw)
		var str string
		if json.Unmarshal(raw, &str) == nil {
			value = str
		}
		if err := store.Set(key, value); err != nil {
			return imported, err
		}
		imported++
	}
	logging.Info("blobs imported", logging.KeyCount, imported)
	return imported, nil
}

// Backup streams a full Badger backup to w.
func (d *DB) Backup(w io.Writer) error {
	if _, err := d.db.Backup(w, 0); err != nil {
		return errors.NewSystemErrorWithOp("backup", d.path, err)
	}
	return nil
}

// Restore loads a backup produced by Backup.
func (d *DB) Restore(r io.Reader) error {
	if err := d.db.Load(r, 256); err != nil {
		return errors.NewSystemErrorWithOp("restore", d.path, err)
	}
	return nil
}

// IsDatabaseCorrupted checks if the given error indicates database corruption.
func IsDatabaseCorrupted(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, errors.ErrDatabaseCorrupted) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{"checksum mismatch", "corrupt", "unexpected eof", "bad magic", "truncated"} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
