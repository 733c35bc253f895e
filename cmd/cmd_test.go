package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/tasksync/internal/config"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/storage"
)

// testContext runs commands in-process against a temporary database and
// config file.
type testContext struct {
	t   *testing.T
	dir string
}

func setup(t *testing.T) *testContext {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultRuntimeConfig()
	cfg.Storage.Path = filepath.Join(dir, "db")
	cfg.Auth.RequireLogin = false

	prevGlobal, prevConfigPath, prevPID := config.Global, configFilePath, watchPIDPath
	prevIn, prevOut, prevErr := stdin, stdout, stderr
	config.Global = cfg
	configFilePath = func() string { return filepath.Join(dir, "config.yaml") }
	watchPIDPath = filepath.Join(dir, "watch.pid")
	t.Cleanup(func() {
		config.Global, configFilePath, watchPIDPath = prevGlobal, prevConfigPath, prevPID
		stdin, stdout, stderr = prevIn, prevOut, prevErr
		resetFlags(rootCmd)
	})

	return &testContext{t: t, dir: dir}
}

// resetFlags restores every flag to its default so runs do not leak into
// each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes tasksync with args and returns stdout, stderr and the exit code.
func (tc *testContext) run(args ...string) (string, string, int) {
	tc.t.Helper()
	return tc.runWithInput("", args...)
}

func (tc *testContext) runWithInput(input string, args ...string) (string, string, int) {
	tc.t.Helper()
	var out, errOut bytes.Buffer
	stdin, stdout, stderr = strings.NewReader(input), &out, &errOut

	resetFlags(rootCmd)
	rootCmd.SetArgs(append([]string{"--color", "never"}, args...))
	code := Execute()
	return out.String(), errOut.String(), code
}

// mustRun runs args and fails the test on a non-zero exit code.
func (tc *testContext) mustRun(args ...string) string {
	tc.t.Helper()
	out, errOut, code := tc.run(args...)
	require.Zero(tc.t, code, "tasksync %s\nstdout: %s\nstderr: %s", strings.Join(args, " "), out, errOut)
	return out
}

func (tc *testContext) addTask(title string, extra ...string) *model.Task {
	tc.t.Helper()
	args := append([]string{"--format", "json", "task", "add", title}, extra...)
	out := tc.mustRun(args...)

	var resp struct {
		Status string      `json:"status"`
		Task   *model.Task `json:"task"`
	}
	require.NoError(tc.t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(tc.t, "created", resp.Status)
	return resp.Task
}

func (tc *testContext) listTasks(args ...string) []*model.Task {
	tc.t.Helper()
	out := tc.mustRun(append([]string{"--format", "json", "task", "list"}, args...)...)

	var resp struct {
		Tasks []*model.Task `json:"tasks"`
		Count int           `json:"count"`
	}
	require.NoError(tc.t, json.Unmarshal([]byte(out), &resp), out)
	require.Equal(tc.t, len(resp.Tasks), resp.Count)
	return resp.Tasks
}

// titles runs a JSON task-list command and returns the task titles in order.
func (tc *testContext) titles(args ...string) []string {
	tc.t.Helper()
	out := tc.mustRun(append([]string{"--format", "json"}, args...)...)

	var resp struct {
		Tasks []*model.Task `json:"tasks"`
	}
	require.NoError(tc.t, json.Unmarshal([]byte(out), &resp), out)
	titles := make([]string, len(resp.Tasks))
	for i, task := range resp.Tasks {
		titles[i] = task.Title
	}
	return titles
}

// =============================================================================
// Task Commands
// =============================================================================

func TestTaskLifecycle(t *testing.T) {
	tc := setup(t)

	task := tc.addTask("Write report", "--time", "2:30 PM", "--date", "2026-10-20", "--priority", "High")
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "14:30", task.Time)
	assert.Equal(t, "2026-10-20", task.Date)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Equal(t, model.StatusPending, task.Status)

	tc.addTask("Buy milk", "--time", "09:00", "--date", "2026-10-19", "--priority", "Low")

	tasks := tc.listTasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "Buy milk", tasks[0].Title, "date sort puts the earlier day first")

	tc.mustRun("task", "edit", task.ID, "--title", "Write final report")
	tc.mustRun("task", "toggle", task.ID)

	completed := tc.listTasks("--status", "completed")
	require.Len(t, completed, 1)
	assert.Equal(t, "Write final report", completed[0].Title)

	tc.mustRun("task", "delete", task.ID)
	assert.Len(t, tc.listTasks(), 1)
}

func TestTaskAddRejectsBadInput(t *testing.T) {
	tc := setup(t)

	tests := []struct {
		name string
		args []string
	}{
		{"bad_time", []string{"task", "add", "Call", "--time", "25:99"}},
		{"bad_date", []string{"task", "add", "Call", "--time", "09:00", "--date", "not a date at all"}},
		{"bad_priority", []string{"task", "add", "Call", "--time", "09:00", "--priority", "Urgent"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, code := tc.run(tt.args...)
			assert.NotZero(t, code)
			assert.Contains(t, errOut, "Error:")
		})
	}
	assert.Empty(t, tc.listTasks())
}

func TestUnknownFormat(t *testing.T) {
	tc := setup(t)
	_, errOut, code := tc.run("--format", "yaml", "task", "list")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown output format")
}

func TestRequireLogin(t *testing.T) {
	tc := setup(t)
	config.Global.Auth.RequireLogin = true

	_, errOut, code := tc.run("task", "list")
	assert.NotZero(t, code)
	assert.NotEmpty(t, errOut)

	tc.mustRun("register", "ann@example.com", "-P", "secret123", "--name", "Ann")
	_, _, code = tc.run("task", "list")
	assert.NotZero(t, code, "register does not log in")

	tc.mustRun("login", "ann@example.com", "-P", "secret123")
	assert.Empty(t, tc.listTasks())

	tc.mustRun("logout")
	_, _, code = tc.run("task", "list")
	assert.NotZero(t, code)
}

func TestProfileChangePassword(t *testing.T) {
	tc := setup(t)
	tc.mustRun("register", "bob@example.com", "-P", "secret123")
	tc.mustRun("login", "bob@example.com", "-P", "secret123")

	_, _, code := tc.runWithInput("new-secret\n", "profile", "--password")
	require.Zero(t, code)
	tc.mustRun("logout")

	_, _, code = tc.run("login", "bob@example.com", "-P", "secret123")
	assert.NotZero(t, code)
	tc.mustRun("login", "bob@example.com", "-P", "new-secret")

	// Password read from input when the flag is absent.
	tc.mustRun("logout")
	_, _, code = tc.runWithInput("new-secret\n", "login", "bob@example.com")
	assert.Zero(t, code)
}

func TestExportCSV(t *testing.T) {
	tc := setup(t)
	tc.addTask("Standup", "--time", "09:30", "--date", "2026-10-21")

	out := tc.mustRun("export", "--csv")
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "id", records[0][0])
	assert.Equal(t, "Standup", records[1][1])
	assert.Equal(t, "09:30", records[1][4])
}

func TestExportToDirectory(t *testing.T) {
	tc := setup(t)
	tc.addTask("Standup", "--time", "09:30", "--date", "2026-10-21")

	dir := filepath.Join(tc.dir, "exports")
	require.NoError(t, os.Mkdir(dir, 0o755))
	tc.mustRun("export", "--csv", "-o", dir)

	matches, err := filepath.Glob(filepath.Join(dir, "tasksync-local-*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestExportImportRoundTrip(t *testing.T) {
	tc := setup(t)
	tc.addTask("Keep me", "--time", "10:00", "--date", "2026-10-22")

	file := filepath.Join(tc.dir, "export.json")
	tc.mustRun("export", "-o", file)

	tc.mustRun("task", "delete", tc.listTasks()[0].ID)
	require.Empty(t, tc.listTasks())

	tc.mustRun("import", file)
	tasks := tc.listTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Keep me", tasks[0].Title)
}

func TestImportBackupIntoFreshDatabase(t *testing.T) {
	tc := setup(t)
	tc.addTask("Backed up", "--time", "10:00", "--date", "2026-10-22")

	file := filepath.Join(tc.dir, "tasksync.bak")
	tc.mustRun("export", "--backup", "-o", file)

	config.Global.Storage.Path = filepath.Join(tc.dir, "restored")
	require.Empty(t, tc.listTasks())

	tc.mustRun("import", "--backup", file)
	tasks := tc.listTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Backed up", tasks[0].Title)

	_, _, code := tc.run("import", "--backup", filepath.Join(tc.dir, "missing.bak"))
	assert.Equal(t, 2, code)
}

// =============================================================================
// Storage Modes
// =============================================================================

func TestRunsWithoutStorage(t *testing.T) {
	tc := setup(t)
	config.Global.Storage.Path = storage.NonePath

	assert.Empty(t, tc.listTasks())
	task := tc.addTask("Scratch", "--time", "09:00", "--date", "2026-10-21")
	assert.Equal(t, "Scratch", task.Title)
	assert.Empty(t, tc.listTasks(), "nothing is kept between commands")

	out := tc.mustRun("--format", "json", "doctor")
	assert.Contains(t, out, `"healthy": true`)

	_, errOut, code := tc.run("export", "--backup")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "on-disk database")
}

func TestMemoryStorage(t *testing.T) {
	tc := setup(t)
	config.Global.Storage.Path = storage.MemoryPath

	tc.addTask("Volatile", "--time", "09:00", "--date", "2026-10-21")
	assert.Empty(t, tc.listTasks(), "each command starts with an empty store")
	assert.DirExists(t, tc.dir)
	assert.NoDirExists(t, filepath.Join(tc.dir, "db"))
}

// =============================================================================
// Views
// =============================================================================

func TestDayViews(t *testing.T) {
	tc := setup(t)
	now := time.Now()
	today := now.Format(model.DateLayout)

	tc.addTask("Evening review", "--time", "23:00", "--date", today)
	done := tc.addTask("Morning run", "--time", "06:00", "--date", today)
	tc.mustRun("task", "toggle", done.ID)
	tc.addTask("Conference", "--time", "10:00", "--date", now.AddDate(0, 2, 0).Format(model.DateLayout))
	tc.addTask("Missed call", "--time", "10:00", "--date", now.AddDate(0, 0, -40).Format(model.DateLayout))

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"today", []string{"today"}, []string{"Morning run", "Evening review"}},
		{"root_shows_today", nil, []string{"Morning run", "Evening review"}},
		{"week", []string{"week"}, []string{"Morning run", "Evening review"}},
		{"upcoming", []string{"upcoming"}, []string{"Evening review", "Conference"}},
		{"upcoming_limit", []string{"upcoming", "--limit", "1"}, []string{"Evening review"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tc.titles(tt.args...))
		})
	}

	out := tc.mustRun("--format", "json", "stats")
	var stats model.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats), out)
	assert.Equal(t, model.Stats{Total: 4, Completed: 1, Today: 2, TodayCompleted: 1, Week: 2}, stats)

	out = tc.mustRun("stats")
	assert.Contains(t, out, "Statistics")
}

func TestCalendar(t *testing.T) {
	tc := setup(t)
	tc.addTask("Dentist", "--time", "09:00", "--date", "2026-10-20")
	tc.addTask("Pharmacy", "--time", "11:00", "--date", "2026-10-20")
	tc.addTask("Party", "--time", "20:00", "--date", "2026-12-31")

	type day struct {
		Date    string `json:"date"`
		Pending int    `json:"pending"`
	}
	var resp struct {
		Year     int           `json:"year"`
		Month    int           `json:"month"`
		Days     []day         `json:"days"`
		Selected string        `json:"selected"`
		Tasks    []*model.Task `json:"tasks"`
	}

	out := tc.mustRun("--format", "json", "calendar", "--date", "2026-10-20")
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, 10, resp.Month)
	assert.Len(t, resp.Days, 31)
	assert.Contains(t, resp.Days, day{Date: "2026-10-20", Pending: 2})
	assert.Equal(t, "2026-10-20", resp.Selected)
	assert.Len(t, resp.Tasks, 2)

	resp.Tasks = nil
	out = tc.mustRun("--format", "json", "calendar", "--month", "2026-12")
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, 12, resp.Month)
	assert.Contains(t, resp.Days, day{Date: "2026-12-31", Pending: 1})
	assert.Empty(t, resp.Tasks)

	out = tc.mustRun("calendar", "--month", "2026-10")
	assert.Contains(t, out, "October 2026")
	assert.Contains(t, out, "20(2)")

	_, errOut, code := tc.run("calendar", "--month", "Smarch")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "month")
}

func TestBlocks(t *testing.T) {
	tc := setup(t)
	task := tc.addTask("Dentist", "--time", "09:00", "--date", "2026-10-20")

	out := tc.mustRun("--format", "json", "blocks", "--date", "2026-10-20")
	var resp struct {
		Date   string `json:"date"`
		Blocks []struct {
			Start  string `json:"startTime"`
			TaskID string `json:"taskId"`
			Free   bool   `json:"free"`
		} `json:"blocks"`
		TaskBlocks int `json:"taskBlocks"`
		FreeBlocks int `json:"freeBlocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, "2026-10-20", resp.Date)
	assert.Equal(t, 1, resp.TaskBlocks)
	assert.Equal(t, 23, resp.FreeBlocks)
	for _, b := range resp.Blocks {
		if !b.Free {
			assert.Equal(t, "09:00", b.Start)
			assert.Equal(t, task.ID, b.TaskID)
		}
	}

	out = tc.mustRun("blocks", "--date", "2026-10-20")
	assert.Contains(t, out, "Dentist")

	_, _, code := tc.run("blocks", "--date", "not a date at all")
	assert.Equal(t, 2, code)
}

// =============================================================================
// Settings
// =============================================================================

func TestLanguage(t *testing.T) {
	tc := setup(t)

	out := tc.mustRun("--format", "json", "lang")
	assert.Contains(t, out, `"message": "en"`)

	out = tc.mustRun("lang", "ru")
	assert.Contains(t, out, "Язык изменен")

	out = tc.mustRun("--format", "json", "lang")
	assert.Contains(t, out, `"message": "ru"`)

	out = tc.mustRun("today")
	assert.Contains(t, out, "Нет задач на сегодня")

	_, _, code := tc.run("lang", "de")
	assert.Equal(t, 2, code)

	tc.mustRun("lang", "en")
	out = tc.mustRun("today")
	assert.Contains(t, out, "No tasks for today")
}

func TestPomodoroSettings(t *testing.T) {
	tc := setup(t)

	type settings struct {
		Work      int `json:"workInterval"`
		Break     int `json:"breakInterval"`
		Count     int `json:"intervalCount"`
		LongBreak int `json:"longBreakInterval"`
	}
	read := func(args ...string) settings {
		t.Helper()
		out := tc.mustRun(append([]string{"--format", "json", "pomodoro", "settings"}, args...)...)
		var s settings
		require.NoError(t, json.Unmarshal([]byte(out), &s), out)
		return s
	}

	assert.Equal(t, settings{Work: 25, Break: 5, Count: 4, LongBreak: 10}, read())

	rejected := []struct {
		args    []string
		message string
	}{
		{[]string{"--work", "0"}, "Work interval must be between 1 and 60 minutes"},
		{[]string{"--work", "61"}, "Work interval must be between 1 and 60 minutes"},
		{[]string{"--break", "31"}, "Break interval must be between 1 and 30 minutes"},
		{[]string{"--count", "0"}, "Number of intervals must be between 1 and 10"},
		{[]string{"--count", "11"}, "Number of intervals must be between 1 and 10"},
	}
	for _, tt := range rejected {
		t.Run(strings.Join(tt.args, "="), func(t *testing.T) {
			_, errOut, code := tc.run(append([]string{"pomodoro", "settings"}, tt.args...)...)
			assert.Equal(t, 2, code)
			assert.Contains(t, errOut, tt.message)
		})
	}
	assert.Equal(t, settings{Work: 25, Break: 5, Count: 4, LongBreak: 10}, read(), "rejected values are not saved")

	assert.Equal(t, settings{Work: 30, Break: 5, Count: 4, LongBreak: 10}, read("--work", "30"))
	assert.Equal(t, settings{Work: 30, Break: 8, Count: 2, LongBreak: 16}, read("--break", "8", "--count", "2"))
	assert.Equal(t, settings{Work: 30, Break: 8, Count: 2, LongBreak: 16}, read())
}

func TestDoctor(t *testing.T) {
	tc := setup(t)
	tc.addTask("Survivor", "--time", "09:00", "--date", "2026-10-21")

	type report struct {
		Healthy bool `json:"healthy"`
		Blobs   []struct {
			Key   string `json:"key"`
			State string `json:"state"`
		} `json:"blobs"`
	}
	check := func() report {
		t.Helper()
		out := tc.mustRun("--format", "json", "doctor")
		var r report
		require.NoError(t, json.Unmarshal([]byte(out), &r), out)
		return r
	}

	assert.True(t, check().Healthy)

	db, err := storage.Open(storage.Options{Path: config.Global.Storage.Path})
	require.NoError(t, err)
	require.NoError(t, db.Set(model.KeyPomodoroSettings, "{not json"))
	require.NoError(t, db.Close())

	r := check()
	assert.False(t, r.Healthy)
	for _, b := range r.Blobs {
		if b.Key == model.KeyPomodoroSettings {
			assert.Equal(t, string(storage.BlobCorrupt), b.State)
		}
	}

	out := tc.mustRun("doctor")
	assert.Contains(t, out, "tasksync doctor --repair")

	out = tc.mustRun("doctor", "--repair")
	assert.Contains(t, out, "Removed 1 unreadable value(s)")
	assert.True(t, check().Healthy)
	assert.Len(t, tc.listTasks(), 1, "readable blobs are kept")
}

func TestConfigCommands(t *testing.T) {
	tc := setup(t)
	path := configFilePath()

	out := tc.mustRun("config", "path")
	assert.Contains(t, out, "config:   "+path)
	assert.Contains(t, out, "database: "+config.Global.Storage.Path)

	out = tc.mustRun("config", "show")
	assert.Contains(t, out, "storage:")
	assert.Contains(t, out, config.Global.Storage.Path)

	tc.mustRun("config", "init")
	loaded := config.DefaultRuntimeConfig()
	require.NoError(t, loaded.LoadFile(path))
	assert.Equal(t, config.DefaultRuntimeConfig().Reminders.Lead, loaded.Reminders.Lead)

	_, errOut, code := tc.run("config", "init")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "already exists")

	tc.mustRun("config", "init", "--force")
}

// =============================================================================
// Google Sign-in
// =============================================================================

func TestGoogleLogin(t *testing.T) {
	tc := setup(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/auth/me" || r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Invalid token"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"email": "ann@gmail.com", "name": "Ann"})
	}))
	t.Cleanup(server.Close)

	_, errOut, code := tc.run("login", "--google")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "remote auth is not configured")

	config.Global.Auth.APIURL = server.URL
	out := tc.mustRun("login", "--google")
	assert.Contains(t, out, server.URL+"/auth/google")

	_, _, code = tc.run("login", "--token", "bad-token")
	assert.Equal(t, 2, code)
	out = tc.mustRun("--format", "json", "whoami")
	assert.Contains(t, out, `"loggedIn": false`)

	out = tc.mustRun("--format", "json", "login", "--token", "good-token")
	assert.Contains(t, out, `"ann@gmail.com"`)

	out = tc.mustRun("--format", "json", "whoami")
	assert.Contains(t, out, `"loggedIn": true`)
	assert.Contains(t, out, `"ann@gmail.com"`)

	_, _, code = tc.run("login", "ann@gmail.com", "--google")
	assert.Equal(t, 2, code)
}

// =============================================================================
// Webhook Commands
// =============================================================================

func TestWebhookAddListRemove(t *testing.T) {
	tc := setup(t)

	tc.mustRun("webhook", "add", "team", "https://hooks.slack.com/services/T000/B000/XXXX")
	out := tc.mustRun("--format", "json", "webhook", "list")
	assert.Contains(t, out, `"team"`)
	assert.Contains(t, out, `"slack"`)

	// Stored in the config file, so a fresh load sees it.
	file := config.DefaultRuntimeConfig()
	require.NoError(t, file.LoadFile(configFilePath()))
	require.Len(t, file.Reminders.Webhooks, 1)
	assert.Equal(t, "slack", file.Reminders.Webhooks[0].Type)

	_, _, code := tc.run("webhook", "add", "TEAM", "https://example.com/hook")
	assert.NotZero(t, code, "names are case-insensitive")

	tc.mustRun("webhook", "disable", "team")
	w, ok := config.Global.Reminders.Webhook("team")
	require.True(t, ok)
	assert.False(t, w.IsEnabled())

	tc.mustRun("webhook", "remove", "team")
	out = tc.mustRun("webhook", "list")
	assert.Contains(t, out, "No webhooks configured.")
}

func TestWebhookAddValidation(t *testing.T) {
	tc := setup(t)

	for _, args := range [][]string{
		{"webhook", "add", "bad name!", "https://example.com"},
		{"webhook", "add", "ok", "ftp://example.com"},
		{"webhook", "add", "ok", "https://example.com", "--type", "pager"},
		{"webhook", "add", "ok", "https://example.com", "--template", "{{.Nope"},
	} {
		_, _, code := tc.run(args...)
		assert.NotZero(t, code, "%v", args)
	}
	_, _, code := tc.run("webhook", "test", "missing")
	assert.NotZero(t, code)
}

// =============================================================================
// Watch Command
// =============================================================================

// hookRecorder is a webhook endpoint that keeps request bodies.
type hookRecorder struct {
	mu     sync.Mutex
	bodies []string
}

func (h *hookRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	h.mu.Lock()
	h.bodies = append(h.bodies, string(body))
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *hookRecorder) received() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.bodies...)
}

func TestWatchOnce(t *testing.T) {
	tc := setup(t)

	soon := time.Now().Add(5 * time.Minute)
	tc.addTask("Dentist", "--time", soon.Format("15:04"), "--date", soon.Format(model.DateLayout))
	later := time.Now().Add(3 * time.Hour)
	tc.addTask("Gym", "--time", later.Format("15:04"), "--date", later.Format(model.DateLayout))

	out := tc.mustRun("watch", "--once", "--no-webhooks")
	assert.Contains(t, out, "Dentist")
	assert.NotContains(t, out, "Gym")
	assert.Contains(t, out, "Notifications sent: 1")

	out = tc.mustRun("watch", "--once", "--lead", "4h", "--no-webhooks")
	assert.Contains(t, out, "Gym")
}

func TestWatchOnceSendsWebhooks(t *testing.T) {
	tc := setup(t)
	hook := &hookRecorder{}
	server := httptest.NewServer(hook)
	t.Cleanup(server.Close)

	tc.mustRun("webhook", "add", "local", server.URL, "--type", "generic")
	soon := time.Now().Add(3 * time.Minute)
	tc.addTask("Deploy", "--time", soon.Format("15:04"), "--date", soon.Format(model.DateLayout))

	tc.mustRun("--format", "json", "watch", "--once")

	bodies := hook.received()
	require.Len(t, bodies, 1)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(bodies[0]), &payload))
	assert.Equal(t, "Deploy", payload["title"])
	assert.Equal(t, string(model.NotifyReminder), payload["type"])
}

func TestWatchRejectsBadLead(t *testing.T) {
	tc := setup(t)
	_, errOut, code := tc.run("watch", "--once", "--lead", "0s")
	assert.NotZero(t, code)
	assert.Contains(t, errOut, "lead")
}

// =============================================================================
// Logging Configuration
// =============================================================================

func TestLogConfig(t *testing.T) {
	tc := setup(t)

	config.Global.Log.Level = "loud"
	_, errOut, code := tc.run("task", "list")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "loud")

	logPath := filepath.Join(tc.dir, "logs", "tasksync.log")
	config.Global.Log.Level = "debug"
	config.Global.Log.File = logPath
	tc.addTask("Logged", "--time", "09:00", "--date", "2026-10-21")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level=DEBUG")
}
