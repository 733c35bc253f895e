// Package runtime provides application runtime context for Tasksync.
package runtime

import (
	"time"

	"github.com/manav03panchal/tasksync/internal/authapi"
	"github.com/manav03panchal/tasksync/internal/config"
	"github.com/manav03panchal/tasksync/internal/errors"
	"github.com/manav03panchal/tasksync/internal/i18n"
	"github.com/manav03panchal/tasksync/internal/logging"
	"github.com/manav03panchal/tasksync/internal/model"
	"github.com/manav03panchal/tasksync/internal/output"
	"github.com/manav03panchal/tasksync/internal/storage"
	"github.com/manav03panchal/tasksync/internal/toast"
)

// Context holds the application runtime context.
type Context struct {
	// Store backs every repository. DB is the same store when it is an
	// on-disk Badger database and nil otherwise.
	Store     storage.BlobStore
	DB        *storage.DB
	Formatter *output.Formatter
	Config    *config.RuntimeConfig

	// Repositories
	TaskRepo     *storage.TaskRepo
	SettingsRepo *storage.SettingsRepo
	LanguageRepo *storage.LanguageRepo
	AuthRepo     *storage.AuthRepo

	// Toasts carries user feedback. In CLI and plain output a printer is
	// subscribed; JSON output stays machine-readable.
	Toasts *toast.Service

	// Remote is the auth server client, nil unless an API URL is configured.
	Remote *authapi.Client

	// Lang is the stored language preference.
	Lang i18n.Language

	// Now is the clock used for "today".
	Now func() time.Time

	// Debug mode
	Debug bool

	unsubscribe func()
}

// Options configures the runtime context.
type Options struct {
	DBPath string

	// InMemory runs on a MemoryStore whatever the paths say.
	InMemory  bool
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool

	// Config defaults to config.Global.
	Config *config.RuntimeConfig

	// Formatter overrides the stdout formatter built from Format and
	// ColorMode.
	Formatter *output.Formatter

	// Now defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		DBPath:    storage.DefaultPath(),
		InMemory:  false,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Global
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	// Configured path overrides the default
	path := opts.DBPath
	if cfg.Storage.Path != "" {
		path = cfg.Storage.Path
	}

	store, db, err := openStore(path, opts.InMemory, cfg.Storage.MinFreeSpace)
	if err != nil {
		return nil, err
	}

	formatter := opts.Formatter
	if formatter == nil {
		formatter = output.NewFormatter()
		formatter.Format = opts.Format
		formatter.ColorMode = opts.ColorMode
	}

	c := &Context{
		Store:        store,
		DB:           db,
		Formatter:    formatter,
		Config:       cfg,
		TaskRepo:     storage.NewTaskRepo(store).WithClock(opts.Now),
		SettingsRepo: storage.NewSettingsRepo(store),
		LanguageRepo: storage.NewLanguageRepo(store),
		AuthRepo:     storage.NewAuthRepo(store),
		Toasts:       toast.New(cfg.Toast.Duration),
		Now:          opts.Now,
		Debug:        opts.Debug,
		unsubscribe:  func() {},
	}

	if lang, err := c.LanguageRepo.Get(); err == nil {
		c.Lang = lang
	} else {
		c.Lang = i18n.Default
	}

	if formatter.Format != output.FormatJSON {
		printer := toast.NewPrinter(formatter.Writer, formatter.IsColorEnabled())
		c.unsubscribe = c.Toasts.Subscribe(printer.Listen)
	}

	if cfg.RemoteAuthEnabled() {
		remote, err := authapi.New(cfg.Auth, c.AuthRepo)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.Remote = remote
		logging.DebugLog("remote auth enabled", logging.KeyURL, logging.MaskURL(remote.BaseURL()))
	}

	return c, nil
}

// openStore picks the backend for path. ":memory:" keeps data for the
// lifetime of the process and "none" keeps nothing at all.
func openStore(path string, inMemory bool, minFree uint64) (storage.BlobStore, *storage.DB, error) {
	switch {
	case inMemory || path == storage.MemoryPath:
		return storage.NewMemoryStore(), nil, nil
	case path == storage.NonePath:
		logging.Warn("running without storage, changes will not be saved")
		return storage.Unavailable{}, nil, nil
	}
	db, err := storage.Open(storage.Options{Path: path, MinFreeSpace: minFree})
	if err != nil {
		return nil, nil, err
	}
	return db, db, nil
}

// StorePath describes the active backend: a directory, ":memory:" or "none".
func (c *Context) StorePath() string {
	switch c.Store.(type) {
	case *storage.DB:
		return c.DB.Path()
	case storage.Unavailable:
		return storage.NonePath
	default:
		return storage.MemoryPath
	}
}

// RequireDB returns the on-disk database for operations that work on raw
// Badger files.
func (c *Context) RequireDB() (*storage.DB, error) {
	if c.DB == nil {
		return nil, errors.NewUserErrorWithField("storage.path", c.StorePath(),
			"database backups need an on-disk database",
			"Unset TASKSYNC_DATABASE or point it at a directory.")
	}
	return c.DB, nil
}

// Close releases the toast service and the database.
func (c *Context) Close() error {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	if c.Toasts != nil {
		c.Toasts.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// T translates key into the stored language.
func (c *Context) T(key string) string {
	return i18n.T(c.Lang, key)
}

// Today returns today's date as "YYYY-MM-DD" in local time.
func (c *Context) Today() string {
	return model.DateString(c.Now())
}

// CurrentUser returns the signed-in user, or nil.
func (c *Context) CurrentUser() (*model.SessionUser, error) {
	return c.AuthRepo.CurrentUser()
}

// RequireUser returns the signed-in user. When login is required and
// nobody is signed in it fails with ErrNotLoggedIn; when login is not
// required the user may be nil.
func (c *Context) RequireUser() (*model.SessionUser, error) {
	user, err := c.AuthRepo.CurrentUser()
	if err != nil {
		return nil, err
	}
	if user == nil && c.Config.Auth.RequireLogin {
		return nil, errors.UserErrorFor(errors.ErrNotLoggedIn, "", "")
	}
	return user, nil
}

// RemoteEnabled reports whether auth goes through the remote server.
func (c *Context) RemoteEnabled() bool {
	return c.Remote != nil
}

// Debugf logs at debug level if debug mode is enabled.
func (c *Context) Debugf(msg string, args ...any) {
	if c.Debug {
		logging.DebugLog(msg, args...)
	}
}
