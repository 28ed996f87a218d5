package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ternedit/tern/internal/config"
	"github.com/ternedit/tern/internal/dispatch"
	"github.com/ternedit/tern/internal/editor"
	"github.com/ternedit/tern/internal/input/key"
	"github.com/ternedit/tern/internal/logging"
	"github.com/ternedit/tern/internal/plugin"
)

// Default file names under the config directory.
const (
	rcFileName       = "init.rc"
	settingsFileName = "settings.toml"
	pluginDirName    = "plugins"
)

// Config configures an App.
type Config struct {
	// ConfigDir holds init.rc, settings.toml and plugins/. Defaults to
	// the user config directory.
	ConfigDir string

	// Host receives external actions. Defaults to a LocalHost.
	Host editor.Host

	// Logger for all components. Defaults to a discard logger.
	Logger *logging.Logger

	// WatchConfig reloads init.rc and settings.toml on change.
	WatchConfig bool
}

// App is the assembled interpreter.
type App struct {
	log  *logging.Logger
	env  *dispatch.Environment
	disp *dispatch.Dispatcher
	host editor.Host

	plugins *plugin.Manager
	watcher *config.Watcher

	configDir string
}

// New wires up an App. Nothing is loaded until Start.
func New(cfg Config) (*App, error) {
	log := cfg.Logger
	if log == nil {
		log = logging.Null
	}

	dir := cfg.ConfigDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "tern")
	}

	host := cfg.Host
	local, isLocal := host.(*editor.LocalHost)
	if host == nil {
		local = editor.NewLocalHost(nil)
		host = local
		isLocal = true
	}

	env := dispatch.NewEnvironment()
	disp := dispatch.New(env, host, log)
	if isLocal {
		local.AttachResumer(disp)
	}

	a := &App{
		log:       log.WithComponent("app"),
		env:       env,
		disp:      disp,
		host:      host,
		configDir: dir,
	}

	plugins, err := plugin.NewManager(a, log)
	if err != nil {
		return nil, err
	}
	a.plugins = plugins

	if cfg.WatchConfig {
		w, err := config.NewWatcher(a.onConfigChange)
		if err != nil {
			return nil, err
		}
		a.watcher = w
	}

	return a, nil
}

// Start loads settings, the rc script and plugins, and begins watching
// the configuration files if enabled. A missing rc file is fine; a
// broken one is reported and leaves the defaults in place.
func (a *App) Start(ctx context.Context) error {
	a.loadSettings()

	rcPath := a.RCPath()
	if _, err := os.Stat(rcPath); err == nil {
		if err := a.disp.LoadFile(rcPath); err != nil {
			a.log.Error("loading %s: %v", rcPath, err)
			a.host.ShowError(err)
		}
	}

	if err := a.plugins.LoadDir(ctx, filepath.Join(a.configDir, pluginDirName)); err != nil {
		a.log.Error("loading plugins: %v", err)
	}

	if a.watcher != nil {
		for _, p := range []string{rcPath, a.SettingsPath()} {
			if err := a.watcher.Watch(p); err != nil {
				a.log.Warn("watching %s: %v", p, err)
			}
		}
	}
	return nil
}

// Reload re-reads settings and the rc script.
func (a *App) Reload() {
	a.loadSettings()
	if err := a.disp.LoadFile(a.RCPath()); err != nil {
		a.log.Error("reload: %v", err)
		a.host.ShowError(err)
		return
	}
	a.host.ShowStatus("configuration reloaded")
}

// Close stops the watcher and the plugin engine.
func (a *App) Close() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	a.plugins.Close()
}

// HandleKey feeds one chord to the dispatcher.
func (a *App) HandleKey(c key.Chord) {
	a.disp.HandleKey(c)
}

// Dispatcher exposes the dispatcher for frontends and prompts.
func (a *App) Dispatcher() *dispatch.Dispatcher {
	return a.disp
}

// Env exposes the interpreter environment.
func (a *App) Env() *dispatch.Environment {
	return a.env
}

// Plugins exposes the plugin manager.
func (a *App) Plugins() *plugin.Manager {
	return a.plugins
}

// RCPath returns the rc script path.
func (a *App) RCPath() string {
	return filepath.Join(a.configDir, rcFileName)
}

// SettingsPath returns the TOML settings file path.
func (a *App) SettingsPath() string {
	return filepath.Join(a.configDir, settingsFileName)
}

// loadSettings applies the TOML settings file and the log level it
// selects.
func (a *App) loadSettings() {
	f, err := config.LoadFile(a.SettingsPath())
	if err != nil {
		a.log.Error("settings: %v", err)
		a.host.ShowError(err)
		return
	}
	f.Apply(a.env.Settings)

	if level, ok := a.env.Settings.Get(config.KeyLogLevel); ok {
		a.log.SetLevel(logging.ParseLevel(level))
	}
}

// onConfigChange handles a watched file changing on disk.
func (a *App) onConfigChange(path string) {
	a.log.Info("config change: %s", path)
	a.Reload()
}
