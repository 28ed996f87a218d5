// Command tern is the terminal frontend: a tcell screen wired to the
// keymap dispatcher, with readline and picker prompts rendered in the
// bottom rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/ternedit/tern/internal/app"
	"github.com/ternedit/tern/internal/editor"
	"github.com/ternedit/tern/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tern:", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String("config", "", "config directory (default: user config dir)")
	logPath := flag.String("log", "", "log file (default: logging disabled)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	noWatch := flag.Bool("no-watch", false, "disable config live reload")
	flag.Parse()

	log := logging.Null
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log = logging.New(logging.Config{
			Level:  logging.ParseLevel(*logLevel),
			Output: f,
			Prefix: "tern",
		})
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	host := editor.NewLocalHost(nil)
	a, err := app.New(app.Config{
		ConfigDir:   *configDir,
		Host:        host,
		Logger:      log,
		WatchConfig: !*noWatch,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	ui := NewUI(screen, a, host)
	host.AttachPromptUI(ui)
	host.StatusFunc = ui.ShowStatus
	host.InsertFunc = func(text string) error {
		ui.AppendText(text)
		return nil
	}
	host.QuitFunc = func(force bool) {
		ui.Quit()
	}

	if err := a.Start(context.Background()); err != nil {
		return err
	}

	// Files named on the command line open before the first key.
	for _, path := range flag.Args() {
		if err := a.ExecuteLine(fmt.Sprintf("open %q", path)); err != nil {
			ui.ShowStatus("open " + path + ": " + err.Error())
		}
	}

	ui.Render()
	for !ui.Quitting() {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			ui.HandleKey(ev)
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
			// Redraw request from another goroutine.
		case nil:
			return nil
		}
		ui.Render()
	}
	return nil
}
