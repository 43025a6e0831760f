package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mail-browser/internal/app"
	"github.com/nhle/mail-browser/internal/browser"
	"github.com/nhle/mail-browser/internal/credential"
	"github.com/nhle/mail-browser/internal/logger"
	"github.com/nhle/mail-browser/internal/model"
	"github.com/nhle/mail-browser/internal/prompt"
	"github.com/nhle/mail-browser/internal/registry"
	"github.com/nhle/mail-browser/internal/remote"
	"github.com/nhle/mail-browser/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file path")
		multiple   = flag.Bool("multi", false, "allow tagging multiple entries")
		mailboxes  = flag.Bool("mailboxes", false, "start in the mailbox list")
	)
	flag.Parse()

	startPath := ""
	if flag.NArg() > 0 {
		startPath = flag.Arg(0)
	}

	if err := run(*configPath, startPath, *multiple, *mailboxes); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, startPath string, multiple, mailboxes bool) error {
	if err := logger.Init(); err == nil {
		defer logger.Close()
	}

	if configPath == "" {
		configPath = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	reg := registry.NewFromConfig(cfg.Mailboxes)
	manager := remote.NewManager(cfg.Accounts, credential.Get)

	var history browser.HistoryStore
	historyPath := filepath.Join(model.DefaultDataDir(), "history.db")
	if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err == nil {
		if st, err := store.NewSQLiteStore(historyPath); err == nil {
			defer st.Close()
			history = st
		} else {
			logger.Warn("opening history store: %v", err)
		}
	}

	queue := prompt.NewQueue()
	holder := &app.PreviewHolder{}

	session, err := browser.NewSession(context.Background(), cfg, reg, browser.Options{
		Multiple:  multiple,
		Mailboxes: mailboxes,
		StartPath: startPath,
		Prompter:  queue,
		Remote:    manager,
		History:   history,
		Viewer:    holder,
		Log:       logger.Info,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(app.New(session, queue, holder, history), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}

	// Selections go to stdout so the browser composes with scripts and
	// mail clients alike.
	for _, r := range session.Results() {
		fmt.Println(r)
	}
	return nil
}
