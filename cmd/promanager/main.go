package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/promanager/promanager/internal/api"
	"github.com/promanager/promanager/internal/app"
	"github.com/promanager/promanager/internal/cache"
	"github.com/promanager/promanager/internal/model"
	"github.com/promanager/promanager/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "promanager:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return err
	}

	client := api.NewClient(cfg.Server.BaseURL, time.Duration(cfg.Server.TimeoutSec)*time.Second)

	c, err := cache.NewSQLiteCache(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer c.Close()

	sess, err := session.Restore()
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			// A corrupt keyring entry should not block login.
			_ = session.Forget()
		}
		sess = session.New()
	}

	p := tea.NewProgram(app.New(client, c, sess), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
