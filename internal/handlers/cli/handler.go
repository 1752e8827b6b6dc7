// Package cli implements the interactive menu the guildquest binary
// runs. Every prompt reads from the configured input and writes to the
// configured output, so tests drive the whole surface through buffers.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
	"github.com/jinhmyung/GuildQuest-Group3/internal/services"
	"github.com/jinhmyung/GuildQuest-Group3/internal/snapshot"
)

// Handler drives the menu loop against the service layer
type Handler struct {
	provider *services.Provider
	scanner  *bufio.Scanner
	out      io.Writer
	logger   zerolog.Logger
	dataFile string

	// eof flips once input runs out so nested menus unwind instead
	// of spinning on empty reads
	eof bool
}

// HandlerConfig holds configuration for creating the handler
type HandlerConfig struct {
	ServiceProvider *services.Provider // Required
	DataFile        string             // Required
	Input           io.Reader          // Defaults to os.Stdin
	Output          io.Writer          // Defaults to os.Stdout
	Logger          zerolog.Logger
}

// NewHandler creates a new CLI handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil {
		panic("cli.NewHandler requires a config")
	}
	if cfg.ServiceProvider == nil {
		panic("cli.NewHandler requires a ServiceProvider")
	}
	if cfg.DataFile == "" {
		panic("cli.NewHandler requires a DataFile")
	}

	in := cfg.Input
	if in == nil {
		in = os.Stdin
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	return &Handler{
		provider: cfg.ServiceProvider,
		scanner:  bufio.NewScanner(in),
		out:      out,
		logger:   cfg.Logger,
		dataFile: cfg.DataFile,
	}
}

// Run drives the main menu until the user exits or input runs out
func (h *Handler) Run(ctx context.Context) {
	if _, err := h.provider.RealmService.EnsureDefaultRealm(ctx); err != nil {
		h.logger.Error().Err(err).Msg("failed to ensure default realm")
	}

	for !h.eof {
		fmt.Fprintln(h.out, "\n==============================")
		fmt.Fprintln(h.out, "GuildQuest CLI")
		fmt.Fprintln(h.out, "==============================")

		current := "(none)"
		if username, ok := h.provider.Store.CurrentUser(); ok {
			current = username
		}
		fmt.Fprintf(h.out, "Current user: %s\n", current)

		fmt.Fprintln(h.out, "1) Create user")
		fmt.Fprintln(h.out, "2) Login")
		fmt.Fprintln(h.out, "3) Realms (list/create)")
		fmt.Fprintln(h.out, "4) Settings")
		fmt.Fprintln(h.out, "5) Characters")
		fmt.Fprintln(h.out, "6) Campaigns (my/visible/create/edit)")
		fmt.Fprintln(h.out, "7) Events shared with me")
		fmt.Fprintln(h.out, "8) Save")
		fmt.Fprintln(h.out, "9) Load")
		fmt.Fprintln(h.out, "0) Exit")

		choice, ok := h.readLine("Choose: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			h.createUser(ctx)
		case "2":
			h.login(ctx)
		case "3":
			h.menuRealms(ctx)
		case "4":
			h.editSettings(ctx)
		case "5":
			h.menuCharacters(ctx)
		case "6":
			h.menuCampaigns(ctx)
		case "7":
			h.listSharedWithMe(ctx)
		case "8":
			h.save(ctx)
		case "9":
			h.load(ctx)
		case "0":
			fmt.Fprintln(h.out, "Bye!")
			return
		}
	}
}

func (h *Handler) createUser(ctx context.Context) {
	username, ok := h.readLine("New username: ")
	if !ok {
		return
	}

	user, err := h.provider.UserService.CreateUser(ctx, username)
	if err != nil {
		h.reportError(err)
		return
	}

	h.provider.Store.SetCurrentUser(user.Username)
	h.logger.Info().Str("username", user.Username).Msg("user created")
	fmt.Fprintf(h.out, "Created and logged in as %s\n", user.Username)
}

func (h *Handler) login(ctx context.Context) {
	userList, err := h.provider.UserService.ListUsers(ctx)
	if err != nil {
		h.reportError(err)
		return
	}
	if len(userList) == 0 {
		fmt.Fprintln(h.out, "No users yet. Create one.")
		return
	}

	items := make([]option, 0, len(userList))
	for _, user := range userList {
		items = append(items, option{id: user.Username, display: user.Username})
	}

	chosen := h.pickFromList("Users:", items)
	if chosen == "" {
		return
	}
	h.provider.Store.SetCurrentUser(chosen)
	fmt.Fprintf(h.out, "Logged in as %s\n", chosen)
}

// requireLogin returns the logged-in username. A stale login whose
// user no longer exists is cleared on the spot.
func (h *Handler) requireLogin(ctx context.Context) (string, bool) {
	username, ok := h.provider.Store.CurrentUser()
	if !ok {
		fmt.Fprintln(h.out, "Please login first.")
		return "", false
	}
	if _, err := h.provider.UserService.GetUser(ctx, username); err != nil {
		h.provider.Store.ClearCurrentUser()
		fmt.Fprintln(h.out, "Please login first.")
		return "", false
	}
	return username, true
}

func (h *Handler) save(ctx context.Context) {
	if err := snapshot.Save(ctx, h.provider.Store, h.dataFile); err != nil {
		h.reportError(err)
		return
	}
	h.logger.Info().Str("path", h.dataFile).Msg("state saved")
	fmt.Fprintf(h.out, "Saved to %s\n", h.dataFile)
}

func (h *Handler) load(ctx context.Context) {
	if err := snapshot.Load(ctx, h.provider.Store, h.dataFile); err != nil {
		if gqerr.IsNotFound(err) {
			fmt.Fprintln(h.out, "No saved file found.")
			return
		}
		h.reportError(err)
		return
	}
	h.logger.Info().Str("path", h.dataFile).Msg("state loaded")
	fmt.Fprintf(h.out, "Loaded from %s\n", h.dataFile)
}

func (h *Handler) reportError(err error) {
	fmt.Fprintf(h.out, "Error: %s\n", err)
}
