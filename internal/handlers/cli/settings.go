package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	usersvc "github.com/jinhmyung/GuildQuest-Group3/internal/services/user"
)

func (h *Handler) editSettings(ctx context.Context) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}

	for !h.eof {
		user, err := h.provider.UserService.GetUser(ctx, username)
		if err != nil {
			h.reportError(err)
			return
		}

		realmName := user.Settings.CurrentRealmID
		if realm, realmErr := h.provider.RealmService.GetRealm(ctx, user.Settings.CurrentRealmID); realmErr == nil {
			realmName = realm.Name
		}

		fmt.Fprintln(h.out, "\n--- Settings ---")
		fmt.Fprintf(h.out, "User: %s\n", user.Username)
		fmt.Fprintf(h.out, "Current realm: %s\n", realmName)
		fmt.Fprintf(h.out, "Theme: %s\n", user.Settings.Theme)
		fmt.Fprintf(h.out, "Time display: %s\n", user.Settings.TimeDisplay)
		fmt.Fprintln(h.out, "1) Change current realm")
		fmt.Fprintln(h.out, "2) Change theme")
		fmt.Fprintln(h.out, "3) Set time display (WORLD/LOCAL/BOTH)")
		fmt.Fprintln(h.out, "0) Back")

		choice, ok := h.readLine("Choose: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			realmID := h.pickRealm(ctx, "Pick realm:")
			if realmID == "" {
				continue
			}
			if _, err := h.provider.UserService.UpdateSettings(ctx, &usersvc.UpdateSettingsInput{
				Username:       username,
				CurrentRealmID: &realmID,
			}); err != nil {
				h.reportError(err)
			}
		case "2":
			theme, ok := h.readLine("New theme: ")
			if !ok || theme == "" {
				continue
			}
			if _, err := h.provider.UserService.UpdateSettings(ctx, &usersvc.UpdateSettingsInput{
				Username: username,
				Theme:    &theme,
			}); err != nil {
				h.reportError(err)
			}
		case "3":
			raw, ok := h.readLine("Enter WORLD / LOCAL / BOTH: ")
			if !ok {
				continue
			}
			display := entities.TimeDisplay(strings.ToUpper(raw))
			if !display.IsValid() {
				fmt.Fprintln(h.out, "Invalid.")
				continue
			}
			if _, err := h.provider.UserService.UpdateSettings(ctx, &usersvc.UpdateSettingsInput{
				Username:    username,
				TimeDisplay: &display,
			}); err != nil {
				h.reportError(err)
			}
		case "0":
			return
		}
	}
}
