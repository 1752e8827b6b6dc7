package cli

import (
	"context"
	"fmt"

	realmsvc "github.com/jinhmyung/GuildQuest-Group3/internal/services/realm"
)

func (h *Handler) menuRealms(ctx context.Context) {
	for !h.eof {
		fmt.Fprintln(h.out, "\n--- Realms ---")
		fmt.Fprintln(h.out, "1) List realms")
		fmt.Fprintln(h.out, "2) Create realm")
		fmt.Fprintln(h.out, "0) Back")

		choice, ok := h.readLine("Choose: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			h.listRealms(ctx)
		case "2":
			h.createRealm(ctx)
		case "0":
			return
		}
	}
}

func (h *Handler) listRealms(ctx context.Context) {
	realmList, err := h.provider.RealmService.ListRealms(ctx)
	if err != nil {
		h.reportError(err)
		return
	}
	if len(realmList) == 0 {
		fmt.Fprintln(h.out, "(no realms)")
		return
	}
	for _, realm := range realmList {
		fmt.Fprintf(h.out, "- %s: %s (offset %d min) desc='%s'\n",
			realm.ID, realm.Name, realm.TimeRule.OffsetMinutes, realm.Description)
	}
}

func (h *Handler) createRealm(ctx context.Context) {
	name, ok := h.readLine("Realm name: ")
	if !ok {
		return
	}
	description, _ := h.readLine("Description (optional): ")
	mapID := h.promptInt("mapID (int, optional, default 0): ", 0, maxPromptInt)
	x := h.promptInt("x_coord (int, optional, default 0): ", minPromptInt, maxPromptInt)
	y := h.promptInt("y_coord (int, optional, default 0): ", minPromptInt, maxPromptInt)
	offset := h.promptInt("time offset minutes (can be negative): ", minPromptInt, maxPromptInt)

	realm, err := h.provider.RealmService.CreateRealm(ctx, &realmsvc.CreateRealmInput{
		Name:          name,
		Description:   description,
		MapID:         mapID,
		XCoord:        float64(x),
		YCoord:        float64(y),
		OffsetMinutes: offset,
	})
	if err != nil {
		h.reportError(err)
		return
	}
	fmt.Fprintf(h.out, "Created realm %s: %s\n", realm.ID, realm.Name)
}

// pickRealm renders the realm pick list shared by settings and event
// editing
func (h *Handler) pickRealm(ctx context.Context, title string) string {
	realmList, err := h.provider.RealmService.ListRealms(ctx)
	if err != nil {
		h.reportError(err)
		return ""
	}
	items := make([]option, 0, len(realmList))
	for _, realm := range realmList {
		items = append(items, option{
			id:      realm.ID,
			display: fmt.Sprintf("%s %s (offset %dm)", realm.ID, realm.Name, realm.TimeRule.OffsetMinutes),
		})
	}
	return h.pickFromList(title, items)
}
