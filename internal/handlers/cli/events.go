package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	campaignsvc "github.com/jinhmyung/GuildQuest-Group3/internal/services/campaign"
	eventsvc "github.com/jinhmyung/GuildQuest-Group3/internal/services/event"
	"github.com/jinhmyung/GuildQuest-Group3/internal/worldclock"
)

func (h *Handler) manageEvents(ctx context.Context, campaignID string) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}
	campaign, err := h.provider.CampaignService.GetCampaign(ctx, campaignID, username)
	if err != nil {
		h.reportError(err)
		return
	}
	if !campaign.CanEdit(username) {
		fmt.Fprintln(h.out, "You do not have edit permission for this campaign.")
		return
	}

	for !h.eof {
		fmt.Fprintf(h.out, "\n--- Events in Campaign %s: %s ---\n", campaign.ID, campaign.Name)
		eventList, err := h.provider.CampaignService.ListEvents(ctx, campaignID, username)
		if err != nil {
			h.reportError(err)
			return
		}
		if len(eventList) == 0 {
			fmt.Fprintln(h.out, "(no events)")
		} else {
			for _, event := range eventList {
				fmt.Fprintf(h.out, "- %s: %s [%s] realm=%s shares=%d participants=%d\n",
					event.ID, event.Name, event.StartTime, h.realmName(ctx, event.RealmID),
					len(event.Shares), len(event.ParticipantCharIDs))
			}
		}
		fmt.Fprintln(h.out, "1) Add event")
		fmt.Fprintln(h.out, "2) Edit event")
		fmt.Fprintln(h.out, "3) Remove event")
		fmt.Fprintln(h.out, "0) Back")

		choice, ok := h.readLine("Choose: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			h.addEvent(ctx, campaignID)
		case "2":
			eventID := h.pickCampaignEvent(ctx, campaignID, "Pick event:")
			if eventID != "" {
				h.editEvent(ctx, eventID)
			}
		case "3":
			h.removeEvent(ctx, campaignID)
		case "0":
			return
		}
	}
}

// realmName resolves a realm's display name, falling back to the raw
// ID when the realm is gone
func (h *Handler) realmName(ctx context.Context, realmID string) string {
	realm, err := h.provider.RealmService.GetRealm(ctx, realmID)
	if err != nil {
		return realmID
	}
	return realm.Name
}

func (h *Handler) pickCampaignEvent(ctx context.Context, campaignID, title string) string {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return ""
	}
	eventList, err := h.provider.CampaignService.ListEvents(ctx, campaignID, username)
	if err != nil {
		h.reportError(err)
		return ""
	}
	items := make([]option, 0, len(eventList))
	for _, event := range eventList {
		items = append(items, option{id: event.ID, display: fmt.Sprintf("%s %s", event.ID, event.Name)})
	}
	return h.pickFromList(title, items)
}

func (h *Handler) addEvent(ctx context.Context, campaignID string) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}
	name, ok := h.readLine("Event name: ")
	if !ok {
		return
	}
	start := h.promptTime("START")

	var end *worldclock.Time
	if h.promptYesNo("Has end time? (y/n): ") {
		endTime := h.promptTime("END")
		end = &endTime
	}

	realmID := h.pickRealm(ctx, "Pick realm:")
	if realmID == "" {
		fmt.Fprintln(h.out, "Cancelled.")
		return
	}

	event, err := h.provider.CampaignService.AddEvent(ctx, &campaignsvc.AddEventInput{
		CampaignID: campaignID,
		Actor:      username,
		Name:       name,
		Start:      start,
		End:        end,
		RealmID:    realmID,
	})
	if err != nil {
		h.reportError(err)
		return
	}
	fmt.Fprintf(h.out, "Added event %s\n", event.ID)

	h.editParticipants(ctx, event.ID)
	h.editInventoryChanges(ctx, event.ID)
}

func (h *Handler) removeEvent(ctx context.Context, campaignID string) {
	eventID := h.pickCampaignEvent(ctx, campaignID, "Pick event:")
	if eventID == "" {
		return
	}
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}

	if err := h.provider.CampaignService.RemoveEvent(ctx, &campaignsvc.RemoveEventInput{
		CampaignID: campaignID,
		Actor:      username,
		EventID:    eventID,
	}); err != nil {
		h.reportError(err)
		return
	}
	fmt.Fprintln(h.out, "Removed.")
}

func (h *Handler) editEvent(ctx context.Context, eventID string) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}

	for !h.eof {
		event, err := h.provider.EventService.GetEvent(ctx, eventID, username)
		if err != nil {
			h.reportError(err)
			return
		}

		endLabel := "(none)"
		if event.EndTime != nil {
			endLabel = event.EndTime.String()
		}
		fmt.Fprintf(h.out, "\n--- Event %s: %s ---\n", event.ID, event.Name)
		fmt.Fprintf(h.out, "Start: %s | End: %s | Realm: %s\n", event.StartTime, endLabel, h.realmName(ctx, event.RealmID))
		fmt.Fprintf(h.out, "Participants: %s\n", formatParticipants(event.ParticipantCharIDs))
		fmt.Fprintf(h.out, "Shares: [%s]\n", formatShares(event.Shares))
		fmt.Fprintf(h.out, "InventoryChanges: [%s]\n", formatChanges(event.InventoryChanges))
		fmt.Fprintln(h.out, "1) Rename")
		fmt.Fprintln(h.out, "2) Edit start time")
		fmt.Fprintln(h.out, "3) Edit end time")
		fmt.Fprintln(h.out, "4) Change realm")
		fmt.Fprintln(h.out, "5) Edit participants")
		fmt.Fprintln(h.out, "6) Share event")
		fmt.Fprintln(h.out, "7) Unshare event")
		fmt.Fprintln(h.out, "8) Edit inventory changes")
		fmt.Fprintln(h.out, "0) Back")

		choice, ok := h.readLine("Choose: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			name, ok := h.readLine("New name: ")
			if !ok || name == "" {
				continue
			}
			if _, err := h.provider.EventService.UpdateEvent(ctx, &eventsvc.UpdateEventInput{
				EventID: eventID,
				Actor:   username,
				Name:    &name,
			}); err != nil {
				h.reportError(err)
			}
		case "2":
			start := h.promptTime("START")
			if _, err := h.provider.EventService.UpdateEvent(ctx, &eventsvc.UpdateEventInput{
				EventID: eventID,
				Actor:   username,
				Start:   &start,
			}); err != nil {
				h.reportError(err)
			}
		case "3":
			input := &eventsvc.UpdateEventInput{EventID: eventID, Actor: username}
			if h.promptYesNo("Set end time? (y to set / n to clear): ") {
				end := h.promptTime("END")
				input.End = &end
			} else {
				input.ClearEnd = true
			}
			if _, err := h.provider.EventService.UpdateEvent(ctx, input); err != nil {
				h.reportError(err)
			}
		case "4":
			realmID := h.pickRealm(ctx, "Pick realm:")
			if realmID == "" {
				continue
			}
			if _, err := h.provider.EventService.UpdateEvent(ctx, &eventsvc.UpdateEventInput{
				EventID: eventID,
				Actor:   username,
				RealmID: &realmID,
			}); err != nil {
				h.reportError(err)
			}
		case "5":
			h.editParticipants(ctx, eventID)
		case "6":
			h.shareEvent(ctx, eventID, username)
		case "7":
			h.unshareEvent(ctx, eventID, username)
		case "8":
			h.editInventoryChanges(ctx, eventID)
		case "0":
			return
		}
	}
}

func (h *Handler) editParticipants(ctx context.Context, eventID string) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}

	for !h.eof {
		event, err := h.provider.EventService.GetEvent(ctx, eventID, username)
		if err != nil {
			h.reportError(err)
			return
		}

		fmt.Fprintln(h.out, "\nParticipants:")
		fmt.Fprintln(h.out, formatParticipants(event.ParticipantCharIDs))
		fmt.Fprintln(h.out, "1) Add participant")
		fmt.Fprintln(h.out, "2) Remove participant")
		fmt.Fprintln(h.out, "0) Done")

		choice, ok := h.readLine("Choose: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			charID := h.pickOwnCharacter(ctx, "Pick character:")
			if charID == "" {
				continue
			}
			if _, err := h.provider.EventService.AddParticipant(ctx, &eventsvc.ParticipantInput{
				EventID: eventID,
				Actor:   username,
				CharID:  charID,
			}); err != nil {
				h.reportError(err)
			}
		case "2":
			items := make([]option, 0, len(event.ParticipantCharIDs))
			for _, charID := range event.ParticipantCharIDs {
				items = append(items, option{id: charID, display: charID})
			}
			charID := h.pickFromList("Pick to remove:", items)
			if charID == "" {
				continue
			}
			if _, err := h.provider.EventService.RemoveParticipant(ctx, &eventsvc.ParticipantInput{
				EventID: eventID,
				Actor:   username,
				CharID:  charID,
			}); err != nil {
				h.reportError(err)
			}
		case "0":
			return
		}
	}
}

func (h *Handler) shareEvent(ctx context.Context, eventID, actor string) {
	target, ok := h.readLine("Share event with username: ")
	if !ok {
		return
	}
	raw, ok := h.readLine("Permission (VIEW_ONLY/COLLABORATIVE): ")
	if !ok {
		return
	}

	if _, err := h.provider.EventService.ShareWith(ctx, &eventsvc.ShareInput{
		EventID:    eventID,
		Actor:      actor,
		TargetUser: target,
		Level:      entities.PermissionLevel(strings.ToUpper(raw)),
	}); err != nil {
		h.reportError(err)
		return
	}
	fmt.Fprintln(h.out, "Shared event.")
}

func (h *Handler) unshareEvent(ctx context.Context, eventID, actor string) {
	target, ok := h.readLine("Unshare event with username: ")
	if !ok {
		return
	}

	if _, err := h.provider.EventService.UnshareWith(ctx, &eventsvc.UnshareInput{
		EventID:    eventID,
		Actor:      actor,
		TargetUser: target,
	}); err != nil {
		h.reportError(err)
		return
	}
	fmt.Fprintln(h.out, "Unshared event (if existed).")
}

func (h *Handler) editInventoryChanges(ctx context.Context, eventID string) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}

	for !h.eof {
		event, err := h.provider.EventService.GetEvent(ctx, eventID, username)
		if err != nil {
			h.reportError(err)
			return
		}

		fmt.Fprintln(h.out, "\nInventory changes:")
		if len(event.InventoryChanges) == 0 {
			fmt.Fprintln(h.out, "(none)")
		} else {
			for i, change := range event.InventoryChanges {
				fmt.Fprintf(h.out, "%d. item=%s delta=%d target=%s\n",
					i+1, change.Item.Name, change.DeltaQty, targetLabel(change.TargetCharID))
			}
		}
		fmt.Fprintln(h.out, "1) Add change")
		fmt.Fprintln(h.out, "2) Remove change")
		fmt.Fprintln(h.out, "3) Apply changes now")
		fmt.Fprintln(h.out, "0) Done")

		choice, ok := h.readLine("Choose: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			itemName, ok := h.readLine("Item name: ")
			if !ok {
				return
			}
			description, _ := h.readLine("Description: ")
			itemType, _ := h.readLine("Type: ")
			rarity := h.promptInt("Rarity (int): ", 0, maxPromptInt)
			delta := h.promptInt("Delta qty (+grant / -remove): ", minPromptInt, maxPromptInt)
			target, _ := h.readLine("Target character id (blank = all participants): ")

			input := &eventsvc.AddInventoryChangeInput{
				EventID:         eventID,
				Actor:           username,
				ItemName:        itemName,
				ItemDescription: description,
				ItemType:        itemType,
				ItemRarity:      rarity,
				DeltaQty:        delta,
			}
			if target != "" {
				input.TargetCharID = &target
			}
			if _, err := h.provider.EventService.AddInventoryChange(ctx, input); err != nil {
				h.reportError(err)
			}
		case "2":
			if len(event.InventoryChanges) == 0 {
				continue
			}
			index := h.promptInt("Index to remove: ", 1, len(event.InventoryChanges))
			if _, err := h.provider.EventService.RemoveInventoryChange(ctx, &eventsvc.RemoveInventoryChangeInput{
				EventID: eventID,
				Actor:   username,
				Index:   index - 1,
			}); err != nil {
				h.reportError(err)
			}
		case "3":
			result, err := h.provider.EventService.ApplyInventoryChanges(ctx, eventID, username)
			if err != nil {
				h.reportError(err)
				continue
			}
			fmt.Fprintf(h.out, "Applied inventory changes: added %d, removed %d\n", result.ItemsAdded, result.ItemsRemoved)
			if len(result.MissingCharIDs) > 0 {
				fmt.Fprintf(h.out, "Missing characters: %s\n", strings.Join(result.MissingCharIDs, ", "))
			}
		case "0":
			return
		}
	}
}

func (h *Handler) listSharedWithMe(ctx context.Context) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}
	eventList, err := h.provider.EventService.ListSharedWith(ctx, username)
	if err != nil {
		h.reportError(err)
		return
	}
	if len(eventList) == 0 {
		fmt.Fprintln(h.out, "(no events shared with you)")
		return
	}

	fmt.Fprintln(h.out, "\n--- Events shared with you ---")
	for _, event := range eventList {
		perm := ""
		for _, share := range event.Shares {
			if share.SharedWithUser == username {
				perm = string(share.Permission)
				break
			}
		}
		fmt.Fprintf(h.out, "- %s: %s realm=%s start=%s perm=%s\n",
			event.ID, event.Name, h.realmName(ctx, event.RealmID), event.StartTime, perm)
	}
}

func formatParticipants(charIDs []string) string {
	if len(charIDs) == 0 {
		return "(none)"
	}
	return strings.Join(charIDs, ", ")
}

func formatChanges(changes []entities.InventoryChange) string {
	parts := make([]string, 0, len(changes))
	for _, change := range changes {
		parts = append(parts, fmt.Sprintf("%s%+d->%s", change.Item.Name, change.DeltaQty, targetLabel(change.TargetCharID)))
	}
	return strings.Join(parts, ", ")
}

func targetLabel(target *string) string {
	if target == nil {
		return "(all)"
	}
	return *target
}
