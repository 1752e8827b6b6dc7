package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	campaignsvc "github.com/jinhmyung/GuildQuest-Group3/internal/services/campaign"
	"github.com/jinhmyung/GuildQuest-Group3/internal/services/timeline"
)

func (h *Handler) menuCampaigns(ctx context.Context) {
	if _, ok := h.requireLogin(ctx); !ok {
		return
	}

	for !h.eof {
		fmt.Fprintln(h.out, "\n--- Campaigns ---")
		fmt.Fprintln(h.out, "1) List my campaigns")
		fmt.Fprintln(h.out, "2) List campaigns visible to me (public/shared)")
		fmt.Fprintln(h.out, "3) Create campaign")
		fmt.Fprintln(h.out, "4) Edit a campaign (if I can edit)")
		fmt.Fprintln(h.out, "0) Back")

		choice, ok := h.readLine("Choose: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			h.listMyCampaigns(ctx)
		case "2":
			h.listVisibleCampaigns(ctx)
		case "3":
			h.createCampaign(ctx)
		case "4":
			h.editCampaign(ctx)
		case "0":
			return
		}
	}
}

func (h *Handler) listMyCampaigns(ctx context.Context) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}
	owned, err := h.provider.CampaignService.ListOwned(ctx, username)
	if err != nil {
		h.reportError(err)
		return
	}
	if len(owned) == 0 {
		fmt.Fprintln(h.out, "(no campaigns)")
		return
	}
	for _, campaign := range owned {
		fmt.Fprintf(h.out, "- %s: %s vis=%s archived=%t events=%d\n",
			campaign.ID, campaign.Name, campaign.Visibility, campaign.Archived, len(campaign.QuestEventIDs))
	}
}

func (h *Handler) listVisibleCampaigns(ctx context.Context) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}
	visible, err := h.provider.CampaignService.ListVisible(ctx, username)
	if err != nil {
		h.reportError(err)
		return
	}
	if len(visible) == 0 {
		fmt.Fprintln(h.out, "(no visible campaigns)")
		return
	}
	for _, campaign := range visible {
		fmt.Fprintf(h.out, "- %s: %s owner=%s vis=%s archived=%t\n",
			campaign.ID, campaign.Name, campaign.OwnerUsername, campaign.Visibility, campaign.Archived)
	}
}

func (h *Handler) createCampaign(ctx context.Context) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}
	name, ok := h.readLine("Campaign name: ")
	if !ok {
		return
	}

	campaign, err := h.provider.CampaignService.CreateCampaign(ctx, &campaignsvc.CreateCampaignInput{
		Owner: username,
		Name:  name,
	})
	if err != nil {
		h.reportError(err)
		return
	}
	fmt.Fprintf(h.out, "Created campaign %s: %s\n", campaign.ID, campaign.Name)
}

// pickEditableCampaign offers only campaigns the user holds edit
// rights on
func (h *Handler) pickEditableCampaign(ctx context.Context, username string) string {
	visible, err := h.provider.CampaignService.ListVisible(ctx, username)
	if err != nil {
		h.reportError(err)
		return ""
	}
	items := make([]option, 0, len(visible))
	for _, campaign := range visible {
		if !campaign.CanEdit(username) {
			continue
		}
		items = append(items, option{
			id:      campaign.ID,
			display: fmt.Sprintf("%s %s (owner=%s, vis=%s)", campaign.ID, campaign.Name, campaign.OwnerUsername, campaign.Visibility),
		})
	}
	return h.pickFromList("Pick a campaign you can edit:", items)
}

func (h *Handler) editCampaign(ctx context.Context) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}
	campaignID := h.pickEditableCampaign(ctx, username)
	if campaignID == "" {
		return
	}

	for !h.eof {
		campaign, err := h.provider.CampaignService.GetCampaign(ctx, campaignID, username)
		if err != nil {
			h.reportError(err)
			return
		}

		fmt.Fprintf(h.out, "\n--- Campaign %s: %s ---\n", campaign.ID, campaign.Name)
		fmt.Fprintf(h.out, "Owner: %s | Visibility: %s | Archived: %t\n",
			campaign.OwnerUsername, campaign.Visibility, campaign.Archived)
		fmt.Fprintf(h.out, "Shares: [%s]\n", formatShares(campaign.Shares))
		fmt.Fprintln(h.out, "1) Rename")
		fmt.Fprintln(h.out, "2) Set visibility (PUBLIC/PRIVATE)")
		fmt.Fprintln(h.out, "3) Archive / Unarchive")
		fmt.Fprintln(h.out, "4) Share campaign")
		fmt.Fprintln(h.out, "5) Unshare campaign")
		fmt.Fprintln(h.out, "6) Manage events in this campaign")
		fmt.Fprintln(h.out, "7) View timeline (DAY/WEEK/MONTH/YEAR)")
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
			if _, err := h.provider.CampaignService.UpdateCampaign(ctx, &campaignsvc.UpdateCampaignInput{
				CampaignID: campaignID,
				Actor:      username,
				Name:       &name,
			}); err != nil {
				h.reportError(err)
			}
		case "2":
			raw, ok := h.readLine("Enter PUBLIC or PRIVATE: ")
			if !ok {
				continue
			}
			visibility := entities.Visibility(strings.ToUpper(raw))
			if !visibility.IsValid() {
				fmt.Fprintln(h.out, "Invalid.")
				continue
			}
			if _, err := h.provider.CampaignService.UpdateCampaign(ctx, &campaignsvc.UpdateCampaignInput{
				CampaignID: campaignID,
				Actor:      username,
				Visibility: &visibility,
			}); err != nil {
				h.reportError(err)
			}
		case "3":
			archived := !campaign.Archived
			if _, err := h.provider.CampaignService.UpdateCampaign(ctx, &campaignsvc.UpdateCampaignInput{
				CampaignID: campaignID,
				Actor:      username,
				Archived:   &archived,
			}); err != nil {
				h.reportError(err)
			}
		case "4":
			h.shareCampaign(ctx, campaignID, username)
		case "5":
			h.unshareCampaign(ctx, campaignID, username)
		case "6":
			h.manageEvents(ctx, campaignID)
		case "7":
			h.viewTimeline(ctx, campaignID, campaign.Name)
		case "0":
			return
		}
	}
}

func (h *Handler) shareCampaign(ctx context.Context, campaignID, actor string) {
	target, ok := h.readLine("Share with username: ")
	if !ok {
		return
	}
	raw, ok := h.readLine("Permission (VIEW_ONLY/COLLABORATIVE): ")
	if !ok {
		return
	}

	if _, err := h.provider.CampaignService.ShareWith(ctx, &campaignsvc.ShareInput{
		CampaignID: campaignID,
		Actor:      actor,
		TargetUser: target,
		Level:      entities.PermissionLevel(strings.ToUpper(raw)),
	}); err != nil {
		h.reportError(err)
		return
	}
	fmt.Fprintln(h.out, "Shared.")
}

func (h *Handler) unshareCampaign(ctx context.Context, campaignID, actor string) {
	target, ok := h.readLine("Unshare with username: ")
	if !ok {
		return
	}

	if _, err := h.provider.CampaignService.UnshareWith(ctx, &campaignsvc.UnshareInput{
		CampaignID: campaignID,
		Actor:      actor,
		TargetUser: target,
	}); err != nil {
		h.reportError(err)
		return
	}
	fmt.Fprintln(h.out, "Unshared (if existed).")
}

func (h *Handler) viewTimeline(ctx context.Context, campaignID, campaignName string) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}
	raw, ok := h.readLine("Range (DAY/WEEK/MONTH/YEAR): ")
	if !ok {
		return
	}
	rng, err := timeline.ParseRange(raw)
	if err != nil {
		fmt.Fprintln(h.out, "Invalid range.")
		return
	}
	anchor := h.promptTime("ANCHOR (used as start day 00:00)")

	entries, err := h.provider.TimelineService.ViewTimeline(ctx, &timeline.ViewTimelineInput{
		CampaignID: campaignID,
		Viewer:     username,
		Range:      rng,
		Anchor:     anchor,
	})
	if err != nil {
		h.reportError(err)
		return
	}

	fmt.Fprintf(h.out, "\n--- Timeline %s for %s (anchor %s) ---\n", rng, campaignName, anchor)
	if len(entries) == 0 {
		fmt.Fprintln(h.out, "(no events in range)")
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(h.out, "- %s: %s @ %s\n", entry.Event.ID, entry.Event.Name, entry.Display)
	}
}

func formatShares(shares []entities.Share) string {
	parts := make([]string, 0, len(shares))
	for _, share := range shares {
		parts = append(parts, fmt.Sprintf("%s=%s", share.SharedWithUser, share.Permission))
	}
	return strings.Join(parts, ", ")
}
