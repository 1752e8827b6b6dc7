package cli

import (
	"context"
	"fmt"

	charsvc "github.com/jinhmyung/GuildQuest-Group3/internal/services/character"
)

func (h *Handler) menuCharacters(ctx context.Context) {
	for !h.eof {
		fmt.Fprintln(h.out, "\n--- Characters ---")
		fmt.Fprintln(h.out, "1) List my characters")
		fmt.Fprintln(h.out, "2) Create character")
		fmt.Fprintln(h.out, "3) Edit inventory")
		fmt.Fprintln(h.out, "0) Back")

		choice, ok := h.readLine("Choose: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			h.listCharacters(ctx)
		case "2":
			h.createCharacter(ctx)
		case "3":
			h.editInventory(ctx)
		case "0":
			return
		}
	}
}

func (h *Handler) listCharacters(ctx context.Context) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}
	characterList, err := h.provider.CharacterService.ListByOwner(ctx, username)
	if err != nil {
		h.reportError(err)
		return
	}
	if len(characterList) == 0 {
		fmt.Fprintln(h.out, "(no characters)")
		return
	}
	for _, char := range characterList {
		fmt.Fprintf(h.out, "- %s: %s (%s) lvl %d inv=%d\n",
			char.ID, char.Name, char.ClassName, char.Level, len(char.Inventory))
	}
}

func (h *Handler) createCharacter(ctx context.Context) {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return
	}
	name, ok := h.readLine("Character name: ")
	if !ok {
		return
	}
	className, _ := h.readLine("Class: ")
	level := h.promptInt("Level (>=1): ", 1, maxPromptInt)

	char, err := h.provider.CharacterService.CreateCharacter(ctx, &charsvc.CreateCharacterInput{
		Owner:     username,
		Name:      name,
		ClassName: className,
		Level:     level,
	})
	if err != nil {
		h.reportError(err)
		return
	}
	fmt.Fprintf(h.out, "Created character %s: %s\n", char.ID, char.Name)
}

// pickOwnCharacter lists the logged-in user's characters for selection
func (h *Handler) pickOwnCharacter(ctx context.Context, title string) string {
	username, ok := h.requireLogin(ctx)
	if !ok {
		return ""
	}
	characterList, err := h.provider.CharacterService.ListByOwner(ctx, username)
	if err != nil {
		h.reportError(err)
		return ""
	}
	items := make([]option, 0, len(characterList))
	for _, char := range characterList {
		items = append(items, option{id: char.ID, display: fmt.Sprintf("%s %s", char.ID, char.Name)})
	}
	return h.pickFromList(title, items)
}

func (h *Handler) editInventory(ctx context.Context) {
	charID := h.pickOwnCharacter(ctx, "Pick character:")
	if charID == "" {
		return
	}

	for !h.eof {
		char, err := h.provider.CharacterService.GetCharacter(ctx, charID)
		if err != nil {
			h.reportError(err)
			return
		}

		fmt.Fprintf(h.out, "\n--- Inventory for %s (%s) ---\n", char.Name, char.ID)
		if len(char.Inventory) == 0 {
			fmt.Fprintln(h.out, "(empty)")
		} else {
			for i, item := range char.Inventory {
				fmt.Fprintf(h.out, "%d. %s (type=%s, rarity=%d) - %s\n",
					i+1, item.Name, item.Type, item.Rarity, item.Description)
			}
		}
		fmt.Fprintln(h.out, "1) Add item")
		fmt.Fprintln(h.out, "2) Remove item by name")
		fmt.Fprintln(h.out, "0) Back")

		choice, ok := h.readLine("Choose: ")
		if !ok {
			return
		}
		switch choice {
		case "1":
			name, ok := h.readLine("Item name: ")
			if !ok {
				return
			}
			description, _ := h.readLine("Description: ")
			itemType, _ := h.readLine("Type: ")
			rarity := h.promptInt("Rarity (int): ", 0, maxPromptInt)

			if _, err := h.provider.CharacterService.AddItem(ctx, &charsvc.AddItemInput{
				CharID:      charID,
				Name:        name,
				Description: description,
				Type:        itemType,
				Rarity:      rarity,
			}); err != nil {
				h.reportError(err)
			}
		case "2":
			name, ok := h.readLine("Item name to remove: ")
			if !ok {
				return
			}
			qty := h.promptInt("Qty: ", 1, maxPromptInt)

			removed, err := h.provider.CharacterService.RemoveItemByName(ctx, &charsvc.RemoveItemInput{
				CharID: charID,
				Name:   name,
				Qty:    qty,
			})
			if err != nil {
				h.reportError(err)
				continue
			}
			fmt.Fprintf(h.out, "Removed %d\n", removed)
		case "0":
			return
		}
	}
}
