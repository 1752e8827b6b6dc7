package entities

// InventoryItem is one inventory slot. Identical items occupy
// independent slots; there is no stacking or quantity field.
type InventoryItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Rarity      int    `json:"rarity"`
}

// NewInventoryItem creates an item with the default type
func NewInventoryItem(name string) InventoryItem {
	return InventoryItem{
		Name: name,
		Type: "misc",
	}
}

// Character is a playable character with an ordered inventory
type Character struct {
	ID        string          `json:"char_id"`
	Name      string          `json:"name"`
	ClassName string          `json:"class_name"`
	Level     int             `json:"level"`
	Inventory []InventoryItem `json:"inventory"`
}

// NewCharacter creates a level-1 character with an empty inventory
func NewCharacter(id, name, className string) *Character {
	return &Character{
		ID:        id,
		Name:      name,
		ClassName: className,
		Level:     1,
		Inventory: []InventoryItem{},
	}
}

// AddItem appends one slot to the inventory
func (c *Character) AddItem(item InventoryItem) {
	c.Inventory = append(c.Inventory, item)
}

// RemoveItemByName removes up to qty slots whose name matches, keeping
// the order of the remaining slots, and returns how many were removed.
// Asking for more than the character holds is not an error.
func (c *Character) RemoveItemByName(name string, qty int) int {
	if qty <= 0 {
		return 0
	}

	removed := 0
	kept := c.Inventory[:0]
	for _, item := range c.Inventory {
		if removed < qty && item.Name == name {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.Inventory = kept
	return removed
}

// CountItem returns how many slots hold an item with the given name
func (c *Character) CountItem(name string) int {
	count := 0
	for _, item := range c.Inventory {
		if item.Name == name {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the character
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	clone := *c
	if c.Inventory != nil {
		clone.Inventory = make([]InventoryItem, len(c.Inventory))
		copy(clone.Inventory, c.Inventory)
	}
	return &clone
}
