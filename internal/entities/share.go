package entities

// Share grants one user a permission level on a campaign or quest
// event. A share list holds at most one entry per username.
type Share struct {
	SharedWithUser string          `json:"shared_with_user"`
	Permission     PermissionLevel `json:"permission"`
}

// upsertShare adds or overwrites the grant for username, preserving the
// position of an existing entry.
func upsertShare(shares []Share, username string, level PermissionLevel) []Share {
	for i := range shares {
		if shares[i].SharedWithUser == username {
			shares[i].Permission = level
			return shares
		}
	}
	return append(shares, Share{SharedWithUser: username, Permission: level})
}

// removeShare drops the grant for username if present.
func removeShare(shares []Share, username string) ([]Share, bool) {
	for i := range shares {
		if shares[i].SharedWithUser == username {
			return append(shares[:i], shares[i+1:]...), true
		}
	}
	return shares, false
}

// lookupShare finds the grant for username.
func lookupShare(shares []Share, username string) (PermissionLevel, bool) {
	for i := range shares {
		if shares[i].SharedWithUser == username {
			return shares[i].Permission, true
		}
	}
	return "", false
}

// cloneShares deep copies a share list.
func cloneShares(shares []Share) []Share {
	if shares == nil {
		return nil
	}
	out := make([]Share, len(shares))
	copy(out, shares)
	return out
}
