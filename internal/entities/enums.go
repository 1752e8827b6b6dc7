package entities

import (
	"github.com/jinhmyung/GuildQuest-Group3/internal/errors"
)

// Visibility controls who can discover and view a campaign
type Visibility string

const (
	// VisibilityPublic grants every user view access
	VisibilityPublic Visibility = "PUBLIC"

	// VisibilityPrivate restricts access to the owner and share grants
	VisibilityPrivate Visibility = "PRIVATE"
)

// String returns the string representation of the visibility
func (v Visibility) String() string {
	return string(v)
}

// IsValid checks if the visibility is a known value
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate:
		return true
	default:
		return false
	}
}

// ParseVisibility converts a stored tag into a Visibility.
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(s)
	if !v.IsValid() {
		return "", errors.Validationf("unknown visibility %q", s)
	}
	return v, nil
}

// PermissionLevel is the strength of an access grant
type PermissionLevel string

const (
	// PermissionViewOnly allows reading but not modification
	PermissionViewOnly PermissionLevel = "VIEW_ONLY"

	// PermissionCollaborative allows reading and modification
	PermissionCollaborative PermissionLevel = "COLLABORATIVE"
)

// String returns the string representation of the permission level
func (p PermissionLevel) String() string {
	return string(p)
}

// IsValid checks if the permission level is a known value
func (p PermissionLevel) IsValid() bool {
	switch p {
	case PermissionViewOnly, PermissionCollaborative:
		return true
	default:
		return false
	}
}

// Covers reports whether a grant of p satisfies a requirement of need.
// COLLABORATIVE covers VIEW_ONLY; the reverse does not hold.
func (p PermissionLevel) Covers(need PermissionLevel) bool {
	if p == PermissionCollaborative {
		return true
	}
	return p == need
}

// ParsePermissionLevel converts a stored tag into a PermissionLevel.
func ParsePermissionLevel(s string) (PermissionLevel, error) {
	p := PermissionLevel(s)
	if !p.IsValid() {
		return "", errors.Validationf("unknown permission level %q", s)
	}
	return p, nil
}

// TimeDisplay is a user's preference for rendering event times
type TimeDisplay string

const (
	// TimeDisplayWorld renders the shared world clock only
	TimeDisplayWorld TimeDisplay = "WORLD"

	// TimeDisplayLocal renders the event realm's local clock only
	TimeDisplayLocal TimeDisplay = "LOCAL"

	// TimeDisplayBoth renders world and local side by side
	TimeDisplayBoth TimeDisplay = "BOTH"
)

// String returns the string representation of the time display preference
func (d TimeDisplay) String() string {
	return string(d)
}

// IsValid checks if the time display preference is a known value
func (d TimeDisplay) IsValid() bool {
	switch d {
	case TimeDisplayWorld, TimeDisplayLocal, TimeDisplayBoth:
		return true
	default:
		return false
	}
}

// ParseTimeDisplay converts a stored tag into a TimeDisplay.
func ParseTimeDisplay(s string) (TimeDisplay, error) {
	d := TimeDisplay(s)
	if !d.IsValid() {
		return "", errors.Validationf("unknown time display %q", s)
	}
	return d, nil
}
