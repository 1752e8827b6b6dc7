package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jinhmyung/GuildQuest-Group3/internal/worldclock"
)

// option is one entry of a numbered pick list
type option struct {
	id      string
	display string
}

// Prompt bounds for fields with no natural ceiling
const (
	maxPromptInt = 1_000_000_000
	minPromptInt = -1_000_000_000
)

// readLine prints the prompt and returns the next input line trimmed.
// ok is false once input is exhausted.
func (h *Handler) readLine(prompt string) (string, bool) {
	if h.eof {
		return "", false
	}
	fmt.Fprint(h.out, prompt)
	if !h.scanner.Scan() {
		h.eof = true
		fmt.Fprintln(h.out)
		return "", false
	}
	return strings.TrimSpace(h.scanner.Text()), true
}

// promptInt keeps asking until the line parses as an integer within
// [minV, maxV]. Exhausted input yields minV so callers unwind.
func (h *Handler) promptInt(prompt string, minV, maxV int) int {
	for {
		line, ok := h.readLine(prompt)
		if !ok {
			return minV
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(h.out, "Please enter an integer.")
			continue
		}
		if v < minV {
			fmt.Fprintf(h.out, "Must be >= %d\n", minV)
			continue
		}
		if v > maxV {
			fmt.Fprintf(h.out, "Must be <= %d\n", maxV)
			continue
		}
		return v
	}
}

func (h *Handler) promptYesNo(prompt string) bool {
	line, _ := h.readLine(prompt)
	return strings.EqualFold(line, "y")
}

// promptTime collects day, hour, and minute as separate lines
func (h *Handler) promptTime(label string) worldclock.Time {
	fmt.Fprintf(h.out, "Enter %s time:\n", label)
	day := h.promptInt("  day (>=0): ", 0, maxPromptInt)
	hour := h.promptInt("  hour (0-23): ", 0, 23)
	minute := h.promptInt("  minute (0-59): ", 0, 59)
	return worldclock.Time{Day: day, Hour: hour, Minute: minute}
}

// pickFromList renders a numbered menu and returns the chosen id.
// An empty list or a cancel returns "".
func (h *Handler) pickFromList(title string, items []option) string {
	if len(items) == 0 {
		fmt.Fprintln(h.out, "(none)")
		return ""
	}
	fmt.Fprintln(h.out, title)
	for i, item := range items {
		fmt.Fprintf(h.out, "  %d. %s\n", i+1, item.display)
	}
	fmt.Fprintln(h.out, "  0. Cancel")
	choice := h.promptInt("Choose: ", 0, len(items))
	if choice == 0 {
		return ""
	}
	return items[choice-1].id
}
