// Package idgen allocates entity identifiers. Every kind has a short
// prefix and a monotonically increasing counter; identifiers are never
// reused or renumbered, even after deletions.
package idgen

import (
	"strconv"
	"sync"

	"github.com/jinhmyung/GuildQuest-Group3/internal/errors"
)

// Kind names an identifier namespace. The string value is the key used
// in persisted counter state.
type Kind string

const (
	KindRealm     Kind = "realm"
	KindCampaign  Kind = "campaign"
	KindEvent     Kind = "event"
	KindCharacter Kind = "char"
)

var prefixes = map[Kind]string{
	KindRealm:     "R",
	KindCampaign:  "P",
	KindEvent:     "E",
	KindCharacter: "C",
}

// Prefix returns the identifier prefix for the kind, or "X" for an
// unregistered kind.
func (k Kind) Prefix() string {
	if p, ok := prefixes[k]; ok {
		return p
	}
	return "X"
}

// Sequence hands out identifiers. Safe for concurrent use.
type Sequence struct {
	mu   sync.Mutex
	next map[Kind]int
}

// NewSequence returns a Sequence with every known kind starting at 1.
func NewSequence() *Sequence {
	return &Sequence{next: defaultCounters()}
}

func defaultCounters() map[Kind]int {
	m := make(map[Kind]int, len(prefixes))
	for k := range prefixes {
		m[k] = 1
	}
	return m
}

// Next allocates the next identifier for the kind, e.g. "R1", "P2".
func (s *Sequence) Next(kind Kind) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.next[kind]
	if !ok {
		n = 1
	}
	s.next[kind] = n + 1
	return kind.Prefix() + strconv.Itoa(n)
}

// Counters returns the persisted form of the sequence state: each
// kind's next unallocated counter value.
func (s *Sequence) Counters() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.next))
	for k, v := range s.next {
		out[string(k)] = v
	}
	return out
}

// SetCounters replaces the sequence state: known kinds reset to 1 and
// the given counters are applied on top, so a snapshot missing a kind
// cannot leak a stale counter. Counter values below 1 are rejected and
// leave the state untouched.
func (s *Sequence) SetCounters(counters map[string]int) error {
	for k, v := range counters {
		if v < 1 {
			return errors.Validationf("id counter for %q must be at least 1, got %d", k, v)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.next = defaultCounters()
	for k, v := range counters {
		s.next[Kind(k)] = v
	}
	return nil
}
