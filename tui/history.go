package tui

// History is a bounded command-history buffer with cursor navigation.
// Older/Newer walk the entries; Reset returns the cursor to fresh input.
type History struct {
	entries []string
	max     int
	cursor  int // -1 = not navigating
}

// NewHistory creates a history buffer holding at most max entries.
func NewHistory(max int) *History {
	return &History{max: max, cursor: -1}
}

// Push records a submitted command. Consecutive duplicates are collapsed.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Older steps back in time. It reports false only when the history is
// empty; past the oldest entry it stays put.
func (h *History) Older() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Newer steps forward; past the most recent entry it reports false, which
// means "back to fresh input".
func (h *History) Newer() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// Reset leaves navigation mode.
func (h *History) Reset() {
	h.cursor = -1
}
