package reader

// History is a browser-style back/forward stack of reader targets.
type History struct {
	entries []Target
	index   int
}

func NewHistory() *History {
	return &History{index: -1}
}

// Push makes t the current entry and drops any forward entries.
func (h *History) Push(t Target) {
	h.entries = append(h.entries[:h.index+1], t)
	h.index = len(h.entries) - 1
}

// Replace overwrites the current entry without adding one.
func (h *History) Replace(t Target) {
	if h.index < 0 {
		h.Push(t)
		return
	}
	h.entries[h.index] = t
}

func (h *History) Current() (Target, bool) {
	if h.index < 0 {
		return Target{}, false
	}
	return h.entries[h.index], true
}

func (h *History) Back() (Target, bool) {
	if h.index <= 0 {
		return Target{}, false
	}
	h.index--
	return h.entries[h.index], true
}

func (h *History) Forward() (Target, bool) {
	if h.index >= len(h.entries)-1 {
		return Target{}, false
	}
	h.index++
	return h.entries[h.index], true
}

func (h *History) Len() int {
	return len(h.entries)
}
