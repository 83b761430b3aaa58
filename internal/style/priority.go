package style

import "sort"

// Priority orders stylesheets installed on a display. Higher wins.
type Priority int

const (
	PriorityFallback    Priority = 1
	PriorityTheme       Priority = 200
	PrioritySettings    Priority = 400
	PriorityApplication Priority = 600
	PriorityUser        Priority = 800
)

type entry struct {
	sheet    *Sheet
	priority Priority
}

// Stack keeps the stylesheets installed on one display.
type Stack struct {
	entries []entry
}

// Add installs sheet at priority. Adding the same sheet again only updates
// its priority.
func (st *Stack) Add(sheet *Sheet, priority Priority) {
	for i := range st.entries {
		if st.entries[i].sheet == sheet {
			st.entries[i].priority = priority
			st.sort()
			return
		}
	}
	st.entries = append(st.entries, entry{sheet: sheet, priority: priority})
	st.sort()
}

// Top returns the highest-priority sheet, if any.
func (st *Stack) Top() (*Sheet, Priority, bool) {
	if len(st.entries) == 0 {
		return nil, 0, false
	}
	e := st.entries[len(st.entries)-1]
	return e.sheet, e.priority, true
}

// Len returns the number of installed sheets.
func (st *Stack) Len() int {
	return len(st.entries)
}

// sort keeps entries ascending by priority; equal priorities keep
// insertion order so the later sheet wins.
func (st *Stack) sort() {
	sort.SliceStable(st.entries, func(i, j int) bool {
		return st.entries[i].priority < st.entries[j].priority
	})
}
