package list

// Group is a maximal run of consecutive items sharing kind and level.
// Groups exist for the duration of one linear pass over a document and
// are handed to the translation stage when closed.
type Group struct {
	Items []Item
	Kind  Kind
	Level int
}

// NewGroup opens a group defined by item's kind and level, containing it.
func NewGroup(item Item) *Group {
	return &Group{
		Items: []Item{item},
		Kind:  item.Kind,
		Level: item.Level,
	}
}

// AddItem appends item without validation; the caller must have already
// confirmed continuation.
func (g *Group) AddItem(item Item) {
	g.Items = append(g.Items, item)
}

// IsContinuation reports whether item continues this group: same kind and
// same level, nothing else. Marker value and index contiguity are
// deliberately ignored ("5." after "1." stays in the group); whether a
// numbering gap should split a list is the pipeline's decision.
func (g *Group) IsContinuation(item Item) bool {
	return item.Kind == g.Kind && item.Level == g.Level
}

// Tracker drives the single linear scan that clusters detected items
// into groups. It keeps at most one group open; feeding an item that does
// not continue it closes it. A Tracker is confined to one sequential
// pass and is not safe for concurrent use.
type Tracker struct {
	open *Group
}

// Feed routes item into the open group, or closes it and opens a new one.
// The returned group is non-nil exactly when an open group was closed by
// this item.
func (t *Tracker) Feed(item Item) *Group {
	if t.open != nil && t.open.IsContinuation(item) {
		t.open.AddItem(item)
		return nil
	}
	closed := t.open
	t.open = NewGroup(item)
	return closed
}

// Open returns the currently open group, or nil.
func (t *Tracker) Open() *Group {
	return t.open
}

// Flush closes and returns the open group at end of input, or nil if no
// group is open.
func (t *Tracker) Flush() *Group {
	closed := t.open
	t.open = nil
	return closed
}
