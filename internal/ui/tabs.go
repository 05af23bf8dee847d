package ui

// activeClass marks the selected tab and its content panel.
const activeClass = "active"

// Tabs keeps a tab list and its content panels in sync.
type Tabs struct {
	ids    []string
	active string
}

// NewTabs builds tabs with the first id active.
func NewTabs(ids ...string) *Tabs {
	t := &Tabs{ids: ids}
	if len(ids) > 0 {
		t.active = ids[0]
	}
	return t
}

// IDs lists the tabs in order.
func (t *Tabs) IDs() []string {
	return t.ids
}

// Activate selects a tab. Unknown ids leave the selection unchanged.
func (t *Tabs) Activate(id string) bool {
	for _, known := range t.ids {
		if known == id {
			t.active = id
			return true
		}
	}
	return false
}

// Active is the selected tab id.
func (t *Tabs) Active() string {
	return t.active
}

// TabClass is the class of the tab button.
func (t *Tabs) TabClass(id string) string {
	if id == t.active {
		return activeClass
	}
	return ""
}

// ContentClass is the class of the content panel; it always matches TabClass.
func (t *Tabs) ContentClass(id string) string {
	return t.TabClass(id)
}
