package view

// SessionStorage is per-browser storage that lives as long as the tab session.
type SessionStorage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

const ActiveTabKey = "activeTab"

type Tab struct {
	Name string
	Slug string
}

var Tabs = []Tab{
	{Name: "Foster Children", Slug: "children"},
	{Name: "Foster Families", Slug: "families"},
	{Name: "Staff Management", Slug: "staff"},
	{Name: "Notes", Slug: "notes"},
	{Name: "Files", Slug: "files"},
}

// FindTab matches a tab by name or slug.
func FindTab(key string) (Tab, bool) {
	for _, t := range Tabs {
		if t.Name == key || t.Slug == key {
			return t, true
		}
	}
	return Tab{}, false
}

// TabState is the dashboard's active tab, persisted in session storage so a
// reload lands on the same section.
type TabState struct {
	storage SessionStorage
	active  Tab
}

func NewTabState(storage SessionStorage) *TabState {
	ts := &TabState{storage: storage, active: Tabs[0]}
	if stored, ok := storage.Get(ActiveTabKey); ok {
		if t, ok := FindTab(stored); ok {
			ts.active = t
		}
	}
	return ts
}

func (ts *TabState) Active() Tab {
	return ts.active
}

// Select activates and persists a tab. Unknown tabs are ignored.
func (ts *TabState) Select(key string) bool {
	t, ok := FindTab(key)
	if !ok {
		return false
	}

	ts.active = t
	ts.storage.Set(ActiveTabKey, t.Name)
	return true
}

// MapStorage is a SessionStorage held in memory.
type MapStorage map[string]string

func (m MapStorage) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapStorage) Set(key, value string) {
	m[key] = value
}
