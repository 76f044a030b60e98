package webui

// Tab is one of the dashboard panels.
type Tab string

const (
	TabForm    Tab = "form"
	TabResults Tab = "results"
	TabLogs    Tab = "logs"
)

// TabLink is a navigation entry in display order.
type TabLink struct {
	ID    Tab
	Label string
}

var tabLinks = []TabLink{
	{ID: TabForm, Label: "Trip Planning"},
	{ID: TabResults, Label: "Route & Compliance"},
	{ID: TabLogs, Label: "ELD Logs"},
}

// ParseTab maps a query value to a tab. Anything unknown lands on the form.
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabResults:
		return TabResults
	case TabLogs:
		return TabLogs
	}
	return TabForm
}

// TabState tracks the active panel and whether a trip result exists.
// There is no terminal state; every tab can be reached from every other.
type TabState struct {
	Active    Tab
	HasResult bool
}

// Navigate switches to t. The result, if any, is kept.
func (s TabState) Navigate(t Tab) TabState {
	s.Active = ParseTab(string(t))
	return s
}

// Submitted moves to the results tab after a plan came back, whichever
// planner produced it.
func (s TabState) Submitted() TabState {
	return TabState{Active: TabResults, HasResult: true}
}

// Placeholder reports whether the active panel has nothing to show.
func (s TabState) Placeholder() bool {
	return s.Active != TabForm && !s.HasResult
}

// Links returns the navigation entries.
func (s TabState) Links() []TabLink { return tabLinks }
