package workspace

import (
	"fmt"
	"strings"
)

// View is one of the three screens of the workspace.
type View string

// Views.
const (
	ViewDashboard    View = "dashboard"
	ViewAddCandidate View = "add"
	ViewSearch       View = "search"
)

// Views lists every view in menu order.
func Views() []View {
	return []View{ViewDashboard, ViewAddCandidate, ViewSearch}
}

// ParseView maps a name to a View. It accepts a few aliases.
func ParseView(name string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dashboard", "home":
		return ViewDashboard, nil
	case "add", "add_candidate", "add-candidate":
		return ViewAddCandidate, nil
	case "search":
		return ViewSearch, nil
	default:
		return "", fmt.Errorf("unknown view %q", name)
	}
}

// Title is the heading shown for the view.
func (v View) Title() string {
	switch v {
	case ViewAddCandidate:
		return "Add Candidate"
	case ViewSearch:
		return "AI Search"
	default:
		return "Dashboard"
	}
}
