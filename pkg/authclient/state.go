package authclient

// State is the client's view of its own authentication.
type State int

const (
	// Unresolved means the server has not been asked yet.
	Unresolved State = iota
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unresolved"
	}
}

// View is the top-level screen a UI should render for a State.
type View int

const (
	// ViewNone is a quiet loading state, never a flash of the login screen.
	ViewNone View = iota
	ViewLogin
	ViewShell
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewShell:
		return "shell"
	default:
		return "none"
	}
}

// Section is the page shown inside the shell.
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionTasks     Section = "tasks"
	SectionCalendar  Section = "calendar"
	SectionSettings  Section = "settings"
)

// Sections lists every shell section in menu order.
var Sections = []Section{SectionDashboard, SectionTasks, SectionCalendar, SectionSettings}

// DefaultSection is shown after login and after logout.
const DefaultSection = SectionDashboard
