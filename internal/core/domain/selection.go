package domain

// SelectionOrigin identifies which list a record selection came from.
type SelectionOrigin string

const (
	OriginMyRequest   SelectionOrigin = "myRequest"
	OriginTeamRequest SelectionOrigin = "teamRequest"
)

// Selection is the transient, client-only "record the user is currently
// looking at" pair. It is created on row or calendar click, cleared by an
// explicit clear-selection message, and never persisted.
type Selection struct {
	RecordID string          `json:"recordID"`
	Origin   SelectionOrigin `json:"origin"`
}

// CalendarScope identifies which data set a calendar displays.
type CalendarScope string

const (
	ScopeMy          CalendarScope = "my"
	ScopeTeam        CalendarScope = "team"
	ScopeManagerTeam CalendarScope = "managerTeam"
)
