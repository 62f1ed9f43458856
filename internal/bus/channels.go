package bus

import (
	"log/slog"

	"github.com/leavedesk/leavedesk/internal/core/domain"
)

// RequestSelected reports that a list or calendar wants a record inspected.
type RequestSelected struct {
	RecordID string                 `json:"recordID"`
	Origin   domain.SelectionOrigin `json:"origin"`
}

// CalendarContext switches which data set the calendar displays. ManagerID
// is set only for the managerTeam scope; SelectedRequestID optionally asks
// the calendar to highlight one request.
type CalendarContext struct {
	Scope             domain.CalendarScope `json:"scope"`
	ManagerID         string               `json:"managerID,omitempty"`
	SelectedRequestID string               `json:"selectedRequestID,omitempty"`
}

// ClearSelection asks every list view to clear its visual row selection.
type ClearSelection struct{}

// DataModified signals that a write occurred and any cached request list is
// stale.
type DataModified struct{}

// RefreshBalance signals a write that may affect balances; balance views
// re-fetch.
type RefreshBalance struct{}

// RefreshLeaveData signals that one record's related data (attachments)
// changed.
type RefreshLeaveData struct {
	RecordID string `json:"recordID"`
}

// Bus bundles the channels of one page session. Payload shapes are the
// richest observed variants and publishers must not drop fields.
type Bus struct {
	RequestSelected  *Topic[RequestSelected]
	CalendarContext  *Topic[CalendarContext]
	ClearSelection   *Topic[ClearSelection]
	DataModified     *Topic[DataModified]
	RefreshBalance   *Topic[RefreshBalance]
	RefreshLeaveData *Topic[RefreshLeaveData]
}

// New creates the channel set for one page session.
func New(logger *slog.Logger) *Bus {
	return &Bus{
		RequestSelected:  NewTopic[RequestSelected]("RequestSelected", logger),
		CalendarContext:  NewTopic[CalendarContext]("CalendarContext", logger),
		ClearSelection:   NewTopic[ClearSelection]("ClearSelection", logger),
		DataModified:     NewTopic[DataModified]("DataModified", logger),
		RefreshBalance:   NewTopic[RefreshBalance]("RefreshBalance", logger),
		RefreshLeaveData: NewTopic[RefreshLeaveData]("RefreshLeaveData", logger),
	}
}
