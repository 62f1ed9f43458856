package views

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leavedesk/leavedesk/internal/apperrors"
	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
)

// RequestDetailView backs the detail pane. It never fetches on its own
// initiative: it reacts to RequestSelected by loading the record fresh from
// the gateway, and to RefreshLeaveData by reloading the attachment list of
// the record it currently shows.
type RequestDetailView struct {
	queries     ports.LeaveQueries
	attachments ports.AttachmentGateway
	bus         *bus.Bus
	notifier    ports.Notifier
	logger      *slog.Logger

	record    *domain.LeaveRequest
	files     []domain.RelatedFile
	origin    domain.SelectionOrigin
	loadError string
	closed    bool
	unsubs    []func()
}

// NewRequestDetailView wires the pane to the session bus.
func NewRequestDetailView(q ports.LeaveQueries, a ports.AttachmentGateway, b *bus.Bus, n ports.Notifier, logger *slog.Logger) *RequestDetailView {
	v := &RequestDetailView{queries: q, attachments: a, bus: b, notifier: n, logger: logger}
	subSelected := b.RequestSelected.Subscribe(func(ctx context.Context, msg bus.RequestSelected) {
		v.load(ctx, msg.RecordID, msg.Origin)
	})
	subLeaveData := b.RefreshLeaveData.Subscribe(func(ctx context.Context, msg bus.RefreshLeaveData) {
		if v.record != nil && v.record.ID == msg.RecordID {
			v.load(ctx, msg.RecordID, v.origin)
		}
	})
	subClear := b.ClearSelection.Subscribe(func(ctx context.Context, _ bus.ClearSelection) {
		v.record = nil
		v.files = nil
		v.loadError = ""
	})
	v.unsubs = append(v.unsubs,
		func() { b.RequestSelected.Unsubscribe(subSelected) },
		func() { b.RefreshLeaveData.Unsubscribe(subLeaveData) },
		func() { b.ClearSelection.Unsubscribe(subClear) },
	)
	return v
}

// Close detaches the pane from the bus.
func (v *RequestDetailView) Close() {
	v.closed = true
	for _, u := range v.unsubs {
		u()
	}
}

func (v *RequestDetailView) load(ctx context.Context, recordID string, origin domain.SelectionOrigin) {
	record, err := v.queries.RequestByID(ctx, recordID)
	if v.closed {
		return
	}
	if err != nil {
		v.loadError = "Error loading request details."
		v.logger.ErrorContext(ctx, "request detail fetch failed",
			slog.String("record_id", recordID),
			slog.String("error", err.Error()))
		return
	}
	files, err := v.attachments.RelatedFiles(ctx, recordID)
	if err != nil {
		// The record is still usable without its attachment list.
		v.logger.WarnContext(ctx, "related files fetch failed",
			slog.String("record_id", recordID),
			slog.String("error", err.Error()))
		files = nil
	}
	v.record = record
	v.files = files
	v.origin = origin
	v.loadError = ""
}

// Record returns the request currently displayed, or nil when nothing is
// selected.
func (v *RequestDetailView) Record() *domain.LeaveRequest {
	if v.record == nil {
		return nil
	}
	r := *v.record
	return &r
}

// Files returns the attachments of the displayed request.
func (v *RequestDetailView) Files() []domain.RelatedFile { return v.files }

// Origin reports which list the displayed request was selected from. The
// team origin unlocks the approval actions in the pane.
func (v *RequestDetailView) Origin() domain.SelectionOrigin { return v.origin }

// LoadError returns the inline error text of the last load.
func (v *RequestDetailView) LoadError() string { return v.loadError }

// Presentation derives the badge and action set for the displayed request.
func (v *RequestDetailView) Presentation() RowPresentation {
	if v.record == nil {
		return RowPresentation{}
	}
	return DeriveRowPresentation(*v.record)
}

// DeleteFile removes one attachment and broadcasts the change so every
// interested view reloads the record's related data.
func (v *RequestDetailView) DeleteFile(ctx context.Context, fileID string, confirmed bool) error {
	if v.record == nil {
		return fmt.Errorf("no request selected: %w", apperrors.ErrNotFound)
	}
	if err := needConfirm(confirmed, "Delete this document?"); err != nil {
		return err
	}
	if err := v.attachments.DeleteRelatedFile(ctx, fileID, v.record.ID); err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	v.notifier.Success(ctx, "Document deleted.")
	v.bus.RefreshLeaveData.Publish(ctx, bus.RefreshLeaveData{RecordID: v.record.ID})
	return nil
}
