package views

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/leavedesk/leavedesk/internal/apperrors"
	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
	"github.com/leavedesk/leavedesk/internal/dto"
)

// EditorMode distinguishes creating a new request from editing one already
// in the approval pipeline.
type EditorMode string

const (
	ModeCreate EditorMode = "create"
	ModeEdit   EditorMode = "edit"
)

// EditorStep is the modal step. A newly created request of a
// document-required type moves to the upload step instead of closing.
type EditorStep string

const (
	StepForm   EditorStep = "form"
	StepUpload EditorStep = "upload"
)

// RequestEditorView backs the create/edit modal. It owns the draft fields,
// recomputes the derived day count through the gateway, and on a completed
// save broadcasts the writes so every sibling view re-fetches. It never
// patches any list locally.
type RequestEditorView struct {
	queries     ports.LeaveQueries
	commands    ports.LeaveCommands
	balances    ports.BalanceQueries
	attachments ports.AttachmentGateway
	bus         *bus.Bus
	notifier    ports.Notifier
	logger      *slog.Logger
	validate    *validator.Validate

	employeeID  string
	open        bool
	mode        EditorMode
	step        EditorStep
	recordID    string
	original    *domain.LeaveRequest
	form        dto.SaveLeaveRequest
	derivedDays decimal.Decimal
	saving      bool
}

// NewRequestEditorView builds the modal view for the given employee. The
// editor publishes on the bus but subscribes to nothing; it only exists
// while open.
func NewRequestEditorView(g ports.Gateway, b *bus.Bus, n ports.Notifier, employeeID string, logger *slog.Logger) *RequestEditorView {
	validate := validator.New()
	validate.RegisterStructValidation(validateDateOrder, dto.SaveLeaveRequest{})
	return &RequestEditorView{
		queries:     g.LeaveQueries,
		commands:    g.LeaveCommands,
		balances:    g.BalanceQueries,
		attachments: g.Attachments,
		bus:         b,
		notifier:    n,
		logger:      logger,
		validate:    validate,
		employeeID:  employeeID,
		step:        StepForm,
	}
}

// validateDateOrder rejects drafts whose end date precedes the start date.
// The ISO string encoding makes this a lexicographic comparison; field tags
// cannot express it for string-backed dates.
func validateDateOrder(sl validator.StructLevel) {
	r := sl.Current().Interface().(dto.SaveLeaveRequest)
	if !r.StartDate.IsZero() && !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		sl.ReportError(r.EndDate, "EndDate", "endDate", "dateorder", "")
	}
}

// OpenCreate resets the draft and opens the modal in create mode.
func (v *RequestEditorView) OpenCreate() {
	v.open = true
	v.mode = ModeCreate
	v.step = StepForm
	v.recordID = ""
	v.original = nil
	v.form = dto.SaveLeaveRequest{}
	v.derivedDays = decimal.Zero
	v.saving = false
}

// OpenEdit loads the request fresh from the gateway and opens the modal in
// edit mode. Only requests still in the approval pipeline are editable.
func (v *RequestEditorView) OpenEdit(ctx context.Context, recordID string) error {
	record, err := v.queries.RequestByID(ctx, recordID)
	if err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	if !record.Status.InApproval() {
		return fmt.Errorf("request %s is %s and cannot be edited: %w",
			record.Number, record.Status, apperrors.ErrValidation)
	}
	v.open = true
	v.mode = ModeEdit
	v.step = StepForm
	v.recordID = recordID
	v.original = record
	v.form = dto.SaveLeaveRequest{
		Type:            record.Type,
		StartDate:       record.StartDate,
		EndDate:         record.EndDate,
		EmployeeComment: record.EmployeeComment,
	}
	v.derivedDays = record.DaysRequested
	v.saving = false
	return nil
}

// Cancel closes the modal and drops the draft without side effects.
func (v *RequestEditorView) Cancel() {
	v.open = false
	v.step = StepForm
	v.original = nil
	v.form = dto.SaveLeaveRequest{}
	v.derivedDays = decimal.Zero
	v.saving = false
}

func (v *RequestEditorView) Open() bool                 { return v.open }
func (v *RequestEditorView) Mode() EditorMode           { return v.mode }
func (v *RequestEditorView) Step() EditorStep           { return v.step }
func (v *RequestEditorView) Saving() bool               { return v.saving }
func (v *RequestEditorView) Draft() dto.SaveLeaveRequest { return v.form }

// DerivedDays is the server-computed day count for the current date range.
func (v *RequestEditorView) DerivedDays() decimal.Decimal { return v.derivedDays }

// DocumentRequired reports whether the chosen type needs a supporting
// document before the request is complete.
func (v *RequestEditorView) DocumentRequired() bool {
	return v.form.Type.RequiresDocument()
}

// SetType updates the draft leave type.
func (v *RequestEditorView) SetType(t domain.LeaveType) { v.form.Type = t }

// SetComment updates the draft employee comment.
func (v *RequestEditorView) SetComment(c string) { v.form.EmployeeComment = c }

// SetDates updates the draft range and recomputes the day count through
// the gateway. The count is authoritative there: half days, weekends and
// holidays are its business, not this layer's.
func (v *RequestEditorView) SetDates(ctx context.Context, start, end domain.Date) error {
	v.form.StartDate = start
	v.form.EndDate = end
	if start.IsZero() || end.IsZero() || end.Before(start) {
		v.derivedDays = decimal.Zero
		return nil
	}
	days, err := v.queries.RequestedDays(ctx, start, end)
	if err != nil {
		v.logger.WarnContext(ctx, "requested days computation failed",
			slog.String("error", err.Error()))
		v.derivedDays = decimal.Zero
		return err
	}
	v.derivedDays = days
	return nil
}

// Save validates and submits the draft. On a create of a document-required
// type with no files yet attached, the modal moves to the upload step and
// stays open; in every other success case it closes and broadcasts. On
// failure the modal stays open with the draft intact.
func (v *RequestEditorView) Save(ctx context.Context) error {
	if !v.open {
		return fmt.Errorf("editor is not open: %w", apperrors.ErrValidation)
	}
	if err := v.validate.Struct(v.form); err != nil {
		return fmt.Errorf("invalid request: %w: %w", apperrors.ErrValidation, err)
	}

	v.saving = true
	defer func() { v.saving = false }()

	if v.form.Type.BalanceTracked() {
		bal, err := v.balances.ApplicableBalance(ctx, v.employeeID, v.form.Type, v.form.StartDate.Year())
		if err != nil {
			v.notifier.Error(ctx, apperrors.MessageFor(err))
			return err
		}
		v.form.BalanceID = bal.ID
	} else {
		v.form.BalanceID = ""
	}

	switch v.mode {
	case ModeEdit:
		return v.saveEdit(ctx)
	default:
		return v.saveCreate(ctx)
	}
}

func (v *RequestEditorView) saveCreate(ctx context.Context) error {
	id, err := v.commands.CreateRequest(ctx, v.form)
	if err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	v.recordID = id

	if v.form.Type.RequiresDocument() {
		files, ferr := v.attachments.RelatedFiles(ctx, id)
		if ferr != nil || len(files) == 0 {
			v.step = StepUpload
			v.notifier.Info(ctx, "Request created. Please attach the supporting document.")
			return nil
		}
	}
	v.finishSave(ctx, "Request submitted.")
	return nil
}

func (v *RequestEditorView) saveEdit(ctx context.Context) error {
	var err error
	if v.original != nil && v.original.Status == domain.StatusSubmitted {
		err = v.commands.UpdateRequest(ctx, v.recordID, v.form)
	} else {
		// The request already sits with an approver; the gateway recalls
		// it, applies the changes and resubmits in one operation.
		err = v.commands.RecallAndUpdate(ctx, v.recordID, v.form.StartDate, v.form.EndDate, v.form.EmployeeComment)
	}
	if err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	v.finishSave(ctx, "Request updated.")
	return nil
}

// FinishUpload completes the upload step. The document must actually be
// attached by now; otherwise the modal stays on the upload step.
func (v *RequestEditorView) FinishUpload(ctx context.Context) error {
	if v.step != StepUpload {
		return fmt.Errorf("no upload pending: %w", apperrors.ErrValidation)
	}
	files, err := v.attachments.RelatedFiles(ctx, v.recordID)
	if err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("a supporting document is required for %s: %w",
			v.form.Type, apperrors.ErrValidation)
	}
	v.finishSave(ctx, "Request submitted.")
	return nil
}

// SkipUpload abandons the upload step, leaving the created request without
// its document. The request exists either way; the bus still broadcasts so
// the lists pick it up.
func (v *RequestEditorView) SkipUpload(ctx context.Context) {
	if v.step != StepUpload {
		return
	}
	v.finishSave(ctx, "Request submitted without document.")
}

func (v *RequestEditorView) finishSave(ctx context.Context, msg string) {
	recordID := v.recordID
	v.open = false
	v.step = StepForm

	v.notifier.Success(ctx, msg)
	v.bus.DataModified.Publish(ctx, bus.DataModified{})
	v.bus.RefreshBalance.Publish(ctx, bus.RefreshBalance{})
	v.bus.RefreshLeaveData.Publish(ctx, bus.RefreshLeaveData{RecordID: recordID})
	v.bus.RequestSelected.Publish(ctx, bus.RequestSelected{
		RecordID: recordID,
		Origin:   domain.OriginMyRequest,
	})
}
