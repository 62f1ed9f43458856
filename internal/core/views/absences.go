package views

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/leavedesk/leavedesk/internal/bus"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
)

// AbsenceRow is one currently-absent employee with display fields.
type AbsenceRow struct {
	domain.LeaveRequest
	DisplayName string `json:"displayName"`
	Initials    string `json:"initials"`
}

// HRAbsencesView backs the who-is-out-today screen and its PDF export.
type HRAbsencesView struct {
	queries ports.LeaveQueries
	logger  *slog.Logger

	absences  []domain.LeaveRequest
	filters   AbsenceFilters
	loadError string
	closed    bool
	unsubs    []func()
}

// NewHRAbsencesView wires the view to the session bus; approvals and
// cancellations elsewhere change who counts as absent.
func NewHRAbsencesView(q ports.LeaveQueries, b *bus.Bus, logger *slog.Logger) *HRAbsencesView {
	v := &HRAbsencesView{queries: q, logger: logger}
	subModified := b.DataModified.Subscribe(func(ctx context.Context, _ bus.DataModified) {
		_ = v.Refresh(ctx)
	})
	v.unsubs = append(v.unsubs, func() { b.DataModified.Unsubscribe(subModified) })
	return v
}

// Close detaches the view from the bus.
func (v *HRAbsencesView) Close() {
	v.closed = true
	for _, u := range v.unsubs {
		u()
	}
}

// Refresh re-fetches the approved requests covering today.
func (v *HRAbsencesView) Refresh(ctx context.Context) error {
	data, err := v.queries.AbsentEmployees(ctx)
	if v.closed {
		return nil
	}
	if err != nil {
		v.loadError = "Error loading absences."
		v.logger.ErrorContext(ctx, "absences fetch failed", slog.String("error", err.Error()))
		return err
	}
	v.absences = data
	v.loadError = ""
	return nil
}

// LoadError returns the inline error text of the last fetch.
func (v *HRAbsencesView) LoadError() string { return v.loadError }

func (v *HRAbsencesView) Filters() AbsenceFilters     { return v.filters }
func (v *HRAbsencesView) SetFilters(f AbsenceFilters) { v.filters = f }
func (v *HRAbsencesView) ClearFilters()               { v.filters = AbsenceFilters{} }

// Rows returns the filtered absence list with display fields.
func (v *HRAbsencesView) Rows() []AbsenceRow {
	filtered := v.filters.Apply(v.absences)
	rows := make([]AbsenceRow, 0, len(filtered))
	for _, r := range filtered {
		rows = append(rows, AbsenceRow{
			LeaveRequest: r,
			DisplayName:  displayName(r.RequesterName),
			Initials:     initialsFor(r.RequesterName),
		})
	}
	return rows
}

// ExportPDF renders the current absence list as a printable report.
func (v *HRAbsencesView) ExportPDF() ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Absent Employees")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 8, "Employee", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Leave Type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "From", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "Until", "1", 0, "L", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	list := v.filters.Apply(v.absences)
	for _, r := range list {
		pdf.CellFormat(60, 8, displayName(r.RequesterName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, string(r.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, string(r.StartDate), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, string(r.EndDate), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	if len(list) == 0 {
		pdf.CellFormat(170, 8, "No absences today.", "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering absence report: %w", err)
	}
	return buf.Bytes(), nil
}
