package views

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leavedesk/leavedesk/internal/apperrors"
	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/core/ports"
	"github.com/leavedesk/leavedesk/internal/dto"
)

// HRHolidaysView backs the public-holiday admin screen. Holidays live
// outside the leave-request bus traffic, so the view re-fetches itself
// after each of its own writes instead of broadcasting.
type HRHolidaysView struct {
	queries  ports.HolidayQueries
	commands ports.HolidayCommands
	notifier ports.Notifier
	logger   *slog.Logger

	holidays  []domain.Holiday
	filters   HolidayFilters
	loading   bool
	loadError string
}

// NewHRHolidaysView builds the admin view defaulted to the current year.
func NewHRHolidaysView(q ports.HolidayQueries, c ports.HolidayCommands, n ports.Notifier, logger *slog.Logger) *HRHolidaysView {
	return &HRHolidaysView{
		queries:  q,
		commands: c,
		notifier: n,
		logger:   logger,
		filters:  HolidayFilters{Year: time.Now().Year()},
	}
}

// Refresh re-fetches every holiday; filtering is applied locally so that
// switching country or year needs no round trip.
func (v *HRHolidaysView) Refresh(ctx context.Context) error {
	v.loading = true
	data, err := v.queries.Holidays(ctx, "", 0)
	v.loading = false
	if err != nil {
		v.loadError = "Error loading holidays."
		v.logger.ErrorContext(ctx, "holidays fetch failed", slog.String("error", err.Error()))
		return err
	}
	v.holidays = data
	v.loadError = ""
	return nil
}

func (v *HRHolidaysView) Filters() HolidayFilters     { return v.filters }
func (v *HRHolidaysView) SetFilters(f HolidayFilters) { v.filters = f }
func (v *HRHolidaysView) Loading() bool               { return v.loading }
func (v *HRHolidaysView) LoadError() string           { return v.loadError }

// ClearFilters resets to the default current-year view.
func (v *HRHolidaysView) ClearFilters() {
	v.filters = HolidayFilters{Year: time.Now().Year()}
}

// Rows returns the filtered holiday list.
func (v *HRHolidaysView) Rows() []domain.Holiday {
	return v.filters.Apply(v.holidays)
}

// Countries returns the selectable holiday countries.
func (v *HRHolidaysView) Countries() []domain.Country {
	return domain.HolidayCountries
}

// Save creates or updates one holiday and re-fetches the list.
func (v *HRHolidaysView) Save(ctx context.Context, h dto.SaveHoliday) error {
	if _, err := v.commands.SaveHoliday(ctx, h); err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	v.notifier.Success(ctx, "Holiday saved.")
	return v.Refresh(ctx)
}

// Delete removes one holiday after confirmation.
func (v *HRHolidaysView) Delete(ctx context.Context, holidayID string, confirmed bool) error {
	h, ok := v.find(holidayID)
	if !ok {
		return fmt.Errorf("holiday %s: %w", holidayID, apperrors.ErrNotFound)
	}
	prompt := fmt.Sprintf("Delete holiday %q (%s)?", h.Name, h.Date)
	if err := needConfirm(confirmed, prompt); err != nil {
		return err
	}
	if err := v.commands.DeleteHoliday(ctx, holidayID); err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	v.notifier.Success(ctx, "Holiday deleted.")
	return v.Refresh(ctx)
}

// Sync triggers the asynchronous holiday import for a country and year.
// The import completes in the background; the list will not reflect it
// immediately.
func (v *HRHolidaysView) Sync(ctx context.Context, body dto.SyncHolidaysBody) error {
	if err := v.commands.SyncHolidays(ctx, body.CountryCode, body.Year); err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	v.notifier.Info(ctx, fmt.Sprintf("Holiday import for %s %d started. Refresh in a moment.",
		body.CountryCode, body.Year))
	return nil
}

// BulkDelete removes every holiday of a year, optionally narrowed to one
// country, after confirmation.
func (v *HRHolidaysView) BulkDelete(ctx context.Context, body dto.BulkDeleteHolidaysBody) error {
	scope := "all countries"
	if body.CountryCode != "" {
		scope = body.CountryCode
	}
	prompt := fmt.Sprintf("Delete every %d holiday for %s? This cannot be undone.", body.Year, scope)
	if err := needConfirm(body.Confirmed, prompt); err != nil {
		return err
	}
	count, err := v.commands.BulkDeleteHolidays(ctx, body.CountryCode, body.Year)
	if err != nil {
		v.notifier.Error(ctx, apperrors.MessageFor(err))
		return err
	}
	v.notifier.Success(ctx, fmt.Sprintf("%d holidays deleted.", count))
	return v.Refresh(ctx)
}

func (v *HRHolidaysView) find(holidayID string) (domain.Holiday, bool) {
	for _, h := range v.holidays {
		if h.ID == holidayID {
			return h, true
		}
	}
	return domain.Holiday{}, false
}
