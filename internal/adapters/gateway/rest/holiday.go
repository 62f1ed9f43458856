package rest

import (
	"context"
	"net/url"
	"strconv"

	"github.com/leavedesk/leavedesk/internal/core/domain"
	"github.com/leavedesk/leavedesk/internal/dto"
)

// HolidayAdapter implements the holiday query and command ports.
type HolidayAdapter struct {
	client *Client
}

// NewHolidayAdapter builds the holiday adapter on the shared client.
func NewHolidayAdapter(client *Client) *HolidayAdapter {
	return &HolidayAdapter{client: client}
}

func (a *HolidayAdapter) Holidays(ctx context.Context, country string, year int) ([]domain.Holiday, error) {
	query := url.Values{}
	if country != "" {
		query.Set("country", country)
	}
	if year != 0 {
		query.Set("year", strconv.Itoa(year))
	}
	var out []domain.Holiday
	if err := a.client.get(ctx, "/api/v1/holidays", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *HolidayAdapter) SaveHoliday(ctx context.Context, h dto.SaveHoliday) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if h.ID != "" {
		if err := a.client.put(ctx, "/api/v1/holidays/"+url.PathEscape(h.ID), h, &out); err != nil {
			return "", err
		}
		return h.ID, nil
	}
	if err := a.client.post(ctx, "/api/v1/holidays", h, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (a *HolidayAdapter) DeleteHoliday(ctx context.Context, id string) error {
	return a.client.delete(ctx, "/api/v1/holidays/"+url.PathEscape(id), nil, nil)
}

func (a *HolidayAdapter) SyncHolidays(ctx context.Context, country string, year int) error {
	body := dto.SyncHolidaysBody{CountryCode: country, Year: year}
	return a.client.post(ctx, "/api/v1/holidays/sync", body, nil)
}

func (a *HolidayAdapter) BulkDeleteHolidays(ctx context.Context, country string, year int) (int, error) {
	query := url.Values{"year": {strconv.Itoa(year)}}
	if country != "" {
		query.Set("country", country)
	}
	var out struct {
		Deleted int `json:"deleted"`
	}
	if err := a.client.delete(ctx, "/api/v1/holidays", query, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}
