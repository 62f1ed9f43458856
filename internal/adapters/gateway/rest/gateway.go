package rest

import (
	"github.com/leavedesk/leavedesk/internal/core/ports"
)

// NewGateway bundles every adapter on one shared client into the port
// container the views consume.
func NewGateway(client *Client) ports.Gateway {
	leave := NewLeaveAdapter(client)
	balance := NewBalanceAdapter(client)
	holiday := NewHolidayAdapter(client)
	return ports.Gateway{
		LeaveQueries:    leave,
		LeaveCommands:   leave,
		BalanceQueries:  balance,
		BalanceCommands: balance,
		HolidayQueries:  holiday,
		HolidayCommands: holiday,
		Attachments:     NewAttachmentAdapter(client),
		Policy:          NewPolicyAdapter(client),
	}
}
