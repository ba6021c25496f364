package get_ticket_qr

import "context"

type BookingService interface {
	TicketQR(ctx context.Context, id string, size int) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
