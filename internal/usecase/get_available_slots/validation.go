package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

// validateRequest проверяет дату и возвращает её начало в часовом поясе бронирований
func validateRequest(req *Request, now time.Time, loc *time.Location) (time.Time, error) {
	req.Date = strings.TrimSpace(req.Date)
	if req.Date == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	if isDateInPast(date, now.In(loc)) {
		return time.Time{}, ErrDateInPast
	}

	return date, nil
}
