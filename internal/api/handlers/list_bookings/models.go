package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Даты и статус проверяет сервис.
func ToServiceRequest(q url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Status:         q.Get("status"),
		KAMName:        q.Get("kam"),
		AssignedPerson: q.Get("assignedPerson"),
		Date:           q.Get("date"),
		DateFrom:       q.Get("dateFrom"),
		DateTo:         q.Get("dateTo"),
		Search:         q.Get("search"),
	}

	var err error
	if req.Page, err = parseInt(q, "page"); err != nil {
		return nil, err
	}
	if req.PageSize, err = parseInt(q, "pageSize"); err != nil {
		return nil, err
	}

	if s := q.Get("includeCancelled"); s != "" {
		includeCancelled, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}

func parseInt(q url.Values, key string) (int, error) {
	s := q.Get(key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s value: %q", key, s)
	}
	return v, nil
}
