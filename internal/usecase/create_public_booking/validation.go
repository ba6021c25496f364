package create_public_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

const (
	maxPhoneLength   = 32
	maxContactLength = 120
	maxTitleLength   = 200
)

// validateRequest проверяет заявку без обращения к БД
func validateRequest(req *Request) error {
	req.Date = strings.TrimSpace(req.Date)
	req.SlotID = strings.TrimSpace(req.SlotID)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.ContactName = strings.TrimSpace(req.ContactName)
	req.Title = strings.TrimSpace(req.Title)
	req.Notes = strings.TrimSpace(req.Notes)

	if req.SlotID == "" {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
	}

	if req.CompanyName == "" {
		return fmt.Errorf("%w: company name is required", ErrInvalidInput)
	}
	if len(req.CompanyName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: company name is too long", ErrInvalidInput)
	}

	if req.PhoneNumber == "" {
		return fmt.Errorf("%w: phone number is required", ErrInvalidInput)
	}
	if len(req.PhoneNumber) > maxPhoneLength {
		return fmt.Errorf("%w: phone number is too long", ErrInvalidInput)
	}

	if len(req.ContactName) > maxContactLength || len(req.Title) > maxTitleLength {
		return fmt.Errorf("%w: field is too long", ErrInvalidInput)
	}
	if len(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidDate)
	}

	return nil
}

// validateDate заявки принимаются с сегодняшнего дня
func validateDate(date string, now time.Time) (time.Time, error) {
	day, err := time.ParseInLocation(domain.DateFormat, date, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidDate)
	}
	if isDateInPast(day, now) {
		return time.Time{}, fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}
	return day, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
