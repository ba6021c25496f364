package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается, когда строку нельзя привести к формату HH:MM
var ErrInvalidTimeString = errors.New("invalid time string format")

const clockLayout = "15:04"

var (
	// "3:00 PM", "03:00pm", " 12:30 am "
	twelveHourPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(AM|PM)$`)
	// "9:30", "15:00"
	twentyFourHourPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// NormalizeTime приводит введённое время к виду HH:MM (24 часа).
// Если строка не похожа ни на 12-, ни на 24-часовой формат, возвращается
// обрезанная строка в верхнем регистре. Функция никогда не падает.
func NormalizeTime(s string) string {
	t := strings.ToUpper(strings.TrimSpace(s))

	if m := twelveHourPattern.FindStringSubmatch(t); m != nil {
		hours, _ := strconv.Atoi(m[1])
		switch {
		case m[3] == "AM" && hours == 12:
			hours = 0
		case m[3] == "PM" && hours >= 1 && hours <= 11:
			hours += 12
		}
		return fmt.Sprintf("%02d:%s", hours, m[2])
	}

	if m := twentyFourHourPattern.FindStringSubmatch(t); m != nil {
		hours, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", hours, m[2])
	}

	return t
}

// SameTime сравнивает два времени по нормализованной форме
func SameTime(a, b string) bool {
	return NormalizeTime(a) == NormalizeTime(b)
}

// TimeString время в каноническом формате HH:MM
type TimeString string

// NewTimeString создает TimeString из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(clockLayout))
}

// NewTimeStringFromString нормализует произвольную строку времени и проверяет результат
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(NormalizeTime(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что значение является корректным временем HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(clockLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает HH:MM
func (t TimeString) String() string {
	return string(t)
}

// Display возвращает 12-часовое представление ("03:00 PM"), как его показывает дашборд
func (t TimeString) Display() string {
	parsed, err := time.Parse(clockLayout, string(t))
	if err != nil {
		return string(t)
	}
	return parsed.Format("03:04 PM")
}

// IsBefore сравнивает два времени одного дня
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = TimeString(NormalizeTime(v))
	case []byte:
		*t = TimeString(NormalizeTime(string(v)))
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
	return nil
}
