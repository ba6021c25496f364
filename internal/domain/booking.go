package domain

import (
	"errors"
	"time"
)

// ErrInvalidStatus статус не входит в список допустимых
var ErrInvalidStatus = errors.New("domain: invalid booking status")

// BookingStatus статус тренинга
type BookingStatus string

const (
	StatusToDo      BookingStatus = "To Do"
	StatusDone      BookingStatus = "Done"
	StatusCancelled BookingStatus = "Cancelled"
	StatusRequested BookingStatus = "Requested"
	StatusApproved  BookingStatus = "Approved"
	StatusCompleted BookingStatus = "Completed"
	StatusPending   BookingStatus = "Pending"
)

// AllStatuses все статусы в порядке отображения
var AllStatuses = []BookingStatus{
	StatusToDo,
	StatusRequested,
	StatusPending,
	StatusApproved,
	StatusDone,
	StatusCompleted,
	StatusCancelled,
}

// ParseBookingStatus проверяет строку статуса
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, status := range AllStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// HistoryEntry запись журнала изменений бронирования (только добавление)
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Comment   string    `json:"comment,omitempty"`
}

// TrainingBooking бронирование тренинга.
// ID - номер тикета, задаётся снаружи (или генерируется) и уникален глобально.
type TrainingBooking struct {
	ID                     string
	ClientName             string
	AssignedPerson         string
	KAMName                string
	Title                  string
	Category               string
	Type                   string
	Package                string
	ManpowerSubmissionDate string
	Date                   string // YYYY-MM-DD
	StartTime              string // как ввели: "10:00 AM" или "10:00"
	Duration               float64
	Location               string
	Notes                  string
	PhoneNumber            *string
	Status                 BookingStatus
	History                []HistoryEntry
	CreatedAt              time.Time
}

// IsCancelled отменённые бронирования не занимают места и не видны в активном расписании
func (b *TrainingBooking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsPublicRequest заявка создана через публичную страницу
func (b *TrainingBooking) IsPublicRequest() bool {
	return b.Category == CategoryPublicRequest
}

// AppendHistory добавляет запись в журнал
func (b *TrainingBooking) AppendHistory(at time.Time, user, action, comment string) {
	b.History = append(b.History, HistoryEntry{
		Timestamp: at,
		User:      user,
		Action:    action,
		Comment:   comment,
	})
}

// CategoryScope как фильтр обращается с публичными заявками
type CategoryScope int

const (
	// ScopeAll без разделения (нужно для подсчёта мест)
	ScopeAll CategoryScope = iota
	// ScopeInternal только внутренние бронирования, так показываются списки
	ScopeInternal
	// ScopePublicRequests только заявки с публичной страницы
	ScopePublicRequests
)

// BookingsFilter фильтр выборки бронирований
type BookingsFilter struct {
	Date           string // точная дата, YYYY-MM-DD
	DateFrom       string
	DateTo         string
	Status         *BookingStatus
	KAMName        string
	AssignedPerson string
	Search         string // по номеру, клиенту и названию
	Scope          CategoryScope
	ActiveOnly     bool // исключить Cancelled
	IDs            []string
	Limit          int // 0 = без ограничения
	Offset         int
}

// BookingSchema какие необязательные колонки есть в таблице bookings
type BookingSchema struct {
	PhoneNumber bool
}
