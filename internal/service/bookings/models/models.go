package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при дате не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date")
)

// Request модели

// BookingFields поля формы бронирования
type BookingFields struct {
	ClientName             string   `json:"clientName"`
	AssignedPerson         string   `json:"assignedPerson"`
	KAMName                string   `json:"kamName"`
	Title                  string   `json:"title"`
	Category               string   `json:"category"`
	Type                   string   `json:"type"`
	Package                string   `json:"package"`
	ManpowerSubmissionDate string   `json:"manpowerSubmissionDate"`
	Date                   string   `json:"date"`
	StartTime              string   `json:"startTime"`
	Duration               *float64 `json:"duration,omitempty"`
	Location               string   `json:"location"`
	Notes                  string   `json:"notes"`
	PhoneNumber            *string  `json:"phoneNumber,omitempty"`
	Status                 string   `json:"status"`
}

// CreateBookingRequest запрос на создание бронирования из внутренней формы
type CreateBookingRequest struct {
	Actor string `json:"-"`
	ID    string `json:"id"` // пусто - номер генерируется
	BookingFields
}

// UpdateBookingRequest полное редактирование
type UpdateBookingRequest struct {
	Actor   string `json:"-"`
	Comment string `json:"comment,omitempty"`
	BookingFields
}

// QuickEditRequest быстрое редактирование из таблицы: только статус, дата, время и клиент
type QuickEditRequest struct {
	Actor      string  `json:"-"`
	Status     *string `json:"status,omitempty"`
	Date       *string `json:"date,omitempty"`
	StartTime  *string `json:"startTime,omitempty"`
	ClientName *string `json:"clientName,omitempty"`
	Comment    string  `json:"comment,omitempty"`
}

// IsEmpty в запросе нет ни одного изменения
func (r *QuickEditRequest) IsEmpty() bool {
	return r.Status == nil && r.Date == nil && r.StartTime == nil && r.ClientName == nil
}

// ListBookingsRequest фильтры и страница списка
type ListBookingsRequest struct {
	Status           string
	KAMName          string
	AssignedPerson   string
	Date             string
	DateFrom         string
	DateTo           string
	Search           string
	IncludeCancelled bool
	Page             int
	PageSize         int
}

// Normalize подставляет страницу по умолчанию и ограничивает размер
func (r *ListBookingsRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = domain.DefaultPageSize
	}
	if r.PageSize > domain.MaxPageSize {
		r.PageSize = domain.MaxPageSize
	}
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter(scope domain.CategoryScope) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Date:           r.Date,
		DateFrom:       r.DateFrom,
		DateTo:         r.DateTo,
		KAMName:        strings.TrimSpace(r.KAMName),
		AssignedPerson: strings.TrimSpace(r.AssignedPerson),
		Search:         strings.TrimSpace(r.Search),
		Scope:          scope,
		ActiveOnly:     !r.IncludeCancelled,
	}

	for _, d := range []string{r.Date, r.DateFrom, r.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(domain.DateFormat, d); err != nil {
			return filter, ErrInvalidDate
		}
	}

	if r.Status != "" {
		status, err := ToDomainBookingStatus(r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// BulkDeleteRequest массовое удаление
type BulkDeleteRequest struct {
	Role string   `json:"-"`
	IDs  []string `json:"ids"`
}

// Response модели

// HistoryEntry запись журнала
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Comment   string    `json:"comment,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                     string         `json:"id"`
	ClientName             string         `json:"clientName"`
	AssignedPerson         string         `json:"assignedPerson"`
	KAMName                string         `json:"kamName"`
	Title                  string         `json:"title"`
	Category               string         `json:"category"`
	Type                   string         `json:"type"`
	Package                string         `json:"package"`
	ManpowerSubmissionDate string         `json:"manpowerSubmissionDate"`
	Date                   string         `json:"date"`      // "2024-06-10"
	StartTime              string         `json:"startTime"` // как ввели: "10:00 AM"
	Duration               float64        `json:"duration"`
	Location               string         `json:"location"`
	Notes                  string         `json:"notes"`
	PhoneNumber            *string        `json:"phoneNumber,omitempty"`
	Status                 string         `json:"status"`
	History                []HistoryEntry `json:"history"`
	CreatedAt              time.Time      `json:"createdAt"`
}

// BookingListResponse страница списка бронирований
type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

// BulkDeleteResponse результат массового удаления
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// Конвертеры

// ToDomainBookingStatus проверяет строку статуса
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status, err := domain.ParseBookingStatus(s)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainBooking конвертирует domain.TrainingBooking в ответ
func FromDomainBooking(b *domain.TrainingBooking) *BookingResponse {
	resp := &BookingResponse{
		ID:                     b.ID,
		ClientName:             b.ClientName,
		AssignedPerson:         b.AssignedPerson,
		KAMName:                b.KAMName,
		Title:                  b.Title,
		Category:               b.Category,
		Type:                   b.Type,
		Package:                b.Package,
		ManpowerSubmissionDate: b.ManpowerSubmissionDate,
		Date:                   b.Date,
		StartTime:              b.StartTime,
		Duration:               b.Duration,
		Location:               b.Location,
		Notes:                  b.Notes,
		PhoneNumber:            b.PhoneNumber,
		Status:                 string(b.Status),
		History:                make([]HistoryEntry, 0, len(b.History)),
		CreatedAt:              b.CreatedAt,
	}
	for _, h := range b.History {
		resp.History = append(resp.History, HistoryEntry(h))
	}
	return resp
}

// FromDomainBookingList конвертирует страницу бронирований
func FromDomainBookingList(bookings []*domain.TrainingBooking, total, page, pageSize int) *BookingListResponse {
	items := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, FromDomainBooking(b))
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return &BookingListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
