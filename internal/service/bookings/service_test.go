package bookings

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainingDesk/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type memBookings struct {
	rows       map[string]*domain.TrainingBooking
	lastFilter domain.BookingsFilter
	stripped   []bool
	noPhone    bool
}

func newMem(bookings ...*domain.TrainingBooking) *memBookings {
	m := &memBookings{rows: map[string]*domain.TrainingBooking{}}
	for _, b := range bookings {
		m.rows[b.ID] = b
	}
	return m
}

func (m *memBookings) Capabilities() domain.BookingSchema {
	return domain.BookingSchema{PhoneNumber: !m.noPhone}
}

func (m *memBookings) Create(ctx context.Context, b *domain.TrainingBooking, strip bool) (*domain.TrainingBooking, error) {
	m.stripped = append(m.stripped, strip)
	if _, ok := m.rows[b.ID]; ok {
		return nil, bookingRepo.ErrDuplicateID
	}
	copied := *b
	m.rows[b.ID] = &copied
	return b, nil
}

func (m *memBookings) GetByID(ctx context.Context, id string) (*domain.TrainingBooking, error) {
	b, ok := m.rows[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memBookings) match(f domain.BookingsFilter) []*domain.TrainingBooking {
	result := make([]*domain.TrainingBooking, 0)
	for _, b := range m.rows {
		if f.Scope == domain.ScopeInternal && b.IsPublicRequest() {
			continue
		}
		if f.Scope == domain.ScopePublicRequests && !b.IsPublicRequest() {
			continue
		}
		if f.ActiveOnly && b.IsCancelled() {
			continue
		}
		result = append(result, b)
	}
	return result
}

func (m *memBookings) GetByFilter(ctx context.Context, f domain.BookingsFilter) ([]*domain.TrainingBooking, error) {
	m.lastFilter = f
	return m.match(f), nil
}

func (m *memBookings) CountByFilter(ctx context.Context, f domain.BookingsFilter) (int, error) {
	return len(m.match(f)), nil
}

func (m *memBookings) Update(ctx context.Context, b *domain.TrainingBooking) error {
	if _, ok := m.rows[b.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	copied := *b
	m.rows[b.ID] = &copied
	return nil
}

func (m *memBookings) Delete(ctx context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memBookings) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.rows[id]; ok {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func newService(repo *memBookings) *Service {
	return NewService(repo, fixedClock{now: testNow}, logger.NewNop(), ExportOptions{PublicBaseURL: "https://desk.example.com/book"})
}

func fields() models.BookingFields {
	return models.BookingFields{
		ClientName: "Acme",
		Title:      "Excel Basics",
		Date:       "2024-06-10",
		StartTime:  "10:00 AM",
		Location:   "HQ",
	}
}

func TestCreate_GeneratesTicketAndHistory(t *testing.T) {
	repo := newMem()
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), &models.CreateBookingRequest{Actor: "ann", BookingFields: fields()})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.ID, "TKT-"))
	assert.Len(t, resp.ID, len("TKT-")+8)
	assert.Equal(t, string(domain.StatusToDo), resp.Status)
	assert.Equal(t, float64(domain.DefaultDurationHours), resp.Duration)
	require.Len(t, resp.History, 1)
	assert.Equal(t, "ann", resp.History[0].User)
	assert.Equal(t, "Created", resp.History[0].Action)
	assert.Equal(t, []bool{false}, repo.stripped)
}

func TestCreate_StripsPhoneWhenColumnMissing(t *testing.T) {
	repo := newMem()
	repo.noPhone = true

	_, err := newService(repo).Create(context.Background(), &models.CreateBookingRequest{ID: "TKT-1", BookingFields: fields()})

	require.NoError(t, err)
	assert.Equal(t, []bool{true}, repo.stripped)
}

func TestCreate_Validation(t *testing.T) {
	svc := newService(newMem(&domain.TrainingBooking{ID: "TKT-1"}))

	f := fields()
	f.ClientName = "  "
	_, err := svc.Create(context.Background(), &models.CreateBookingRequest{BookingFields: f})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f = fields()
	f.StartTime = "25:99"
	_, err = svc.Create(context.Background(), &models.CreateBookingRequest{BookingFields: f})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f = fields()
	f.Status = "Unknown"
	_, err = svc.Create(context.Background(), &models.CreateBookingRequest{BookingFields: f})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Create(context.Background(), &models.CreateBookingRequest{ID: "TKT-1", BookingFields: fields()})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestList_SeparatesPublicRequests(t *testing.T) {
	repo := newMem(
		&domain.TrainingBooking{ID: "TKT-1", Category: "Onsite", Status: domain.StatusToDo},
		&domain.TrainingBooking{ID: "TKT-2", Category: "Onsite", Status: domain.StatusCancelled},
		&domain.TrainingBooking{ID: "REQ-1", Category: domain.CategoryPublicRequest, Status: domain.StatusPending},
	)
	svc := newService(repo)

	internal, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, internal.Items, 1)
	assert.Equal(t, "TKT-1", internal.Items[0].ID)
	assert.Equal(t, domain.DefaultPageSize, internal.PageSize)
	assert.Equal(t, 1, internal.TotalPages)

	public, err := svc.PublicRequests(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, public.Items, 1)
	assert.Equal(t, "REQ-1", public.Items[0].ID)

	withCancelled, err := svc.List(context.Background(), &models.ListBookingsRequest{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Equal(t, 2, withCancelled.Total)
}

func TestList_Pagination(t *testing.T) {
	repo := newMem()
	svc := newService(repo)

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Page: 3, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastFilter.Limit)
	assert.Equal(t, 20, repo.lastFilter.Offset)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{DateFrom: "10/06/2024"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestQuickEdit_AppendsHistory(t *testing.T) {
	repo := newMem(&domain.TrainingBooking{ID: "TKT-1", ClientName: "Acme", Date: "2024-06-10", StartTime: "10:00 AM", Status: domain.StatusToDo})
	svc := newService(repo)

	status := string(domain.StatusDone)
	startTime := "10:00"
	date := "2024-06-11"
	resp, err := svc.QuickEdit(context.Background(), "TKT-1", &models.QuickEditRequest{
		Actor:     "ann",
		Status:    &status,
		StartTime: &startTime,
		Date:      &date,
	})

	require.NoError(t, err)
	assert.Equal(t, "Done", resp.Status)
	assert.Equal(t, "2024-06-11", resp.Date)
	require.Len(t, resp.History, 2)
	assert.Equal(t, "Status changed: To Do → Done", resp.History[0].Action)
	assert.Equal(t, "Quick edit: date 2024-06-10 → 2024-06-11", resp.History[1].Action, "same normalized time is not a change")
	assert.Equal(t, domain.StatusDone, repo.rows["TKT-1"].Status)
}

func TestQuickEdit_Errors(t *testing.T) {
	svc := newService(newMem(&domain.TrainingBooking{ID: "TKT-1", ClientName: "Acme", Status: domain.StatusToDo}))

	_, err := svc.QuickEdit(context.Background(), "TKT-1", &models.QuickEditRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := "Archived"
	_, err = svc.QuickEdit(context.Background(), "TKT-1", &models.QuickEditRequest{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	name := "New"
	_, err = svc.QuickEdit(context.Background(), "TKT-404", &models.QuickEditRequest{ClientName: &name})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdate_RecordsStatusChange(t *testing.T) {
	repo := newMem(&domain.TrainingBooking{ID: "TKT-1", ClientName: "Acme", Status: domain.StatusToDo})
	svc := newService(repo)

	f := fields()
	f.Status = "Cancelled"
	resp, err := svc.Update(context.Background(), "TKT-1", &models.UpdateBookingRequest{Actor: "bob", Comment: "client asked", BookingFields: f})

	require.NoError(t, err)
	require.Len(t, resp.History, 2)
	assert.Equal(t, "Updated", resp.History[0].Action)
	assert.Equal(t, "client asked", resp.History[0].Comment)
	assert.Equal(t, "Status changed: To Do → Cancelled", resp.History[1].Action)
}

func TestUpdate_BlankCategoryKeepsPublicRequest(t *testing.T) {
	repo := newMem(&domain.TrainingBooking{ID: "REQ-12345678-001", ClientName: "Acme", Category: domain.CategoryPublicRequest, Status: domain.StatusPending})
	svc := newService(repo)

	f := fields()
	f.Category = "  "
	resp, err := svc.Update(context.Background(), "REQ-12345678-001", &models.UpdateBookingRequest{Actor: "bob", BookingFields: f})

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryPublicRequest, resp.Category)
	assert.Equal(t, domain.CategoryPublicRequest, repo.rows["REQ-12345678-001"].Category)

	f.Category = "Workshop"
	resp, err = svc.Update(context.Background(), "REQ-12345678-001", &models.UpdateBookingRequest{Actor: "bob", BookingFields: f})

	require.NoError(t, err)
	assert.Equal(t, "Workshop", resp.Category)
}

func TestDeleteAndBulkDelete_AdminOnly(t *testing.T) {
	repo := newMem(&domain.TrainingBooking{ID: "TKT-1"}, &domain.TrainingBooking{ID: "TKT-2"})
	svc := newService(repo)

	assert.ErrorIs(t, svc.Delete(context.Background(), domain.RoleStaff, "TKT-1"), ErrAccessDenied)
	assert.ErrorIs(t, svc.Delete(context.Background(), domain.RoleAdmin, "TKT-9"), ErrBookingNotFound)

	_, err := svc.BulkDelete(context.Background(), &models.BulkDeleteRequest{Role: domain.RoleStaff, IDs: []string{"TKT-1"}})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.BulkDelete(context.Background(), &models.BulkDeleteRequest{Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.BulkDelete(context.Background(), &models.BulkDeleteRequest{Role: domain.RoleAdmin, IDs: []string{"TKT-1", "TKT-2", "TKT-3"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)
	assert.Empty(t, repo.rows)
}

func TestExportXLSX(t *testing.T) {
	repo := newMem(&domain.TrainingBooking{ID: "TKT-1", ClientName: "Acme", Date: "2024-06-10", StartTime: "10:00 AM", Duration: 2, Status: domain.StatusToDo})
	svc := newService(repo)

	file, err := svc.ExportXLSX(context.Background(), &models.ListBookingsRequest{}, false)
	require.NoError(t, err)
	assert.Equal(t, "bookings-20240601-0800.xlsx", file.Name)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{exportSheet}, wb.GetSheetList())

	header, err := wb.GetCellValue(exportSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Ticket", header)

	ticket, err := wb.GetCellValue(exportSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "TKT-1", ticket)
}

func TestWriteExportHeader_ReportsSheetErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	err := writeExportHeader(f, "Missing")

	assert.ErrorIs(t, err, ErrExport)
}

func TestExportICS(t *testing.T) {
	repo := newMem(
		&domain.TrainingBooking{ID: "TKT-1", Title: "Excel", ClientName: "Acme", Date: "2024-06-10", StartTime: "03:00 PM", Duration: 2, Status: domain.StatusToDo},
		&domain.TrainingBooking{ID: "TKT-2", Date: "2024-06-10", StartTime: "whenever", Duration: 1, Status: domain.StatusToDo},
	)
	svc := newService(repo)

	file, err := svc.ExportICS(context.Background(), &models.ListBookingsRequest{}, false)
	require.NoError(t, err)

	body := string(file.Data)
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "UID:TKT-1@training-desk")
	assert.Contains(t, body, "SUMMARY:Excel - Acme")
	assert.Contains(t, body, "20240610T150000Z")
	assert.NotContains(t, body, "TKT-2@training-desk")
}

func TestTicketQR(t *testing.T) {
	svc := newService(newMem(&domain.TrainingBooking{ID: "REQ-1"}))

	png, err := svc.TicketQR(context.Background(), "REQ-1", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = svc.TicketQR(context.Background(), "REQ-404", 0)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
