package bookings

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainingDesk/pkg/types"
)

const (
	exportSheet    = "Bookings"
	maxExportRows  = 5000
	defaultQRSize  = 256
	maxQRSize      = 1024
	calendarProdID = "-//SMC//Training Desk//EN"
)

// ExportOptions параметры выгрузок
type ExportOptions struct {
	Location      *time.Location // часовой пояс дат бронирований
	PublicBaseURL string         // кодируется в QR вместе с номером заявки
}

// ExportFile готовый файл выгрузки
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

var exportColumns = []struct {
	title string
	width float64
	value func(b *domain.TrainingBooking) interface{}
}{
	{"Ticket", 18, func(b *domain.TrainingBooking) interface{} { return b.ID }},
	{"Date", 12, func(b *domain.TrainingBooking) interface{} { return b.Date }},
	{"Time", 10, func(b *domain.TrainingBooking) interface{} { return b.StartTime }},
	{"Duration (h)", 12, func(b *domain.TrainingBooking) interface{} { return b.Duration }},
	{"Client", 28, func(b *domain.TrainingBooking) interface{} { return b.ClientName }},
	{"Title", 28, func(b *domain.TrainingBooking) interface{} { return b.Title }},
	{"Category", 16, func(b *domain.TrainingBooking) interface{} { return b.Category }},
	{"Type", 14, func(b *domain.TrainingBooking) interface{} { return b.Type }},
	{"Package", 14, func(b *domain.TrainingBooking) interface{} { return b.Package }},
	{"Assigned", 18, func(b *domain.TrainingBooking) interface{} { return b.AssignedPerson }},
	{"KAM", 18, func(b *domain.TrainingBooking) interface{} { return b.KAMName }},
	{"Location", 20, func(b *domain.TrainingBooking) interface{} { return b.Location }},
	{"Status", 12, func(b *domain.TrainingBooking) interface{} { return string(b.Status) }},
	{"Notes", 40, func(b *domain.TrainingBooking) interface{} { return b.Notes }},
}

// ExportXLSX выгружает отфильтрованные бронирования в Excel
func (s *Service) ExportXLSX(ctx context.Context, req *models.ListBookingsRequest, publicOnly bool) (*ExportFile, error) {
	bookings, err := s.exportRows(ctx, "ExportXLSX", req, publicOnly)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: ExportXLSX - new sheet: %v", ErrExport, err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("%w: ExportXLSX - delete default sheet: %v", ErrExport, err)
	}

	if err := writeExportHeader(f, exportSheet); err != nil {
		s.logger.Error("ExportXLSX: failed to write header: %v", err)
		return nil, err
	}

	for row, b := range bookings {
		for i, col := range exportColumns {
			cell, _ := excelize.CoordinatesToCellName(i+1, row+2)
			if err := f.SetCellValue(exportSheet, cell, col.value(b)); err != nil {
				return nil, fmt.Errorf("%w: ExportXLSX - set cell %s: %v", ErrExport, cell, err)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("ExportXLSX: failed to write workbook: %v", err)
		return nil, fmt.Errorf("%w: ExportXLSX - write: %v", ErrExport, err)
	}

	s.logger.Info("ExportXLSX: exported %d bookings", len(bookings))
	return &ExportFile{
		Name:        s.exportName("xlsx", publicOnly),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

// writeExportHeader заголовок листа: ширина колонок, стиль и закреплённая первая строка
func writeExportHeader(f *excelize.File, sheet string) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("%w: header style: %v", ErrExport, err)
	}

	for i, col := range exportColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("%w: column %d: %v", ErrExport, i+1, err)
		}
		if err := f.SetColWidth(sheet, name, name, col.width); err != nil {
			return fmt.Errorf("%w: width of %s: %v", ErrExport, name, err)
		}
		if err := f.SetCellValue(sheet, name+"1", col.title); err != nil {
			return fmt.Errorf("%w: header %s: %v", ErrExport, name, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(exportColumns))
	if err != nil {
		return fmt.Errorf("%w: last column: %v", ErrExport, err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("%w: header style: %v", ErrExport, err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("%w: freeze header: %v", ErrExport, err)
	}

	return nil
}

// ExportICS выгружает бронирования как календарь. Отменённые идут со статусом CANCELLED.
func (s *Service) ExportICS(ctx context.Context, req *models.ListBookingsRequest, publicOnly bool) (*ExportFile, error) {
	bookings, err := s.exportRows(ctx, "ExportICS", req, publicOnly)
	if err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProdID)

	now := s.timeProvider.Now()
	skipped := 0
	for _, b := range bookings {
		start, err := bookingStart(b, s.export.Location)
		if err != nil {
			skipped++
			continue
		}
		end := start.Add(time.Duration(b.Duration * float64(time.Hour)))

		event := cal.AddEvent(b.ID + "@training-desk")
		event.SetDtStampTime(now)
		if !b.CreatedAt.IsZero() {
			event.SetCreatedTime(b.CreatedAt)
		}
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(eventSummary(b))
		if b.Location != "" {
			event.SetLocation(b.Location)
		}
		event.SetDescription(eventDescription(b))
		if b.IsCancelled() {
			event.SetStatus(ics.ObjectStatusCancelled)
		} else {
			event.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	if skipped > 0 {
		s.logger.Warn("ExportICS: skipped %d bookings with unreadable date or time", skipped)
	}
	s.logger.Info("ExportICS: exported %d bookings", len(bookings)-skipped)

	return &ExportFile{
		Name:        s.exportName("ics", publicOnly),
		ContentType: "text/calendar; charset=utf-8",
		Data:        []byte(cal.Serialize()),
	}, nil
}

// TicketQR PNG с QR-кодом заявки: ссылка на публичную страницу с номером
func (s *Service) TicketQR(ctx context.Context, id string, size int) ([]byte, error) {
	booking, err := s.get(ctx, "TicketQR", id)
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		size = defaultQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	content := booking.ID
	if base := strings.TrimRight(s.export.PublicBaseURL, "/"); base != "" {
		content = base + "?ticket=" + booking.ID
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		s.logger.Error("TicketQR: failed to encode id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: TicketQR - encode: %v", ErrExport, err)
	}

	return png, nil
}

func (s *Service) exportRows(ctx context.Context, op string, req *models.ListBookingsRequest, publicOnly bool) ([]*domain.TrainingBooking, error) {
	scope := domain.ScopeInternal
	if publicOnly {
		scope = domain.ScopePublicRequests
	}

	filter, err := req.ToDomainFilter(scope)
	if err != nil {
		s.logger.Warn("%s: invalid filter: %v", op, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	filter.Limit = maxExportRows

	bookings, err := s.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return bookings, nil
}

func (s *Service) exportName(ext string, publicOnly bool) string {
	prefix := "bookings"
	if publicOnly {
		prefix = "public-requests"
	}
	return fmt.Sprintf("%s-%s.%s", prefix, s.timeProvider.Now().In(s.export.Location).Format("20060102-1504"), ext)
}

// bookingStart дата + нормализованное время в часовом поясе бронирований
func bookingStart(b *domain.TrainingBooking, loc *time.Location) (time.Time, error) {
	clock, err := types.NewTimeStringFromString(b.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(domain.DateFormat+" "+domain.TimeFormat, b.Date+" "+clock.String(), loc)
}

func eventSummary(b *domain.TrainingBooking) string {
	title := b.Title
	if title == "" {
		title = domain.PublicRequestTitle
	}
	if b.ClientName == "" {
		return title
	}
	return fmt.Sprintf("%s - %s", title, b.ClientName)
}

func eventDescription(b *domain.TrainingBooking) string {
	lines := []string{
		"Ticket: " + b.ID,
		"Status: " + string(b.Status),
	}
	if b.AssignedPerson != "" {
		lines = append(lines, "Trainer: "+b.AssignedPerson)
	}
	if b.KAMName != "" {
		lines = append(lines, "KAM: "+b.KAMName)
	}
	if b.Notes != "" {
		lines = append(lines, b.Notes)
	}
	return strings.Join(lines, "\n")
}
