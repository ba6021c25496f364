package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TrainingDesk/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
	"github.com/m04kA/SMC-TrainingDesk/pkg/types"
)

// Service сервис для работы с бронированиями из внутренней панели
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
	export       ExportOptions
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	timeProvider TimeProvider,
	logger Logger,
	export ExportOptions,
) *Service {
	if export.Location == nil {
		export.Location = time.UTC
	}
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		logger:       logger,
		export:       export,
	}
}

// Create создает бронирование из внутренней формы.
// Номер тикета берётся из запроса, иначе генерируется TKT-XXXXXXXX.
func (s *Service) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Create: creating booking id=%q client=%q by %s", req.ID, req.ClientName, req.Actor)

	booking := &domain.TrainingBooking{ID: strings.TrimSpace(req.ID)}
	if booking.ID == "" {
		booking.ID = newTicketID()
	}

	if err := applyFields(booking, &req.BookingFields); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if booking.Status == "" {
		booking.Status = domain.StatusToDo
	}
	booking.AppendHistory(s.timeProvider.Now(), actorOrSystem(req.Actor), "Created", "")

	caps := s.bookingRepo.Capabilities()
	created, err := s.bookingRepo.Create(ctx, booking, !caps.PhoneNumber)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateID) {
			s.logger.Warn("Create: booking id=%s already exists", booking.ID)
			return nil, ErrDuplicateID
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created booking id=%s", created.ID)
	return models.FromDomainBooking(created), nil
}

// GetByID получает бронирование по номеру тикета
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// List страница внутренних бронирований. Заявки с публичной страницы сюда не попадают.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	return s.list(ctx, "List", req, domain.ScopeInternal)
}

// PublicRequests отчёт по заявкам с публичной страницы
func (s *Service) PublicRequests(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	return s.list(ctx, "PublicRequests", req, domain.ScopePublicRequests)
}

func (s *Service) list(ctx context.Context, op string, req *models.ListBookingsRequest, scope domain.CategoryScope) (*models.BookingListResponse, error) {
	req.Normalize()
	s.logger.Info("%s: page=%d size=%d status=%q search=%q", op, req.Page, req.PageSize, req.Status, req.Search)

	filter, err := req.ToDomainFilter(scope)
	if err != nil {
		s.logger.Warn("%s: invalid filter: %v", op, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	total, err := s.bookingRepo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("%s: count error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - count error: %v", ErrInternal, op, err)
	}

	filter.Limit = req.PageSize
	filter.Offset = (req.Page - 1) * req.PageSize

	bookings, err := s.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return models.FromDomainBookingList(bookings, total, req.Page, req.PageSize), nil
}

// Update полное редактирование бронирования
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%s by %s", id, req.Actor)

	booking, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	previousStatus := booking.Status
	if err := applyFields(booking, &req.BookingFields); err != nil {
		s.logger.Warn("Update: validation failed for id=%s: %v", id, err)
		return nil, err
	}
	if booking.Status == "" {
		booking.Status = previousStatus
	}

	now := s.timeProvider.Now()
	actor := actorOrSystem(req.Actor)
	booking.AppendHistory(now, actor, "Updated", req.Comment)
	if booking.Status != previousStatus {
		booking.AppendHistory(now, actor, statusChange(previousStatus, booking.Status), "")
	}

	return s.save(ctx, "Update", booking)
}

// QuickEdit меняет только статус, дату, время или клиента
func (s *Service) QuickEdit(ctx context.Context, id string, req *models.QuickEditRequest) (*models.BookingResponse, error) {
	s.logger.Info("QuickEdit: editing booking id=%s by %s", id, req.Actor)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to change", ErrInvalidInput)
	}

	booking, err := s.get(ctx, "QuickEdit", id)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	actor := actorOrSystem(req.Actor)
	changes := make([]string, 0, 4)

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		if status != booking.Status {
			booking.AppendHistory(now, actor, statusChange(booking.Status, status), req.Comment)
			booking.Status = status
		}
	}
	if req.Date != nil {
		if err := validateDate(*req.Date); err != nil {
			return nil, err
		}
		if *req.Date != booking.Date {
			changes = append(changes, fmt.Sprintf("date %s → %s", booking.Date, *req.Date))
			booking.Date = *req.Date
		}
	}
	if req.StartTime != nil {
		if err := validateStartTime(*req.StartTime); err != nil {
			return nil, err
		}
		if !types.SameTime(*req.StartTime, booking.StartTime) {
			changes = append(changes, fmt.Sprintf("time %s → %s", booking.StartTime, *req.StartTime))
		}
		booking.StartTime = strings.TrimSpace(*req.StartTime)
	}
	if req.ClientName != nil {
		name := strings.TrimSpace(*req.ClientName)
		if name == "" {
			return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
		}
		if name != booking.ClientName {
			changes = append(changes, "client")
			booking.ClientName = name
		}
	}

	if len(changes) > 0 {
		booking.AppendHistory(now, actor, "Quick edit: "+strings.Join(changes, ", "), req.Comment)
	}

	return s.save(ctx, "QuickEdit", booking)
}

// Delete удаляет бронирование. Только администратор.
func (s *Service) Delete(ctx context.Context, role, id string) error {
	s.logger.Info("Delete: deleting booking id=%s by role=%s", id, role)

	if role != domain.RoleAdmin {
		s.logger.Warn("Delete: role=%s is not allowed to delete bookings", role)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%s deleted", id)
	return nil
}

// BulkDelete удаляет бронирования по списку номеров. Только администратор.
func (s *Service) BulkDelete(ctx context.Context, req *models.BulkDeleteRequest) (*models.BulkDeleteResponse, error) {
	s.logger.Info("BulkDelete: deleting %d bookings by role=%s", len(req.IDs), req.Role)

	if req.Role != domain.RoleAdmin {
		s.logger.Warn("BulkDelete: role=%s is not allowed to delete bookings", req.Role)
		return nil, ErrAccessDenied
	}
	if len(req.IDs) == 0 || len(req.IDs) > domain.MaxBulkDeleteIDs {
		return nil, fmt.Errorf("%w: ids must contain 1-%d items", ErrInvalidInput, domain.MaxBulkDeleteIDs)
	}

	deleted, err := s.bookingRepo.DeleteMany(ctx, req.IDs)
	if err != nil {
		s.logger.Error("BulkDelete: repository error: %v", err)
		return nil, fmt.Errorf("%w: BulkDelete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BulkDelete: deleted %d of %d bookings", deleted, len(req.IDs))
	return &models.BulkDeleteResponse{Deleted: deleted}, nil
}

func (s *Service) get(ctx context.Context, op, id string) (*domain.TrainingBooking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) save(ctx context.Context, op string, booking *domain.TrainingBooking) (*models.BookingResponse, error) {
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for id=%s: %v", op, booking.ID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: booking id=%s saved", op, booking.ID)
	return models.FromDomainBooking(booking), nil
}

// applyFields переносит поля формы в бронирование с проверкой
func applyFields(b *domain.TrainingBooking, f *models.BookingFields) error {
	clientName := strings.TrimSpace(f.ClientName)
	if clientName == "" || len(clientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if err := validateDate(f.Date); err != nil {
		return err
	}
	if err := validateStartTime(f.StartTime); err != nil {
		return err
	}
	if len(f.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	duration := float64(domain.DefaultDurationHours)
	if f.Duration != nil {
		duration = *f.Duration
	}
	if duration <= 0 || duration > domain.MaxDurationHours {
		return fmt.Errorf("%w: duration must be between 0 and %d hours", ErrInvalidInput, domain.MaxDurationHours)
	}

	if f.Status != "" {
		status, err := models.ToDomainBookingStatus(f.Status)
		if err != nil {
			return ErrInvalidStatus
		}
		b.Status = status
	}

	b.ClientName = clientName
	b.AssignedPerson = strings.TrimSpace(f.AssignedPerson)
	b.KAMName = strings.TrimSpace(f.KAMName)
	b.Title = strings.TrimSpace(f.Title)
	if category := strings.TrimSpace(f.Category); category != "" {
		b.Category = category
	}
	b.Type = strings.TrimSpace(f.Type)
	b.Package = strings.TrimSpace(f.Package)
	b.ManpowerSubmissionDate = strings.TrimSpace(f.ManpowerSubmissionDate)
	b.Date = f.Date
	b.StartTime = strings.TrimSpace(f.StartTime)
	b.Duration = duration
	b.Location = strings.TrimSpace(f.Location)
	b.Notes = f.Notes
	if f.PhoneNumber != nil {
		phone := strings.TrimSpace(*f.PhoneNumber)
		b.PhoneNumber = &phone
	}

	return nil
}

func validateDate(date string) error {
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

func validateStartTime(startTime string) error {
	if _, err := types.NewTimeStringFromString(startTime); err != nil {
		return fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, startTime)
	}
	return nil
}

func statusChange(from, to domain.BookingStatus) string {
	return fmt.Sprintf("Status changed: %s → %s", from, to)
}

func actorOrSystem(actor string) string {
	if actor = strings.TrimSpace(actor); actor == "" {
		return "system"
	}
	return actor
}

// newTicketID TKT- и первые 8 символов uuid
func newTicketID() string {
	return domain.TicketIDPrefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
