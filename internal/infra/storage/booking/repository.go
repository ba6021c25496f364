package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	"github.com/m04kA/SMC-TrainingDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingDesk/pkg/pgerrors"
	"github.com/m04kA/SMC-TrainingDesk/pkg/psqlbuilder"
)

const table = "bookings"

// baseColumns колонки, которые есть в любой версии схемы
var baseColumns = []string{
	"id",
	"client_name",
	"assigned_person",
	"kam_name",
	"title",
	"category",
	"type",
	"package",
	"manpower_submission_date",
	"date",
	"start_time",
	"duration",
	"location",
	"notes",
	"status",
	"history",
	"created_at",
}

// Repository репозиторий для работы с бронированиями.
// Хранит знание о необязательных колонках (см. Probe), пока считаем, что схема полная.
type Repository struct {
	db DBExecutor

	mu     sync.RWMutex
	schema domain.BookingSchema
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{
		db:     db,
		schema: domain.BookingSchema{PhoneNumber: true},
	}
}

// Capabilities какие необязательные колонки доступны
func (r *Repository) Capabilities() domain.BookingSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schema
}

func (r *Repository) setPhoneNumber(ok bool) {
	r.mu.Lock()
	r.schema.PhoneNumber = ok
	r.mu.Unlock()
}

// Probe проверяет по information_schema, какие необязательные колонки есть в таблице.
// Вызывается один раз при старте.
func (r *Repository) Probe(ctx context.Context) (domain.BookingSchema, error) {
	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("information_schema.columns").
		Where(squirrel.Eq{"table_name": table, "column_name": "phone_number"}).
		Where("table_schema = current_schema()").
		ToSql()
	if err != nil {
		return domain.BookingSchema{}, fmt.Errorf("%w: Probe - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return domain.BookingSchema{}, fmt.Errorf("%w: Probe - scan count: %v", ErrScanRow, err)
	}

	r.setPhoneNumber(count > 0)
	return r.Capabilities(), nil
}

func (r *Repository) columns() []string {
	cols := append([]string{}, baseColumns...)
	if r.Capabilities().PhoneNumber {
		cols = append(cols, "phone_number")
	}
	return cols
}

// Create сохраняет бронирование.
// stripOptional=true - вставка без необязательных колонок (телефон остаётся только в notes).
// Если БД не знает колонку, возвращается ErrUndefinedColumn и репозиторий запоминает это.
func (r *Repository) Create(ctx context.Context, booking *domain.TrainingBooking, stripOptional bool) (*domain.TrainingBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	history, err := encodeHistory(booking.History)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncodeHistory, err)
	}

	columns := []string{
		"id",
		"client_name",
		"assigned_person",
		"kam_name",
		"title",
		"category",
		"type",
		"package",
		"manpower_submission_date",
		"date",
		"start_time",
		"duration",
		"location",
		"notes",
		"status",
		"history",
	}
	values := []interface{}{
		booking.ID,
		booking.ClientName,
		booking.AssignedPerson,
		booking.KAMName,
		booking.Title,
		booking.Category,
		booking.Type,
		booking.Package,
		booking.ManpowerSubmissionDate,
		booking.Date,
		booking.StartTime,
		booking.Duration,
		booking.Location,
		booking.Notes,
		booking.Status,
		history,
	}
	if !stripOptional {
		columns = append(columns, "phone_number")
		values = append(values, nullString(booking.PhoneNumber))
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt)
	switch {
	case err == nil:
	case pgerrors.IsUndefinedColumn(err):
		r.setPhoneNumber(false)
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrUndefinedColumn, err)
	case pgerrors.IsUniqueViolation(err):
		return nil, fmt.Errorf("%w: Create - %s", ErrDuplicateID, booking.ID)
	default:
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	if stripOptional {
		booking.PhoneNumber = nil
	}

	return booking, nil
}

// GetByID получает бронирование по номеру тикета
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.TrainingBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := r.columns()
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...), len(columns) > len(baseColumns))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByFilter получает бронирования по фильтру.
// Для конкретной даты сортировка по времени начала, иначе сначала новые.
// start_time хранится как ввели ("03:00 PM", "15:00"), поэтому день сортируется
// после чтения, и страница вырезается тоже после сортировки.
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.TrainingBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := r.columns()
	selectBuilder := applyFilter(psqlbuilder.Select(columns...).From(table), filter)

	byDay := filter.Date != ""
	if byDay {
		selectBuilder = selectBuilder.OrderBy("created_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("date DESC", "created_at DESC")
		if filter.Limit > 0 {
			selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
		}
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.TrainingBooking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows, len(columns) > len(baseColumns))
		if err != nil {
			return nil, fmt.Errorf("%w: GetByFilter - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - rows error: %v", ErrScanRow, err)
	}

	if byDay {
		domain.SortBookingsByStartTime(bookings)
		bookings = paginate(bookings, filter.Limit, filter.Offset)
	}

	return bookings, nil
}

func paginate(bookings []*domain.TrainingBooking, limit, offset int) []*domain.TrainingBooking {
	if offset > 0 {
		if offset >= len(bookings) {
			return bookings[:0]
		}
		bookings = bookings[offset:]
	}
	if limit > 0 && limit < len(bookings) {
		bookings = bookings[:limit]
	}
	return bookings
}

// CountByFilter количество бронирований по фильтру (Limit/Offset игнорируются)
func (r *Repository) CountByFilter(ctx context.Context, filter domain.BookingsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(table), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByFilter - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: CountByFilter - scan count: %v", ErrScanRow, err)
	}

	return total, nil
}

// Update полностью перезаписывает бронирование (кроме created_at)
func (r *Repository) Update(ctx context.Context, booking *domain.TrainingBooking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	history, err := encodeHistory(booking.History)
	if err != nil {
		return fmt.Errorf("%w: Update - %v", ErrEncodeHistory, err)
	}

	updateBuilder := psqlbuilder.Update(table).
		Set("client_name", booking.ClientName).
		Set("assigned_person", booking.AssignedPerson).
		Set("kam_name", booking.KAMName).
		Set("title", booking.Title).
		Set("category", booking.Category).
		Set("type", booking.Type).
		Set("package", booking.Package).
		Set("manpower_submission_date", booking.ManpowerSubmissionDate).
		Set("date", booking.Date).
		Set("start_time", booking.StartTime).
		Set("duration", booking.Duration).
		Set("location", booking.Location).
		Set("notes", booking.Notes).
		Set("status", booking.Status).
		Set("history", history).
		Where(squirrel.Eq{"id": booking.ID})

	if r.Capabilities().PhoneNumber {
		updateBuilder = updateBuilder.Set("phone_number", nullString(booking.PhoneNumber))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// DeleteMany удаляет бронирования по списку номеров, возвращает число удалённых
func (r *Repository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMany - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMany - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMany - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

func applyFilter(sb squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.Date != "" {
		sb = sb.Where(squirrel.Eq{"date": filter.Date})
	}
	if filter.DateFrom != "" {
		sb = sb.Where(squirrel.GtOrEq{"date": filter.DateFrom})
	}
	if filter.DateTo != "" {
		sb = sb.Where(squirrel.LtOrEq{"date": filter.DateTo})
	}
	if filter.Status != nil {
		sb = sb.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.ActiveOnly {
		sb = sb.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}
	if filter.KAMName != "" {
		sb = sb.Where(squirrel.Eq{"kam_name": filter.KAMName})
	}
	if filter.AssignedPerson != "" {
		sb = sb.Where(squirrel.Eq{"assigned_person": filter.AssignedPerson})
	}
	if len(filter.IDs) > 0 {
		sb = sb.Where(squirrel.Eq{"id": filter.IDs})
	}

	switch filter.Scope {
	case domain.ScopeInternal:
		sb = sb.Where(squirrel.NotEq{"category": domain.CategoryPublicRequest})
	case domain.ScopePublicRequests:
		sb = sb.Where(squirrel.Eq{"category": domain.CategoryPublicRequest})
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		sb = sb.Where(squirrel.Or{
			squirrel.ILike{"id": pattern},
			squirrel.ILike{"client_name": pattern},
			squirrel.ILike{"title": pattern},
		})
	}

	return sb
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner, withPhone bool) (*domain.TrainingBooking, error) {
	var (
		booking domain.TrainingBooking
		status  string
		history []byte
		phone   sql.NullString
	)

	dest := []interface{}{
		&booking.ID,
		&booking.ClientName,
		&booking.AssignedPerson,
		&booking.KAMName,
		&booking.Title,
		&booking.Category,
		&booking.Type,
		&booking.Package,
		&booking.ManpowerSubmissionDate,
		&booking.Date,
		&booking.StartTime,
		&booking.Duration,
		&booking.Location,
		&booking.Notes,
		&status,
		&history,
		&booking.CreatedAt,
	}
	if withPhone {
		dest = append(dest, &phone)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatus(status)
	if phone.Valid {
		booking.PhoneNumber = &phone.String
	}
	if len(history) > 0 {
		if err := json.Unmarshal(history, &booking.History); err != nil {
			return nil, fmt.Errorf("decode history: %w", err)
		}
	}

	return &booking, nil
}

func encodeHistory(history []domain.HistoryEntry) (string, error) {
	if history == nil {
		history = []domain.HistoryEntry{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
