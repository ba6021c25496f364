package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	"github.com/m04kA/SMC-TrainingDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-TrainingDesk/pkg/pgerrors"
	"github.com/m04kA/SMC-TrainingDesk/pkg/psqlbuilder"
)

const table = "settings"

// Repository единственная запись настроек (id = domain.SettingsID)
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ProbeTutorialsShape определяет по information_schema, как хранится колонка tutorials
func (r *Repository) ProbeTutorialsShape(ctx context.Context) (domain.TutorialsShape, error) {
	query, args, err := psqlbuilder.Select("data_type").
		From("information_schema.columns").
		Where(squirrel.Eq{"table_name": table, "column_name": "tutorials"}).
		Where("table_schema = current_schema()").
		ToSql()
	if err != nil {
		return domain.TutorialsOmitted, fmt.Errorf("%w: ProbeTutorialsShape - build select query: %v", ErrBuildQuery, err)
	}

	var dataType string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&dataType)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.TutorialsOmitted, nil
	}
	if err != nil {
		return domain.TutorialsOmitted, fmt.Errorf("%w: ProbeTutorialsShape - scan data_type: %v", ErrScanRow, err)
	}

	switch strings.ToLower(dataType) {
	case "json", "jsonb":
		return domain.TutorialsJSON, nil
	default:
		return domain.TutorialsText, nil
	}
}

// Get читает настройки. При shape = TutorialsOmitted колонка tutorials не запрашивается.
func (r *Repository) Get(ctx context.Context, shape domain.TutorialsShape) (*domain.SystemSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cols := []string{"panel_name", "logo", "slot_capacity", "updated_at"}
	if shape != domain.TutorialsOmitted {
		cols = append(cols, "tutorials::text")
	}

	query, args, err := psqlbuilder.Select(cols...).
		From(table).
		Where(squirrel.Eq{"id": domain.SettingsID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		settings  domain.SystemSettings
		tutorials sql.NullString
	)
	dest := []interface{}{&settings.PanelName, &settings.Logo, &settings.SlotCapacity, &settings.UpdatedAt}
	if shape != domain.TutorialsOmitted {
		dest = append(dest, &tutorials)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		if pgerrors.IsSchemaMismatch(err) {
			return nil, fmt.Errorf("%w: Get - %v", ErrSchemaMismatch, err)
		}
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	settings.Tutorials = decodeTutorials(tutorials.String)

	return &settings, nil
}

// Upsert сохраняет настройки с ON CONFLICT (id) в заданной форме колонки tutorials.
// Ошибки схемы (нет колонки, не тот тип) возвращаются как ErrSchemaMismatch.
func (r *Repository) Upsert(ctx context.Context, settings *domain.SystemSettings, shape domain.TutorialsShape) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := []string{"id", "panel_name", "logo", "slot_capacity", "updated_at"}
	values := []interface{}{domain.SettingsID, settings.PanelName, settings.Logo, settings.SlotCapacity, squirrel.Expr("NOW()")}
	conflictSet := []string{
		"panel_name = EXCLUDED.panel_name",
		"logo = EXCLUDED.logo",
		"slot_capacity = EXCLUDED.slot_capacity",
		"updated_at = EXCLUDED.updated_at",
	}

	if shape != domain.TutorialsOmitted {
		tutorials := settings.Tutorials
		if tutorials == nil {
			tutorials = []domain.Tutorial{}
		}
		data, err := json.Marshal(tutorials)
		if err != nil {
			return fmt.Errorf("%w: Upsert - %v", ErrEncode, err)
		}

		columns = append(columns, "tutorials")
		if shape == domain.TutorialsJSON {
			values = append(values, squirrel.Expr("?::jsonb", string(data)))
		} else {
			values = append(values, string(data))
		}
		conflictSet = append(conflictSet, "tutorials = EXCLUDED.tutorials")
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(conflictSet, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerrors.IsSchemaMismatch(err) {
			return fmt.Errorf("%w: Upsert(%s) - %v", ErrSchemaMismatch, shape, err)
		}
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// decodeTutorials читает и jsonb, и текст. Старый формат (строка внутри JSON) тоже понимаем.
func decodeTutorials(raw string) []domain.Tutorial {
	tutorials := []domain.Tutorial{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return tutorials
	}

	if err := json.Unmarshal([]byte(raw), &tutorials); err == nil {
		return tutorials
	}

	var nested string
	if err := json.Unmarshal([]byte(raw), &nested); err == nil {
		if err := json.Unmarshal([]byte(nested), &tutorials); err == nil {
			return tutorials
		}
	}

	return []domain.Tutorial{}
}
