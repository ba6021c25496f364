package trainingpackage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

func TestUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE packages SET name = \$1, hours = \$2 WHERE id = \$3`).
		WithArgs("Excel Advanced", 12.5, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewRepository(db).Update(context.Background(), &domain.TrainingPackage{ID: "p1", Name: "Excel Advanced", Hours: 12.5})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NameTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE packages`).WillReturnError(&pq.Error{Code: "23505"})

	err = NewRepository(db).Update(context.Background(), &domain.TrainingPackage{ID: "p1", Name: "Excel"})

	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestDelete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM packages WHERE id = \$1`).
		WithArgs("p404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRepository(db).Delete(context.Background(), "p404")

	assert.ErrorIs(t, err, ErrPackageNotFound)
}
