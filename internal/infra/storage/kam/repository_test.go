package kam

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

func TestGetAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, created_at FROM kams ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow("k1", "Budi", time.Now()).
			AddRow("k2", "Rina", time.Now()))

	kams, err := NewRepository(db).GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, kams, 2)
	assert.Equal(t, "Rina", kams[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_NameTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO kams`).WillReturnError(&pq.Error{Code: "23505"})

	_, err = NewRepository(db).Create(context.Background(), &domain.KAM{ID: "k1", Name: "Rina"})

	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestRename_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE kams SET name = \$1 WHERE id = \$2`).
		WithArgs("Rina S.", "k404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRepository(db).Rename(context.Background(), "k404", "Rina S.")

	assert.ErrorIs(t, err, ErrKAMNotFound)
}
