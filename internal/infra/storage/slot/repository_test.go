package slot

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

func TestGetByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, date, time, is_active, capacity FROM training_slots WHERE date = \$1`).
		WithArgs("2024-06-10").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("s1", "2024-06-10", "09:00 AM", true, 3).
			AddRow("s2", "2024-06-10", "01:00 PM", false, 1))

	slots, err := NewRepository(db).GetByDate(context.Background(), "2024-06-10")

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "s1", slots[0].ID)
	assert.False(t, slots[1].IsActive)
	assert.False(t, slots[0].IsVirtual)
}

func TestCreateMany_SingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO training_slots \(id,date,time,is_active,capacity\) VALUES \(\$1,\$2,\$3,\$4,\$5\),\(\$6,\$7,\$8,\$9,\$10\)`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err = NewRepository(db).CreateMany(context.Background(), []*domain.TrainingSlot{
		{ID: "virtual-2024-06-10-0", Date: "2024-06-10", Time: "10:00 AM", IsActive: true, Capacity: 2},
		{ID: "virtual-2024-06-10-1", Date: "2024-06-10", Time: "12:00 PM", IsActive: true, Capacity: 2},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO training_slots`).WillReturnError(&pq.Error{Code: "23505"})

	err = NewRepository(db).Create(context.Background(), &domain.TrainingSlot{ID: "s1", Date: "2024-06-10", Time: "10:00 AM", Capacity: 1})

	assert.ErrorIs(t, err, ErrSlotExists)
}

func TestUpdate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE training_slots SET time = \$1, is_active = \$2, capacity = \$3 WHERE date = \$4 AND id = \$5`).
		WithArgs("10:00 AM", false, 2, "2024-06-10", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewRepository(db).Update(context.Background(), &domain.TrainingSlot{ID: "missing", Date: "2024-06-10", Time: "10:00 AM", Capacity: 2})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}
