package user

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

func TestGetAll_ScansPermissionsArray(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, role, permissions, created_at FROM users ORDER BY name ASC`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("u1", "Ann", "ann@example.com", "admin", []byte(`{bookings,settings}`), time.Now()))

	users, err := NewRepository(db).GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, []string{"bookings", "settings"}, users[0].Permissions)
	assert.True(t, users[0].IsAdmin())
}

func TestCreate_EmailTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pq.Error{Code: "23505"})

	_, err = NewRepository(db).Create(context.Background(), &domain.User{ID: "u1", Name: "Ann", Email: "ann@example.com", Role: domain.RoleStaff})

	assert.ErrorIs(t, err, ErrEmailTaken)
}
