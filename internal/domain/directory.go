package domain

import "time"

// Роли пользователей. Проверки ролей носят рекомендательный характер.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User сотрудник с переключателями прав
type User struct {
	ID          string
	Name        string
	Email       string
	Role        string
	Permissions []string
	CreatedAt   time.Time
}

// IsAdmin администратор
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// KAM key account manager - просто имя, не учётная запись
type KAM struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// TrainingPackage пакет тренингов
type TrainingPackage struct {
	ID        string
	Name      string
	Hours     float64
	CreatedAt time.Time
}
