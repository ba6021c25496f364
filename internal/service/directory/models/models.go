package models

import (
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

// Request модели

// UserRequest создание или изменение сотрудника
type UserRequest struct {
	ActorRole   string   `json:"-"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// KAMRequest создание или переименование KAM
type KAMRequest struct {
	ActorRole string `json:"-"`
	Name      string `json:"name"`
}

// PackageRequest создание или изменение пакета
type PackageRequest struct {
	ActorRole string  `json:"-"`
	Name      string  `json:"name"`
	Hours     float64 `json:"hours"`
}

// Response модели

// UserResponse сотрудник
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
}

// KAMResponse key account manager
type KAMResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// PackageResponse пакет тренингов
type PackageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Hours     float64   `json:"hours"`
	CreatedAt time.Time `json:"createdAt"`
}

// Конвертеры

func FromDomainUser(u *domain.User) *UserResponse {
	permissions := u.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Permissions: permissions,
		CreatedAt:   u.CreatedAt,
	}
}

func FromDomainUsers(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, FromDomainUser(u))
	}
	return result
}

func FromDomainKAM(k *domain.KAM) *KAMResponse {
	return &KAMResponse{ID: k.ID, Name: k.Name, CreatedAt: k.CreatedAt}
}

func FromDomainKAMs(kams []*domain.KAM) []*KAMResponse {
	result := make([]*KAMResponse, 0, len(kams))
	for _, k := range kams {
		result = append(result, FromDomainKAM(k))
	}
	return result
}

func FromDomainPackage(p *domain.TrainingPackage) *PackageResponse {
	return &PackageResponse{ID: p.ID, Name: p.Name, Hours: p.Hours, CreatedAt: p.CreatedAt}
}

func FromDomainPackages(packages []*domain.TrainingPackage) []*PackageResponse {
	result := make([]*PackageResponse, 0, len(packages))
	for _, p := range packages {
		result = append(result, FromDomainPackage(p))
	}
	return result
}
