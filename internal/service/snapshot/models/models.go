package models

import (
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
	bookingsModels "github.com/m04kA/SMC-TrainingDesk/internal/service/bookings/models"
	directoryModels "github.com/m04kA/SMC-TrainingDesk/internal/service/directory/models"
	settingsModels "github.com/m04kA/SMC-TrainingDesk/internal/service/settings/models"
	"github.com/m04kA/SMC-TrainingDesk/pkg/types"
)

// SlotResponse сохранённый слот без подсчёта мест
type SlotResponse struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	IsActive bool   `json:"isActive"`
	Capacity int    `json:"capacity"`
}

// DashboardResponse снимок дашборда
type DashboardResponse struct {
	Bookings    []*bookingsModels.BookingResponse  `json:"bookings"`
	Users       []*directoryModels.UserResponse    `json:"users"`
	KAMs        []*directoryModels.KAMResponse     `json:"kams"`
	Packages    []*directoryModels.PackageResponse `json:"packages"`
	Slots       []*SlotResponse                    `json:"slots"`
	Settings    *settingsModels.SettingsResponse   `json:"settings"`
	Errors      map[string]string                  `json:"errors,omitempty"`
	RefreshedAt time.Time                          `json:"refreshedAt"`
}

// FromDomainSnapshot собирает ответ из коллекций снимка
func FromDomainSnapshot(
	bookings []*domain.TrainingBooking,
	users []*domain.User,
	kams []*domain.KAM,
	packages []*domain.TrainingPackage,
	slots []*domain.TrainingSlot,
	settings domain.SystemSettings,
	shape domain.TutorialsShape,
	errors map[string]string,
	refreshedAt time.Time,
) *DashboardResponse {
	resp := &DashboardResponse{
		Bookings:    make([]*bookingsModels.BookingResponse, 0, len(bookings)),
		Users:       directoryModels.FromDomainUsers(users),
		KAMs:        directoryModels.FromDomainKAMs(kams),
		Packages:    directoryModels.FromDomainPackages(packages),
		Slots:       make([]*SlotResponse, 0, len(slots)),
		Settings:    settingsModels.FromDomainSettings(settings, shape),
		Errors:      errors,
		RefreshedAt: refreshedAt,
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, bookingsModels.FromDomainBooking(b))
	}
	for _, slot := range slots {
		display := slot.Time
		if ts, err := types.NewTimeStringFromString(slot.Time); err == nil {
			display = ts.Display()
		}
		resp.Slots = append(resp.Slots, &SlotResponse{
			ID:       slot.ID,
			Date:     slot.Date,
			Time:     display,
			IsActive: slot.IsActive,
			Capacity: slot.Capacity,
		})
	}

	return resp
}
