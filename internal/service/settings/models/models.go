package models

import (
	"time"

	"github.com/m04kA/SMC-TrainingDesk/internal/domain"
)

// Tutorial элемент раздела обучающих материалов
type Tutorial struct {
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateSettingsRequest частичное обновление: nil-поля не меняются
type UpdateSettingsRequest struct {
	Role         string      `json:"-"`
	PanelName    *string     `json:"panelName,omitempty"`
	Logo         *string     `json:"logo,omitempty"`
	SlotCapacity *int        `json:"slotCapacity,omitempty"`
	Tutorials    *[]Tutorial `json:"tutorials,omitempty"`
}

// Apply накладывает изменения на текущие настройки
func (r *UpdateSettingsRequest) Apply(current domain.SystemSettings) domain.SystemSettings {
	next := current
	if r.PanelName != nil {
		next.PanelName = *r.PanelName
	}
	if r.Logo != nil {
		next.Logo = *r.Logo
	}
	if r.SlotCapacity != nil {
		next.SlotCapacity = *r.SlotCapacity
	}
	if r.Tutorials != nil {
		next.Tutorials = make([]domain.Tutorial, 0, len(*r.Tutorials))
		for _, t := range *r.Tutorials {
			next.Tutorials = append(next.Tutorials, domain.Tutorial{Title: t.Title, URL: t.URL, Description: t.Description})
		}
	}
	return next
}

// SettingsResponse настройки системы
type SettingsResponse struct {
	PanelName      string     `json:"panelName"`
	Logo           string     `json:"logo"`
	SlotCapacity   int        `json:"slotCapacity"`
	Tutorials      []Tutorial `json:"tutorials"`
	TutorialsShape string     `json:"tutorialsStorage"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует настройки в ответ
func FromDomainSettings(s domain.SystemSettings, shape domain.TutorialsShape) *SettingsResponse {
	resp := &SettingsResponse{
		PanelName:      s.PanelName,
		Logo:           s.Logo,
		SlotCapacity:   s.SlotCapacity,
		Tutorials:      make([]Tutorial, 0, len(s.Tutorials)),
		TutorialsShape: shape.String(),
	}
	for _, t := range s.Tutorials {
		resp.Tutorials = append(resp.Tutorials, Tutorial{Title: t.Title, URL: t.URL, Description: t.Description})
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
