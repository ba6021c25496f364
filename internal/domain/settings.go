package domain

import "time"

// Tutorial элемент раздела обучающих материалов
type Tutorial struct {
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// SystemSettings единственная запись настроек системы (id = SettingsID)
type SystemSettings struct {
	PanelName    string
	Logo         string // data URI или URL
	SlotCapacity int    // вместимость виртуальных слотов
	Tutorials    []Tutorial
	UpdatedAt    time.Time
}

// DefaultSettings настройки, если запись ещё не создана
func DefaultSettings() SystemSettings {
	return SystemSettings{
		PanelName:    DefaultPanelName,
		SlotCapacity: DefaultSlotCapacity,
		Tutorials:    []Tutorial{},
	}
}

// EffectiveSlotCapacity вместимость по умолчанию с защитой от нуля
func (s SystemSettings) EffectiveSlotCapacity() int {
	if s.SlotCapacity <= 0 {
		return DefaultSlotCapacity
	}
	return s.SlotCapacity
}

// TutorialsShape как колонка tutorials хранится в конкретной БД
type TutorialsShape int

const (
	TutorialsJSON    TutorialsShape = iota // jsonb/json
	TutorialsText                          // JSON, сериализованный в text
	TutorialsOmitted                       // колонки нет
)

func (s TutorialsShape) String() string {
	switch s {
	case TutorialsJSON:
		return "json"
	case TutorialsText:
		return "text"
	default:
		return "omitted"
	}
}
