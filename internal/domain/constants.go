package domain

// Значения по умолчанию
const (
	DefaultSlotCapacity  = 2
	DefaultPanelName     = "Training Dashboard"
	DefaultDurationHours = 2
	SettingsID           = 1
)

// DefaultSlotTimes время слотов для дат без явной настройки
var DefaultSlotTimes = []string{"10:00 AM", "12:00 PM", "03:00 PM", "05:00 PM"}

// Публичная страница
const (
	CategoryPublicRequest = "Public Request"
	PlaceholderTBD        = "TBD"
	PublicPortalUser      = "Public Portal"
	PublicRequestTitle    = "Training Request"
	PublicRequestIDPrefix = "REQ"
	TicketIDPrefix        = "TKT"
)

// Ограничения бизнес-валидации
const (
	MinSlotCapacity     = 1
	MaxSlotCapacity     = 500
	MaxNotesLength      = 2000
	MaxDurationHours    = 24
	MaxPageSize         = 200
	DefaultPageSize     = 25
	MaxBulkDeleteIDs    = 500
	MaxPanelNameLength  = 120
	MaxTutorialsCount   = 100
	MaxClientNameLength = 200
)

// Форматы
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
