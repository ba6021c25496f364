package get_available_slots

// Request модель запроса на получение слотов даты
type Request struct {
	Date string // YYYY-MM-DD
}

// Response модель ответа со слотами даты
type Response struct {
	Date         string
	UsesDefaults bool // слоты не настроены, показаны слоты по умолчанию
	Slots        []Slot
}

// Slot слот с подсчётом свободных мест
type Slot struct {
	ID            string
	Time          string // "03:00 PM"
	Capacity      int
	Remaining     int
	IsFull        bool
	IsDeactivated bool
	IsPast        bool // слот сегодняшнего дня, время которого уже прошло
}

// Bookable на слот можно отправить заявку
func (s Slot) Bookable() bool {
	return !s.IsFull && !s.IsDeactivated && !s.IsPast
}
