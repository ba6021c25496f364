package create_public_booking

// SubmissionState состояние попытки отправки заявки
type SubmissionState string

const (
	StateIdle             SubmissionState = "idle"
	StateValidating       SubmissionState = "validating"
	StateSubmitting       SubmissionState = "submitting"
	StateRetryingDegraded SubmissionState = "retrying-degraded"
	StateSuccess          SubmissionState = "success"
	StateFailed           SubmissionState = "failed"
)

// Request модель заявки с публичной страницы
type Request struct {
	Date        string // YYYY-MM-DD
	SlotID      string
	CompanyName string
	PhoneNumber string
	ContactName string // необязательно
	Title       string // тема тренинга, необязательно
	Notes       string // комментарий клиента, необязательно
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID        string // номер заявки, присвоенный БД, иначе сгенерированный
	Date      string
	StartTime string
	Status    string
	State     SubmissionState
	Degraded  bool // сохранено без колонки телефона, телефон только в notes
}
