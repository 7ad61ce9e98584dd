package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopID    int64     // ID салона
	ServiceID int64     // ID услуги, задаёт длительность слота
	StaffID   *int64    // Мастер; nil - любой активный мастер салона
	Date      time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	ShopID    int64     // ID салона
	ServiceID int64     // ID услуги
	StaffID   *int64    // Мастер из запроса
	Slots     []Slot    // Свободные слоты
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время окончания визита
	DurationMinutes int              // Длительность услуги в минутах
	AvailableSpots  int              // Количество свободных мастеров
	TotalSpots      int              // Общее количество мастеров
	StaffIDs        []int64          // Свободные мастера
}
