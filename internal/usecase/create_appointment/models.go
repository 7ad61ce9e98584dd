package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Principal  domain.Principal // Кто записывает
	ShopID     int64            // ID салона
	CustomerID *int64           // Обязателен для сотрудников; клиент записывает только себя
	ServiceID  int64            // ID услуги
	StaffID    *int64           // Мастер (опционально)
	Date       time.Time        // Дата визита (без времени)
	StartTime  types.TimeString // Время начала, например "10:00"
	Notes      *string          // Заметки (опционально)
}
