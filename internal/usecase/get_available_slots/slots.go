package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// generateTimeSlots генерирует начала слотов от открытия салона с шагом step.
// Визит длительностью duration должен закончиться не позже закрытия.
// На сегодня отбрасываются слоты раньше now + minBookingNoticeMinutes.
func generateTimeSlots(
	shop *domain.Shop,
	step int,
	duration int,
	requestDate time.Time,
	now time.Time,
	minBookingNoticeMinutes int,
) []types.TimeString {
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}
	}

	allSlots := make([]types.TimeString, 0)
	current := shop.OpenTime

	for current.IsBefore(shop.CloseTime) {
		end, err := current.AddMinutes(duration)
		if err != nil || end.IsAfter(shop.CloseTime) {
			break
		}

		allSlots = append(allSlots, current)

		current, err = current.AddMinutes(step)
		if err != nil {
			break
		}
	}

	if !isSameDay(requestDate, now) {
		return allSlots
	}

	minAllowed := now.Add(time.Duration(minBookingNoticeMinutes) * time.Minute)

	available := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.On(dateOnly(requestDate)).Before(minAllowed) {
			available = append(available, slot)
		}
	}

	return available
}

// staffSchedule активные записи одного мастера на день
type staffSchedule struct {
	staffID int64
	busy    []*domain.Appointment
}

// calculateAvailability для каждого слота собирает свободных мастеров.
// Слоты, где свободных нет, отбрасываются. Если мастеров в салоне нет,
// слот считается свободным без привязки к мастеру.
func calculateAvailability(slots []types.TimeString, duration int, schedules []staffSchedule) []Slot {
	result := make([]Slot, 0, len(slots))

	for _, start := range slots {
		end, err := start.AddMinutes(duration)
		if err != nil {
			continue
		}

		free := make([]int64, 0, len(schedules))
		for _, sch := range schedules {
			if !isBusy(start, duration, sch.busy) {
				free = append(free, sch.staffID)
			}
		}

		if len(schedules) > 0 && len(free) == 0 {
			continue
		}

		result = append(result, Slot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: duration,
			AvailableSpots:  len(free),
			TotalSpots:      len(schedules),
			StaffIDs:        free,
		})
	}

	return result
}

// isBusy проверяет пересечение слота с активными записями мастера.
// Запись, заканчивающаяся ровно в начале слота, пересечением не считается.
func isBusy(start types.TimeString, duration int, appointments []*domain.Appointment) bool {
	for _, a := range appointments {
		if a.IsActive() && a.Overlaps(start, duration) {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// wallClock переносит время в UTC без сдвига: даты записей хранятся без часового пояса
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}
