package get_shop_appointments

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-SalonService/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	shopID int64,
	staffIDStr string,
	statusStr string,
	dateStr string,
	includeInactiveStr string,
) (*models.GetShopAppointmentsRequest, error) {
	req := &models.GetShopAppointmentsRequest{
		ShopID:          shopID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid staffId value: %w", err)
		}
		req.StaffID = &staffID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	// Дата проверяется сервисом при построении фильтра
	if dateStr != "" {
		req.Date = &dateStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
