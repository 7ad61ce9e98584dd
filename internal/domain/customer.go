package domain

import "time"

// Customer клиент салона. UserID пуст для клиентов, записанных администратором
type Customer struct {
	ID        int64
	ShopID    int64
	UserID    *int64
	FullName  string
	Phone     string
	Email     *string
	Notes     *string
	CreatedAt time.Time
}

// IsOwnedBy проверяет, что карточка клиента принадлежит пользователю
func (c *Customer) IsOwnedBy(userID int64) bool {
	return c.UserID != nil && *c.UserID == userID
}

// CustomerStats агрегаты по истории клиента
type CustomerStats struct {
	Visits      int
	TotalSpent  float64
	TotalPoints int
	LastVisitAt *time.Time
}
