package domain

// Role роль пользователя
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// IsValid проверяет, что роль известна
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleStaff || r == RoleAdmin
}

// Principal пользователь, от имени которого выполняется запрос.
// Создаётся middleware на каждый запрос и явно передаётся в сервисы.
type Principal struct {
	UserID int64
	Role   Role
}

// IsCustomer клиент салона
func (p Principal) IsCustomer() bool {
	return p.Role == RoleCustomer
}

// IsStaff мастер или администратор
func (p Principal) IsStaff() bool {
	return p.Role == RoleStaff || p.Role == RoleAdmin
}

// IsAdmin администратор (владелец салона)
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
