package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	shopRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/shop"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
)

// Checker проверяет права пользователя в рамках салона.
// Администратор - владелец салона, сотрудник - активный мастер салона,
// клиент - владелец карточки клиента.
type Checker struct {
	shops     ShopRepository
	staff     StaffRepository
	customers CustomerRepository
	logger    Logger
}

// NewChecker создает новый экземпляр проверки прав
func NewChecker(shops ShopRepository, staff StaffRepository, customers CustomerRepository, logger Logger) *Checker {
	return &Checker{
		shops:     shops,
		staff:     staff,
		customers: customers,
		logger:    logger,
	}
}

// Shop получает салон
func (c *Checker) Shop(ctx context.Context, shopID int64) (*domain.Shop, error) {
	shop, err := c.shops.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, shopRepo.ErrShopNotFound) {
			c.logger.Warn("Shop: shop id=%d not found", shopID)
			return nil, ErrShopNotFound
		}
		c.logger.Error("Shop: repository error for shop id=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: Shop - repository error: %v", ErrInternal, err)
	}
	return shop, nil
}

// RequireAdmin разрешает действие только владельцу салона
func (c *Checker) RequireAdmin(ctx context.Context, p domain.Principal, shopID int64) error {
	if !p.IsAdmin() {
		c.logger.Warn("RequireAdmin: user=%d with role=%s is not admin", p.UserID, p.Role)
		return ErrAccessDenied
	}

	shop, err := c.Shop(ctx, shopID)
	if err != nil {
		return err
	}
	if !shop.IsOwner(p.UserID) {
		c.logger.Warn("RequireAdmin: user=%d is not owner of shop=%d", p.UserID, shopID)
		return ErrAccessDenied
	}

	return nil
}

// RequireStaff разрешает действие мастеру салона или его владельцу
func (c *Checker) RequireStaff(ctx context.Context, p domain.Principal, shopID int64) error {
	if !p.IsStaff() {
		c.logger.Warn("RequireStaff: user=%d with role=%s is not staff", p.UserID, p.Role)
		return ErrAccessDenied
	}

	if p.IsAdmin() {
		shop, err := c.Shop(ctx, shopID)
		if err != nil {
			return err
		}
		if shop.IsOwner(p.UserID) {
			return nil
		}
	}

	member, err := c.staff.GetByUserID(ctx, shopID, p.UserID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			c.logger.Warn("RequireStaff: user=%d does not work at shop=%d", p.UserID, shopID)
			return ErrAccessDenied
		}
		c.logger.Error("RequireStaff: repository error for user=%d shop=%d: %v", p.UserID, shopID, err)
		return fmt.Errorf("%w: RequireStaff - repository error: %v", ErrInternal, err)
	}
	if !member.WorksAt(shopID) {
		c.logger.Warn("RequireStaff: staff id=%d is inactive at shop=%d", member.ID, shopID)
		return ErrAccessDenied
	}

	return nil
}

// Customer получает карточку клиента
func (c *Checker) Customer(ctx context.Context, customerID int64) (*domain.Customer, error) {
	customer, err := c.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			c.logger.Warn("Customer: customer id=%d not found", customerID)
			return nil, ErrCustomerNotFound
		}
		c.logger.Error("Customer: repository error for customer id=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: Customer - repository error: %v", ErrInternal, err)
	}
	return customer, nil
}

// RequireCustomer разрешает действие только самому клиенту
func (c *Checker) RequireCustomer(ctx context.Context, p domain.Principal, customerID int64) error {
	if !p.IsCustomer() {
		c.logger.Warn("RequireCustomer: user=%d with role=%s is not a customer", p.UserID, p.Role)
		return ErrAccessDenied
	}

	customer, err := c.Customer(ctx, customerID)
	if err != nil {
		return err
	}
	if !customer.IsOwnedBy(p.UserID) {
		c.logger.Warn("RequireCustomer: user=%d does not own customer id=%d", p.UserID, customerID)
		return ErrAccessDenied
	}

	return nil
}

// RequireCustomerOrStaff клиенту - только своя карточка, сотрудникам - любая карточка салона
func (c *Checker) RequireCustomerOrStaff(ctx context.Context, p domain.Principal, customerID, shopID int64) error {
	if p.IsCustomer() {
		return c.RequireCustomer(ctx, p, customerID)
	}
	return c.RequireStaff(ctx, p, shopID)
}
