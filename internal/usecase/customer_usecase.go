package usecase

import (
	"context"
	"errors"
	"strings"

	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	"poolpro/internal/domain/query"
	"poolpro/internal/domain/report"
	"poolpro/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrInvalidCustomerID = errors.New("invalid customer id")
	ErrCustomerInactive  = errors.New("customer inactive")
)

type CustomerInput struct {
	Name           string
	Email          string
	Phone          string
	Address        string
	Status         entities.CustomerStatus
	AccountBalance decimal.Decimal
	ServiceDay     entities.Weekday
	RoutePosition  int
	Autopay        bool
}

type PoolInput struct {
	Name      string
	Type      string
	Color     string
	Gallons   int
	Equipment []string
}

// ICustomerUseCase covers the customer book: listing with search and status
// tabs, account edits, pools and their water tests.
type ICustomerUseCase interface {
	List(ctx context.Context, f ListFilter) (ListResult[entities.Customer], error)
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	Create(ctx context.Context, in CustomerInput) (entities.Customer, error)
	Update(ctx context.Context, id string, in CustomerInput) (entities.Customer, error)
	Deactivate(ctx context.Context, id string) (entities.Customer, error)
	AddPool(ctx context.Context, customerID string, in PoolInput) (entities.Pool, error)
	AddReading(ctx context.Context, customerID, poolID string, r entities.ChemReading) (entities.Pool, error)
	ListReadings(ctx context.Context, customerID, poolID string) ([]entities.ChemReading, error)
	Stats(ctx context.Context) (report.CustomerStats, error)
}

type CustomerUseCase struct {
	repo   interfaces.ICustomerRepository
	clock  clock.Clock
	logger *zap.Logger
}

var _ ICustomerUseCase = (*CustomerUseCase)(nil)

func NewCustomerUseCase(repo interfaces.ICustomerRepository, clk clock.Clock, logger *zap.Logger) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, clock: clk, logger: named(logger, "customer.usecase")}
}

func customerStatus(c entities.Customer) entities.CustomerStatus { return c.Status }

func (u *CustomerUseCase) List(ctx context.Context, f ListFilter) (ListResult[entities.Customer], error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return ListResult[entities.Customer]{}, err
	}
	matched := query.Search(all, f.Query, query.CustomerFields)
	return ListResult[entities.Customer]{
		Items:  query.ByStatus(matched, f.Status, customerStatus),
		Counts: query.CountByStatus(matched, entities.CustomerStatuses(), customerStatus),
	}, nil
}

func (u *CustomerUseCase) GetByID(ctx context.Context, id string) (entities.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Customer{}, ErrInvalidCustomerID
	}
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Customer{}, err
	}
	if c.ID == "" {
		return entities.Customer{}, ErrCustomerNotFound
	}
	return c, nil
}

func validateCustomer(in *CustomerInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" {
		return invalid("name is required")
	}
	if in.Status != "" && !in.Status.Valid() {
		return invalid("unknown customer status %q", in.Status)
	}
	if in.ServiceDay != "" && !in.ServiceDay.Valid() {
		return invalid("unknown service day %q", in.ServiceDay)
	}
	if in.RoutePosition < 0 {
		return invalid("route position must not be negative")
	}
	return nil
}

// checkRouteSlot rejects a service day and route position already held by
// another customer still on the books. Position 0 means unassigned.
func (u *CustomerUseCase) checkRouteSlot(ctx context.Context, selfID string, in CustomerInput) error {
	if in.RoutePosition == 0 || in.ServiceDay == "" || in.Status == entities.CustomerStatusInactive {
		return nil
	}
	all, err := u.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, other := range all {
		if other.ID == selfID || other.Status == entities.CustomerStatusInactive {
			continue
		}
		if other.ServiceDay == in.ServiceDay && other.RoutePosition == in.RoutePosition {
			return invalid("route position %d on %s is taken by %s", in.RoutePosition, in.ServiceDay, other.ID)
		}
	}
	return nil
}

func (u *CustomerUseCase) Create(ctx context.Context, in CustomerInput) (entities.Customer, error) {
	if err := validateCustomer(&in); err != nil {
		return entities.Customer{}, err
	}
	if in.Status == "" {
		in.Status = entities.CustomerStatusActive
	}
	if err := u.checkRouteSlot(ctx, "", in); err != nil {
		return entities.Customer{}, err
	}
	now := u.clock.Now()
	c := entities.Customer{
		ID:             newID("cust"),
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		Status:         in.Status,
		AccountBalance: in.AccountBalance,
		ServiceDay:     in.ServiceDay,
		RoutePosition:  in.RoutePosition,
		Autopay:        in.Autopay,
		Pools:          []entities.Pool{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := u.repo.Create(ctx, c)
	if err != nil {
		u.logger.Error("create failed", zap.String("customer_id", c.ID), zap.Error(err))
		return entities.Customer{}, err
	}
	u.logger.Info("customer created", zap.String("customer_id", created.ID))
	return created, nil
}

// Update replaces the editable fields. An omitted status keeps the current
// one.
func (u *CustomerUseCase) Update(ctx context.Context, id string, in CustomerInput) (entities.Customer, error) {
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Customer{}, err
	}
	if err := validateCustomer(&in); err != nil {
		return entities.Customer{}, err
	}
	if in.Status == "" {
		in.Status = c.Status
	}
	if err := u.checkRouteSlot(ctx, c.ID, in); err != nil {
		return entities.Customer{}, err
	}
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.Status = in.Status
	c.AccountBalance = in.AccountBalance
	c.ServiceDay = in.ServiceDay
	c.RoutePosition = in.RoutePosition
	c.Autopay = in.Autopay
	c.UpdatedAt = u.clock.Now()
	return u.save(ctx, c)
}

func (u *CustomerUseCase) Deactivate(ctx context.Context, id string) (entities.Customer, error) {
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Customer{}, err
	}
	c.Deactivate(u.clock.Now())
	u.logger.Info("customer deactivated", zap.String("customer_id", c.ID))
	return u.save(ctx, c)
}

func (u *CustomerUseCase) save(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	updated, err := u.repo.Update(ctx, c)
	if err != nil {
		u.logger.Error("update failed", zap.String("customer_id", c.ID), zap.Error(err))
		return entities.Customer{}, err
	}
	if updated.ID == "" {
		return entities.Customer{}, ErrCustomerNotFound
	}
	return updated, nil
}

func (u *CustomerUseCase) AddPool(ctx context.Context, customerID string, in PoolInput) (entities.Pool, error) {
	c, err := u.GetByID(ctx, customerID)
	if err != nil {
		return entities.Pool{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return entities.Pool{}, invalid("pool name is required")
	}
	if in.Gallons < 0 {
		return entities.Pool{}, invalid("gallons must not be negative")
	}
	p := entities.Pool{
		ID:           newID("pool"),
		Name:         in.Name,
		Type:         strings.TrimSpace(in.Type),
		Color:        strings.TrimSpace(in.Color),
		Gallons:      in.Gallons,
		Equipment:    append([]string{}, in.Equipment...),
		ChemReadings: []entities.ChemReading{},
	}
	c.Pools = append(c.Pools, p)
	c.UpdatedAt = u.clock.Now()
	if _, err := u.save(ctx, c); err != nil {
		return entities.Pool{}, err
	}
	u.logger.Info("pool added", zap.String("customer_id", c.ID), zap.String("pool_id", p.ID))
	return p, nil
}

// validateReading rejects values no test kit can produce.
func validateReading(r entities.ChemReading) error {
	switch {
	case r.FC < 0 || r.FC > 50:
		return invalid("fc out of range")
	case r.PH < 0 || r.PH > 14:
		return invalid("ph out of range")
	case r.TA < 0, r.CH < 0, r.CYA < 0:
		return invalid("ta, ch and cya must not be negative")
	}
	return nil
}

func (u *CustomerUseCase) AddReading(ctx context.Context, customerID, poolID string, r entities.ChemReading) (entities.Pool, error) {
	c, err := u.GetByID(ctx, customerID)
	if err != nil {
		return entities.Pool{}, err
	}
	p, ok := c.Pool(strings.TrimSpace(poolID))
	if !ok {
		return entities.Pool{}, entities.ErrPoolNotFound
	}
	if r.Date.IsZero() {
		r.Date = entities.DateOf(u.clock.Now())
	}
	if err := validateReading(r); err != nil {
		return entities.Pool{}, err
	}
	p.AddReading(r)
	pool := *p
	c.UpdatedAt = u.clock.Now()
	if _, err := u.save(ctx, c); err != nil {
		return entities.Pool{}, err
	}
	u.logger.Info("reading recorded", zap.String("customer_id", c.ID), zap.String("pool_id", pool.ID), zap.Stringer("date", r.Date))
	return pool, nil
}

func (u *CustomerUseCase) ListReadings(ctx context.Context, customerID, poolID string) ([]entities.ChemReading, error) {
	c, err := u.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	p, ok := c.Pool(strings.TrimSpace(poolID))
	if !ok {
		return nil, entities.ErrPoolNotFound
	}
	if p.ChemReadings == nil {
		return []entities.ChemReading{}, nil
	}
	return p.ChemReadings, nil
}

func (u *CustomerUseCase) Stats(ctx context.Context) (report.CustomerStats, error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return report.CustomerStats{}, err
	}
	return report.Customers(all), nil
}
