package usecase

import (
	"context"
	"errors"
	"testing"

	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	mock_interfaces "poolpro/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func routeBook() []entities.Customer {
	return []entities.Customer{
		{ID: "cust-1", Name: "John Anderson", Status: entities.CustomerStatusActive, ServiceDay: entities.Monday, RoutePosition: 1},
		{ID: "cust-2", Name: "Sarah Mitchell", Status: entities.CustomerStatusActive, ServiceDay: entities.Monday, RoutePosition: 2},
		{ID: "cust-6", Name: "Gone Away", Status: entities.CustomerStatusInactive, ServiceDay: entities.Monday, RoutePosition: 3},
	}
}

func TestCustomerUseCase_Create_RouteSlot(t *testing.T) {
	t.Run("taken slot rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		uc := NewCustomerUseCase(repo, clock.Fixed(testNow), nil)

		repo.EXPECT().List(gomock.Any()).Return(routeBook(), nil)

		_, err := uc.Create(context.Background(), CustomerInput{Name: "New Neighbor", ServiceDay: entities.Monday, RoutePosition: 1})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("slot of an inactive customer is free", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		uc := NewCustomerUseCase(repo, clock.Fixed(testNow), nil)

		repo.EXPECT().List(gomock.Any()).Return(routeBook(), nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) { return c, nil },
		)

		c, err := uc.Create(context.Background(), CustomerInput{Name: "New Neighbor", ServiceDay: entities.Monday, RoutePosition: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Status != entities.CustomerStatusActive {
			t.Fatalf("expected default status active, got %s", c.Status)
		}
	})

	t.Run("unassigned position skips the check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		uc := NewCustomerUseCase(repo, clock.Fixed(testNow), nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) { return c, nil },
		)

		if _, err := uc.Create(context.Background(), CustomerInput{Name: "New Neighbor", ServiceDay: entities.Monday}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestCustomerUseCase_Update(t *testing.T) {
	t.Run("moving onto a taken slot rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		uc := NewCustomerUseCase(repo, clock.Fixed(testNow), nil)

		repo.EXPECT().GetByID(gomock.Any(), "cust-2").Return(routeBook()[1], nil)
		repo.EXPECT().List(gomock.Any()).Return(routeBook(), nil)

		_, err := uc.Update(context.Background(), "cust-2", CustomerInput{Name: "Sarah Mitchell", ServiceDay: entities.Monday, RoutePosition: 1})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("keeping own slot and status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		uc := NewCustomerUseCase(repo, clock.Fixed(testNow), nil)

		paused := routeBook()[1]
		paused.Status = entities.CustomerStatusPaused
		repo.EXPECT().GetByID(gomock.Any(), "cust-2").Return(paused, nil)
		repo.EXPECT().List(gomock.Any()).Return(routeBook(), nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Customer) (entities.Customer, error) { return c, nil },
		)

		c, err := uc.Update(context.Background(), "cust-2", CustomerInput{Name: "Sarah M.", ServiceDay: entities.Monday, RoutePosition: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Status != entities.CustomerStatusPaused || c.Name != "Sarah M." {
			t.Fatalf("unexpected customer: %+v", c)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockICustomerRepository(ctrl)
		uc := NewCustomerUseCase(repo, clock.Fixed(testNow), nil)

		repo.EXPECT().GetByID(gomock.Any(), "cust-2").Return(routeBook()[1], nil)

		_, err := uc.Update(context.Background(), "cust-2", CustomerInput{Name: "Sarah", Status: "archived"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
