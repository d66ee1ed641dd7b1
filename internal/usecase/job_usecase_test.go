package usecase

import (
	"context"
	"errors"
	"testing"

	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	mock_interfaces "poolpro/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func TestJobUseCase_Create(t *testing.T) {
	valid := JobInput{
		CustomerID:    "cust-1",
		Type:          "repair",
		Title:         "Pump Repair",
		ScheduledDate: entities.MustDate("2025-01-22"),
		AssignedTo:    "tech-1",
		EstimatedTime: 60,
		Price:         decimal.RequireFromString("350"),
	}

	t.Run("validation", func(t *testing.T) {
		uc := NewJobUseCase(nil, nil, nil, nil, clock.Fixed(testNow), nil)
		cases := map[string]func(in *JobInput){
			"missing title":     func(in *JobInput) { in.Title = " " },
			"missing date":      func(in *JobInput) { in.ScheduledDate = entities.Date{} },
			"negative estimate": func(in *JobInput) { in.EstimatedTime = -1 },
			"negative price":    func(in *JobInput) { in.Price = decimal.NewFromInt(-1) },
		}
		for name, mutate := range cases {
			in := valid
			mutate(&in)
			if _, err := uc.Create(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
			}
		}
	})

	t.Run("unknown technician", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		techs := mock_interfaces.NewMockITechnicianRepository(ctrl)
		uc := NewJobUseCase(nil, customers, techs, nil, clock.Fixed(testNow), nil)

		customers.EXPECT().GetByID(gomock.Any(), "cust-1").Return(entities.Customer{ID: "cust-1"}, nil)
		techs.EXPECT().GetByID(gomock.Any(), "tech-1").Return(entities.Technician{}, nil)

		if _, err := uc.Create(context.Background(), valid); !errors.Is(err, ErrTechnicianNotFound) {
			t.Fatalf("expected ErrTechnicianNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRepository(ctrl)
		customers := mock_interfaces.NewMockICustomerRepository(ctrl)
		techs := mock_interfaces.NewMockITechnicianRepository(ctrl)
		uc := NewJobUseCase(repo, customers, techs, nil, clock.Fixed(testNow), nil)

		customers.EXPECT().GetByID(gomock.Any(), "cust-1").Return(entities.Customer{ID: "cust-1", Name: "John Anderson"}, nil)
		techs.EXPECT().GetByID(gomock.Any(), "tech-1").Return(entities.Technician{ID: "tech-1"}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Job{})).DoAndReturn(
			func(_ context.Context, j entities.Job) (entities.Job, error) { return j, nil },
		)

		j, err := uc.Create(context.Background(), valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if j.Status != entities.JobStatusScheduled || j.CustomerName != "John Anderson" || j.ID == "" {
			t.Fatalf("unexpected job: %+v", j)
		}
	})
}

func TestJobUseCase_Complete(t *testing.T) {
	inProgress := entities.Job{
		ID: "job-2", CustomerID: "cust-2", Title: "Pump Repair", Status: entities.JobStatusInProgress,
		AssignedTo: "tech-2", Price: decimal.RequireFromString("350"),
	}

	t.Run("negative time", func(t *testing.T) {
		uc := NewJobUseCase(nil, nil, nil, nil, clock.Fixed(testNow), nil)
		if _, err := uc.Complete(context.Background(), "job-2", -5); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("scheduled job cannot complete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRepository(ctrl)
		hooks := mock_interfaces.NewMockIWorkflowHooks(ctrl)
		uc := NewJobUseCase(repo, nil, nil, hooks, clock.Fixed(testNow), nil)

		j := inProgress
		j.Status = entities.JobStatusScheduled
		repo.EXPECT().GetByID(gomock.Any(), "job-2").Return(j, nil)

		if _, err := uc.Complete(context.Background(), "job-2", 30); !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("losing completion never calls hook", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRepository(ctrl)
		hooks := mock_interfaces.NewMockIWorkflowHooks(ctrl)
		uc := NewJobUseCase(repo, nil, nil, hooks, clock.Fixed(testNow), nil)

		repo.EXPECT().GetByID(gomock.Any(), "job-2").Return(inProgress, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(entities.Job{}, ErrConcurrentUpdate)

		if _, err := uc.Complete(context.Background(), "job-2", 30); !errors.Is(err, ErrConcurrentUpdate) {
			t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
		}
	})

	t.Run("hook failure keeps invoice pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRepository(ctrl)
		hooks := mock_interfaces.NewMockIWorkflowHooks(ctrl)
		uc := NewJobUseCase(repo, nil, nil, hooks, clock.Fixed(testNow), nil)

		j := inProgress
		j.AssignedTo = ""
		repo.EXPECT().GetByID(gomock.Any(), "job-2").Return(j, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, j entities.Job) (entities.Job, error) {
				if j.Status != entities.JobStatusCompleted || !j.InvoicePending || j.InvoiceID != "inv-for-job-2" {
					t.Fatalf("unexpected job: %+v", j)
				}
				return j, nil
			},
		)
		hooks.EXPECT().OnJobCompleted(gomock.Any(), gomock.Any()).Return(entities.Invoice{}, errors.New("db"))

		if _, err := uc.Complete(context.Background(), "job-2", 30); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("retry resumes without counting time twice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRepository(ctrl)
		techs := mock_interfaces.NewMockITechnicianRepository(ctrl)
		hooks := mock_interfaces.NewMockIWorkflowHooks(ctrl)
		uc := NewJobUseCase(repo, nil, techs, hooks, clock.Fixed(testNow), nil)

		j := inProgress
		j.Status, j.ActualTime = entities.JobStatusCompleted, 60
		j.InvoiceID, j.InvoicePending, j.Version = "inv-for-job-2", true, 1
		repo.EXPECT().GetByID(gomock.Any(), "job-2").Return(j, nil)
		hooks.EXPECT().OnJobCompleted(gomock.Any(), j).Return(entities.Invoice{ID: "inv-for-job-2"}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, j entities.Job) (entities.Job, error) {
				if j.InvoicePending {
					t.Fatalf("pending mark not cleared: %+v", j)
				}
				return j, nil
			},
		)

		res, err := uc.Complete(context.Background(), "job-2", 60)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Job.InvoiceID != res.Invoice.ID {
			t.Fatalf("job not linked: %+v", res)
		}
	})

	t.Run("success updates technician", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRepository(ctrl)
		techs := mock_interfaces.NewMockITechnicianRepository(ctrl)
		hooks := mock_interfaces.NewMockIWorkflowHooks(ctrl)
		uc := NewJobUseCase(repo, nil, techs, hooks, clock.Fixed(testNow), nil)

		store := func(_ context.Context, j entities.Job) (entities.Job, error) {
			j.Version++
			return j, nil
		}
		gomock.InOrder(
			repo.EXPECT().GetByID(gomock.Any(), "job-2").Return(inProgress, nil),
			repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(store),
			techs.EXPECT().GetByID(gomock.Any(), "tech-2").Return(entities.Technician{ID: "tech-2", CompletedJobs: 1, AvgServiceTime: 40}, nil),
			techs.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, tech entities.Technician) (entities.Technician, error) {
					if tech.CompletedJobs != 2 || tech.AvgServiceTime != 50 {
						t.Fatalf("unexpected technician stats: %+v", tech)
					}
					return tech, nil
				},
			),
			hooks.EXPECT().OnJobCompleted(gomock.Any(), gomock.Any()).Return(entities.Invoice{ID: "inv-for-job-2"}, nil),
			repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(store),
		)

		res, err := uc.Complete(context.Background(), "job-2", 60)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Invoice.ID != "inv-for-job-2" || res.Job.Status != entities.JobStatusCompleted || res.Job.ActualTime != 60 {
			t.Fatalf("unexpected completion: %+v", res)
		}
		if res.Job.InvoicePending || res.Job.InvoiceID != "inv-for-job-2" || res.Job.Version != 2 {
			t.Fatalf("unexpected job: %+v", res.Job)
		}
	})

	t.Run("technician update failure is not fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRepository(ctrl)
		techs := mock_interfaces.NewMockITechnicianRepository(ctrl)
		hooks := mock_interfaces.NewMockIWorkflowHooks(ctrl)
		uc := NewJobUseCase(repo, nil, techs, hooks, clock.Fixed(testNow), nil)

		repo.EXPECT().GetByID(gomock.Any(), "job-2").Return(inProgress, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, j entities.Job) (entities.Job, error) { return j, nil },
		).Times(2)
		techs.EXPECT().GetByID(gomock.Any(), "tech-2").Return(entities.Technician{}, errors.New("db"))
		hooks.EXPECT().OnJobCompleted(gomock.Any(), gomock.Any()).Return(entities.Invoice{ID: "inv-9"}, nil)

		if _, err := uc.Complete(context.Background(), "job-2", 60); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestJobUseCase_Update(t *testing.T) {
	edit := JobInput{
		Type:          "repair",
		Title:         "Pump Seal",
		ScheduledDate: entities.MustDate("2025-01-23"),
		EstimatedTime: 45,
		Price:         decimal.RequireFromString("180"),
	}

	t.Run("started job is not editable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRepository(ctrl)
		uc := NewJobUseCase(repo, nil, nil, nil, clock.Fixed(testNow), nil)

		repo.EXPECT().GetByID(gomock.Any(), "job-2").Return(entities.Job{ID: "job-2", Status: entities.JobStatusInProgress}, nil)

		if _, err := uc.Update(context.Background(), "job-2", edit); !errors.Is(err, entities.ErrNotEditable) {
			t.Fatalf("expected ErrNotEditable, got %v", err)
		}
	})

	t.Run("success keeps customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIJobRepository(ctrl)
		uc := NewJobUseCase(repo, nil, nil, nil, clock.Fixed(testNow), nil)

		repo.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.Job{
			ID: "job-1", CustomerID: "cust-1", CustomerName: "John Anderson", Status: entities.JobStatusScheduled,
		}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, j entities.Job) (entities.Job, error) { return j, nil },
		)

		j, err := uc.Update(context.Background(), "job-1", edit)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if j.Title != "Pump Seal" || j.CustomerID != "cust-1" || !j.Price.Equal(decimal.RequireFromString("180")) {
			t.Fatalf("unexpected job: %+v", j)
		}
	})
}
