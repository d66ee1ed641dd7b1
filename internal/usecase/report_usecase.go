package usecase

import (
	"context"

	"poolpro/internal/domain/clock"
	"poolpro/internal/domain/entities"
	"poolpro/internal/domain/report"
	"poolpro/internal/usecase/interfaces"
)

type IReportUseCase interface {
	Revenue(ctx context.Context) (report.RevenueReport, error)
	JobPerformance(ctx context.Context) (report.JobPerformanceReport, error)
	CustomerStats(ctx context.Context) (report.CustomerStats, error)
	TechnicianPerformance(ctx context.Context) ([]report.TechnicianPerformanceRow, error)
	FinancialSummary(ctx context.Context) (report.FinancialSummaryReport, error)
	Dashboard(ctx context.Context) (report.DashboardStats, error)
}

// ReportUseCase loads whole collections and hands them to the report
// package. It holds no state between calls.
type ReportUseCase struct {
	customers   interfaces.ICustomerRepository
	technicians interfaces.ITechnicianRepository
	jobs        interfaces.IJobRepository
	quotes      interfaces.IQuoteRepository
	invoices    interfaces.IInvoiceRepository
	alerts      interfaces.IAlertRepository
	clock       clock.Clock
}

var _ IReportUseCase = (*ReportUseCase)(nil)

func NewReportUseCase(
	customers interfaces.ICustomerRepository,
	technicians interfaces.ITechnicianRepository,
	jobs interfaces.IJobRepository,
	quotes interfaces.IQuoteRepository,
	invoices interfaces.IInvoiceRepository,
	alerts interfaces.IAlertRepository,
	clk clock.Clock,
) *ReportUseCase {
	return &ReportUseCase{
		customers:   customers,
		technicians: technicians,
		jobs:        jobs,
		quotes:      quotes,
		invoices:    invoices,
		alerts:      alerts,
		clock:       clk,
	}
}

func (u *ReportUseCase) Revenue(ctx context.Context) (report.RevenueReport, error) {
	invoices, err := u.invoices.List(ctx)
	if err != nil {
		return report.RevenueReport{}, err
	}
	return report.Revenue(invoices), nil
}

func (u *ReportUseCase) JobPerformance(ctx context.Context) (report.JobPerformanceReport, error) {
	jobs, err := u.jobs.List(ctx)
	if err != nil {
		return report.JobPerformanceReport{}, err
	}
	return report.JobPerformance(jobs), nil
}

func (u *ReportUseCase) CustomerStats(ctx context.Context) (report.CustomerStats, error) {
	customers, err := u.customers.List(ctx)
	if err != nil {
		return report.CustomerStats{}, err
	}
	return report.Customers(customers), nil
}

func (u *ReportUseCase) TechnicianPerformance(ctx context.Context) ([]report.TechnicianPerformanceRow, error) {
	techs, err := u.technicians.List(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := u.jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	return report.TechnicianPerformance(techs, jobs), nil
}

func (u *ReportUseCase) FinancialSummary(ctx context.Context) (report.FinancialSummaryReport, error) {
	invoices, err := u.invoices.List(ctx)
	if err != nil {
		return report.FinancialSummaryReport{}, err
	}
	quotes, err := u.quotes.List(ctx)
	if err != nil {
		return report.FinancialSummaryReport{}, err
	}
	return report.FinancialSummary(invoices, quotes, entities.DateOf(u.clock.Now())), nil
}

func (u *ReportUseCase) Dashboard(ctx context.Context) (report.DashboardStats, error) {
	customers, err := u.customers.List(ctx)
	if err != nil {
		return report.DashboardStats{}, err
	}
	jobs, err := u.jobs.List(ctx)
	if err != nil {
		return report.DashboardStats{}, err
	}
	alerts, err := u.alerts.List(ctx)
	if err != nil {
		return report.DashboardStats{}, err
	}
	invoices, err := u.invoices.List(ctx)
	if err != nil {
		return report.DashboardStats{}, err
	}
	quotes, err := u.quotes.List(ctx)
	if err != nil {
		return report.DashboardStats{}, err
	}
	return report.Dashboard(customers, jobs, alerts, invoices, quotes, entities.DateOf(u.clock.Now())), nil
}
