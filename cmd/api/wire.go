package main

import (
	"context"
	"fmt"

	"poolpro/internal/adapter/http/routes"
	"poolpro/internal/adapter/persistence/memory"
	"poolpro/internal/adapter/persistence/repository"
	"poolpro/internal/domain/alerting"
	"poolpro/internal/domain/clock"
	"poolpro/internal/infrastructure/config"
	"poolpro/internal/infrastructure/database"
	"poolpro/internal/infrastructure/payments"
	"poolpro/internal/usecase"
	"poolpro/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type repositories struct {
	customers   interfaces.ICustomerRepository
	technicians interfaces.ITechnicianRepository
	jobs        interfaces.IJobRepository
	quotes      interfaces.IQuoteRepository
	invoices    interfaces.IInvoiceRepository
	payments    interfaces.IInvoicePaymentRepository
	routes      interfaces.IRouteRepository
	alerts      interfaces.IAlertRepository
}

func buildRepositories(ctx context.Context, cfg config.Config, clk clock.Clock, logger *zap.Logger) (repositories, error) {
	if cfg.StorageBackend == config.StorageDynamoDB {
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return repositories{}, fmt.Errorf("connect dynamodb: %w", err)
		}
		names := repository.NewTableNames(cfg.DynamoDB.TablePrefix)
		if err := repository.EnsureTables(ctx, ddb, names, logger); err != nil {
			return repositories{}, fmt.Errorf("ensure tables: %w", err)
		}
		logger.Info("using dynamodb storage", zap.String("table_prefix", cfg.DynamoDB.TablePrefix))
		return repositories{
			customers:   repository.NewCustomerDynamoRepository(ddb, names.Customers),
			technicians: repository.NewTechnicianDynamoRepository(ddb, names.Technicians),
			jobs:        repository.NewJobDynamoRepository(ddb, names.Jobs),
			quotes:      repository.NewQuoteDynamoRepository(ddb, names.Quotes),
			invoices:    repository.NewInvoiceDynamoRepository(ddb, names.Invoices),
			payments:    repository.NewInvoicePaymentDynamoRepository(ddb, names.InvoicePayments),
			routes:      repository.NewRouteDynamoRepository(ddb, names.Routes),
			alerts:      repository.NewAlertDynamoRepository(ddb, names.Alerts),
		}, nil
	}

	mem := memory.New()
	if cfg.SeedData {
		if err := memory.Seed(ctx, mem, clk.Now()); err != nil {
			return repositories{}, fmt.Errorf("seed data: %w", err)
		}
		logger.Info("loaded sample data")
	}
	logger.Info("using in-memory storage")
	return repositories{
		customers:   mem.Customers,
		technicians: mem.Technicians,
		jobs:        mem.Jobs,
		quotes:      mem.Quotes,
		invoices:    mem.Invoices,
		payments:    mem.Payments,
		routes:      mem.Routes,
		alerts:      mem.Alerts,
	}, nil
}

func buildUseCases(ctx context.Context, cfg config.Config, logger *zap.Logger) (routes.UseCases, error) {
	clk := clock.System()
	repos, err := buildRepositories(ctx, cfg, clk, logger)
	if err != nil {
		return routes.UseCases{}, err
	}

	policy := usecase.BillingPolicy{
		NetDays:           cfg.Billing.NetDays,
		TaxRate:           cfg.Billing.TaxRate,
		QuoteValidityDays: cfg.Billing.QuoteValidityDays,
	}

	var gateway interfaces.IPaymentGateway
	if cfg.Payments.AccessToken != "" {
		mp, err := payments.NewMercadoPagoGateway(cfg.Payments.AccessToken, logger)
		if err != nil {
			logger.Warn("mercado pago gateway not configured", zap.Error(err))
		} else {
			gateway = mp
		}
	}

	hooks := usecase.NewWorkflowHooks(repos.customers, repos.technicians, repos.jobs, repos.invoices, policy, clk, logger)
	invoices := usecase.NewInvoiceUseCase(repos.invoices, repos.customers, policy, clk, logger)

	return routes.UseCases{
		Customers:   usecase.NewCustomerUseCase(repos.customers, clk, logger),
		Technicians: usecase.NewTechnicianUseCase(repos.technicians, clk, logger),
		Jobs:        usecase.NewJobUseCase(repos.jobs, repos.customers, repos.technicians, hooks, clk, logger),
		Quotes:      usecase.NewQuoteUseCase(repos.quotes, repos.customers, hooks, policy, clk, logger),
		Invoices:    invoices,
		Payments: usecase.NewInvoicePaymentUseCase(repos.payments, repos.invoices, gateway, usecase.PaymentSettings{
			Mock:            cfg.Payments.Mock,
			Sandbox:         cfg.Payments.Sandbox(),
			TestPayerEmail:  cfg.Payments.TestPayerEmail,
			TestPayerUserID: cfg.Payments.TestPayerUserID,
		}, clk, logger),
		Routes:  usecase.NewRouteUseCase(repos.routes, repos.customers, repos.technicians, clk, logger),
		Alerts:  usecase.NewAlertUseCase(repos.alerts, repos.customers, repos.jobs, repos.technicians, alerting.Default(), clk, logger),
		Reports: usecase.NewReportUseCase(repos.customers, repos.technicians, repos.jobs, repos.quotes, repos.invoices, repos.alerts, clk),
	}, nil
}
