package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "poolpro/docs"
	request "poolpro/internal/adapter/http/dto/request"
	"poolpro/internal/adapter/http/handlers"
	"poolpro/internal/adapter/http/middleware"
	"poolpro/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const PathAPI = "/api"

// UseCases is everything the HTTP layer serves.
type UseCases struct {
	Customers   usecase.ICustomerUseCase
	Technicians usecase.ITechnicianUseCase
	Jobs        usecase.IJobUseCase
	Quotes      usecase.IQuoteUseCase
	Invoices    usecase.IInvoiceUseCase
	Payments    usecase.IInvoicePaymentUseCase
	Routes      usecase.IRouteUseCase
	Alerts      usecase.IAlertUseCase
	Reports     usecase.IReportUseCase
}

// NewRouter wires middleware, swagger and every /api route.
func NewRouter(uc UseCases, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		request.RegisterValidations(v)
	}

	router := gin.New()
	setMiddlewares(router, logger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(PathAPI)
	addPingRoutes(api)
	addCustomerRoutes(api, handlers.NewCustomerHandler(uc.Customers), handlers.NewTechnicianHandler(uc.Technicians))
	addOperationsRoutes(api, handlers.NewJobHandler(uc.Jobs), handlers.NewQuoteHandler(uc.Quotes), handlers.NewRouteHandler(uc.Routes))
	addBillingRoutes(api, handlers.NewInvoiceHandler(uc.Invoices), handlers.NewInvoicePaymentHandler(uc.Invoices, uc.Payments, logger))
	addInsightRoutes(api, handlers.NewAlertHandler(uc.Alerts), handlers.NewReportHandler(uc.Reports))
	return router
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger.Named("http")))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, router http.Handler, port string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
