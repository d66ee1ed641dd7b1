package routes

import (
	"poolpro/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathJobs   = "/jobs"
	PathQuotes = "/quotes"
	PathRoutes = "/routes"
)

func addOperationsRoutes(rg *gin.RouterGroup, jobHandler *handlers.JobHandler, quoteHandler *handlers.QuoteHandler, routeHandler *handlers.RouteHandler) {
	jobs := rg.Group(PathJobs)
	{
		jobs.GET("", jobHandler.ListJobs)
		jobs.POST("", jobHandler.CreateJob)
		jobs.GET("/:id", jobHandler.GetJob)
		jobs.PUT("/:id", jobHandler.UpdateJob)
		jobs.POST("/:id/start", jobHandler.StartJob)
		jobs.POST("/:id/complete", jobHandler.CompleteJob)
	}

	quotes := rg.Group(PathQuotes)
	{
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("/:id", quoteHandler.GetQuote)
		quotes.PUT("/:id", quoteHandler.UpdateQuote)
		quotes.POST("/:id/approve", quoteHandler.ApproveQuote)
		quotes.POST("/:id/decline", quoteHandler.DeclineQuote)
	}

	routes := rg.Group(PathRoutes)
	{
		routes.GET("", routeHandler.ListRoutes)
		routes.POST("", routeHandler.CreateRoute)
		routes.GET("/:id", routeHandler.GetRoute)
		routes.POST("/:id/stops", routeHandler.AddStop)
		routes.DELETE("/:id/stops/:stop_id", routeHandler.RemoveStop)
		routes.PUT("/:id/reorder", routeHandler.ReorderStops)
		routes.POST("/:id/stops/:stop_id/start", routeHandler.StartStop)
		routes.POST("/:id/stops/:stop_id/complete", routeHandler.CompleteStop)
	}
}
