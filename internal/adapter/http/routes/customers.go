package routes

import (
	"poolpro/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathCustomers   = "/customers"
	PathTechnicians = "/technicians"
)

func addCustomerRoutes(rg *gin.RouterGroup, customerHandler *handlers.CustomerHandler, technicianHandler *handlers.TechnicianHandler) {
	customers := rg.Group(PathCustomers)
	{
		customers.GET("", customerHandler.ListCustomers)
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("/stats", customerHandler.CustomerStats)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.PUT("/:id", customerHandler.UpdateCustomer)
		customers.POST("/:id/deactivate", customerHandler.DeactivateCustomer)
		customers.POST("/:id/pools", customerHandler.AddPool)
		customers.GET("/:id/pools/:pool_id/readings", customerHandler.ListReadings)
		customers.POST("/:id/pools/:pool_id/readings", customerHandler.AddReading)
	}

	technicians := rg.Group(PathTechnicians)
	{
		technicians.GET("", technicianHandler.ListTechnicians)
		technicians.POST("", technicianHandler.CreateTechnician)
		technicians.GET("/:id", technicianHandler.GetTechnician)
		technicians.PUT("/:id", technicianHandler.UpdateTechnician)
	}
}
