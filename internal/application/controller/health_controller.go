package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthController struct {
	api *echo.Group
}

func NewHealthController(api *echo.Group) *HealthController {
	return &HealthController{api: api}
}

// InitHealthRoutes initializes health check routes
func (controller *HealthController) InitHealthRoutes() {
	controller.api.GET("/health", controller.CheckHealth)
}

func (controller *HealthController) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "UP"})
}
