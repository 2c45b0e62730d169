package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xChrisxY/orders-service/internal/adapter/http/middleware"
	"github.com/xChrisxY/orders-service/internal/logging"
)

func NewRouter(h *OrderHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "orders-service"})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/orders", h.CreateOrder)
		v1.GET("/orders/:id", h.GetOrderByID)
		v1.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		v1.DELETE("/orders/:id", h.DeleteOrder)
		v1.GET("/users/:user_id/orders", h.GetOrdersByUser)
		v1.GET("/restaurants/:restaurant_id/orders", h.GetOrdersByRestaurant)
	}

	return r
}
