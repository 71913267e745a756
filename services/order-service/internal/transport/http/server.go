package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/projjWalroy/Bookify/services/order-service/internal/repository"
	"github.com/projjWalroy/Bookify/services/order-service/internal/service"
)

type Server struct {
	svc *service.OrderSvc
}

func NewServer(svc *service.OrderSvc) *Server {
	return &Server{svc: svc}
}

func (s *Server) Register(r *gin.Engine) {
	r.GET("/v1/orders/:id", s.getOrder)
	r.GET("/v1/orders", s.listOrders)
	r.GET("/v1/bookings/:booking_id/order", s.getByBooking)
}

// GET /v1/orders/:id
func (s *Server) getOrder(c *gin.Context) {
	o, err := s.svc.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

// GET /v1/bookings/:booking_id/order
func (s *Server) getByBooking(c *gin.Context) {
	o, err := s.svc.ByBookingID(c.Request.Context(), c.Param("booking_id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

// GET /v1/orders?page=0&page_size=20&customer_id=...&event_id=...
func (s *Server) listOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	list, total, err := s.svc.List(c.Request.Context(), int32(page), int32(size),
		c.Query("customer_id"), c.Query("event_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list, "total": total})
}
