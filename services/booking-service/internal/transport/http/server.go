package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projjWalroy/Bookify/services/booking-service/internal/service"
)

type Server struct {
	svc *service.BookingSvc
}

func NewServer(svc *service.BookingSvc) *Server {
	return &Server{svc: svc}
}

func (s *Server) Register(r *gin.Engine) {
	r.POST("/v1/bookings", s.createBooking)
	r.POST("/v1/customers", s.createCustomer)
	r.GET("/v1/customers/:id", s.getCustomer)
}

// POST /v1/bookings
func (s *Server) createBooking(c *gin.Context) {
	var in struct {
		UserID      string `json:"user_id" binding:"required"`
		EventID     string `json:"event_id" binding:"required"`
		TicketCount int32  `json:"ticket_count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := s.svc.Create(c.Request.Context(), in.UserID, in.EventID, in.TicketCount)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// statusFor maps the intake error taxonomy onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidTicketCount):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrCustomerNotFound), errors.Is(err, service.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInsufficientInventory):
		return http.StatusConflict
	case errors.Is(err, service.ErrPublishFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// POST /v1/customers
func (s *Server) createCustomer(c *gin.Context) {
	var in struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cust, err := s.svc.CreateCustomer(c.Request.Context(), in.Name, in.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cust)
}

// GET /v1/customers/:id
func (s *Server) getCustomer(c *gin.Context) {
	cust, err := s.svc.Customer(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cust)
}
