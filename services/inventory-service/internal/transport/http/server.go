package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/projjWalroy/Bookify/services/inventory-service/internal/domain"
	"github.com/projjWalroy/Bookify/services/inventory-service/internal/repository"
	"github.com/projjWalroy/Bookify/services/inventory-service/internal/service"
)

type Server struct {
	svc *service.InventorySvc
}

func NewServer(svc *service.InventorySvc) *Server {
	return &Server{svc: svc}
}

func (s *Server) Register(r *gin.Engine) {
	v1 := r.Group("/v1/inventory")
	v1.GET("/events", s.listEvents)
	v1.GET("/events/:id", s.getEvent)
	v1.PUT("/events/:id/capacity", s.commitCapacity)
	v1.GET("/venues/:id", s.getVenue)
	v1.POST("/events", s.createEvent)
	v1.POST("/venues", s.createVenue)
}

type eventResponse struct {
	EventID          string         `json:"event_id"`
	Event            string         `json:"event"`
	LeftCapacity     int64          `json:"left_capacity"`
	TicketPriceCents int64          `json:"ticket_price_cents"`
	Venue            *venueResponse `json:"venue,omitempty"`
}

type venueResponse struct {
	VenueID       string `json:"venue_id"`
	VenueName     string `json:"venue_name"`
	TotalCapacity int64  `json:"total_capacity"`
}

func toEventResponse(v *service.EventView) eventResponse {
	out := eventResponse{
		EventID:          v.Event.ID,
		Event:            v.Event.Name,
		LeftCapacity:     v.Event.LeftCapacity,
		TicketPriceCents: v.Event.TicketPriceCents,
	}
	if v.Venue != nil {
		out.Venue = &venueResponse{VenueID: v.Venue.ID, VenueName: v.Venue.Name, TotalCapacity: v.Venue.TotalCapacity}
	}
	return out
}

// GET /v1/inventory/events/:id
func (s *Server) getEvent(c *gin.Context) {
	v, err := s.svc.Event(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toEventResponse(v))
}

// GET /v1/inventory/events?page=0&page_size=20
func (s *Server) listEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	list, err := s.svc.ListEvents(c.Request.Context(), int32(page), int32(size))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]eventResponse, 0, len(list))
	for i := range list {
		out = append(out, toEventResponse(&service.EventView{Event: &list[i]}))
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

// GET /v1/inventory/venues/:id
func (s *Server) getVenue(c *gin.Context) {
	v, err := s.svc.Venue(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "venue_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, venueResponse{VenueID: v.ID, VenueName: v.Name, TotalCapacity: v.TotalCapacity})
}

// PUT /v1/inventory/events/:id/capacity — the fulfillment worker's commit.
// booking_id keys the decrement so retries of the same booking apply once.
// 409 sold_out and 404 event_not_found are definitive rejections; 5xx means
// the caller should retry.
func (s *Server) commitCapacity(c *gin.Context) {
	var in struct {
		BookingID   string `json:"booking_id" binding:"required"`
		TicketCount int64  `json:"ticket_count" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.svc.Commit(c.Request.Context(), c.Param("id"), in.BookingID, in.TicketCount)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "committed"})
	case errors.Is(err, repository.ErrSoldOut):
		c.JSON(http.StatusConflict, gin.H{"error": "sold_out"})
	case errors.Is(err, repository.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event_not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// POST /v1/inventory/events
func (s *Server) createEvent(c *gin.Context) {
	var in struct {
		Name             string `json:"name" binding:"required"`
		VenueID          string `json:"venue_id"`
		LeftCapacity     int64  `json:"left_capacity" binding:"gte=0"`
		TicketPriceCents int64  `json:"ticket_price_cents" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev, err := s.svc.CreateEvent(c.Request.Context(), domain.EventInventory{
		Name: in.Name, VenueID: in.VenueID, LeftCapacity: in.LeftCapacity, TicketPriceCents: in.TicketPriceCents,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toEventResponse(&service.EventView{Event: ev}))
}

// POST /v1/inventory/venues
func (s *Server) createVenue(c *gin.Context) {
	var in struct {
		Name          string `json:"name" binding:"required"`
		TotalCapacity int64  `json:"total_capacity" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := s.svc.CreateVenue(c.Request.Context(), domain.Venue{Name: in.Name, TotalCapacity: in.TotalCapacity})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, venueResponse{VenueID: v.ID, VenueName: v.Name, TotalCapacity: v.TotalCapacity})
}
