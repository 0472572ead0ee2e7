package handlers

import (
	"net/http"
	"strings"

	"github.com/gigfin/gigfin/internal/models"
	mongorepo "github.com/gigfin/gigfin/internal/repositories/mongo"
	"github.com/gigfin/gigfin/internal/services"
	"github.com/gigfin/gigfin/internal/utils"
	"github.com/gin-gonic/gin"
)

type GigHandler struct {
	svc services.GigService
}

func NewGigHandler(svc services.GigService) *GigHandler {
	return &GigHandler{svc: svc}
}

// CreateGigRequest carries the flat gig attributes. The owner id comes from
// the verified token, never from the body. Required-field checks live in the
// persistence layer.
type CreateGigRequest struct {
	Title            string `json:"title"`
	Company          string `json:"company"`
	LocationType     string `json:"location_type"`
	Location         string `json:"location"`
	Country          string `json:"country"`
	State            string `json:"state"`
	City             string `json:"city"`
	GigType          string `json:"gig_type"`
	Category         string `json:"category"`
	Description      string `json:"description"`
	Requirements     string `json:"requirements"`
	Responsibilities string `json:"responsibilities"`
	Benefits         string `json:"benefits"`
	Salary           string `json:"salary"`
	Hours            string `json:"hours"`
	Deadline         string `json:"deadline"`
	Accommodations   string `json:"accommodations"`
	FlexibleHours    bool   `json:"flexible_hours"`
	AssistiveTech    bool   `json:"assistive_tech"`
}

func (h *GigHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "GigHandler.Create", "invalid request body", err))
		return
	}

	gig := &models.Gig{
		Title:            req.Title,
		Company:          req.Company,
		LocationType:     req.LocationType,
		Location:         req.Location,
		Country:          req.Country,
		State:            req.State,
		City:             req.City,
		Type:             models.GigType(req.GigType),
		Category:         req.Category,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		Salary:           req.Salary,
		Hours:            req.Hours,
		Deadline:         req.Deadline,
		Accommodations:   req.Accommodations,
		FlexibleHours:    req.FlexibleHours,
		AssistiveTech:    req.AssistiveTech,
	}

	created, err := h.svc.Create(c.Request.Context(), userID, gig)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Search handles GET /gigs. Every parameter is optional; types is a
// comma-separated list.
func (h *GigHandler) Search(c *gin.Context) {
	q := mongorepo.GigQuery{
		Country:  c.Query("country"),
		State:    c.Query("state"),
		City:     c.Query("city"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}
	if types := c.Query("types"); types != "" {
		q.Types = strings.Split(types, ",")
	}

	gigs, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gigs)
}

func (h *GigHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	gigs, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gigs)
}

func (h *GigHandler) Get(c *gin.Context) {
	gig, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gig)
}
