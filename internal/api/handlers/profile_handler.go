package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gigfin/gigfin/internal/models"
	"github.com/gigfin/gigfin/internal/services"
	"github.com/gigfin/gigfin/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	u, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

type UpdateProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Role           *string `json:"role,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	DisabledStatus *string `json:"disabled_status,omitempty"`
	Bio            *string `json:"bio,omitempty"`

	Company *json.RawMessage `json:"company,omitempty"`

	Skills       *[]string `json:"skills,omitempty"`
	ResumeURL    *string   `json:"resume_url,omitempty"`
	PortfolioURL *string   `json:"portfolio_url,omitempty"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Update", "invalid request body", err))
		return
	}

	// Load existing (if not found => create new)
	existing, err := h.svc.GetMe(c.Request.Context(), userID)
	if err != nil {
		if utils.IsCode(err, utils.CodeNotFound) {
			existing = &models.User{UserID: userID, Role: models.RoleSeeker}
		} else {
			writeError(c, err)
			return
		}
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.Role != nil {
		existing.Role = models.UserRole(*req.Role)
	}
	if req.Phone != nil {
		existing.Phone = *req.Phone
	}
	if req.DisabledStatus != nil {
		existing.DisabledStatus = *req.DisabledStatus
	}
	if req.Bio != nil {
		existing.Bio = *req.Bio
	}
	if req.Company != nil {
		existing.Company = datatypes.JSON(*req.Company)
	}
	if req.Skills != nil {
		existing.Skills = *req.Skills
	}
	if req.ResumeURL != nil {
		existing.ResumeURL = *req.ResumeURL
	}
	if req.PortfolioURL != nil {
		existing.PortfolioURL = *req.PortfolioURL
	}

	if err := h.svc.Upsert(c.Request.Context(), existing); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, existing)
}
