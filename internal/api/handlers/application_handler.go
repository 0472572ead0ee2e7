package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gigfin/gigfin/internal/services"
	"github.com/gigfin/gigfin/internal/utils"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// Create handles the multipart POST /applications. The resume rides in the
// "resume" field; unlike the /upload/pdf path it is not restricted to PDFs.
func (h *ApplicationHandler) Create(c *gin.Context) {
	seekerID, ok := requireUserID(c)
	if !ok {
		return
	}

	in := services.CreateApplicationInput{
		SeekerID:            seekerID,
		GigID:               c.PostForm("gig"),
		Name:                c.PostForm("name"),
		Gender:              c.PostForm("gender"),
		DisabilityType:      c.PostForm("disability_type"),
		CoverLetter:         c.PostForm("cover_letter"),
		AccommodationNeeded: c.PostForm("accommodation_needed"),
	}
	if age := c.PostForm("age"); age != "" {
		// a malformed age leaves the field unset rather than storing 0
		if v, err := strconv.Atoi(age); err == nil {
			in.Age = v
		}
	}

	if fh, err := c.FormFile("resume"); err == nil {
		file, err := fh.Open()
		if err != nil {
			writeError(c, utils.E(utils.CodeInternal, "ApplicationHandler.Create", "failed to open upload", err))
			return
		}
		defer file.Close()

		in.Resume = file
		in.FileName = fh.Filename
		in.ContentType = fh.Header.Get("Content-Type")
	}

	app, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	seekerID, ok := requireUserID(c)
	if !ok {
		return
	}

	apps, err := h.svc.ListBySeeker(c.Request.Context(), seekerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) ListByGig(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	apps, err := h.svc.ListByGig(c.Request.Context(), c.Param("gigId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

type ScheduleInterviewRequest struct {
	InterviewDate string `json:"interview_date" binding:"required"`
	Message       string `json:"message" binding:"required"`
}

func (h *ApplicationHandler) ScheduleInterview(c *gin.Context) {
	const op = "ApplicationHandler.ScheduleInterview"

	if _, ok := requireUserID(c); !ok {
		return
	}

	var req ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "interview_date and message are required", err))
		return
	}

	date, err := time.Parse(time.RFC3339, req.InterviewDate)
	if err != nil {
		date, err = time.Parse("2006-01-02", req.InterviewDate)
	}
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid interview_date", err))
		return
	}

	app, err := h.svc.ScheduleInterview(c.Request.Context(), c.Param("applicationId"), date, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
