package handler

import (
	"net/http"
	"strconv"

	"geoas_backend/internal/violations/service"
	"geoas_backend/internal/violations/transport"
	"geoas_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/violations", h.Submit)
	rg.GET("/violations", h.List)
}

// Submit accepts a multipart violation report: a description field and a
// photo file. The photo's EXIF position, when present, places the report on
// the map.
func (h *Handler) Submit(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "photo file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "failed to open photo")
		return
	}
	defer func() { _ = file.Close() }()

	created, err := h.svc.Submit(c.Request.Context(), service.Report{
		Description: c.PostForm("description"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Photo:       file,
		PhotoSize:   fileHeader.Size,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toResponse(service.ListedViolation{Violation: created})})
}

// List returns recent reports with presigned photo URLs.
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	violations, err := h.svc.List(c.Request.Context(), limit)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.ViolationResponse, 0, len(violations))
	for _, v := range violations {
		out = append(out, toResponse(v))
	}
	httpkit.OK(c, out)
}

func toResponse(v service.ListedViolation) transport.ViolationResponse {
	return transport.ViolationResponse{
		ID:              v.ID.String(),
		Description:     v.Description,
		PhotoURL:        v.PhotoURL,
		Latitude:        v.Latitude,
		Longitude:       v.Longitude,
		Inside:          v.Inside,
		ZoneName:        v.ZoneName,
		ProtectionLevel: v.ProtectionLevel,
		CreatedAt:       v.CreatedAt,
	}
}
