package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/receitanet-bx/internal/api/middleware"
	"github.com/nexconsult/receitanet-bx/internal/models"
	"github.com/nexconsult/receitanet-bx/internal/receitanet"
	"github.com/nexconsult/receitanet-bx/internal/services"
	"github.com/nexconsult/receitanet-bx/internal/utils"
	"github.com/nexconsult/receitanet-bx/internal/worker"
	"github.com/sirupsen/logrus"
)

// DownloadHandler handles download job requests
type DownloadHandler struct {
	queue  services.QueueInterface
	store  services.JobStoreInterface
	logger *logrus.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(queue services.QueueInterface, store services.JobStoreInterface, logger *logrus.Logger) *DownloadHandler {
	return &DownloadHandler{
		queue:  queue,
		store:  store,
		logger: logger,
	}
}

// respond writes resp with the request id and elapsed time set
func respond(c *gin.Context, status int, resp *models.StandardResponse, start time.Time) {
	resp.SetRequestID(c.GetString(middleware.RequestIDKey))
	resp.SetExecutionTime(time.Since(start))
	c.JSON(status, resp)
}

// validationCode maps a request validation error to its API error code
func validationCode(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidCNPJ):
		return models.ErrorCodeInvalidCNPJ
	case errors.Is(err, utils.ErrInvalidDate):
		return models.ErrorCodeInvalidDate
	case errors.Is(err, receitanet.ErrInvalidRange):
		return models.ErrorCodeInvalidRange
	case errors.Is(err, receitanet.ErrUnknownSystem), errors.Is(err, models.ErrMissingSystem):
		return models.ErrorCodeUnknownSystem
	default:
		return models.ErrorCodeInvalidRequest
	}
}

// CreateDownload handles a new download request
// @Summary Request SPED files
// @Description Queue a Receitanet BX download for a taxpayer, system and date range
// @Tags Downloads
// @Accept json
// @Produce json
// @Param request body models.DownloadRequest true "Download request"
// @Success 202 {object} models.StandardResponse{data=models.Job}
// @Failure 400 {object} models.StandardResponse
// @Failure 429 {object} models.StandardResponse
// @Failure 503 {object} models.StandardResponse
// @Router /downloads [post]
func (h *DownloadHandler) CreateDownload(c *gin.Context) {
	start := time.Now()

	var req models.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest,
			models.NewErrorResponse(models.ErrorCodeInvalidRequest, "Invalid JSON body", err.Error()), start)
		return
	}

	if _, err := receitanet.Validate(&req); err != nil {
		h.logger.WithError(err).Warn("Rejected download request")
		respond(c, http.StatusBadRequest,
			models.NewErrorResponse(validationCode(err), err.Error(), gin.H{"systems": receitanet.Systems()}), start)
		return
	}

	job, err := h.queue.Submit(c.Request.Context(), req)
	switch {
	case errors.Is(err, worker.ErrQueueFull), errors.Is(err, worker.ErrPoolStopped):
		respond(c, http.StatusServiceUnavailable,
			models.NewErrorResponse(models.ErrorCodeQueueFull, err.Error(), nil), start)
		return
	case err != nil:
		h.logger.WithError(err).Error("Failed to queue download")
		respond(c, http.StatusInternalServerError,
			models.NewErrorResponse(models.ErrorCodeInternalError, "Failed to queue download", nil), start)
		return
	}

	c.Header("Location", "/api/v1/downloads/"+job.ID)
	respond(c, http.StatusAccepted, models.NewSuccessResponse("Pedido de download enfileirado", job), start)
}

// GetDownload returns the state of a download job
// @Summary Get a download job
// @Description Get the state and, once finished, the report of a download job
// @Tags Downloads
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.StandardResponse{data=models.Job}
// @Failure 404 {object} models.StandardResponse
// @Router /downloads/{id} [get]
func (h *DownloadHandler) GetDownload(c *gin.Context) {
	start := time.Now()
	id := c.Param("id")

	job, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, services.ErrJobNotFound) {
		respond(c, http.StatusNotFound,
			models.NewErrorResponse(models.ErrorCodeJobNotFound, "Job not found", gin.H{"id": id}), start)
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("job_id", id).Error("Failed to load job")
		respond(c, http.StatusInternalServerError,
			models.NewErrorResponse(models.ErrorCodeInternalError, "Failed to load job", nil), start)
		return
	}

	if !job.Status.Finished() {
		respond(c, http.StatusOK, models.NewWarningResponse("Pedido em processamento", job), start)
		return
	}
	respond(c, http.StatusOK, models.NewSuccessResponse("Pedido finalizado", job), start)
}
