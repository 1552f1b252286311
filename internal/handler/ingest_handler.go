package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gpstrack/geolife-backend-go/internal/database"
	"github.com/gpstrack/geolife-backend-go/internal/service"
	"github.com/gpstrack/geolife-backend-go/pkg/response"
)

// IngestHandler handles HTTP requests for dataset ingestion
type IngestHandler struct {
	ingestService *service.IngestService
	datasetRoot   string
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingestService *service.IngestService, datasetRoot string) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
		datasetRoot:   datasetRoot,
	}
}

// Ingest handles POST /api/v1/ingest
func (h *IngestHandler) Ingest(c *gin.Context) {
	counts, err := h.ingestService.Run(h.datasetRoot)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, counts)
}

// Reset handles POST /api/v1/reset
func (h *IngestHandler) Reset(c *gin.Context) {
	if err := database.ResetCollections(database.GetDB()); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, nil)
}
