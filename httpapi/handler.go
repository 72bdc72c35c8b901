package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryotarai/sepconfig/storage"
	"github.com/sirupsen/logrus"
)

// Handler serves the stored apply records read-only.
type Handler struct {
	Storage storage.Storage
	Logger  *logrus.Logger
}

func NewHandler(s storage.Storage, logger *logrus.Logger) *Handler {
	return &Handler{
		Storage: s,
		Logger:  logger,
	}
}

func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/targets", h.handleTargetsGet)
	r.GET("/targets/:id", h.handleTargetGet)
	return r
}

func (h *Handler) Run(addr string) error {
	h.Logger.Infof("status API listening on %s", addr)
	return h.Router().Run(addr)
}

func (h *Handler) handleTargetsGet(c *gin.Context) {
	records, err := h.Storage.ListRecords()
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) handleTargetGet(c *gin.Context) {
	id := c.Param("id")
	r, err := h.Storage.GetRecord(id)
	if err != nil {
		h.error(c, err)
		return
	}
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "target not found", "target": id})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) error(c *gin.Context, err error) {
	h.Logger.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
