package greeterserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pingports "github.com/Apurer/go-gin-greeter-api/internal/domains/ping/ports"
)

var errInvalidPingBody = errors.New("request body must be a JSON document")

// PingAPI answers liveness probes.
type PingAPI struct {
	service pingports.Service
}

// NewPingAPI wires dependencies.
func NewPingAPI(service pingports.Service) PingAPI {
	return PingAPI{service: service}
}

// Post /api/v1/ping
// Echo the request body
func (api *PingAPI) EchoPing(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		respondBadRequest(c, errInvalidPingBody)
		return
	}
	reply, err := api.service.Echo(c.Request.Context(), body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, PingResponse{Message: reply.Message, Data: reply.Data})
}

// Get /api/v1/ping
// Liveness probe
func (api *PingAPI) GetPing(c *gin.Context) {
	reply, err := api.service.Status(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: reply.Message})
}
