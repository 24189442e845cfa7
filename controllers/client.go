// controllers/client.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vetdesk-backend/services"
)

type ClientController struct {
	roster *services.RosterService
}

func NewClientController(roster *services.RosterService) *ClientController {
	return &ClientController{roster: roster}
}

// Roster lists active clients with pet/appointment counts. Rows whose counts
// could not be computed come back zeroed and flagged, not dropped.
func (cc *ClientController) Roster(c *gin.Context) {
	entries, err := cc.roster.ListRoster(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
