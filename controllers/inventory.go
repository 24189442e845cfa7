// controllers/inventory.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vetdesk-backend/services"
	"vetdesk-backend/utils"
)

type InventoryController struct {
	inventory *services.InventoryService
}

func NewInventoryController(inventory *services.InventoryService) *InventoryController {
	return &InventoryController{inventory: inventory}
}

type AdjustInventoryInput struct {
	Adjustments []services.Adjustment `json:"adjustments" binding:"required,min=1"`
}

// Adjust applies a batch of stock deltas and always answers with the
// per-item outcome list, failed entries included.
func (ic *InventoryController) Adjust(c *gin.Context) {
	var input AdjustInventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	results := ic.inventory.AdjustBatch(c.Request.Context(), input.Adjustments)

	allApplied := true
	for _, r := range results {
		if !r.Applied {
			allApplied = false
			break
		}
	}
	status := http.StatusOK
	if !allApplied {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"results": results})
}

func (ic *InventoryController) ListProducts(c *gin.Context) {
	products, err := ic.inventory.ListActiveProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
