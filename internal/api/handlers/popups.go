package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nexconsult/receitanet-bx/internal/models"
	"github.com/nexconsult/receitanet-bx/internal/popup"
	"github.com/nexconsult/receitanet-bx/internal/receitanet"
)

// GetPopups lists the dialogs recognized after a request is submitted
// @Summary List submission outcomes
// @Description List the Receitanet BX dialogs the bot recognizes and how each is handled
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.StandardResponse{data=[]popup.Outcome}
// @Router /popups [get]
func GetPopups(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewSuccessResponse("Submission outcomes", popup.SubmissionCatalog()))
}

// GetSystems lists the supported SPED systems
// @Summary List SPED systems
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.StandardResponse{data=[]string}
// @Router /systems [get]
func GetSystems(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewSuccessResponse("SPED systems", receitanet.Systems()))
}
