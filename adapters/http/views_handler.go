package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/linkedin-crm/internal/application/usecase/profile"
	"github.com/khoahotran/linkedin-crm/pkg/logger"
)

// ViewsHandler serves the server-rendered list and detail pages. These
// are read-only and bypass the save pipeline entirely.
type ViewsHandler struct {
	useCase *profileUC.ProfileUseCase
	logger  logger.Logger
}

func NewViewsHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ViewsHandler {
	return &ViewsHandler{
		useCase: uc,
		logger:  log,
	}
}

func (h *ViewsHandler) Index(c *gin.Context) {
	output, err := h.useCase.ExecuteListProfiles(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to render profile list", err)
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{
			"profiles": nil,
			"error":    "Could not load profiles",
		})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"profiles": output.Profiles,
	})
}

func (h *ViewsHandler) ProfileDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusNotFound, "profile.html", gin.H{
			"error": "Profile not found",
		})
		return
	}

	output, err := h.useCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{ProfileID: id})
	if err != nil {
		c.HTML(http.StatusNotFound, "profile.html", gin.H{
			"error": "Profile not found",
		})
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"profile": output.Profile,
	})
}
