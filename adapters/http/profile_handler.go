package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/linkedin-crm/internal/application/usecase/profile"
	"github.com/khoahotran/linkedin-crm/pkg/apperror"
	"github.com/khoahotran/linkedin-crm/pkg/logger"
)

type ProfileHandler struct {
	useCase *profileUC.ProfileUseCase
	logger  logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		useCase: uc,
		logger:  log,
	}
}

// SaveProfile accepts one scraped profile document and runs the upsert
// pipeline. The caller gets either a definite success with the internal
// id or a definite failure with a taxonomy kind; never a partial save.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("request body must be a JSON profile document", err))
		return
	}

	output, err := h.useCase.ExecuteSaveProfile(c.Request.Context(), req.ToInput())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"profile_id": output.ProfileID,
	})
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	output, err := h.useCase.ExecuteListProfiles(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	summaries := make([]SummaryDTO, len(output.Profiles))
	for i, s := range output.Profiles {
		summaries[i] = ToSummaryDTO(s)
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.NewInvalidInput("profile id must be an integer", err))
		return
	}

	output, err := h.useCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{ProfileID: id})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.NewInvalidInput("profile id must be an integer", err))
		return
	}

	if err := h.useCase.ExecuteDeleteProfile(c.Request.Context(), profileUC.DeleteProfileInput{ProfileID: id}); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
