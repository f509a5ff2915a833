package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glana/api/dto"
	"glana/services"
)

// ListThemesHandler godoc
// @Summary      List themes
// @Description  All themes sorted by name, each with its item count (zero included).
// @Tags         themes
// @Produce      json
// @Success      200  {object}  dto.ThemeListResponseDTO
// @Router       /themes [get]
func ListThemesHandler(svc *services.ThemeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		themes, err := svc.ListWithCounts(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		out := make([]dto.ThemeWithCountDTO, 0, len(themes))
		for _, t := range themes {
			out = append(out, dto.ThemeWithCountDTO{Theme: t.Theme, ItemCount: t.Count})
		}
		c.JSON(http.StatusOK, dto.ThemeListResponseDTO{Themes: out})
	}
}

// CreateThemeHandler godoc
// @Summary      Create theme
// @Description  Theme names are unique case-insensitively; duplicates return 409.
// @Tags         themes
// @Accept       json
// @Param        body  body  dto.CreateThemeRequest  true  "Theme to create"
// @Produce      json
// @Success      201  {object}  models.Theme
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      409  {object}  dto.ErrorResponseDTO
// @Security     ApiKeyAuth
// @Router       /themes [post]
func CreateThemeHandler(svc *services.ThemeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateThemeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		theme, err := svc.Create(c.Request.Context(), services.CreateThemeInput{
			Name:          req.Name,
			Description:   req.Description,
			Color:         req.Color,
			SuggestedTags: req.SuggestedTags,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, theme)
	}
}

// UpdateThemeHandler godoc
// @Summary      Update theme
// @Tags         themes
// @Accept       json
// @Param        id    path  string                  true  "ObjectID"
// @Param        body  body  dto.UpdateThemeRequest  true  "Fields to update"
// @Produce      json
// @Success      200  {object}  models.Theme
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      409  {object}  dto.ErrorResponseDTO
// @Security     ApiKeyAuth
// @Router       /themes/{id} [patch]
func UpdateThemeHandler(svc *services.ThemeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateThemeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		theme, err := svc.Update(c.Request.Context(), c.Param("id"), services.UpdateThemeInput{
			Name:          req.Name,
			Description:   req.Description,
			Color:         req.Color,
			SuggestedTags: req.SuggestedTags,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, theme)
	}
}

// DeleteThemeHandler godoc
// @Summary      Delete theme
// @Description  Items assigned to the theme are detached (theme_id nulled), never deleted.
// @Tags         themes
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Security     ApiKeyAuth
// @Router       /themes/{id} [delete]
func DeleteThemeHandler(svc *services.ThemeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "theme deleted"})
	}
}
