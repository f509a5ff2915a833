package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glana/api/dto"
	"glana/services"
)

// GetStatsHandler godoc
// @Summary      Library statistics
// @Description  Totals, per-theme counts (zero-count themes included, descending), top 10 tags, last capture time.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.StatsResponseDTO
// @Router       /stats [get]
func GetStatsHandler(svc *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Overview(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		perTheme := make([]dto.ThemeCountDTO, 0, len(stats.PerThemeCounts))
		for _, tc := range stats.PerThemeCounts {
			perTheme = append(perTheme, dto.ThemeCountDTO{
				ThemeID:   tc.ThemeID.Hex(),
				ThemeName: tc.ThemeName,
				Count:     tc.Count,
			})
		}
		topTags := make([]dto.TagCountDTO, 0, len(stats.TopTags))
		for _, tc := range stats.TopTags {
			topTags = append(topTags, dto.TagCountDTO{Tag: tc.Tag, Count: tc.Count})
		}

		c.JSON(http.StatusOK, dto.StatsResponseDTO{
			TotalItems:        stats.TotalItems,
			TotalThemes:       stats.TotalThemes,
			UnclassifiedCount: stats.UnclassifiedCount,
			ItemsPerTheme:     perTheme,
			TopTags:           topTags,
			LastCapturedAt:    stats.LastCapturedAt,
		})
	}
}
