package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"glana/api/dto"
	"glana/models"
	"glana/services"
)

// CaptureItemHandler godoc
// @Summary      Capture a post
// @Description  Ingest a post; idempotent by external id. Classification runs asynchronously.
// @Tags         items
// @Accept       json
// @Param        body  body  dto.CaptureItemRequest  true  "Post to capture"
// @Produce      json
// @Success      201  {object}  dto.ItemResponseDTO
// @Success      200  {object}  dto.ItemResponseDTO  "Already captured; existing item returned"
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Security     ApiKeyAuth
// @Router       /items [post]
func CaptureItemHandler(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CaptureItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		item, created, err := svc.Capture(c.Request.Context(), services.CaptureInput{
			SourceURL:         req.SourceURL,
			ExternalID:        req.ExternalID,
			AuthorHandle:      req.AuthorHandle,
			AuthorDisplayName: req.AuthorDisplayName,
			Content:           req.Content,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		if !created {
			c.JSON(http.StatusOK, dto.ItemResponseDTO{Item: *item, Message: "item already exists"})
			return
		}
		c.JSON(http.StatusCreated, dto.ItemResponseDTO{Item: *item})
	}
}

// CaptureItemFromURLHandler godoc
// @Summary      Capture a post by URL
// @Description  Fetch content for a post URL via the syndication API (page-extraction fallback) and ingest it.
// @Tags         items
// @Accept       json
// @Param        body  body  dto.CaptureFromURLRequest  true  "Post URL"
// @Produce      json
// @Success      201  {object}  dto.ItemResponseDTO
// @Success      200  {object}  dto.ItemResponseDTO  "Already captured; existing item returned"
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      422  {object}  dto.ErrorResponseDTO  "Content could not be extracted"
// @Security     ApiKeyAuth
// @Router       /items/from-url [post]
func CaptureItemFromURLHandler(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CaptureFromURLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		item, created, err := svc.CaptureFromURL(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, err)
			return
		}

		if !created {
			c.JSON(http.StatusOK, dto.ItemResponseDTO{Item: *item, Message: "item already exists"})
			return
		}
		c.JSON(http.StatusCreated, dto.ItemResponseDTO{Item: *item})
	}
}

// ListItemsHandler godoc
// @Summary      List items
// @Description  List captured items with filters and pagination, newest first. total/has_more are computed before the tag filter.
// @Tags         items
// @Param        theme_id      query  string  false  "Theme ObjectID"
// @Param        tag           query  string  false  "Tag (post-query filter)"
// @Param        favorites     query  bool    false  "Only favorites"
// @Param        unclassified  query  bool    false  "Only unclassified"
// @Param        search        query  string  false  "Content substring, case-insensitive"
// @Param        limit         query  int     false  "Page size (<=100, default 20)"
// @Param        offset        query  int     false  "Offset"
// @Produce      json
// @Success      200  {object}  dto.ItemListResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /items [get]
func ListItemsHandler(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListItemsInput
		in.ThemeID = c.Query("theme_id")
		in.Tag = c.Query("tag")
		in.OnlyFavorites = c.Query("favorites") == "true"
		in.OnlyUnclassified = c.Query("unclassified") == "true"
		in.Search = c.Query("search")
		in.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
		in.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

		res, err := svc.List(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}

		items := res.Items
		if items == nil {
			items = []models.Item{}
		}
		c.JSON(http.StatusOK, dto.ItemListResponseDTO{
			Items:   items,
			Total:   res.Total,
			HasMore: res.HasMore,
		})
	}
}

// GetItemHandler godoc
// @Summary      Get item by id
// @Tags         items
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.ItemResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /items/{id} [get]
func GetItemHandler(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ItemResponseDTO{Item: *item})
	}
}

// UpdateItemHandler godoc
// @Summary      Update item
// @Description  Partial update. force_reclassify resets classification state and re-schedules the item.
// @Tags         items
// @Accept       json
// @Param        id    path  string                 true  "ObjectID"
// @Param        body  body  dto.UpdateItemRequest  true  "Fields to update"
// @Produce      json
// @Success      200  {object}  dto.ItemResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Security     ApiKeyAuth
// @Router       /items/{id} [patch]
func UpdateItemHandler(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		item, err := svc.Update(c.Request.Context(), c.Param("id"), services.UpdateItemInput{
			ThemeID:         req.ThemeID,
			Tags:            req.Tags,
			IsFavorite:      req.IsFavorite,
			ForceReclassify: req.ForceReclassify,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ItemResponseDTO{Item: *item})
	}
}

// DeleteItemHandler godoc
// @Summary      Delete item
// @Tags         items
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Security     ApiKeyAuth
// @Router       /items/{id} [delete]
func DeleteItemHandler(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "item deleted"})
	}
}

// SuggestionsHandler godoc
// @Summary      Sample items for inspiration
// @Description  Random sample of items, favorites ordered first. Excluded ids never appear.
// @Tags         suggestions
// @Param        theme_id     query  string  false  "Theme ObjectID"
// @Param        count        query  int     false  "Sample size (<=20, default 5)"
// @Param        exclude_ids  query  string  false  "Comma-separated ObjectIDs to exclude"
// @Produce      json
// @Success      200  {object}  dto.SuggestionsResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /suggestions [get]
func SuggestionsHandler(svc *services.ItemService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.SampleItemsInput
		in.ThemeID = c.Query("theme_id")
		in.Count, _ = strconv.Atoi(c.DefaultQuery("count", "5"))
		if raw := c.Query("exclude_ids"); raw != "" {
			in.ExcludeIDs = strings.Split(raw, ",")
		}

		items, err := svc.Sample(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		if items == nil {
			items = []models.Item{}
		}
		c.JSON(http.StatusOK, dto.SuggestionsResponseDTO{Items: items})
	}
}
