// Package handler はnutritionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime/types"

	"fitness_backend/internal/api"
	"fitness_backend/internal/feature/nutrition/domain/entity"
	"fitness_backend/internal/feature/nutrition/transport/http/dto"
	"fitness_backend/internal/feature/nutrition/usecase"
	jwtmw "fitness_backend/internal/platform/jwt"
	"fitness_backend/internal/shared/pagination"
)

// EntryUsecase は食事記録のユースケースを定義します。
type EntryUsecase interface {
	GetEntriesWithSummary(ctx context.Context, userID string, date *time.Time, page pagination.Page) (*entity.Summary, error)
	GetProgress(ctx context.Context, userID string, date *time.Time) (*entity.Progress, error)
	Create(ctx context.Context, userID string, in usecase.CreateFoodEntryInput) (*entity.FoodEntry, error)
	Delete(ctx context.Context, userID, id string) error
}

// NutritionHandler serves /api/nutrition.
type NutritionHandler struct {
	uc EntryUsecase
}

// NewNutritionHandler は依存性注入用のコンストラクタです。
func NewNutritionHandler(uc EntryUsecase) *NutritionHandler {
	return &NutritionHandler{uc: uc}
}

// parseDate reads the optional ?date=YYYY-MM-DD parameter.
func parseDate(c *gin.Context) (*time.Time, bool) {
	s := c.Query("date")
	if s == "" {
		return nil, true
	}
	d, err := time.Parse(types.DateFormat, s)
	if err != nil {
		api.BadRequest(c, "date", err)
		return nil, false
	}
	return &d, true
}

// List handles GET /api/nutrition?date=&limit=&offset=.
// 該当日のエントリ・合計・目標をまとめて返却します。
func (h *NutritionHandler) List(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}
	page := pagination.Parse(c.Query("limit"), c.Query("offset"), usecase.DefaultLimit)

	summary, err := h.uc.GetEntriesWithSummary(c.Request.Context(), jwtmw.UserID(c), date, page)
	if err != nil {
		api.WriteError(c, err, "Failed to fetch nutrition entries")
		return
	}
	c.JSON(http.StatusOK, dto.FromSummary(summary))
}

// Progress handles GET /api/nutrition/progress?date=.
func (h *NutritionHandler) Progress(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}

	progress, err := h.uc.GetProgress(c.Request.Context(), jwtmw.UserID(c), date)
	if err != nil {
		api.WriteError(c, err, "Failed to fetch nutrition progress")
		return
	}
	c.JSON(http.StatusOK, dto.FromProgress(progress))
}

// Create handles POST /api/nutrition.
func (h *NutritionHandler) Create(c *gin.Context) {
	var in usecase.CreateFoodEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		api.BadRequest(c, "body", err)
		return
	}

	entry, err := h.uc.Create(c.Request.Context(), jwtmw.UserID(c), in)
	if err != nil {
		api.WriteError(c, err, "Failed to create food entry")
		return
	}
	c.JSON(http.StatusCreated, dto.FromFoodEntry(*entry))
}

// Delete handles DELETE /api/nutrition/:id.
func (h *NutritionHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), jwtmw.UserID(c), c.Param("id")); err != nil {
		api.WriteError(c, err, "Failed to delete food entry")
		return
	}
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}
