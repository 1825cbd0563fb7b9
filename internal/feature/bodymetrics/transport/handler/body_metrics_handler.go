// Package handler はbody metricsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness_backend/internal/api"
	"fitness_backend/internal/feature/bodymetrics/domain/entity"
	"fitness_backend/internal/feature/bodymetrics/transport/http/dto"
	"fitness_backend/internal/feature/bodymetrics/usecase"
	jwtmw "fitness_backend/internal/platform/jwt"
	"fitness_backend/internal/shared/pagination"
)

// BodyMetricsUsecase は計測データ操作のユースケースを定義します。
type BodyMetricsUsecase interface {
	List(ctx context.Context, userID string, page pagination.Page) ([]entity.BodyMetric, error)
	Create(ctx context.Context, userID string, in usecase.CreateBodyMetricInput) (*entity.BodyMetric, error)
	Delete(ctx context.Context, userID, id string) error
}

// BodyMetricsHandler serves /api/body-metrics.
type BodyMetricsHandler struct {
	uc BodyMetricsUsecase
}

// NewBodyMetricsHandler は依存性注入用のコンストラクタです。
func NewBodyMetricsHandler(uc BodyMetricsUsecase) *BodyMetricsHandler {
	return &BodyMetricsHandler{uc: uc}
}

// List handles GET /api/body-metrics?limit=&offset=.
func (h *BodyMetricsHandler) List(c *gin.Context) {
	page := pagination.Parse(c.Query("limit"), c.Query("offset"), usecase.DefaultLimit)

	metrics, err := h.uc.List(c.Request.Context(), jwtmw.UserID(c), page)
	if err != nil {
		api.WriteError(c, err, "Failed to fetch body metrics")
		return
	}
	c.JSON(http.StatusOK, dto.FromEntities(metrics))
}

// Create handles POST /api/body-metrics.
// - JSONが不正な場合は400
// - バリデーションエラーは400（詳細付き）
// - 成功時は201で作成した行を返却
func (h *BodyMetricsHandler) Create(c *gin.Context) {
	var in usecase.CreateBodyMetricInput
	if err := c.ShouldBindJSON(&in); err != nil {
		api.BadRequest(c, "body", err)
		return
	}

	metric, err := h.uc.Create(c.Request.Context(), jwtmw.UserID(c), in)
	if err != nil {
		api.WriteError(c, err, "Failed to create body metric")
		return
	}
	c.JSON(http.StatusCreated, dto.FromEntity(*metric))
}

// Delete handles DELETE /api/body-metrics/:id. Unknown or foreign ids still succeed.
func (h *BodyMetricsHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), jwtmw.UserID(c), c.Param("id")); err != nil {
		api.WriteError(c, err, "Failed to delete body metric")
		return
	}
	c.JSON(http.StatusOK, api.SuccessResponse{Success: true})
}
