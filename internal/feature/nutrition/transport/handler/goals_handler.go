package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness_backend/internal/api"
	"fitness_backend/internal/feature/nutrition/domain/entity"
	"fitness_backend/internal/feature/nutrition/transport/http/dto"
	"fitness_backend/internal/feature/nutrition/usecase"
	jwtmw "fitness_backend/internal/platform/jwt"
)

// GoalsUsecase は栄養目標のユースケースを定義します。
type GoalsUsecase interface {
	GetOrDefault(ctx context.Context, userID string) (*entity.Goals, error)
	Upsert(ctx context.Context, userID string, in usecase.UpsertGoalsInput) (*entity.Goals, error)
}

// GoalsHandler serves /api/nutrition/goals.
type GoalsHandler struct {
	uc GoalsUsecase
}

func NewGoalsHandler(uc GoalsUsecase) *GoalsHandler {
	return &GoalsHandler{uc: uc}
}

// Get returns the saved goals, or the defaults with null id and updated_at.
func (h *GoalsHandler) Get(c *gin.Context) {
	goals, err := h.uc.GetOrDefault(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		api.WriteError(c, err, "Failed to fetch nutrition goals")
		return
	}
	c.JSON(http.StatusOK, dto.FromGoals(goals))
}

// Upsert replaces the user's goals. Omitted fields fall back to defaults.
func (h *GoalsHandler) Upsert(c *gin.Context) {
	var in usecase.UpsertGoalsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		api.BadRequest(c, "body", err)
		return
	}

	goals, err := h.uc.Upsert(c.Request.Context(), jwtmw.UserID(c), in)
	if err != nil {
		api.WriteError(c, err, "Failed to save nutrition goals")
		return
	}
	c.JSON(http.StatusCreated, dto.FromGoals(goals))
}
