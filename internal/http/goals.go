package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/radreads/internal/entities"
)

// GoalsController exposes reading goals. Goals never touch shelf membership.
type GoalsController struct {
	store GoalStore
}

func NewGoalsController(store GoalStore) *GoalsController {
	return &GoalsController{store: store}
}

func (gc *GoalsController) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/goals", gc.CreateGoal)
	api.GET("/goals/me", gc.ListGoals)
	api.GET("/goals/active", gc.ListActiveGoals)
	api.GET("/goals/completed", gc.ListCompletedGoals)
	api.PUT("/goals/:id", gc.UpdateGoal)
	api.DELETE("/goals/:id", gc.DeleteGoal)
}

func (gc *GoalsController) CreateGoal(c *gin.Context) {
	var in entities.GoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := gc.store.CreateGoal(GetUserID(c), in)
	if err != nil {
		respondAppError(c, err, "create goal")
		return
	}
	respondCreated(c, goal)
}

func (gc *GoalsController) ListGoals(c *gin.Context) {
	gc.list(c, gc.store.GetGoals)
}

func (gc *GoalsController) ListActiveGoals(c *gin.Context) {
	gc.list(c, gc.store.GetActiveGoals)
}

func (gc *GoalsController) ListCompletedGoals(c *gin.Context) {
	gc.list(c, gc.store.GetCompletedGoals)
}

func (gc *GoalsController) list(c *gin.Context, fetch func(userID uint) ([]entities.ReadingGoal, error)) {
	goals, err := fetch(GetUserID(c))
	if err != nil {
		respondAppError(c, err, "list goals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals, "count": len(goals)})
}

func (gc *GoalsController) UpdateGoal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var upd entities.GoalUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondBindError(c, err)
		return
	}

	goal, err := gc.store.UpdateGoal(GetUserID(c), id, upd)
	if err != nil {
		respondAppError(c, err, "update goal")
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (gc *GoalsController) DeleteGoal(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := gc.store.DeleteGoal(GetUserID(c), id); err != nil {
		respondAppError(c, err, "delete goal")
		return
	}
	respondSuccess(c, "goal deleted")
}
