package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/esantostaype/task-automation-sub001/internal/database"
	"github.com/esantostaype/task-automation-sub001/internal/models"
)

// RequireTask resolves the :id URL parameter to a task and stores it in the
// request context for the handler.
func RequireTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid task ID",
			})
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Preload("Type").
			Preload("Brand").
			Preload("Category").
			Preload("Category.Tier").
			Preload("Assignments").
			Preload("Assignments.User").
			First(&task, taskID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Task not found",
			})
			c.Abort()
			return
		}

		c.Set("task", task)
		c.Next()
	}
}
