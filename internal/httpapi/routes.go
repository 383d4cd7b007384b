package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/tracker"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, svc *tracker.Service) {
	router.GET("/healthz", handleHealth)

	api := router.Group("/api")
	{
		api.POST("/tasks", handleCreateTask(svc))
		api.GET("/tasks", handleListTasks(svc))
		api.GET("/tasks/:id", handleGetTask(svc))
		api.PUT("/tasks/:id", handleUpdateTask(svc))
		api.PUT("/tasks/:id/status", handleUpdateStatus(svc))
		api.POST("/tasks/:id/comments", handleAddComment(svc))
		api.GET("/tasks/group/:groupId", handleListGroupTasks(svc))

		api.POST("/groups", handleCreateGroup(svc))
		api.GET("/groups", handleListGroups(svc))
		api.POST("/groups/:id/members", handleAddMember(svc))

		api.POST("/users", handleCreateUser(svc))
		api.GET("/users", handleListUsers(svc))
	}
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps the tracker error taxonomy to HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case tracker.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case tracker.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case tracker.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	CreatedByID uint       `json:"createdById"`
	GroupID     uint       `json:"groupId"`
	DueDate     *time.Time `json:"dueDate"`
}

func handleCreateTask(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		view, err := svc.CreateTask(c.Request.Context(), tracker.CreateTaskParams{
			Title:       req.Title,
			Description: req.Description,
			Priority:    models.Priority(req.Priority),
			CreatedByID: req.CreatedByID,
			GroupID:     req.GroupID,
			DueDate:     req.DueDate,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

func handleListTasks(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := svc.ListTasks(c.Request.Context(), nil)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func handleGetTask(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		view, err := svc.GetTask(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

type updateTaskRequest struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority"`
	AssignedToID *uint      `json:"assignedToId"`
	DueDate      *time.Time `json:"dueDate"`
	UpdatedByID  uint       `json:"updatedById"`
}

func handleUpdateTask(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req updateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		err := svc.UpdateTask(c.Request.Context(), id, tracker.UpdateTaskParams{
			Title:        req.Title,
			Description:  req.Description,
			Priority:     models.Priority(req.Priority),
			AssignedToID: req.AssignedToID,
			DueDate:      req.DueDate,
			UpdatedByID:  req.UpdatedByID,
		})
		if err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type updateStatusRequest struct {
	Status      string `json:"status"`
	UpdatedByID uint   `json:"updatedById"`
}

func handleUpdateStatus(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		err := svc.UpdateStatus(c.Request.Context(), id, models.Status(req.Status), req.UpdatedByID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type addCommentRequest struct {
	UserID  uint   `json:"userId"`
	Comment string `json:"comment"`
}

func handleAddComment(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req addCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		view, err := svc.AddComment(c.Request.Context(), id, req.UserID, req.Comment)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func handleListGroupTasks(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, ok := idParam(c, "groupId")
		if !ok {
			return
		}
		views, err := svc.ListTasks(c.Request.Context(), &groupID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     uint   `json:"ownerId"`
}

func handleCreateGroup(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		view, err := svc.CreateGroup(c.Request.Context(), req.Name, req.Description, req.OwnerID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

func handleListGroups(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := svc.ListGroups(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

type addMemberRequest struct {
	UserID uint `json:"userId"`
}

func handleAddMember(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, ok := idParam(c, "id")
		if !ok {
			return
		}
		var req addMemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		if err := svc.AddMember(c.Request.Context(), groupID, req.UserID); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleCreateUser(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		view, err := svc.CreateUser(c.Request.Context(), req.Name, models.Role(req.Role), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

func handleListUsers(svc *tracker.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, views)
	}
}
