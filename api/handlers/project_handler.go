package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filatrack/filatrack/api/models"
	"github.com/filatrack/filatrack/stats"
)

// CreateProject creates a new project
func (h *Handler) CreateProject(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidProjectName(project.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project name cannot be empty"})
		return
	}

	created := h.Store.AddProject(project)
	c.JSON(http.StatusCreated, created)
}

// GetProjects returns all projects
func (h *Handler) GetProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Snapshot().Projects)
}

// GetProject returns one project by id
func (h *Handler) GetProject(c *gin.Context) {
	project, ok := h.Store.Project(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateProject renames a project
func (h *Handler) UpdateProject(c *gin.Context) {
	var project models.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project.ID = c.Param("id")
	if _, ok := h.Store.Project(project.ID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	if !models.ValidProjectName(project.Name) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project name cannot be empty"})
		return
	}

	h.Store.UpdateProject(project)
	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project; its parts keep their projectId
func (h *Handler) DeleteProject(c *gin.Context) {
	h.Store.DeleteProject(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// GetProjectCost returns the summed estimated cost of a project's parts
func (h *Handler) GetProjectCost(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.Store.Project(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	cost, known := stats.ProjectCost(h.Store.Snapshot(), id)
	c.JSON(http.StatusOK, gin.H{"cost": cost, "known": known})
}
