package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-list/internal/api"
	"todo-list/internal/domain"
	"todo-list/internal/markdown"
	"todo-list/internal/transfer"
)

const (
	maxContentSize = 1 << 20 // 1MB
	pageTitle      = "To-do list"
)

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

type taskRow struct {
	Task     *domain.Task
	Index    int
	Transfer string
}

type projectRow struct {
	Project  *domain.Project
	Index    int
	Transfer string
	Items    []taskRow
}

type pageData struct {
	Title    string
	Items    []taskRow
	Projects []projectRow
	Stats    api.BoardStats
}

type textRequest struct {
	Text string `json:"text"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type decomposeRequest struct {
	Task string `json:"task"`
}

// buildPage renders every row with the drag payload it carries
func buildPage(view *api.BoardView) (*pageData, error) {
	page := &pageData{
		Title:    pageTitle,
		Items:    make([]taskRow, 0, len(view.Board.Items)),
		Projects: make([]projectRow, 0, len(view.Board.Projects)),
		Stats:    view.Stats,
	}

	for i, t := range view.Board.Items {
		payload, err := transfer.Encode(transfer.MainTask(t, i))
		if err != nil {
			return nil, err
		}
		page.Items = append(page.Items, taskRow{Task: t, Index: i, Transfer: payload})
	}

	for pi, p := range view.Board.Projects {
		payload, err := transfer.Encode(transfer.ProjectHeader(p, pi))
		if err != nil {
			return nil, err
		}
		row := projectRow{Project: p, Index: pi, Transfer: payload, Items: make([]taskRow, 0, len(p.Items))}
		for i, t := range p.Items {
			payload, err := transfer.Encode(transfer.ProjectTask(p, pi, t, i))
			if err != nil {
				return nil, err
			}
			row.Items = append(row.Items, taskRow{Task: t, Index: i, Transfer: payload})
		}
		page.Projects = append(page.Projects, row)
	}
	return page, nil
}

// Web handlers

func (s *Server) handleIndex(c *gin.Context) {
	view, err := s.api.GetBoard(c.Request.Context())
	if err != nil {
		c.String(http.StatusInternalServerError, userMessage(err))
		return
	}
	page, err := buildPage(view)
	if err != nil {
		c.String(http.StatusInternalServerError, userMessage(err))
		return
	}
	c.HTML(http.StatusOK, "index.html", page)
}

// API handlers

func (s *Server) handleAPIBoard(c *gin.Context) {
	view, err := s.api.GetBoard(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleAPIAddTask(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, "invalid JSON body")
		return
	}

	task, err := s.api.AddTask(c.Request.Context(), req.Text)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleAPIRemoveTask(c *gin.Context) {
	if err := s.api.RemoveTask(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAPIToggleTask(c *gin.Context) {
	result, err := s.api.ToggleTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAPICreateProject(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, "invalid JSON body")
		return
	}

	project, err := s.api.CreateProject(c.Request.Context(), req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (s *Server) handleAPIRenameProject(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, "invalid JSON body")
		return
	}

	project, err := s.api.RenameProject(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) handleAPIDeleteProject(c *gin.Context) {
	result, err := s.api.DeleteProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAPIToggleProject(c *gin.Context) {
	project, err := s.api.ToggleProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) handleAPIDeleteProjectTask(c *gin.Context) {
	if err := s.api.DeleteProjectTask(c.Request.Context(), c.Param("id"), c.Param("taskId")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAPIDrop(c *gin.Context) {
	var req api.DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, "invalid JSON body")
		return
	}

	result, err := s.api.Drop(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAPIDecompose(c *gin.Context) {
	var req decomposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, "invalid JSON body")
		return
	}

	result, err := s.api.Decompose(c.Request.Context(), req.Task)
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := gin.H{
		"added":         result.Added,
		"failed":        result.Failed,
		"clarification": result.Clarification,
	}
	if result.Clarification != "" {
		resp["clarificationHtml"] = markdown.Render(result.Clarification)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleAPIMarkdown(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBadRequest(c, "invalid JSON body")
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": markdown.Render(req.Text)})
}

func (s *Server) handleAPIExport(c *gin.Context) {
	req := api.ExportRequest{
		ProjectID: c.Query("project"),
		BigTask:   c.Query("input"),
	}

	var buf bytes.Buffer
	if _, err := s.api.ExportPDF(c.Request.Context(), req, &buf); err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.exportFilename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
