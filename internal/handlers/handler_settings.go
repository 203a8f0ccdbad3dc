package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

// registerSettingsRoutes registers settings and project routes.
func registerSettingsRoutes(rg *gin.RouterGroup, ss portssvc.SettingsSvcFacade) {
	h := &settingsHandler{settingsService: ss}

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("/lock-date", h.setLockDate)
		settings.PUT("/company", h.updateCompany)
		settings.POST("/expense-categories", h.addExpenseCategory)
	}

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
	}
}

func (h *settingsHandler) getSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err, "retrieve settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// setLockDate closes every period up to and including the given date.
// An empty date reopens all periods.
func (h *settingsHandler) setLockDate(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.LockDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	settings, err := h.settingsService.SetFinancialLockDate(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "set lock date")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lock date updated", "settings": settings})
}

func (h *settingsHandler) updateCompany(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CompanyInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	settings, err := h.settingsService.UpdateCompanyInfo(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "update company info")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company info updated", "settings": settings})
}

func (h *settingsHandler) addExpenseCategory(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.ExpenseCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	settings, err := h.settingsService.AddExpenseCategory(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "add expense category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Expense category added", "settings": settings})
}

func (h *settingsHandler) createProject(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	project, err := h.settingsService.CreateProject(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "create project")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Project created", "project": project})
}

func (h *settingsHandler) listProjects(c *gin.Context) {
	projects, err := h.settingsService.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, err, "list projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}
