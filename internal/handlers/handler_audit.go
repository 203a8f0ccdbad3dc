package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/agency_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/SscSPs/agency_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func registerAuditRoutes(rg *gin.RouterGroup, as portssvc.AuditSvcFacade) {
	h := &auditHandler{auditService: as}

	rg.GET("/audit-log", h.listAuditEntries)
	rg.GET("/notifications", h.listNotifications)
	rg.PUT("/notifications/:id/read", h.markNotificationRead)
}

func (h *auditHandler) listAuditEntries(c *gin.Context) {
	var params dto.ListAuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	entries, err := h.auditService.ListAuditEntries(c.Request.Context(), params.Limit)
	if err != nil {
		respondError(c, err, "list audit entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *auditHandler) listNotifications(c *gin.Context) {
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	notes, err := h.auditService.ListNotifications(c.Request.Context(), params.UnreadOnly)
	if err != nil {
		respondError(c, err, "list notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notes})
}

func (h *auditHandler) markNotificationRead(c *gin.Context) {
	id := c.Param("id")
	if err := h.auditService.MarkNotificationRead(c.Request.Context(), id); err != nil {
		respondError(c, err, "mark notification read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read", "id": id})
}

type backupHandler struct {
	backupService portssvc.BackupSvcFacade
}

func registerBackupRoutes(rg *gin.RouterGroup, bs portssvc.BackupSvcFacade) {
	h := &backupHandler{backupService: bs}

	backup := rg.Group("/backup")
	{
		backup.GET("", h.export)
		backup.POST("/restore", h.restore)
	}
}

// export streams the full snapshot as a downloadable JSON document.
func (h *backupHandler) export(c *gin.Context) {
	if _, ok := actorOrAbort(c); !ok {
		return
	}
	snap, err := h.backupService.Export(c.Request.Context())
	if err != nil {
		respondError(c, err, "export backup")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="ledger-backup-%s.json"`, time.Now().UTC().Format("20060102")))
	c.JSON(http.StatusOK, snap)
}

func (h *backupHandler) restore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var snap domain.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.backupService.Restore(c.Request.Context(), actor, snap); err != nil {
		respondError(c, err, "restore backup")
		return
	}
	logger.Warn("Backup restored",
		slog.Int("accounts", len(snap.Accounts)),
		slog.Int("transactions", len(snap.Transactions)))
	c.JSON(http.StatusOK, gin.H{"message": "Backup restored"})
}
