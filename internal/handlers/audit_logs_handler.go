package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/store-scheduler/internal/httperr"
	"github.com/BruksfildServices01/store-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/store-scheduler/internal/middleware"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var owned int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Store{}).
		Where("id = ? AND user_id = ?", storeID, middleware.UserID(c)).
		Count(&owned).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", err.Error())
		return
	}
	if owned == 0 {
		httperr.NotFound(c, "store_not_found", "Store not found or not owned by you")
		return
	}

	page, limit, offset := pagination(c, 50, 200)

	// always scoped to the store
	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("store_id = ?", storeID)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse(time.DateOnly, fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse(time.DateOnly, toStr); err == nil {
			q = q.Where("created_at < ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", err.Error())
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", err.Error())
		return
	}

	httpresp.Page(c, logs, total, page, limit)
}
