package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/store-scheduler/internal/httperr"
	"github.com/BruksfildServices01/store-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/store-scheduler/internal/middleware"
	"github.com/BruksfildServices01/store-scheduler/internal/models"
	"github.com/BruksfildServices01/store-scheduler/internal/timezone"
)

type StoreHandler struct {
	db *gorm.DB
}

func NewStoreHandler(db *gorm.DB) *StoreHandler {
	return &StoreHandler{db: db}
}

type StoreRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Location     string `json:"location" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	Timezone     string `json:"timezone"`
}

func (r StoreRequest) apply(s *models.Store) {
	s.Name = strings.TrimSpace(r.Name)
	s.Description = strings.TrimSpace(r.Description)
	s.Location = strings.TrimSpace(r.Location)
	s.ContactEmail = strings.TrimSpace(r.ContactEmail)
	s.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	if tz := strings.TrimSpace(r.Timezone); tz != "" {
		s.Timezone = tz
	}
}

func bindStore(c *gin.Context) (StoreRequest, bool) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return req, false
	}
	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone "+req.Timezone)
		return req, false
	}
	return req, true
}

func (h *StoreHandler) Create(c *gin.Context) {
	req, ok := bindStore(c)
	if !ok {
		return
	}

	store := models.Store{UserID: middleware.UserID(c)}
	req.apply(&store)

	if err := h.db.WithContext(c.Request.Context()).Create(&store).Error; err != nil {
		httperr.Internal(c, "failed_to_create_store", err.Error())
		return
	}

	httpresp.Created(c, store)
}

// List returns the caller's stores for owners and every store otherwise.
func (h *StoreHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.Store{})
	if c.GetBool(middleware.ContextIsStoreOwner) {
		q = q.Where("user_id = ?", middleware.UserID(c))
	}

	var stores []models.Store
	if err := q.Order("name ASC").Find(&stores).Error; err != nil {
		httperr.Internal(c, "failed_to_list_stores", err.Error())
		return
	}

	httpresp.List(c, stores)
}

func (h *StoreHandler) Search(c *gin.Context) {
	page, limit, offset := pagination(c, 10, 100)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Store{})

	if s := strings.ToLower(strings.TrimSpace(c.Query("search"))); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if loc := strings.ToLower(strings.TrimSpace(c.Query("location"))); loc != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+loc+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_search_stores", err.Error())
		return
	}

	order := "name ASC"
	switch c.Query("sort") {
	case "name_desc":
		order = "name DESC"
	case "newest":
		order = "created_at DESC"
	}

	var stores []models.Store
	if err := q.Order(order).Order("id ASC").Limit(limit).Offset(offset).Find(&stores).Error; err != nil {
		httperr.Internal(c, "failed_to_search_stores", err.Error())
		return
	}

	httpresp.Page(c, stores, total, page, limit)
}

func (h *StoreHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	store, ok := h.load(c, id)
	if !ok {
		return
	}

	httpresp.OK(c, store)
}

func (h *StoreHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	store, ok := h.loadOwned(c, id)
	if !ok {
		return
	}

	req, ok := bindStore(c)
	if !ok {
		return
	}
	req.apply(store)

	if err := h.db.WithContext(c.Request.Context()).Save(store).Error; err != nil {
		httperr.Internal(c, "failed_to_update_store", err.Error())
		return
	}

	httpresp.OK(c, store)
}

// Delete removes the store together with its windows and appointments.
func (h *StoreHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	store, ok := h.loadOwned(c, id)
	if !ok {
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", store.ID).Delete(&models.StoreAvailability{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", store.ID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(store).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_store", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store deleted successfully"})
}

func (h *StoreHandler) load(c *gin.Context, id uint) (*models.Store, bool) {
	var store models.Store
	err := h.db.WithContext(c.Request.Context()).First(&store, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "store_not_found", "Store not found")
		return nil, false
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_store", err.Error())
		return nil, false
	}
	return &store, true
}

// loadOwned hides stores of other owners behind a 404.
func (h *StoreHandler) loadOwned(c *gin.Context, id uint) (*models.Store, bool) {
	var store models.Store
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, middleware.UserID(c)).
		First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "store_not_found", "Store not found or not owned by you")
		return nil, false
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_store", err.Error())
		return nil, false
	}
	return &store, true
}
