package controllers

import (
	"net/http"
	"time"

	"backend/models"
	"backend/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SettingsController struct {
	store store.Store
}

func NewSettingsController(s store.Store) *SettingsController {
	return &SettingsController{store: s}
}

// GetSettings returns the singleton document, synthesizing it with defaults
// on first read.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()

	var settings models.Settings
	err := sc.store.FindOne(ctx, store.Settings, store.Filter{}, &settings)
	if err == store.ErrNotFound {
		settings = models.DefaultSettings()
		id, err := sc.store.InsertOne(ctx, store.Settings, settings)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create default settings"})
			return
		}
		settings.ID, _ = primitive.ObjectIDFromHex(id)
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()
	settings.UpdatedAt = now

	var existing models.Settings
	err := sc.store.FindOne(ctx, store.Settings, store.Filter{}, &existing)
	if err == store.ErrNotFound {
		settings.ID = primitive.NilObjectID
		id, err := sc.store.InsertOne(ctx, store.Settings, settings)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create settings"})
			return
		}
		settings.ID, _ = primitive.ObjectIDFromHex(id)
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		return
	} else {
		set := map[string]interface{}{
			"restaurantName": settings.RestaurantName,
			"currency":       settings.Currency,
			"taxRate":        settings.TaxRate,
			"alertEmail":     settings.AlertEmail,
			"updatedAt":      now,
		}
		if err := sc.store.UpdateOne(ctx, store.Settings, store.Filter{"_id": existing.ID}, set); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
			return
		}
		settings.ID = existing.ID
	}

	c.JSON(http.StatusOK, settings)
}

type PrinterController struct {
	store store.Store
}

func NewPrinterController(s store.Store) *PrinterController {
	return &PrinterController{store: s}
}

func (pc *PrinterController) GetAllPrinters(c *gin.Context) {
	var printers []models.Printer
	if err := pc.store.Find(c.Request.Context(), store.Printers, store.Query{}, &printers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve printers"})
		return
	}
	c.JSON(http.StatusOK, printers)
}

func (pc *PrinterController) CreatePrinter(c *gin.Context) {
	var printer models.Printer
	if err := c.ShouldBindJSON(&printer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	printer.ID = primitive.NilObjectID
	printer.CreatedAt = time.Now().UTC()

	id, err := pc.store.InsertOne(c.Request.Context(), store.Printers, printer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create printer"})
		return
	}
	printer.ID, _ = primitive.ObjectIDFromHex(id)
	c.JSON(http.StatusOK, printer)
}

func (pc *PrinterController) DeletePrinter(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid printer ID"})
		return
	}

	if err := pc.store.DeleteOne(c.Request.Context(), store.Printers, store.Filter{"_id": objID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete printer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
