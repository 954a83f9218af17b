package controllers

import (
	"net/http"
	"time"

	"backend/models"
	"backend/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuController struct {
	store store.Store
}

func NewMenuController(s store.Store) *MenuController {
	return &MenuController{store: s}
}

func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.store.Find(c.Request.Context(), store.MenuItems, store.Query{}, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (mc *MenuController) GetMenuItem(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	var item models.MenuItem
	err = mc.store.FindOne(c.Request.Context(), store.MenuItems, store.Filter{"_id": objID}, &item)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve menu item"})
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	item.ID = primitive.NilObjectID
	item.CreatedAt = now
	item.UpdatedAt = now

	id, err := mc.store.InsertOne(c.Request.Context(), store.MenuItems, item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	item.ID, _ = primitive.ObjectIDFromHex(id)
	c.JSON(http.StatusOK, item)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	set := map[string]interface{}{
		"name":         item.Name,
		"category":     item.Category,
		"price":        item.Price,
		"emoji":        item.Emoji,
		"image":        item.Image,
		"stock":        item.Stock,
		"soldOut":      item.SoldOut,
		"description":  item.Description,
		"modifiers":    item.Modifiers,
		"specialFlags": item.SpecialFlags,
		"ingredients":  item.Ingredients,
		"updatedAt":    now,
	}
	if err := mc.store.UpdateOne(c.Request.Context(), store.MenuItems, store.Filter{"_id": objID}, set); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}

	item.ID = objID
	item.UpdatedAt = now
	c.JSON(http.StatusOK, item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	if err := mc.store.DeleteOne(c.Request.Context(), store.MenuItems, store.Filter{"_id": objID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
