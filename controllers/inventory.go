package controllers

import (
	"net/http"
	"time"

	"backend/models"
	"backend/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InventoryController struct {
	store store.Store
}

func NewInventoryController(s store.Store) *InventoryController {
	return &InventoryController{store: s}
}

// GetAllInventory lists the collection and recomputes lowStock for every item
// as a side effect of the read, persisting the refreshed flag. The listing a
// client sees is therefore always consistent with the stored flags.
func (ic *InventoryController) GetAllInventory(c *gin.Context) {
	ctx := c.Request.Context()

	var items []models.Inventory
	if err := ic.store.Find(ctx, store.Inventory, store.Query{}, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve inventory"})
		return
	}

	for i := range items {
		low := items[i].Stock <= items[i].MinThreshold
		err := ic.store.UpdateOne(ctx, store.Inventory, store.Filter{"_id": items[i].ID}, map[string]interface{}{
			"lowStock": low,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh low-stock flags"})
			return
		}
		items[i].LowStock = low
	}

	c.JSON(http.StatusOK, items)
}

func (ic *InventoryController) GetInventoryItem(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory ID"})
		return
	}

	var item models.Inventory
	err = ic.store.FindOne(c.Request.Context(), store.Inventory, store.Filter{"_id": objID}, &item)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve inventory item"})
		}
		return
	}
	item.LowStock = item.Stock <= item.MinThreshold
	c.JSON(http.StatusOK, item)
}

func (ic *InventoryController) CreateInventoryItem(c *gin.Context) {
	var item models.Inventory
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	item.ID = primitive.NilObjectID
	item.LowStock = item.Stock <= item.MinThreshold
	item.CreatedAt = now
	item.UpdatedAt = now

	id, err := ic.store.InsertOne(c.Request.Context(), store.Inventory, item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inventory item"})
		return
	}
	item.ID, _ = primitive.ObjectIDFromHex(id)
	c.JSON(http.StatusOK, item)
}

func (ic *InventoryController) UpdateInventoryItem(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory ID"})
		return
	}

	var item models.Inventory
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	item.LowStock = item.Stock <= item.MinThreshold
	set := map[string]interface{}{
		"name":         item.Name,
		"category":     item.Category,
		"unit":         item.Unit,
		"stock":        item.Stock,
		"minThreshold": item.MinThreshold,
		"price":        item.Price,
		"lowStock":     item.LowStock,
		"updatedAt":    now,
	}
	if err := ic.store.UpdateOne(c.Request.Context(), store.Inventory, store.Filter{"_id": objID}, set); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory item"})
		return
	}

	item.ID = objID
	item.UpdatedAt = now
	c.JSON(http.StatusOK, item)
}

// AdjustInventory applies a stock movement whose sign is fixed by its type:
// refill and adjustment add the quantity, wastage subtracts it. Every
// adjustment appends a transaction record.
func (ic *InventoryController) AdjustInventory(c *gin.Context) {
	id := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory ID"})
		return
	}

	var req models.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var delta float64
	switch req.Type {
	case models.TxnRefill, models.TxnAdjustment:
		delta = req.Quantity
	case models.TxnWastage:
		delta = -req.Quantity
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be refill, wastage or adjustment"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()

	var item models.Inventory
	err = ic.store.FindOne(ctx, store.Inventory, store.Filter{"_id": objID}, &item)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve inventory item"})
		}
		return
	}

	if err := ic.store.IncOne(ctx, store.Inventory, store.Filter{"_id": objID}, "stock", delta); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust stock"})
		return
	}

	txn := models.InventoryTransaction{
		InventoryID: id,
		Type:        req.Type,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		CreatedAt:   now,
	}
	if _, err := ic.store.InsertOne(ctx, store.InventoryTransactions, txn); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log adjustment"})
		return
	}

	// refresh the derived flag on the moved stock
	item.Stock += delta
	item.LowStock = item.Stock <= item.MinThreshold
	item.UpdatedAt = now
	err = ic.store.UpdateOne(ctx, store.Inventory, store.Filter{"_id": objID}, map[string]interface{}{
		"lowStock":  item.LowStock,
		"updatedAt": now,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh low-stock flag"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (ic *InventoryController) GetInventoryTransactions(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory ID"})
		return
	}

	var txns []models.InventoryTransaction
	err := ic.store.Find(c.Request.Context(), store.InventoryTransactions, store.Query{
		Filter: store.Filter{"inventoryId": id},
		Sort:   "-createdAt",
	}, &txns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}
	c.JSON(http.StatusOK, txns)
}

func (ic *InventoryController) DeleteInventoryItem(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory ID"})
		return
	}

	if err := ic.store.DeleteOne(c.Request.Context(), store.Inventory, store.Filter{"_id": objID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
