package controllers

import (
	"log"
	"net/http"
	"time"

	"backend/models"
	"backend/realtime"
	"backend/statemachine"
	"backend/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type KOTController struct {
	store store.Store
	rt    realtime.Broadcaster
}

func NewKOTController(s store.Store, rt realtime.Broadcaster) *KOTController {
	return &KOTController{store: s, rt: rt}
}

func (kc *KOTController) GetAllKOTs(c *gin.Context) {
	var kots []models.KOTBatch
	err := kc.store.Find(c.Request.Context(), store.KOTBatches, store.Query{Sort: "-createdAt"}, &kots)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve KOTs"})
		return
	}
	c.JSON(http.StatusOK, kots)
}

// CreateKOT persists the ticket and then unconditionally flips the source
// order to kotSent/preparing, whatever its current status.
func (kc *KOTController) CreateKOT(c *gin.Context) {
	var kot models.KOTBatch
	if err := c.ShouldBindJSON(&kot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()
	kot.ID = primitive.NilObjectID
	if kot.Status == "" {
		kot.Status = models.KOTPending
	}
	kot.CreatedAt = now
	kot.UpdatedAt = now

	id, err := kc.store.InsertOne(ctx, store.KOTBatches, kot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create KOT"})
		return
	}
	kot.ID, _ = primitive.ObjectIDFromHex(id)

	orderID, err := primitive.ObjectIDFromHex(kot.OrderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid order ID on KOT"})
		return
	}
	err = kc.store.UpdateOne(ctx, store.Orders, store.Filter{"_id": orderID}, map[string]interface{}{
		"kotSent":   true,
		"status":    models.OrderPreparing,
		"updatedAt": now,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update source order"})
		return
	}

	kc.rt.Emit("kot_updated", kot, realtime.RoomKitchen)
	c.JSON(http.StatusOK, kot)
}

func (kc *KOTController) UpdateKOT(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid KOT ID"})
		return
	}

	var kot models.KOTBatch
	if err := c.ShouldBindJSON(&kot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()

	var existing models.KOTBatch
	if err := kc.store.FindOne(ctx, store.KOTBatches, store.Filter{"_id": objID}, &existing); err == nil {
		if !statemachine.KOTs.Can(string(existing.Status), string(kot.Status)) {
			log.Printf("kot %s: unusual transition %s -> %s", objID.Hex(), existing.Status, kot.Status)
		}
		kot.CreatedAt = existing.CreatedAt
	}

	set := map[string]interface{}{
		"orderId":     kot.OrderID,
		"orderType":   kot.OrderType,
		"tableNumber": kot.TableNumber,
		"tokenNumber": kot.TokenNumber,
		"items":       kot.Items,
		"status":      kot.Status,
		"printerUsed": kot.PrinterUsed,
		"updatedAt":   now,
	}
	if err := kc.store.UpdateOne(ctx, store.KOTBatches, store.Filter{"_id": objID}, set); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update KOT"})
		return
	}

	kot.ID = objID
	kot.UpdatedAt = now
	kc.rt.Emit("kot_updated", kot, realtime.RoomKitchen)
	c.JSON(http.StatusOK, kot)
}
