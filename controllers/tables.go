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

const (
	defaultTableCount    = 20
	defaultTableCapacity = 4
)

type TableController struct {
	store store.Store
	rt    realtime.Broadcaster
}

func NewTableController(s store.Store, rt realtime.Broadcaster) *TableController {
	return &TableController{store: s, rt: rt}
}

// GetAllTables lists the floor. An empty collection seeds the default pool of
// 20 four-seat tables first.
func (tc *TableController) GetAllTables(c *gin.Context) {
	ctx := c.Request.Context()

	var tables []models.Table
	if err := tc.store.Find(ctx, store.Tables, store.Query{Sort: "tableNumber"}, &tables); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tables"})
		return
	}

	if len(tables) == 0 {
		now := time.Now().UTC()
		docs := make([]interface{}, 0, defaultTableCount)
		for i := 1; i <= defaultTableCount; i++ {
			docs = append(docs, models.Table{
				TableNumber: i,
				Capacity:    defaultTableCapacity,
				Status:      models.TableAvailable,
				UpdatedAt:   now,
			})
		}
		if err := tc.store.InsertMany(ctx, store.Tables, docs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed tables"})
			return
		}
		if err := tc.store.Find(ctx, store.Tables, store.Query{Sort: "tableNumber"}, &tables); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tables"})
			return
		}
	}

	c.JSON(http.StatusOK, tables)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}

	var table models.Table
	if err := c.ShouldBindJSON(&table); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()

	var existing models.Table
	if err := tc.store.FindOne(ctx, store.Tables, store.Filter{"_id": objID}, &existing); err == nil {
		if !statemachine.Tables.Can(string(existing.Status), string(table.Status)) {
			log.Printf("table %d: unusual transition %s -> %s", existing.TableNumber, existing.Status, table.Status)
		}
	}

	set := map[string]interface{}{
		"tableNumber":  table.TableNumber,
		"capacity":     table.Capacity,
		"status":       table.Status,
		"currentOrder": table.CurrentOrder,
		"updatedAt":    now,
	}
	if err := tc.store.UpdateOne(ctx, store.Tables, store.Filter{"_id": objID}, set); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update table"})
		return
	}

	table.ID = objID
	table.UpdatedAt = now
	tc.rt.Emit("table_updated", table, realtime.RoomOrders)
	c.JSON(http.StatusOK, table)
}
