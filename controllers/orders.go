package controllers

import (
	"context"
	"fmt"
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

type OrderController struct {
	store store.Store
	rt    realtime.Broadcaster
}

func NewOrderController(s store.Store, rt realtime.Broadcaster) *OrderController {
	return &OrderController{store: s, rt: rt}
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	err := oc.store.Find(c.Request.Context(), store.Orders, store.Query{Sort: "-createdAt"}, &orders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var order models.Order
	err = oc.store.FindOne(c.Request.Context(), store.Orders, store.Filter{"_id": objID}, &order)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// nextTokenNumber reads the highest takeout token and adds one. This is a
// read-then-write sequence with no uniqueness guard; concurrent takeout
// checkouts can race and receive the same token.
func (oc *OrderController) nextTokenNumber(ctx context.Context) (int, error) {
	var last []models.Order
	err := oc.store.Find(ctx, store.Orders, store.Query{
		Filter: store.Filter{"orderType": models.OrderTakeout},
		Sort:   "-tokenNumber",
		Limit:  1,
	}, &last)
	if err != nil {
		return 0, err
	}
	if len(last) == 0 {
		return 1, nil
	}
	return last[0].TokenNumber + 1, nil
}

func (oc *OrderController) NextToken(c *gin.Context) {
	token, err := oc.nextTokenNumber(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute next token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nextToken": token})
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if order.OrderType != models.OrderDineIn && order.OrderType != models.OrderTakeout {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderType must be dine-in or takeout"})
		return
	}
	if order.OrderType == models.OrderDineIn && order.TableNumber <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tableNumber is required for dine-in orders"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()
	order.ID = primitive.NilObjectID
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentUnpaid
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	if order.OrderType == models.OrderTakeout && order.TokenNumber == 0 {
		token, err := oc.nextTokenNumber(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign token number"})
			return
		}
		order.TokenNumber = token
	}

	id, err := oc.store.InsertOne(ctx, store.Orders, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	order.ID, _ = primitive.ObjectIDFromHex(id)

	if order.OrderType == models.OrderDineIn {
		oc.occupyTable(ctx, order.TableNumber, id, now)
	}

	if err := oc.deductInventory(ctx, &order, id, now); err != nil {
		// no rollback: the order is already persisted and earlier deductions
		// already applied
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	oc.rt.Emit("order_updated", order, realtime.RoomOrders)
	c.JSON(http.StatusOK, order)
}

// occupyTable marks the table occupied and points it at the order. There is
// no check that the table was available; a double-booking overwrites the
// previous reference.
func (oc *OrderController) occupyTable(ctx context.Context, tableNumber int, orderID string, now time.Time) {
	var table models.Table
	err := oc.store.FindOne(ctx, store.Tables, store.Filter{"tableNumber": tableNumber}, &table)
	if err == nil && !statemachine.Tables.Can(string(table.Status), string(models.TableOccupied)) {
		log.Printf("table %d: unusual transition %s -> occupied", tableNumber, table.Status)
	}

	err = oc.store.UpdateOne(ctx, store.Tables, store.Filter{"tableNumber": tableNumber}, map[string]interface{}{
		"status":       models.TableOccupied,
		"currentOrder": orderID,
		"updatedAt":    now,
	})
	if err != nil {
		log.Printf("failed to occupy table %d for order %s: %v", tableNumber, orderID, err)
	}
}

// deductInventory walks the order items, resolves each menu item and decrements
// the referenced inventory stock by ingredientQuantity x itemQuantity,
// appending one deduct transaction per ingredient per item. The loop is not
// atomic: a failure partway leaves the earlier deductions applied.
func (oc *OrderController) deductInventory(ctx context.Context, order *models.Order, orderID string, now time.Time) error {
	for _, item := range order.Items {
		menuID, err := primitive.ObjectIDFromHex(item.MenuItemID)
		if err != nil {
			return fmt.Errorf("invalid menu item id %q on order item", item.MenuItemID)
		}

		var menuItem models.MenuItem
		if err := oc.store.FindOne(ctx, store.MenuItems, store.Filter{"_id": menuID}, &menuItem); err != nil {
			if err == store.ErrNotFound {
				return fmt.Errorf("menu item %s not found during inventory deduction", item.MenuItemID)
			}
			return fmt.Errorf("failed to look up menu item %s: %v", item.MenuItemID, err)
		}

		for _, ing := range menuItem.Ingredients {
			invID, err := primitive.ObjectIDFromHex(ing.IngredientID)
			if err != nil {
				return fmt.Errorf("invalid ingredient id %q on menu item %s", ing.IngredientID, menuItem.Name)
			}
			qty := ing.Quantity * float64(item.Quantity)

			if err := oc.store.IncOne(ctx, store.Inventory, store.Filter{"_id": invID}, "stock", -qty); err != nil {
				return fmt.Errorf("failed to deduct %s: %v", ing.IngredientID, err)
			}

			txn := models.InventoryTransaction{
				InventoryID: ing.IngredientID,
				Type:        models.TxnDeduct,
				Quantity:    qty,
				Reason:      "Order " + orderID,
				OrderID:     orderID,
				CreatedAt:   now,
			}
			if _, err := oc.store.InsertOne(ctx, store.InventoryTransactions, txn); err != nil {
				return fmt.Errorf("failed to log deduction for %s: %v", ing.IngredientID, err)
			}
		}
	}
	return nil
}

func (oc *OrderController) UpdateOrder(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()

	var existing models.Order
	if err := oc.store.FindOne(ctx, store.Orders, store.Filter{"_id": objID}, &existing); err == nil {
		if !statemachine.Orders.Can(string(existing.Status), string(order.Status)) {
			log.Printf("order %s: unusual transition %s -> %s", objID.Hex(), existing.Status, order.Status)
		}
		order.CreatedAt = existing.CreatedAt
	}

	set := map[string]interface{}{
		"orderType":     order.OrderType,
		"tableNumber":   order.TableNumber,
		"tokenNumber":   order.TokenNumber,
		"items":         order.Items,
		"status":        order.Status,
		"subtotal":      order.Subtotal,
		"tax":           order.Tax,
		"total":         order.Total,
		"paymentMethod": order.PaymentMethod,
		"paymentStatus": order.PaymentStatus,
		"kotSent":       order.KOTSent,
		"updatedAt":     now,
	}
	if err := oc.store.UpdateOne(ctx, store.Orders, store.Filter{"_id": objID}, set); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	order.ID = objID
	order.UpdatedAt = now
	oc.rt.Emit("order_updated", order, realtime.RoomOrders)
	c.JSON(http.StatusOK, order)
}

// DeleteOrder is administrative cleanup. For a dine-in order the table is
// freed by the table number recorded on the order, not the live currentOrder
// reference; a table reassigned in the meantime is freed regardless.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx := c.Request.Context()
	var order models.Order
	if err := oc.store.FindOne(ctx, store.Orders, store.Filter{"_id": objID}, &order); err == nil {
		if order.OrderType == models.OrderDineIn {
			err := oc.store.UpdateOne(ctx, store.Tables, store.Filter{"tableNumber": order.TableNumber}, map[string]interface{}{
				"status":       models.TableAvailable,
				"currentOrder": nil,
				"updatedAt":    time.Now().UTC(),
			})
			if err != nil {
				log.Printf("failed to free table %d while deleting order %s: %v", order.TableNumber, id, err)
			}
		}
	}

	if err := oc.store.DeleteOne(ctx, store.Orders, store.Filter{"_id": objID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}

	oc.rt.Emit("order_deleted", gin.H{"id": id}, realtime.RoomOrders)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
