package controllers

import (
	"net/http"
	"sort"
	"time"

	"backend/models"
	"backend/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportController struct {
	store store.Store
	loc   *time.Location
}

func NewReportController(s store.Store, loc *time.Location) *ReportController {
	return &ReportController{store: s, loc: loc}
}

type itemSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// GetSalesReport folds the paid orders, optionally limited to an inclusive
// date range, into totals, category buckets and a top-10 item table.
func (rc *ReportController) GetSalesReport(c *gin.Context) {
	filter := store.Filter{"paymentStatus": models.PaymentPaid}
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate != "" && endDate != "" {
		start, err := parseDate(startDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
			return
		}
		end, err := parseDate(endDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
			return
		}
		filter["createdAt"] = map[string]interface{}{"$gte": start, "$lte": end}
	}

	ctx := c.Request.Context()
	var orders []models.Order
	if err := rc.store.Find(ctx, store.Orders, store.Query{Filter: filter}, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	var totalSales, totalTax float64
	byCategory := map[string]float64{}
	bySlot := map[string]*itemSales{}
	var itemOrder []string
	categoryCache := map[string]string{}

	for _, order := range orders {
		totalSales += order.Total
		totalTax += order.Tax

		for _, item := range order.Items {
			revenue := item.Price * float64(item.Quantity)

			category, ok := categoryCache[item.MenuItemID]
			if !ok {
				category = "uncategorized"
				if menuID, err := primitive.ObjectIDFromHex(item.MenuItemID); err == nil {
					var menuItem models.MenuItem
					if err := rc.store.FindOne(ctx, store.MenuItems, store.Filter{"_id": menuID}, &menuItem); err == nil {
						category = menuItem.Category
					}
				}
				categoryCache[item.MenuItemID] = category
			}
			byCategory[category] += revenue

			slot, ok := bySlot[item.Name]
			if !ok {
				slot = &itemSales{Name: item.Name}
				bySlot[item.Name] = slot
				itemOrder = append(itemOrder, item.Name)
			}
			slot.Quantity += item.Quantity
			slot.Revenue += revenue
		}
	}

	// encounter order holds for ties because the sort is stable
	topItems := make([]itemSales, 0, len(itemOrder))
	for _, name := range itemOrder {
		topItems = append(topItems, *bySlot[name])
	}
	sort.SliceStable(topItems, func(i, j int) bool {
		return topItems[i].Revenue > topItems[j].Revenue
	})
	if len(topItems) > 10 {
		topItems = topItems[:10]
	}

	averageOrderValue := 0.0
	if len(orders) > 0 {
		averageOrderValue = totalSales / float64(len(orders))
	}

	embedded := orders
	if len(embedded) > 100 {
		embedded = embedded[:100]
	}

	c.JSON(http.StatusOK, gin.H{
		"totalSales":        totalSales,
		"totalTax":          totalTax,
		"totalOrders":       len(orders),
		"averageOrderValue": averageOrderValue,
		"salesByCategory":   byCategory,
		"topItems":          topItems,
		"orders":            embedded,
	})
}

// GetKitchenPerformance counts KOTs from the trailing 24 hours by status.
func (rc *ReportController) GetKitchenPerformance(c *gin.Context) {
	since := time.Now().UTC().Add(-24 * time.Hour)

	var kots []models.KOTBatch
	err := rc.store.Find(c.Request.Context(), store.KOTBatches, store.Query{
		Filter: store.Filter{"createdAt": map[string]interface{}{"$gte": since}},
	}, &kots)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve KOTs"})
		return
	}

	byStatus := map[string]int{}
	for _, kot := range kots {
		byStatus[string(kot.Status)]++
	}

	completionRate := 0.0
	if len(kots) > 0 {
		completionRate = float64(byStatus[string(models.KOTCompleted)]) / float64(len(kots)) * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"totalKots":      len(kots),
		"byStatus":       byStatus,
		"completionRate": completionRate,
	})
}

// GetInventoryStatus lists everything at or under threshold and sums
// stock value where a unit price is recorded (most items have none).
func (rc *ReportController) GetInventoryStatus(c *gin.Context) {
	var items []models.Inventory
	if err := rc.store.Find(c.Request.Context(), store.Inventory, store.Query{}, &items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve inventory"})
		return
	}

	var lowItems []models.Inventory
	totalValue := 0.0
	for _, item := range items {
		if item.Stock <= item.MinThreshold {
			item.LowStock = true
			lowItems = append(lowItems, item)
		}
		if item.Price > 0 {
			totalValue += item.Stock * item.Price
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalItems":    len(items),
		"lowStockCount": len(lowItems),
		"lowStockItems": lowItems,
		"totalValue":    totalValue,
	})
}

// GetLiveDashboard is the composite snapshot the front-of-house screen polls:
// active orders, open kitchen tickets, busy tables and today's takings from
// midnight in the restaurant's timezone.
func (rc *ReportController) GetLiveDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var activeOrders []models.Order
	err := rc.store.Find(ctx, store.Orders, store.Query{
		Filter: store.Filter{"status": map[string]interface{}{
			"$in": []string{
				string(models.OrderPending),
				string(models.OrderPreparing),
				string(models.OrderReady),
			},
		}},
		Sort: "-createdAt",
	}, &activeOrders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	var openKots []models.KOTBatch
	err = rc.store.Find(ctx, store.KOTBatches, store.Query{
		Filter: store.Filter{"status": map[string]interface{}{
			"$in": []string{
				string(models.KOTPending),
				string(models.KOTPreparing),
			},
		}},
		Sort: "-createdAt",
	}, &openKots)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve KOTs"})
		return
	}

	var busyTables []models.Table
	err = rc.store.Find(ctx, store.Tables, store.Query{
		Filter: store.Filter{"status": map[string]interface{}{"$ne": string(models.TableAvailable)}},
		Sort:   "tableNumber",
	}, &busyTables)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tables"})
		return
	}

	now := time.Now().In(rc.loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, rc.loc)

	var todaysOrders []models.Order
	err = rc.store.Find(ctx, store.Orders, store.Query{
		Filter: store.Filter{"createdAt": map[string]interface{}{"$gte": midnight}},
	}, &todaysOrders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve today's orders"})
		return
	}

	todaysRevenue := 0.0
	for _, order := range todaysOrders {
		todaysRevenue += order.Total
	}
	todaysAverage := 0.0
	if len(todaysOrders) > 0 {
		todaysAverage = todaysRevenue / float64(len(todaysOrders))
	}

	c.JSON(http.StatusOK, gin.H{
		"activeOrders":       activeOrders,
		"openKots":           openKots,
		"busyTables":         busyTables,
		"todaysOrderCount":   len(todaysOrders),
		"todaysRevenue":      todaysRevenue,
		"todaysAverageValue": todaysAverage,
	})
}
