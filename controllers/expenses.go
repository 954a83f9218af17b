package controllers

import (
	"net/http"
	"time"

	"backend/models"
	"backend/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExpenseController struct {
	store store.Store
}

func NewExpenseController(s store.Store) *ExpenseController {
	return &ExpenseController{store: s}
}

// GetAllExpenses lists expenses newest first, optionally limited to an
// inclusive start_date/end_date range.
func (ec *ExpenseController) GetAllExpenses(c *gin.Context) {
	filter := store.Filter{}
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
		filter["date"] = map[string]interface{}{"$gte": start, "$lte": end}
	}

	var expenses []models.Expense
	err := ec.store.Find(c.Request.Context(), store.Expenses, store.Query{Filter: filter, Sort: "-date"}, &expenses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve expenses"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	var expense models.Expense
	if err := c.ShouldBindJSON(&expense); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense.ID = primitive.NilObjectID
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}

	id, err := ec.store.InsertOne(c.Request.Context(), store.Expenses, expense)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}
	expense.ID, _ = primitive.ObjectIDFromHex(id)
	c.JSON(http.StatusOK, expense)
}

func (ec *ExpenseController) DeleteExpense(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense ID"})
		return
	}

	if err := ec.store.DeleteOne(c.Request.Context(), store.Expenses, store.Filter{"_id": objID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
