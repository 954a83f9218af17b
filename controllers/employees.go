package controllers

import (
	"net/http"
	"time"

	"backend/models"
	"backend/store"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmployeeController struct {
	store store.Store
}

func NewEmployeeController(s store.Store) *EmployeeController {
	return &EmployeeController{store: s}
}

func (ec *EmployeeController) GetAllEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := ec.store.Find(c.Request.Context(), store.Employees, store.Query{}, &employees); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve employees"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee.ID = primitive.NilObjectID
	employee.CreatedAt = time.Now().UTC()

	id, err := ec.store.InsertOne(c.Request.Context(), store.Employees, employee)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}
	employee.ID, _ = primitive.ObjectIDFromHex(id)
	c.JSON(http.StatusOK, employee)
}

// Login matches the submitted PIN against the employees collection. A miss is
// the one place this backend answers 401.
func (ec *EmployeeController) Login(c *gin.Context) {
	var body struct {
		Pin string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var employee models.Employee
	err := ec.store.FindOne(c.Request.Context(), store.Employees, store.Filter{"pin": body.Pin}, &employee)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid PIN"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up employee"})
		}
		return
	}

	token, err := utils.GenerateToken(employee.ID.Hex(), employee.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": employee, "token": token})
}

func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return
	}

	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := map[string]interface{}{
		"name":   employee.Name,
		"role":   employee.Role,
		"pin":    employee.Pin,
		"phone":  employee.Phone,
		"salary": employee.Salary,
		"photo":  employee.Photo,
	}
	if err := ec.store.UpdateOne(c.Request.Context(), store.Employees, store.Filter{"_id": objID}, set); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}
	employee.ID = objID
	c.JSON(http.StatusOK, employee)
}

func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return
	}

	if err := ec.store.DeleteOne(c.Request.Context(), store.Employees, store.Filter{"_id": objID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
