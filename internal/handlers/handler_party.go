package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/agency_ledger/internal/core/ports/services"
	"github.com/SscSPs/agency_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

func registerEmployeeRoutes(rg *gin.RouterGroup, es portssvc.EmployeeSvcFacade) {
	h := &employeeHandler{employeeService: es}

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.GET("/:id", h.getEmployee)
		employees.POST("/:id/payments", h.payEmployee)
	}
}

func (h *employeeHandler) createEmployee(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "create employee")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Employee created", "employee": employee})
}

func (h *employeeHandler) listEmployees(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees(c.Request.Context())
	if err != nil {
		respondError(c, err, "list employees")
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

func (h *employeeHandler) getEmployee(c *gin.Context) {
	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve employee")
		return
	}
	c.JSON(http.StatusOK, employee)
}

func (h *employeeHandler) payEmployee(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	txn, err := h.employeeService.PayEmployee(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "pay employee")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Employee paid", "transaction": txn})
}

type collaboratorHandler struct {
	collaboratorService portssvc.CollaboratorSvcFacade
}

func registerCollaboratorRoutes(rg *gin.RouterGroup, cs portssvc.CollaboratorSvcFacade) {
	h := &collaboratorHandler{collaboratorService: cs}

	collaborators := rg.Group("/collaborators")
	{
		collaborators.POST("", h.createCollaborator)
		collaborators.GET("", h.listCollaborators)
		collaborators.GET("/:id", h.getCollaborator)
		collaborators.POST("/:id/payments", h.payCollaborator)
	}
}

func (h *collaboratorHandler) createCollaborator(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	collaborator, err := h.collaboratorService.CreateCollaborator(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "create collaborator")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Collaborator created", "collaborator": collaborator})
}

func (h *collaboratorHandler) listCollaborators(c *gin.Context) {
	collaborators, err := h.collaboratorService.ListCollaborators(c.Request.Context())
	if err != nil {
		respondError(c, err, "list collaborators")
		return
	}
	c.JSON(http.StatusOK, gin.H{"collaborators": collaborators})
}

func (h *collaboratorHandler) getCollaborator(c *gin.Context) {
	collaborator, err := h.collaboratorService.GetCollaboratorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve collaborator")
		return
	}
	c.JSON(http.StatusOK, collaborator)
}

func (h *collaboratorHandler) payCollaborator(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.PayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	txn, err := h.collaboratorService.PayCollaborator(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "pay collaborator")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Collaborator paid", "transaction": txn})
}

type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func registerCustomerRoutes(rg *gin.RouterGroup, cs portssvc.CustomerSvcFacade) {
	h := &customerHandler{customerService: cs}

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.GET("/:id/debt", h.getCustomerDebt)
	}
}

func (h *customerHandler) createCustomer(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := h.customerService.CreateCustomer(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "create customer")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Customer created", "customer": customer})
}

func (h *customerHandler) listCustomers(c *gin.Context) {
	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err, "list customers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *customerHandler) getCustomer(c *gin.Context) {
	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "retrieve customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// getCustomerDebt reports what a customer still owes across approved income.
func (h *customerHandler) getCustomerDebt(c *gin.Context) {
	customerID := c.Param("id")
	debt, err := h.customerService.GetCustomerDebt(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "calculate customer debt")
		return
	}
	c.JSON(http.StatusOK, dto.CustomerDebtResponse{CustomerID: customerID, Debt: debt})
}
