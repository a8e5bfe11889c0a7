package http

import (
	"github.com/gin-gonic/gin"

	"github.com/garyjia/expense-companion/internal/application/service"
	"github.com/garyjia/expense-companion/internal/display"
)

// LoginRequest is the sign-in form
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/session
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	session, err := h.services.Session.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, "login", err)
		return
	}
	h.ok(c, session)
}

// ListExpenses handles GET /api/expenses
func (h *Handlers) ListExpenses(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}
	expenses, err := h.services.Expenses.List(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, "list expenses", err)
		return
	}
	h.ok(c, toExpenseViews(expenses))
}

// ExpenseSummary handles GET /api/expenses/summary
func (h *Handlers) ExpenseSummary(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}
	summary, err := h.services.Expenses.Summary(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, "summarise expenses", err)
		return
	}
	h.ok(c, summary)
}

// GetExpense handles GET /api/expenses/:id
func (h *Handlers) GetExpense(c *gin.Context) {
	expense, err := h.services.Expenses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get expense", err)
		return
	}
	h.ok(c, toExpenseView(expense))
}

// CreateExpense handles POST /api/expenses
func (h *Handlers) CreateExpense(c *gin.Context) {
	var input service.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	expense, err := h.services.Expenses.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "create expense", err)
		return
	}
	h.created(c, toExpenseView(expense))
}

// UpdateExpense handles PUT /api/expenses/:id
func (h *Handlers) UpdateExpense(c *gin.Context) {
	var input service.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	expense, err := h.services.Expenses.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.fail(c, "update expense", err)
		return
	}
	h.ok(c, toExpenseView(expense))
}

// DeleteExpense handles DELETE /api/expenses/:id
func (h *Handlers) DeleteExpense(c *gin.Context) {
	if err := h.services.Expenses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete expense", err)
		return
	}
	h.ok(c, nil)
}

// ListReceipts handles GET /api/receipts
func (h *Handlers) ListReceipts(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}
	receipts, err := h.services.Receipts.List(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, "list receipts", err)
		return
	}
	h.ok(c, toReceiptViews(receipts))
}

// AddReceipt handles POST /api/receipts
func (h *Handlers) AddReceipt(c *gin.Context) {
	var input service.ReceiptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	receipt, err := h.services.Receipts.Add(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "add receipt", err)
		return
	}
	h.created(c, toReceiptView(receipt))
}

// GetReceipt handles GET /api/receipts/:id
func (h *Handlers) GetReceipt(c *gin.Context) {
	receipt, err := h.services.Receipts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get receipt", err)
		return
	}
	h.ok(c, toReceiptView(receipt))
}

// ConfirmAmountRequest carries the amount the user confirmed on the capture screen
type ConfirmAmountRequest struct {
	Amount string `json:"amount"`
}

// ConfirmReceiptAmount handles PUT /api/receipts/:id/amount
func (h *Handlers) ConfirmReceiptAmount(c *gin.Context) {
	var req ConfirmAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	receipt, err := h.services.Receipts.ConfirmAmount(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		h.fail(c, "confirm receipt amount", err)
		return
	}
	h.ok(c, toReceiptView(receipt))
}

// AttachReceiptRequest names the expense a receipt belongs to
type AttachReceiptRequest struct {
	ExpenseID string `json:"expense_id"`
}

// AttachReceipt handles PUT /api/receipts/:id/expense
func (h *Handlers) AttachReceipt(c *gin.Context) {
	var req AttachReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	receipt, err := h.services.Receipts.AttachToExpense(c.Request.Context(), c.Param("id"), req.ExpenseID)
	if err != nil {
		h.fail(c, "attach receipt", err)
		return
	}
	h.ok(c, toReceiptView(receipt))
}

// CardListView is the credit-card screen
type CardListView struct {
	Transactions []CardView `json:"transactions"`
	Total        float64    `json:"total"`
	TotalText    string     `json:"total_text"`
}

// ListCards handles GET /api/cards?type=Visa&type=Amex
func (h *Handlers) ListCards(c *gin.Context) {
	list, err := h.services.Cards.List(c.Request.Context(), c.QueryArray("type")...)
	if err != nil {
		h.fail(c, "list cards", err)
		return
	}

	view := CardListView{
		Transactions: make([]CardView, 0, len(list.Transactions)),
		Total:        list.Total,
		TotalText:    display.Thousands(list.Total),
	}
	for _, t := range list.Transactions {
		view.Transactions = append(view.Transactions, CardView{
			CardTransaction: t,
			DisplayText:     display.Money(t.Amount),
		})
	}
	h.ok(c, view)
}
