package http

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Dashboard handles GET /api/dashboard
func (h *Handlers) Dashboard(c *gin.Context) {
	summary, err := h.services.Dashboard.Summary(c.Request.Context(), h.currentUser(c))
	if err != nil {
		h.fail(c, "dashboard", err)
		return
	}
	openDrafts := 0
	if h.services.Drafts != nil {
		openDrafts = h.services.Drafts.InProgress()
	}
	h.ok(c, toDashboardView(summary, openDrafts))
}

// ListReports handles GET /api/reports
func (h *Handlers) ListReports(c *gin.Context) {
	criteria, err := parseCriteria(c)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}
	reports, err := h.services.Reports.List(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, "list reports", err)
		return
	}
	h.ok(c, toReportViews(reports))
}

// GetReport handles GET /api/reports/:id
func (h *Handlers) GetReport(c *gin.Context) {
	detail, err := h.services.Reports.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get report", err)
		return
	}
	h.ok(c, toReportDetailView(detail))
}

// DecisionRequest is the optional reviewer note on approve or reject
type DecisionRequest struct {
	Comment string `json:"comment"`
}

// ApproveReport handles POST /api/reports/:id/approve
func (h *Handlers) ApproveReport(c *gin.Context) {
	var req DecisionRequest
	_ = c.ShouldBindJSON(&req)

	report, err := h.services.Approvals.Approve(c.Request.Context(), c.Param("id"), h.currentUser(c), req.Comment)
	if err != nil {
		h.fail(c, "approve report", err)
		return
	}
	h.ok(c, toReportView(report))
}

// RejectReport handles POST /api/reports/:id/reject
func (h *Handlers) RejectReport(c *gin.Context) {
	var req DecisionRequest
	_ = c.ShouldBindJSON(&req)

	report, err := h.services.Approvals.Reject(c.Request.Context(), c.Param("id"), h.currentUser(c), req.Comment)
	if err != nil {
		h.fail(c, "reject report", err)
		return
	}
	h.ok(c, toReportView(report))
}

// CommentRequest is a new entry in the report comment thread
type CommentRequest struct {
	Content string `json:"content"`
	Kind    string `json:"kind"`
}

// AddComment handles POST /api/reports/:id/comments
func (h *Handlers) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	comment, err := h.services.Reports.AddComment(c.Request.Context(), c.Param("id"), h.currentUser(c), req.Content, req.Kind)
	if err != nil {
		h.fail(c, "add comment", err)
		return
	}
	h.created(c, comment)
}

// ExportReport handles GET /api/reports/:id/export and streams the workbook
func (h *Handlers) ExportReport(c *gin.Context) {
	path, err := h.services.Export.ExportReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "export report", err)
		return
	}
	c.FileAttachment(h.services.Files.GetFullPath(path), filepath.Base(path))
}
