package http

import (
	"github.com/gin-gonic/gin"

	"github.com/garyjia/expense-companion/internal/application/draft"
)

func (h *Handlers) draft(c *gin.Context) (*draft.Draft, bool) {
	d, err := h.services.Drafts.Get(c.Param("source"))
	if err != nil {
		h.fail(c, "get draft", err)
		return nil, false
	}
	return d, true
}

// GetDraft handles GET /api/drafts/:source
func (h *Handlers) GetDraft(c *gin.Context) {
	d, ok := h.draft(c)
	if !ok {
		return
	}
	h.ok(c, toDraftView(d))
}

// ToggleDraftItem handles POST /api/drafts/:source/toggle/:id
func (h *Handlers) ToggleDraftItem(c *gin.Context) {
	d, ok := h.draft(c)
	if !ok {
		return
	}
	if _, err := d.Toggle(c.Param("id")); err != nil {
		h.fail(c, "toggle draft item", err)
		return
	}
	h.ok(c, toDraftView(d))
}

// OpenDraft handles POST /api/drafts/:source/open
func (h *Handlers) OpenDraft(c *gin.Context) {
	d, ok := h.draft(c)
	if !ok {
		return
	}
	if err := d.Open(c.Request.Context()); err != nil {
		h.fail(c, "open draft", err)
		return
	}
	h.ok(c, toDraftView(d))
}

// UpdateDraftForm handles PUT /api/drafts/:source/form
func (h *Handlers) UpdateDraftForm(c *gin.Context) {
	d, ok := h.draft(c)
	if !ok {
		return
	}
	var form draft.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}
	if err := d.UpdateForm(form); err != nil {
		h.fail(c, "update draft form", err)
		return
	}
	h.ok(c, toDraftView(d))
}

// ConfirmDraft handles POST /api/drafts/:source/confirm. The payload goes
// through the router parameter bag exactly as the report-detail screen
// receives it, and the report is created from what arrives there. When the
// report cannot be created the draft is reopened with the same selection.
func (h *Handlers) ConfirmDraft(c *gin.Context) {
	d, ok := h.draft(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	payload, err := d.Confirm(ctx)
	if err != nil {
		h.fail(c, "confirm draft", err)
		return
	}

	params := payload.Params()
	received, err := draft.PayloadFromParams(params)
	if err != nil {
		h.fail(c, "read draft handoff", err)
		return
	}
	report, err := h.services.Reports.CreateFromDraft(ctx, received, h.currentUser(c))
	if err != nil {
		if rerr := d.Restore(ctx, payload); rerr != nil {
			h.logger.Error("Failed to restore report draft", "source", d.Source(), "error", rerr)
		}
		h.fail(c, "create report", err)
		return
	}

	h.created(c, HandoffView{
		Destination: draft.Destination,
		Params:      params,
		Report:      toReportView(report),
	})
}

// CancelDraft handles POST /api/drafts/:source/cancel
func (h *Handlers) CancelDraft(c *gin.Context) {
	d, ok := h.draft(c)
	if !ok {
		return
	}
	if err := d.Cancel(c.Request.Context()); err != nil {
		h.fail(c, "cancel draft", err)
		return
	}
	h.ok(c, toDraftView(d))
}
