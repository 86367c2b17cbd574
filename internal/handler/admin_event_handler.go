package handler

import (
	"github.com/gin-gonic/gin"

	"gallery/adminhub/internal/service"
	"gallery/adminhub/pkg/response"
)

func (h *AdminHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list events")
		return
	}

	response.Success(c, events)
}

func (h *AdminHandler) GetEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "failed to get event")
		return
	}

	response.Success(c, event)
}

func (h *AdminHandler) CreateEvent(c *gin.Context) {
	var req service.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, "failed to create event")
		return
	}

	recordAudit(c, h.auditService, "event.create", "event", uintString(event.ID), event.Title)
	response.Created(c, event)
}

func (h *AdminHandler) UpdateEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err, "failed to update event")
		return
	}

	recordAudit(c, h.auditService, "event.update", "event", uintString(event.ID), "")
	response.Success(c, event)
}

func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "failed to delete event")
		return
	}

	recordAudit(c, h.auditService, "event.delete", "event", uintString(id), "")
	response.Success(c, nil)
}
