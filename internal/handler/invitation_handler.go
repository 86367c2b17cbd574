package handler

import (
	"github.com/gin-gonic/gin"

	"gallery/adminhub/internal/service"
	"gallery/adminhub/pkg/response"
)

type InvitationHandler struct {
	invitationService service.InvitationService
	identityService   service.IdentityService
	auditService      service.AuditService
}

func NewInvitationHandler(
	invitationService service.InvitationService,
	identityService service.IdentityService,
	auditService service.AuditService,
) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		identityService:   identityService,
		auditService:      auditService,
	}
}

type CreateInvitationRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PreApproved bool   `json:"pre_approved"`
}

type ActivateInvitationRequest struct {
	Password string `json:"password" binding:"required"`
}

// Create issues an invitation on behalf of the calling admin.
func (h *InvitationHandler) Create(c *gin.Context) {
	accountID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	caller, err := h.identityService.CurrentCaller(c.Request.Context(), accountID)
	if err != nil {
		writeServiceError(c, err, "failed to load caller")
		return
	}

	invitation, err := h.invitationService.Issue(c.Request.Context(), service.IssueInvitationInput{
		Name:        req.Name,
		Email:       req.Email,
		PreApproved: req.PreApproved,
		InvitedBy:   caller.Name(),
	})
	// the row exists even when only the email failed
	if invitation != nil {
		recordAudit(c, h.auditService, "invitation.create", "invitation", uintString(invitation.ID), invitation.Email)
	}
	if err != nil {
		writeServiceError(c, err, "failed to create invitation")
		return
	}

	response.Created(c, invitation)
}

func (h *InvitationHandler) List(c *gin.Context) {
	invitations, err := h.invitationService.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list invitations")
		return
	}

	response.Success(c, invitations)
}

func (h *InvitationHandler) Stats(c *gin.Context) {
	stats, err := h.invitationService.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to load invitation stats")
		return
	}

	response.Success(c, stats)
}

func (h *InvitationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.invitationService.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err, "failed to delete invitation")
		return
	}

	recordAudit(c, h.auditService, "invitation.delete", "invitation", uintString(id), "")
	response.Success(c, nil)
}

// Validate is public: invitees check their code before signing up.
func (h *InvitationHandler) Validate(c *gin.Context) {
	view, err := h.invitationService.Validate(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeServiceError(c, err, "failed to validate invitation")
		return
	}

	response.Success(c, view)
}

func (h *InvitationHandler) Activate(c *gin.Context) {
	var req ActivateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tokenSet, err := h.invitationService.Activate(c.Request.Context(), c.Param("code"), req.Password)
	if err != nil {
		writeServiceError(c, err, "failed to activate invitation")
		return
	}

	response.Success(c, tokenSet)
}

func (h *InvitationHandler) Redeem(c *gin.Context) {
	accountID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req service.RedeemInvitationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	caller, err := h.identityService.CurrentCaller(c.Request.Context(), accountID)
	if err != nil {
		writeServiceError(c, err, "failed to load caller")
		return
	}

	result, err := h.invitationService.Redeem(c.Request.Context(), caller, req)
	if err != nil {
		writeServiceError(c, err, "failed to redeem invitation")
		return
	}

	response.Created(c, result)
}
