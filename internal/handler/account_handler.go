package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gallery/adminhub/internal/model"
	"gallery/adminhub/internal/service"
	"gallery/adminhub/pkg/response"
)

type AccountHandler struct {
	identityService service.IdentityService
	auditService    service.AuditService
}

func NewAccountHandler(identityService service.IdentityService, auditService service.AuditService) *AccountHandler {
	return &AccountHandler{identityService: identityService, auditService: auditService}
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// Me returns the authenticated caller, including the linked artist id when there is one.
func (h *AccountHandler) Me(c *gin.Context) {
	accountID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	caller, err := h.identityService.CurrentCaller(c.Request.Context(), accountID)
	if err != nil {
		writeServiceError(c, err, "failed to load account")
		return
	}

	response.Success(c, caller)
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.identityService.ListAccounts(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "failed to list accounts")
		return
	}

	response.Success(c, accounts)
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req service.CreateAccountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	account, err := h.identityService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err, "failed to create account")
		return
	}

	recordAudit(c, h.auditService, "account.create", "account", account.ID.String(), account.Email)
	response.Created(c, account)
}

func (h *AccountHandler) UpdateRole(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	account, err := h.identityService.SetRole(c.Request.Context(), accountID, model.Role(req.Role))
	if err != nil {
		writeServiceError(c, err, "failed to update role")
		return
	}

	recordAudit(c, h.auditService, "account.role", "account", account.ID.String(), req.Role)
	response.Success(c, account)
}
