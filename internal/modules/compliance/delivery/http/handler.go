package handler

import (
	"net/http"

	"bouncearound.com/daycare/internal/middleware"
	"bouncearound.com/daycare/internal/modules/compliance/dto"
	complianceService "bouncearound.com/daycare/internal/modules/compliance/service"
	"bouncearound.com/daycare/pkg/response"
	"github.com/gin-gonic/gin"
)

type ComplianceHandler struct {
	forms         complianceService.EnrollmentService
	immunizations complianceService.ImmunizationService
	credentials   complianceService.CredentialService
}

func NewComplianceHandler(
	forms complianceService.EnrollmentService,
	immunizations complianceService.ImmunizationService,
	credentials complianceService.CredentialService,
) *ComplianceHandler {
	return &ComplianceHandler{
		forms:         forms,
		immunizations: immunizations,
		credentials:   credentials,
	}
}

func (h *ComplianceHandler) CreateEnrollmentForm(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateEnrollmentFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	form, err := h.forms.Create(c.Request.Context(), actor, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

func (h *ComplianceHandler) GetEnrollmentForms(c *gin.Context) {
	var filter dto.EnrollmentFormFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.forms.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ComplianceHandler) GetEnrollmentForm(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	form, err := h.forms.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *ComplianceHandler) GetChildEnrollmentForm(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	form, err := h.forms.GetByChild(c.Request.Context(), childID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *ComplianceHandler) UpdateEnrollmentForm(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateEnrollmentFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	form, err := h.forms.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *ComplianceHandler) GetIncompleteForms(c *gin.Context) {
	forms, err := h.forms.Incomplete(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, forms)
}

func (h *ComplianceHandler) CreateImmunization(c *gin.Context) {
	var input dto.CreateImmunizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	record, err := h.immunizations.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *ComplianceHandler) GetImmunizations(c *gin.Context) {
	var filter dto.ImmunizationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	records, err := h.immunizations.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *ComplianceHandler) GetChildImmunizations(c *gin.Context) {
	childID, ok := response.ParseUUIDParam(c, "child_id")
	if !ok {
		return
	}

	records, err := h.immunizations.ListByChild(c.Request.Context(), childID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *ComplianceHandler) GetImmunization(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	record, err := h.immunizations.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *ComplianceHandler) UpdateImmunization(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateImmunizationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	record, err := h.immunizations.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *ComplianceHandler) DeleteImmunization(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.immunizations.Delete(c.Request.Context(), actor, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *ComplianceHandler) GetExpiringImmunizations(c *gin.Context) {
	var q dto.ExpiringQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	records, err := h.immunizations.ExpiringSoon(c.Request.Context(), q.Resolve())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *ComplianceHandler) CreateCredential(c *gin.Context) {
	var input dto.CreateCredentialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	credential, err := h.credentials.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, credential)
}

func (h *ComplianceHandler) GetCredentials(c *gin.Context) {
	var filter dto.CredentialFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	credentials, err := h.credentials.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, credentials)
}

func (h *ComplianceHandler) GetUserCredentials(c *gin.Context) {
	userID, ok := response.ParseUUIDParam(c, "user_id")
	if !ok {
		return
	}

	credentials, err := h.credentials.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, credentials)
}

func (h *ComplianceHandler) GetCredential(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	credential, err := h.credentials.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, credential)
}

func (h *ComplianceHandler) UpdateCredential(c *gin.Context) {
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateCredentialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	credential, err := h.credentials.Update(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, credential)
}

func (h *ComplianceHandler) DeleteCredential(c *gin.Context) {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.credentials.Delete(c.Request.Context(), actor, id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *ComplianceHandler) GetExpiringCredentials(c *gin.Context) {
	var q dto.ExpiringQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	credentials, err := h.credentials.ExpiringSoon(c.Request.Context(), q.Resolve())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, credentials)
}

func (h *ComplianceHandler) GetExpiredCredentials(c *gin.Context) {
	credentials, err := h.credentials.Expired(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, credentials)
}
