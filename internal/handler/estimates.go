package handler

import (
	"net/http"

	"github.com/mrcdevv/autotech-sub000/internal/apierror"
	"github.com/mrcdevv/autotech-sub000/internal/dto"
	"github.com/mrcdevv/autotech-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type EstimatesHandler struct{ svc service.EstimateService }

func NewEstimatesHandler(svc service.EstimateService) *EstimatesHandler {
	return &EstimatesHandler{svc: svc}
}

// List godoc
// @Summary      Listar presupuestos
// @Description  Retorna lista paginada de presupuestos filtrada por estado, cliente y patente.
// @Tags         presupuestos
// @Produce      json
// @Security     BearerAuth
// @Param        status      query string false "PENDIENTE | ACEPTADO | RECHAZADO"
// @Param        client_name query string false "Parte del nombre del cliente"
// @Param        plate       query string false "Parte de la patente"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 20)"
// @Success      200 {object} dto.EstimateListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/estimates [get]
func (h *EstimatesHandler) List(c *gin.Context) {
	var filter dto.EstimateFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary      Obtener presupuesto
// @Tags         presupuestos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del presupuesto"
// @Success      200 {object} dto.EstimateDetailResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/estimates/{id} [get]
func (h *EstimatesHandler) GetByID(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByRepairOrder godoc
// @Summary      Obtener presupuesto por orden de reparación
// @Tags         presupuestos
// @Produce      json
// @Security     BearerAuth
// @Param        repairOrderId path string true "UUID de la orden de reparación"
// @Success      200 {object} dto.EstimateDetailResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/estimates/repair-order/{repairOrderId} [get]
func (h *EstimatesHandler) GetByRepairOrder(c *gin.Context) {
	id, ok := parsePathID(c, "repairOrderId")
	if !ok {
		return
	}
	resp, err := h.svc.GetByRepairOrderID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Crear presupuesto
// @Description  Crea un presupuesto en estado PENDIENTE con su total calculado.
// @Tags         presupuestos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.EstimateRequest true "Detalle del presupuesto"
// @Success      201 {object} dto.EstimateDetailResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/estimates [post]
func (h *EstimatesHandler) Create(c *gin.Context) {
	var req dto.EstimateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Actualizar presupuesto
// @Description  Reemplaza los ítems y recalcula el total. Solo en estado PENDIENTE.
// @Tags         presupuestos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string              true "UUID del presupuesto"
// @Param        body body dto.EstimateRequest true "Detalle del presupuesto"
// @Success      200 {object} dto.EstimateDetailResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/estimates/{id} [put]
func (h *EstimatesHandler) Update(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req dto.EstimateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Approve godoc
// @Summary      Aceptar presupuesto
// @Description  Transición PENDIENTE → ACEPTADO.
// @Tags         presupuestos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del presupuesto"
// @Success      200 {object} dto.EstimateDetailResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/estimates/{id}/approve [patch]
func (h *EstimatesHandler) Approve(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reject godoc
// @Summary      Rechazar presupuesto
// @Description  Transición PENDIENTE → RECHAZADO.
// @Tags         presupuestos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del presupuesto"
// @Success      200 {object} dto.EstimateDetailResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/estimates/{id}/reject [patch]
func (h *EstimatesHandler) Reject(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Reject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InvoiceData godoc
// @Summary      Datos de facturación del presupuesto
// @Description  Proyección inmutable del presupuesto ACEPTADO para sembrar una factura.
// @Tags         presupuestos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del presupuesto"
// @Success      200 {object} dto.EstimateInvoiceData
// @Failure      400 {object} apierror.APIError
// @Router       /v1/estimates/{id}/invoice-data [get]
func (h *EstimatesHandler) InvoiceData(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ConvertToInvoiceData(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Eliminar presupuesto
// @Tags         presupuestos
// @Security     BearerAuth
// @Param        id path string true "UUID del presupuesto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/estimates/{id} [delete]
func (h *EstimatesHandler) Delete(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
