package handler

import (
	"net/http"

	"github.com/mrcdevv/autotech-sub000/internal/apierror"
	"github.com/mrcdevv/autotech-sub000/internal/dto"
	"github.com/mrcdevv/autotech-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type InvoicesHandler struct{ svc service.InvoiceService }

func NewInvoicesHandler(svc service.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{svc: svc}
}

// List godoc
// @Summary      Listar facturas
// @Description  Retorna lista paginada de facturas filtrada por estado, cliente y patente.
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        status      query string false "PENDIENTE | PAGADA"
// @Param        client_name query string false "Parte del nombre del cliente"
// @Param        plate       query string false "Parte de la patente"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 20)"
// @Success      200 {object} dto.InvoiceListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/invoices [get]
func (h *InvoicesHandler) List(c *gin.Context) {
	var filter dto.InvoiceFilter
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
// @Summary      Obtener factura
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la factura"
// @Success      200 {object} dto.InvoiceDetailResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id} [get]
func (h *InvoicesHandler) GetByID(c *gin.Context) {
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
// @Summary      Obtener factura por orden de reparación
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        repairOrderId path string true "UUID de la orden de reparación"
// @Success      200 {object} dto.InvoiceDetailResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/repair-order/{repairOrderId} [get]
func (h *InvoicesHandler) GetByRepairOrder(c *gin.Context) {
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
// @Summary      Crear factura
// @Description  Crea una factura en estado PENDIENTE con su total calculado y congelado.
// @Tags         facturas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.InvoiceRequest true "Detalle de la factura"
// @Success      201 {object} dto.InvoiceDetailResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/invoices [post]
func (h *InvoicesHandler) Create(c *gin.Context) {
	var req dto.InvoiceRequest
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

// CreateFromEstimate godoc
// @Summary      Facturar presupuesto
// @Description  Crea una factura a partir de un presupuesto ACEPTADO, copiando sus ítems y porcentajes.
// @Tags         facturas
// @Produce      json
// @Security     BearerAuth
// @Param        estimateId path string true "UUID del presupuesto"
// @Success      201 {object} dto.InvoiceDetailResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/invoices/from-estimate/{estimateId} [post]
func (h *InvoicesHandler) CreateFromEstimate(c *gin.Context) {
	id, ok := parsePathID(c, "estimateId")
	if !ok {
		return
	}
	resp, err := h.svc.CreateFromEstimate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// MarkAsPaid godoc
// @Summary      Marcar factura como pagada
// @Description  Forza el estado PAGADA sin registrar un pago. Queda registrado en el log.
// @Tags         facturas
// @Security     BearerAuth
// @Param        id path string true "UUID de la factura"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id}/mark-paid [patch]
func (h *InvoicesHandler) MarkAsPaid(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.MarkAsPaid(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar factura
// @Description  Solo facturas PENDIENTE sin pagos y sin orden de reparación asociada.
// @Tags         facturas
// @Security     BearerAuth
// @Param        id path string true "UUID de la factura"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/invoices/{id} [delete]
func (h *InvoicesHandler) Delete(c *gin.Context) {
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
