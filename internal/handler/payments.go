package handler

import (
	"net/http"

	"github.com/mrcdevv/autotech-sub000/internal/dto"
	"github.com/mrcdevv/autotech-sub000/internal/middleware"
	"github.com/mrcdevv/autotech-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentsHandler struct{ svc service.PaymentService }

func NewPaymentsHandler(svc service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{svc: svc}
}

// ListByInvoice godoc
// @Summary      Listar pagos de una factura
// @Description  Retorna el libro de pagos de la factura, ordenado por fecha descendente.
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la factura"
// @Success      200 {array}  dto.PaymentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id}/payments [get]
func (h *PaymentsHandler) ListByInvoice(c *gin.Context) {
	invoiceID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetByInvoiceID(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary      Resumen de pagos de una factura
// @Description  Desglose monetario más total pagado y restante, recalculados sobre el estado vivo.
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la factura"
// @Success      200 {object} dto.PaymentSummaryResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/invoices/{id}/payments/summary [get]
func (h *PaymentsHandler) Summary(c *gin.Context) {
	invoiceID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetSummary(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary      Obtener pago
// @Tags         pagos
// @Produce      json
// @Security     BearerAuth
// @Param        paymentId path string true "UUID del pago"
// @Success      200 {object} dto.PaymentResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/payments/{paymentId} [get]
func (h *PaymentsHandler) GetByID(c *gin.Context) {
	id, ok := parsePathID(c, "paymentId")
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

// Create godoc
// @Summary      Registrar pago
// @Description  Registra un pago contra una factura, validando el restante por pagar bajo bloqueo.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string             true "UUID de la factura"
// @Param        body body dto.PaymentRequest true "Detalle del pago"
// @Success      201 {object} dto.PaymentResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/invoices/{id}/payments [post]
func (h *PaymentsHandler) Create(c *gin.Context) {
	invoiceID, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.RegisteredByEmployeeID == nil {
		req.RegisteredByEmployeeID = claimsEmployeeID(c)
	}
	resp, err := h.svc.Create(c.Request.Context(), invoiceID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Actualizar pago
// @Description  Corrige un pago existente; el saldo se revalida como si el pago no existiera.
// @Tags         pagos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        paymentId path string             true "UUID del pago"
// @Param        body      body dto.PaymentRequest true "Detalle del pago"
// @Success      200 {object} dto.PaymentResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/payments/{paymentId} [put]
func (h *PaymentsHandler) Update(c *gin.Context) {
	id, ok := parsePathID(c, "paymentId")
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.RegisteredByEmployeeID == nil {
		req.RegisteredByEmployeeID = claimsEmployeeID(c)
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Eliminar pago
// @Description  Elimina un pago dejando constancia en el log de auditoría y recalculando el estado de la factura.
// @Tags         pagos
// @Security     BearerAuth
// @Param        paymentId path string true "UUID del pago"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/payments/{paymentId} [delete]
func (h *PaymentsHandler) Delete(c *gin.Context) {
	id, ok := parsePathID(c, "paymentId")
	if !ok {
		return
	}
	var performedBy *uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		if uid, err := uuid.Parse(claims.UserID); err == nil {
			performedBy = &uid
		}
	}
	if err := h.svc.Delete(c.Request.Context(), id, performedBy); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// claimsEmployeeID fills registered_by from the JWT when the body omits it.
func claimsEmployeeID(c *gin.Context) *string {
	claims := middleware.GetClaims(c)
	if claims == nil || claims.UserID == "" {
		return nil
	}
	id := claims.UserID
	return &id
}
