package service

import (
	"context"

	"github.com/mrcdevv/autotech-sub000/internal/apierror"
	"github.com/mrcdevv/autotech-sub000/internal/dto"
	"github.com/mrcdevv/autotech-sub000/internal/model"
	"github.com/mrcdevv/autotech-sub000/internal/money"
	"github.com/mrcdevv/autotech-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type InvoiceService interface {
	List(ctx context.Context, f dto.InvoiceFilter) (*dto.InvoiceListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.InvoiceDetailResponse, error)
	GetByRepairOrderID(ctx context.Context, repairOrderID uuid.UUID) (*dto.InvoiceDetailResponse, error)
	Create(ctx context.Context, req dto.InvoiceRequest) (*dto.InvoiceDetailResponse, error)
	CreateFromEstimate(ctx context.Context, estimateID uuid.UUID) (*dto.InvoiceDetailResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// MarkAsPaid forces PAGADA without consulting the ledger. Administrative
	// override kept for backward compatibility; normal status changes flow
	// through the reconciler only.
	MarkAsPaid(ctx context.Context, id uuid.UUID) error
}

type invoiceService struct {
	repo            repository.InvoiceRepository
	paymentRepo     repository.PaymentRepository
	clientRepo      repository.ClientRepository
	vehicleRepo     repository.VehicleRepository
	repairOrderRepo repository.RepairOrderRepository
	estimates       EstimateService
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	repairOrderRepo repository.RepairOrderRepository,
	estimates EstimateService,
) InvoiceService {
	return &invoiceService{
		repo:            repo,
		paymentRepo:     paymentRepo,
		clientRepo:      clientRepo,
		vehicleRepo:     vehicleRepo,
		repairOrderRepo: repairOrderRepo,
		estimates:       estimates,
	}
}

func (s *invoiceService) List(ctx context.Context, f dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	invoices, total, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceListItem, 0, len(invoices))
	for i := range invoices {
		items = append(items, *invoiceToListItem(&invoices[i]))
	}
	return &dto.InvoiceListResponse{Data: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*dto.InvoiceDetailResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Factura", id.String())
	}
	return invoiceToDetail(inv), nil
}

func (s *invoiceService) GetByRepairOrderID(ctx context.Context, repairOrderID uuid.UUID) (*dto.InvoiceDetailResponse, error) {
	inv, err := s.repo.FindByRepairOrderID(ctx, repairOrderID)
	if err != nil {
		return nil, notFound(err, "Factura para orden de trabajo", repairOrderID.String())
	}
	return invoiceToDetail(inv), nil
}

func (s *invoiceService) Create(ctx context.Context, req dto.InvoiceRequest) (*dto.InvoiceDetailResponse, error) {
	clientID, err := parseID(req.ClientID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, notFound(err, "Cliente", req.ClientID)
	}

	// Walk-in clients can only be invoiced for products; a services-only or
	// mixed request is rejected, a products-only request is fine.
	if client.ClientType == model.ClientTypeTemporal && len(req.Services) > 0 {
		return nil, apierror.NewBusiness("Los clientes temporales solo pueden tener facturas de productos, no de servicios")
	}

	vehicleID, err := parseOptionalID(req.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicleID != nil {
		if _, err := s.vehicleRepo.FindByID(ctx, *vehicleID); err != nil {
			return nil, notFound(err, "Vehículo", *req.VehicleID)
		}
	}

	repairOrderID, err := parseOptionalID(req.RepairOrderID)
	if err != nil {
		return nil, err
	}
	if repairOrderID != nil {
		if _, err := s.repairOrderRepo.FindByID(ctx, *repairOrderID); err != nil {
			return nil, notFound(err, "Orden de trabajo", *req.RepairOrderID)
		}
	}

	estimateID, err := parseOptionalID(req.EstimateID)
	if err != nil {
		return nil, err
	}
	if estimateID != nil {
		if _, err := s.estimates.GetByID(ctx, *estimateID); err != nil {
			return nil, err
		}
	}

	entity := model.Invoice{
		ClientID:           clientID,
		VehicleID:          vehicleID,
		RepairOrderID:      repairOrderID,
		EstimateID:         estimateID,
		Status:             model.InvoiceStatusPendiente,
		DiscountPercentage: req.DiscountPercentage,
		TaxPercentage:      req.TaxPercentage,
		Total:              money.CalculateTotal(serviceLines(req.Services), productLines(req.Products), req.DiscountPercentage, req.TaxPercentage),
	}
	for _, svc := range req.Services {
		entity.Services = append(entity.Services, model.InvoiceServiceItem{
			ServiceName: svc.ServiceName,
			Price:       svc.Price,
		})
	}
	for _, prod := range req.Products {
		entity.Products = append(entity.Products, model.InvoiceProduct{
			ProductName: prod.ProductName,
			Quantity:    prod.Quantity,
			UnitPrice:   prod.UnitPrice,
			TotalPrice:  prod.UnitPrice.Mul(decimalFromInt(prod.Quantity)),
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &entity)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("invoice_id", entity.ID.String()).Msg("factura creada")
	return s.GetByID(ctx, entity.ID)
}

// CreateFromEstimate seeds an invoice from an ACEPTADO estimate. The seed is a
// read-only snapshot; the temporary-client rule still applies downstream in
// Create.
func (s *invoiceService) CreateFromEstimate(ctx context.Context, estimateID uuid.UUID) (*dto.InvoiceDetailResponse, error) {
	data, err := s.estimates.ConvertToInvoiceData(ctx, estimateID)
	if err != nil {
		return nil, err
	}
	eid := estimateID.String()
	req := dto.InvoiceRequest{
		ClientID:           data.ClientID,
		VehicleID:          &data.VehicleID,
		RepairOrderID:      data.RepairOrderID,
		EstimateID:         &eid,
		DiscountPercentage: data.DiscountPercentage,
		TaxPercentage:      data.TaxPercentage,
		Services:           data.Services,
		Products:           data.Products,
	}
	return s.Create(ctx, req)
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	// Guards and delete share one transaction holding the invoice row lock.
	// Payment creation locks the same row, so a payment in flight either
	// commits first (and the count guard sees it) or waits and fails its own
	// invoice lookup after the delete commits.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		inv, err := s.lockInvoice(ctx, tx, id)
		if err != nil {
			return notFound(err, "Factura", id.String())
		}
		if inv.RepairOrderID != nil {
			return apierror.NewBusiness("No se puede eliminar una factura asociada a una orden de trabajo")
		}
		if inv.Status == model.InvoiceStatusPagada {
			return apierror.NewBusiness("No se puede eliminar una factura que ya fue pagada")
		}
		// A PENDIENTE invoice can still carry partial payments; deleting it
		// would orphan the ledger rows, so the delete is refused outright.
		n, err := s.paymentRepo.CountByInvoiceID(ctx, tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apierror.NewBusiness("No se puede eliminar una factura con pagos registrados")
		}
		return s.repo.Delete(ctx, tx, id)
	})
	if txErr != nil {
		return txErr
	}
	log.Info().Str("invoice_id", id.String()).Msg("factura eliminada")
	return nil
}

// lockInvoice takes the row lock inside a transaction; without one (unit
// tests) it degrades to a plain read.
func (s *invoiceService) lockInvoice(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Invoice, error) {
	if tx != nil {
		return s.repo.FindForUpdate(tx, id)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *invoiceService) MarkAsPaid(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound(err, "Factura", id.String())
	}
	if err := s.repo.UpdateStatus(ctx, nil, id, model.InvoiceStatusPagada); err != nil {
		return err
	}
	log.Warn().Str("invoice_id", id.String()).Msg("factura marcada PAGADA por override administrativo")
	return nil
}

func invoiceToListItem(inv *model.Invoice) *dto.InvoiceListItem {
	clientName := ""
	if inv.Client != nil {
		clientName = inv.Client.FullName
	}
	plate := ""
	if inv.Vehicle != nil {
		plate = inv.Vehicle.Plate
	}
	return &dto.InvoiceListItem{
		ID:             inv.ID.String(),
		ClientFullName: clientName,
		VehiclePlate:   plate,
		Status:         inv.Status,
		Total:          inv.Total,
		CreatedAt:      formatTime(inv.CreatedAt),
	}
}

func invoiceToDetail(inv *model.Invoice) *dto.InvoiceDetailResponse {
	resp := &dto.InvoiceDetailResponse{
		ID:                 inv.ID.String(),
		ClientID:           inv.ClientID.String(),
		VehicleID:          idString(inv.VehicleID),
		RepairOrderID:      idString(inv.RepairOrderID),
		EstimateID:         idString(inv.EstimateID),
		Status:             inv.Status,
		DiscountPercentage: inv.DiscountPercentage,
		TaxPercentage:      inv.TaxPercentage,
		Total:              inv.Total,
		Services:           make([]dto.ServiceItemResponse, 0, len(inv.Services)),
		Products:           make([]dto.ProductItemResponse, 0, len(inv.Products)),
		CreatedAt:          formatTime(inv.CreatedAt),
		UpdatedAt:          formatTime(inv.UpdatedAt),
	}
	if inv.Client != nil {
		resp.ClientFullName = inv.Client.FullName
	}
	if inv.Vehicle != nil {
		plate := inv.Vehicle.Plate
		resp.VehiclePlate = &plate
	}
	for _, svc := range inv.Services {
		resp.Services = append(resp.Services, dto.ServiceItemResponse{
			ID:          svc.ID.String(),
			ServiceName: svc.ServiceName,
			Price:       svc.Price,
		})
	}
	for _, prod := range inv.Products {
		resp.Products = append(resp.Products, dto.ProductItemResponse{
			ID:          prod.ID.String(),
			ProductName: prod.ProductName,
			Quantity:    prod.Quantity,
			UnitPrice:   prod.UnitPrice,
			TotalPrice:  prod.TotalPrice,
		})
	}
	return resp
}
