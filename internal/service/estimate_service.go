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

type EstimateService interface {
	List(ctx context.Context, f dto.EstimateFilter) (*dto.EstimateListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.EstimateDetailResponse, error)
	GetByRepairOrderID(ctx context.Context, repairOrderID uuid.UUID) (*dto.EstimateDetailResponse, error)
	Create(ctx context.Context, req dto.EstimateRequest) (*dto.EstimateDetailResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.EstimateRequest) (*dto.EstimateDetailResponse, error)
	Approve(ctx context.Context, id uuid.UUID) (*dto.EstimateDetailResponse, error)
	Reject(ctx context.Context, id uuid.UUID) (*dto.EstimateDetailResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ConvertToInvoiceData returns the immutable invoice seed of an ACEPTADO
	// estimate. It is a read: calling it twice is allowed, and callers are
	// responsible for not double-invoicing.
	ConvertToInvoiceData(ctx context.Context, id uuid.UUID) (*dto.EstimateInvoiceData, error)
}

type estimateService struct {
	repo            repository.EstimateRepository
	clientRepo      repository.ClientRepository
	vehicleRepo     repository.VehicleRepository
	repairOrderRepo repository.RepairOrderRepository
}

func NewEstimateService(
	repo repository.EstimateRepository,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	repairOrderRepo repository.RepairOrderRepository,
) EstimateService {
	return &estimateService{
		repo:            repo,
		clientRepo:      clientRepo,
		vehicleRepo:     vehicleRepo,
		repairOrderRepo: repairOrderRepo,
	}
}

func (s *estimateService) List(ctx context.Context, f dto.EstimateFilter) (*dto.EstimateListResponse, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	estimates, total, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EstimateListItem, 0, len(estimates))
	for i := range estimates {
		items = append(items, *estimateToListItem(&estimates[i]))
	}
	return &dto.EstimateListResponse{Data: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (s *estimateService) GetByID(ctx context.Context, id uuid.UUID) (*dto.EstimateDetailResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Presupuesto", id.String())
	}
	return estimateToDetail(e), nil
}

func (s *estimateService) GetByRepairOrderID(ctx context.Context, repairOrderID uuid.UUID) (*dto.EstimateDetailResponse, error) {
	e, err := s.repo.FindByRepairOrderID(ctx, repairOrderID)
	if err != nil {
		return nil, notFound(err, "Presupuesto para orden de trabajo", repairOrderID.String())
	}
	return estimateToDetail(e), nil
}

func (s *estimateService) Create(ctx context.Context, req dto.EstimateRequest) (*dto.EstimateDetailResponse, error) {
	clientID, vehicleID, repairOrderID, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	entity := model.Estimate{
		ClientID:           clientID,
		VehicleID:          vehicleID,
		RepairOrderID:      repairOrderID,
		Status:             model.EstimateStatusPendiente,
		DiscountPercentage: req.DiscountPercentage,
		TaxPercentage:      req.TaxPercentage,
		Total:              money.CalculateTotal(serviceLines(req.Services), productLines(req.Products), req.DiscountPercentage, req.TaxPercentage),
	}
	for _, svc := range req.Services {
		entity.Services = append(entity.Services, model.EstimateServiceItem{
			ServiceName: svc.ServiceName,
			Price:       svc.Price,
		})
	}
	for _, prod := range req.Products {
		entity.Products = append(entity.Products, model.EstimateProduct{
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

	log.Info().Str("estimate_id", entity.ID.String()).Msg("presupuesto creado")
	return s.GetByID(ctx, entity.ID)
}

func (s *estimateService) Update(ctx context.Context, id uuid.UUID, req dto.EstimateRequest) (*dto.EstimateDetailResponse, error) {
	clientID, vehicleID, repairOrderID, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	services := make([]model.EstimateServiceItem, 0, len(req.Services))
	for _, svc := range req.Services {
		services = append(services, model.EstimateServiceItem{
			EstimateID:  id,
			ServiceName: svc.ServiceName,
			Price:       svc.Price,
		})
	}
	products := make([]model.EstimateProduct, 0, len(req.Products))
	for _, prod := range req.Products {
		products = append(products, model.EstimateProduct{
			EstimateID:  id,
			ProductName: prod.ProductName,
			Quantity:    prod.Quantity,
			UnitPrice:   prod.UnitPrice,
			TotalPrice:  prod.UnitPrice.Mul(decimalFromInt(prod.Quantity)),
		})
	}

	// The status guard, the wholesale item replacement and the cached total all
	// happen under the same row lock: a concurrent Approve either lands before
	// the lock (the guard then rejects the edit) or waits until it commits.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		entity, err := s.lockEstimate(ctx, tx, id)
		if err != nil {
			return notFound(err, "Presupuesto", id.String())
		}
		if entity.Status != model.EstimateStatusPendiente {
			return apierror.NewBusiness("Solo se pueden editar presupuestos en estado PENDIENTE")
		}

		entity.ClientID = clientID
		entity.VehicleID = vehicleID
		entity.RepairOrderID = repairOrderID
		entity.DiscountPercentage = req.DiscountPercentage
		entity.TaxPercentage = req.TaxPercentage
		entity.Total = money.CalculateTotal(serviceLines(req.Services), productLines(req.Products), req.DiscountPercentage, req.TaxPercentage)

		if err := s.repo.ReplaceItems(ctx, tx, id, services, products); err != nil {
			return err
		}
		entity.Services = nil
		entity.Products = nil
		return s.repo.Update(ctx, tx, entity)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().Str("estimate_id", id.String()).Msg("presupuesto actualizado")
	return s.GetByID(ctx, id)
}

func (s *estimateService) Approve(ctx context.Context, id uuid.UUID) (*dto.EstimateDetailResponse, error) {
	if err := s.transition(ctx, id, model.EstimateStatusAceptado,
		"Solo se pueden aprobar presupuestos en estado PENDIENTE"); err != nil {
		return nil, err
	}
	log.Info().Str("estimate_id", id.String()).Msg("presupuesto aprobado")
	return s.GetByID(ctx, id)
}

func (s *estimateService) Reject(ctx context.Context, id uuid.UUID) (*dto.EstimateDetailResponse, error) {
	if err := s.transition(ctx, id, model.EstimateStatusRechazado,
		"Solo se pueden rechazar presupuestos en estado PENDIENTE"); err != nil {
		return nil, err
	}
	log.Info().Str("estimate_id", id.String()).Msg("presupuesto rechazado")
	return s.GetByID(ctx, id)
}

// transition moves a PENDIENTE estimate into one of its two terminal states.
// Guard and write run under the estimate's row lock so two racing transitions
// cannot both observe PENDIENTE.
func (s *estimateService) transition(ctx context.Context, id uuid.UUID, target, guardMsg string) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		entity, err := s.lockEstimate(ctx, tx, id)
		if err != nil {
			return notFound(err, "Presupuesto", id.String())
		}
		if entity.Status != model.EstimateStatusPendiente {
			return apierror.NewBusiness(guardMsg)
		}
		return s.repo.UpdateStatus(ctx, tx, id, target)
	})
}

// lockEstimate takes the row lock inside a transaction; without one (unit
// tests) it degrades to a plain read.
func (s *estimateService) lockEstimate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Estimate, error) {
	if tx != nil {
		return s.repo.FindForUpdate(tx, id)
	}
	return s.repo.FindByID(ctx, id)
}

// Delete removes the estimate and, by ownership, its line items. Invoices that
// reference it keep a dangling estimate_id; the relation is weak by design.
func (s *estimateService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return notFound(err, "Presupuesto", id.String())
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, id)
	})
	if txErr != nil {
		return txErr
	}
	log.Info().Str("estimate_id", id.String()).Msg("presupuesto eliminado")
	return nil
}

func (s *estimateService) ConvertToInvoiceData(ctx context.Context, id uuid.UUID) (*dto.EstimateInvoiceData, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Presupuesto", id.String())
	}
	if entity.Status != model.EstimateStatusAceptado {
		return nil, apierror.NewBusiness("Solo se pueden facturar presupuestos en estado ACEPTADO")
	}

	data := &dto.EstimateInvoiceData{
		EstimateID:         entity.ID.String(),
		ClientID:           entity.ClientID.String(),
		VehicleID:          entity.VehicleID.String(),
		RepairOrderID:      idString(entity.RepairOrderID),
		DiscountPercentage: entity.DiscountPercentage,
		TaxPercentage:      entity.TaxPercentage,
		Total:              entity.Total,
	}
	for _, svc := range entity.Services {
		data.Services = append(data.Services, dto.ServiceItemRequest{
			ServiceName: svc.ServiceName,
			Price:       svc.Price,
		})
	}
	for _, prod := range entity.Products {
		data.Products = append(data.Products, dto.ProductItemRequest{
			ProductName: prod.ProductName,
			Quantity:    prod.Quantity,
			UnitPrice:   prod.UnitPrice,
		})
	}
	return data, nil
}

func (s *estimateService) resolveRefs(ctx context.Context, req dto.EstimateRequest) (clientID, vehicleID uuid.UUID, repairOrderID *uuid.UUID, err error) {
	clientID, err = parseID(req.ClientID)
	if err != nil {
		return
	}
	if _, err = s.clientRepo.FindByID(ctx, clientID); err != nil {
		err = notFound(err, "Cliente", req.ClientID)
		return
	}
	vehicleID, err = parseID(req.VehicleID)
	if err != nil {
		return
	}
	if _, err = s.vehicleRepo.FindByID(ctx, vehicleID); err != nil {
		err = notFound(err, "Vehículo", req.VehicleID)
		return
	}
	repairOrderID, err = parseOptionalID(req.RepairOrderID)
	if err != nil {
		return
	}
	if repairOrderID != nil {
		if _, err = s.repairOrderRepo.FindByID(ctx, *repairOrderID); err != nil {
			err = notFound(err, "Orden de trabajo", *req.RepairOrderID)
			return
		}
	}
	return
}

func estimateToListItem(e *model.Estimate) *dto.EstimateListItem {
	clientName := ""
	if e.Client != nil {
		clientName = e.Client.FullName
	}
	plate := ""
	if e.Vehicle != nil {
		plate = e.Vehicle.Plate
	}
	return &dto.EstimateListItem{
		ID:             e.ID.String(),
		ClientFullName: clientName,
		VehiclePlate:   plate,
		Status:         e.Status,
		Total:          e.Total,
		CreatedAt:      formatTime(e.CreatedAt),
	}
}

func estimateToDetail(e *model.Estimate) *dto.EstimateDetailResponse {
	resp := &dto.EstimateDetailResponse{
		ID:                 e.ID.String(),
		ClientID:           e.ClientID.String(),
		VehicleID:          e.VehicleID.String(),
		RepairOrderID:      idString(e.RepairOrderID),
		Status:             e.Status,
		DiscountPercentage: e.DiscountPercentage,
		TaxPercentage:      e.TaxPercentage,
		Total:              e.Total,
		Services:           make([]dto.ServiceItemResponse, 0, len(e.Services)),
		Products:           make([]dto.ProductItemResponse, 0, len(e.Products)),
		CreatedAt:          formatTime(e.CreatedAt),
		UpdatedAt:          formatTime(e.UpdatedAt),
	}
	if e.Client != nil {
		resp.ClientFullName = e.Client.FullName
	}
	if e.Vehicle != nil {
		resp.VehiclePlate = e.Vehicle.Plate
	}
	for _, svc := range e.Services {
		resp.Services = append(resp.Services, dto.ServiceItemResponse{
			ID:          svc.ID.String(),
			ServiceName: svc.ServiceName,
			Price:       svc.Price,
		})
	}
	for _, prod := range e.Products {
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
