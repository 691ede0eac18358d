package service

import (
	"context"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/repository"
)

type reportService struct {
	store repository.Store
}

func NewReportService(store repository.Store) ReportService {
	return &reportService{store: store}
}

func (s *reportService) Overview(ctx context.Context) (*domain.OverviewReport, error) {
	rep, err := s.store.Reports().Overview(ctx)
	return rep, domain.WrapStorage("report.Overview", err)
}

func (s *reportService) ByClient(ctx context.Context, clientID int32) ([]domain.ClientReportRow, error) {
	if _, err := s.store.Clients().GetByID(ctx, clientID); err != nil {
		return nil, domain.WrapStorage("report.ByClient", err)
	}
	rows, err := s.store.Reports().ByClient(ctx, clientID)
	return rows, domain.WrapStorage("report.ByClient", err)
}

func (s *reportService) EquipmentUsage(ctx context.Context, equipmentTypeID int32) ([]domain.EquipmentUsageRow, error) {
	if _, err := s.store.Equipment().GetByID(ctx, equipmentTypeID); err != nil {
		return nil, domain.WrapStorage("report.EquipmentUsage", err)
	}
	rows, err := s.store.Reports().EquipmentUsage(ctx, equipmentTypeID)
	return rows, domain.WrapStorage("report.EquipmentUsage", err)
}

func (s *reportService) StatusSummary(ctx context.Context) ([]domain.StatusSummaryRow, error) {
	rows, err := s.store.Reports().StatusSummary(ctx)
	return rows, domain.WrapStorage("report.StatusSummary", err)
}
