package service

import (
	"context"

	"swapnest/internal/entity"
)

type ReportService struct {
	reports reportStore
}

func NewReportService(reports reportStore) *ReportService {
	return &ReportService{reports: reports}
}

type ReportInput struct {
	ReportedProductID *int   `json:"reported_product_id"`
	ReportedUserID    *int   `json:"reported_user_id"`
	Reason            string `json:"reason"`
	Description       string `json:"description"`
}

func (s *ReportService) CreateReport(ctx context.Context, reporterID int, in ReportInput) (*entity.Report, error) {
	if in.Reason == "" {
		return nil, entity.NewValidationError("Reason is required.")
	}
	if in.ReportedProductID == nil && in.ReportedUserID == nil {
		return nil, entity.NewValidationError("You must report either a product or a user.")
	}

	rep := &entity.Report{
		ReporterID:        reporterID,
		ReportedProductID: in.ReportedProductID,
		ReportedUserID:    in.ReportedUserID,
		Reason:            in.Reason,
		Description:       in.Description,
		Status:            entity.ReportPending,
	}
	created, err := s.reports.CreateReport(ctx, rep)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating report")
		return nil, err
	}
	return created, nil
}

func (s *ReportService) ListReports(ctx context.Context, actorID int, actorRole string) ([]entity.Report, error) {
	if actorRole == entity.RoleAdmin {
		return s.reports.ListAllReports(ctx)
	}
	return s.reports.ListReportsByReporter(ctx, actorID)
}

func (s *ReportService) GetReport(ctx context.Context, actorID int, actorRole string, id int) (*entity.Report, error) {
	rep, err := s.reports.GetReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanModify(actorID, actorRole, rep.ReporterID) {
		return nil, entity.ErrForbidden
	}
	return rep, nil
}

// UpdateStatus records a review outcome; admin-only at the route level.
func (s *ReportService) UpdateStatus(ctx context.Context, reviewerID, id int, status string) (*entity.Report, error) {
	if !entity.ValidReportStatus(status) {
		return nil, entity.NewValidationError("Unknown report status.")
	}
	if _, err := s.reports.GetReportByID(ctx, id); err != nil {
		return nil, err
	}
	return s.reports.UpdateReportStatus(ctx, id, status, reviewerID)
}

func (s *ReportService) DeleteReport(ctx context.Context, id int) error {
	return s.reports.DeleteReport(ctx, id)
}
