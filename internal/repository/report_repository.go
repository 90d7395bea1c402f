package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"swapnest/internal/entity"
)

const reportColumns = `id, reporter_id, reported_product_id, reported_user_id, reason, description, status, reviewed_by, reviewed_at, created_at`

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db}
}

func scanReport(row interface{ Scan(...any) error }) (*entity.Report, error) {
	var (
		rep        entity.Report
		productID  sql.NullInt64
		userID     sql.NullInt64
		desc       sql.NullString
		reviewedBy sql.NullInt64
		reviewedAt sql.NullTime
	)
	err := row.Scan(&rep.ID, &rep.ReporterID, &productID, &userID, &rep.Reason,
		&desc, &rep.Status, &reviewedBy, &reviewedAt, &rep.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	rep.Description = desc.String
	if productID.Valid {
		v := int(productID.Int64)
		rep.ReportedProductID = &v
	}
	if userID.Valid {
		v := int(userID.Int64)
		rep.ReportedUserID = &v
	}
	if reviewedBy.Valid {
		v := int(reviewedBy.Int64)
		rep.ReviewedBy = &v
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		rep.ReviewedAt = &t
	}
	return &rep, nil
}

func (r *ReportRepository) GetReportByID(ctx context.Context, id int) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ?`
	return scanReport(r.db.QueryRowContext(ctx, query, id))
}

func (r *ReportRepository) listReports(ctx context.Context, query string, args ...any) ([]entity.Report, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []entity.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rep)
	}
	return reports, rows.Err()
}

func (r *ReportRepository) ListReportsByReporter(ctx context.Context, reporterID int) ([]entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE reporter_id = ? ORDER BY created_at DESC`
	return r.listReports(ctx, query, reporterID)
}

func (r *ReportRepository) ListAllReports(ctx context.Context) ([]entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC`
	return r.listReports(ctx, query)
}

func (r *ReportRepository) CreateReport(ctx context.Context, rep *entity.Report) (*entity.Report, error) {
	query := `INSERT INTO reports (reporter_id, reported_product_id, reported_user_id, reason, description, status)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, rep.ReporterID, rep.ReportedProductID,
		rep.ReportedUserID, rep.Reason, rep.Description, rep.Status)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	rep.ID = int(id)
	return rep, nil
}

// UpdateReportStatus records the review outcome and who made it.
func (r *ReportRepository) UpdateReportStatus(ctx context.Context, id int, status string, reviewerID int) (*entity.Report, error) {
	query := `UPDATE reports SET status = ?, reviewed_by = ?, reviewed_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, status, reviewerID, time.Now(), id); err != nil {
		return nil, err
	}
	return r.GetReportByID(ctx, id)
}

func (r *ReportRepository) DeleteReport(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
