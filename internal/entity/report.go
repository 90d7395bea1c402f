package entity

import "time"

const (
	ReportPending  = "Pending"
	ReportReviewed = "Reviewed"
	ReportResolved = "Resolved"
)

// ValidReportStatus reports whether s is a known report state.
func ValidReportStatus(s string) bool {
	switch s {
	case ReportPending, ReportReviewed, ReportResolved:
		return true
	}
	return false
}

// Report targets either a product or a user; at least one must be set.
type Report struct {
	ID                int        `json:"id"`
	ReporterID        int        `json:"reporter_id"`
	ReportedProductID *int       `json:"reported_product_id,omitempty"`
	ReportedUserID    *int       `json:"reported_user_id,omitempty"`
	Reason            string     `json:"reason"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	ReviewedBy        *int       `json:"reviewed_by,omitempty"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
