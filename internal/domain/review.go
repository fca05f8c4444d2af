package domain

import "time"

// Review moderation status constants.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Review represents a product review in the moderation queue.
type Review struct {
	ID              string    `json:"_id"`
	ProductID       string    `json:"productId"`
	UserName        string    `json:"userName,omitempty"`
	Rating          int       `json:"rating"`
	Title           string    `json:"title,omitempty"`
	Comment         string    `json:"comment,omitempty"`
	Status          string    `json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ReviewStats holds aggregate counts for the moderation dashboard.
type ReviewStats struct {
	TotalReviews    int     `json:"totalReviews"`
	PendingReviews  int     `json:"pendingReviews"`
	ApprovedReviews int     `json:"approvedReviews"`
	RejectedReviews int     `json:"rejectedReviews"`
	ApprovalRate    float64 `json:"approvalRate"`
}

// IsValidReviewStatus checks whether the given string is a known moderation status.
func IsValidReviewStatus(status string) bool {
	switch status {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}
