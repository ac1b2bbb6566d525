package model

import "time"

// Notification type constants as emitted by the marketplace backend.
const (
	NotifOrderPlaced      = "ORDER_PLACED"
	NotifOrderConfirmed   = "ORDER_CONFIRMED"
	NotifOrderShipped     = "ORDER_SHIPPED"
	NotifOrderDelivered   = "ORDER_DELIVERED"
	NotifOrderCancelled   = "ORDER_CANCELLED"
	NotifPaymentSuccess   = "PAYMENT_SUCCESS"
	NotifPaymentFailed    = "PAYMENT_FAILED"
	NotifProductApproved  = "PRODUCT_APPROVED"
	NotifProductRejected  = "PRODUCT_REJECTED"
	NotifLowStock         = "LOW_STOCK"
	NotifAccountApproved  = "ACCOUNT_APPROVED"
	NotifAccountSuspended = "ACCOUNT_SUSPENDED"
	NotifNewSeller        = "NEW_SELLER"
	NotifNewComplaint     = "NEW_COMPLAINT"
	NotifReviewAdded      = "REVIEW_ADDED"
)

// Notification priority levels.
const (
	PriorityLow    = "LOW"
	PriorityNormal = "NORMAL"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Notification is a server-owned alert record; the client holds a
// cached copy. Read==true implies ReadAt is set.
type Notification struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id" db:"id"`

	// UserID and UserRole identify the recipient.
	UserID   int64  `json:"userId" db:"user_id"`
	UserRole string `json:"userRole" db:"user_role"`

	// Type is one of the Notif* constants.
	Type string `json:"type" db:"type"`

	// Title is the short headline; Message is the full text.
	Title   string `json:"title" db:"title"`
	Message string `json:"message" db:"message"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"isRead" db:"is_read"`

	// EmailSent records whether the backend also dispatched an email.
	EmailSent bool `json:"isEmailSent" db:"is_email_sent"`

	// CreatedAt is when the notification was generated server-side.
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// ReadAt is when the user read it, if they have.
	ReadAt *time.Time `json:"readAt,omitempty" db:"read_at"`

	// RelatedEntityID and RelatedEntityType link back to the order,
	// product, or account the notification is about.
	RelatedEntityID   *int64 `json:"relatedEntityId,omitempty" db:"related_entity_id"`
	RelatedEntityType string `json:"relatedEntityType,omitempty" db:"related_entity_type"`

	// Priority is one of the Priority* constants.
	Priority string `json:"priority" db:"priority"`

	// ActionURL is an optional deep link into the marketplace.
	ActionURL string `json:"actionUrl,omitempty" db:"action_url"`
}

// UnreadCount is the payload of the unread-count endpoint.
type UnreadCount struct {
	Count int `json:"count"`
}
