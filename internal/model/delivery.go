package model

import "time"

// Delivery status values, in rough lifecycle order.
const (
	DeliveryCreated         = "CREATED"
	DeliveryAssigned        = "ASSIGNED"
	DeliveryAcceptedByAgent = "ACCEPTED_BY_AGENT"
	DeliveryPickedUp        = "PICKED_UP"
	DeliveryInTransit       = "IN_TRANSIT"
	DeliveryOutForDelivery  = "OUT_FOR_DELIVERY"
	DeliveryDelivered       = "DELIVERED"
	DeliveryCompleted       = "COMPLETED"
	DeliveryFailed          = "FAILED"
	DeliveryCancelled       = "CANCELLED"
)

// Delivery agent availability states.
const (
	AgentFree     = "FREE"
	AgentAssigned = "ASSIGNED"
	AgentBusy     = "BUSY"
	AgentOffline  = "OFFLINE"
)

// Delivery is a shipment tracked by its public tracking id.
type Delivery struct {
	ID                    int64          `json:"id"`
	TrackingID            string         `json:"trackingId"`
	OrderID               int64          `json:"orderId"`
	Agent                 *DeliveryAgent `json:"agent,omitempty"`
	Status                string         `json:"status"`
	PickupAddress         string         `json:"pickupAddress"`
	PickupPincode         string         `json:"pickupPincode"`
	DeliveryAddress       string         `json:"deliveryAddress"`
	DeliveryPincode       string         `json:"deliveryPincode"`
	BuyerName             string         `json:"buyerName"`
	BuyerPhone            string         `json:"buyerPhone"`
	SellerName            string         `json:"sellerName"`
	SellerPhone           string         `json:"sellerPhone"`
	EstimatedDeliveryTime time.Time      `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time     `json:"actualDeliveryTime,omitempty"`
	AgentNotes            string         `json:"agentNotes,omitempty"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}

// DeliveryAgent is a courier serving a set of pincodes.
type DeliveryAgent struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	CurrentPincode     string    `json:"currentPincode"`
	VehicleType        string    `json:"vehicleType"`
	VehicleNumber      string    `json:"vehicleNumber"`
	ServiceablePincode string    `json:"serviceablePincodes"`
	Status             string    `json:"status"`
	Online             bool      `json:"isOnline"`
	CurrentWorkload    int       `json:"currentWorkload"`
	TotalDeliveries    int       `json:"totalDeliveries"`
	Rating             float64   `json:"rating"`
	LastActiveTime     time.Time `json:"lastActiveTime"`
}

// DeliveryAnalytics is the admin fleet overview.
type DeliveryAnalytics struct {
	TotalDeliveries          int     `json:"totalDeliveries"`
	ActiveDeliveries         int     `json:"activeDeliveries"`
	CompletedDeliveries      int     `json:"completedDeliveries"`
	FailedDeliveries         int     `json:"failedDeliveries"`
	TotalAgents              int     `json:"totalAgents"`
	OnlineAgents             int     `json:"onlineAgents"`
	AvailableAgents          int     `json:"availableAgents"`
	AverageDeliveryTimeHours float64 `json:"averageDeliveryTimeHours"`
	WeeklySuccessRate        float64 `json:"weeklySuccessRate"`
}
