package service

import (
	"time"

	"github.com/vanvyapaar/vanvyapaar-cli/internal/model"
)

// Canned data served in degraded mode. Shapes mirror what the live
// delivery endpoints return so downstream rendering is unaffected.

func fallbackDelivery(trackingID string) model.Delivery {
	now := time.Now()
	return model.Delivery{
		ID:                    1,
		TrackingID:            trackingID,
		OrderID:               1,
		Status:                model.DeliveryInTransit,
		PickupAddress:         "Artisan Colony, Ward 3",
		PickupPincode:         "400001",
		DeliveryAddress:       "12 Market Road",
		DeliveryPincode:       "400002",
		BuyerName:             "Sample Buyer",
		BuyerPhone:            "9876543210",
		SellerName:            "Artisan Shop",
		SellerPhone:           "9876543211",
		EstimatedDeliveryTime: now.Add(24 * time.Hour),
		CreatedAt:             now.Add(-2 * time.Hour),
		UpdatedAt:             now,
	}
}

func fallbackDeliveries() []model.Delivery {
	return []model.Delivery{
		fallbackDelivery("VV-DEL-000001"),
		fallbackDelivery("VV-DEL-000002"),
	}
}

func fallbackAgents() []model.DeliveryAgent {
	return []model.DeliveryAgent{
		{
			ID:                 1,
			Name:               "Rajesh Kumar",
			Phone:              "9876543210",
			Email:              "rajesh@example.com",
			CurrentPincode:     "400001",
			VehicleType:        "BIKE",
			VehicleNumber:      "MH-01-AB-1234",
			ServiceablePincode: "400001,400002",
			Status:             model.AgentFree,
			Online:             true,
			TotalDeliveries:    45,
			Rating:             4.7,
			LastActiveTime:     time.Now(),
		},
	}
}

func fallbackAnalytics() model.DeliveryAnalytics {
	return model.DeliveryAnalytics{
		TotalDeliveries:          150,
		ActiveDeliveries:         12,
		CompletedDeliveries:      135,
		FailedDeliveries:         3,
		TotalAgents:              11,
		OnlineAgents:             8,
		AvailableAgents:          5,
		AverageDeliveryTimeHours: 24.5,
		WeeklySuccessRate:        95.2,
	}
}
