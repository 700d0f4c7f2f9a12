package orders

import "homechef-marketplace/internal/models"

// transitions is the authoritative order-status state machine:
//
//	pending  → accepted | cancelled
//	accepted → delivered
//
// delivered and cancelled are terminal. The same table drives both server
// validation and the client's button enablement.
var transitions = map[string][]string{
	models.OrderStatusPending:  {models.OrderStatusAccepted, models.OrderStatusCancelled},
	models.OrderStatusAccepted: {models.OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the valid next statuses from a given status. Terminal
// statuses return nil.
func NextStatuses(from string) []string {
	return transitions[from]
}
