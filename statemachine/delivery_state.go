package statemachine

import "food-delivery-dashboard/models"

// DeliveryTransition defines a valid delivery state change
type DeliveryTransition struct {
	From   models.DeliveryStatus `json:"from"`
	To     models.DeliveryStatus `json:"to"`
	Actors []models.UserRole     `json:"actors"`
}

var everyone = []models.UserRole{models.RoleMainAdmin, models.RoleAdmin, models.RoleUser}

// deliveryTransitions: assigned → picked → in_transit → delivered | failed.
// Managers may also fail a delivery before pickup.
var deliveryTransitions = []DeliveryTransition{
	{From: models.DeliveryAssigned, To: models.DeliveryPicked, Actors: everyone},
	{From: models.DeliveryAssigned, To: models.DeliveryFailed, Actors: []models.UserRole{models.RoleMainAdmin, models.RoleAdmin}},
	{From: models.DeliveryPicked, To: models.DeliveryInTransit, Actors: everyone},
	{From: models.DeliveryInTransit, To: models.DeliveryDelivered, Actors: everyone},
	{From: models.DeliveryInTransit, To: models.DeliveryFailed, Actors: everyone},
}

// DeliveryTransitionsFrom returns all valid next states from a given delivery state
func DeliveryTransitionsFrom(status models.DeliveryStatus) []models.DeliveryStatus {
	var nexts []models.DeliveryStatus
	for _, t := range deliveryTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransitionDelivery checks if a role can move a delivery from one state to another
func CanTransitionDelivery(from, to models.DeliveryStatus, actor models.UserRole) error {
	for _, t := range deliveryTransitions {
		if t.From != from || t.To != to {
			continue
		}
		for _, a := range t.Actors {
			if a == actor {
				return nil
			}
		}
	}
	nexts := DeliveryTransitionsFrom(from)
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return describeInvalid(string(from), string(to), actor, names)
}

// GetDeliveryTransitions returns the full delivery state machine for documentation
func GetDeliveryTransitions() []DeliveryTransition {
	return deliveryTransitions
}
