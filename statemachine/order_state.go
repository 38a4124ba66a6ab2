package statemachine

import (
	"errors"
	"strings"

	"food-delivery-dashboard/models"
)

var ErrInvalidTransition = errors.New("invalid transition")

// Transition defines a valid order state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor models.UserRole    `json:"actor"`
}

// orderTransitions is the authoritative order state machine.
// Every role can hand an order over to the customer.
var orderTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusDelivered, Actor: models.RoleMainAdmin},
	{From: models.StatusPending, To: models.StatusDelivered, Actor: models.RoleAdmin},
	{From: models.StatusPending, To: models.StatusDelivered, Actor: models.RoleUser},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

var orderTransitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range orderTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// OrderTransitionsFrom returns all valid next states from a given order state
func OrderTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range orderTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransitionOrder checks if a role can move an order from one state to another
func CanTransitionOrder(from, to models.OrderStatus, actor models.UserRole) error {
	if orderTransitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return describeInvalid(string(from), string(to), actor, orderStrings(OrderTransitionsFrom(from)))
}

// GetOrderTransitions returns the full order state machine for documentation
func GetOrderTransitions() []Transition {
	return orderTransitions
}

func orderStrings(states []models.OrderStatus) []string {
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = string(s)
	}
	return out
}

func describeInvalid(from, to string, actor models.UserRole, nexts []string) error {
	valid := "none (terminal state)"
	if len(nexts) > 0 {
		valid = strings.Join(nexts, ", ")
	}
	return &TransitionError{From: from, To: to, Actor: actor, ValidNext: valid}
}

// TransitionError explains a rejected state change.
type TransitionError struct {
	From      string
	To        string
	Actor     models.UserRole
	ValidNext string
}

func (e *TransitionError) Error() string {
	return "invalid transition: " + e.From + " → " + e.To +
		" is not allowed for role '" + string(e.Actor) + "'. " +
		"Valid transitions from " + e.From + " are: " + e.ValidNext
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
