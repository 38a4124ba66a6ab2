package statemachine

import (
	"testing"

	"food-delivery-dashboard/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrder(t *testing.T) {
	for _, role := range models.AllRoles {
		assert.NoError(t, CanTransitionOrder(models.StatusPending, models.StatusDelivered, role))
	}

	err := CanTransitionOrder(models.StatusDelivered, models.StatusPending, models.RoleMainAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "none (terminal state)")
}

func TestOrderTransitionsFrom_Deduplicates(t *testing.T) {
	assert.Equal(t, []models.OrderStatus{models.StatusDelivered}, OrderTransitionsFrom(models.StatusPending))
	assert.Empty(t, OrderTransitionsFrom(models.StatusDelivered))
}

func TestCanTransitionDelivery(t *testing.T) {
	tests := []struct {
		name    string
		from    models.DeliveryStatus
		to      models.DeliveryStatus
		actor   models.UserRole
		wantErr bool
	}{
		{"viewer picks up", models.DeliveryAssigned, models.DeliveryPicked, models.RoleUser, false},
		{"viewer cannot fail before pickup", models.DeliveryAssigned, models.DeliveryFailed, models.RoleUser, true},
		{"manager fails before pickup", models.DeliveryAssigned, models.DeliveryFailed, models.RoleAdmin, false},
		{"in transit to delivered", models.DeliveryInTransit, models.DeliveryDelivered, models.RoleUser, false},
		{"no skipping", models.DeliveryAssigned, models.DeliveryDelivered, models.RoleMainAdmin, true},
		{"terminal", models.DeliveryDelivered, models.DeliveryFailed, models.RoleMainAdmin, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransitionDelivery(tt.from, tt.to, tt.actor)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
