package partner_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliveryPartner(t *testing.T) {
	t.Run("valid_partner_starts_available", func(t *testing.T) {
		p, err := partner.NewDeliveryPartner(kernel.NewUUID(), "Ravi", "+919000000001", "token-1")

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.IsAvailable())
		assert.Nil(t, p.CurrentOrderID())
		assert.Zero(t, p.ActiveOrders())
		assert.True(t, p.HasNotificationChannel())
	})

	t.Run("missing_token_is_not_an_error", func(t *testing.T) {
		p, err := partner.NewDeliveryPartner(kernel.NewUUID(), "Ravi", "+919000000001", "")

		require.NoError(t, err)
		assert.False(t, p.HasNotificationChannel())
	})

	t.Run("name_is_required", func(t *testing.T) {
		_, err := partner.NewDeliveryPartner(kernel.NewUUID(), "", "+919000000001", "")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p partner.DeliveryPartner
		assert.Equal(t, partner.ErrPartnerIsNotConstructed, p.Validate())
	})
}

func TestRestoreDeliveryPartner(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		orderID := kernel.NewUUID()

		p, err := partner.RestoreDeliveryPartner(
			kernel.NewUUID(), "Ravi", "+919000000001", "token-1", 3, false, &orderID)

		require.NoError(t, err)
		assert.Equal(t, 3, p.ActiveOrders())
		assert.False(t, p.IsAvailable())
		require.NotNil(t, p.CurrentOrderID())
		assert.True(t, p.CurrentOrderID().IsEqual(orderID))
	})

	t.Run("unavailable_without_current_order_is_invalid", func(t *testing.T) {
		_, err := partner.RestoreDeliveryPartner(
			kernel.NewUUID(), "Ravi", "+919000000001", "", 0, false, nil)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDeliveryPartner_EngageAndRelease(t *testing.T) {
	t.Run("engage_updates_both_fields_together", func(t *testing.T) {
		p, _ := partner.NewDeliveryPartner(kernel.NewUUID(), "Ravi", "+919000000001", "")
		orderID := kernel.NewUUID()

		require.NoError(t, p.Engage(orderID))

		assert.False(t, p.IsAvailable())
		require.NotNil(t, p.CurrentOrderID())
		assert.True(t, p.CurrentOrderID().IsEqual(orderID))
	})

	t.Run("engage_is_idempotent_for_same_order", func(t *testing.T) {
		p, _ := partner.NewDeliveryPartner(kernel.NewUUID(), "Ravi", "+919000000001", "")
		orderID := kernel.NewUUID()
		require.NoError(t, p.Engage(orderID))

		require.NoError(t, p.Engage(orderID))
	})

	t.Run("engage_with_different_order_conflicts", func(t *testing.T) {
		p, _ := partner.NewDeliveryPartner(kernel.NewUUID(), "Ravi", "+919000000001", "")
		require.NoError(t, p.Engage(kernel.NewUUID()))

		err := p.Engage(kernel.NewUUID())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("release_restores_availability", func(t *testing.T) {
		p, _ := partner.NewDeliveryPartner(kernel.NewUUID(), "Ravi", "+919000000001", "")
		require.NoError(t, p.Engage(kernel.NewUUID()))

		p.Release()

		assert.True(t, p.IsAvailable())
		assert.Nil(t, p.CurrentOrderID())
	})
}

func TestDeliveryPartner_UpdateFCMToken(t *testing.T) {
	p, _ := partner.NewDeliveryPartner(kernel.NewUUID(), "Ravi", "+919000000001", "old")

	p.UpdateFCMToken("new")
	assert.Equal(t, "new", p.FCMToken())

	p.UpdateFCMToken("")
	assert.False(t, p.HasNotificationChannel())
}
