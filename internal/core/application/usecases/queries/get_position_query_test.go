package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPositionQuery_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	callerID := kernel.NewUUID()

	query, err := queries.NewGetPositionQuery(orderID, callerID, kernel.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, orderID, query.OrderID())
	assert.Equal(t, callerID, query.CallerID())
	assert.Equal(t, kernel.RoleCustomer, query.CallerRole())
	require.NoError(t, query.Validate())
}

func TestNewGetPositionQuery_UnknownRole(t *testing.T) {
	_, err := queries.NewGetPositionQuery(kernel.NewUUID(), kernel.NewUUID(), kernel.RoleUnknown)
	require.Error(t, err)
}

func TestNewGetPositionQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewGetPositionQuery(kernel.UUID{}, kernel.NewUUID(), kernel.RoleAdmin)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetPositionQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.GetPositionQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetPositionQueryIsNotConstructed)
}

func TestNewGetActiveOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetActiveOrdersQuery()
	require.NoError(t, query.Validate())
}

func TestGetActiveOrdersQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.GetActiveOrdersQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetActiveOrdersQueryIsNotConstructed)
}
