package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPreparingTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o := newTestOrder(t)
	require.NoError(t, o.StartPreparation())
	return o
}

func TestMarkOrderPreparedCommandHandler_Handle_NoBinding(t *testing.T) {
	ctx := t.Context()

	testOrder := newPreparingTestOrder(t)
	cmd, err := commands.NewMarkOrderPreparedCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	gateway := new(MockNotificationGateway)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkOrderPreparedCommandHandler(factory, gateway, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.NotificationFailed)
	assert.Equal(t, order.StatusPrepared, testOrder.Status())
	assert.NotNil(t, testOrder.PreparedAt())
	gateway.AssertNotCalled(t, "Send",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestMarkOrderPreparedCommandHandler_Handle_BoundPartnerNotified(t *testing.T) {
	ctx := t.Context()

	partnerID := kernel.NewUUID()
	testOrder := newPreparingTestOrder(t)
	binding, err := order.NewPartnerBinding(partnerID, "Ravi Kumar", "+919000000001")
	require.NoError(t, err)
	require.NoError(t, testOrder.AssignPartner(binding, time.Now().UTC()))

	testPartner := newTestPartner(t, partnerID, "device-token-1")

	cmd, err := commands.NewMarkOrderPreparedCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	gateway := new(MockNotificationGateway)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("PartnerRepository").Return(partnerRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	partnerRepo.On("Get", ctx, partnerID).Return(testPartner, nil).Once()
	gateway.On("Send", ctx, "device-token-1", mock.AnythingOfType("string"),
		mock.AnythingOfType("string"), mock.AnythingOfType("map[string]string")).
		Return("msg-1", nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkOrderPreparedCommandHandler(factory, gateway, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.NotificationFailed)
	gateway.AssertExpectations(t)
}

func TestMarkOrderPreparedCommandHandler_Handle_MissingTokenIsSoft(t *testing.T) {
	ctx := t.Context()

	partnerID := kernel.NewUUID()
	testOrder := newPreparingTestOrder(t)
	binding, err := order.NewPartnerBinding(partnerID, "Ravi Kumar", "+919000000001")
	require.NoError(t, err)
	require.NoError(t, testOrder.AssignPartner(binding, time.Now().UTC()))

	testPartner := newTestPartner(t, partnerID, "") // no device registered

	cmd, err := commands.NewMarkOrderPreparedCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	gateway := new(MockNotificationGateway)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("PartnerRepository").Return(partnerRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	partnerRepo.On("Get", ctx, partnerID).Return(testPartner, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkOrderPreparedCommandHandler(factory, gateway, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.NotificationFailed)
	assert.Equal(t, "no device token registered", result.NotificationError)
	assert.Equal(t, order.StatusPrepared, testOrder.Status())
	gateway.AssertNotCalled(t, "Send",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkOrderPreparedCommandHandler_Handle_MissingPartnerRecordIsHard(t *testing.T) {
	ctx := t.Context()

	partnerID := kernel.NewUUID()
	testOrder := newPreparingTestOrder(t)
	binding, err := order.NewPartnerBinding(partnerID, "Ravi Kumar", "+919000000001")
	require.NoError(t, err)
	require.NoError(t, testOrder.AssignPartner(binding, time.Now().UTC()))

	cmd, err := commands.NewMarkOrderPreparedCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	gateway := new(MockNotificationGateway)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("PartnerRepository").Return(partnerRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	partnerRepo.On("Get", ctx, partnerID).
		Return(nil, errs.NewObjectNotFoundError("partnerId", partnerID)).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkOrderPreparedCommandHandler(factory, gateway, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestMarkOrderPreparedCommandHandler_Handle_WrongStatus(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestOrder(t) // still Created
	cmd, err := commands.NewMarkOrderPreparedCommand(testOrder.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	gateway := new(MockNotificationGateway)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewMarkOrderPreparedCommandHandler(factory, gateway, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}
