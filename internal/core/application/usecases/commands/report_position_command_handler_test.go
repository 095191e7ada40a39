package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReportPositionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	partnerID := kernel.NewUUID()
	testOrder := newBoundTestOrder(t, partnerID)

	cmd, err := commands.NewReportPositionCommand(testOrder.ID(), partnerID, 12.9716, 77.5946)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()
	orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportPositionCommandHandler(factory)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), result.Timestamp, time.Minute)
	require.NotNil(t, testOrder.Position())
	assert.InDelta(t, 12.9716, testOrder.Position().Point().Latitude(), 0.0001)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReportPositionCommandHandler_Handle_NotBoundPartner(t *testing.T) {
	ctx := t.Context()

	testOrder := newBoundTestOrder(t, kernel.NewUUID())
	impostorID := kernel.NewUUID()

	cmd, err := commands.NewReportPositionCommand(testOrder.ID(), impostorID, 12.9716, 77.5946)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportPositionCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Nil(t, testOrder.Position())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestReportPositionCommandHandler_Handle_UnassignedOrder(t *testing.T) {
	ctx := t.Context()

	testOrder := newTestOrder(t)
	cmd, err := commands.NewReportPositionCommand(testOrder.ID(), kernel.NewUUID(), 12.9716, 77.5946)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportPositionCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestReportPositionCommandHandler_Handle_TerminalOrder(t *testing.T) {
	ctx := t.Context()

	partnerID := kernel.NewUUID()
	testOrder := newBoundTestOrder(t, partnerID)
	require.NoError(t, testOrder.Accept(partnerID, time.Now().UTC()))
	require.NoError(t, testOrder.Deliver(partnerID, time.Now().UTC()))

	cmd, err := commands.NewReportPositionCommand(testOrder.ID(), partnerID, 12.9716, 77.5946)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReportPositionCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}
