package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand(t *testing.T) {
	t.Run("should keep an unrecognised status verbatim", func(t *testing.T) {
		cmd, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), "teleported", "", kernel.NewUUID())

		require.NoError(t, err)
		assert.Equal(t, "teleported", cmd.RawStatus())
		assert.Equal(t, order.Unknown, cmd.Status())
	})

	t.Run("should require status and actor", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), " ", "", kernel.UUID{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "status")
		assert.Contains(t, err.Error(), "actor")
	})
}

func TestChangeOrderStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t)
	admin := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), "confirmed", "payment received", admin)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outbox := new(MockOutbox)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("NotificationOutbox").Return(outbox).Once(),
		outbox.On("Enqueue", ctx, mock.MatchedBy(func(e ports.OutboxEntry) bool {
			return e.Kind == ports.StatusChanged && e.Status == order.Confirmed && e.Note == "payment received"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, updated.Status())
	require.Len(t, updated.History(), 2)
	assert.True(t, updated.LastChange().UpdatedBy().IsEqual(admin))
	orderRepo.AssertExpectations(t)
	outbox.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_TerminalOrder(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t)
	admin := kernel.NewUUID()
	require.NoError(t, o.ChangeStatus(order.Cancelled, "", &admin, o.CreatedAt().Add(1)))
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), "shipped", "", admin)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Cancelled, o.Status())
	assert.Len(t, o.History(), 2)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "NotificationOutbox")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_UnrecognisedStatus(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), "teleported", "", kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	var transitionErr *errs.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "pending", transitionErr.From)
	assert.Equal(t, "teleported", transitionErr.To)
	assert.Len(t, o.History(), 1)
}

func TestChangeOrderStatusCommandHandler_Handle_ConcurrencyConflict(t *testing.T) {
	ctx := t.Context()
	o := existingOrder(t)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), "confirmed", "", kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(errs.NewConcurrencyConflictError("order", o.ID().String(), 0)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewChangeOrderStatusCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	uow.AssertNotCalled(t, "NotificationOutbox")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(id, "confirmed", "", kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewChangeOrderStatusCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
