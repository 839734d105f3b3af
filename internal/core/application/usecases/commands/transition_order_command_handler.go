package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// TransitionOrderCommandHandler orchestrates order lifecycle transitions.
// Loads the aggregate, applies the transition, writes the aggregate and one
// status log row in a single transaction, then publishes a status event.
//
// A request targeting the order's current status is a no-op: nothing is
// written and no event is published.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order transition command.
// Invalid transitions surface the domain's InvalidTransitionError; transitions
// out of a terminal status surface order.ErrAlreadyTerminal. The status log
// row is committed atomically with the aggregate update.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	change, err := aggregate.TransitionTo(cmd.Target(), cmd.Actor(), time.Now().UTC())
	if err != nil {
		return err
	}
	if change == nil {
		return nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	logEntry, err := order.NewStatusLog(kernel.NewUUID(), *change)
	if err != nil {
		return err
	}

	if err = orderRepo.AppendStatusLog(ctx, logEntry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return h.publisher.PublishOrderStatusChanged(ctx, ports.StatusChangedEvent{
		EntityID:   aggregate.ID(),
		Axis:       change.Axis,
		From:       change.From,
		To:         change.To,
		OccurredAt: change.OccurredAt,
	})
}
