package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateProductionStatusCommandHandler orchestrates manufacturing stage
// advances. Production moves independently of the order status axis but both
// share the same append-only status log, distinguished by the axis column.
type UpdateProductionStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateProductionStatusCommandHandler creates a handler for production advances.
func NewUpdateProductionStatusCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) UpdateProductionStatusCommandHandler {
	return UpdateProductionStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the production advance command.
// Orders that are not yet paid surface order.ErrNotYetPaid; skipping a stage
// surfaces the domain's InvalidTransitionError. Requesting the current stage
// is a no-op with no log row and no event.
func (h UpdateProductionStatusCommandHandler) Handle(ctx context.Context, cmd UpdateProductionStatusCommand) error {
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

	change, err := aggregate.AdvanceProduction(cmd.Target(), cmd.Actor(), time.Now().UTC())
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
