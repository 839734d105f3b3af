package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ProductionStatus represents the manufacturing sub-lifecycle of an order.
// It is an axis independent of Status, but only advances once the order has
// been paid.
//
// Transitions are strictly monotonic, one step at a time:
//
//	ProductionPending ──> InProduction ──> ProductionReady ──> ProductionShipped
type ProductionStatus int

const (
	// ProductionUnknown represents an invalid or undefined production status.
	ProductionUnknown ProductionStatus = iota

	// ProductionPending is the initial production status of every order.
	ProductionPending

	// InProduction indicates manufacturing has started.
	InProduction

	// ProductionReady indicates the goods are manufactured and await dispatch.
	ProductionReady

	// ProductionShipped indicates the goods left the production site.
	ProductionShipped
)

func getProductionStatusStrings() map[ProductionStatus]string {
	return map[ProductionStatus]string{
		ProductionUnknown: "unknown",
		ProductionPending: "pending",
		InProduction:      "in_production",
		ProductionReady:   "ready",
		ProductionShipped: "shipped",
	}
}

// Validate checks that the ProductionStatus is one of the defined values.
func (s ProductionStatus) Validate() error {
	if _, ok := getProductionStatusStrings()[s]; !ok || s == ProductionUnknown {
		return errs.NewValueIsInvalidErrorWithCause("production status is invalid",
			fmt.Errorf("%d is not a valid production status", s))
	}
	return nil
}

// String returns the wire name of the production status.
func (s ProductionStatus) String() string {
	if str, ok := getProductionStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ProductionStatusFromString parses a wire name back into a ProductionStatus.
func ProductionStatusFromString(s string) (ProductionStatus, error) {
	for status, name := range getProductionStatusStrings() {
		if name == s && status != ProductionUnknown {
			return status, nil
		}
	}
	return ProductionUnknown, errs.NewValueIsInvalidErrorWithCause("production status is invalid",
		fmt.Errorf("%q is not a valid production status", s))
}

// Next returns the production status immediately following s, or
// ProductionUnknown when s is the last stage.
func (s ProductionStatus) Next() ProductionStatus {
	switch s {
	case ProductionPending:
		return InProduction
	case InProduction:
		return ProductionReady
	case ProductionReady:
		return ProductionShipped
	default:
		return ProductionUnknown
	}
}

// CanTransitionTo reports whether target is exactly the next production stage.
func (s ProductionStatus) CanTransitionTo(target ProductionStatus) bool {
	next := s.Next()
	return next != ProductionUnknown && next == target
}
