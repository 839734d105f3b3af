// Package carrier provides the gateway implementations behind the carrier
// capability contract, plus the registry the engines use to find them.
// Adding a carrier means implementing ports.CarrierGateway and registering it
// here; the engines never change.
package carrier

import (
	"sort"

	"fulfillment/internal/core/ports"
)

// Registry is a static carrier-id-to-gateway map assembled at composition
// time. Reads are lock-free because registration finishes before serving.
type Registry struct {
	gateways map[string]ports.CarrierGateway
}

// NewRegistry creates an empty carrier registry.
func NewRegistry() *Registry {
	return &Registry{
		gateways: make(map[string]ports.CarrierGateway),
	}
}

// Register binds a gateway to a carrier identifier, replacing any previous
// binding for that identifier.
func (r *Registry) Register(id string, gateway ports.CarrierGateway) {
	r.gateways[id] = gateway
}

// Lookup returns the gateway registered under id.
func (r *Registry) Lookup(id string) (ports.CarrierGateway, bool) {
	gateway, ok := r.gateways[id]
	return gateway, ok
}

// SupportedCarriers returns the sorted identifiers of all registered carriers.
func (r *Registry) SupportedCarriers() []string {
	ids := make([]string, 0, len(r.gateways))
	for id := range r.gateways {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
