package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fulfillment/internal/core/domain/model/shipment"
)

func Test_statusFromTrackingEvent(t *testing.T) {
	tests := map[string]struct {
		feedStatus string
		want       shipment.Status
		mapped     bool
	}{
		"picked up":        {feedStatus: "picked_up", want: shipment.StatusShipped, mapped: true},
		"in transit":       {feedStatus: "in_transit", want: shipment.StatusShipped, mapped: true},
		"out for delivery": {feedStatus: "out_for_delivery", want: shipment.StatusShipped, mapped: true},
		"delivered":        {feedStatus: "delivered", want: shipment.StatusDelivered, mapped: true},
		"customs hold":     {feedStatus: "customs_hold", mapped: false},
		"empty":            {feedStatus: "", mapped: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, mapped := statusFromTrackingEvent(test.feedStatus)

			assert.Equal(t, test.mapped, mapped)
			if test.mapped {
				assert.Equal(t, test.want, got)
			}
		})
	}
}
