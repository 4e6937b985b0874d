package petstore

import (
	"github.com/openpetstore/petstore-contract-tests/contract"
	"github.com/openpetstore/petstore-contract-tests/servicedef"
)

var placeOrder = contract.Endpoint{Method: "POST", Path: "/store/order"}

func placeOrderScenarios() []contract.Scenario {
	order := servicedef.Order{
		PetID:    existingPetID,
		Quantity: 1,
		ShipDate: "2023-04-08T12:34:56.789Z",
		Status:   servicedef.OrderStatusPlaced,
		Complete: true,
	}
	return []contract.Scenario{
		{
			Endpoint:       placeOrder,
			Category:       contract.Functional,
			Description:    "places an order",
			Input:          contract.Input{Body: order},
			ExpectedStatus: 200,
			Assertions: []contract.Assertion{
				contract.Field("petId", contract.Equals(order.PetID)),
				contract.Field("quantity", contract.Equals(order.Quantity)),
				contract.Field("status", contract.Equals(order.Status)),
			},
		},
		{
			Endpoint:    placeOrder,
			Category:    contract.Negative,
			Description: "rejects an order with a non-numeric pet ID and negative quantity",
			Input: contract.Input{Body: map[string]interface{}{
				"petId":    "abc",
				"quantity": -1,
				"status":   "unknown",
			}},
			ExpectedStatus: 500,
			Assertions: []contract.Assertion{
				contract.Field("message", contract.Equals(servicedef.MessageBadInput)),
			},
		},
	}
}
