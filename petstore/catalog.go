package petstore

import (
	"github.com/openpetstore/petstore-contract-tests/contract"
)

// Catalog returns the built-in scenarios, grouped by endpoint in the order they are reported.
//
// Every scenario supplies all the state it depends on, so scenarios can run in any order against
// a shared service. The one that needs a pet to exist first creates it in a precondition.
func Catalog() contract.Catalog {
	var c contract.Catalog
	c = append(c, getPetScenarios()...)
	c = append(c, updatePetScenarios()...)
	c = append(c, findPetsByStatusScenarios()...)
	c = append(c, deletePetScenarios()...)
	c = append(c, placeOrderScenarios()...)
	return c
}
