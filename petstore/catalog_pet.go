package petstore

import (
	"strconv"

	"github.com/openpetstore/petstore-contract-tests/contract"
	"github.com/openpetstore/petstore-contract-tests/servicedef"
)

const (
	existingPetID = 1

	// IDs that are never expected to exist. The service is shared, so these are chosen to be well
	// outside the range of IDs that other clients usually create.
	unknownPetID         = 999999999
	unknownDeletionPetID = 99999999

	// seededPetID is created and then deleted by the deletion scenario.
	seededPetID = 731955
)

var (
	getPet           = contract.Endpoint{Method: "GET", Path: "/pet/{petId}"}
	updatePet        = contract.Endpoint{Method: "PUT", Path: "/pet"}
	addPet           = contract.Endpoint{Method: "POST", Path: "/pet"}
	findPetsByStatus = contract.Endpoint{Method: "GET", Path: "/pet/findByStatus"}
	deletePet        = contract.Endpoint{Method: "DELETE", Path: "/pet/{petId}"}
)

func petIDParam(id int) map[string]string {
	return map[string]string{"petId": strconv.Itoa(id)}
}

func getPetScenarios() []contract.Scenario {
	return []contract.Scenario{
		{
			Endpoint:       getPet,
			Category:       contract.Functional,
			Description:    "returns a pet by its ID",
			Input:          contract.Input{PathParams: petIDParam(existingPetID)},
			ExpectedStatus: 200,
			Assertions: []contract.Assertion{
				contract.Field("id", contract.Equals(existingPetID)),
			},
			Repeatable: true,
		},
		{
			Endpoint:       getPet,
			Category:       contract.Negative,
			Description:    "returns 404 for a pet that does not exist",
			Input:          contract.Input{PathParams: petIDParam(unknownPetID)},
			ExpectedStatus: 404,
			Assertions: []contract.Assertion{
				contract.Field("message", contract.Equals(servicedef.MessagePetNotFound)),
			},
		},
		{
			Endpoint:       getPet,
			Category:       contract.EdgeCase,
			Description:    "handles the lowest valid pet ID",
			Input:          contract.Input{PathParams: petIDParam(1)},
			ExpectedStatus: 200,
			Assertions: []contract.Assertion{
				contract.Field("id", contract.Equals(1)),
			},
			Repeatable: true,
		},
	}
}

func updatePetScenarios() []contract.Scenario {
	rex := servicedef.Pet{
		ID:        existingPetID,
		Category:  &servicedef.Category{ID: 1, Name: "Dogs"},
		Name:      "Rex",
		PhotoURLs: []string{"url1", "url2"},
		Tags:      []servicedef.Tag{{ID: 1, Name: "tag1"}},
		Status:    servicedef.PetStatusAvailable,
	}
	minimal := servicedef.Pet{
		ID:        existingPetID,
		Name:      "R",
		PhotoURLs: []string{},
		Status:    "unknown",
	}
	return []contract.Scenario{
		{
			Endpoint:       updatePet,
			Category:       contract.Functional,
			Description:    "updates an existing pet",
			Input:          contract.Input{Body: rex},
			ExpectedStatus: 200,
			Assertions: []contract.Assertion{
				contract.Field("id", contract.Equals(rex.ID)),
				contract.Field("name", contract.Equals(rex.Name)),
				contract.Field("status", contract.Equals(rex.Status)),
			},
		},
		{
			Endpoint:       updatePet,
			Category:       contract.Negative,
			Description:    "rejects a pet with a non-numeric ID",
			Input:          contract.Input{Body: map[string]interface{}{"id": "a", "name": ""}},
			ExpectedStatus: 500,
			Assertions: []contract.Assertion{
				contract.Field("message", contract.Equals(servicedef.MessageBadInput)),
			},
		},
		{
			Endpoint:       updatePet,
			Category:       contract.EdgeCase,
			Description:    "accepts a one-character name, no photos and an unlisted status",
			Input:          contract.Input{Body: minimal},
			ExpectedStatus: 200,
			Assertions: []contract.Assertion{
				contract.Field("name", contract.Equals(minimal.Name)),
				contract.Field("status", contract.Equals(minimal.Status)),
			},
		},
	}
}

func findPetsByStatusScenarios() []contract.Scenario {
	var ret []contract.Scenario
	for _, status := range servicedef.AllPetStatuses {
		ret = append(ret, contract.Scenario{
			Endpoint:       findPetsByStatus,
			Category:       contract.Functional,
			Description:    "returns only pets with status " + status,
			Input:          contract.Input{Query: map[string]string{"status": status}},
			ExpectedStatus: 200,
			Assertions: []contract.Assertion{
				contract.Field("", contract.IsArray()),
				contract.ForEach("", "status", contract.Equals(status)),
			},
		})
	}

	// A status nobody uses can match nothing, so an empty list is a correct answer here.
	const rareStatus = "not-a-real-status"
	ret = append(ret, contract.Scenario{
		Endpoint:       findPetsByStatus,
		Category:       contract.EdgeCase,
		Description:    "tolerates a status that matches no pets",
		Input:          contract.Input{Query: map[string]string{"status": servicedef.PetStatusAvailable + "," + rareStatus}},
		ExpectedStatus: 200,
		Assertions: []contract.Assertion{
			contract.Field("", contract.IsArray()),
			contract.ForEach("", "status", contract.OneOf(servicedef.PetStatusAvailable, rareStatus)),
		},
	})
	return ret
}

func deletePetScenarios() []contract.Scenario {
	return []contract.Scenario{
		{
			Endpoint:    deletePet,
			Category:    contract.Functional,
			Description: "deletes a pet it has just created",
			Precondition: &contract.Precondition{
				Endpoint: addPet,
				Input: contract.Input{Body: servicedef.Pet{
					ID:        seededPetID,
					Name:      "Temporary",
					PhotoURLs: []string{},
					Status:    servicedef.PetStatusSold,
				}},
			},
			Input:          contract.Input{PathParams: petIDParam(seededPetID)},
			ExpectedStatus: 200,
			Assertions: []contract.Assertion{
				contract.Field("message", contract.Equals(strconv.Itoa(seededPetID))),
			},
		},
		{
			Endpoint:       deletePet,
			Category:       contract.Negative,
			Description:    "returns 404 for a pet that does not exist",
			Input:          contract.Input{PathParams: petIDParam(unknownDeletionPetID)},
			ExpectedStatus: 404,
		},
	}
}
