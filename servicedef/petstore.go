// Package servicedef describes the JSON documents exchanged with the pet store service.
package servicedef

// Pet statuses understood by the service. The service stores any string, so a pet can also
// carry a status outside this set.
const (
	PetStatusAvailable = "available"
	PetStatusPending   = "pending"
	PetStatusSold      = "sold"
)

var AllPetStatuses = []string{PetStatusAvailable, PetStatusPending, PetStatusSold}

const (
	OrderStatusPlaced    = "placed"
	OrderStatusApproved  = "approved"
	OrderStatusDelivered = "delivered"
)

// Diagnostic messages the service puts in an APIResponse.
const (
	MessagePetNotFound = "Pet not found"
	MessageBadInput    = "something bad happened"
)

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

type Pet struct {
	ID        int64     `json:"id"`
	Category  *Category `json:"category,omitempty"`
	Name      string    `json:"name"`
	PhotoURLs []string  `json:"photoUrls"`
	Tags      []Tag     `json:"tags,omitempty"`
	Status    string    `json:"status,omitempty"`
}

type Order struct {
	ID       int64  `json:"id,omitempty"`
	PetID    int64  `json:"petId"`
	Quantity int    `json:"quantity"`
	ShipDate string `json:"shipDate,omitempty"`
	Status   string `json:"status,omitempty"`
	Complete bool   `json:"complete"`
}

// APIResponse is the body of most non-resource responses, including errors.
type APIResponse struct {
	Code    int    `json:"code"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
}
