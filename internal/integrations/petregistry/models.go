package petregistry

import "github.com/google/uuid"

// Pet модель питомца из реестра питомцев
type Pet struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"ownerId"`
	Name    string    `json:"name"`
	Species string    `json:"species"`
	Breed   *string   `json:"breed,omitempty"`
}

// ErrorResponse модель ошибки от реестра питомцев
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
