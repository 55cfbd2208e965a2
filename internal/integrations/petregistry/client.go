package petregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Client клиент для работы с реестром питомцев
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента реестра питомцев
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetPet получает питомца по ID вместе с его владельцем
func (c *Client) GetPet(ctx context.Context, petID uuid.UUID) (*domain.Pet, error) {
	url := fmt.Sprintf("%s/internal/pets/%s", c.baseURL, petID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("PetRegistry unavailable: pet_id=%s, error=%v", petID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrPetNotFound
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid pet ID format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var pet Pet
	if err := json.NewDecoder(resp.Body).Decode(&pet); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if pet.ID != petID || pet.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("%w: pet id=%s has inconsistent payload", ErrInvalidResponse, petID)
	}

	return &domain.Pet{
		ID:      pet.ID,
		OwnerID: pet.OwnerID,
		Name:    pet.Name,
	}, nil
}
