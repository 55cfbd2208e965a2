package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модели

// CreateBlockRequest запрос на создание окна доступности
type CreateBlockRequest struct {
	Actor     domain.Actor
	StaffID   uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

// ListBlocksRequest запрос на получение окон специалиста, пересекающихся с [From, To)
type ListBlocksRequest struct {
	StaffID uuid.UUID
	From    time.Time
	To      time.Time
}

// Response модели

// BlockResponse ответ с данными окна доступности
type BlockResponse struct {
	ID        uuid.UUID `json:"id"`
	StaffID   uuid.UUID `json:"staffId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockListResponse ответ со списком окон доступности
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.StaffAvailabilityBlock) *BlockResponse {
	if b == nil {
		return nil
	}
	return &BlockResponse{
		ID:        b.ID,
		StaffID:   b.StaffID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список domain моделей в DTO
func FromDomainBlockList(blocks []*domain.StaffAvailabilityBlock) *BlockListResponse {
	resp := &BlockListResponse{Blocks: make([]BlockResponse, 0, len(blocks))}
	for _, b := range blocks {
		resp.Blocks = append(resp.Blocks, *FromDomainBlock(b))
	}
	return resp
}
