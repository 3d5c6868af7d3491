package models

import (
	"github.com/d4nchik/VH-BookingService/internal/domain"
)

// Request модели

// ListVenuesRequest запрос на получение каталога площадок
type ListVenuesRequest struct {
	Query           *string  `json:"query,omitempty"`           // Префиксный поиск по названию или городу
	City            *string  `json:"city,omitempty"`            // Точное совпадение города
	MinCapacity     *int     `json:"minCapacity,omitempty"`     // Минимальная вместимость
	MaxPricePerHour *float64 `json:"maxPricePerHour,omitempty"` // Максимальная цена за час
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListVenuesRequest) ToDomainFilter() domain.VenueFilter {
	return domain.VenueFilter{
		Query:           r.Query,
		City:            r.City,
		MinCapacity:     r.MinCapacity,
		MaxPricePerHour: r.MaxPricePerHour,
	}
}

// Response модели

// VenueResponse ответ с данными площадки
type VenueResponse struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	City         string             `json:"city"`
	Address      string             `json:"address"`
	Description  string             `json:"description,omitempty"`
	Capacity     int                `json:"capacity"`
	PricePerHour float64            `json:"pricePerHour"`
	Services     []ServiceOptionDTO `json:"services"`
}

// ServiceOptionDTO дополнительная услуга площадки
type ServiceOptionDTO struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// VenueListResponse ответ со списком площадок
type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
}

// Методы конвертации

// FromDomainVenue конвертирует domain модель в DTO
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	if v == nil {
		return nil
	}

	services := make([]ServiceOptionDTO, 0, len(v.Services))
	for _, s := range v.Services {
		services = append(services, ServiceOptionDTO{
			ID:    s.ID,
			Name:  s.Name,
			Price: s.Price,
		})
	}

	description := ""
	if v.Description != nil {
		description = *v.Description
	}

	return &VenueResponse{
		ID:           v.ID,
		Name:         v.Name,
		City:         v.City,
		Address:      v.Address,
		Description:  description,
		Capacity:     v.Capacity,
		PricePerHour: v.PricePerHour,
		Services:     services,
	}
}

// FromDomainVenueList конвертирует список domain моделей в DTO
func FromDomainVenueList(venues []*domain.Venue) *VenueListResponse {
	resp := &VenueListResponse{
		Venues: make([]VenueResponse, 0, len(venues)),
	}

	for _, v := range venues {
		resp.Venues = append(resp.Venues, *FromDomainVenue(v))
	}

	return resp
}
