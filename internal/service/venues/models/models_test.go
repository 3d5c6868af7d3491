package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4nchik/VH-BookingService/internal/domain"
	"github.com/d4nchik/VH-BookingService/pkg/ptr"
)

func TestFromDomainVenue(t *testing.T) {
	venue := &domain.Venue{
		ID:           1,
		Name:         "Лофт на Неве",
		City:         "Санкт-Петербург",
		Address:      "наб. реки Мойки, 12",
		Description:  ptr.Ptr("Просторный лофт с видом на реку"),
		Capacity:     50,
		PricePerHour: 1000,
		Services: []domain.ServiceOption{
			{ID: 10, VenueID: 1, Name: "Проектор", Price: 500},
		},
	}

	resp := FromDomainVenue(venue)

	require.NotNil(t, resp)
	assert.Equal(t, "Просторный лофт с видом на реку", resp.Description)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Проектор", resp.Services[0].Name)
}

func TestFromDomainVenue_NilDescription(t *testing.T) {
	resp := FromDomainVenue(&domain.Venue{ID: 2, Name: "Зал"})

	require.NotNil(t, resp)
	assert.Equal(t, "", resp.Description)
}

func TestFromDomainVenue_Nil(t *testing.T) {
	assert.Nil(t, FromDomainVenue(nil))
}
