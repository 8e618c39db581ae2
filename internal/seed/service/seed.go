package service

import (
	"context"

	barbersvc "clipbook/internal/barbers/service"
	servicesvc "clipbook/internal/services/service"
	"clipbook/pkg/config"
	"clipbook/pkg/model"
)

// Result reports how many records a seed run actually inserted. Zeroes
// mean the collection already had data.
type Result struct {
	BarbersSeeded  int `json:"barbers_seeded"`
	ServicesSeeded int `json:"services_seeded"`
}

type SeedService interface {
	Seed(ctx context.Context) (*Result, error)
}

type seedService struct {
	barbers  barbersvc.BarberService
	services servicesvc.ServiceService
	cfg      *config.Config
}

func NewSeedService(
	barbers barbersvc.BarberService,
	services servicesvc.ServiceService,
	cfg *config.Config,
) SeedService {
	return &seedService{
		barbers:  barbers,
		services: services,
		cfg:      cfg,
	}
}

// Seed inserts the default catalog into each collection that is still
// empty. Inserts go through the domain services so the records pick up
// the configured workday defaults and pass the same validation as API
// writes.
func (s *seedService) Seed(ctx context.Context) (*Result, error) {
	result := &Result{}

	barberCount, err := s.barbers.Count(ctx)
	if err != nil {
		return nil, err
	}
	if barberCount == 0 {
		for _, b := range defaultBarbers() {
			if err := s.barbers.Create(ctx, b); err != nil {
				s.cfg.Log.Error("Failed to seed barber", "name", b.Name, "error", err)
				return nil, err
			}
			result.BarbersSeeded++
		}
	}

	serviceCount, err := s.services.Count(ctx)
	if err != nil {
		return nil, err
	}
	if serviceCount == 0 {
		for _, svc := range defaultServices() {
			if err := s.services.Create(ctx, svc); err != nil {
				s.cfg.Log.Error("Failed to seed service", "title", svc.Title, "error", err)
				return nil, err
			}
			result.ServicesSeeded++
		}
	}

	s.cfg.Log.Info("Seed completed",
		"barbers_seeded", result.BarbersSeeded,
		"services_seeded", result.ServicesSeeded,
	)
	return result, nil
}

func defaultBarbers() []*model.Barber {
	return []*model.Barber{
		{
			Name:        "James Carter",
			Specialties: []string{"haircut", "beard line-up"},
			Phone:       "+14155550101",
		},
		{
			Name:        "Marcus Reed",
			Specialties: []string{"fade", "beard"},
			Phone:       "+14155550102",
		},
	}
}

func defaultServices() []*model.Service {
	return []*model.Service{
		{
			Title:           "Haircut",
			DurationMinutes: 30,
			Price:           25.0,
		},
		{
			Title:           "Beard Trim",
			DurationMinutes: 20,
			Price:           15.0,
		},
		{
			Title:           "Full Package",
			DurationMinutes: 60,
			Price:           35.0,
		},
	}
}
