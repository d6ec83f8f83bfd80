package service

import (
	"context"
	"fmt"

	"github.com/gullak-ai/gullak/internal/model"
	"github.com/gullak-ai/gullak/internal/repository"
)

// Power compares relative affordability between cities over the static
// purchasing-power index. Stateless, the table is read-only after startup.
type Power struct {
	cities repository.CityIndex
}

func NewPower(cities repository.CityIndex) *Power {
	return &Power{
		cities: cities,
	}
}

func (p *Power) Compare(ctx context.Context, cityA, cityB string) (*model.PowerComparison, error) {
	nameA, indexA, err := p.cities.Lookup(ctx, cityA)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, cityA)
	}
	nameB, indexB, err := p.cities.Lookup(ctx, cityB)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, cityB)
	}
	if indexB == 0 {
		return nil, fmt.Errorf("power comparator: %s has no usable index value", nameB)
	}
	return &model.PowerComparison{
		CityA:  nameA,
		CityB:  nameB,
		IndexA: indexA,
		IndexB: indexB,
		Ratio:  indexA / indexB,
	}, nil
}

func (p *Power) Lookup(ctx context.Context, city string) (string, float64, error) {
	name, index, err := p.cities.Lookup(ctx, city)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %s", err, city)
	}
	return name, index, nil
}
