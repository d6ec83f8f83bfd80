package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrCityNotFound = errors.New("city not found in purchasing power index")

type CityIndex interface {
	Lookup(ctx context.Context, city string) (string, float64, error)
}

type cityEntry struct {
	City  string  `json:"city"`
	Index float64 `json:"local_purchasing_power_index"`
}

type citiesFile struct {
	Cities []cityEntry `json:"cities"`
}

// LocalCityIndex is the static city to purchasing-power-index table, loaded
// once at process start and read-only thereafter.
type LocalCityIndex struct {
	names   []string
	indexes map[string]float64
}

func NewLocalCityIndex(indexes map[string]float64) *LocalCityIndex {
	idx := &LocalCityIndex{
		indexes: make(map[string]float64, len(indexes)),
	}
	for name, value := range indexes {
		idx.names = append(idx.names, name)
		idx.indexes[strings.ToLower(name)] = value
	}
	return idx
}

func NewLocalCityIndexFromFile(path string) (*LocalCityIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("city index couldn't read %s: %v", path, err)
	}
	var file citiesFile
	if err = json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("city index couldn't unmarshal %s: %v", path, err)
	}
	indexes := make(map[string]float64, len(file.Cities))
	for _, city := range file.Cities {
		indexes[city.City] = city.Index
	}
	return NewLocalCityIndex(indexes), nil
}

// Lookup resolves a city name case-insensitively, falling back to a substring
// match ("hyderabad" finds "Hyderabad, India"), and returns the canonical
// name alongside the index value.
func (l *LocalCityIndex) Lookup(_ context.Context, city string) (string, float64, error) {
	query := strings.ToLower(strings.TrimSpace(city))
	if query == "" {
		return "", 0, ErrCityNotFound
	}
	if value, ok := l.indexes[query]; ok {
		return l.canonical(query), value, nil
	}
	for _, name := range l.names {
		if strings.Contains(strings.ToLower(name), query) {
			return name, l.indexes[strings.ToLower(name)], nil
		}
	}
	return "", 0, ErrCityNotFound
}

func (l *LocalCityIndex) canonical(lower string) string {
	for _, name := range l.names {
		if strings.ToLower(name) == lower {
			return name
		}
	}
	return lower
}
