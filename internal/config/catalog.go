package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vehicletax/internal/domain/models"
)

// ErrEmptyCatalog справочник без типов регистрации или категорий.
var ErrEmptyCatalog = errors.New("config: catalog has no registration types or categories")

// DefaultCatalog встроенный справочник формы.
func DefaultCatalog() models.Catalog {
	return models.Catalog{
		RegTypes: []models.RegType{
			{ID: "private", Name: "Private", NameEn: "Private"},
			{ID: "public", Name: "Public", NameEn: "Public"},
			{ID: "government", Name: "Government", NameEn: "Government"},
			{ID: "ambulance", Name: "Ambulance", NameEn: "Ambulance"},
		},
		Categories: []models.Category{
			{ID: "motorcycle", Name: "Motorcycle", NameEn: "Motorcycle", HasDisplacementField: true},
			{ID: "car", Name: "Car", NameEn: "Car", HasDisplacementField: true},
			{ID: "jeep_van", Name: "Jeep / Van", NameEn: "Jeep / Van", HasDisplacementField: true},
			{ID: "electric", Name: "Electric Vehicle", NameEn: "Electric Vehicle"},
			{ID: "tractor", Name: "Tractor", NameEn: "Tractor"},
		},
	}
}

// LoadCatalog читает справочник из YAML-файла. Пустой путь возвращает встроенный справочник.
func LoadCatalog(path string) (models.Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog разбирает справочник из YAML.
func ParseCatalog(data []byte) (models.Catalog, error) {
	var catalog models.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return models.Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(catalog.RegTypes) == 0 || len(catalog.Categories) == 0 {
		return models.Catalog{}, ErrEmptyCatalog
	}

	seen := make(map[string]bool)
	for _, c := range catalog.Categories {
		if c.ID == "" {
			return models.Catalog{}, fmt.Errorf("catalog: category %q has no id", c.Name)
		}
		if seen[c.ID] {
			return models.Catalog{}, fmt.Errorf("catalog: duplicate category id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return catalog, nil
}
