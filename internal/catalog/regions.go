package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed regiones.yaml
var regionesYAML []byte

// Region es una región con sus comunas habilitadas.
type Region struct {
	Nombre  string   `yaml:"nombre"`
	Comunas []string `yaml:"comunas"`
}

type regionFile struct {
	Regiones []Region `yaml:"regiones"`
}

var (
	regionsOnce sync.Once
	regions     []Region
	regionsErr  error
)

// ParseRegions interpreta un archivo de regiones.
func ParseRegions(raw []byte) ([]Region, error) {
	var file regionFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse regiones: %w", err)
	}
	seen := make(map[string]bool, len(file.Regiones))
	for _, region := range file.Regiones {
		if region.Nombre == "" {
			return nil, fmt.Errorf("parse regiones: region without nombre")
		}
		if seen[region.Nombre] {
			return nil, fmt.Errorf("parse regiones: duplicated region %q", region.Nombre)
		}
		seen[region.Nombre] = true
	}
	return file.Regiones, nil
}

// Regions devuelve el lookup estático embebido.
func Regions() ([]Region, error) {
	regionsOnce.Do(func() {
		regions, regionsErr = ParseRegions(regionesYAML)
	})
	return regions, regionsErr
}

// RegionNames devuelve los nombres de región en orden de despliegue.
func RegionNames() []string {
	all, err := Regions()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(all))
	for _, region := range all {
		names = append(names, region.Nombre)
	}
	return names
}

// Comunas devuelve las comunas de una región; nil si la región no existe.
func Comunas(region string) []string {
	all, err := Regions()
	if err != nil {
		return nil
	}
	for _, candidate := range all {
		if candidate.Nombre == region {
			return append([]string(nil), candidate.Comunas...)
		}
	}
	return nil
}
