package services

import (
	"context"
	"log"
	"strings"

	"coleta-portal/internal/config"
)

// ResolvedAddress is the outcome of the CEP lookup pipeline. Latitude
// and longitude stay empty when geocoding could not place the address;
// callers must treat that differently from a missing address.
type ResolvedAddress struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Cidade     string `json:"cidade"`
	Estado     string `json:"estado"`
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`
}

// AddressResolver chains the postal directory and the geocoder and
// applies the municipality allow-list. Stateless, no caching: repeated
// calls redo both lookups.
type AddressResolver struct {
	viacep    *ViaCEPService
	geocoder  *GeocodingService
	municipio config.MunicipioConfig
}

func NewAddressResolver(viacep *ViaCEPService, geocoder *GeocodingService, municipio config.MunicipioConfig) *AddressResolver {
	return &AddressResolver{
		viacep:    viacep,
		geocoder:  geocoder,
		municipio: municipio,
	}
}

// CleanCEP strips everything but digits from a CEP.
func CleanCEP(cep string) string {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve normalizes the CEP, looks up the street address and then
// geocodes it. A geocoding failure is not fatal: the address comes
// back with empty coordinates and the resident can still fix things up
// later.
func (r *AddressResolver) Resolve(ctx context.Context, cep, numero string) (*ResolvedAddress, error) {
	clean := CleanCEP(cep)
	if len(clean) != 8 {
		return nil, ErrInvalidCEP
	}

	via, err := r.viacep.Lookup(ctx, clean)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedAddress{
		Logradouro: via.Logradouro,
		Bairro:     via.Bairro,
		Cidade:     via.Localidade,
		Estado:     via.UF,
	}

	query := BuildQuery(via.Logradouro, strings.TrimSpace(numero), via.Localidade, via.UF)
	results, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		log.Printf("⚠️  Geocoding failed for %q: %v", query, err)
		return resolved, nil
	}
	if len(results) == 0 {
		log.Printf("⚠️  Geocoding returned no results for %q", query)
		return resolved, nil
	}

	resolved.Latitude = results[0].Lat
	resolved.Longitude = results[0].Lon
	return resolved, nil
}

// CheckCity enforces the municipality allow-list. Must pass before a
// profile with this city/state is persisted.
func (r *AddressResolver) CheckCity(cidade, estado string) error {
	if !r.municipio.Restrict {
		return nil
	}

	gotCidade := strings.ToLower(strings.TrimSpace(cidade))
	allowed := strings.ToLower(strings.TrimSpace(r.municipio.Cidade))
	gotEstado := strings.ToUpper(strings.TrimSpace(estado))

	if gotCidade != allowed || gotEstado != r.municipio.Estado {
		return &CityNotAllowedError{
			Allowed:       r.municipio.Cidade,
			AllowedEstado: r.municipio.Estado,
			Got:           cidade,
			GotEstado:     estado,
		}
	}
	return nil
}
