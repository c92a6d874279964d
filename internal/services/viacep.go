package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ViaCEPService looks up street addresses in the ViaCEP postal
// directory by 8-digit CEP.
type ViaCEPService struct {
	client *resty.Client
}

// ViaCEPResponse is the directory record for a CEP. Erro is set by
// ViaCEP when the code is well-formed but unknown.
type ViaCEPResponse struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	Erro        bool   `json:"erro"`
}

// NewViaCEPService creates a ViaCEP client against the given base URL
// (e.g. https://viacep.com.br/ws).
func NewViaCEPService(baseURL string) *ViaCEPService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &ViaCEPService{client: client}
}

// Lookup fetches the address record for a clean 8-digit CEP. An
// unknown code returns ErrCEPNotFound.
func (s *ViaCEPService) Lookup(ctx context.Context, cep string) (*ViaCEPResponse, error) {
	var result ViaCEPResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/%s/json/", cep))
	if err != nil {
		return nil, fmt.Errorf("failed to query ViaCEP: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("ViaCEP returned status %d", resp.StatusCode())
	}

	if result.Erro {
		return nil, ErrCEPNotFound
	}

	return &result, nil
}
