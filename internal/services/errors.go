package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCEP means the postal code did not have exactly 8 digits
	// after stripping formatting.
	ErrInvalidCEP = errors.New("CEP deve ter 8 dígitos")

	// ErrCEPNotFound means the postal directory does not know the code.
	ErrCEPNotFound = errors.New("CEP não encontrado")

	// ErrSessionExpired means the routing service rejected the caller's
	// token; the client must clear its local session and log in again.
	ErrSessionExpired = errors.New("sessão expirada")
)

// CityNotAllowedError is returned when the resolved address falls
// outside the municipality this portal serves. It keeps both sides so
// the user-facing message can name them.
type CityNotAllowedError struct {
	Allowed       string
	AllowedEstado string
	Got           string
	GotEstado     string
}

func (e *CityNotAllowedError) Error() string {
	return fmt.Sprintf("este portal é exclusivo para moradores de %s - %s (endereço informado: %s - %s)",
		e.Allowed, e.AllowedEstado, e.Got, e.GotEstado)
}

// UpstreamError is any routing-service failure that is neither an
// expired session nor a no-data condition. The status code is kept for
// logging.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("erro ao consultar serviço de rotas (status %d)", e.Status)
}
