package models

import "database/sql"

// Morador is a resident profile tied to exactly one user account.
// Latitude/longitude are stored as text to keep the upstream decimal
// precision intact.
type Morador struct {
	ID          int            `json:"id" db:"id"`
	UserID      string         `json:"user_id" db:"user_id"`
	Nome        string         `json:"nome" db:"nome"`
	CPF         sql.NullString `json:"-" db:"cpf"`
	Telefone    sql.NullString `json:"-" db:"telefone"`
	Endereco    string         `json:"endereco" db:"endereco"`
	Numero      sql.NullString `json:"-" db:"numero"`
	Complemento sql.NullString `json:"-" db:"complemento"`
	Bairro      sql.NullString `json:"-" db:"bairro"`
	Cidade      string         `json:"cidade" db:"cidade"`
	Estado      string         `json:"estado" db:"estado"`
	CEP         sql.NullString `json:"-" db:"cep"`
	Latitude    sql.NullString `json:"-" db:"latitude"`
	Longitude   sql.NullString `json:"-" db:"longitude"`
	FCMToken    sql.NullString `json:"-" db:"fcm_token"`
	CreatedAt   int64          `json:"created_at" db:"created_at"`
	UpdatedAt   int64          `json:"updated_at" db:"updated_at"`
}

// HasCoordinates reports whether the profile can be used for collection
// queries against the routing service.
func (m *Morador) HasCoordinates() bool {
	return m.Latitude.Valid && m.Latitude.String != "" &&
		m.Longitude.Valid && m.Longitude.String != ""
}

type MoradorResponse struct {
	ID          int    `json:"id"`
	Nome        string `json:"nome"`
	CPF         string `json:"cpf,omitempty"`
	Telefone    string `json:"telefone,omitempty"`
	Endereco    string `json:"endereco"`
	Numero      string `json:"numero,omitempty"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro,omitempty"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	CEP         string `json:"cep,omitempty"`
	Latitude    string `json:"latitude,omitempty"`
	Longitude   string `json:"longitude,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

func (m *Morador) ToMoradorResponse() MoradorResponse {
	return MoradorResponse{
		ID:          m.ID,
		Nome:        m.Nome,
		CPF:         m.CPF.String,
		Telefone:    m.Telefone.String,
		Endereco:    m.Endereco,
		Numero:      m.Numero.String,
		Complemento: m.Complemento.String,
		Bairro:      m.Bairro.String,
		Cidade:      m.Cidade,
		Estado:      m.Estado,
		CEP:         m.CEP.String,
		Latitude:    m.Latitude.String,
		Longitude:   m.Longitude.String,
		CreatedAt:   m.CreatedAt,
	}
}
