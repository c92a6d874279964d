package database

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"coleta-portal/internal/models"
)

// MoradorStore is the persistence boundary for resident profiles.
// Implementations report a missing profile with sql.ErrNoRows.
type MoradorStore interface {
	GetByUserID(userID string) (*models.Morador, error)
	GetByID(id int) (*models.Morador, error)
	Create(m *models.Morador) (*models.Morador, error)
	Update(m *models.Morador) error
	Delete(userID string) error
	SetFCMToken(userID, token string) error
	ListWithFCMTokens() ([]models.Morador, error)
}

// PostgresMoradorStore backs MoradorStore with the moradores table.
type PostgresMoradorStore struct {
	db *sqlx.DB
}

func NewPostgresMoradorStore(db *sqlx.DB) *PostgresMoradorStore {
	return &PostgresMoradorStore{db: db}
}

func (s *PostgresMoradorStore) GetByUserID(userID string) (*models.Morador, error) {
	var m models.Morador
	err := s.db.Get(&m, "SELECT * FROM moradores WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PostgresMoradorStore) GetByID(id int) (*models.Morador, error) {
	var m models.Morador
	err := s.db.Get(&m, "SELECT * FROM moradores WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PostgresMoradorStore) Create(m *models.Morador) (*models.Morador, error) {
	now := time.Now().Unix()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `
		INSERT INTO moradores (user_id, nome, cpf, telefone, endereco, numero,
			complemento, bairro, cidade, estado, cep, latitude, longitude,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	err := s.db.QueryRow(query,
		m.UserID, m.Nome, m.CPF, m.Telefone, m.Endereco, m.Numero,
		m.Complemento, m.Bairro, m.Cidade, m.Estado, m.CEP,
		m.Latitude, m.Longitude, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *PostgresMoradorStore) Update(m *models.Morador) error {
	m.UpdatedAt = time.Now().Unix()

	query := `
		UPDATE moradores
		SET nome = $1, cpf = $2, telefone = $3, endereco = $4, numero = $5,
			complemento = $6, bairro = $7, cidade = $8, estado = $9, cep = $10,
			latitude = $11, longitude = $12, updated_at = $13
		WHERE id = $14`

	result, err := s.db.Exec(query,
		m.Nome, m.CPF, m.Telefone, m.Endereco, m.Numero,
		m.Complemento, m.Bairro, m.Cidade, m.Estado, m.CEP,
		m.Latitude, m.Longitude, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresMoradorStore) Delete(userID string) error {
	result, err := s.db.Exec("DELETE FROM moradores WHERE user_id = $1", userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *PostgresMoradorStore) ListWithFCMTokens() ([]models.Morador, error) {
	var moradores []models.Morador
	err := s.db.Select(&moradores,
		`SELECT * FROM moradores
		 WHERE fcm_token IS NOT NULL AND fcm_token != ''
		   AND latitude IS NOT NULL AND latitude != ''
		   AND longitude IS NOT NULL AND longitude != ''`)
	if err != nil {
		return nil, err
	}
	return moradores, nil
}

func (s *PostgresMoradorStore) SetFCMToken(userID, token string) error {
	result, err := s.db.Exec(
		"UPDATE moradores SET fcm_token = $1, updated_at = $2 WHERE user_id = $3",
		token, time.Now().Unix(), userID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
