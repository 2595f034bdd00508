package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"stowage/internal/models"
)

// TareTypeRepository manages tare type master data.
type TareTypeRepository interface {
	Create(ctx context.Context, tareType *models.TareType) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TareType, error)
	GetByCode(ctx context.Context, code string) (*models.TareType, error)
	Update(ctx context.Context, tareType *models.TareType) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.TareType, error)
}

type tareTypeRepo struct {
	db DB
}

func NewTareTypeRepository(db DB) TareTypeRepository {
	return &tareTypeRepo{db: db}
}

func (r *tareTypeRepo) Create(ctx context.Context, tareType *models.TareType) error {
	query := `
		INSERT INTO tare_types (id, code, name, prefix, level)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, tareType.ID, tareType.Code, tareType.Name, tareType.Prefix, tareType.Level)
	return err
}

func (r *tareTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TareType, error) {
	query := `
		SELECT id, code, name, prefix, level
		FROM tare_types
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *tareTypeRepo) GetByCode(ctx context.Context, code string) (*models.TareType, error) {
	query := `
		SELECT id, code, name, prefix, level
		FROM tare_types
		WHERE code = $1
	`
	return r.scanOne(r.db.QueryRow(ctx, query, code))
}

func (r *tareTypeRepo) scanOne(row pgx.Row) (*models.TareType, error) {
	tareType := &models.TareType{}
	err := row.Scan(&tareType.ID, &tareType.Code, &tareType.Name, &tareType.Prefix, &tareType.Level)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return tareType, nil
}

func (r *tareTypeRepo) Update(ctx context.Context, tareType *models.TareType) error {
	query := `
		UPDATE tare_types
		SET code = $1, name = $2, prefix = $3, level = $4
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, tareType.Code, tareType.Name, tareType.Prefix, tareType.Level, tareType.ID)
	return err
}

func (r *tareTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tare_types WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *tareTypeRepo) List(ctx context.Context) ([]*models.TareType, error) {
	query := `
		SELECT id, code, name, prefix, level
		FROM tare_types
		ORDER BY code
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tareTypes []*models.TareType
	for rows.Next() {
		tareType := &models.TareType{}
		if err := rows.Scan(&tareType.ID, &tareType.Code, &tareType.Name, &tareType.Prefix, &tareType.Level); err != nil {
			return nil, err
		}
		tareTypes = append(tareTypes, tareType)
	}
	return tareTypes, rows.Err()
}
