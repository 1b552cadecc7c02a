package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/graniteware/storefront/internal/repository"
)

// NewRepositories wires all postgres-backed repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Product:  NewProductRepository(db, logger),
		Category: NewCategoryRepository(db, logger),
		User:     NewUserRepository(db, logger),
	}
}
