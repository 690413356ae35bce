package repository

import (
	"database/sql"

	"github.com/Jonp4208/cfa-eval-sub012/internal/config"
	"github.com/redis/go-redis/v9"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
	rdb    *redis.Client
}

func NewRepository(cfg *config.Config, dbpool *sql.DB, rdb *redis.Client) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
		rdb:    rdb,
	}
}
