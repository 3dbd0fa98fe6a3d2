package db

import (
	"fmt"

	configs "github.com/akhilrajvs/SquidEventWssService/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitPsql(cfg *configs.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PsqlURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return db, nil
}
