package repo

import (
	"context"
	"time"

	"github.com/akhilrajvs/SquidEventWssService/internal/errs"
	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StandingRecord is one exported leaderboard row. Standings are written to
// Postgres when the operator exports them; the live event never reads them
// back.
type StandingRecord struct {
	UserID        string  `gorm:"column:user_id;primaryKey"`
	Email         string  `gorm:"column:email"`
	TotalScore    float64 `gorm:"column:total_score"`
	Rank          int     `gorm:"column:rank"`
	SelectedShape string  `gorm:"column:selected_shape"`
	GlassStep     int     `gorm:"column:glass_step"`
	ExportedAt    int64   `gorm:"column:exported_at"`
}

func (StandingRecord) TableName() string { return "standings" }

type ArchiveRepository struct {
	db *gorm.DB
}

func NewArchiveRepository(db *gorm.DB) (*ArchiveRepository, error) {
	if err := db.AutoMigrate(&StandingRecord{}); err != nil {
		return nil, errs.Transport("failed to migrate standings table", err)
	}
	return &ArchiveRepository{db: db}, nil
}

// ExportStandings upserts the full leaderboard snapshot. Re-exporting
// overwrites the previous snapshot row by row.
func (r *ArchiveRepository) ExportStandings(ctx context.Context, entries []*model.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().Unix()
	records := make([]StandingRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, StandingRecord{
			UserID:        e.UserID,
			Email:         e.Email,
			TotalScore:    e.TotalScore,
			Rank:          e.Rank,
			SelectedShape: string(e.SelectedShape),
			GlassStep:     e.GlassStep,
			ExportedAt:    now,
		})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&records).Error
	if err != nil {
		return errs.Transport("failed to export standings", err)
	}
	return nil
}
