package queuedb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	queuedomain "github.com/open-mic-club/encore/app/modules/queue/domain"
)

// Signup is the bun model backing queue entries.
//
// A partial unique index on (event_id, position) WHERE status = 'QUEUED'
// hard-enforces that queued positions never collide, which is why every
// multi-row position change goes through the two-phase negative-placeholder
// updates in this package.
type Signup struct {
	bun.BaseModel `bun:"table:signups,alias:s"`

	ID              uuid.UUID  `bun:"id,pk,type:uuid"`
	EventID         uuid.UUID  `bun:"event_id,notnull,type:uuid"`
	SingerName      string     `bun:"singer_name,notnull"`
	SongTitle       string     `bun:"song_title,notnull"`
	Artist          string     `bun:"artist,notnull"`
	PerformanceType string     `bun:"performance_type,notnull"`
	Status          string     `bun:"status,notnull,default:'QUEUED'"`
	Position        int        `bun:"position,notnull,default:0"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	PerformingAt    *time.Time `bun:"performing_at,nullzero"`
}

func toDomain(m *Signup) *queuedomain.Signup {
	if m == nil {
		return nil
	}
	return &queuedomain.Signup{
		ID:              m.ID,
		EventID:         m.EventID,
		SingerName:      m.SingerName,
		SongTitle:       m.SongTitle,
		Artist:          m.Artist,
		PerformanceType: queuedomain.PerformanceType(m.PerformanceType),
		Status:          queuedomain.Status(m.Status),
		Position:        m.Position,
		CreatedAt:       m.CreatedAt,
		PerformingAt:    m.PerformingAt,
	}
}

func toModel(s *queuedomain.Signup) *Signup {
	if s == nil {
		return nil
	}
	return &Signup{
		ID:              s.ID,
		EventID:         s.EventID,
		SingerName:      s.SingerName,
		SongTitle:       s.SongTitle,
		Artist:          s.Artist,
		PerformanceType: string(s.PerformanceType),
		Status:          string(s.Status),
		Position:        s.Position,
		CreatedAt:       s.CreatedAt,
		PerformingAt:    s.PerformingAt,
	}
}

func toDomainSlice(models []Signup) []queuedomain.Signup {
	out := make([]queuedomain.Signup, len(models))
	for i := range models {
		out[i] = *toDomain(&models[i])
	}
	return out
}
