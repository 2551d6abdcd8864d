package eventdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	eventdomain "github.com/open-mic-club/encore/app/modules/event/domain"
)

// Event is the bun model backing karaoke events.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name,notnull"`
	JoinCode  string    `bun:"join_code,notnull,unique"`
	HostID    string    `bun:"host_id,notnull"`
	Status    string    `bun:"status,notnull,default:'OPEN'"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func toDomain(m *Event) *eventdomain.Event {
	if m == nil {
		return nil
	}
	return &eventdomain.Event{
		ID:        m.ID,
		Name:      m.Name,
		JoinCode:  m.JoinCode,
		HostID:    m.HostID,
		Status:    eventdomain.Status(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toModel(e *eventdomain.Event) *Event {
	if e == nil {
		return nil
	}
	return &Event{
		ID:        e.ID,
		Name:      e.Name,
		JoinCode:  e.JoinCode,
		HostID:    e.HostID,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
