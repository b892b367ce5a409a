package concert

import (
	"context"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Events interface {
	repository.Repository[*Event]

	GetWithOrganizer(ctx context.Context, id uuid.UUID) (*Event, error)
	ListUpcoming(ctx context.Context, after time.Time, limit, offset int) ([]*Event, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*Event, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type events struct {
	repository.Repository[*Event]
	db *bun.DB
}

var (
	_ Events                        = (*events)(nil)
	_ repository.Repository[*Event] = (*events)(nil)
)

func NewEventsRepository(db *bun.DB) Events {
	repo := repository.NewRepository[*Event](db, repository.ModelHandlers[*Event]{
		NewRecord: func() *Event { return &Event{} },
		GetID: func(e *Event) uuid.UUID {
			if e == nil {
				return uuid.Nil
			}
			return e.ID
		},
		SetID: func(e *Event, id uuid.UUID) {
			if e != nil {
				e.ID = id
			}
		},
	})

	return &events{
		Repository: repo,
		db:         db,
	}
}

// GetWithOrganizer loads an event with its organizer relation so ownership
// checks can compare usernames without a second query.
func (r *events) GetWithOrganizer(ctx context.Context, id uuid.UUID) (*Event, error) {
	record := &Event{}
	err := r.db.NewSelect().
		Model(record).
		Relation("Organizer").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *events) ListUpcoming(ctx context.Context, after time.Time, limit, offset int) ([]*Event, error) {
	var records []*Event
	q := r.db.NewSelect().
		Model(&records).
		Relation("Organizer").
		Where("?TableAlias.start_date > ?", after).
		Order("start_date ASC")

	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteByID soft-deletes the event.
func (r *events) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*Event)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func (r *events) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*Event, error) {
	var records []*Event
	err := r.db.NewSelect().
		Model(&records).
		Relation("Organizer").
		Where("?TableAlias.organizer_id = ?", organizerID).
		Order("start_date ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}
