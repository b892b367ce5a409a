package concert

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Bookings interface {
	repository.Repository[*Booking]

	GetWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error
}

type bookings struct {
	repository.Repository[*Booking]
	db *bun.DB
}

var (
	_ Bookings                        = (*bookings)(nil)
	_ repository.Repository[*Booking] = (*bookings)(nil)
)

func NewBookingsRepository(db *bun.DB) Bookings {
	repo := repository.NewRepository[*Booking](db, repository.ModelHandlers[*Booking]{
		NewRecord: func() *Booking { return &Booking{} },
		GetID: func(b *Booking) uuid.UUID {
			if b == nil {
				return uuid.Nil
			}
			return b.ID
		},
		SetID: func(b *Booking, id uuid.UUID) {
			if b != nil {
				b.ID = id
			}
		},
	})

	return &bookings{
		Repository: repo,
		db:         db,
	}
}

// GetWithRelations loads a booking plus its user and event so ownership and
// response mapping need no further queries.
func (r *bookings) GetWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	record := &Booking{}
	err := r.db.NewSelect().
		Model(record).
		Relation("User").
		Relation("Event").
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

// UpdateStatus flips the booking lifecycle state without touching the rest
// of the record.
func (r *bookings) UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error {
	res, err := r.db.NewUpdate().
		Model((*Booking)(nil)).
		Set("status = ?", status).
		Set("updated_at = current_timestamp").
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

func (r *bookings) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error) {
	var records []*Booking
	err := r.db.NewSelect().
		Model(&records).
		Relation("Event").
		Where("?TableAlias.user_id = ?", userID).
		Order("booking_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}
