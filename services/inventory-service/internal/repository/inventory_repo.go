package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/projjWalroy/Bookify/services/inventory-service/internal/domain"
)

var (
	ErrEventNotFound = errors.New("event_not_found")
	ErrVenueNotFound = errors.New("venue_not_found")
	ErrSoldOut       = errors.New("sold_out")
)

type InventoryRepo struct{ db *gorm.DB }

func NewInventoryRepo(db *gorm.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.EventInventory{}, &domain.Venue{}, &domain.CapacityCommit{})
}

func (r *InventoryRepo) EventByID(ctx context.Context, id string) (*domain.EventInventory, error) {
	var ev domain.EventInventory
	if err := r.db.WithContext(ctx).First(&ev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (r *InventoryRepo) VenueByID(ctx context.Context, id string) (*domain.Venue, error) {
	var v domain.Venue
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *InventoryRepo) ListEvents(ctx context.Context, page, size int32) ([]domain.EventInventory, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	var out []domain.EventInventory
	err := r.db.WithContext(ctx).Model(&domain.EventInventory{}).
		Order("name ASC").Limit(int(size)).Offset(int(page * size)).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CommitCapacity is the single admission-control point of the saga: a guarded
// UPDATE that checks and decrements in one statement, so concurrent callers
// for the same event serialize on the row and the capacity never goes
// negative. The capacity_commits row written in the same transaction keys the
// decrement to the booking id, so a redelivered commit (worker crashed after
// the decrement, before its own status write) does not decrement twice. Zero
// rows affected means either the event does not exist or the remaining
// capacity is short; a follow-up read tells the two apart.
func (r *InventoryRepo) CommitCapacity(ctx context.Context, eventID, bookingID string, ticketCount int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seen int64
		if err := tx.Model(&domain.CapacityCommit{}).Where("booking_id = ?", bookingID).Count(&seen).Error; err != nil {
			return err
		}
		if seen > 0 {
			return nil // already applied for this booking
		}

		res := tx.Model(&domain.EventInventory{}).
			Where("id = ? AND left_capacity >= ?", eventID, ticketCount).
			UpdateColumn("left_capacity", gorm.Expr("left_capacity - ?", ticketCount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var ev domain.EventInventory
			if err := tx.First(&ev, "id = ?", eventID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrEventNotFound
				}
				return err
			}
			return ErrSoldOut
		}

		rec := domain.CapacityCommit{
			BookingID:   bookingID,
			EventID:     eventID,
			TicketCount: ticketCount,
			CommittedAt: time.Now().UTC(),
		}
		return tx.Create(&rec).Error
	})
}

func (r *InventoryRepo) CreateEvent(ctx context.Context, ev *domain.EventInventory) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *InventoryRepo) CreateVenue(ctx context.Context, v *domain.Venue) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(v).Error
}
