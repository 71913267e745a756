package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/projjWalroy/Bookify/services/order-service/internal/domain"
)

var ErrOrderNotFound = errors.New("order_not_found")

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Order{})
}

// CreateIfAbsent inserts o unless an order with the same booking id already
// exists. The unique index on booking_id plus ON CONFLICT DO NOTHING makes
// this safe under concurrent redelivery across worker instances. When the
// row already existed the stored order is returned so the caller can see
// whether it is still PENDING or already terminal.
func (r *OrderRepo) CreateIfAbsent(ctx context.Context, o *domain.Order) (*domain.Order, bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "booking_id"}}, DoNothing: true}).
		Create(o)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return o, true, nil
	}
	existing, err := r.ByBookingID(ctx, o.BookingID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// SetStatus moves a PENDING order to a terminal status. The status guard in
// the WHERE clause makes terminal states sticky: once CONFIRMED or FAILED,
// no later transition lands.
func (r *OrderRepo) SetStatus(ctx context.Context, bookingID, status, reason string) error {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("booking_id = ? AND status = ?", bookingID, domain.StatusPending).
		Updates(map[string]any{"status": status, "failure_reason": reason})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// already terminal, or unknown booking — either way nothing to do
		return nil
	}
	return nil
}

func (r *OrderRepo) ByBookingID(ctx context.Context, bookingID string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, "booking_id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) ByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) List(ctx context.Context, page, size int32, customerID, eventID string) ([]domain.Order, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Order{})
	if customerID != "" {
		qb = qb.Where("customer_id = ?", customerID)
	}
	if eventID != "" {
		qb = qb.Where("event_id = ?", eventID)
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Order
	if err := qb.Order("created_at ASC").Limit(int(size)).Offset(int(page * size)).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
