package repositories

import (
	"alerthub_backend/internal/models"

	"gorm.io/gorm"
)

type DeliveryRepository interface {
	Create(delivery *models.NotificationDelivery) error
	CreateBatch(deliveries []*models.NotificationDelivery) error
	FindByAlert(alertID string) ([]models.NotificationDelivery, error)
}

type DeliveryRepositoryImpl struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &DeliveryRepositoryImpl{db: db}
}

func (r *DeliveryRepositoryImpl) Create(delivery *models.NotificationDelivery) error {
	return r.db.Create(delivery).Error
}

func (r *DeliveryRepositoryImpl) CreateBatch(deliveries []*models.NotificationDelivery) error {
	if len(deliveries) == 0 {
		return nil
	}
	return r.db.CreateInBatches(deliveries, 100).Error
}

func (r *DeliveryRepositoryImpl) FindByAlert(alertID string) ([]models.NotificationDelivery, error) {
	var deliveries []models.NotificationDelivery
	err := r.db.Where("alert_id = ?", alertID).Order("delivered_at DESC").Find(&deliveries).Error
	return deliveries, err
}

