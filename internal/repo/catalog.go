package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/softstep/shop/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := []models.Product{}
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

// UpdateProduct replaces the given columns and reports how many rows matched,
// so the caller can tell an absent product apart from a clean no-op.
func (r *GormRepo) UpdateProduct(ctx context.Context, id string, updates map[string]interface{}) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *GormRepo) SetProductActive(ctx context.Context, id string, active bool) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// DecrementStock applies a relative stock update in a single statement and
// deactivates the product when the remaining stock is zero or below. Both SET
// expressions read the pre-update stock value, so concurrent decrements of
// the same product cannot lose arithmetic.
func (r *GormRepo) DecrementStock(ctx context.Context, productID string, quantity int) error {
	return r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock":     gorm.Expr("stock - ?", quantity),
			"is_active": gorm.Expr("CASE WHEN stock - ? <= 0 THEN ? ELSE is_active END", quantity, false),
		}).Error
}
