package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"github.com/softstep/shop/internal/events"
	"github.com/softstep/shop/internal/logging"
	"github.com/softstep/shop/internal/models"
	"github.com/softstep/shop/internal/repo"
	"github.com/softstep/shop/internal/storage"
	"github.com/softstep/shop/internal/transport"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Images   *storage.ImageStore
	Producer *events.Producer
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) Create(ctx context.Context, req transport.CreateProductRequest, image *multipart.FileHeader) (*models.Product, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	imagePath := ""
	if image != nil {
		p, err := s.Images.Save(image)
		if err != nil {
			return nil, err
		}
		imagePath = p
	}

	prod := models.Product{
		ID:       req.ID,
		Name:     req.Name,
		Category: req.Category,
		Type:     req.Type,
		Stock:    req.Stock,
		Image:    imagePath,
		IsActive: true,
	}
	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: product with ID %s already exists", ErrConflict, req.ID)
		}
		return nil, err
	}

	s.publish(ctx, prod.ID, map[string]interface{}{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return &prod, nil
}

// Update replaces name/category/type/stock unconditionally; the image only
// when a new upload is present. The previous image file is left on disk in
// that case, same as the system this replaces.
func (s *CatalogService) Update(ctx context.Context, id string, req transport.UpdateProductRequest, image *multipart.FileHeader) error {
	if req.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	updates := map[string]interface{}{
		"name":     req.Name,
		"category": req.Category,
		"type":     req.Type,
		"stock":    req.Stock,
	}
	if image != nil {
		p, err := s.Images.Save(image)
		if err != nil {
			return err
		}
		updates["image"] = p
	}

	rows, err := s.Repo.UpdateProduct(ctx, id, updates)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	s.publish(ctx, id, map[string]interface{}{
		"type":      "product_updated",
		"productID": id,
		"name":      req.Name,
	})

	return nil
}

func (s *CatalogService) SetActive(ctx context.Context, id string, active bool) error {
	rows, err := s.Repo.SetProductActive(ctx, id, active)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	s.publish(ctx, id, map[string]interface{}{
		"type":      "product_status_changed",
		"productID": id,
		"isActive":  active,
	})

	return nil
}

// Delete removes the stored image first, best-effort, then the row. Deleting
// an absent product is a no-op success.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	s.Images.Remove(ctx, prod.Image)

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, id, map[string]interface{}{
		"type":      "product_deleted",
		"productID": id,
	})

	return nil
}

func (s *CatalogService) publish(ctx context.Context, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.Publish(ctx, events.TopicProductEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "topic", events.TopicProductEvents, "error", err)
	}
}
