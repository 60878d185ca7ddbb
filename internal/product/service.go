package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sukaikan/internal/logger"
	"sukaikan/internal/storage"
	"sukaikan/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, category, search string) ([]Product, error)
	Seasonal(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Recommendations(ctx context.Context, productID string) ([]Recommendation, error)
	Create(ctx context.Context, input Input, image *storage.Upload) (*Product, error)
	Update(ctx context.Context, id string, input Input, image *storage.Upload) (*Product, error)
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	files storage.Store
	now   func() time.Time
}

func NewService(repo Repository, files storage.Store) Service {
	return &service{repo: repo, files: files, now: time.Now}
}

func (s *service) List(ctx context.Context, category, search string) ([]Product, error) {
	return s.repo.List(ctx, ListFilter{Category: category, Search: search})
}

func (s *service) Seasonal(ctx context.Context) ([]Product, error) {
	return s.repo.ListSeasonal(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Recommendations(ctx context.Context, productID string) ([]Recommendation, error) {
	return s.repo.ListRecommendations(ctx, productID)
}

// Create stores a new product under the slug of its name. An existing
// product with the same slug is overwritten. New products start without a
// season label; input.SeasonLabel is only applied by Update.
func (s *service) Create(ctx context.Context, input Input, image *storage.Upload) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyName
	}

	p := Product{
		ID:         utils.Slug(input.Name),
		Name:       input.Name,
		Category:   input.Category,
		PricePerKg: input.PricePerKg,
		Size:       input.Size,
		Texture:    input.Texture,
		IsActive:   true,
	}

	if image != nil {
		ref, err := s.saveImage(p.ID, image)
		if err != nil {
			log.Error("failed to save product image", zap.String("product_id", p.ID), zap.Error(err))
			return nil, err
		}
		p.ImagePath = ref
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		log.Error("failed to insert product", zap.String("product_id", p.ID), zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return &p, nil
}

func (s *service) Update(ctx context.Context, id string, input Input, image *storage.Upload) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("product_id", id),
	)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			log.Error("failed to load product", zap.Error(err))
		}
		return nil, err
	}

	p := *existing
	p.Name = input.Name
	p.Category = input.Category
	p.PricePerKg = input.PricePerKg
	p.Size = input.Size
	p.Texture = input.Texture
	p.SeasonLabel = input.SeasonLabel

	replaceImage := image != nil
	if replaceImage {
		ref, err := s.saveImage(id, image)
		if err != nil {
			log.Error("failed to save product image", zap.Error(err))
			return nil, err
		}
		p.ImagePath = ref
	}

	if err := s.repo.Update(ctx, p, replaceImage); err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	log.Info("product updated", zap.Bool("image_replaced", replaceImage))
	return &p, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		logger.FromCtx(ctx).Error("failed to deactivate product",
			zap.String("product_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) saveImage(productID string, image *storage.Upload) (string, error) {
	name := storage.GenerateName(productID, image.Filename, s.now())
	ref, err := s.files.Save(image.Body, name)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return ref, nil
}
