package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brightline/internal/domain"
	"brightline/internal/pkg/utils"
	"brightline/internal/repository"
)

const (
	DefaultLimit  = 10
	featuredLimit = 6
)

type Service struct {
	repo ServiceRepository
}

func NewService(repo ServiceRepository) *Service {
	return &Service{repo: repo}
}

// List hides inactive services from everyone but admins.
func (s *Service) List(ctx context.Context, f repository.ServiceFilter, p repository.ListParams, admin bool) ([]domain.ServiceOffering, int64, error) {
	f.ActiveOnly = !admin
	out, total, err := s.repo.List(ctx, f, p.Normalize(DefaultLimit))
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}
	return out, total, nil
}

func (s *Service) Featured(ctx context.Context) ([]domain.ServiceOffering, error) {
	featured := true
	out, _, err := s.List(ctx, repository.ServiceFilter{Featured: &featured}, repository.ListParams{Limit: featuredLimit}, false)
	return out, err
}

func (s *Service) Categories(ctx context.Context) ([]repository.CategoryCount, error) {
	out, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, slug string, admin bool) (*domain.ServiceOffering, error) {
	svc, err := s.repo.GetBySlug(ctx, slug, !admin)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return svc, nil
}

func (s *Service) Create(ctx context.Context, req CreateServiceRequest) (*domain.ServiceOffering, error) {
	svc := &domain.ServiceOffering{
		ShortDescription:  strings.TrimSpace(req.ShortDescription),
		Description:       strings.TrimSpace(req.Description),
		Category:          req.Category,
		Icon:              strings.TrimSpace(req.Icon),
		Image:             strings.TrimSpace(req.Image),
		Features:          trimAll(req.Features),
		PriceType:         req.PriceType,
		BasePrice:         req.BasePrice,
		EstimatedDuration: strings.TrimSpace(req.EstimatedDuration),
		IsActive:          true,
		IsFeatured:        req.IsFeatured,
		SortOrder:         req.SortOrder,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	svc.SetName(req.Name)

	slug, err := utils.UniqueSlug(ctx, svc.Slug, 0, s.repo.SlugExists)
	if err != nil {
		return nil, fmt.Errorf("resolve slug: %w", err)
	}
	svc.Slug = slug

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateServiceRequest) (*domain.ServiceOffering, error) {
	svc, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		previous := svc.Slug
		svc.SetName(*req.Name)
		if svc.Slug != previous {
			if svc.Slug, err = utils.UniqueSlug(ctx, svc.Slug, svc.ID, s.repo.SlugExists); err != nil {
				return nil, fmt.Errorf("resolve slug: %w", err)
			}
		}
	}
	if req.ShortDescription != nil {
		svc.ShortDescription = strings.TrimSpace(*req.ShortDescription)
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Icon != nil {
		svc.Icon = strings.TrimSpace(*req.Icon)
	}
	if req.Image != nil {
		svc.Image = strings.TrimSpace(*req.Image)
	}
	if req.Features != nil {
		svc.Features = trimAll(*req.Features)
	}
	if req.PriceType != nil {
		svc.PriceType = *req.PriceType
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.EstimatedDuration != nil {
		svc.EstimatedDuration = strings.TrimSpace(*req.EstimatedDuration)
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		svc.IsFeatured = *req.IsFeatured
	}
	if req.SortOrder != nil {
		svc.SortOrder = *req.SortOrder
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return svc, nil
}

// Toggle flips whether the service is listed publicly.
func (s *Service) Toggle(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	svc, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.IsActive = !svc.IsActive
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("toggle service: %w", err)
	}
	return svc, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

func (s *Service) getByID(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return svc, nil
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
