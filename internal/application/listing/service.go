// Package listing implements the marketplace CRUD around the authenticated
// session: listings are scoped to the viewer's college and mutable only by
// their owner.
package listing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/canopy-api/internal/domain"
	"github.com/canopy-api/internal/pkg/id"
)

// Store is the listing-table surface this service needs.
type Store interface {
	Put(ctx context.Context, l *domain.Listing) error
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
	Update(ctx context.Context, listingID string, updates map[string]interface{}) error
	Delete(ctx context.Context, listingID string) error
	ListByCollege(ctx context.Context, collegeName, listingType string) ([]domain.Listing, error)
	ListByUser(ctx context.Context, userID, listingType string) ([]domain.Listing, error)
}

// Viewer identifies the authenticated user a request acts as.
type Viewer struct {
	UserID      string
	Name        string
	CollegeName string
}

type Service interface {
	List(ctx context.Context, v Viewer, listingType string, mine bool) ([]domain.Listing, error)
	Create(ctx context.Context, v Viewer, req domain.CreateListingRequest) (*domain.Listing, error)
	Update(ctx context.Context, v Viewer, listingID string, req domain.UpdateListingRequest) (*domain.Listing, error)
	Delete(ctx context.Context, v Viewer, listingID string) error
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context, v Viewer, listingType string, mine bool) ([]domain.Listing, error) {
	listingType = strings.ToLower(listingType)
	if !validType(listingType) {
		if !mine {
			return nil, domain.ErrInvalidType
		}
		listingType = "" // "mine" without a type returns everything the user owns
	}

	var (
		listings []domain.Listing
		err      error
	)
	if mine {
		listings, err = s.store.ListByUser(ctx, v.UserID, listingType)
	} else {
		listings, err = s.store.ListByCollege(ctx, v.CollegeName, listingType)
	}
	if err != nil {
		return nil, fmt.Errorf("list listings: %v: %w", err, domain.ErrServer)
	}

	// Hash-key GSIs return items unordered; newest-first is the feed contract.
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

func (s *service) Create(ctx context.Context, v Viewer, req domain.CreateListingRequest) (*domain.Listing, error) {
	now := time.Now().UTC()
	l := &domain.Listing{
		ListingID:   id.New(),
		UserID:      v.UserID,
		UserName:    v.Name,
		CollegeName: v.CollegeName,

		Type:        strings.ToLower(req.Type),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),

		Price:         req.Price,
		Category:      strings.TrimSpace(req.Category),
		ImageURL:      strings.TrimSpace(req.ImageURL),
		Images:        capImages(req.Images),
		Condition:     strings.TrimSpace(req.Condition),
		BrandModel:    strings.TrimSpace(req.BrandModel),
		OriginalPrice: req.OriginalPrice,
		Negotiable:    req.Negotiable,
		ContactPhone:  strings.TrimSpace(req.ContactPhone),
		Skills:        strings.TrimSpace(req.Skills),
		PricingType:   strings.TrimSpace(req.PricingType),

		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Put(ctx, l); err != nil {
		return nil, fmt.Errorf("create listing: %v: %w", err, domain.ErrServer)
	}
	return l, nil
}

func (s *service) Update(ctx context.Context, v Viewer, listingID string, req domain.UpdateListingRequest) (*domain.Listing, error) {
	existing, err := s.owned(ctx, v, listingID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	setStr := func(field string, val *string) {
		if val != nil {
			updates[field] = strings.TrimSpace(*val)
		}
	}
	setStr("title", req.Title)
	setStr("description", req.Description)
	setStr("category", req.Category)
	setStr("image_url", req.ImageURL)
	setStr("condition", req.Condition)
	setStr("brand_model", req.BrandModel)
	setStr("contact_phone", req.ContactPhone)
	setStr("skills", req.Skills)
	setStr("pricing_type", req.PricingType)
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Negotiable != nil {
		updates["negotiable"] = *req.Negotiable
	}
	if req.Images != nil {
		updates["images"] = capImages(*req.Images)
	}
	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.store.Update(ctx, listingID, updates); err != nil {
		return nil, fmt.Errorf("update listing: %v: %w", err, domain.ErrServer)
	}
	updated, err := s.store.Get(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("reload listing: %v: %w", err, domain.ErrServer)
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, v Viewer, listingID string) error {
	if _, err := s.owned(ctx, v, listingID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, listingID); err != nil {
		return fmt.Errorf("delete listing: %v: %w", err, domain.ErrServer)
	}
	return nil
}

// owned loads a listing and enforces the ownership check shared by Update and
// Delete. A listing owned by someone else reports forbidden, not not-found,
// matching the boundary contract.
func (s *service) owned(ctx context.Context, v Viewer, listingID string) (*domain.Listing, error) {
	if listingID == "" {
		return nil, domain.ErrInvalidID
	}
	l, err := s.store.Get(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("load listing: %w", domain.ErrForbidden)
	}
	if l.UserID != v.UserID {
		return nil, fmt.Errorf("listing %s not owned by caller: %w", listingID, domain.ErrForbidden)
	}
	return l, nil
}

func validType(t string) bool {
	return t == domain.ListingTypeService || t == domain.ListingTypeProduct
}

func capImages(images []string) []string {
	out := make([]string, 0, domain.MaxListingImages)
	for _, u := range images {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		out = append(out, u)
		if len(out) == domain.MaxListingImages {
			break
		}
	}
	return out
}
