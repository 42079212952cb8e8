package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/sellapp/internal/actorcontext"
	"github.com/smallbiznis/sellapp/internal/cache"
	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
	"github.com/smallbiznis/sellapp/internal/promotion/domain"
	"github.com/smallbiznis/sellapp/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Products catalogdomain.ProductRepository
	Evictor  cache.Evictor
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	products catalogdomain.ProductRepository
	evictor  cache.Evictor
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("promotion.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		products: p.Products,
		evictor:  p.Evictor,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	actor, ok := actorcontext.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || req.EndDate.Before(req.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}

	slugValue := strings.TrimSpace(req.Slug)
	if slugValue == "" {
		slugValue = title
	}

	now := time.Now().UTC()
	promotion := &domain.Promotion{
		ID:          s.genID.Generate().Int64(),
		Title:       title,
		Slug:        slug.Make(slugValue),
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   actor.Int64(),
	}
	if err := s.repo.Insert(ctx, s.db, promotion); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, err
	}

	s.evict(ctx, promotion.ID)
	s.log.Info("promotion created", zap.String("title", promotion.Title), zap.String("slug", promotion.Slug))

	resp := toResponse(promotion)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	promotions, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(promotions))
	for i := range promotions {
		resp = append(resp, toResponse(&promotions[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	promotionID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	promotion, err := s.repo.FindByID(ctx, s.db, promotionID)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(promotion)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	actor, ok := actorcontext.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}

	promotionID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	promotion, err := s.repo.FindByID(ctx, s.db, promotionID)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		promotion.Title = title
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			promotion.Description = nil
		} else {
			promotion.Description = req.Description
		}
	}
	if req.StartDate != nil {
		promotion.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		promotion.EndDate = *req.EndDate
	}
	if promotion.EndDate.Before(promotion.StartDate) {
		return nil, domain.ErrInvalidDateRange
	}

	actorID := actor.Int64()
	promotion.UpdatedBy = &actorID
	promotion.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, promotion); err != nil {
		return nil, err
	}

	s.evict(ctx, promotion.ID)

	resp := toResponse(promotion)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	promotionID, err := parseID(id)
	if err != nil {
		return err
	}

	promotion, err := s.repo.FindByID(ctx, s.db, promotionID)
	if err != nil {
		return err
	}
	if promotion == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, promotionID); err != nil {
		return err
	}

	s.evict(ctx, promotionID)
	s.log.Info("promotion deleted", zap.String("title", promotion.Title))
	return nil
}

func (s *Service) AttachProduct(ctx context.Context, promotionID, productID string) (*domain.LinkResponse, error) {
	actor, ok := actorcontext.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}

	promoID, err := parseID(promotionID)
	if err != nil {
		return nil, err
	}
	prodID, err := parseID(productID)
	if err != nil {
		return nil, domain.ErrInvalidProduct
	}

	promotion, err := s.repo.FindByID(ctx, s.db, promoID)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, domain.ErrNotFound
	}
	product, err := s.products.FindByID(ctx, s.db, prodID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrInvalidProduct
	}

	link := &domain.PromotionProduct{
		ID:          s.genID.Generate().Int64(),
		PromotionID: promoID,
		ProductID:   prodID,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   actor.Int64(),
	}
	if err := s.repo.InsertLink(ctx, s.db, link); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateLink
		}
		return nil, err
	}

	s.evict(ctx, promoID)

	resp := toLinkResponse(link)
	return &resp, nil
}

func (s *Service) DetachProduct(ctx context.Context, promotionID, productID string) error {
	promoID, err := parseID(promotionID)
	if err != nil {
		return err
	}
	prodID, err := parseID(productID)
	if err != nil {
		return domain.ErrInvalidProduct
	}

	if err := s.repo.DeleteLink(ctx, s.db, promoID, prodID); err != nil {
		return err
	}

	s.evict(ctx, promoID)
	return nil
}

func (s *Service) ListProducts(ctx context.Context, promotionID string) ([]domain.LinkResponse, error) {
	promoID, err := parseID(promotionID)
	if err != nil {
		return nil, err
	}

	links, err := s.repo.FindLinks(ctx, s.db, promoID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.LinkResponse, 0, len(links))
	for i := range links {
		resp = append(resp, toLinkResponse(&links[i]))
	}
	return resp, nil
}

func (s *Service) evict(ctx context.Context, id int64) {
	s.evictor.Evict(ctx, cache.EntityKey(cache.KindPromotion, id), cache.ListKey(cache.KindPromotion))
}

func toResponse(p *domain.Promotion) domain.Response {
	resp := domain.Response{
		ID:          snowflake.ID(p.ID).String(),
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		CreatedBy:   snowflake.ID(p.CreatedBy).String(),
	}
	if p.UpdatedBy != nil {
		resp.UpdatedBy = snowflake.ID(*p.UpdatedBy).String()
	}
	return resp
}

func toLinkResponse(l *domain.PromotionProduct) domain.LinkResponse {
	return domain.LinkResponse{
		ID:          snowflake.ID(l.ID).String(),
		PromotionID: snowflake.ID(l.PromotionID).String(),
		ProductID:   snowflake.ID(l.ProductID).String(),
		CreatedAt:   l.CreatedAt,
	}
}

func parseID(raw string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return parsed.Int64(), nil
}
