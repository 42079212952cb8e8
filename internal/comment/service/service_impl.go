package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sellapp/internal/actorcontext"
	"github.com/smallbiznis/sellapp/internal/cache"
	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
	"github.com/smallbiznis/sellapp/internal/comment/domain"
	newsdomain "github.com/smallbiznis/sellapp/internal/news/domain"
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
	News     newsdomain.Repository
	Evictor  cache.Evictor
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	products catalogdomain.ProductRepository
	news     newsdomain.Repository
	evictor  cache.Evictor
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("comment.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		products: p.Products,
		news:     p.News,
		evictor:  p.Evictor,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	actor, ok := actorcontext.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}

	targetType := domain.TargetType(strings.TrimSpace(req.TargetType))
	if !targetType.Valid() {
		return nil, domain.ErrInvalidTarget
	}
	targetID, err := parseID(req.TargetID)
	if err != nil {
		return nil, domain.ErrInvalidTarget
	}
	if err := s.targetExists(ctx, targetType, targetID); err != nil {
		return nil, err
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, domain.ErrInvalidRating
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		ID:         s.genID.Generate().Int64(),
		TargetType: targetType,
		TargetID:   targetID,
		Rating:     req.Rating,
		Body:       req.Body,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  actor.Int64(),
	}
	if err := s.repo.Insert(ctx, s.db, comment); err != nil {
		return nil, err
	}

	s.evict(ctx, comment)
	s.log.Info("comment created",
		zap.String("target_type", string(targetType)),
		zap.Int64("target_id", targetID),
	)

	resp := toResponse(comment)
	return &resp, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Response, error) {
	filter := domain.ListFilter{}
	if req.TargetType != "" {
		targetType := domain.TargetType(req.TargetType)
		if !targetType.Valid() {
			return nil, domain.ErrInvalidTarget
		}
		filter.TargetType = targetType
	}
	if req.TargetID != "" {
		targetID, err := parseID(req.TargetID)
		if err != nil {
			return nil, domain.ErrInvalidTarget
		}
		filter.TargetID = targetID
	}

	comments, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(comments))
	for i := range comments {
		resp = append(resp, toResponse(&comments[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	commentID, err := parseID(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	comment, err := s.repo.FindByID(ctx, s.db, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(comment)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	commentID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	comment, err := s.repo.FindByID(ctx, s.db, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, commentID); err != nil {
		return err
	}

	s.evict(ctx, comment)
	s.log.Info("comment deleted", zap.Int64("comment_id", commentID))
	return nil
}

func (s *Service) targetExists(ctx context.Context, targetType domain.TargetType, targetID int64) error {
	switch targetType {
	case domain.TargetProduct:
		product, err := s.products.FindByID(ctx, s.db, targetID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrInvalidTarget
		}
	case domain.TargetNews:
		article, err := s.news.FindByID(ctx, s.db, targetID)
		if err != nil {
			return err
		}
		if article == nil {
			return domain.ErrInvalidTarget
		}
	}
	return nil
}

// evict drops the comment's own keys plus the cached comment list and
// aggregate rating of the target it belongs to.
func (s *Service) evict(ctx context.Context, comment *domain.Comment) {
	keys := []string{
		cache.EntityKey(cache.KindComment, comment.ID),
		cache.ListKey(cache.KindComment),
	}
	keys = append(keys, cache.TargetKeys(string(comment.TargetType), comment.TargetID)...)
	s.evictor.Evict(ctx, keys...)
}

func toResponse(c *domain.Comment) domain.Response {
	return domain.Response{
		ID:         snowflake.ID(c.ID).String(),
		TargetType: c.TargetType,
		TargetID:   snowflake.ID(c.TargetID).String(),
		Rating:     c.Rating,
		Body:       c.Body,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		CreatedBy:  snowflake.ID(c.CreatedBy).String(),
	}
}

func parseID(raw string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	return parsed.Int64(), nil
}
