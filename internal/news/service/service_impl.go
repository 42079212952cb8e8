package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/smallbiznis/sellapp/internal/actorcontext"
	"github.com/smallbiznis/sellapp/internal/cache"
	"github.com/smallbiznis/sellapp/internal/news/domain"
	"github.com/smallbiznis/sellapp/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Evictor cache.Evictor
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	evictor cache.Evictor
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("news.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		evictor: p.Evictor,
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

	slugValue := strings.TrimSpace(req.Slug)
	if slugValue == "" {
		slugValue = title
	}

	now := time.Now().UTC()
	article := &domain.News{
		ID:        s.genID.Generate().Int64(),
		Title:     title,
		Slug:      slug.Make(slugValue),
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: actor.Int64(),
	}
	if err := s.repo.Insert(ctx, s.db, article); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, err
	}

	s.evict(ctx, article.ID)
	s.log.Info("news published", zap.String("title", article.Title), zap.String("slug", article.Slug))

	resp := toResponse(article)
	return &resp, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Response, error) {
	articles, err := s.repo.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(articles))
	for i := range articles {
		resp = append(resp, toResponse(&articles[i]))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Response, error) {
	newsID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	article, err := s.repo.FindByID(ctx, s.db, newsID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(article)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Response, error) {
	actor, ok := actorcontext.ActorIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidActor
	}

	newsID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	article, err := s.repo.FindByID(ctx, s.db, newsID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		article.Title = title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			article.Content = nil
		} else {
			article.Content = req.Content
		}
	}

	actorID := actor.Int64()
	article.UpdatedBy = &actorID
	article.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, article); err != nil {
		return nil, err
	}

	s.evict(ctx, article.ID)

	resp := toResponse(article)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	newsID, err := parseID(id)
	if err != nil {
		return err
	}

	article, err := s.repo.FindByID(ctx, s.db, newsID)
	if err != nil {
		return err
	}
	if article == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, newsID); err != nil {
		return err
	}

	s.evict(ctx, newsID)
	s.log.Info("news deleted", zap.String("title", article.Title))
	return nil
}

func (s *Service) evict(ctx context.Context, id int64) {
	s.evictor.Evict(ctx, cache.EntityKey(cache.KindNews, id), cache.ListKey(cache.KindNews))
}

func toResponse(n *domain.News) domain.Response {
	resp := domain.Response{
		ID:        snowflake.ID(n.ID).String(),
		Title:     n.Title,
		Slug:      n.Slug,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		CreatedBy: snowflake.ID(n.CreatedBy).String(),
	}
	if n.UpdatedBy != nil {
		resp.UpdatedBy = snowflake.ID(*n.UpdatedBy).String()
	}
	return resp
}

func parseID(raw string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return parsed.Int64(), nil
}
