package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/sellapp/internal/catalog"
	catalogdomain "github.com/smallbiznis/sellapp/internal/catalog/domain"
	"github.com/smallbiznis/sellapp/internal/comment"
	commentdomain "github.com/smallbiznis/sellapp/internal/comment/domain"
	"github.com/smallbiznis/sellapp/internal/config"
	"github.com/smallbiznis/sellapp/internal/identity"
	identitydomain "github.com/smallbiznis/sellapp/internal/identity/domain"
	"github.com/smallbiznis/sellapp/internal/logger"
	"github.com/smallbiznis/sellapp/internal/news"
	newsdomain "github.com/smallbiznis/sellapp/internal/news/domain"
	"github.com/smallbiznis/sellapp/internal/promotion"
	promotiondomain "github.com/smallbiznis/sellapp/internal/promotion/domain"
	"github.com/smallbiznis/sellapp/internal/providers/email"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	email.Module,
	identity.Module,
	catalog.Module,
	news.Module,
	promotion.Module,
	comment.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	identitySvc  identitydomain.Service
	catalogSvc   catalogdomain.Service
	newsSvc      newsdomain.Service
	promotionSvc promotiondomain.Service
	commentSvc   commentdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	IdentitySvc  identitydomain.Service
	CatalogSvc   catalogdomain.Service
	NewsSvc      newsdomain.Service
	PromotionSvc promotiondomain.Service
	CommentSvc   commentdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		identitySvc:  p.IdentitySvc,
		catalogSvc:   p.CatalogSvc,
		newsSvc:      p.NewsSvc,
		promotionSvc: p.PromotionSvc,
		commentSvc:   p.CommentSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1", s.ActorContext())

	// -------- Roles --------
	api.GET("/roles", s.ListRoles)
	api.POST("/roles", s.CreateRole)
	api.GET("/roles/:id", s.GetRoleByID)
	api.PUT("/roles/:id", s.UpdateRole)
	api.DELETE("/roles/:id", s.DeleteRole)

	// -------- Users --------
	api.GET("/users", s.ListUsers)
	api.POST("/users", s.CreateUser)
	api.GET("/users/:id", s.GetUserByID)
	api.PUT("/users/:id", s.UpdateUser)
	api.DELETE("/users/:id", s.DeleteUser)

	// -------- Categories --------
	api.GET("/categories", s.ListCategories)
	api.POST("/categories", s.CreateCategory)
	api.GET("/categories/:id", s.GetCategoryByID)
	api.PUT("/categories/:id", s.UpdateCategory)
	api.DELETE("/categories/:id", s.DeleteCategory)

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProductByID)
	api.PUT("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)
	api.POST("/products/:id/update_stock", s.UpdateProductStock)

	// -------- Product Images --------
	api.GET("/products/:id/images", s.ListProductImages)
	api.POST("/product_images", s.CreateProductImage)
	api.DELETE("/product_images/:id", s.DeleteProductImage)

	// -------- News --------
	api.GET("/news", s.ListNews)
	api.POST("/news", s.CreateNews)
	api.GET("/news/:id", s.GetNewsByID)
	api.PUT("/news/:id", s.UpdateNews)
	api.DELETE("/news/:id", s.DeleteNews)

	// -------- Promotions --------
	api.GET("/promotions", s.ListPromotions)
	api.POST("/promotions", s.CreatePromotion)
	api.GET("/promotions/:id", s.GetPromotionByID)
	api.PUT("/promotions/:id", s.UpdatePromotion)
	api.DELETE("/promotions/:id", s.DeletePromotion)
	api.GET("/promotions/:id/products", s.ListPromotionProducts)
	api.POST("/promotions/:id/products", s.AttachPromotionProduct)
	api.DELETE("/promotions/:id/products/:productId", s.DetachPromotionProduct)

	// -------- Comments --------
	api.GET("/comments", s.ListComments)
	api.POST("/comments", s.CreateComment)
	api.GET("/comments/:id", s.GetCommentByID)
	api.DELETE("/comments/:id", s.DeleteComment)
}
