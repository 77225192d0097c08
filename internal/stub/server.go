// Package stub is an in-memory stand-in for the tour platform backend.
// It implements the endpoint contract the client depends on (auth
// schemes, envelopes, the schedule state machine) with fixture data, and
// backs both contract tests and local development. It does not reproduce
// production pricing or revenue logic; its numbers are deterministic
// fixture math.
package stub

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/voyara/voyara-client/internal/models"
)

// Server holds the stub's in-memory state
type Server struct {
	jwtSecret []byte
	logger    *logrus.Logger

	mu         sync.Mutex
	tours      map[string]models.Tour
	schedules  map[string]*models.Schedule
	services   []models.TourService
	rooms      map[string]models.Room
	setMeals   map[string]models.SetMeal
	posts      []models.Post
	comments   map[string][]models.Comment
	likes      map[string]map[string]bool
	stories    []models.Story
	tags       map[string]models.HashtagEntity
	reviews    map[string]models.Review
	promotions map[string]models.Promotion

	// flat revenue attributed per booking when a schedule completes
	revenuePerBooking float64
}

// NewServer creates a stub server. jwtSecret signs and verifies the bearer
// tokens used by the social and review endpoints.
func NewServer(jwtSecret string, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{
		jwtSecret:         []byte(jwtSecret),
		logger:            logger,
		tours:             make(map[string]models.Tour),
		schedules:         make(map[string]*models.Schedule),
		rooms:             make(map[string]models.Room),
		setMeals:          make(map[string]models.SetMeal),
		comments:          make(map[string][]models.Comment),
		likes:             make(map[string]map[string]bool),
		tags:              make(map[string]models.HashtagEntity),
		reviews:           make(map[string]models.Review),
		promotions:        make(map[string]models.Promotion),
		revenuePerBooking: 100,
	}
}

// IssueToken mints a bearer token for the given user, valid for 24h
func (s *Server) IssueToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Seed helpers for tests and local fixtures

// SeedService registers a partner service
func (s *Server) SeedService(service models.TourService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = append(s.services, service)
}

// SeedRoom registers a room type
func (s *Server) SeedRoom(room models.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = room
}

// SeedSetMeal registers a set meal
func (s *Server) SeedSetMeal(meal models.SetMeal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setMeals[meal.ID] = meal
}

// SeedSchedule registers a departure schedule
func (s *Server) SeedSchedule(schedule models.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := schedule
	s.schedules[schedule.ID] = &copied
}

// SeedTag registers a hashtag resolution
func (s *Server) SeedTag(entity models.HashtagEntity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[normalizeTag(entity.Tag)] = entity
}

// normalizeTag lowercases a hashtag and strips a leading '#'
func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimPrefix(tag, "#"))
}

// SeedPromotion registers a promotion
func (s *Server) SeedPromotion(promo models.Promotion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if promo.ID == "" {
		promo.ID = uuid.NewString()
	}
	s.promotions[promo.ID] = promo
}

// Router builds the gin engine with all stubbed routes
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-User-ID", "X-User-Email"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	apiGroup := router.Group("/api")

	// Public endpoints
	apiGroup.GET("/promotions/homepage", s.getHomepagePromotions)

	// Admin endpoints: identity-header scheme
	admin := apiGroup.Group("", s.identityRequired())
	{
		admin.GET("/promotions", s.listPromotions)
		admin.POST("/promotions", s.createPromotion)
		admin.PUT("/promotions/:id", s.updatePromotion)
		admin.DELETE("/promotions/:id", s.deletePromotion)

		admin.GET("/admin/tours", s.listTours)
		admin.POST("/admin/tours", s.createTour)
		admin.GET("/admin/tours/available-services", s.availableServices)
		admin.POST("/admin/tours/calculate-price", s.calculatePrice)
		admin.GET("/admin/tours/:id", s.getTour)
		admin.PUT("/admin/tours/:id", s.updateTour)
		admin.DELETE("/admin/tours/:id", s.deleteTour)
		admin.GET("/admin/tours/:id/schedules", s.listSchedules)

		admin.POST("/schedules", s.createSchedule)
		admin.POST("/schedules/:id/start", s.scheduleAction("start"))
		admin.POST("/schedules/:id/complete", s.scheduleAction("complete"))
		admin.POST("/schedules/:id/cancel", s.scheduleAction("cancel"))
	}

	// Social and review endpoints: bearer scheme
	bearer := apiGroup.Group("", s.bearerRequired())
	{
		bearer.GET("/social/posts", s.listPosts)
		bearer.POST("/social/posts", s.createPost)
		bearer.GET("/social/posts/:id", s.getPost)
		bearer.DELETE("/social/posts/:id", s.deletePost)
		bearer.GET("/social/posts/:id/comments", s.listComments)
		bearer.POST("/social/posts/:id/comments", s.createComment)
		bearer.POST("/social/posts/:id/like", s.toggleLike)
		bearer.GET("/social/stories", s.listStories)
		bearer.POST("/social/stories", s.createStory)
		bearer.GET("/social/tags", s.resolveTag)

		bearer.POST("/reviews/services", s.submitServiceReview)
		bearer.DELETE("/reviews/:id", s.deleteReview)
		bearer.GET("/tours/:id/reviews", s.tourReviews)
		bearer.GET("/partner/:id/reviews", s.partnerReviews)
	}

	return router
}

// identityRequired enforces the X-User-ID/X-User-Email header scheme
func (s *Server) identityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		email := c.GetHeader("X-User-Email")
		if userID == "" || email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", userID)
		c.Set("user_email", email)
		c.Next()
	}
}

// bearerRequired enforces the Authorization: Bearer scheme
func (s *Server) bearerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(string); ok {
				c.Set("user_id", sub)
			}
			if email, ok := claims["email"].(string); ok {
				c.Set("user_email", email)
			}
		}
		c.Next()
	}
}
