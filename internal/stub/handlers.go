package stub

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voyara/voyara-client/internal/models"
)

// Promotions

func (s *Server) listPromotions(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	promotions := make([]models.Promotion, 0, len(s.promotions))
	for _, p := range s.promotions {
		promotions = append(promotions, p)
	}
	c.JSON(http.StatusOK, promotions)
}

func (s *Server) getHomepagePromotions(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	homepage := models.HomepagePromotions{
		Banners:    []models.Promotion{},
		PromoCodes: []models.Promotion{},
	}
	for _, p := range s.promotions {
		if !p.IsActive || !p.ShowOnHomepage {
			continue
		}
		switch p.PromotionType {
		case models.PromotionTypeBanner:
			homepage.Banners = append(homepage.Banners, p)
		case models.PromotionTypePromoCode:
			homepage.PromoCodes = append(homepage.PromoCodes, p)
		}
	}
	c.JSON(http.StatusOK, homepage)
}

func (s *Server) createPromotion(c *gin.Context) {
	var promo models.Promotion
	if err := c.ShouldBindJSON(&promo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := promo.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	promo.ID = uuid.NewString()

	s.mu.Lock()
	s.promotions[promo.ID] = promo
	s.mu.Unlock()

	c.JSON(http.StatusCreated, promo)
}

func (s *Server) updatePromotion(c *gin.Context) {
	id := c.Param("id")
	var promo models.Promotion
	if err := c.ShouldBindJSON(&promo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := promo.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.promotions[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}
	promo.ID = id
	s.promotions[id] = promo
	c.JSON(http.StatusOK, promo)
}

func (s *Server) deletePromotion(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.promotions[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}
	delete(s.promotions, id)
	c.Status(http.StatusNoContent)
}

// Tours

func (s *Server) listTours(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tours := make([]models.Tour, 0, len(s.tours))
	for _, t := range s.tours {
		tours = append(tours, t)
	}
	c.JSON(http.StatusOK, tours)
}

func (s *Server) getTour(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tour, exists := s.tours[c.Param("id")]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tour not found"})
		return
	}
	c.JSON(http.StatusOK, tour)
}

func (s *Server) createTour(c *gin.Context) {
	var tour models.Tour
	if err := c.ShouldBindJSON(&tour); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := tour.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tour.ID = uuid.NewString()

	s.mu.Lock()
	s.tours[tour.ID] = tour
	s.mu.Unlock()

	c.JSON(http.StatusCreated, tour)
}

func (s *Server) updateTour(c *gin.Context) {
	id := c.Param("id")
	var tour models.Tour
	if err := c.ShouldBindJSON(&tour); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := tour.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tours[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tour not found"})
		return
	}
	tour.ID = id
	s.tours[id] = tour
	c.JSON(http.StatusOK, tour)
}

func (s *Server) deleteTour(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tours[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tour not found"})
		return
	}
	delete(s.tours, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) availableServices(c *gin.Context) {
	destination := c.Query("destination_city_id")
	departure := c.Query("departure_city_id")
	serviceType := c.Query("service_type")

	s.mu.Lock()
	defer s.mu.Unlock()
	filtered := make([]models.TourService, 0)
	for _, svc := range s.services {
		if serviceType != "" && svc.ServiceType != serviceType {
			continue
		}
		if destination != "" && svc.CityID != "" && svc.CityID != destination && svc.CityID != departure {
			continue
		}
		filtered = append(filtered, svc)
	}
	c.JSON(http.StatusOK, filtered)
}

// calculatePrice prices the selections from seeded fixtures: room price x
// quantity x duration, set-meal price x members, flat transport price.
// Deterministic fixture math for tests, not production pricing.
func (s *Server) calculatePrice(c *gin.Context) {
	var req models.PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quote := models.PriceQuote{Breakdown: []models.PriceBreakdownItem{}}

	for _, rb := range req.RoomBookings {
		room, exists := s.rooms[rb.RoomID]
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown room: " + rb.RoomID})
			return
		}
		amount := room.Price * float64(rb.Quantity) * float64(req.Duration)
		quote.Breakdown = append(quote.Breakdown, models.PriceBreakdownItem{
			Label:    "Accommodation: " + room.RoomType,
			Amount:   amount,
			Quantity: rb.Quantity,
		})
		quote.TotalPrice += amount
	}

	for _, sel := range req.SelectedSetMeals {
		meal, exists := s.setMeals[sel.SetMealID]
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown set meal: " + sel.SetMealID})
			return
		}
		amount := meal.Price * float64(req.NumberOfMembers)
		quote.Breakdown = append(quote.Breakdown, models.PriceBreakdownItem{
			Label:    "Set meal: " + meal.Name,
			Amount:   amount,
			Quantity: req.NumberOfMembers,
		})
		quote.TotalPrice += amount
	}

	if req.Services.Transportation != nil {
		for _, svc := range s.services {
			if svc.ID == req.Services.Transportation.ServiceID {
				quote.Breakdown = append(quote.Breakdown, models.PriceBreakdownItem{
					Label:  "Transportation: " + svc.Name,
					Amount: svc.Price,
				})
				quote.TotalPrice += svc.Price
				break
			}
		}
	}

	c.JSON(http.StatusOK, quote)
}

// Schedules

func (s *Server) listSchedules(c *gin.Context) {
	tourID := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	schedules := make([]models.Schedule, 0)
	for _, sched := range s.schedules {
		if sched.TourID == tourID {
			schedules = append(schedules, *sched)
		}
	}
	c.JSON(http.StatusOK, schedules)
}

func (s *Server) createSchedule(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	schedule := models.Schedule{
		ID:                uuid.NewString(),
		TourID:            req.TourID,
		DepartureDatetime: req.DepartureDatetime,
		MaxSlots:          req.MaxSlots,
		SlotsAvailable:    req.MaxSlots,
		IsActive:          true,
		Status:            models.ScheduleStatusPending,
	}
	if tour, exists := s.tours[req.TourID]; exists {
		schedule.ReturnDatetime = req.DepartureDatetime.Add(time.Duration(tour.Duration) * 24 * time.Hour)
	}
	s.schedules[schedule.ID] = &schedule
	c.JSON(http.StatusCreated, schedule)
}

func (s *Server) scheduleAction(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		s.mu.Lock()
		defer s.mu.Unlock()

		schedule, exists := s.schedules[id]
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"message": "Schedule not found"})
			return
		}

		switch action {
		case "start":
			if schedule.Status != models.ScheduleStatusPending {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Only pending schedules can be started"})
				return
			}
			if schedule.BookingCount == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot start a schedule without bookings"})
				return
			}
			schedule.Status = models.ScheduleStatusOngoing
			c.JSON(http.StatusOK, models.ScheduleActionResponse{Success: true})

		case "complete":
			if schedule.Status != models.ScheduleStatusOngoing {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Only ongoing schedules can be completed"})
				return
			}
			schedule.Status = models.ScheduleStatusCompleted
			c.JSON(http.StatusOK, models.ScheduleActionResponse{
				Success:                 true,
				TotalRevenueDistributed: s.revenuePerBooking * float64(schedule.BookingCount),
			})

		case "cancel":
			if schedule.Status != models.ScheduleStatusPending {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Only pending schedules can be cancelled"})
				return
			}
			if schedule.OccupancyPercentage >= 50 {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot cancel a schedule at 50% occupancy or above"})
				return
			}
			schedule.Status = models.ScheduleStatusCancelled
			schedule.IsActive = false
			c.JSON(http.StatusOK, models.ScheduleActionResponse{
				Success:                true,
				CancelledBookingsCount: schedule.BookingCount,
			})

		default:
			c.JSON(http.StatusNotFound, gin.H{"message": "Unknown action"})
		}
	}
}

// Social feed

func (s *Server) listPosts(c *gin.Context) {
	userID := c.GetString("user_id")
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := make([]models.Post, len(s.posts))
	for i, p := range s.posts {
		p.IsLiked = s.likes[p.ID][userID]
		p.LikeCount = len(s.likes[p.ID])
		p.CommentCount = len(s.comments[p.ID])
		posts[i] = p
	}
	c.JSON(http.StatusOK, posts)
}

func (s *Server) getPost(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.ID == id {
			p.IsLiked = s.likes[id][userID]
			p.LikeCount = len(s.likes[id])
			p.CommentCount = len(s.comments[id])
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
}

func (s *Server) createPost(c *gin.Context) {
	var post models.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if post.Content == "" && post.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post needs content or an image"})
		return
	}
	post.ID = uuid.NewString()
	post.Author = c.GetString("user_email")
	post.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.posts = append([]models.Post{post}, s.posts...)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, post)
}

func (s *Server) deletePost(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			delete(s.comments, id)
			delete(s.likes, id)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
}

func (s *Server) listComments(c *gin.Context) {
	postID := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	comments := s.comments[postID]
	if comments == nil {
		comments = []models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

func (s *Server) createComment(c *gin.Context) {
	postID := c.Param("id")
	var comment models.Comment
	if err := c.ShouldBindJSON(&comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if comment.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment content is required"})
		return
	}
	comment.ID = uuid.NewString()
	comment.PostID = postID
	comment.Author = c.GetString("user_email")
	comment.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.comments[postID] = append(s.comments[postID], comment)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, comment)
}

func (s *Server) toggleLike(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.likes[postID] == nil {
		s.likes[postID] = make(map[string]bool)
	}
	if s.likes[postID][userID] {
		delete(s.likes[postID], userID)
	} else {
		s.likes[postID][userID] = true
	}
	c.JSON(http.StatusOK, gin.H{"like_count": len(s.likes[postID])})
}

func (s *Server) listStories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stories := make([]models.Story, len(s.stories))
	copy(stories, s.stories)
	c.JSON(http.StatusOK, stories)
}

func (s *Server) createStory(c *gin.Context) {
	var story models.Story
	if err := c.ShouldBindJSON(&story); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if story.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Story image is required"})
		return
	}
	story.ID = uuid.NewString()
	story.Author = c.GetString("user_email")
	story.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.stories = append([]models.Story{story}, s.stories...)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, story)
}

func (s *Server) resolveTag(c *gin.Context) {
	tag := c.Query("tag")
	s.mu.Lock()
	defer s.mu.Unlock()
	entity, exists := s.tags[normalizeTag(tag)]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown hashtag"})
		return
	}
	c.JSON(http.StatusOK, entity)
}

// Reviews

func (s *Server) submitServiceReview(c *gin.Context) {
	var req models.ServiceReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// One review per (booking, tour_service) pair
	for _, r := range s.reviews {
		if r.BookingID == req.BookingID && r.TourServiceID == req.TourServiceID {
			c.JSON(http.StatusConflict, gin.H{"error": "Service already reviewed for this booking"})
			return
		}
	}

	review := models.Review{
		ID:            uuid.NewString(),
		BookingID:     req.BookingID,
		TourServiceID: req.TourServiceID,
		Author:        c.GetString("user_email"),
		Rating:        req.Rating,
		ReviewText:    req.ReviewText,
		ReviewImages:  req.ReviewImages,
		CreatedAt:     time.Now().UTC(),
	}
	s.reviews[review.ID] = review
	c.JSON(http.StatusCreated, review)
}

func (s *Server) deleteReview(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reviews[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	delete(s.reviews, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) tourReviews(c *gin.Context) {
	tourID := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := make([]models.Review, 0)
	for _, r := range s.reviews {
		if r.TourID == tourID {
			reviews = append(reviews, r)
		}
	}
	c.JSON(http.StatusOK, reviews)
}

func (s *Server) partnerReviews(c *gin.Context) {
	partnerID := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	reviews := make([]models.Review, 0)
	for _, r := range s.reviews {
		if r.PartnerID == partnerID {
			reviews = append(reviews, r)
		}
	}
	c.JSON(http.StatusOK, reviews)
}

// SeedReview registers an existing review (for pending-service filtering)
func (s *Server) SeedReview(review models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	s.reviews[review.ID] = review
}

// SeedPost registers a post
func (s *Server) SeedPost(post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	s.posts = append(s.posts, post)
}
