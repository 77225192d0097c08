package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/voyara/voyara-client/internal/api"
	"github.com/voyara/voyara-client/internal/composer"
	"github.com/voyara/voyara-client/internal/config"
	"github.com/voyara/voyara-client/internal/estimator"
	"github.com/voyara/voyara-client/internal/models"
	"github.com/voyara/voyara-client/internal/promotions"
	"github.com/voyara/voyara-client/internal/schedules"
	"github.com/voyara/voyara-client/internal/session"
	"github.com/voyara/voyara-client/internal/social"
	"github.com/voyara/voyara-client/internal/tours"
)

const usage = `Usage: tourctl <command> [flags]

Commands:
  login        store the session identity and bearer token
  logout       clear the stored session
  schedules    list a tour's departure schedules and available actions
  schedule     run a schedule action (start, complete, cancel)
  price        request a server price quote for a tour draft JSON file
  estimate     compute the local booking estimate
  feed         list social feed posts
  promotions   list admin promotions
  homepage     show homepage banners and promo codes
`

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{})
	logger.SetLevel(logrus.WarnLevel)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := session.NewStore(cfg.Session.FilePath)
	if err != nil {
		logger.Fatalf("Failed to open session store: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout+10*time.Second)
	defer cancel()

	apiCfg := api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
	}
	var creds api.Credentials
	if cfg.API.AuthMode == "headers" {
		creds = api.IdentityHeaderCredentials{Source: store}
	} else {
		creds = api.BearerCredentials{Source: store}
	}
	client := api.New(apiCfg, creds, logger)

	var runErr error
	switch os.Args[1] {
	case "login":
		runErr = runLogin(store, os.Args[2:])
	case "logout":
		runErr = store.Clear()
	case "schedules":
		runErr = runSchedules(ctx, client, os.Args[2:])
	case "schedule":
		runErr = runScheduleAction(ctx, client, os.Args[2:])
	case "price":
		runErr = runPrice(ctx, client, logger, os.Args[2:])
	case "estimate":
		runErr = runEstimate(os.Args[2:])
	case "feed":
		runErr = runFeed(ctx, client)
	case "promotions":
		runErr = runPromotions(ctx, client)
	case "homepage":
		runErr = runHomepage(ctx, client)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", api.UserMessage(runErr))
		logger.Debugf("command failed: %v", runErr)
		os.Exit(1)
	}
}

func runLogin(store *session.Store, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	id := fs.String("id", "", "user id")
	email := fs.String("email", "", "user email")
	role := fs.String("role", "customer", "user role")
	token := fs.String("token", "", "bearer token")
	_ = fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("email is required")
	}
	return store.SetIdentity(models.User{ID: *id, Email: *email, Role: *role}, *token)
}

func runSchedules(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("schedules", flag.ExitOnError)
	tourID := fs.String("tour", "", "tour id")
	_ = fs.Parse(args)
	if *tourID == "" {
		return fmt.Errorf("tour id is required")
	}

	list, err := schedules.NewClient(client).ListForTour(ctx, *tourID)
	if err != nil {
		return err
	}
	for _, s := range list {
		fmt.Printf("%s  %s  %s  booked %d/%d  actions: %v\n",
			s.ID, s.DepartureDatetime.Format("2006-01-02 15:04"), s.Status,
			s.SlotsBooked, s.MaxSlots, schedules.AvailableActions(s))
	}
	return nil
}

func runScheduleAction(ctx context.Context, client *api.Client, args []string) error {
	fs := flag.NewFlagSet("schedule", flag.ExitOnError)
	tourID := fs.String("tour", "", "tour id")
	scheduleID := fs.String("schedule", "", "schedule id")
	action := fs.String("action", "", "start, complete or cancel")
	_ = fs.Parse(args)
	if *tourID == "" || *scheduleID == "" {
		return fmt.Errorf("tour and schedule ids are required")
	}

	scheduleClient := schedules.NewClient(client)
	var resp models.ScheduleActionResponse
	var refreshed []models.Schedule
	var err error
	switch *action {
	case "start":
		resp, refreshed, err = scheduleClient.Start(ctx, *tourID, *scheduleID)
	case "complete":
		resp, refreshed, err = scheduleClient.Complete(ctx, *tourID, *scheduleID)
	case "cancel":
		resp, refreshed, err = scheduleClient.Cancel(ctx, *tourID, *scheduleID)
	default:
		return fmt.Errorf("unknown action: %s", *action)
	}
	if err != nil {
		return err
	}

	fmt.Printf("OK: %s\n", *action)
	if resp.TotalRevenueDistributed > 0 {
		fmt.Printf("Revenue distributed: %.2f\n", resp.TotalRevenueDistributed)
	}
	if resp.CancelledBookingsCount > 0 {
		fmt.Printf("Bookings cancelled: %d\n", resp.CancelledBookingsCount)
	}
	for _, s := range refreshed {
		fmt.Printf("%s  %s\n", s.ID, s.Status)
	}
	return nil
}

func runPrice(ctx context.Context, client *api.Client, logger *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("price", flag.ExitOnError)
	draftPath := fs.String("draft", "", "path to a tour draft JSON file")
	_ = fs.Parse(args)
	if *draftPath == "" {
		return fmt.Errorf("draft file is required")
	}

	data, err := os.ReadFile(*draftPath)
	if err != nil {
		return fmt.Errorf("failed to read draft: %w", err)
	}
	var draft models.Tour
	if err := json.Unmarshal(data, &draft); err != nil {
		return fmt.Errorf("failed to parse draft: %w", err)
	}

	comp := composer.New(tours.NewClient(client), logger)
	comp.Load(draft)

	quote, err := comp.RefreshQuote(ctx)
	if err != nil {
		return err
	}
	if !comp.ShouldRequestQuote() {
		fmt.Println("No priceable selections; total 0.00")
		return nil
	}
	fmt.Printf("Total: %.2f\n", quote.TotalPrice)
	for _, item := range quote.Breakdown {
		fmt.Printf("  %-40s %10.2f\n", item.Label, item.Amount)
	}
	return nil
}

func runEstimate(args []string) error {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	base := fs.Float64("base", 0, "base price per guest")
	guests := fs.Int("guests", 1, "guest count")
	rooms := fs.Int("rooms", 0, "room count")
	start := fs.String("start", "", "start date YYYY-MM-DD")
	end := fs.String("end", "", "end date YYYY-MM-DD")
	_ = fs.Parse(args)

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", *end)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}

	total := estimator.Total(estimator.Selection{
		BasePrice: *base,
		Guests:    *guests,
		Rooms:     *rooms,
		StartDate: startDate,
		EndDate:   endDate,
	})
	fmt.Printf("Estimated total: %.2f (%d days)\n", total, estimator.Days(startDate, endDate))
	return nil
}

func runFeed(ctx context.Context, client *api.Client) error {
	posts, err := social.NewClient(client).ListPosts(ctx)
	if err != nil {
		return err
	}
	for _, p := range posts {
		fmt.Printf("[%s] %s: %s (%d likes, %d comments)\n",
			p.CreatedAt.Format("2006-01-02"), p.Author, p.Content, p.LikeCount, p.CommentCount)
	}
	return nil
}

func runPromotions(ctx context.Context, client *api.Client) error {
	list, err := promotions.NewClient(client).List(ctx)
	if err != nil {
		return err
	}
	for _, p := range list {
		fmt.Printf("%s  %s  %v %.2f  active=%t\n", p.ID, p.Code, p.DiscountType, p.DiscountValue, p.IsActive)
	}
	return nil
}

func runHomepage(ctx context.Context, client *api.Client) error {
	// Homepage promotions are public; no stored identity is needed.
	public := client.WithCredentials(api.AnonymousCredentials{})
	homepage, err := promotions.NewClient(public).Homepage(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Banners:")
	for _, b := range homepage.Banners {
		fmt.Printf("  %s: %s\n", b.Title, b.Subtitle)
	}
	fmt.Println("Promo codes:")
	for _, p := range homepage.PromoCodes {
		fmt.Printf("  %s (%s)\n", p.Code, p.Title)
	}
	return nil
}
