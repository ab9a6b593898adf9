// File: lawconnect/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lawconnect/api"
	"lawconnect/config"
	"lawconnect/gateway"
	"lawconnect/models"
	"lawconnect/services/account"
	"lawconnect/services/availability"
	bookingSvc "lawconnect/services/booking"
	"lawconnect/services/dashboard"
	"lawconnect/session"
	"lawconnect/utils"
)

type app struct {
	client       *api.Client
	session      *session.Session
	notifier     utils.Notifier
	logger       *zap.Logger
	account      *account.Service
	lifecycle    *bookingSvc.LifecycleService
	reviews      *bookingSvc.ReviewService
	availability *availability.Editor
	dashboard    *dashboard.Service
	gateway      gateway.PaymentGateway
}

func main() {
	_ = godotenv.Load()
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	sess := session.New(config.AppConfig.SessionFile)
	if err := sess.Hydrate(); err != nil {
		logger.Warn("could not restore session", zap.Error(err))
	}

	client := api.New(
		config.AppConfig.APIBaseURL,
		sess,
		time.Duration(config.AppConfig.APITimeoutSeconds)*time.Second,
		config.AppConfig.MaxRequestsPerMin,
	)
	notifier := utils.NewZapNotifier(logger)

	a := &app{
		client:       client,
		session:      sess,
		notifier:     notifier,
		logger:       logger,
		account:      account.NewService(client, sess, notifier),
		lifecycle:    bookingSvc.NewLifecycleService(client, notifier),
		reviews:      bookingSvc.NewReviewService(client, notifier),
		availability: availability.NewEditor(client, notifier),
		dashboard:    dashboard.NewService(client),
		gateway:      gateway.NewRazorpayGateway(config.AppConfig.RazorpayKeyID, config.AppConfig.CheckoutAddr, logger),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		logger.Sugar().Errorf("%s: %v", os.Args[1], err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.account.Logout()
	}

	// Every other command needs an authenticated session.
	if !a.session.Authenticated() {
		return fmt.Errorf("not signed in (or session expired); run: lawconnect login")
	}

	switch cmd {
	case "profile":
		user, err := a.account.Profile(ctx)
		if err != nil {
			return err
		}
		return printJSON(user)
	case "update-profile":
		return a.cmdUpdateProfile(ctx, args)
	case "change-password":
		return a.cmdChangePassword(ctx, args)
	case "lawyers":
		lawyers, err := a.client.Lawyers(ctx)
		if err != nil {
			return err
		}
		return printJSON(lawyers)
	case "lawyer":
		return a.cmdLawyer(ctx, args)
	case "slots":
		return a.cmdSlots(ctx, args)
	case "book":
		return a.cmdBook(ctx, args)
	case "orders":
		return a.cmdOrders(ctx, args)
	case "consultations":
		return a.cmdConsultations(ctx, args)
	case "cancel":
		return a.cmdTransition(ctx, args, a.lifecycle.Cancel)
	case "complete":
		return a.cmdTransition(ctx, args, a.lifecycle.Complete)
	case "review":
		return a.cmdReview(ctx, args)
	case "availability":
		return a.cmdAvailability(ctx, args)
	case "dashboard":
		return a.cmdDashboard(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	userType := fs.String("type", models.RoleUser, "account type: user or lawyer")
	fs.Parse(args)

	user, err := a.account.Login(ctx, *email, *password, *userType)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", user.Name, user.UserType)
	return nil
}

func (a *app) cmdUpdateProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-profile", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	phone := fs.String("phone", "", "phone number")
	fs.Parse(args)

	user, err := a.account.UpdateProfile(ctx, models.ProfileUpdate{Name: *name, Phone: *phone})
	if err != nil {
		return err
	}
	return printJSON(user)
}

func (a *app) cmdChangePassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("change-password", flag.ExitOnError)
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	confirm := fs.String("confirm", "", "new password again")
	fs.Parse(args)

	return a.account.ChangePassword(ctx, *current, *next, *confirm)
}

func (a *app) cmdLawyer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("lawyer", flag.ExitOnError)
	id := fs.String("id", "", "lawyer id")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("missing -id")
	}

	lawyer, err := a.client.LawyerDetails(ctx, *id)
	if err != nil {
		return err
	}
	reviews, err := a.client.LawyerReviews(ctx, *id)
	if err != nil {
		a.logger.Warn("reviews fetch failed", zap.Error(err))
	}
	return printJSON(map[string]any{"lawyer": lawyer, "reviews": reviews})
}

func (a *app) cmdSlots(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("slots", flag.ExitOnError)
	lawyerID := fs.String("lawyer", "", "lawyer id")
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	fs.Parse(args)
	if *lawyerID == "" || *date == "" {
		return fmt.Errorf("missing -lawyer or -date")
	}

	slots, err := a.availability.DaySlots(ctx, *lawyerID, *date)
	if err != nil {
		return err
	}
	return printJSON(models.SlotCheckResult{Date: *date, AvailableSlots: slots})
}

func (a *app) cmdBook(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	lawyerID := fs.String("lawyer", "", "lawyer id")
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	slot := fs.String("slot", "", "time slot (HH:MM-HH:MM)")
	mode := fs.String("mode", "", "consultation mode")
	details := fs.String("details", "", "case details")
	fs.Parse(args)
	if *lawyerID == "" {
		return fmt.Errorf("missing -lawyer")
	}

	lawyer, err := a.client.LawyerDetails(ctx, *lawyerID)
	if err != nil {
		return err
	}

	flow := bookingSvc.NewFlow(a.client, a.gateway, a.notifier, *lawyer, a.session.User())
	if *mode != "" {
		if err := flow.SelectMode(*mode); err != nil {
			return err
		}
	}
	if *date != "" {
		slots, err := flow.SelectDate(ctx, *date)
		if err != nil {
			return err
		}
		if len(slots) == 0 {
			return fmt.Errorf("no slots available on %s", *date)
		}
	}
	if *slot != "" {
		if err := flow.SelectSlot(*slot); err != nil {
			return err
		}
	}
	if !flow.CanProceed() {
		return fmt.Errorf("select a mode, date and slot before booking")
	}

	booked, err := flow.Book(ctx, *details)
	if err != nil {
		return err
	}
	return printJSON(booked)
}

func (a *app) cmdOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	query := fs.String("q", "", "free-text filter (lawyer name or booking id)")
	bucket := fs.String("bucket", bookingSvc.BucketAll, "status bucket: all|upcoming|completed|cancelled")
	fs.Parse(args)

	result, err := a.lifecycle.Orders(ctx, a.session.User().ID, *page, *limit)
	if err != nil {
		return err
	}
	result.Bookings = bookingSvc.Filter{Query: *query, Bucket: *bucket}.Apply(result.Bookings)
	return printJSON(result)
}

func (a *app) cmdConsultations(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("consultations", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 10, "page size")
	query := fs.String("q", "", "free-text filter")
	bucket := fs.String("bucket", bookingSvc.BucketAll, "status bucket")
	fs.Parse(args)

	result, err := a.lifecycle.Consultations(ctx, a.session.User().ID, *page, *limit)
	if err != nil {
		return err
	}
	result.Bookings = bookingSvc.Filter{Query: *query, Bucket: *bucket}.Apply(result.Bookings)
	return printJSON(result)
}

func (a *app) cmdTransition(ctx context.Context, args []string, transition func(context.Context, *models.Booking) error) error {
	fs := flag.NewFlagSet("transition", flag.ExitOnError)
	id := fs.String("id", "", "booking id")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("missing -id")
	}

	booked, err := a.client.GetBooking(ctx, *id)
	if err != nil {
		return err
	}
	if err := transition(ctx, booked); err != nil {
		return err
	}
	return printJSON(booked)
}

func (a *app) cmdReview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	rating := fs.Int("rating", 0, "rating 1-5")
	comment := fs.String("comment", "", "review comment")
	fs.Parse(args)
	if *bookingID == "" {
		return fmt.Errorf("missing -booking")
	}

	booked, err := a.client.GetBooking(ctx, *bookingID)
	if err != nil {
		return err
	}
	review, err := a.reviews.Submit(ctx, *booked, *rating, *comment)
	if err != nil {
		return err
	}
	return printJSON(review)
}

func (a *app) cmdAvailability(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("availability", flag.ExitOnError)
	day := fs.String("day", "", "day of week to set (e.g. monday)")
	slots := fs.String("slots", "", "comma-separated HH:MM-HH:MM slots")
	fs.Parse(args)

	if *day == "" {
		weekly, err := a.availability.Weekly(ctx, a.session.User().ID)
		if err != nil {
			return err
		}
		return printJSON(weekly)
	}

	var timeSlots []string
	if *slots != "" {
		for _, s := range strings.Split(*slots, ",") {
			timeSlots = append(timeSlots, strings.TrimSpace(s))
		}
	}
	return a.availability.Save(ctx, models.DayAvailability{Day: *day, TimeSlots: timeSlots})
}

func (a *app) cmdDashboard(ctx context.Context) error {
	user := a.session.User()
	if user.UserType == models.RoleLawyer {
		return printJSON(a.dashboard.LoadLawyer(ctx, user.ID))
	}
	return printJSON(a.dashboard.LoadUser(ctx, user.ID))
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: lawconnect <command> [flags]

Commands:
  login             sign in (-email, -password, -type)
  logout            clear the stored session
  profile           show the signed-in profile
  update-profile    update profile fields (-name, -phone)
  change-password   change the account password (-current, -new, -confirm)
  lawyers           list lawyers
  lawyer            show one lawyer with reviews (-id)
  slots             show bookable slots (-lawyer, -date)
  book              book a consultation (-lawyer, -date, -slot, -mode, -details)
  orders            list your bookings (-page, -limit, -q, -bucket)
  consultations     list consultations booked with you (-page, -limit, -q, -bucket)
  cancel            cancel a confirmed booking (-id)
  complete          mark a consultation complete (-id)
  review            review a completed consultation (-booking, -rating, -comment)
  availability      show or set weekly slots (-day, -slots)
  dashboard         load the role dashboard`)
}
