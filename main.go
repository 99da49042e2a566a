package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trainbook/config"
	"trainbook/models"
	"trainbook/services/booking"
	"trainbook/services/tiket"
	"trainbook/services/traveloka"
	"trainbook/utils"

	"github.com/pkg/browser"
)

type cliOptions struct {
	origin        string
	destination   string
	departureDate string
	trainNames    []string
	minPrice      int64
	maxPrice      int64
	departTimes   []string
	onlyDirect    bool
	sortBy        string
	pickFirst     bool
	randomPick    bool
	provider      string
	noDelay       bool

	title       string
	fullName    string
	email       string
	phoneNumber string
	nationalID  string
}

func main() {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "trainbook",
		Short:         "Search and auto-book a train ticket",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.origin, "origin", "o", "", "Origin station code")
	flags.StringVarP(&opts.destination, "destination", "d", "", "Destination station code")
	flags.StringVarP(&opts.departureDate, "departure-date", "t", "", "Departure date in YYYY-MM-DD format")
	flags.StringSliceVar(&opts.trainNames, "train-names", nil, "Train names to filter by")
	flags.Int64Var(&opts.minPrice, "min-price", 0, "Minimum price to filter by")
	flags.Int64Var(&opts.maxPrice, "max-price", 0, "Maximum price to filter by")
	flags.StringSliceVar(&opts.departTimes, "depart-times", nil, "Departure time buckets to filter by (morning|afternoon|evening|night)")
	flags.BoolVar(&opts.onlyDirect, "only-direct", false, "Only consider direct trains")
	flags.StringVar(&opts.sortBy, "sort-by", "", "Sort by (price|earliest_depart_time|latest_depart_time)")
	flags.BoolVar(&opts.pickFirst, "pick-first", false, "Only attempt the first matching train")
	flags.BoolVar(&opts.randomPick, "random-pick", false, "Only attempt one randomly chosen matching train")
	flags.StringVar(&opts.provider, "provider", "traveloka", "Provider (traveloka|tiket); tiket is search-only")
	flags.BoolVar(&opts.noDelay, "no-delay", false, "Disable pacing between remote calls")
	flags.StringVar(&opts.title, "title", "", "Passenger title (MR|MRS|MS)")
	flags.StringVar(&opts.fullName, "full-name", "", "Passenger full name")
	flags.StringVar(&opts.email, "email", "", "Passenger email")
	flags.StringVar(&opts.phoneNumber, "phone-number", "", "Passenger phone number")
	flags.StringVar(&opts.nationalID, "national-id", "", "Passenger national ID number")

	_ = rootCmd.MarkFlagRequired("origin")
	_ = rootCmd.MarkFlagRequired("destination")
	_ = rootCmd.MarkFlagRequired("departure-date")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts *cliOptions) error {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	criteria, err := buildCriteria(cmd, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.provider == "tiket" {
		return runSearchOnly(ctx, criteria)
	}

	passenger, err := collectPassenger(opts)
	if err != nil {
		return err
	}
	logger.Info("Passenger info",
		zap.String("title", passenger.Title),
		zap.String("fullName", passenger.FullName),
		zap.String("email", passenger.Email))

	cfg := config.AppConfig
	client := traveloka.NewClient(traveloka.ClientConfig{
		BaseURL:         cfg.TravelokaBaseURL,
		BaseAPIURL:      cfg.TravelokaBaseAPIURL,
		RoutePrefix:     cfg.TravelokaRoutePfx,
		UserAgent:       cfg.UserAgent,
		SecChUA:         cfg.SecChUA,
		SecChUAPlatform: cfg.SecChUAOS,
		AcceptLang:      cfg.AcceptLang,
		ServiceFee:      cfg.ServiceFee,
		Logger:          logger,
	})
	if err := client.InitSession(ctx); err != nil {
		logger.Warn("Session handshake failed, continuing with seed cookies", zap.Error(err))
	}

	candidateDelay := time.Duration(cfg.CandidateDelayMs) * time.Millisecond
	stepDelay := time.Duration(cfg.StepDelayMs) * time.Millisecond
	if opts.noDelay {
		candidateDelay, stepDelay = 0, 0
	}

	booker := &booking.DefaultAutoBooker{
		API:            client,
		CandidateDelay: booking.NewFixedDelay(candidateDelay),
		StepDelay:      booking.NewFixedDelay(stepDelay),
		Logger:         logger,
	}

	outcome := booker.BookTicket(ctx, passenger, criteria)
	if !outcome.Success {
		logger.Error("Booking run failed", zap.String("reason", outcome.Reason))
		return fmt.Errorf("booking failed: %s", outcome.Reason)
	}

	fmt.Println("Opening payment page for invoice", outcome.InvoiceID, "...")
	if err := browser.OpenURL(outcome.PaymentURL); err != nil {
		logger.Warn("Could not open browser", zap.Error(err))
	}
	fmt.Println("If the browser does not open, please open this link below")
	fmt.Println(outcome.PaymentURL)
	return nil
}

// runSearchOnly lists matching trains on the search-only provider.
func runSearchOnly(ctx context.Context, criteria models.SearchCriteria) error {
	cfg := config.AppConfig
	logger := utils.GetLogger()

	client := tiket.NewClient(tiket.ClientConfig{
		BaseURL:    cfg.TiketBaseURL,
		BaseAPIURL: cfg.TiketBaseAPIURL,
		UserAgent:  cfg.UserAgent,
		Logger:     logger,
	})
	if err := client.InitSession(ctx); err != nil {
		logger.Warn("Session handshake failed, continuing without session cookies", zap.Error(err))
	}

	candidates, err := client.Search(ctx, criteria.Origin, criteria.Destination, criteria.DepartureDate, 1, 0)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	trains := booking.ApplyCriteria(candidates, criteria, nil)
	fmt.Printf("Found %d matching trains\n", len(trains))
	for _, train := range trains {
		fmt.Println(train.Banner())
	}
	return nil
}

func buildCriteria(cmd *cobra.Command, opts *cliOptions) (models.SearchCriteria, error) {
	var criteria models.SearchCriteria

	if !utils.ValidateDepartureDate(opts.departureDate) {
		return criteria, fmt.Errorf("departure date must be a valid future date in YYYY-MM-DD format")
	}
	date, err := time.ParseInLocation("2006-01-02", opts.departureDate, time.Local)
	if err != nil {
		return criteria, fmt.Errorf("invalid departure date: %w", err)
	}

	criteria = models.SearchCriteria{
		Origin:        opts.origin,
		Destination:   opts.destination,
		DepartureDate: date,
		TrainNames:    opts.trainNames,
		OnlyDirect:    opts.onlyDirect,
		SortBy:        models.SortKey(opts.sortBy),
		Selection:     models.SelectionExhaustive,
	}

	if cmd.Flags().Changed("min-price") {
		minPrice := opts.minPrice
		criteria.MinPrice = &minPrice
	}
	if cmd.Flags().Changed("max-price") {
		maxPrice := opts.maxPrice
		criteria.MaxPrice = &maxPrice
	}
	if criteria.MinPrice != nil && criteria.MaxPrice != nil && *criteria.MinPrice > *criteria.MaxPrice {
		return criteria, fmt.Errorf("minimum price must be less than maximum price")
	}

	for _, dp := range opts.departTimes {
		criteria.DepartTimes = append(criteria.DepartTimes, models.DayPart(dp))
	}

	if opts.pickFirst {
		criteria.Selection = models.SelectionFirst
	}
	if opts.randomPick {
		criteria.Selection = models.SelectionRandom
	}

	if err := criteria.Validate(); err != nil {
		return criteria, err
	}
	return criteria, nil
}

// collectPassenger fills any passenger field not supplied by flags through
// interactive prompts, then validates the whole record.
func collectPassenger(opts *cliOptions) (models.Passenger, error) {
	var p models.Passenger

	title := opts.title
	if title == "" {
		var choice string
		prompt := &survey.Select{
			Message: "Title:",
			Options: []string{"Mr.", "Mrs.", "Ms."},
			Default: "Mr.",
		}
		if err := survey.AskOne(prompt, &choice); err != nil {
			return p, err
		}
		switch choice {
		case "Mrs.":
			title = "MRS"
		case "Ms.":
			title = "MS"
		default:
			title = "MR"
		}
	}

	fullName, err := promptIfEmpty(opts.fullName, "Full Name:", func(v string) error {
		if !utils.ValidateFullName(v) {
			return fmt.Errorf("full name must not be blank")
		}
		return nil
	})
	if err != nil {
		return p, err
	}

	email, err := promptIfEmpty(opts.email, "Email:", func(v string) error {
		if !utils.ValidateEmail(v) {
			return fmt.Errorf("invalid email address")
		}
		return nil
	})
	if err != nil {
		return p, err
	}

	phoneNumber, err := promptIfEmpty(opts.phoneNumber, "Phone Number:", func(v string) error {
		if !utils.ValidatePhoneNumber(v) {
			return fmt.Errorf("invalid phone number")
		}
		return nil
	})
	if err != nil {
		return p, err
	}

	nationalID, err := promptIfEmpty(opts.nationalID, "National ID Number:", func(v string) error {
		if !utils.ValidateNationalID(v) {
			return fmt.Errorf("national ID number must be 16 digits")
		}
		return nil
	})
	if err != nil {
		return p, err
	}

	phone, err := utils.ParsePhoneNumber(phoneNumber)
	if err != nil {
		return p, err
	}

	p = models.Passenger{
		Title:       title,
		FullName:    fullName,
		Email:       email,
		NationalID:  nationalID,
		PhoneNumber: phone,
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func promptIfEmpty(value, message string, validate func(string) error) (string, error) {
	if value != "" {
		if err := validate(value); err != nil {
			return "", err
		}
		return value, nil
	}

	var answer string
	prompt := &survey.Input{Message: message}
	err := survey.AskOne(prompt, &answer, survey.WithValidator(func(ans any) error {
		s, _ := ans.(string)
		return validate(s)
	}))
	return answer, err
}
