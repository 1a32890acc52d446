package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/zoto/internal/config"
	"github.com/kailas-cloud/zoto/internal/domain/preference"
	"github.com/kailas-cloud/zoto/internal/domain/search/phase"
	logpkg "github.com/kailas-cloud/zoto/internal/logger"
	"github.com/kailas-cloud/zoto/internal/metrics"
	"github.com/kailas-cloud/zoto/internal/output"
	searchuc "github.com/kailas-cloud/zoto/internal/usecase/search"
	sessionuc "github.com/kailas-cloud/zoto/internal/usecase/session"
)

type searchOptions struct {
	mood     string
	tastes   []string
	cuisines []string
	dietary  []string
	meal     string
	budget   string
	craving  string
	lat      float64
	lng      float64
	endpoint string
	apiKey   string
	format   string
	quiet    bool
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one recommendation search",
		Long: `Run one recommendation search with the given preferences.

At least one --cuisine is required. Phase progress goes to stderr, results to stdout.
Exits with status 1 when the search fails.`,
		Example: `  zoto search --cuisine italian --cuisine indian --mood happy --budget low
  zoto search --cuisine thai --craving "green curry" --lat 12.97 --lng 77.59 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.mood, "mood", "", "mood (see `zoto catalog`)")
	f.StringSliceVar(&opts.tastes, "taste", nil, "taste, repeatable")
	f.StringSliceVar(&opts.cuisines, "cuisine", nil, "cuisine, repeatable (at least one)")
	f.StringSliceVar(&opts.dietary, "diet", nil, "dietary restriction, repeatable")
	f.StringVar(&opts.meal, "meal", "", "meal type")
	f.StringVar(&opts.budget, "budget", "", "budget: low, medium or high (default medium)")
	f.StringVar(&opts.craving, "craving", "", "free-text food preference")
	f.Float64Var(&opts.lat, "lat", 0, "latitude; with --lng skips location lookup")
	f.Float64Var(&opts.lng, "lng", 0, "longitude; with --lat skips location lookup")
	f.StringVar(&opts.endpoint, "endpoint", "", "recommendation service URL (overrides config)")
	f.StringVar(&opts.apiKey, "api-key", "", "recommendation service bearer token (overrides config)")
	f.StringVarP(&opts.format, "format", "f", "table", "output format: table or json")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print phase progress")
	cmd.MarkFlagsRequiredTogether("lat", "lng")

	return cmd
}

func runSearch(cmd *cobra.Command, root *rootOptions, opts *searchOptions) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if err := applySearchOverrides(cmd, &cfg, opts); err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := logpkg.FromContext(ctx)
	metrics.RegisterSearchMetrics()

	p, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer p.Close()

	registry := sessionuc.NewRegistry(p.locator, p.recommender, sessionuc.Config{
		LocationTimeout: cfg.Location.Timeout(),
		Logger:          logger,
	})
	sess := registry.Create()
	defer func() { _ = registry.Delete(sess.ID) }()

	if err := applySelection(sess, opts); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if !opts.quiet {
		sess.OnTransition(progressPrinter(stderr))
	}

	state, _ := sess.Search(ctx)
	logger.Debug("Search finished",
		zap.String("phase", string(state.Phase)),
		zap.Int("restaurants", len(state.Restaurants)),
	)

	if state.Phase != phase.Success {
		msg := "search did not complete"
		if state.Err != nil {
			msg = state.Err.Message
			if msg == "" {
				msg = state.Err.Error()
			}
		}
		_, _ = fmt.Fprintln(stderr, "Search failed:", msg)
		return &ExitError{Code: 1}
	}

	return output.WriteRestaurants(cmd.OutOrStdout(), format, state.Restaurants)
}

func applySearchOverrides(cmd *cobra.Command, cfg *config.Config, opts *searchOptions) error {
	if opts.endpoint != "" {
		cfg.Recommend.Endpoint = opts.endpoint
	}
	if opts.apiKey != "" {
		cfg.Recommend.APIKey = opts.apiKey
	}
	if cmd.Flags().Changed("lat") {
		cfg.Location.Provider = config.LocationStatic
		cfg.Location.Latitude = opts.lat
		cfg.Location.Longitude = opts.lng
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func applySelection(sess *sessionuc.Session, opts *searchOptions) error {
	sets := []struct {
		field  preference.SetField
		values []string
	}{
		{preference.FieldTastes, opts.tastes},
		{preference.FieldCuisines, opts.cuisines},
		{preference.FieldDietary, opts.dietary},
	}
	for _, s := range sets {
		seen := make(map[string]struct{}, len(s.values))
		for _, v := range s.values {
			v = strings.ToLower(strings.TrimSpace(v))
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			if err := sess.Toggle(string(s.field), v); err != nil {
				return err
			}
		}
	}

	singles := []struct {
		field preference.SingleField
		value string
	}{
		{preference.FieldMood, opts.mood},
		{preference.FieldMealType, opts.meal},
		{preference.FieldBudget, opts.budget},
	}
	for _, s := range singles {
		if err := sess.Select(string(s.field), strings.ToLower(strings.TrimSpace(s.value))); err != nil {
			return err
		}
	}

	sess.SetCraving(strings.TrimSpace(opts.craving))
	return nil
}

func progressPrinter(w io.Writer) searchuc.Listener {
	return func(s searchuc.State) {
		switch s.Phase {
		case phase.Validating:
			_, _ = fmt.Fprintln(w, "Checking preferences...")
		case phase.Locating:
			_, _ = fmt.Fprintln(w, "Finding your location...")
		case phase.Requesting:
			_, _ = fmt.Fprintln(w, "Asking for recommendations...")
		case phase.Success:
			_, _ = fmt.Fprintf(w, "Found %d restaurants.\n", len(s.Restaurants))
		}
	}
}
