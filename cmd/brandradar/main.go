// BrandRadar: Finnish food-brand news and comparison dashboard.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nao1215/markdown"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seenimoa/brandradar/api"
	"github.com/seenimoa/brandradar/internal/config"
	"github.com/seenimoa/brandradar/internal/dashboard"
	"github.com/seenimoa/brandradar/internal/logging"
	"github.com/seenimoa/brandradar/internal/sentiment"
	"github.com/seenimoa/brandradar/internal/session"
	"github.com/seenimoa/brandradar/internal/trend"
	"github.com/seenimoa/brandradar/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger
var (
	cfg *config.Config
	log *logrus.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brandradar",
	Short: "BrandRadar: brand news and comparison dashboard",
	Long: `BrandRadar
Searches recent news about Finnish food brands, classifies each article's
sentiment and compares brands over 3, 6 or 12 month windows.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		log = logging.New(cfg.Logging)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "BrandRadar %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.API.Addr()
		}
		srv, err := api.NewServer(cfg, api.Options{Logger: log, Version: version})
		if err != nil {
			return err
		}
		return srv.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: api.host:api.port)")
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news [brand]",
	Short: "Search recent news for a brand and print it as Markdown",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireKeys(); err != nil {
			return err
		}
		query := cfg.Dashboard.DefaultQuery
		if len(args) == 1 {
			query = args[0]
		}
		if strings.TrimSpace(query) == "" {
			return errors.New("no brand given and dashboard.default_query is empty")
		}

		d, err := dashboard.New(cfg, dashboard.Options{Logger: log})
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		return writeNews(cmd.OutOrStdout(), d.News(ctx, query))
	},
}

func writeNews(w io.Writer, v *dashboard.NewsView) error {
	md := markdown.NewMarkdown(w)
	md.H1(v.Heading)
	md.PlainText("")
	md.PlainTextf("%s: %s (%s)", dashboard.MenuNews, v.Window.String(), v.Provider)
	md.PlainText("")

	switch {
	case v.Error != "":
		md.Warningf("%s", v.Error)
		md.PlainText("")
	case v.Info != "":
		md.Note(v.Info)
		md.PlainText("")
	}

	for _, a := range v.Articles {
		md.PlainText(markdown.Bold(a.Title))
		md.PlainText("")
		if a.Description != "" {
			md.PlainText(markdown.Italic(a.Description))
			md.PlainText("")
		}
		md.PlainTextf("%s (%.2f)", a.Label, a.Polarity)
		md.PlainText("")
		md.PlainText(markdown.Link(dashboard.NewsReadMore, a.URL))
		md.PlainText("")
		md.HorizontalRule()
	}

	if len(v.Trend) > 0 {
		md.H2(dashboard.NewsTrendTitle)
		md.PlainText("")
		rows := make([][]string, len(v.Trend))
		for i, p := range v.Trend {
			rows[i] = []string{utils.FormatDate(p.Date), fmt.Sprint(p.Value)}
		}
		md.Table(markdown.TableSet{Header: []string{"Viikko", "Arvo"}, Rows: rows})
		md.PlainText("")
	}
	return md.Build()
}

// --- Compare Command ---

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Print the brand comparison tables as Markdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		rawWindow, _ := cmd.Flags().GetString("window")
		brands, _ := cmd.Flags().GetStringSlice("brands")

		w, err := session.ParseWindow(rawWindow)
		if err != nil {
			return fmt.Errorf("--window %q: %w", rawWindow, err)
		}

		// Without keys the article source cannot search, so fall back.
		opts := dashboard.Options{Logger: log}
		if cfg.RequireKeys() != nil {
			opts.Source = trend.NewSyntheticSource(trend.NewGenerator(cfg.Dashboard.Seed))
		}
		d, err := dashboard.New(cfg, opts)
		if err != nil {
			return err
		}

		mgr := session.NewManager(session.NewMemoryStore(0), cfg.Session.CookieName, 0, w)
		sess := mgr.Get(uuid.NewString())
		if err := sess.SetWindow(w); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		return writeComparison(cmd.OutOrStdout(), d.Comparison(ctx, sess, d.SelectBrands(brands, cmd.Flags().Changed("brands"))))
	},
}

func init() {
	compareCmd.Flags().String("window", session.DefaultWindow.Key(), "comparison window: 90|180|365 or 3m|6m|12m")
	compareCmd.Flags().StringSlice("brands", nil, "comma-separated brands (default: dashboard.default_brands)")
}

func writeComparison(w io.Writer, v *dashboard.ComparisonView) error {
	md := markdown.NewMarkdown(w)
	md.H1(dashboard.ComparisonTitle)
	md.PlainText("")
	md.PlainText(v.Caption)
	md.PlainText("")

	if v.Error != "" {
		md.Warningf("%s", v.Error)
		md.PlainText("")
		return md.Build()
	}
	if v.Data == nil {
		md.Note(dashboard.ComparisonSelect)
		md.PlainText("")
		return md.Build()
	}
	if v.Data.Simulated {
		md.Note(dashboard.SimulatedNote)
		md.PlainText("")
	}

	md.H2(dashboard.PanelCounts)
	md.PlainText("")
	rows := make([][]string, len(v.Data.Counts))
	for i, c := range v.Data.Counts {
		rows[i] = []string{c.Brand, fmt.Sprint(c.Value)}
	}
	md.Table(markdown.TableSet{Header: []string{"Brändi", "Artikkelit"}, Rows: rows})
	md.PlainText("")

	md.H2(dashboard.PanelTrends)
	md.PlainText("")
	header := []string{"Viikko"}
	for _, s := range v.Data.Trends {
		header = append(header, s.Brand)
	}
	rows = make([][]string, len(v.Data.Dates))
	for i, d := range v.Data.Dates {
		row := []string{utils.FormatDate(d)}
		for _, s := range v.Data.Trends {
			if i < len(s.Values) {
				row = append(row, fmt.Sprint(s.Values[i]))
			} else {
				row = append(row, "")
			}
		}
		rows[i] = row
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")

	md.H2(dashboard.PanelSentiment)
	md.PlainText("")
	rows = make([][]string, len(v.Data.Sentiment))
	for i, m := range v.Data.Sentiment {
		c := m.Counts()
		rows[i] = []string{m.Brand, fmt.Sprint(c[0]), fmt.Sprint(c[1]), fmt.Sprint(c[2])}
	}
	md.Table(markdown.TableSet{Header: sentimentHeader(), Rows: rows})
	md.PlainText("")
	return md.Build()
}

func sentimentHeader() []string {
	header := []string{"Brändi"}
	for _, c := range sentiment.Categories {
		header = append(header, c.Short())
	}
	return header
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and API key status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintln(out, "  BrandRadar: System Status")
		fmt.Fprintln(out, "═══════════════════════════════════════")
		fmt.Fprintf(out, "  Version:       %s (%s)\n", version, commit)
		fmt.Fprintf(out, "  Time (EET):    %s\n", utils.NowHelsinki().Format("2006-01-02 15:04:05"))
		fmt.Fprintln(out)

		fmt.Fprintln(out, "  Configuration:")
		fmt.Fprintf(out, "    News Provider: %s (%s, last %d days)\n", cfg.News.Provider, cfg.News.Language, dashboard.NewsWindowDays)
		fmt.Fprintf(out, "    Trend Source:  %s\n", cfg.Dashboard.TrendSource)
		fmt.Fprintf(out, "    Brands:        %s\n", strings.Join(cfg.Dashboard.Brands, ", "))
		fmt.Fprintf(out, "    Server:        %s\n", cfg.API.Addr())
		fmt.Fprintln(out)

		fmt.Fprintln(out, "  API Keys:")
		for _, k := range config.CheckAPIKeys(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Fprintf(out, "    %-25s %s\n", k.Name+":", status)
		}

		fmt.Fprintln(out, "═══════════════════════════════════════")
		return nil
	},
}
