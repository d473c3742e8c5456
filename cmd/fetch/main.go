package main

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "os"
    "strings"
    "time"

    "github.com/sirupsen/logrus"
    "github.com/spf13/cobra"

    "marketdata/internal/app"
    "marketdata/internal/config"
    "marketdata/internal/provider"
)

// backend is what the subcommands need from the market data service.
type backend interface {
    GetCurrentPrice(ctx context.Context, symbol string) (provider.Quote, bool)
    SearchSymbols(ctx context.Context, query string) []provider.SearchResult
    GetTrendingAssets(ctx context.Context) []provider.TrendingEntry
    CatalogSize(ctx context.Context) (int, error)
}

type openFunc func(ctx context.Context, configPath string) (backend, func() error, error)

func openApp(ctx context.Context, configPath string) (backend, func() error, error) {
    cfg, err := config.Load(configPath)
    if err != nil {
        return nil, nil, err
    }
    app.SetupLogging(cfg.Log)
    a, err := app.New(ctx, cfg)
    if err != nil {
        return nil, nil, err
    }
    return a.Service, a.Close, nil
}

func main() {
    if err := newRootCmd(openApp).Execute(); err != nil {
        os.Exit(1)
    }
}

func newRootCmd(open openFunc) *cobra.Command {
    var (
        configPath string
        timeout    time.Duration
        svc        backend
        closer     func() error
    )

    root := &cobra.Command{
        Use:           "fetch",
        Short:         "Query crypto and equity market data once and print JSON",
        SilenceUsage:  true,
        SilenceErrors: false,
        PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
            var err error
            svc, closer, err = open(cmd.Context(), configPath)
            if err != nil {
                return fmt.Errorf("config: %w", err)
            }
            return nil
        },
        PersistentPostRunE: func(*cobra.Command, []string) error {
            if closer != nil {
                return closer()
            }
            return nil
        },
    }
    root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config file (yaml or json)")
    root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "overall deadline")

    withDeadline := func(cmd *cobra.Command) (context.Context, context.CancelFunc) {
        return context.WithTimeout(cmd.Context(), timeout)
    }

    root.AddCommand(&cobra.Command{
        Use:   "price SYMBOL [SYMBOL...]",
        Short: "Print the current quote for each symbol",
        Args:  cobra.MinimumNArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            ctx, cancel := withDeadline(cmd)
            defer cancel()
            quotes := make([]provider.Quote, 0, len(args))
            var missing []string
            for _, s := range args {
                q, ok := svc.GetCurrentPrice(ctx, s)
                if !ok {
                    missing = append(missing, provider.CanonicalSymbol(s))
                    continue
                }
                quotes = append(quotes, q)
            }
            if len(missing) > 0 {
                logrus.WithField("symbols", strings.Join(missing, ",")).Warn("no price data")
            }
            if err := printJSON(cmd.OutOrStdout(), struct {
                Quotes  []provider.Quote `json:"quotes"`
                Missing []string         `json:"missing,omitempty"`
            }{quotes, missing}); err != nil {
                return err
            }
            if len(quotes) == 0 {
                return errors.New("no prices found")
            }
            return nil
        },
    })

    root.AddCommand(&cobra.Command{
        Use:   "search QUERY",
        Short: "Search crypto and equity symbols",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            q := strings.TrimSpace(args[0])
            if len([]rune(q)) < 2 {
                return errors.New("query must be at least 2 characters")
            }
            ctx, cancel := withDeadline(cmd)
            defer cancel()
            return printJSON(cmd.OutOrStdout(), struct {
                Results []provider.SearchResult `json:"results"`
            }{svc.SearchSymbols(ctx, q)})
        },
    })

    root.AddCommand(&cobra.Command{
        Use:   "trending",
        Short: "Print trending crypto followed by the equity watchlist",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, _ []string) error {
            ctx, cancel := withDeadline(cmd)
            defer cancel()
            return printJSON(cmd.OutOrStdout(), struct {
                Assets []provider.TrendingEntry `json:"assets"`
            }{svc.GetTrendingAssets(ctx)})
        },
    })

    root.AddCommand(&cobra.Command{
        Use:   "catalog",
        Short: "Load the crypto symbol catalog and print its size",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, _ []string) error {
            ctx, cancel := withDeadline(cmd)
            defer cancel()
            n, err := svc.CatalogSize(ctx)
            if err != nil {
                return fmt.Errorf("catalog: %w", err)
            }
            return printJSON(cmd.OutOrStdout(), map[string]int{"coins": n})
        },
    })

    return root
}

func printJSON(w io.Writer, v any) error {
    enc := json.NewEncoder(w)
    enc.SetIndent("", "  ")
    enc.SetEscapeHTML(false)
    return enc.Encode(v)
}
