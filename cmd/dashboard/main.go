package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"stockchat/internal/dashboard"
	"stockchat/internal/logger"
	"stockchat/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	ticker := flag.String("ticker", "AAPL", "stock ticker")
	startStr := flag.String("start", "2023-01-01", "start date (YYYY-MM-DD)")
	endStr := flag.String("end", "2023-10-01", "end date (YYYY-MM-DD)")
	predictStr := flag.String("predict", "", "future date to predict the close for (YYYY-MM-DD, optional)")
	serve := flag.Bool("serve", false, "serve the dashboard as a JSON API instead of printing a report")
	flag.Parse()

	if err := initializeSystem(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer trace.Shutdown(context.Background())

	cfg, secrets, err := loadConfig(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	svc, cache := initializeService(ctx, cfg, secrets)

	if *serve {
		sched, err := initializeMaintenance(ctx, cfg, cache)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to schedule maintenance", err)
			os.Exit(1)
		}
		sched.Start()
		defer sched.Stop()

		if err := runServer(ctx, cfg.Dashboard.Addr, svc); err != nil {
			logger.ErrorWithErr(ctx, "Dashboard server failed", err)
			os.Exit(1)
		}
		return
	}

	start, err := dashboard.ParseDate(*startStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	end, err := dashboard.ParseDate(*endStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report := dashboard.Report{Ticker: *ticker}
	bars, err := svc.Series(ctx, *ticker, start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching data: %v\n", err)
	} else {
		report.Bars = bars
		if *predictStr != "" {
			future, err := dashboard.ParseDate(*predictStr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			p, err := dashboard.PredictFromBars(report.Ticker, bars, future)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Prediction failed: %v\n", err)
			} else {
				report.Prediction = &p
			}
		}
	}
	report.News, report.NewsErr = svc.News(ctx)

	if err := dashboard.Render(os.Stdout, report, dashboard.ChartOptions{
		Height: cfg.Dashboard.ChartHeight,
		Width:  cfg.Dashboard.ChartWidth,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		os.Exit(1)
	}
}

// runServer serves the JSON API until ctx is cancelled.
func runServer(ctx context.Context, addr string, svc *dashboard.Service) error {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              addr,
		Handler:           dashboard.NewRouter(dashboard.NewHandler(svc)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Dashboard API listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info(ctx, "Shutting down dashboard API")
		return srv.Shutdown(shutdownCtx)
	}
}
