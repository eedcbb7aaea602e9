package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/budgetease/internal/analytics"
	analyticsStore "github.com/MrJamesThe3rd/budgetease/internal/analytics/store"
	"github.com/MrJamesThe3rd/budgetease/internal/auth"
	"github.com/MrJamesThe3rd/budgetease/internal/config"
	"github.com/MrJamesThe3rd/budgetease/internal/contact"
	contactStore "github.com/MrJamesThe3rd/budgetease/internal/contact/store"
	"github.com/MrJamesThe3rd/budgetease/internal/database"
	"github.com/MrJamesThe3rd/budgetease/internal/export"
	budgetHttp "github.com/MrJamesThe3rd/budgetease/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/budgetease/internal/http/analytics"
	authHandler "github.com/MrJamesThe3rd/budgetease/internal/http/auth"
	contactHandler "github.com/MrJamesThe3rd/budgetease/internal/http/contact"
	exportHandler "github.com/MrJamesThe3rd/budgetease/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/budgetease/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/budgetease/internal/http/matching"
	profileHandler "github.com/MrJamesThe3rd/budgetease/internal/http/profile"
	recordHandler "github.com/MrJamesThe3rd/budgetease/internal/http/record"
	"github.com/MrJamesThe3rd/budgetease/internal/http/session"
	txHandler "github.com/MrJamesThe3rd/budgetease/internal/http/transaction"
	"github.com/MrJamesThe3rd/budgetease/internal/importer"
	"github.com/MrJamesThe3rd/budgetease/internal/mail"
	"github.com/MrJamesThe3rd/budgetease/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/budgetease/internal/matching/store"
	"github.com/MrJamesThe3rd/budgetease/internal/record"
	recordStore "github.com/MrJamesThe3rd/budgetease/internal/record/store"
	"github.com/MrJamesThe3rd/budgetease/internal/transaction"
	"github.com/MrJamesThe3rd/budgetease/internal/user"
	userStore "github.com/MrJamesThe3rd/budgetease/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.Level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	sessions := session.NewManager(tokens, cfg.Production())

	var (
		recordService      = record.NewService(recordStore.New(db))
		transactionService = transaction.NewService(recordService)
		analyticsService   = analytics.NewService(analyticsStore.New(db))
		matchingService    = matching.NewService(matchingStore.New(db))
		importService      = importer.NewService(matchingService)
		exportService      = export.NewService(transactionService)
		contactService     = contact.NewService(contactStore.New(db))
		userService        = user.NewService(
			userStore.New(db),
			auth.NewHasher(bcrypt.DefaultCost),
			mail.NewLogMailer(logger),
			user.Config{FrontendURL: cfg.App.FrontendURL, ResetTTL: cfg.Auth.ResetTokenTTL},
		)
	)

	kind := func(k record.Kind) budgetHttp.Kind {
		return budgetHttp.Kind{
			Records:  recordHandler.NewHandler(recordService, k),
			Import:   importHandler.NewHandler(importService, recordService, k),
			Matching: matchingHandler.NewHandler(matchingService, k),
		}
	}

	router := budgetHttp.New(budgetHttp.Handlers{
		Auth:         authHandler.NewHandler(userService, sessions),
		Profile:      profileHandler.NewHandler(userService, recordService),
		Budgets:      kind(record.KindBudget),
		Expenses:     kind(record.KindExpense),
		Transactions: txHandler.NewHandler(transactionService),
		Export:       exportHandler.NewHandler(exportService),
		Analytics:    analyticsHandler.NewHandler(analyticsService),
		Contact:      contactHandler.NewHandler(contactService),
	}, sessions, cfg.App.FrontendURL)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "env", cfg.App.Env)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
