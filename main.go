package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"github.com/varsilias/ragqa/internal/api"
	"github.com/varsilias/ragqa/internal/buildinfo"
	"github.com/varsilias/ragqa/internal/chat"
	"github.com/varsilias/ragqa/internal/completion"
	"github.com/varsilias/ragqa/internal/config"
	"github.com/varsilias/ragqa/internal/console"
	"github.com/varsilias/ragqa/internal/logging"
	"github.com/varsilias/ragqa/internal/metrics"
	"github.com/varsilias/ragqa/internal/middleware"
	"github.com/varsilias/ragqa/internal/retrieval"
	"github.com/varsilias/ragqa/internal/ui"
)

var errRetrievalFailed = errors.New("retrieval failed")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRetrievalFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "ragqa",
		Short:         "Answer questions with context from a retrieval tool and a hosted language model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnvFile(envFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	pf.String("log-level", "info", "log level: debug|info|warn|error (LOG_LEVEL)")
	pf.Bool("log-json", false, "log as JSON (LOG_JSON)")
	pf.Bool("dry-run", false, "echo questions instead of calling the completion API (DRY_RUN)")
	pf.String("openai-model", config.DefaultModel, "completion model (OPENAI_MODEL)")
	pf.String("rag-retriever-bin", config.DefaultRetrieverBin, "retrieval executable (RAG_RETRIEVER_BIN)")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and JSON API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serve.Flags().String("addr", config.DefaultAddr, "HTTP listen port (ADDR)")

	ask := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask one question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}
	ask.Flags().Bool("show-context", false, "print the retrieved context above the answer")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ragqa %s (commit %s, built %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.BuiltAt)
		},
	}

	root.AddCommand(serve, ask, version)
	return root
}

// newEngine builds the answering engine. A missing API key fails here,
// before anything is served or asked.
func newEngine(cfg *config.Config, logger *slog.Logger) (chat.Engine, string, error) {
	if cfg.DryRun {
		logger.Warn("dry run: answers are echoed, the completion API is not called")
		return chat.NewEchoEngine(30 * time.Millisecond), "dry-run", nil
	}
	client, err := completion.New(completion.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	}, logger)
	if err != nil {
		return nil, "", err
	}
	return client, client.Model(), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogJSON)
	logger.Info("build", "version", buildinfo.Version, "commit", buildinfo.Commit, "built_at", buildinfo.BuiltAt)

	engine, model, err := newEngine(cfg, logger)
	if err != nil {
		logger.Error("configuration", "err", err)
		return err
	}

	metrics.Register()

	retriever := retrieval.NewCommandProvider(cfg.RetrieverBin, logger)
	chatCtrl := chat.NewController(logger, retriever, engine)

	uih, err := ui.New(logger, chatCtrl, model)
	if err != nil {
		logger.Error("ui init", "err", err)
		return err
	}

	h := api.NewHandlers(logger, chatCtrl)
	h.Admin = api.NewAdmin(model, cfg.RetrieverBin, cfg.DryRun)

	mux := chi.NewRouter()
	ui.RegisterRoutes(mux, uih)
	api.RegisterRoutes(mux, h)

	var handler http.Handler = mux
	handler = middleware.Recoverer(logger)(handler)
	handler = middleware.AccessLog(logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.VersionHeader()(handler)

	server := http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Addr),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		// retrieval plus a 1000 token completion can take a while
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("server is listening", "port", cfg.Addr, "model", model, "retriever", cfg.RetrieverBin)

	// Graceful shutdown
	errChan := make(chan error, 1)
	go func() { errChan <- server.ListenAndServe() }()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			return err
		}
	case sig := <-sigChan:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	showContext, _ := cmd.Flags().GetBool("show-context")

	// stdout carries the answer only
	logger := logging.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogJSON)

	engine, model, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}

	out := console.New(cmd.OutOrStdout(), showContext)
	out.Header()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctrl := chat.NewController(logger, retrieval.NewCommandProvider(cfg.RetrieverBin, logger), engine)
	res, err := ctrl.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	out.Result(res, model)
	if !res.Answered() {
		return errRetrievalFailed
	}
	return nil
}
