// Command quizforge serves the quiz-generation API and parses generator
// payloads offline.
//
// Usage:
//
//	quizforge serve [-config quizforge.yaml] [-env .env]
//	quizforge parse [-skill S] [-type T] [file]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leofalp/quizforge/core/generate"
	"github.com/leofalp/quizforge/core/generate/middleware"
	"github.com/leofalp/quizforge/core/quiz"
	"github.com/leofalp/quizforge/internal/config"
	"github.com/leofalp/quizforge/internal/server"
	"github.com/leofalp/quizforge/providers/observability/slogobs"
	"github.com/leofalp/quizforge/providers/workflow"
	"github.com/leofalp/quizforge/providers/workflow/dify"
)

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run dispatches the subcommand and returns an exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runServe(args[1:], stderr)
	case "parse":
		return runParse(args[1:], stdin, stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  quizforge serve [-config file] [-env file]")
	fmt.Fprintln(w, "  quizforge parse [-skill S] [-type T] [file]")
}

func runServe(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	envFile := fs.String("env", "", "path to a dotenv file (default .env when present)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := config.Load(*configPath, envFiles...)
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return 1
	}

	observer := slogobs.New()
	logger := observer.Logger()

	parser := newParser(cfg, observer)
	service := generate.New(newProvider(cfg), parser,
		generate.WithObserver(observer),
		generate.WithDefaultSkill(quiz.Skill(cfg.Parser.DefaultSkill)),
		generate.WithDefaultUser(cfg.Dify.User),
		generate.WithMiddleware(
			middleware.NewLoggingMiddleware(logger, middleware.LogLevelStandard),
			middleware.NewTimeoutMiddleware(cfg.Dify.Timeout),
		),
	)
	if !service.Configured() {
		logger.Warn("upstream credentials missing, generation requests will fail",
			slog.String("env", config.EnvDifyAPIKey),
		)
	}

	router := server.NewRouter(server.NewHandler(service, parser, quiz.Skill(cfg.Parser.DefaultSkill)), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg.Server.Addr, router, logger).Run(ctx, shutdownTimeout); err != nil {
		fmt.Fprintf(stderr, "server error: %v\n", err)
		return 1
	}
	return 0
}

// newProvider returns nil when credentials are missing so the service reports
// every generation as not configured.
func newProvider(cfg config.Config) workflow.Provider {
	if !cfg.Dify.Configured() {
		return nil
	}
	return dify.New("", "").
		WithAPIKey(cfg.Dify.APIKey).
		WithBaseURL(cfg.Dify.BaseURL).
		WithHttpClient(&http.Client{Timeout: cfg.Dify.Timeout + 5*time.Second})
}

func newParser(cfg config.Config, observer *slogobs.Observer) *quiz.Parser {
	opts := []quiz.Option{quiz.WithObserver(observer)}
	if cfg.Parser.MarkdownDescriptions {
		opts = append(opts, quiz.WithMarkdownDescriptions())
	}
	return quiz.New(opts...)
}

func runParse(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	skill := fs.String("skill", string(quiz.SkillGeneral), "default skill for rows that carry none")
	kind := fs.String("type", string(quiz.KindMultipleChoice), "default question type")
	markdown := fs.Bool("markdown", false, "convert inline HTML in descriptions and answers to markdown")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	input := stdin
	if path := fs.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "open input: %v\n", err)
			return 1
		}
		defer f.Close()
		input = f
	}

	raw, err := io.ReadAll(input)
	if err != nil {
		fmt.Fprintf(stderr, "read input: %v\n", err)
		return 1
	}

	var opts []quiz.Option
	if *markdown {
		opts = append(opts, quiz.WithMarkdownDescriptions())
	}
	questions := quiz.New(opts...).Parse(context.Background(), string(raw), quiz.Defaults{
		Skill: quiz.Skill(*skill),
		Kind:  quiz.Kind(*kind),
	})

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(questions); err != nil {
		fmt.Fprintf(stderr, "encode output: %v\n", err)
		return 1
	}
	return 0
}
