package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MosheOgalbo/boa-home-assignment/internal/config"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart/firestorerepo"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart/pgrepo"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart/redisrepo"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart/repofake"
	"github.com/MosheOgalbo/boa-home-assignment/server"
	"github.com/MosheOgalbo/boa-home-assignment/session"
)

var errPanicRecovered = errors.New("panic recovered")

func main() {
	c := config.New()
	setupLogging(c)

	for {
		err := run(c)
		if err == nil {
			break
		}
		if !errors.Is(err, errPanicRecovered) {
			log.Fatal().Err(err).Msg("Error running server")
		}
		log.Error().Err(err).Msg("Restarting server")
		time.Sleep(1 * time.Second)
	}
	log.Info().Msg("Server stopped")
}

func run(c config.Config) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("Recovered from panic")
			returnError = errPanicRecovered
		}
	}()

	displayAppname(c.GetAppName())

	ctx := context.Background()
	repo, closeRepo, err := openRepo(ctx, c)
	if err != nil {
		return err
	}
	defer closeRepo()

	verifier, err := newVerifier(ctx, c)
	if err != nil {
		return err
	}

	handler, err := server.New(c, savedcart.NewService(repo, c.GetStorageTimeout()), verifier)
	if err != nil {
		return err
	}
	defer handler.Close()

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.GetLogLevel()))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openRepo picks the saved cart backend named by STORAGE_DRIVER.
func openRepo(ctx context.Context, c config.StorageConfig) (savedcart.Repo, func(), error) {
	driver := c.GetStorageDriver()
	log.Info().Str("driver", driver).Msg("Opening saved cart storage")

	switch driver {
	case config.StorageDriverMemory:
		log.Warn().Msg("Using in-memory storage, saved carts are lost on restart")
		return repofake.NewFakeSavedCartRepo(), func() {}, nil
	case config.StorageDriverPostgres:
		repo, err := pgrepo.New(ctx, c.GetDatabaseURL())
		if err != nil {
			return nil, nil, fmt.Errorf("pgrepo.New: %w", err)
		}
		return repo, repo.Close, nil
	case config.StorageDriverRedis:
		repo, err := redisrepo.New(c.GetRedisURL(), c.GetRedisKeyPrefix())
		if err != nil {
			return nil, nil, fmt.Errorf("redisrepo.New: %w", err)
		}
		return repo, func() { closeQuietly("redis", repo.Close) }, nil
	case config.StorageDriverFirestore:
		repo, err := firestorerepo.New(ctx, c.GetFirestoreProjectID(), c.GetFirestoreCollection())
		if err != nil {
			return nil, nil, fmt.Errorf("firestorerepo.New: %w", err)
		}
		return repo, func() { closeQuietly("firestore", repo.Close) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_DRIVER %q", driver)
	}
}

func closeQuietly(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Warn().Err(err).Str("storage", name).Msg("Error closing storage")
	}
}

// newVerifier uses OIDC discovery when an issuer is configured, otherwise the shared secret.
func newVerifier(ctx context.Context, c config.SecurityConfig) (session.Verifier, error) {
	if issuer := c.GetSessionIssuerURL(); issuer != "" {
		v, err := session.NewOIDCVerifier(ctx, issuer, c.GetSessionAudience())
		if err != nil {
			return nil, fmt.Errorf("session.NewOIDCVerifier: %w", err)
		}
		log.Info().Str("issuer", issuer).Msg("Verifying session tokens with OIDC")
		return v, nil
	}
	v, err := session.NewHMACVerifier(c.GetSessionSecret(), c.GetSessionAudience(), c.GetSessionLeeway())
	if err != nil {
		return nil, fmt.Errorf("session.NewHMACVerifier: %w", err)
	}
	return v, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
