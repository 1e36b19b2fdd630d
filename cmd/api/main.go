package main

import (
	"StatKeeperApi/internal/archive"
	"StatKeeperApi/internal/gamehub"
	"StatKeeperApi/internal/jsonlog"
	"StatKeeperApi/internal/mailer"
	"StatKeeperApi/internal/oracle"
	"context"
	"database/sql"
	"errors"
	"expvar"
	"flag"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

type config struct {
	version string
	port    int
	env     string
	oracle  struct {
		url     string
		timeout time.Duration
	}
	db struct {
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  string
	}
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}
	smtp struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
	report struct {
		recipient string
	}
	cors struct {
		trustedOrigins []string
	}
	keeperKey string
}

type application struct {
	logger        *jsonlog.Logger
	config        config
	games         *gamehub.Registry
	oracle        *oracle.Client
	archive       *archive.Store
	mailer        mailer.Mailer
	keeperKeyHash []byte
	wg            sync.WaitGroup
}

func main() {
	var cfg config

	// Server Config
	cfg.version = "1.0.0"
	flag.IntVar(&cfg.port, "port", 8008, "http server port")
	flag.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")

	// Oracle Config
	flag.StringVar(&cfg.oracle.url, "oracle-url", "http://localhost:8000",
		"Audio classification service base URL")
	flag.DurationVar(&cfg.oracle.timeout, "oracle-timeout", 60*time.Second,
		"Audio classification request timeout")

	// Archive Database Config (optional; archiving disabled when empty)
	flag.StringVar(&cfg.db.dsn, "db-dsn", "", "Archive DB connection string")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", 25, "PostgreSQL max idle connections")
	flag.StringVar(&cfg.db.maxIdleTime, "db-max-idle-time", "15m",
		"PostgreSQL max connection idle time")

	// Limiter Config
	flag.Float64Var(&cfg.limiter.rps, "limiter-rps", 10, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 20, "Rate limiter maximum burst")
	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")

	// SMTP Config (report mail disabled when recipient empty)
	flag.StringVar(&cfg.smtp.host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.smtp.port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.smtp.username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.smtp.password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.smtp.sender, "smtp-sender", "StatKeeper <no-reply@statkeeper.com>",
		"SMTP sender")
	flag.StringVar(&cfg.report.recipient, "report-recipient", "",
		"Email address receiving final box scores")

	// Keeper Key Config
	flag.StringVar(&cfg.keeperKey, "keeper-key", "",
		"Shared key required on mutating endpoints (disabled when empty)")

	// CORS Config
	flag.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		origins := strings.Fields(val)
		if i := slices.Index(origins, "*"); i != -1 {
			return errors.New("cannot set CORS trusted origin to \"*\" with authorization header" +
				" in cross-origin requests")
		}
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	// Version
	displayVersion := flag.Bool("version", false, "Show API version and immediately exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version: %s\n", cfg.version)
		os.Exit(0)
	}

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	app := &application{
		logger: logger,
		config: cfg,
		games:  gamehub.NewRegistry(),
		oracle: oracle.New(cfg.oracle.url, cfg.oracle.timeout),
		mailer: mailer.New(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password,
			cfg.smtp.sender),
	}

	if cfg.keeperKey != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.keeperKey), 12)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		app.keeperKeyHash = hash
	}

	if cfg.db.dsn != "" {
		db, err := openDB(cfg)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		defer db.Close()
		logger.PrintInfo("archive database connection pool established", nil)
		app.archive = archive.New(db)

		expvar.Publish("database", expvar.Func(func() any {
			return db.Stats()
		}))
	}

	expvar.NewString("version").Set(cfg.version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("games_in_progress", expvar.Func(func() any {
		return app.games.Len()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	err := app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.db.maxOpenConns)
	db.SetMaxIdleConns(cfg.db.maxIdleConns)
	duration, err := time.ParseDuration(cfg.db.maxIdleTime)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxIdleTime(duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		return nil, err
	}

	return db, nil
}
