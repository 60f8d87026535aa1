package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/redis/go-redis/v9"
	"github.com/umputun/go-flags"

	"github.com/umputun/confessions/app/confess"
	"github.com/umputun/confessions/app/email"
	"github.com/umputun/confessions/app/reaper"
	"github.com/umputun/confessions/app/secrets"
	"github.com/umputun/confessions/app/server"
	"github.com/umputun/confessions/app/store"
)

var opts struct {
	Listen        string        `short:"l" long:"listen" env:"LISTEN" default:":8080" description:"listen address"`
	URL           string        `long:"url" env:"URL" default:"http://localhost:8080" description:"public url, base of share links"`
	SecretTTL     time.Duration `long:"ttl" env:"SECRET_TTL" default:"24h" description:"secret message lifetime"`
	PurgeInterval time.Duration `long:"purge" env:"PURGE_INTERVAL" default:"1m" description:"expired messages purge interval"`
	MaxSecret     int           `long:"max-secret" env:"MAX_SECRET" default:"5000" description:"max characters in secret message"`
	MaxConfession int           `long:"max-confession" env:"MAX_CONFESSION" default:"1000" description:"max characters in confession"`
	FeedSize      int           `long:"feed" env:"FEED_SIZE" default:"50" description:"confessions in public feed"`
	OwnerHeader   string        `long:"owner-header" env:"OWNER_HEADER" default:"X-Firebase-Uid" description:"header with owner identity"`
	RateLimit     float64       `long:"rate-limit" env:"RATE_LIMIT" default:"10" description:"api requests per second per client"`
	Timeout       time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"api request timeout"`
	RevealTime    time.Duration `long:"reveal-time" env:"REVEAL_TIME" default:"100ms" description:"min duration of reveal response"`
	IPSecret      string        `long:"ip-secret" env:"IP_SECRET" description:"hmac key for client ip anonymization in logs"`

	Store struct {
		Type     string `long:"type" env:"TYPE" choice:"memory" choice:"sqlite" choice:"postgres" choice:"redis" default:"sqlite" description:"storage engine"`
		SQLite   string `long:"sqlite" env:"SQLITE" default:"confessions.db" description:"sqlite file, :memory: for in-memory db"`
		Postgres string `long:"postgres" env:"POSTGRES" description:"postgres dsn"`
		Redis    struct {
			Addr     string `long:"addr" env:"ADDR" default:"localhost:6379" description:"redis address"`
			Password string `long:"password" env:"PASSWORD" description:"redis password"`
			DB       int    `long:"db" env:"DB" default:"0" description:"redis database"`
			Prefix   string `long:"prefix" env:"PREFIX" default:"confessions" description:"key prefix"`
		} `group:"redis" namespace:"redis" env-namespace:"REDIS"`
	} `group:"store" namespace:"store" env-namespace:"STORE"`

	Email struct {
		Enabled     bool          `long:"enabled" env:"ENABLED" description:"enable email delivery of share links"`
		Host        string        `long:"host" env:"HOST" description:"smtp host"`
		Port        int           `long:"port" env:"PORT" default:"587" description:"smtp port"`
		Username    string        `long:"username" env:"USERNAME" description:"smtp username"`
		Password    string        `long:"password" env:"PASSWORD" description:"smtp password"`
		From        string        `long:"from" env:"FROM" default:"Confessions <noreply@localhost>" description:"sender address"`
		Subject     string        `long:"subject" env:"SUBJECT" default:"Someone sent you a secret message" description:"email subject"`
		TLS         bool          `long:"tls" env:"TLS" description:"use implicit tls"`
		Timeout     time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"smtp timeout"`
		Template    string        `long:"template" env:"TEMPLATE" description:"custom email template file"`
		Branding    string        `long:"branding" env:"BRANDING" default:"Confessions" description:"brand name in emails"`
		BrandingURL string        `long:"branding-url" env:"BRANDING_URL" description:"brand link in emails"`
	} `group:"email" namespace:"email" env-namespace:"EMAIL"`

	Admin struct {
		Hash string `long:"hash" env:"HASH" description:"bcrypt hash of admin password, admin api disabled if empty"`
	} `group:"admin" namespace:"admin" env-namespace:"ADMIN"`

	Dbg bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "unknown"

// engine is a storage serving both secret messages and confessions
type engine interface {
	secrets.Engine
	confess.Engine
	io.Closer
}

func main() {
	fmt.Printf("confessions %s\n", revision)

	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	setupLog(opts.Dbg, opts.Email.Password, opts.Store.Redis.Password, opts.Store.Postgres, opts.IPSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	eng, err := makeEngine(opts.Store.Type)
	if err != nil {
		return fmt.Errorf("can't make store: %w", err)
	}
	defer func() {
		if err := eng.Close(); err != nil {
			log.Printf("[WARN] can't close store, %v", err)
		}
	}()

	keeper := secrets.New(eng, secrets.Params{TTL: opts.SecretTTL, MaxContent: opts.MaxSecret})
	board := confess.New(eng, confess.Params{FeedSize: opts.FeedSize, MaxContent: opts.MaxConfession})

	sender, err := email.NewSender(email.Config{
		Enabled:     opts.Email.Enabled,
		Host:        opts.Email.Host,
		Port:        opts.Email.Port,
		Username:    opts.Email.Username,
		Password:    opts.Email.Password,
		From:        opts.Email.From,
		Subject:     opts.Email.Subject,
		TLS:         opts.Email.TLS,
		Timeout:     opts.Email.Timeout,
		Template:    opts.Email.Template,
		Branding:    opts.Email.Branding,
		BrandingURL: opts.Email.BrandingURL,
	})
	if err != nil {
		return fmt.Errorf("can't make email sender: %w", err)
	}
	var emailer server.EmailSender
	if sender != nil { // interface holding nil pointer is not nil
		emailer = sender
	}

	rpr := reaper.New(keeper, opts.PurgeInterval)
	if err = rpr.Start(ctx); err != nil {
		return fmt.Errorf("can't start reaper: %w", err)
	}
	defer rpr.Stop()

	srv, err := server.New(keeper, board, emailer, revision, server.Config{
		Listen:        opts.Listen,
		URL:           opts.URL,
		OwnerHeader:   opts.OwnerHeader,
		MaxSecret:     opts.MaxSecret,
		MaxConfession: opts.MaxConfession,
		SecretTTL:     opts.SecretTTL,
		FeedSize:      opts.FeedSize,
		RevealMinTime: opts.RevealTime,
		RateLimit:     opts.RateLimit,
		Timeout:       opts.Timeout,
		AdminHash:     opts.Admin.Hash,
		IPSecret:      opts.IPSecret,
	})
	if err != nil {
		return fmt.Errorf("can't make server: %w", err)
	}
	return srv.Run(ctx)
}

func makeEngine(engineType string) (engine, error) {
	switch engineType {
	case "memory":
		log.Printf("[INFO] memory store, nothing survives restart")
		return store.NewMemory(), nil
	case "sqlite":
		if opts.Store.SQLite == ":memory:" {
			return store.NewSQLiteInMemory(), nil
		}
		return store.NewSQLite(opts.Store.SQLite)
	case "postgres":
		if opts.Store.Postgres == "" {
			return nil, errors.New("postgres dsn is required")
		}
		return store.NewPostgres(opts.Store.Postgres)
	case "redis":
		return store.NewRedis(&redis.Options{
			Addr:     opts.Store.Redis.Addr,
			Password: opts.Store.Redis.Password,
			DB:       opts.Store.Redis.DB,
		}, opts.Store.Redis.Prefix)
	}
	return nil, fmt.Errorf("unknown store type %q", engineType)
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []log.Option{log.Msec, log.LevelBraces, log.StackTraceOnError}
	if dbg {
		logOpts = []log.Option{log.Debug, log.CallerFile, log.CallerFunc, log.Msec, log.LevelBraces, log.StackTraceOnError}
	}

	var nonEmpty []string
	for _, s := range secs {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, log.Secret(nonEmpty...))
	}
	log.SetupStdLogger(logOpts...)
	log.Setup(logOpts...)
}
