package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	goredis "github.com/redis/go-redis/v9"

	"devjobs/internal/cache"
	"devjobs/internal/config"
	"devjobs/internal/database"
	"devjobs/internal/database/migration"
	dbpostgres "devjobs/internal/database/postgres"
	"devjobs/internal/database/seeder"
	"devjobs/internal/mail"
	"devjobs/internal/pkg/hash"
	"devjobs/internal/pkg/sessiontoken"
	"devjobs/internal/repository"
	"devjobs/internal/session"
	"devjobs/internal/storage"
	ucauth "devjobs/internal/usecase/auth"
	ucuser "devjobs/internal/usecase/user"
	ucvacancy "devjobs/internal/usecase/vacancy"
	"devjobs/internal/ws"
)

// Container owns every long-lived dependency and wires the layers together.
type Container struct {
	Config config.Config
	Logger zerolog.Logger

	DB    database.DB
	Redis *goredis.Client

	Hub *ws.Hub

	AuthUC    ucauth.Usecase
	UserUC    ucuser.Usecase
	VacancyUC ucvacancy.Usecase

	Uploads storage.Store
}

func NewContainer(cfg config.Config, lg zerolog.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := migration.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	hasher := hash.NewBcryptHasher()

	if cfg.App.SeedDemoData {
		if err := seeder.RunAll(ctx, db, seeder.DemoSeeder{Hasher: hasher}); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	rdb, err := session.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	users := repository.NewPostgresUserRepository(db, hasher)
	vacancies := repository.NewPostgresVacancyRepository(db)

	sessions := session.NewRedisStore(rdb)
	tokens := sessiontoken.NewHMACService(cfg.Session.Secret)

	var sender mail.Sender
	if cfg.SMTP.Host != "" {
		sender = mail.NewSMTPSender(cfg.SMTP, lg)
	} else {
		sender = mail.NewLogSender(lg)
	}

	hub := ws.NewHub(lg)

	authUC := ucauth.NewService(users, hasher, sessions, tokens, sender, lg, cfg.Session.TTL, cfg.App.BaseURL)
	userUC := ucuser.NewService(users)
	vacancyUC := ucvacancy.NewService(vacancies, ws.NewNotifier(hub), cache.NewRedis(rdb, lg))

	return &Container{
		Config:    cfg,
		Logger:    lg,
		DB:        db,
		Redis:     rdb,
		Hub:       hub,
		AuthUC:    authUC,
		UserUC:    userUC,
		VacancyUC: vacancyUC,
		Uploads:   storage.NewLocalStore(cfg.Upload.Dir),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
