package bootstrap

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobtrack/jobtrack-ui/config"
	"github.com/jobtrack/jobtrack-ui/internal/adapters/password"
	redisadapter "github.com/jobtrack/jobtrack-ui/internal/adapters/redis"
	"github.com/jobtrack/jobtrack-ui/internal/data"
	"github.com/jobtrack/jobtrack-ui/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth *service.AuthService
	Jobs *service.JobService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices wires data adapters into the application services.
// Sessions live in Redis so they survive restarts and expire on their own;
// everything else is backed by Postgres.
func BuildServices(deps ServiceDeps) ServiceContainer {
	sessionTTL := time.Hour
	if deps.Config != nil && deps.Config.Session.TTL > 0 {
		sessionTTL = deps.Config.Session.TTL
	}

	auth := service.NewAuthService(service.AuthServiceOptions{
		Users:      data.NewUserRepo(deps.DB),
		Sessions:   redisadapter.NewSessionStore(deps.RedisClient),
		Hasher:     password.NewBcryptHasher(),
		SessionTTL: sessionTTL,
	})

	jobs := service.NewJobService(service.JobServiceOptions{
		JobRepo: data.NewJobRepo(deps.DB),
	})

	return ServiceContainer{
		Auth: auth,
		Jobs: jobs,
	}
}
