//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"riviera-booking/cmd/bootstrap"
	"riviera-booking/cmd/bootstrap/components"
	"riviera-booking/internal/handler/dto/request"
	"riviera-booking/internal/handler/dto/response"
	"riviera-booking/internal/infra/db"
	"riviera-booking/internal/pkg/config"
	"riviera-booking/internal/pkg/password"
	commonhttp "riviera-booking/tests/common/httptest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	containerOnce sync.Once
	pgContainer   testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

// SharedSuite boots a dedicated database and a fully wired router for each
// test suite. The PostgreSQL container itself is shared across suites.
type SharedSuite struct {
	suite.Suite

	Pool   *pgxpool.Pool
	Router *gin.Engine
	Config config.Config

	app *fx.App
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	host, port := startPostgresOnce(t)
	dbConfig := createDatabase(t, host, port)

	pool, cleanup, err := db.Connect(dbConfig)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(cleanup)

	applyMigrations(t, pool)

	s.Pool = pool
	s.Config = config.NewTestConfig()
	s.Config.DB = dbConfig
	s.Router, s.app = buildApp(t, pool, s.Config)
}

func (s *SharedSuite) TearDownSuite() {
	if s.app == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.app.Stop(ctx)
}

func startPostgresOnce(t *testing.T) (string, nat.Port) {
	containerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs:      map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
			Cmd:        []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off"},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
		}
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start postgres container")
		pgContainer = container
	})

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	return host, port
}

// createDatabase gives each suite its own database so suites can run in
// parallel against the shared container.
func createDatabase(t *testing.T, host string, port nat.Port) config.DBConfig {
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, host, port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "failed to open admin connection")
	defer adminPool.Close()

	_, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()
		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			return
		}
		defer cleanupPool.Close()
		_, _ = cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName)
	})

	return config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
	}
}

func applyMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	file := "migrations/001_initial_schema.sql"
	candidates := []string{
		file,
		filepath.Join("..", file),
		filepath.Join("..", "..", file),
		filepath.Join("..", "..", "..", file),
	}

	var (
		sqlContent []byte
		readErr    error
	)
	for _, cand := range candidates {
		sqlContent, readErr = os.ReadFile(cand)
		if readErr == nil {
			break
		}
	}
	require.NoError(t, readErr, "failed to locate migration file")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_, err := pool.Exec(ctx, string(sqlContent))
	require.NoError(t, err, "failed to apply migrations")
}

func buildApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) (*gin.Engine, *fx.App) {
	t.Helper()

	var router *gin.Engine
	app := fx.New(
		fx.Provide(
			func() *pgxpool.Pool { return pool },
			func() config.Config { return cfg },
			bootstrap.NewJWTService,
			bootstrap.NewMetrics,
		),
		components.RepositoryModule,
		components.UsecaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start application")
	require.NotNil(t, router, "router was not populated")
	return router, app
}

// CreateUser inserts a user directly, bypassing the register endpoint so
// suites can seed staff accounts.
func (s *SharedSuite) CreateUser(email, plainPassword, role string) uuid.UUID {
	t := s.T()
	hash, err := password.Hash(plainPassword)
	require.NoError(t, err)

	id := uuid.New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = s.Pool.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, TRUE)",
		id, email, hash, role)
	require.NoError(t, err, "failed to seed user")
	return id
}

// Login authenticates through the API and returns the access token.
func (s *SharedSuite) Login(email, plainPassword string) string {
	t := s.T()
	w := commonhttp.PerformRequest(t, s.Router, http.MethodPost, "/api/v1/auth/login", request.LoginRequest{
		Email:    email,
		Password: plainPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	var resp response.LoginResponse
	commonhttp.DecodeResponseBody(t, w.Body, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}
