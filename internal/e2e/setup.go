//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"campus-placement/cmd/bootstrap"
	"campus-placement/cmd/bootstrap/components"
	"campus-placement/internal/domain/event"
	"campus-placement/internal/domain/opportunity"
	"campus-placement/internal/domain/user"
	"campus-placement/internal/infra/db"
	"campus-placement/internal/infra/memory"
	"campus-placement/internal/infra/migrations"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/realtime"
	"campus-placement/internal/testutil/authtest"
	"campus-placement/internal/testutil/dbtest"

	"github.com/alicebob/miniredis/v2"
	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"golang.org/x/net/websocket"
)

var (
	postgresContainerOnce sync.Once
	postgresTestContainer testcontainers.Container

	testUser     = "test"
	testPassword = "testpass"
)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

// seeder writes the reference data owned by other services.
type seeder interface {
	Opportunity(t *testing.T, o opportunity.Opportunity)
	Candidate(t *testing.T, p opportunity.CandidateProfile)
}

type postgresSeeder struct{ pool *pgxpool.Pool }

func (s postgresSeeder) Opportunity(t *testing.T, o opportunity.Opportunity) {
	dbtest.SeedOpportunity(t, s.pool, o)
}

func (s postgresSeeder) Candidate(t *testing.T, p opportunity.CandidateProfile) {
	dbtest.SeedCandidate(t, s.pool, p)
}

type memorySeeder struct{ store *memory.Store }

func (s memorySeeder) Opportunity(_ *testing.T, o opportunity.Opportunity) { s.store.PutOpportunity(o) }

func (s memorySeeder) Candidate(_ *testing.T, p opportunity.CandidateProfile) { s.store.PutCandidate(p) }

// ------------------------------------------------------------
// Store-specific environments
// ------------------------------------------------------------

// setupPostgresEnvironment runs against a fresh database in a shared postgres
// container, with live fan-out relayed through redis.
func setupPostgresEnvironment(t *testing.T) (*pgxpool.Pool, *gin.Engine, config.Config, seeder) {
	postgresInfo := startContainers(t)
	pool, dbConfig := prepareDatabase(t, postgresInfo)

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	router, _ := buildE2EApp(t, cfg, pool, rdb)
	return pool, router, cfg, postgresSeeder{pool: pool}
}

func setupMemoryEnvironment(t *testing.T) (*gin.Engine, config.Config, seeder) {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()
	cfg.DB = config.DBConfig{Driver: config.StoreDriverMemory}

	router, store := buildE2EApp(t, cfg, nil, nil)
	return router, cfg, memorySeeder{store: store}
}

// ------------------------------------------------------------
// Containers
// ------------------------------------------------------------
func startContainers(t *testing.T) ContainerInfo {
	gin.SetMode(gin.TestMode)
	startPostgreSQLContainerOnce(t)

	postgresInfo, err := getContainerHostPort(postgresTestContainer, "5432/tcp")
	require.NoError(t, err, "failed to resolve postgres container address")

	return postgresInfo
}

func prepareDatabase(t *testing.T, postgresInfo ContainerInfo) (*pgxpool.Pool, config.DBConfig) {
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, postgresInfo.Host, postgresInfo.Port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "failed to connect as admin")
	defer adminPool.Close()

	var createErr error
	for attempts := range 5 {
		if attempts > 0 {
			time.Sleep(min(time.Duration(500+attempts*500)*time.Millisecond, 3*time.Second))
		}
		_, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
		if createErr == nil {
			break
		}
		slog.Warn("retrying database creation", "attempt", attempts+1, "error", createErr.Error())
	}
	require.NoError(t, createErr, "failed to create test database")

	dbConfig := config.DBConfig{
		Driver:   config.StoreDriverPostgres,
		Host:     postgresInfo.Host,
		Port:     postgresInfo.Port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 20,
	}

	pool, _, err := db.Connect(dbConfig)
	require.NoError(t, err, "failed to connect to test database")

	t.Cleanup(func() {
		pool.Close()
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()
		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			slog.Warn("failed to connect for cleanup", "database", dbName, "error", err.Error())
			return
		}
		defer cleanupPool.Close()
		if _, err := cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	applied, err := migrations.Apply(ctx, pool)
	require.NoError(t, err, "failed to apply migrations")
	require.NotEmpty(t, applied)

	return pool, dbConfig
}

func startPostgreSQLContainerOnce(t *testing.T) {
	postgresContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "full_page_writes=off",
				"-c", "synchronous_commit=off",
				"-c", "max_connections=200",
				"-c", "log_statement=none",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
			Labels: map[string]string{"purpose": "e2e-tests"},
		}

		ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
		defer cancel()

		var err error
		postgresTestContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start postgres container")
	})
	require.NotNil(t, postgresTestContainer, "postgres container did not start")
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// Application
// ------------------------------------------------------------

// buildE2EApp starts the same fx graph as cmd/main.go with the test
// infrastructure supplied in place of DBModule and RedisModule. A nil pool
// means the memory driver; a nil client keeps fan-out in-process.
func buildE2EApp(t *testing.T, cfg config.Config, pool *pgxpool.Pool, rdb *redis.Client) (*gin.Engine, *memory.Store) {
	t.Helper()

	var (
		router *gin.Engine
		store  *memory.Store
	)

	app := fx.New(
		fx.Provide(
			func() config.Config { return cfg },
			func() *pgxpool.Pool { return pool },
			func() *redis.Client { return rdb },
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.RealtimeModule,
		components.HandlerModule,

		fx.Populate(&router, &store),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start fx app")

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := app.Stop(stopCtx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	require.NotNil(t, router)
	return router, store
}

// ------------------------------------------------------------
// Shared suite
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool // nil for the memory store
	Config config.Config
	Seed   seeder
	JWT    *authtest.JWTHelper
	Server *httptest.Server

	// memory selects the in-process store instead of postgres.
	memory bool
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	if s.memory {
		s.Router, s.Config, s.Seed = setupMemoryEnvironment(t)
	} else {
		s.DB, s.Router, s.Config, s.Seed = setupPostgresEnvironment(t)
	}
	s.JWT = authtest.NewJWTHelper(s.Config.JWT)
	s.Server = httptest.NewServer(s.Router)
	t.Cleanup(s.Server.Close)
}

func (s *SharedSuite) SetupTest() {
	if s.DB != nil {
		require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
	}
}

// ------------------------------------------------------------
// Socket client
// ------------------------------------------------------------
type socket struct {
	t     *testing.T
	conn  *websocket.Conn
	ready realtime.ReadyPayload
}

func (s *SharedSuite) connect(identity user.Identity) *socket {
	t := s.T()
	wsURL := "ws" + strings.TrimPrefix(s.Server.URL, "http") + "/ws"
	conn, err := websocket.Dial(wsURL, "", s.Config.CORS.AllowOrigins[0])
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	c := &socket{t: t, conn: conn}
	c.send(realtime.FrameAuth, "auth", realtime.AuthPayload{Token: s.JWT.GenerateToken(t, identity)})
	f := c.read()
	require.Equal(t, realtime.FrameReady, f.Type, string(f.Payload))
	require.NoError(t, json.Unmarshal(f.Payload, &c.ready))
	return c
}

func (c *socket) send(typ, requestID string, payload any) {
	raw, err := json.Marshal(payload)
	require.NoError(c.t, err)
	require.NoError(c.t, websocket.JSON.Send(c.conn, realtime.Frame{Type: typ, RequestID: requestID, Payload: raw}))
}

// read skips server pings.
func (c *socket) read() realtime.Frame {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var f realtime.Frame
		require.NoError(c.t, websocket.JSON.Receive(c.conn, &f))
		if f.Type != realtime.FramePing {
			return f
		}
	}
}

func (c *socket) nextEvent() event.Message {
	c.t.Helper()
	f := c.read()
	require.Equal(c.t, realtime.FrameEvent, f.Type, string(f.Payload))
	var m event.Message
	require.NoError(c.t, json.Unmarshal(f.Payload, &m))
	return m
}

func (c *socket) join(topic string) {
	c.t.Helper()
	c.send(realtime.FrameJoin, "join-"+topic, realtime.RoomPayload{Topic: topic})
	f := c.read()
	require.Equal(c.t, realtime.FrameAck, f.Type, string(f.Payload))
}

// expectSilence asserts nothing but pings arrive within d.
func (c *socket) expectSilence(d time.Duration) {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(d))
	for {
		var f realtime.Frame
		if err := websocket.JSON.Receive(c.conn, &f); err != nil {
			return
		}
		require.Equal(c.t, realtime.FramePing, f.Type, "unexpected frame %s: %s", f.Type, string(f.Payload))
	}
}
