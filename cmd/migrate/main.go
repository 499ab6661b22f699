// Command migrate creates the Spanner instance and database when missing and
// applies the DDL files under -migrations in lexical order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/joho/godotenv"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

const defaultDatabase = "projects/test-project/instances/dev-instance/databases/pricing-db"

type databasePath struct {
	Project  string
	Instance string
	Database string
}

func (p databasePath) instanceName() string {
	return fmt.Sprintf("projects/%s/instances/%s", p.Project, p.Instance)
}

func (p databasePath) String() string {
	return fmt.Sprintf("%s/databases/%s", p.instanceName(), p.Database)
}

// parseDatabasePath splits "projects/<p>/instances/<i>/databases/<d>".
func parseDatabasePath(raw string) (databasePath, error) {
	parts := strings.Split(strings.Trim(raw, "/"), "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return databasePath{}, fmt.Errorf("invalid spanner database path %q", raw)
	}
	for _, part := range []string{parts[1], parts[3], parts[5]} {
		if part == "" {
			return databasePath{}, fmt.Errorf("invalid spanner database path %q", raw)
		}
	}
	return databasePath{Project: parts[1], Instance: parts[3], Database: parts[5]}, nil
}

func main() {
	_ = godotenv.Load()

	dbFlag := flag.String("database", getEnvOrDefault(config.EnvSpannerDB, defaultDatabase), "Spanner database path")
	migrateDir := flag.String("migrations", "migrations", "Directory containing migration SQL files")
	flag.Parse()

	log := logger.New(logger.Options{
		ServiceName: "pricing-migrate",
		Level:       logger.ParseLevel(os.Getenv(config.EnvLogLevel)),
		Format:      os.Getenv(config.EnvLogFormat),
	})
	ctx := context.Background()

	if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
		log.Info(log.WithField(ctx, "emulator", host), "using spanner emulator")
	}

	if err := run(ctx, log, *dbFlag, *migrateDir); err != nil {
		log.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
	log.Info(ctx, "migrations completed")
}

func run(ctx context.Context, log *logger.Logger, rawPath, dir string) error {
	path, err := parseDatabasePath(rawPath)
	if err != nil {
		return err
	}
	ctx = log.WithField(ctx, "database", path.String())

	if err := ensureInstance(ctx, log, path); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}
	if err := ensureDatabase(ctx, log, path); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	if err := applyMigrations(ctx, log, path, dir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func ensureInstance(ctx context.Context, log *logger.Logger, path databasePath) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: path.instanceName()})
	if err == nil {
		log.Debug(ctx, "instance already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		// Without instance admin rights the database may still be usable.
		log.Warn(ctx, "unexpected error checking instance", err)
		return nil
	}

	log.Info(ctx, "creating instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + path.Project,
		InstanceId: path.Instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", path.Project),
			DisplayName: "Pricing Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create instance: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		log.Warn(ctx, "instance creation did not complete cleanly", err)
	}
	return nil
}

func ensureDatabase(ctx context.Context, log *logger.Logger, path databasePath) error {
	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: path.String()})
	if err == nil {
		log.Debug(ctx, "database already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			log.Warn(ctx, "proceeding with database in emulator mode", err)
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	log.Info(ctx, "creating database")
	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          path.instanceName(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", path.Database),
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil
		}
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

func applyMigrations(ctx context.Context, log *logger.Logger, path databasePath, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		return errors.New("no migration files found in " + dir)
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	for _, file := range files {
		name := filepath.Base(file)
		fileCtx := log.WithField(ctx, "migration", name)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   path.String(),
			Statements: splitDDLStatements(string(content)),
		})
		if err != nil {
			if status.Code(err) == codes.FailedPrecondition || status.Code(err) == codes.AlreadyExists {
				log.Warn(fileCtx, "migration already applied", err)
				continue
			}
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}
		log.Info(fileCtx, "migration applied")
	}
	return nil
}

// splitDDLStatements drops "--" comment lines and splits on ";".
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
