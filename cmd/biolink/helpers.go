package biolink

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/saadjs/biolink/internal/app"
	"github.com/saadjs/biolink/internal/classifier"
	"github.com/saadjs/biolink/internal/db"
	"github.com/saadjs/biolink/internal/logging"
	"github.com/saadjs/biolink/internal/model"
	"github.com/saadjs/biolink/internal/service"
	"github.com/saadjs/biolink/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type aiBackend interface {
	classifier.Classifier
	classifier.InsightGenerator
}

// newAIBackend is replaced in tests.
var newAIBackend = func(cfg app.GeminiConfig, logger logrus.FieldLogger) aiBackend {
	return classifier.NewGemini(classifier.GeminiOptions{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
}

type runtime struct {
	cfg     app.Config
	logger  *logrus.Logger
	session *service.Session
}

func (rt *runtime) ai() aiBackend {
	return newAIBackend(rt.cfg.Gemini, rt.logger.WithField("component", "gemini"))
}

func loadConfig() (app.Config, error) {
	dir, err := app.DefaultConfigDir()
	if err != nil {
		dir = ""
	}
	return app.LoadConfig(dir)
}

func resolveDBPath(cfg app.Config) (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if strings.TrimSpace(cfg.DBPath) != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

// withSession opens the database, loads the ledger and hands a session to
// run. Saves happen inside the session as mutations are applied.
func withSession(cmd *cobra.Command, run func(ctx context.Context, rt *runtime) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	path, err := resolveDBPath(cfg)
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	storage := store.NewSQLiteStorage(sqldb, cfg.StateKey)
	session := service.OpenSession(ctx, storage, logger.WithField("db", path))
	return run(ctx, &runtime{cfg: cfg, logger: logger, session: session})
}

// resolveDateKey returns date, or today's key when date is empty.
func resolveDateKey(s *service.Session, date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.Today(), nil
	}
	if err := service.ValidateDateKey(date); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// entryTime picks the timestamp of a new entry. Without --time an entry on
// today is stamped now and an entry on another day at noon.
func entryTime(s *service.Session, dateKey, timeStr string) (time.Time, error) {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		now := s.Now()
		if model.DateKey(now) == dateKey {
			return now, nil
		}
		timeStr = "12:00"
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", dateKey+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --time %q (expected HH:MM)", timeStr)
	}
	return t, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Local().Format("15:04")
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}
