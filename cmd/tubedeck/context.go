package main

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/auth"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/config"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/dashboard"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/database"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/eventlog"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/logging"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/notes"
	"github.com/MarcoPoloResearchLab/tubedeck/internal/video"
)

// appEnv carries the shared dependencies a command run assembles: resolved
// configuration, logger, the local store with its recorder, and the caller
// session. Close drains the recorder so every event is durably written
// before the process exits.
type appEnv struct {
	config   config.AppConfig
	logger   *zap.Logger
	db       *gorm.DB
	recorder *eventlog.Recorder
	notesSvc *notes.Service
	session  *auth.Session
}

func newAppEnv() (*appEnv, error) {
	appConfig, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewLogger(appConfig.LogLevel)
	if err != nil {
		return nil, err
	}
	return &appEnv{config: appConfig, logger: logger}, nil
}

// resolveSession validates the configured session token. An absent token is
// not an error: the dashboard runs signed out, readers fall back to demo
// data and the event log stays silent.
func (env *appEnv) resolveSession() error {
	token := strings.TrimSpace(env.config.SessionToken)
	if token == "" {
		env.session = nil
		return nil
	}

	validator, err := auth.NewSessionValidator(auth.SessionValidatorConfig{
		SigningSecret: []byte(env.config.SessionSigningSecret),
		Issuer:        env.config.SessionIssuer,
		Audience:      env.config.SessionAudience,
	})
	if err != nil {
		return err
	}
	session, err := validator.Validate(token)
	if err != nil {
		return err
	}
	env.session = session
	return nil
}

func (env *appEnv) openStore() error {
	db, err := database.OpenSQLite(env.config.DatabasePath, env.logger)
	if err != nil {
		return err
	}
	env.db = db

	recorder, err := eventlog.NewRecorder(eventlog.RecorderConfig{
		Database:   db,
		IDProvider: eventlog.NewUUIDProvider(),
		Logger:     env.logger,
	})
	if err != nil {
		return err
	}
	env.recorder = recorder

	service, err := notes.NewService(notes.ServiceConfig{
		Database:   db,
		IDProvider: notes.NewUUIDProvider(),
		Logger:     env.logger,
	})
	if err != nil {
		return err
	}
	env.notesSvc = service
	return nil
}

func (env *appEnv) buildShell() (*dashboard.Shell, error) {
	if strings.TrimSpace(env.config.VideoID) == "" {
		return nil, errors.New("a video id is required: pass --video-id or set TUBEDECK_VIDEO_ID")
	}

	client, err := video.NewClient(video.ClientConfig{
		Endpoint: env.config.ProxyEndpoint,
		AnonKey:  env.config.ProxyAnonKey,
		Logger:   env.logger,
	})
	if err != nil {
		return nil, err
	}

	return dashboard.NewShell(dashboard.ShellConfig{
		Session:      env.session,
		VideoID:      env.config.VideoID,
		VideoClient:  client,
		NotesService: env.notesSvc,
		Events:       env.recorder,
		Logger:       env.logger,
	})
}

func (env *appEnv) Close() {
	if env.recorder != nil {
		env.recorder.Close()
	}
	if env.db != nil {
		if sqlDB, err := env.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if env.logger != nil {
		env.logger.Sync() //nolint:errcheck
	}
}

// setupDashboard assembles everything a panel command needs.
func setupDashboard() (*appEnv, *dashboard.Shell, error) {
	env, err := newAppEnv()
	if err != nil {
		return nil, nil, err
	}
	if err := env.resolveSession(); err != nil {
		env.Close()
		return nil, nil, err
	}
	if err := env.openStore(); err != nil {
		env.Close()
		return nil, nil, err
	}
	shell, err := env.buildShell()
	if err != nil {
		env.Close()
		return nil, nil, err
	}
	return env, shell, nil
}
