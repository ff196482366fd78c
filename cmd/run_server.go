package cmd

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	internalApp "github.com/spacekeep/capture-service/internal/app"
	"github.com/spacekeep/capture-service/internal/dao"
	"github.com/spacekeep/capture-service/internal/routers"
	"github.com/spacekeep/capture-service/internal/task"
	"github.com/spacekeep/capture-service/pkg/logger"
	"github.com/spacekeep/capture-service/pkg/safeclose"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultShutdownTimeout bounds the graceful shutdown of the app
// container.
const DefaultShutdownTimeout = 30 * time.Second

type Server struct {
	logger     *zap.Logger
	config     *internalApp.AppConfig
	db         *gorm.DB
	ut         *ut.UniversalTranslator
	httpServer *http.Server
	sc         *safeclose.SafeClose
	app        *internalApp.App
}

func NewServer(runEnv *runFlags) (*Server, error) {
	appConfig, err := internalApp.LoadConfig(runEnv.config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if len(runEnv.port) > 0 {
		appConfig.Server.HttpPort = runEnv.port
	}

	runMode := runEnv.runMode
	if len(runMode) <= 0 {
		runMode = appConfig.Server.RunMode
	}
	if len(runMode) > 0 {
		gin.SetMode(runMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config: appConfig,
		sc:     safeclose.New(),
	}

	if err := initLoggerWithConfig(s, appConfig); err != nil {
		return nil, fmt.Errorf("initLogger: %w", err)
	}

	db, err := dao.NewDBEngine(&dao.DatabaseConfig{
		Path:            appConfig.Database.Path,
		AutoMigrate:     appConfig.Database.AutoMigrate,
		MaxIdleConns:    appConfig.Database.MaxIdleConns,
		MaxOpenConns:    appConfig.Database.MaxOpenConns,
		ConnMaxLifetime: appConfig.Database.GetConnMaxLifetime(),
		RunMode:         runMode,
	}, s.logger)
	if err != nil {
		return nil, fmt.Errorf("initDatabase: %w", err)
	}
	s.db = db

	app, err := internalApp.NewApp(appConfig, s.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}
	s.app = app

	uni, err := initValidator()
	if err != nil {
		return nil, fmt.Errorf("initValidator: %w", err)
	}
	s.ut = uni

	initScheduler(s)

	s.logger.Warn(fmt.Sprintf("%s v%s Git:%s BuildTime:%s", internalApp.Name, internalApp.Version, internalApp.GitTag, internalApp.BuildTime))
	s.logger.Warn("config loaded", zap.String("path", appConfig.File))

	if httpAddr := appConfig.Server.HttpPort; len(httpAddr) > 0 {
		s.logger.Warn("api_router", zap.String("config.server.HttpPort", httpAddr))
		s.httpServer = &http.Server{
			Addr:           httpAddr,
			Handler:        routers.NewRouter(s.app, s.ut),
			ReadTimeout:    time.Duration(appConfig.Server.ReadTimeout) * time.Second,
			WriteTimeout:   time.Duration(appConfig.Server.WriteTimeout) * time.Second,
			MaxHeaderBytes: 1 << 20,
		}
		s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
			defer done()
			errChan := make(chan error, 1)
			go func() {
				errChan <- s.httpServer.ListenAndServe()
			}()
			select {
			case err := <-errChan:
				s.logger.Error("api service err", zap.Error(err))
				s.sc.SendCloseSignal(err)
			case <-closeSignal:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := s.httpServer.Shutdown(ctx); err != nil {
					s.logger.Error("api service shutdown error", zap.Error(err))
				}
			}
		})
	}

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()
		<-closeSignal
		if s.app != nil {
			ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
			defer cancel()
			if err := s.app.Shutdown(ctx); err != nil {
				s.logger.Error("failed to shutdown app container", zap.Error(err))
			} else {
				s.logger.Info("app container shutdown gracefully")
			}
		}
	})

	return s, nil
}

func initScheduler(s *Server) {
	scheduler := task.NewScheduler(s.logger, s.sc)
	scheduler.AddTask(task.NewDeletionSweepTask(
		s.app.Deletions,
		s.config.Capture.GetSweepInterval(),
		s.logger,
	))
	scheduler.Start()
}

func initLoggerWithConfig(s *Server, cfg *internalApp.AppConfig) error {
	lg, err := logger.NewLogger(logger.Config{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Production: cfg.Log.Production,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	s.logger = lg
	return nil
}

// initValidator hooks the translator into gin binding so validation
// errors come out readable.
func initValidator() (*ut.UniversalTranslator, error) {
	var uni *ut.UniversalTranslator

	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	if ok {
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		uni = ut.New(en.New(), en.New())
		enTran, _ := uni.GetTranslator("en")
		if err := en_translations.RegisterDefaultTranslations(validate, enTran); err != nil {
			return nil, err
		}
	}

	return uni, nil
}

func (s *Server) GetApp() *internalApp.App {
	return s.app
}

func (s *Server) GetConfig() *internalApp.AppConfig {
	return s.config
}
