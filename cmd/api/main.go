package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sainiharshit322/personnel-empowerment/internal/application"
	appai "github.com/sainiharshit322/personnel-empowerment/internal/application/ai"
	appanalytics "github.com/sainiharshit322/personnel-empowerment/internal/application/analytics"
	appexport "github.com/sainiharshit322/personnel-empowerment/internal/application/export"
	appquestions "github.com/sainiharshit322/personnel-empowerment/internal/application/questions"
	appsurveys "github.com/sainiharshit322/personnel-empowerment/internal/application/surveys"
	"github.com/sainiharshit322/personnel-empowerment/internal/config"
	aiclient "github.com/sainiharshit322/personnel-empowerment/internal/infra/ai/openai"
	"github.com/sainiharshit322/personnel-empowerment/internal/infra/db/mongodb"
	"github.com/sainiharshit322/personnel-empowerment/internal/infra/httpserver"
	minioStore "github.com/sainiharshit322/personnel-empowerment/internal/infra/storage"
	"github.com/sainiharshit322/personnel-empowerment/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect MongoDB
	repo, err := mongodb.NewSurveyRepository(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("mongodb connect error: %v", err)
	}
	defer repo.Close(context.Background())

	// init AI client (sentiment + question generation)
	ai := aiclient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	annotator := appai.NewService(ai, cfg.Sentiment.Workers)

	// init services
	surveysSvc := &appsurveys.Service{
		Repo:      repo,
		Annotator: annotator,
		Clock:     application.SystemClock{},
	}
	analyticsSvc := &appanalytics.Service{
		Repo:      repo,
		Annotator: annotator,
	}
	questionsSvc := &appquestions.Service{
		Generator: ai,
		Company:   cfg.Questions.Company,
		Count:     cfg.Questions.Count,
		Fallback:  cfg.Questions.Fallback,
	}

	// optional export target
	var exportSvc *appexport.Service
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		exportSvc = &appexport.Service{
			Analytics: analyticsSvc,
			Store:     store,
			Clock:     application.SystemClock{},
		}
	}

	// init router
	router := httpserver.NewRouter(surveysSvc, analyticsSvc, questionsSvc, httpserver.Options{
		DBName:         cfg.Mongo.Database,
		StaticDir:      cfg.Server.StaticDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Export:         exportSvc,
	})

	handler := middleware.LoggingMiddleware(
		middleware.MetricsMiddleware(
			middleware.RateLimitMiddleware(100, 50)(router),
		),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
