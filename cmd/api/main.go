package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/metrics"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/models"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/repository"
)

type application struct {
	errorLog   *log.Logger
	infoLog    *log.Logger
	DB         dataStore
	users      *repository.UserRepository
	metrics    *metrics.Metrics
	jwtSecret  []byte
	orderQueue chan models.Order
	workerDone chan struct{}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	addr := flag.String("addr", ":5000", "HTTP network address")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		errorLog.Fatal("MONGODB_URI environment variable not found")
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "medcare"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		errorLog.Fatal("JWT_SECRET environment variable not found")
	}

	ctx := context.Background()

	db, err := models.OpenMongoDB(ctx, uri, dbName)
	if err != nil {
		errorLog.Fatal(err)
	}
	infoLog.Println("Connected to database!")

	appMetrics, err := metrics.Init(ctx, "medcare-api",
		os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true")
	if err != nil {
		errorLog.Fatal(err)
	}

	app := &application{
		errorLog:   errorLog,
		infoLog:    infoLog,
		DB:         db,
		users:      &repository.UserRepository{Collection: db.Users},
		metrics:    appMetrics,
		jwtSecret:  []byte(secret),
		orderQueue: make(chan models.Order, 64),
		workerDone: make(chan struct{}),
	}

	go app.orderWorker()

	srv := &http.Server{
		Addr:     *addr,
		ErrorLog: errorLog,
		Handler:  app.routes(),
	}

	go func() {
		infoLog.Printf("Starting MedCare API on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLog.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infoLog.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Quiesce the server before closing the queue: in-flight handlers may
	// still be enqueueing orders. The worker drains what is left before the
	// database goes away.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errorLog.Println("Server shutdown:", err)
	}
	close(app.orderQueue)
	<-app.workerDone

	if err := appMetrics.Shutdown(shutdownCtx); err != nil {
		errorLog.Println("Metrics shutdown:", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		errorLog.Println("Database close:", err)
	}
}
