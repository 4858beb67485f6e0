package main

import (
	"context"
	"log"

	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/bootstrap"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/config"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/server"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/internal/tracer"
	"github.com/saksham-soti1/IroncladLegal-API-BOT/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Audit Service...")
		if err := container.AuditService.Consume(context.Background()); err != nil {
			log.Printf("Background Audit Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
