package main

import (
	"flag"
	"fmt"
	"log"

	"partstore-backend/internal/auth"
	"partstore-backend/internal/backup"
	"partstore-backend/internal/config"
	"partstore-backend/internal/database"
	"partstore-backend/internal/eventlog"
	"partstore-backend/internal/inventory"
	"partstore-backend/internal/presence"
	"partstore-backend/internal/revision"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
)

func main() {
	setKey := flag.String("set-api-key", "", "hash the given api key into the key file and exit")
	genKey := flag.Bool("generate-api-key", false, "generate a key, print it, write its hash and exit")
	flag.Parse()

	cfg := config.Load()

	if *genKey {
		key := uuid.NewString()
		if err := auth.SetKey(cfg.APIKeyFile, key); err != nil {
			log.Fatal(err)
		}
		// printed once; only the hash is kept
		fmt.Println(key)
		return
	}
	if *setKey != "" {
		if err := auth.SetKey(cfg.APIKeyFile, *setKey); err != nil {
			log.Fatal(err)
		}
		log.Println("API key updated:", cfg.APIKeyFile)
		return
	}

	if err := eventlog.Open(cfg.LogFile); err != nil {
		log.Printf("[WARN] event log file unavailable: %v", err)
	}

	database.Init(cfg)
	if err := backup.Init(cfg); err != nil {
		log.Fatalf("Cannot create backups dir: %v", err)
	}

	// safety snapshot on every start
	if _, err := backup.Create("backup"); err != nil {
		eventlog.Logf("startup backup failed: %v", err)
	}

	if _, err := auth.LoadKeyHash(cfg.APIKeyFile); err != nil {
		log.Println("[WARN] no API key configured, protected endpoints will refuse requests; run with -generate-api-key")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-API-KEY, X-CLIENT-ID",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Public sync/heartbeat endpoints
	app.Get("/ping", presence.PingHandler())
	app.Get("/last_update", revision.LastUpdateHandler())

	// Everything else requires the API key
	protected := app.Group("")
	protected.Use(auth.RequireAPIKey(cfg))

	// Records
	protected.Get("/items", inventory.ListPartsHandler())
	protected.Post("/items", inventory.UpsertPartHandler())
	protected.Get("/items/:id", inventory.GetPartHandler())
	protected.Put("/items/:id", inventory.UpdatePartHandler())
	protected.Delete("/items/:id", inventory.DeletePartHandler())

	// Stock adjustments
	protected.Post("/sell", inventory.SellHandler())
	protected.Post("/return", inventory.ReturnHandler())

	// Backups
	protected.Post("/backup", backup.CreateBackupHandler())
	protected.Get("/list_backups", backup.ListBackupsHandler())
	protected.Get("/download_backup/:name", backup.DownloadBackupHandler())
	protected.Post("/restore/:name", backup.RestoreBackupHandler())

	// Observability
	protected.Get("/clients", presence.ListClientsHandler())
	protected.Get("/events", eventlog.RecentEventsHandler())

	eventlog.Logf("server listening on port %s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
