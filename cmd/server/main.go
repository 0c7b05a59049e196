package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/pokerjest/workshopTitleTool/internal/api"
	"github.com/pokerjest/workshopTitleTool/internal/config"
	"github.com/pokerjest/workshopTitleTool/internal/db"
	"github.com/pokerjest/workshopTitleTool/internal/event"
	"github.com/pokerjest/workshopTitleTool/internal/scheduler"
	"github.com/pokerjest/workshopTitleTool/internal/service"
	"github.com/pokerjest/workshopTitleTool/internal/worker"
	"github.com/pokerjest/workshopTitleTool/internal/workshop"
)

func main() {
	// 1. Load Config
	if err := config.LoadConfig("."); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	// 2. Setup Gin Mode
	gin.SetMode(cfg.Server.Mode)

	// 转换为绝对路径日志一下
	absPath, _ := filepath.Abs(cfg.Database.Path)
	log.Printf("Initializing database at: %s", absPath)
	if err := db.InitDB(cfg.Database.Path); err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.CloseDB()

	canon, err := service.NewCanonicalizer(cfg.Title)
	if err != nil {
		log.Fatalf("Failed to load title dictionary: %v", err)
	}

	client := workshop.NewClient(cfg.Workshop.APIURL, cfg.Workshop.Timeout)
	client.SetProxy(cfg.Workshop.Proxy)

	catalog := service.NewCatalogService(db.DB, canon, client, event.GlobalBus)
	catalog.Workers = cfg.Sync.Workers

	// Rename worker (只有配置了 library.dir 才会真正执行)
	renameWorker := &worker.RenameWorker{Store: catalog, LibraryDir: cfg.Library.Dir, Mode: cfg.Library.Mode}
	renameWorker.Start(event.GlobalBus)

	// Start Scheduler
	sch := scheduler.NewManager(catalog, cfg.Sync.Interval)
	sch.Start()
	defer sch.Stop()

	r := gin.Default()
	api.InitRoutes(r, &api.Server{Canon: canon, Catalog: catalog, Bus: event.GlobalBus})

	port := fmt.Sprintf("%d", cfg.Server.Port)
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
