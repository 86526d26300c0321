package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"slidesmith/config"
	"slidesmith/database"
	"slidesmith/export"
	"slidesmith/layouts"
	"slidesmith/logger"
	"slidesmith/renderer"
	"slidesmith/store"
	"slidesmith/webserver"
)

// contextKey is a typed key for context.WithValue to avoid collisions.
type contextKey string

const appContextKey contextKey = "app"

// App struct
type App struct {
	ctx      context.Context
	registry *ServiceRegistry
	settings config.Settings
	logger   *logger.Logger

	// Preference stores, each file-backed under the data directory.
	llmStore    *store.Store
	themeStore  *store.Store
	footerStore *store.Store

	layoutRegistry *layouts.Registry
	pageRenderer   *renderer.PageRenderer

	db                  *sql.DB
	presentationService *database.PresentationService
	artifactService     *database.ArtifactService

	chromeExport   *export.ChromeExportService
	pptExport      *export.GoPPTService
	handoutExport  *export.HandoutService
	staticServer   *webserver.StaticServer
	connectionTest *ConnectionTestService

	// Number of exports currently running, used to guard window close.
	activeExports atomic.Int32

	// startupDone is closed when startup() finishes, used by background
	// goroutines to wait for full initialization.
	startupDone chan struct{}
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{
		logger:      logger.NewLogger(),
		startupDone: make(chan struct{}),
	}
}

// Log writes a detailed log entry if logging is enabled
func (a *App) Log(message string) {
	a.logger.Log(message)
}

// databaseService adapts the sqlite connection to the Service lifecycle so
// the registry owns opening and closing it.
type databaseService struct {
	dataDir string
	db      *sql.DB
}

func (s *databaseService) Name() string { return "database" }

func (s *databaseService) Initialize(ctx context.Context) error {
	db, err := database.InitDB(s.dataDir)
	if err != nil {
		return WrapError(s.Name(), "initialize", err)
	}
	s.db = db
	return nil
}

func (s *databaseService) Shutdown() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	defer close(a.startupDone)

	// Store App instance in context for system tray access
	ctx = context.WithValue(ctx, appContextKey, a)
	a.ctx = ctx

	// Start system tray (Windows/Linux only, handled by build tags)
	runSystray(ctx)

	a.settings = config.Load()
	dataDir := a.settings.DataDir
	if dataDir == "" {
		fmt.Println("Error: no usable data directory, exports are disabled")
		return
	}
	_ = os.MkdirAll(dataDir, 0755)

	if err := a.logger.Init(dataDir); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
	}
	a.Log("[STARTUP] Data directory: " + dataDir)

	a.registry = NewServiceRegistry(ctx, a.Log)
	a.Log("[STARTUP] ServiceRegistry created")

	// Preference stores. An externally supplied config path wins over the
	// default location inside the data directory.
	llmPath := a.settings.UserConfigPath
	if llmPath == "" {
		llmPath = filepath.Join(dataDir, "userConfig.json")
	}
	a.llmStore = store.New(llmPath, a.Log)
	a.themeStore = store.New(filepath.Join(dataDir, "theme.json"), a.Log)
	a.footerStore = store.New(filepath.Join(dataDir, "footer.json"), a.Log)
	a.Log("[STARTUP] Preference stores ready")

	a.layoutRegistry = layouts.NewRegistry(a.settings.LayoutsDir, a.Log)
	a.Log("[STARTUP] Layout registry created for " + a.settings.LayoutsDir)

	// 1. Register database (critical) - presentations cannot work without it
	dbSvc := &databaseService{dataDir: dataDir}
	if err := a.registry.RegisterCritical(dbSvc); err != nil {
		a.Log(fmt.Sprintf("[STARTUP] Failed to register database service: %v", err))
	}

	// 2. Register static gateway (non-critical) - exports still produce
	// files on disk even when serving fails
	if err := ValidatePositiveInt("staticPort", a.settings.StaticPort); err != nil {
		a.Log(fmt.Sprintf("[STARTUP] Invalid static port (%v), using default %d", err, config.DefaultStaticPort))
		a.settings.StaticPort = config.DefaultStaticPort
	}
	a.staticServer = webserver.NewStaticServer(dataDir, a.settings.TempDir, a.settings.StaticPort, a.Log)
	if err := a.registry.Register(a.staticServer); err != nil {
		a.Log(fmt.Sprintf("[STARTUP] Failed to register StaticServer: %v", err))
	}

	// 3. Register chrome export service (non-critical)
	a.chromeExport = export.NewChromeExportService(dataDir, a.Log)
	if err := a.registry.Register(a.chromeExport); err != nil {
		a.Log(fmt.Sprintf("[STARTUP] Failed to register ChromeExportService: %v", err))
	}

	// 4. Register connection test service (non-critical)
	a.connectionTest = NewConnectionTestService(a.Log)
	if err := a.registry.Register(a.connectionTest); err != nil {
		a.Log(fmt.Sprintf("[STARTUP] Failed to register ConnectionTestService: %v", err))
	}

	if err := a.registry.InitializeAll(); err != nil {
		a.Log(fmt.Sprintf("[STARTUP] Service initialization failed: %v", err))
		return
	}

	a.db = dbSvc.db
	a.presentationService = database.NewPresentationService(a.db)
	a.artifactService = database.NewArtifactService(dataDir)
	a.pptExport = export.NewGoPPTService(dataDir)
	a.handoutExport = export.NewHandoutService(dataDir)

	baseURL := a.settings.RendererBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", a.staticServer.Port())
	}
	a.pageRenderer = renderer.New(baseURL)
	a.Log("[STARTUP] Page renderer base URL: " + baseURL)

	a.Log("[STARTUP] All services initialized")
}

// onBeforeClose is called when the application is about to close
func (a *App) onBeforeClose(ctx context.Context) (prevent bool) {
	if a.activeExports.Load() == 0 {
		return false
	}

	dialog, err := runtime.MessageDialog(ctx, runtime.MessageDialogOptions{
		Type:          runtime.QuestionDialog,
		Title:         "Export in progress",
		Message:       "An export is still running. Quit anyway?",
		Buttons:       []string{"Cancel", "Quit"},
		DefaultButton: "Cancel",
		CancelButton:  "Cancel",
	})
	if err != nil {
		a.Log(fmt.Sprintf("[CLOSE-DIALOG] Error showing dialog: %v", err))
		return true
	}

	// Windows may return standard button values instead of custom text
	if dialog == "Quit" || dialog == "Yes" || dialog == "OK" || dialog == "Ok" {
		a.Log("[CLOSE-DIALOG] Allowing application to close")
		return false
	}
	a.Log("[CLOSE-DIALOG] Preventing application close")
	return true
}

// shutdown is called when the application is closing to clean up resources
func (a *App) shutdown(ctx context.Context) {
	// Give a running export a short grace window before tearing down
	deadline := time.Now().Add(3 * time.Second)
	for a.activeExports.Load() > 0 && time.Now().Before(deadline) {
		time.Sleep(100 * time.Millisecond)
	}

	// Shutdown all registered services via ServiceRegistry (reverse
	// registration order)
	if a.registry != nil {
		a.registry.ShutdownAll()
	}
	// Close logger last - other services may need to log during shutdown
	a.logger.Close()
}

// GetStaticPort reports the static gateway listen port so the frontend
// can compose artifact download URLs.
func (a *App) GetStaticPort() int {
	if a.staticServer != nil {
		return a.staticServer.Port()
	}
	return a.settings.StaticPort
}

// ShowAbout displays the about dialog
func (a *App) ShowAbout() {
	runtime.MessageDialog(a.ctx, runtime.MessageDialogOptions{
		Type:    runtime.InfoDialog,
		Title:   "About SlideSmith",
		Message: "SlideSmith - Presentation rendering and export",
	})
}
