package deps

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/linkvault/internal/backend"
	"github.com/MrSnakeDoc/linkvault/internal/importer"
	"github.com/MrSnakeDoc/linkvault/internal/links"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
	"github.com/MrSnakeDoc/linkvault/internal/session"
	"github.com/MrSnakeDoc/linkvault/internal/view"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time    // for testing, defaults to time.Now
	RequestTimeout time.Duration       // per-request deadline
	AllowedHosts   []string            // Host headers allowed to access the API
	AllowedCIDRS   []string            // IPs allowed to access /infra and /metrics
	TrustProxy     bool                // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins    []string            // browser origins allowed to call the API
	Backend        string              // "memory" | "redis"
	Pinger         backend.Pinger      // health of the storage backend
	Sessions       *session.Provider   // auth lifecycle
	Links          *links.Repository   // link CRUD
	Board          *view.Board         // per-user category views
	Dashboard      *view.AggregateView // cross-category summary
	Importer       *importer.Importer  // bookmarks.yaml import
	Validate       *validator.Validate // request body validation
	Metrics        *metrics.Metrics    // Prometheus collectors
}

// Now returns the current time using TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
