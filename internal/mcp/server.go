// ABOUTME: MCP server setup for the fitplan profile and plan stores.
// ABOUTME: Wraps the MCP server with storage and recommendation access.
package mcp

import (
	"context"

	"github.com/harperreed/fitplan/internal/labels"
	"github.com/harperreed/fitplan/internal/models"
	"github.com/harperreed/fitplan/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// Recommender generates plan text for a profile.
type Recommender interface {
	RequestPlan(ctx context.Context, kind models.PlanKind, p *models.Profile, additionalInfo string) (string, error)
}

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	stores    *storage.Stores
	rec       Recommender
	lang      labels.Lang
	log       zerolog.Logger
}

// NewServer creates a new MCP server over stores. rec may be nil, in which
// case generate_plan reports that generation is unavailable.
func NewServer(stores *storage.Stores, rec Recommender, lang labels.Lang, logger zerolog.Logger) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitplan",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		stores:    stores,
		rec:       rec,
		lang:      lang,
		log:       logger.With().Str("component", "mcp").Logger(),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// loadProfile reads the saved profile. A read failure is logged and treated
// as no profile.
func (s *Server) loadProfile() (*models.Profile, bool) {
	p, found, err := s.stores.Profile.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load profile; treating as absent")
		return nil, false
	}
	return p, found
}

// loadPlans reads every saved plan in store. A read failure is logged and
// treated as an empty list.
func (s *Server) loadPlans(store *storage.PlanStore) []models.PlanRecord {
	records, err := store.LoadAll()
	if err != nil {
		s.log.Warn().Err(err).Str("kind", string(store.Kind())).Msg("failed to load plans; treating as empty")
		return []models.PlanRecord{}
	}
	return records
}
