// ABOUTME: MCP resource implementations for fitplan.
// ABOUTME: Provides fitplan://profile, fitplan://diets and fitplan://workouts resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/fitplan/internal/metrics"
	"github.com/harperreed/fitplan/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	profileURI  = "fitplan://profile"
	dietsURI    = "fitplan://diets"
	workoutsURI = "fitplan://workouts"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         profileURI,
		Name:        "Health Profile",
		Description: "The saved profile with BMI, BMR and TDEE",
		MIMEType:    "application/json",
	}, s.handleProfileResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dietsURI,
		Name:        "Saved Diet Plans",
		Description: "Every saved diet plan, oldest first",
		MIMEType:    "application/json",
	}, s.handlePlansResource(models.PlanDiet, dietsURI))

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         workoutsURI,
		Name:        "Saved Workout Plans",
		Description: "Every saved workout plan, oldest first",
		MIMEType:    "application/json",
	}, s.handlePlansResource(models.PlanWorkout, workoutsURI))
}

// Resource handlers

func (s *Server) handleProfileResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	p, found := s.loadProfile()

	result := map[string]any{"found": found}
	if found {
		report := metrics.Calculate(p)
		result["profile"] = p
		result["labels"] = profileLabels(s.lang, p)
		result["metrics"] = report
		result["bmi_category_text"] = report.CategoryText(s.lang)
	}

	return jsonResource(profileURI, result)
}

func (s *Server) handlePlansResource(kind models.PlanKind, uri string) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		store, err := s.stores.Plans(kind)
		if err != nil {
			return nil, err
		}
		records := s.loadPlans(store)

		plans := make([]planOutput, 0, len(records))
		for _, r := range records {
			plans = append(plans, toPlanOutput(kind, r, true))
		}

		return jsonResource(uri, map[string]any{
			"kind":  kind,
			"count": len(plans),
			"plans": plans,
		})
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
