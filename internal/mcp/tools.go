// ABOUTME: MCP tool implementations for fitplan.
// ABOUTME: Exposes the profile, metrics, plan generation and saved plan CRUD.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/fitplan/internal/labels"
	"github.com/harperreed/fitplan/internal/metrics"
	"github.com/harperreed/fitplan/internal/models"
	"github.com/harperreed/fitplan/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const previewLength = 80

var errNoProfile = errors.New("no profile saved; call save_profile first")

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the saved health profile with display labels",
	}, s.handleGetProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_profile",
		Description: "Create or update the health profile. Omitted fields keep their saved value",
	}, s.handleSaveProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_metrics",
		Description: "Compute BMI, BMI category, BMR and TDEE from the saved profile",
	}, s.handleGetMetrics)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_plan",
		Description: "Generate a weekly diet or workout plan for the saved profile, optionally saving it",
	}, s.handleGeneratePlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_plan",
		Description: "Save plan text as a new diet or workout plan",
	}, s.handleSavePlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_plans",
		Description: "List saved diet or workout plans, oldest first",
	}, s.handleListPlans)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_plan",
		Description: "Get the full text of a saved plan by ID or ID prefix",
	}, s.handleGetPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_plan",
		Description: "Delete a saved plan by ID or ID prefix",
	}, s.handleDeletePlan)
}

// Tool input/output types

type emptyInput struct{}

type profileOutput struct {
	Found   bool              `json:"found"`
	Profile *models.Profile   `json:"profile,omitempty"`
	Labels  map[string]string `json:"labels,omitempty"`
	Message string            `json:"message"`
}

type saveProfileInput struct {
	Name             *string  `json:"name,omitempty" jsonschema:"Display name"`
	Age              *int     `json:"age,omitempty" jsonschema:"Age in years"`
	Gender           *string  `json:"gender,omitempty" jsonschema:"male or female"`
	Height           *float64 `json:"height,omitempty" jsonschema:"Height in centimeters"`
	Weight           *float64 `json:"weight,omitempty" jsonschema:"Weight in kilograms"`
	ActivityLevel    *string  `json:"activity_level,omitempty" jsonschema:"sedentary, light, moderate, active or veryActive"`
	Goal             *string  `json:"goal,omitempty" jsonschema:"weightLoss, maintenance or muscleGain"`
	HealthConditions *string  `json:"health_conditions,omitempty" jsonschema:"Free text health conditions, empty to clear"`
}

type metricsOutput struct {
	Report       metrics.Report `json:"report"`
	CategoryText string         `json:"bmi_category_text,omitempty"`
	Message      string         `json:"message"`
}

type generatePlanInput struct {
	Kind           string `json:"kind" jsonschema:"diet or workout"`
	AdditionalInfo string `json:"additional_info,omitempty" jsonschema:"Extra preferences or constraints for the plan"`
	Save           bool   `json:"save,omitempty" jsonschema:"Save the generated plan"`
}

type generatePlanOutput struct {
	Kind    string `json:"kind"`
	Plan    string `json:"plan"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

type savePlanInput struct {
	Kind string `json:"kind" jsonschema:"diet or workout"`
	Plan string `json:"plan" jsonschema:"Plan text to save"`
}

type planOutput struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`
	Plan        string `json:"plan,omitempty"`
	Preview     string `json:"preview,omitempty"`
	Message     string `json:"message,omitempty"`
}

type listPlansInput struct {
	Kind  string `json:"kind" jsonschema:"diet or workout"`
	Limit int    `json:"limit,omitempty" jsonschema:"Return only the most recent N plans"`
}

type listPlansOutput struct {
	Kind  string       `json:"kind"`
	Count int          `json:"count"`
	Plans []planOutput `json:"plans"`
}

type planRefInput struct {
	Kind string `json:"kind" jsonschema:"diet or workout"`
	ID   string `json:"id" jsonschema:"Plan ID or unique prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, profileOutput, error) {
	p, found := s.loadProfile()
	if !found {
		return nil, profileOutput{Message: errNoProfile.Error()}, nil
	}

	return nil, profileOutput{
		Found:   true,
		Profile: p,
		Labels:  profileLabels(s.lang, p),
		Message: fmt.Sprintf("Profile for %s", p.Name),
	}, nil
}

func (s *Server) handleSaveProfile(ctx context.Context, req *mcp.CallToolRequest, input saveProfileInput) (*mcp.CallToolResult, profileOutput, error) {
	existing, _ := s.loadProfile()

	patch := models.ProfilePatch{
		Name:             input.Name,
		Age:              input.Age,
		Height:           input.Height,
		Weight:           input.Weight,
		HealthConditions: input.HealthConditions,
	}
	if input.Gender != nil {
		g := models.Gender(*input.Gender)
		patch.Gender = &g
	}
	if input.ActivityLevel != nil {
		a := models.ActivityLevel(*input.ActivityLevel)
		patch.ActivityLevel = &a
	}
	if input.Goal != nil {
		g := models.Goal(*input.Goal)
		patch.Goal = &g
	}

	p := patch.Apply(existing)
	if err := s.stores.Profile.Save(p); err != nil {
		return nil, profileOutput{}, fmt.Errorf("failed to save profile: %w", err)
	}

	return nil, profileOutput{
		Found:   true,
		Profile: p,
		Labels:  profileLabels(s.lang, p),
		Message: fmt.Sprintf("Saved profile for %s", p.Name),
	}, nil
}

func (s *Server) handleGetMetrics(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, metricsOutput, error) {
	p, found := s.loadProfile()
	if !found {
		return nil, metricsOutput{}, errNoProfile
	}

	report := metrics.Calculate(p)
	out := metricsOutput{Report: report, CategoryText: report.CategoryText(s.lang)}

	var parts []string
	if report.BMI != nil {
		parts = append(parts, fmt.Sprintf("BMI %.1f (%s)", *report.BMI, out.CategoryText))
	}
	if report.BMR != nil {
		parts = append(parts, fmt.Sprintf("BMR %d kcal", *report.BMR))
	}
	if report.TDEE != nil {
		parts = append(parts, fmt.Sprintf("TDEE %d kcal", *report.TDEE))
	}
	out.Message = strings.Join(parts, ", ")
	return nil, out, nil
}

func (s *Server) handleGeneratePlan(ctx context.Context, req *mcp.CallToolRequest, input generatePlanInput) (*mcp.CallToolResult, generatePlanOutput, error) {
	kind, store, err := s.planStore(input.Kind)
	if err != nil {
		return nil, generatePlanOutput{}, err
	}
	if s.rec == nil {
		return nil, generatePlanOutput{}, errors.New("plan generation is not configured")
	}

	p, found := s.loadProfile()
	if !found {
		return nil, generatePlanOutput{}, errNoProfile
	}

	text, err := s.rec.RequestPlan(ctx, kind, p, input.AdditionalInfo)
	if err != nil {
		return nil, generatePlanOutput{}, fmt.Errorf("failed to generate %s plan: %w", kind, err)
	}

	out := generatePlanOutput{Kind: string(kind), Plan: text, Message: fmt.Sprintf("Generated %s plan", kind)}
	if input.Save {
		rec, err := store.Append(text)
		if err != nil {
			return nil, generatePlanOutput{}, fmt.Errorf("failed to save %s plan: %w", kind, err)
		}
		out.ID = rec.ID
		out.Message = fmt.Sprintf("Generated and saved %s plan (ID: %s)", kind, rec.ID)
	}
	return nil, out, nil
}

func (s *Server) handleSavePlan(ctx context.Context, req *mcp.CallToolRequest, input savePlanInput) (*mcp.CallToolResult, planOutput, error) {
	kind, store, err := s.planStore(input.Kind)
	if err != nil {
		return nil, planOutput{}, err
	}

	rec, err := store.Append(input.Plan)
	if err != nil {
		return nil, planOutput{}, fmt.Errorf("failed to save %s plan: %w", kind, err)
	}

	out := toPlanOutput(kind, rec, false)
	out.Message = fmt.Sprintf("Saved %s plan (ID: %s)", kind, rec.ID)
	return nil, out, nil
}

func (s *Server) handleListPlans(ctx context.Context, req *mcp.CallToolRequest, input listPlansInput) (*mcp.CallToolResult, listPlansOutput, error) {
	kind, store, err := s.planStore(input.Kind)
	if err != nil {
		return nil, listPlansOutput{}, err
	}

	records := s.loadPlans(store)
	if input.Limit > 0 && len(records) > input.Limit {
		records = records[len(records)-input.Limit:]
	}

	out := listPlansOutput{Kind: string(kind), Count: len(records), Plans: make([]planOutput, 0, len(records))}
	for _, r := range records {
		out.Plans = append(out.Plans, toPlanOutput(kind, r, false))
	}
	return nil, out, nil
}

func (s *Server) handleGetPlan(ctx context.Context, req *mcp.CallToolRequest, input planRefInput) (*mcp.CallToolResult, planOutput, error) {
	kind, store, err := s.planStore(input.Kind)
	if err != nil {
		return nil, planOutput{}, err
	}

	rec, err := store.Find(input.ID)
	if err != nil {
		return nil, planOutput{}, fmt.Errorf("failed to get %s plan: %w", kind, err)
	}
	return nil, toPlanOutput(kind, rec, true), nil
}

func (s *Server) handleDeletePlan(ctx context.Context, req *mcp.CallToolRequest, input planRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	kind, store, err := s.planStore(input.Kind)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	rec, err := store.Find(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete %s plan: %w", kind, err)
	}
	if err := store.Remove(rec.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete %s plan: %w", kind, err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %s plan: %s", kind, rec.ID),
	}, nil
}

// Helpers

func (s *Server) planStore(rawKind string) (models.PlanKind, *storage.PlanStore, error) {
	kind, err := models.ParsePlanKind(rawKind)
	if err != nil {
		return "", nil, err
	}
	store, err := s.stores.Plans(kind)
	if err != nil {
		return "", nil, err
	}
	return kind, store, nil
}

func toPlanOutput(kind models.PlanKind, r models.PlanRecord, full bool) planOutput {
	out := planOutput{
		ID:          r.ID,
		Kind:        string(kind),
		Date:        r.Date.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		DisplayDate: r.DisplayDate(),
	}
	if full {
		out.Plan = r.Plan
	} else {
		out.Preview = r.Preview(previewLength)
	}
	return out
}

func profileLabels(lang labels.Lang, p *models.Profile) map[string]string {
	return map[string]string{
		"gender":         labels.Gender(lang, p.Gender),
		"activity_level": labels.ActivityLevel(lang, p.ActivityLevel),
		"goal":           labels.Goal(lang, p.Goal),
	}
}
