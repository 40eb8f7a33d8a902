// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs the root command against temp XDG directories and a mock OpenAI server.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/harperreed/fitplan/internal/models"
	"github.com/harperreed/fitplan/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setupTestCLI points config and data at temp directories and returns the
// data home.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Chdir(t.TempDir())

	noColor := color.NoColor
	color.NoColor = true

	t.Cleanup(func() {
		color.NoColor = noColor
		if stores != nil {
			_ = stores.Close()
			stores = nil
		}
		cfg = nil
	})
	return dataHome
}

// resetFlags restores every flag to its default so one run does not leak
// into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, "", args...)
	if err != nil {
		t.Fatalf("fitplan %s failed: %v", strings.Join(args, " "), err)
	}
	return out
}

var kimArgs = []string{
	"profile", "set",
	"--name", "Kim",
	"--age", "30",
	"--gender", "male",
	"--height", "170",
	"--weight", "70",
	"--activity", "sedentary",
	"--goal", "weightLoss",
}

// loadPlans reads saved plans straight from the default sqlite database.
func loadPlans(t *testing.T, dataHome string, kind models.PlanKind) []models.PlanRecord {
	t.Helper()

	db, err := storage.Open(filepath.Join(dataHome, "fitplan", "fitplan.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	s, err := storage.NewStores(db, logger)
	if err != nil {
		t.Fatalf("NewStores failed: %v", err)
	}
	store, err := s.Plans(kind)
	if err != nil {
		t.Fatalf("Plans failed: %v", err)
	}
	records, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	return records
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"short string no truncation", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world", 8, "hello w…"},
		{"empty string", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.width)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"needs padding", "hi", 5, "hi   "},
		{"exact length", "hello", 5, "hello"},
		{"longer than length", "hello world", 5, "hello world"},
		{"empty string", "", 5, "     "},
		{"zero length", "hello", 0, "hello"},
		{"wide characters", "이름", 6, "이름  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padRight(tt.input, tt.length)
			if got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input   string
		want    models.ActivityLevel
		wantErr bool
	}{
		{"moderate", models.ActivityModerate, false},
		{"veryactive", models.ActivityVeryActive, false},
		{" Sedentary ", models.ActivitySedentary, false},
		{"lazy", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseChoice("activity", tt.input, models.AllActivityLevels)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseChoice(%q) expected error, got %q", tt.input, got)
				} else if !strings.Contains(err.Error(), "--activity") {
					t.Errorf("error should name the flag, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseChoice(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseChoice(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "fitplan" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "fitplan")
	}
	for _, name := range []string{"verbose", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]*cobra.Command)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = cmd
	}

	for _, expected := range []string{
		"profile", "metrics", "diet", "workout", "export", "import",
		"migrate", "config", "sync", "mcp", "install-skill", "version",
	} {
		if names[expected] == nil {
			t.Errorf("Expected command %q to be registered", expected)
		}
	}

	for _, kind := range []string{"diet", "workout"} {
		cmd := names[kind]
		if cmd == nil {
			continue
		}
		sub := make(map[string]bool)
		for _, c := range cmd.Commands() {
			sub[c.Name()] = true
		}
		for _, expected := range []string{"generate", "save", "list", "show", "delete"} {
			if !sub[expected] {
				t.Errorf("Expected %s subcommand %q", kind, expected)
			}
		}
	}
}

func TestSkipsStores(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"config", "show"}, true},
		{[]string{"config", "set"}, true},
		{[]string{"migrate"}, true},
		{[]string{"version"}, true},
		{[]string{"install-skill"}, true},
		{[]string{"sync", "status"}, true},
		{[]string{"profile", "show"}, false},
		{[]string{"diet", "list"}, false},
		{[]string{"mcp"}, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			cmd, _, err := rootCmd.Find(tt.args)
			if err != nil {
				t.Fatalf("Find(%v) failed: %v", tt.args, err)
			}
			if got := skipsStores(cmd); got != tt.want {
				t.Errorf("skipsStores(%s) = %v, want %v", cmd.CommandPath(), got, tt.want)
			}
		})
	}
}

func TestVersionCmd(t *testing.T) {
	setupTestCLI(t)

	out := mustRun(t, "version")
	if !strings.Contains(out, "fitplan "+version) {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestProfileSetAndShow(t *testing.T) {
	setupTestCLI(t)

	out := mustRun(t, "profile", "set",
		"--name", "Kim", "--age", "30", "--gender", "female",
		"--height", "162.5", "--weight", "55", "--activity", "light",
		"--goal", "muscleGain", "--conditions", "lactose intolerant")

	for _, want := range []string{"✓ Saved profile for Kim", "여성", "162.5 cm", "55 kg", "근육 증가", "lactose intolerant"} {
		if !strings.Contains(out, want) {
			t.Errorf("profile set output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, "profile", "show")
	for _, want := range []string{"이름", "Kim", "가벼운 운동(주 1-3일)"} {
		if !strings.Contains(out, want) {
			t.Errorf("profile show output missing %q:\n%s", want, out)
		}
	}
}

func TestProfileSetUpdatesOneField(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, kimArgs...)
	mustRun(t, "profile", "set", "--weight", "68.5")

	out := mustRun(t, "profile", "show")
	if !strings.Contains(out, "68.5 kg") {
		t.Errorf("expected updated weight:\n%s", out)
	}
	if !strings.Contains(out, "Kim") || !strings.Contains(out, "170 cm") {
		t.Errorf("other fields should be kept:\n%s", out)
	}
	if !strings.Contains(out, "특이사항 없음") {
		t.Errorf("empty conditions should show the placeholder:\n%s", out)
	}
}

func TestProfileSetErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no flags", []string{"profile", "set"}, "nothing to set"},
		{"missing age", []string{"profile", "set", "--name", "Kim"}, "profile not saved: 나이 (--age)"},
		{"bad gender", []string{"profile", "set", "--gender", "other"}, "invalid --gender"},
		{"bad goal", []string{"profile", "set", "--goal", "bulk"}, "invalid --goal"},
		{"negative height", append(append([]string{}, kimArgs...), "--height", "-1"), "(--height)"},
		{"blank name", append(append([]string{}, kimArgs...), "--name", "  "), "(--name)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestCLI(t)

			_, err := runCLI(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}

			_, err = runCLI(t, "", "profile", "show")
			if !errors.Is(err, errNoProfile) {
				t.Errorf("failed set must not save a profile, got %v", err)
			}
		})
	}
}

func TestProfileShowWithoutProfile(t *testing.T) {
	setupTestCLI(t)

	_, err := runCLI(t, "", "profile", "show")
	if !errors.Is(err, errNoProfile) {
		t.Errorf("expected errNoProfile, got %v", err)
	}
}

func TestMetricsCmd(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, kimArgs...)
	out := mustRun(t, "metrics")

	for _, want := range []string{"24.2", "(과체중)", "1672 kcal", "2006 kcal"} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q:\n%s", want, out)
		}
	}
}

func TestMetricsCmdEnglish(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "config", "set", "language", "en")
	mustRun(t, kimArgs...)
	out := mustRun(t, "metrics")

	if !strings.Contains(out, "(Overweight)") {
		t.Errorf("expected English category:\n%s", out)
	}
}

func TestPlanSaveListShowDelete(t *testing.T) {
	dataHome := setupTestCLI(t)

	plan := "월요일: 현미밥, 닭가슴살\n화요일: 귀리, 두부\n"
	out, err := runCLI(t, plan, "diet", "save")
	if err != nil {
		t.Fatalf("diet save failed: %v", err)
	}
	if !strings.Contains(out, "✓ Saved diet plan") {
		t.Errorf("unexpected save output:\n%s", out)
	}

	records := loadPlans(t, dataHome, models.PlanDiet)
	if len(records) != 1 {
		t.Fatalf("Expected 1 diet plan, got %d", len(records))
	}
	rec := records[0]
	if rec.Plan != plan {
		t.Errorf("plan text = %q, want %q", rec.Plan, plan)
	}

	out = mustRun(t, "diet", "list")
	for _, want := range []string{rec.ID, rec.DisplayDate(), "월요일: 현미밥, 닭가슴살"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "화요일") {
		t.Errorf("list should preview only the first line:\n%s", out)
	}

	out = mustRun(t, "workout", "list")
	if !strings.Contains(out, "No saved workout plans.") {
		t.Errorf("workout plans should be separate:\n%s", out)
	}

	out = mustRun(t, "diet", "show", rec.ID[:8])
	if !strings.Contains(out, "화요일: 귀리, 두부") {
		t.Errorf("show should print the full plan:\n%s", out)
	}

	out = mustRun(t, "diet", "delete", rec.ID)
	if !strings.Contains(out, "✗ Deleted diet plan") {
		t.Errorf("unexpected delete output:\n%s", out)
	}

	out = mustRun(t, "diet", "list")
	if !strings.Contains(out, "No saved diet plans.") {
		t.Errorf("expected empty list after delete:\n%s", out)
	}
}

func TestPlanSaveFromFile(t *testing.T) {
	dataHome := setupTestCLI(t)

	path := filepath.Join(t.TempDir(), "plan.txt")
	if err := os.WriteFile(path, []byte("스쿼트 3세트"), 0600); err != nil {
		t.Fatalf("Failed to write plan file: %v", err)
	}

	mustRun(t, "workout", "save", path)

	records := loadPlans(t, dataHome, models.PlanWorkout)
	if len(records) != 1 || records[0].Plan != "스쿼트 3세트" {
		t.Errorf("unexpected workout plans: %+v", records)
	}
}

func TestPlanSaveRejectsEmpty(t *testing.T) {
	dataHome := setupTestCLI(t)

	_, err := runCLI(t, "  \n\t", "diet", "save")
	if err == nil {
		t.Fatal("expected error for empty plan")
	}
	if n := len(loadPlans(t, dataHome, models.PlanDiet)); n != 0 {
		t.Errorf("Expected no plans, got %d", n)
	}
}

func TestPlanShowUnknownID(t *testing.T) {
	setupTestCLI(t)

	_, err := runCLI(t, "", "diet", "show", "nope")
	if err == nil || !strings.Contains(err.Error(), "diet plan not found: nope") {
		t.Errorf("expected not found error, got %v", err)
	}

	_, err = runCLI(t, "", "workout", "delete", "nope")
	if err == nil || !strings.Contains(err.Error(), "workout plan not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestPlanListLimit(t *testing.T) {
	setupTestCLI(t)

	for _, p := range []string{"first plan", "second plan", "third plan"} {
		if _, err := runCLI(t, p, "workout", "save", "-"); err != nil {
			t.Fatalf("workout save failed: %v", err)
		}
	}

	out := mustRun(t, "workout", "list", "-n", "1")
	if !strings.Contains(out, "third plan") {
		t.Errorf("expected most recent plan:\n%s", out)
	}
	if strings.Contains(out, "first plan") || strings.Contains(out, "second plan") {
		t.Errorf("limit should drop older plans:\n%s", out)
	}

	out = mustRun(t, "workout", "list")
	first := strings.Index(out, "first plan")
	third := strings.Index(out, "third plan")
	if first < 0 || third < 0 || first > third {
		t.Errorf("expected all plans oldest first:\n%s", out)
	}
}

type capturedRequest struct {
	path string
	auth string
	body []byte
}

// mockOpenAI serves one canned chat completion and records the request.
func mockOpenAI(t *testing.T, content string) (*httptest.Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		captured.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestGenerateCmd(t *testing.T) {
	dataHome := setupTestCLI(t)
	srv, req := mockOpenAI(t, "월요일: 샐러드")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	mustRun(t, "config", "set", "api_base_url", srv.URL)
	mustRun(t, kimArgs...)

	out := mustRun(t, "diet", "generate", "--info", "유제품 제외", "--save")
	if !strings.Contains(out, "월요일: 샐러드") {
		t.Errorf("expected generated plan in output:\n%s", out)
	}
	if !strings.Contains(out, "✓ Saved diet plan") {
		t.Errorf("expected save confirmation:\n%s", out)
	}

	if req.path != "/v1/chat/completions" {
		t.Errorf("request path = %q", req.path)
	}
	if req.auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", req.auth)
	}

	var sent struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(req.body, &sent); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if sent.Model != "gpt-3.5-turbo" {
		t.Errorf("model = %q", sent.Model)
	}
	if len(sent.Messages) != 1 || !strings.Contains(sent.Messages[0].Content, "추가 정보: 유제품 제외") {
		t.Errorf("prompt should carry the additional info: %+v", sent.Messages)
	}

	records := loadPlans(t, dataHome, models.PlanDiet)
	if len(records) != 1 || records[0].Plan != "월요일: 샐러드" {
		t.Errorf("unexpected saved plans: %+v", records)
	}
}

func TestGenerateCmdWithoutSave(t *testing.T) {
	dataHome := setupTestCLI(t)
	srv, _ := mockOpenAI(t, "Day 1: squats")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	mustRun(t, "config", "set", "api_base_url", srv.URL)
	mustRun(t, kimArgs...)

	out := mustRun(t, "workout", "generate")
	if !strings.Contains(out, "Day 1: squats") {
		t.Errorf("expected generated plan:\n%s", out)
	}
	if n := len(loadPlans(t, dataHome, models.PlanWorkout)); n != 0 {
		t.Errorf("generate without --save stored %d plans", n)
	}
}

func TestGenerateCmdErrors(t *testing.T) {
	t.Run("no profile", func(t *testing.T) {
		setupTestCLI(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")

		_, err := runCLI(t, "", "diet", "generate")
		if !errors.Is(err, errNoProfile) {
			t.Errorf("expected errNoProfile, got %v", err)
		}
	})

	t.Run("no api key", func(t *testing.T) {
		setupTestCLI(t)
		mustRun(t, kimArgs...)

		_, err := runCLI(t, "", "diet", "generate")
		if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY not set") {
			t.Errorf("expected missing key error, got %v", err)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		setupTestCLI(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		}))
		t.Cleanup(srv.Close)

		t.Setenv("OPENAI_API_KEY", "sk-test")
		mustRun(t, "config", "set", "api_base_url", srv.URL)
		mustRun(t, kimArgs...)

		_, err := runCLI(t, "", "workout", "generate", "--save")
		if err == nil || !strings.Contains(err.Error(), "plan generation failed") {
			t.Errorf("expected upstream error, got %v", err)
		}
	})
}

func TestExportImport(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, kimArgs...)
	if _, err := runCLI(t, "현미밥 식단", "diet", "save"); err != nil {
		t.Fatalf("diet save failed: %v", err)
	}

	backup := filepath.Join(t.TempDir(), "backup.json")
	out := mustRun(t, "export", "json", "-o", backup)
	if !strings.Contains(out, "✓ Exported to") {
		t.Errorf("unexpected export output:\n%s", out)
	}

	raw, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	var exported storage.ExportData
	if err := json.Unmarshal(raw, &exported); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if exported.Profile == nil || exported.Profile.Name != "Kim" || len(exported.Diets) != 1 {
		t.Errorf("unexpected export: %+v", exported)
	}

	id := exported.Diets[0].ID
	mustRun(t, "diet", "delete", id)

	out = mustRun(t, "import", backup)
	if !strings.Contains(out, "1 diet plans, 0 workout plans added") {
		t.Errorf("unexpected import output:\n%s", out)
	}

	records := loadPlans(t, dataHome, models.PlanDiet)
	if len(records) != 1 || records[0].ID != id {
		t.Errorf("import should restore the plan: %+v", records)
	}

	out = mustRun(t, "import", backup)
	if !strings.Contains(out, "0 diet plans") {
		t.Errorf("re-import should skip known ids:\n%s", out)
	}
}

func TestExportFormats(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, kimArgs...)

	out := mustRun(t, "export", "markdown")
	if !strings.Contains(out, "| 이름 | Kim |") {
		t.Errorf("markdown export missing profile table:\n%s", out)
	}

	out = mustRun(t, "export", "yaml")
	if !strings.Contains(out, "name: Kim") {
		t.Errorf("yaml export missing profile:\n%s", out)
	}

	if _, err := runCLI(t, "", "export", "csv"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := runCLI(t, "", "export", "markdown", "--since", "yesterday"); err == nil {
		t.Error("expected error for bad --since")
	}
}

func TestConfigCmd(t *testing.T) {
	setupTestCLI(t)

	out := mustRun(t, "config", "set", "language", "EN")
	if !strings.Contains(out, "✓ Set language = en") {
		t.Errorf("unexpected config set output:\n%s", out)
	}

	t.Setenv("OPENAI_API_KEY", "sk-secret-value")
	out = mustRun(t, "config", "show")
	for _, want := range []string{"language", "en", "gpt-3.5-turbo (default)", "OPENAI_API_KEY", "set"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "sk-secret-value") {
		t.Error("config show must never print the API key")
	}

	out = mustRun(t, "config", "set", "language", "")
	if !strings.Contains(out, "✓ Reset language to default") {
		t.Errorf("unexpected reset output:\n%s", out)
	}

	if _, err := runCLI(t, "", "config", "set", "colour", "blue"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := runCLI(t, "", "config", "set", "backend", "postgres"); err == nil {
		t.Error("expected error for unknown backend")
	}

	out = mustRun(t, "config", "path")
	if !strings.HasSuffix(strings.TrimSpace(out), filepath.Join("fitplan", "config.json")) {
		t.Errorf("unexpected config path %q", out)
	}
}

func TestFilesBackend(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "config", "set", "backend", "files")
	mustRun(t, kimArgs...)

	info, err := os.Stat(filepath.Join(dataHome, "fitplan", "userProfile.json"))
	if err != nil {
		t.Fatalf("expected profile document on disk: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("profile document mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestCorruptRecordsTreatedAsAbsent(t *testing.T) {
	dataHome := setupTestCLI(t)

	mustRun(t, "config", "set", "backend", "files")
	dir := filepath.Join(dataHome, "fitplan")
	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"userProfile", "savedDiets"} {
		if err := os.WriteFile(filepath.Join(dir, key+".json"), []byte("not json"), 0600); err != nil {
			t.Fatalf("Failed to write %s: %v", key, err)
		}
	}

	if _, err := runCLI(t, "", "metrics"); !errors.Is(err, errNoProfile) {
		t.Errorf("metrics error = %v, want errNoProfile", err)
	}
	if _, err := runCLI(t, "", "profile", "show"); !errors.Is(err, errNoProfile) {
		t.Errorf("profile show error = %v, want errNoProfile", err)
	}

	out := mustRun(t, "diet", "list")
	if !strings.Contains(out, "No saved diet plans.") {
		t.Errorf("expected empty diet list, got %q", out)
	}

	// A full profile set overwrites the unreadable record.
	mustRun(t, kimArgs...)
	out = mustRun(t, "metrics")
	if !strings.Contains(out, "24.2") {
		t.Errorf("metrics after repair missing BMI:\n%s", out)
	}
}

func TestMigrateCmd(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, kimArgs...)
	if _, err := runCLI(t, "식단 A", "diet", "save"); err != nil {
		t.Fatalf("diet save failed: %v", err)
	}

	out := mustRun(t, "migrate", "--from", "sqlite", "--to", "files", "--dry-run")
	if !strings.Contains(out, "Dry run") || !strings.Contains(out, "absent") {
		t.Errorf("unexpected dry run output:\n%s", out)
	}

	out = mustRun(t, "migrate", "--from", "sqlite", "--to", "files")
	for _, want := range []string{"copied  userProfile", "copied  savedDiets", "skipped savedWorkouts"} {
		if !strings.Contains(out, want) {
			t.Errorf("migrate output missing %q:\n%s", want, out)
		}
	}

	if _, err := runCLI(t, "", "migrate", "--from", "sqlite", "--to", "files"); err == nil {
		t.Error("second migrate without --overwrite should fail")
	}
	mustRun(t, "migrate", "--from", "sqlite", "--to", "files", "--overwrite")

	mustRun(t, "config", "set", "backend", "files")
	out = mustRun(t, "profile", "show")
	if !strings.Contains(out, "Kim") {
		t.Errorf("profile should be readable from files backend:\n%s", out)
	}
	out = mustRun(t, "diet", "list")
	if !strings.Contains(out, "식단 A") {
		t.Errorf("plans should be readable from files backend:\n%s", out)
	}
}

func TestMigrateCmdErrors(t *testing.T) {
	setupTestCLI(t)

	if _, err := runCLI(t, "", "migrate", "--from", "files", "--to", "files"); err == nil {
		t.Error("expected error when source and destination match")
	}
	if _, err := runCLI(t, "", "migrate", "--to", "files"); err == nil {
		t.Error("expected error when --from is missing")
	}
	if _, err := runCLI(t, "", "migrate", "--from", "files", "--to", "mongo"); err == nil {
		t.Error("expected error for unknown backend")
	}
}
