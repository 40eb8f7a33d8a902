// ABOUTME: Tests for Markdown export.
// ABOUTME: Checks profile labels, metrics rows and plan sections.
package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/harperreed/fitplan/internal/labels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportMarkdownEmpty(t *testing.T) {
	s := setupStores(t, setupFileStore(t))

	md, err := s.ExportMarkdown(labels.Korean, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "# fitplan Export - "))
	assert.Contains(t, md, "No profile saved.")
	assert.NotContains(t, md, "## Metrics")
	assert.NotContains(t, md, "## Diet Plans")
}

func TestExportMarkdownKorean(t *testing.T) {
	s := setupStores(t, setupTestDB(t))
	require.NoError(t, s.Profile.Save(testProfile()))
	rec, err := s.Diets.Append("아침: 오트밀\n점심: 샐러드\n")
	require.NoError(t, err)

	md, err := s.ExportMarkdown(labels.Korean, nil)
	require.NoError(t, err)

	assert.Contains(t, md, "| 이름 | Kim |")
	assert.Contains(t, md, "| 성별 | 여성 |")
	assert.Contains(t, md, "| 키 | 162.5 cm |")
	assert.Contains(t, md, "| 체중 | 55 kg |")
	assert.Contains(t, md, "| BMI | 20.8 (정상) |")
	assert.Contains(t, md, "## Diet Plans")
	assert.Contains(t, md, "### "+rec.DisplayDate())
	assert.Contains(t, md, "ID: `"+rec.ID+"`")
	assert.Contains(t, md, "아침: 오트밀\n점심: 샐러드\n\n")
	assert.NotContains(t, md, "## Workout Plans")
}

func TestExportMarkdownEnglishLabels(t *testing.T) {
	s := setupStores(t, setupFileStore(t))
	p := testProfile()
	p.HealthConditions = "knee | ankle"
	require.NoError(t, s.Profile.Save(p))

	md, err := s.ExportMarkdown(labels.English, nil)
	require.NoError(t, err)
	assert.Contains(t, md, "| Sex | Female |")
	assert.Contains(t, md, "| BMI | 20.8 (Normal) |")
	assert.Contains(t, md, `knee \| ankle`)
}

func TestExportMarkdownSince(t *testing.T) {
	s := setupStores(t, setupFileStore(t))
	old := `[{"id":"old1","date":"2020-01-01T00:00:00Z","plan":"old workout"}]`
	require.NoError(t, s.KV.Set(KeyWorkouts, []byte(old)))
	_, err := s.Workouts.Append("new workout")
	require.NoError(t, err)

	since := time.Now().Add(-24 * time.Hour)
	md, err := s.ExportMarkdown(labels.English, &since)
	require.NoError(t, err)
	assert.Contains(t, md, "new workout")
	assert.NotContains(t, md, "old workout")

	md, err = s.ExportMarkdown(labels.English, nil)
	require.NoError(t, err)
	assert.Contains(t, md, "old workout")
	assert.Less(t, strings.Index(md, "old workout"), strings.Index(md, "new workout"))
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		170:   "170",
		162.5: "162.5",
		70.25: "70.25",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatNumber(in))
	}
}
