// ABOUTME: Prompt templates for diet and workout plan requests.
// ABOUTME: One template per plan kind and language, filled from a validated profile.
package recommend

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/harperreed/fitplan/internal/labels"
	"github.com/harperreed/fitplan/internal/models"
)

const koProfileBlock = `이름: {{.Name}}
나이: {{.Age}}
성별: {{.Gender}}
키: {{.Height}} cm
체중: {{.Weight}} kg
활동 수준: {{.ActivityLevel}}
목표: {{.Goal}}
건강 상태: {{.HealthConditions}}
추가 정보: {{.AdditionalInfo}}
`

const enProfileBlock = `Name: {{.Name}}
Age: {{.Age}}
Sex: {{.Gender}}
Height: {{.Height}} cm
Weight: {{.Weight}} kg
Activity level: {{.ActivityLevel}}
Goal: {{.Goal}}
Health conditions: {{.HealthConditions}}
Additional information: {{.AdditionalInfo}}
`

var promptSources = map[labels.Lang]map[models.PlanKind]string{
	labels.Korean: {
		models.PlanDiet: "\n다음 정보를 바탕으로 건강한 맞춤형 식단 계획을 일주일 분량으로 작성해주세요:\n\n" +
			koProfileBlock +
			"\n식단에는 아침, 점심, 저녁 식사와 간식을 포함해 주세요.\n" +
			"각 식단에 대한 칼로리와 대략적인 영양소 분포(탄수화물, 단백질, 지방)도 포함해 주세요.\n" +
			"한국어로 응답해 주세요.\n",
		models.PlanWorkout: "\n다음 정보를 바탕으로 개인화된 주간 운동 루틴을 작성해주세요:\n\n" +
			koProfileBlock +
			"\n일주일 동안의 운동 계획을 요일별로 작성해 주세요.\n" +
			"각 운동에 대한 세트, 반복 횟수, 휴식 시간을 포함해 주세요.\n" +
			"적절한 워밍업과 마무리 스트레칭도 포함해 주세요.\n" +
			"한국어로 응답해 주세요.\n",
	},
	labels.English: {
		models.PlanDiet: "\nBased on the following information, write a healthy personalized meal plan for one week:\n\n" +
			enProfileBlock +
			"\nInclude breakfast, lunch, dinner and snacks.\n" +
			"Include the calories and an approximate macronutrient split (carbohydrate, protein, fat) for each meal.\n" +
			"Please respond in English.\n",
		models.PlanWorkout: "\nBased on the following information, write a personalized weekly workout routine:\n\n" +
			enProfileBlock +
			"\nWrite the plan day by day for one week.\n" +
			"Include sets, repetitions and rest time for each exercise.\n" +
			"Include a proper warm-up and a cool-down stretch.\n" +
			"Please respond in English.\n",
	},
}

var prompts = mustParsePrompts()

func mustParsePrompts() map[labels.Lang]map[models.PlanKind]*template.Template {
	parsed := make(map[labels.Lang]map[models.PlanKind]*template.Template, len(promptSources))
	for lang, kinds := range promptSources {
		parsed[lang] = make(map[models.PlanKind]*template.Template, len(kinds))
		for kind, src := range kinds {
			name := string(lang) + "." + string(kind)
			parsed[lang][kind] = template.Must(template.New(name).Option("missingkey=error").Parse(src))
		}
	}
	return parsed
}

// promptData is the already-translated view of a profile that templates see.
type promptData struct {
	Name             string
	Age              int
	Gender           string
	Height           string
	Weight           string
	ActivityLevel    string
	Goal             string
	HealthConditions string
	AdditionalInfo   string
}

// RenderPrompt builds the request prompt for kind. The output depends only on
// its arguments. Unknown languages fall back to Korean.
func RenderPrompt(kind models.PlanKind, p *models.Profile, additionalInfo string, lang labels.Lang) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	byKind, ok := prompts[lang]
	if !ok {
		byKind = prompts[labels.Default]
		lang = labels.Default
	}
	tmpl, ok := byKind[kind]
	if !ok {
		return "", fmt.Errorf("unknown plan kind: %q", kind)
	}

	data := promptData{
		Name:             p.Name,
		Age:              p.Age,
		Gender:           labels.Gender(lang, p.Gender),
		Height:           formatNumber(p.Height),
		Weight:           formatNumber(p.Weight),
		ActivityLevel:    labels.ActivityLevel(lang, p.ActivityLevel),
		Goal:             labels.Goal(lang, p.Goal),
		HealthConditions: orPlaceholder(p.HealthConditions, labels.Placeholder(lang, "healthConditions")),
		AdditionalInfo:   orPlaceholder(additionalInfo, labels.Placeholder(lang, "additionalInfo")),
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", kind, err)
	}
	return sb.String(), nil
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// formatNumber prints v the shortest way: 170 not 170.000000. Magnitudes
// from 1e21 up and below 1e-6 use exponent form, written 1e+21 and 1.5e-7.
func formatNumber(v float64) string {
	if a := math.Abs(v); a != 0 && (a >= 1e21 || a < 1e-6) {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, ok := strings.Cut(s, "e")
		if !ok {
			return s
		}
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
