package job

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumni-labs/bolsa/pkg/cv"
)

func jobNamed(title, description, area string) Job {
	return Job{ID: uuid.New(), Title: title, Description: description, Area: area, IsActive: true}
}

func cvWithSkills(names ...string) *cv.CV {
	doc := &cv.CV{}
	for _, n := range names {
		doc.Skills = append(doc.Skills, cv.Skill{Name: n, Level: 3})
	}
	return doc
}

func TestRecommendScoresSkillMatches(t *testing.T) {
	jobs := []Job{
		jobNamed("Contador Junior", "registración contable", "Administración"),
		jobNamed("Backend Developer", "servicios en Go y PostgreSQL", "IT"),
		jobNamed("Soporte Técnico", "mesa de ayuda", "IT"),
	}

	out := Recommend(jobs, cvWithSkills("Go", "PostgreSQL"), nil, "")
	require.Len(t, out, 3)
	assert.Equal(t, "Backend Developer", out[0].Title, "two skill hits outrank zero")
}

func TestRecommendQueryAddsOne(t *testing.T) {
	jobs := []Job{
		jobNamed("Analista de Datos", "SQL y reportes", "IT"),
		jobNamed("Backend Developer", "servicios en Go", "IT"),
	}

	// Both score 2 on one skill each; the query tips the first one ahead.
	doc := cvWithSkills("sql", "go")
	out := Recommend(jobs, doc, nil, "datos")
	require.Len(t, out, 2)
	assert.Equal(t, "Analista de Datos", out[0].Title)
}

func TestRecommendTiesKeepInputOrder(t *testing.T) {
	jobs := []Job{
		jobNamed("Primero", "go", "IT"),
		jobNamed("Segundo", "go", "IT"),
		jobNamed("Tercero", "go", "IT"),
	}

	out := Recommend(jobs, cvWithSkills("Go"), nil, "")
	require.Len(t, out, 3)
	assert.Equal(t, "Primero", out[0].Title)
	assert.Equal(t, "Segundo", out[1].Title)
	assert.Equal(t, "Tercero", out[2].Title)
}

func TestRecommendCompanyNameJoinsHaystack(t *testing.T) {
	companyID := uuid.New()
	j := jobNamed("Pasantía", "área comercial", "Ventas")
	j.CompanyID = companyID
	other := jobNamed("Pasantía B", "área comercial", "Ventas")

	names := map[uuid.UUID]string{companyID: "Globant"}
	out := Recommend([]Job{other, j}, cvWithSkills("globant"), names, "")
	require.Len(t, out, 2)
	assert.Equal(t, "Pasantía", out[0].Title)
}

func TestRecommendCapsAtSix(t *testing.T) {
	var jobs []Job
	for i := 0; i < 10; i++ {
		jobs = append(jobs, jobNamed("Puesto Go", "go", "IT"))
	}
	out := Recommend(jobs, cvWithSkills("Go"), nil, "")
	assert.Len(t, out, 6)
}

func TestRecommendNilCVFallsBackUnscored(t *testing.T) {
	var jobs []Job
	for i := 0; i < 8; i++ {
		jobs = append(jobs, jobNamed("Puesto", "descripción", "IT"))
	}
	out := Recommend(jobs, nil, nil, "ignored")
	require.Len(t, out, 6)
	for i := range out {
		assert.Equal(t, jobs[i].ID, out[i].ID, "order preserved at %d", i)
	}
}

func TestRecommendDoesNotMutateInput(t *testing.T) {
	jobs := []Job{
		jobNamed("Sin Match", "nada", "Otros"),
		jobNamed("Backend Go", "go", "IT"),
	}
	before := make([]Job, len(jobs))
	copy(before, jobs)

	_ = Recommend(jobs, cvWithSkills("Go"), nil, "")
	assert.Equal(t, before, jobs)
}

func TestModalityValidIsExact(t *testing.T) {
	assert.True(t, Modality("Remote").Valid())
	assert.True(t, Modality("Hybrid").Valid())
	assert.True(t, Modality("On-site").Valid())
	assert.False(t, Modality("Onsite").Valid(), "missing hyphen is rejected")
	assert.False(t, Modality("remote").Valid(), "case matters")
	assert.False(t, Modality("").Valid())
}
