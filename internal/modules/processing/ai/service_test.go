package ai

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/inkwell/core/internal/config"
	"github.com/inkwell/core/internal/database"
	"github.com/inkwell/core/internal/models"
	"github.com/inkwell/core/internal/modules/content/category"
	"github.com/inkwell/core/internal/modules/writer/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeGenerator returns canned responses and records the prompt it saw.
type fakeGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) GenerateStructured(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGenerator) GenerateParts(_ context.Context, parts []Part) (string, error) {
	for _, p := range parts {
		if p.Text != "" {
			f.lastPrompt = p.Text
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fixture struct {
	svc      *Service
	gen      *fakeGenerator
	projects *project.Service
	db       *gorm.DB
	user     *models.UserModel
	project  *models.ProjectModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	u := &models.UserModel{Fullname: "Test User", Email: "a@example.com", Password: "x"}
	require.NoError(t, db.Create(u).Error)

	gen := &fakeGenerator{}
	projects := project.NewService(db)
	cats := category.NewService(db, zap.NewNop())
	p, err := projects.Create(u.ID, &project.CreateProjectDTO{Title: "Novel"})
	require.NoError(t, err)

	return &fixture{
		svc:      NewService(db, gen, projects, cats),
		gen:      gen,
		projects: projects,
		db:       db,
		user:     u,
		project:  p,
	}
}

func TestUnmarshalModelJSONToleratesFences(t *testing.T) {
	cases := []string{
		`{"title":"x"}`,
		"```json\n{\"title\":\"x\"}\n```",
		"Here is the note:\n{\"title\":\"x\"}\nHope that helps!",
	}
	for _, raw := range cases {
		var out struct {
			Title string `json:"title"`
		}
		require.NoError(t, unmarshalModelJSON(raw, &out), raw)
		assert.Equal(t, "x", out.Title)
	}

	var out map[string]interface{}
	assert.ErrorIs(t, unmarshalModelJSON("no json here at all", &out), ErrParse)
}

func TestNoteDraftResolvesSuggestedCategory(t *testing.T) {
	f := newFixture(t)
	f.gen.response = "```json\n" +
		`{"title":"Standup","content":"notes","tags":["work"],"category":"Meeting"}` +
		"\n```"

	cats := category.NewService(f.db, zap.NewNop())
	require.NoError(t, cats.EnsureGlobalCatalog())

	draft, err := f.svc.NoteDraft(context.Background(), f.user.ID, &NoteDraftDTO{Prompt: "what happened at standup"})
	require.NoError(t, err)
	assert.Equal(t, "Standup", draft.Title)
	assert.Equal(t, "Meeting", draft.Category)
	require.NotNil(t, draft.CategoryID)

	var cat models.CategoryModel
	require.NoError(t, f.db.First(&cat, "id = ?", *draft.CategoryID).Error)
	assert.Equal(t, models.CategoryScopeGlobal, cat.Scope)
}

func TestNoteDraftParseFailure(t *testing.T) {
	f := newFixture(t)
	f.gen.response = "sorry, I cannot do that"

	_, err := f.svc.NoteDraft(context.Background(), f.user.ID, &NoteDraftDTO{Prompt: "p"})
	assert.ErrorIs(t, err, ErrParse)
}

func TestWriterContinuePersistsMemoryUpdate(t *testing.T) {
	f := newFixture(t)
	d := models.StoryDocModel{
		ProjectID: f.project.ID, UserID: f.user.ID,
		Title: "ch2", Content: "current text", Kind: models.StoryDocKindDocument, SortOrder: 1,
	}
	require.NoError(t, f.db.Create(&d).Error)

	f.gen.response = `{"takes":["<p>take one</p>","<p>take two</p>"],` +
		`"memoryUpdate":{"keyFacts":["Mira has the key"],"sessionSummary":"Mira entered the vault."}}`

	result, err := f.svc.WriterContinue(context.Background(), f.user.ID, &WriterContinueDTO{
		ProjectID: f.project.ID, DocID: d.ID,
	})
	require.NoError(t, err)
	assert.Len(t, result.Takes, 2)

	memory, err := f.projects.GetMemory(f.user.ID, f.project.ID)
	require.NoError(t, err)
	require.Len(t, memory.KeyFacts, 1)
	require.Len(t, memory.SessionSummaries, 1)
	assert.Equal(t, "Mira entered the vault.", memory.SessionSummaries[0].SummaryText)
}

func TestWriterContinueIncludesPreviousSibling(t *testing.T) {
	f := newFixture(t)
	prev := models.StoryDocModel{
		ProjectID: f.project.ID, UserID: f.user.ID,
		Title: "ch1", Content: "the chapter before", Kind: models.StoryDocKindDocument, SortOrder: 0,
	}
	require.NoError(t, f.db.Create(&prev).Error)
	d := models.StoryDocModel{
		ProjectID: f.project.ID, UserID: f.user.ID,
		Title: "ch2", Content: "current text", Kind: models.StoryDocKindDocument, SortOrder: 1,
	}
	require.NoError(t, f.db.Create(&d).Error)

	f.gen.response = `{"takes":["<p>next</p>"]}`
	_, err := f.svc.WriterContinue(context.Background(), f.user.ID, &WriterContinueDTO{
		ProjectID: f.project.ID, DocID: d.ID,
	})
	require.NoError(t, err)
	assert.Contains(t, f.gen.lastPrompt, "the chapter before")
	assert.Contains(t, f.gen.lastPrompt, "current text")
}

func TestWriterOpsRequireOwnedProject(t *testing.T) {
	f := newFixture(t)
	other := &models.UserModel{Fullname: "Other", Email: "b@example.com", Password: "x"}
	require.NoError(t, f.db.Create(other).Error)

	f.gen.response = `{"takes":["<p>x</p>"]}`
	_, err := f.svc.WriterContinue(context.Background(), other.ID, &WriterContinueDTO{
		ProjectID: f.project.ID, DocID: "whatever",
	})
	assert.ErrorIs(t, err, project.ErrNotFound)
}

func TestStyleProfilePersistsStyleAndMemory(t *testing.T) {
	f := newFixture(t)
	d := models.StoryDocModel{
		ProjectID: f.project.ID, UserID: f.user.ID,
		Title: "ch1", Content: "sample prose", Kind: models.StoryDocKindDocument,
	}
	require.NoError(t, f.db.Create(&d).Error)

	f.gen.response = `{"guidelines":"short sentences","doList":["active voice"],"dontList":["adverbs"],"examples":["She ran."]}`

	result, err := f.svc.StyleProfile(context.Background(), f.user.ID, &StyleProfileDTO{ProjectID: f.project.ID})
	require.NoError(t, err)
	assert.Equal(t, "short sentences", result.Guidelines)

	style, err := f.projects.GetStyle(f.user.ID, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringArray{"active voice"}, style.DoList)

	memory, err := f.projects.GetMemory(f.user.ID, f.project.ID)
	require.NoError(t, err)
	assert.Equal(t, "short sentences", memory.StyleGuidelines)
}

func TestAskReturnsCitations(t *testing.T) {
	f := newFixture(t)
	d := models.StoryDocModel{
		ProjectID: f.project.ID, UserID: f.user.ID,
		Title: "ch1", Content: "The vault opens at dawn.", Kind: models.StoryDocKindDocument,
	}
	require.NoError(t, f.db.Create(&d).Error)

	f.gen.response = `{"answerHtml":"<p>At dawn.</p>","citations":["ch1"]}`
	result, err := f.svc.Ask(context.Background(), f.user.ID, &AskDTO{
		ProjectID: f.project.ID, Question: "When does the vault open?",
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>At dawn.</p>", result.AnswerHTML)
	assert.Equal(t, []string{"ch1"}, result.Citations)
	assert.Contains(t, f.gen.lastPrompt, "The vault opens at dawn.")
}

func TestGeminiGeneratorRequiresKey(t *testing.T) {
	g := NewGeminiGenerator(config.AIConfig{Model: "gemini-2.0-flash"})
	_, err := g.GenerateStructured(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGeneratorErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.gen.err = ErrNoAPIKey

	_, err := f.svc.ContinueStory(context.Background(), &ContinueStoryDTO{Content: "once upon"})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
