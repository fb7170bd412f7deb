package project

import (
	"path/filepath"
	"testing"

	"github.com/inkwell/core/internal/database"
	"github.com/inkwell/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db), db
}

func strptr(s string) *string { return &s }

func seedUser(t *testing.T, db *gorm.DB, email string) *models.UserModel {
	t.Helper()
	u := &models.UserModel{Fullname: "Test User", Email: email, Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestProjectOwnershipScoping(t *testing.T) {
	svc, db := testService(t)
	a := seedUser(t, db, "a@example.com")
	b := seedUser(t, db, "b@example.com")

	p, err := svc.Create(a.ID, &CreateProjectDTO{Title: "Novel"})
	require.NoError(t, err)

	_, err = svc.Get(b.ID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	projects, err := svc.List(b.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectUpdatePartial(t *testing.T) {
	svc, db := testService(t)
	u := seedUser(t, db, "a@example.com")

	p, err := svc.Create(u.ID, &CreateProjectDTO{Title: "Novel", Description: "first pass"})
	require.NoError(t, err)

	title := "Novel, revised"
	updated, err := svc.Update(u.ID, p.ID, &UpdateProjectDTO{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Novel, revised", updated.Title)
	assert.Equal(t, "first pass", updated.Description)
}

func TestSingletonsLazilyCreatedOnce(t *testing.T) {
	svc, db := testService(t)
	u := seedUser(t, db, "a@example.com")
	p, err := svc.Create(u.ID, &CreateProjectDTO{Title: "Novel"})
	require.NoError(t, err)

	first, err := svc.GetBible(u.ID, p.ID)
	require.NoError(t, err)
	second, err := svc.GetBible(u.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.StoryBibleModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSingletonAccessRequiresOwnedProject(t *testing.T) {
	svc, db := testService(t)
	a := seedUser(t, db, "a@example.com")
	b := seedUser(t, db, "b@example.com")
	p, err := svc.Create(a.ID, &CreateProjectDTO{Title: "Novel"})
	require.NoError(t, err)

	_, err = svc.GetMemory(b.ID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetStyle(b.ID, "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateBibleAppliesSentFields(t *testing.T) {
	svc, db := testService(t)
	u := seedUser(t, db, "a@example.com")
	p, err := svc.Create(u.ID, &CreateProjectDTO{Title: "Novel"})
	require.NoError(t, err)

	chars := []interface{}{map[string]interface{}{"name": "Mira"}}
	b, err := svc.UpdateBible(u.ID, p.ID, &UpdateBibleDTO{
		Tone:       strptr("melancholy"),
		Characters: &chars,
	})
	require.NoError(t, err)
	assert.Equal(t, "melancholy", b.Tone)
	require.Len(t, b.Characters, 1)

	reloaded, err := svc.GetBible(u.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "melancholy", reloaded.Tone)
}

func TestUpdateBibleKeepsOmittedFields(t *testing.T) {
	svc, db := testService(t)
	u := seedUser(t, db, "a@example.com")
	p, err := svc.Create(u.ID, &CreateProjectDTO{Title: "Novel"})
	require.NoError(t, err)

	_, err = svc.UpdateBible(u.ID, p.ID, &UpdateBibleDTO{
		Tone:  strptr("melancholy"),
		Rules: strptr("no time travel"),
	})
	require.NoError(t, err)

	b, err := svc.UpdateBible(u.ID, p.ID, &UpdateBibleDTO{Tone: strptr("hopeful")})
	require.NoError(t, err)
	assert.Equal(t, "hopeful", b.Tone)
	assert.Equal(t, "no time travel", b.Rules)
}

func TestUpdateMemoryKeepsOmittedFields(t *testing.T) {
	svc, db := testService(t)
	u := seedUser(t, db, "a@example.com")
	p, err := svc.Create(u.ID, &CreateProjectDTO{Title: "Novel"})
	require.NoError(t, err)

	threads := []interface{}{"who stole the map"}
	_, err = svc.UpdateMemory(u.ID, p.ID, &UpdateMemoryDTO{
		StyleGuidelines: strptr("short sentences"),
		OpenThreads:     &threads,
	})
	require.NoError(t, err)

	m, err := svc.UpdateMemory(u.ID, p.ID, &UpdateMemoryDTO{
		StyleGuidelines: strptr("long sentences"),
	})
	require.NoError(t, err)
	assert.Equal(t, "long sentences", m.StyleGuidelines)
	require.Len(t, m.OpenThreads, 1)
}

func TestUpdateStyleStoresLists(t *testing.T) {
	svc, db := testService(t)
	u := seedUser(t, db, "a@example.com")
	p, err := svc.Create(u.ID, &CreateProjectDTO{Title: "Novel"})
	require.NoError(t, err)

	do := []string{"active voice"}
	dont := []string{"adverbs"}
	st, err := svc.UpdateStyle(u.ID, p.ID, &UpdateStyleDTO{
		Guidelines: strptr("short sentences"),
		DoList:     &do,
		DontList:   &dont,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StringArray{"active voice"}, st.DoList)

	reloaded, err := svc.UpdateStyle(u.ID, p.ID, &UpdateStyleDTO{DoList: &[]string{"strong verbs"}})
	require.NoError(t, err)
	assert.Equal(t, models.StringArray{"strong verbs"}, reloaded.DoList)
	assert.Equal(t, models.StringArray{"adverbs"}, reloaded.DontList)
	assert.Equal(t, "short sentences", reloaded.Guidelines)
}

func TestSourcesLifecycle(t *testing.T) {
	svc, db := testService(t)
	u := seedUser(t, db, "a@example.com")
	p, err := svc.Create(u.ID, &CreateProjectDTO{Title: "Novel"})
	require.NoError(t, err)

	src, err := svc.CreateSource(u.ID, p.ID, &CreateSourceDTO{
		Title: "reference article",
		Type:  "url",
		URL:   "https://example.com/essay",
	})
	require.NoError(t, err)

	sources, err := svc.ListSources(u.ID, p.ID)
	require.NoError(t, err)
	require.Len(t, sources, 1)

	require.NoError(t, svc.DeleteSource(u.ID, p.ID, src.ID))
	err = svc.DeleteSource(u.ID, p.ID, src.ID)
	assert.ErrorIs(t, err, errSourceNotFound)
}

func TestDeleteCascadesProjectResources(t *testing.T) {
	svc, db := testService(t)
	u := seedUser(t, db, "a@example.com")
	p, err := svc.Create(u.ID, &CreateProjectDTO{Title: "Novel"})
	require.NoError(t, err)

	doc := models.StoryDocModel{ProjectID: p.ID, UserID: u.ID, Title: "ch1", Kind: models.StoryDocKindDocument}
	require.NoError(t, db.Create(&doc).Error)
	version := models.StoryDocVersionModel{DocID: doc.ID, ProjectID: p.ID, UserID: u.ID, Title: "ch1", SaveReason: models.SaveReasonManual}
	require.NoError(t, db.Create(&version).Error)
	_, err = svc.GetBible(u.ID, p.ID)
	require.NoError(t, err)
	_, err = svc.CreateSource(u.ID, p.ID, &CreateSourceDTO{Title: "src"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(u.ID, p.ID))

	for _, m := range []interface{}{
		&models.StoryDocModel{},
		&models.StoryDocVersionModel{},
		&models.StoryBibleModel{},
		&models.WritingSourceModel{},
	} {
		var count int64
		require.NoError(t, db.Model(m).Where("project_id = ?", p.ID).Count(&count).Error)
		assert.Zero(t, count)
	}
	_, err = svc.Get(u.ID, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
