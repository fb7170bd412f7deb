package category

import (
	"path/filepath"
	"testing"

	"github.com/inkwell/core/internal/database"
	"github.com/inkwell/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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
	return NewService(db, zap.NewNop()), db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.UserModel {
	t.Helper()
	u := &models.UserModel{Fullname: "Test User", Email: email, Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestEnsureGlobalCatalogIdempotent(t *testing.T) {
	svc, db := testService(t)

	require.NoError(t, svc.EnsureGlobalCatalog())
	require.NoError(t, svc.EnsureGlobalCatalog())

	var count int64
	require.NoError(t, db.Model(&models.CategoryModel{}).
		Where("scope = ?", models.CategoryScopeGlobal).Count(&count).Error)
	assert.EqualValues(t, 5, count)
}

func TestCreateRejectsReservedAndDuplicateNames(t *testing.T) {
	svc, db := testService(t)
	require.NoError(t, svc.EnsureGlobalCatalog())
	u := seedUser(t, db, "a@example.com")

	_, err := svc.Create(u.ID, "meeting")
	assert.ErrorIs(t, err, errNameReserved)

	cat, err := svc.Create(u.ID, "Research")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryScopeUser, cat.Scope)

	_, err = svc.Create(u.ID, "RESEARCH")
	assert.ErrorIs(t, err, errNameTaken)
}

func TestResolveOrCreatePrefersGlobalThenOwn(t *testing.T) {
	svc, db := testService(t)
	require.NoError(t, svc.EnsureGlobalCatalog())
	u := seedUser(t, db, "a@example.com")

	global, err := svc.ResolveOrCreate(u.ID, "IDEA")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryScopeGlobal, global.Scope)
	assert.Equal(t, "Idea", global.Name)

	created, err := svc.ResolveOrCreate(u.ID, "Worldbuilding")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryScopeUser, created.Scope)

	again, err := svc.ResolveOrCreate(u.ID, "worldbuilding")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	none, err := svc.ResolveOrCreate(u.ID, "   ")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestListShadowsCollidingUserCategories(t *testing.T) {
	svc, db := testService(t)
	require.NoError(t, svc.EnsureGlobalCatalog())
	u := seedUser(t, db, "a@example.com")

	// Simulate a row created before the global catalog grew this name.
	stale := models.CategoryModel{Name: "idea", Scope: models.CategoryScopeUser, UserID: &u.ID}
	require.NoError(t, db.Create(&stale).Error)
	_, err := svc.Create(u.ID, "Research")
	require.NoError(t, err)

	cats, err := svc.List(u.ID)
	require.NoError(t, err)
	assert.Len(t, cats, 6)
	for _, c := range cats {
		assert.NotEqual(t, stale.ID, c.ID)
	}
}

func TestListExcludesOtherUsersCategories(t *testing.T) {
	svc, db := testService(t)
	a := seedUser(t, db, "a@example.com")
	b := seedUser(t, db, "b@example.com")

	_, err := svc.Create(a.ID, "Mine")
	require.NoError(t, err)
	_, err = svc.Create(b.ID, "Theirs")
	require.NoError(t, err)

	cats, err := svc.List(a.ID)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Mine", cats[0].Name)
}

func TestRenameGuardsScopeAndConflicts(t *testing.T) {
	svc, db := testService(t)
	require.NoError(t, svc.EnsureGlobalCatalog())
	u := seedUser(t, db, "a@example.com")

	var global models.CategoryModel
	require.NoError(t, db.Where("scope = ?", models.CategoryScopeGlobal).First(&global).Error)
	_, err := svc.Rename(u.ID, global.ID, "Hijacked")
	assert.ErrorIs(t, err, errCategoryNotFound)

	first, err := svc.Create(u.ID, "Drafts")
	require.NoError(t, err)
	second, err := svc.Create(u.ID, "Outlines")
	require.NoError(t, err)

	_, err = svc.Rename(u.ID, second.ID, "drafts")
	assert.ErrorIs(t, err, errNameTaken)
	_, err = svc.Rename(u.ID, second.ID, "to-do")
	assert.ErrorIs(t, err, errNameReserved)

	renamed, err := svc.Rename(u.ID, first.ID, "Fragments")
	require.NoError(t, err)
	assert.Equal(t, "Fragments", renamed.Name)
}

func TestDeleteDetachesNotes(t *testing.T) {
	svc, db := testService(t)
	u := seedUser(t, db, "a@example.com")

	cat, err := svc.Create(u.ID, "Journal")
	require.NoError(t, err)
	note := models.NoteModel{UserID: u.ID, Title: "entry", CategoryID: &cat.ID}
	require.NoError(t, db.Create(&note).Error)

	require.NoError(t, svc.Delete(u.ID, cat.ID))

	var reloaded models.NoteModel
	require.NoError(t, db.First(&reloaded, "id = ?", note.ID).Error)
	assert.Nil(t, reloaded.CategoryID)

	err = svc.Delete(u.ID, cat.ID)
	assert.ErrorIs(t, err, errCategoryNotFound)
}

func TestCanAccess(t *testing.T) {
	svc, db := testService(t)
	require.NoError(t, svc.EnsureGlobalCatalog())
	a := seedUser(t, db, "a@example.com")
	b := seedUser(t, db, "b@example.com")

	var global models.CategoryModel
	require.NoError(t, db.Where("scope = ?", models.CategoryScopeGlobal).First(&global).Error)

	own, err := svc.Create(a.ID, "Private")
	require.NoError(t, err)

	ok, err := svc.CanAccess(a.ID, global.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanAccess(b.ID, own.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
