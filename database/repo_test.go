package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanketkurve/portfolio-backend/database"
	"github.com/sanketkurve/portfolio-backend/database/dbtest"
	"github.com/sanketkurve/portfolio-backend/models"
)

// steppingClock advances by a second on every read so rows get distinct timestamps.
type steppingClock struct {
	t time.Time
}

func (c *steppingClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newClock() *steppingClock {
	return &steppingClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func projectInput(title string, visible bool) models.ProjectInput {
	return models.ProjectInput{
		Title:       title,
		Tagline:     title + " tagline",
		Description: title + " description",
		Year:        intPtr(2024),
		Tech:        []string{"Go"},
		Visible:     boolPtr(visible),
	}
}

func TestProjectRepo_CreateAppliesDefaults(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	created, err := db.ProjectRepo().Create(ctx, models.ProjectInput{
		Title: "Portfolio", Tagline: "t", Description: "d", Year: intPtr(2025),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	stored, err := db.ProjectRepo().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "web", stored.Category)
	assert.Equal(t, "completed", stored.Status)
	assert.False(t, stored.Featured)
	assert.True(t, stored.Visible)
	assert.Empty(t, stored.Tech)
	assert.True(t, stored.CreatedAt.Equal(stored.UpdatedAt))
}

func TestProjectRepo_UpdateChangesOnlySetFields(t *testing.T) {
	clock := newClock()
	db := dbtest.New(t, database.WithClock(clock.Now))
	ctx := context.Background()

	created, err := db.ProjectRepo().Create(ctx, projectInput("Original", true))
	require.NoError(t, err)

	updated, err := db.ProjectRepo().Update(ctx, created.ID, models.ProjectPatch{
		Title:   models.Some("Renamed"),
		Visible: models.Some(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.False(t, updated.Visible)
	assert.Equal(t, created.Tagline, updated.Tagline)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, []string(created.Tech), []string(updated.Tech))
	assert.Equal(t, created.Year, updated.Year)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestProjectRepo_EmptyUpdateIsNoOp(t *testing.T) {
	clock := newClock()
	db := dbtest.New(t, database.WithClock(clock.Now))
	ctx := context.Background()

	created, err := db.ProjectRepo().Create(ctx, projectInput("Stable", true))
	require.NoError(t, err)

	updated, err := db.ProjectRepo().Update(ctx, created.ID, models.ProjectPatch{})
	require.NoError(t, err)
	assert.Equal(t, created.Title, updated.Title)
	assert.True(t, created.UpdatedAt.Equal(updated.UpdatedAt))
}

func TestProjectRepo_DeleteThenNotFound(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	created, err := db.ProjectRepo().Create(ctx, projectInput("Doomed", true))
	require.NoError(t, err)

	require.NoError(t, db.ProjectRepo().Delete(ctx, created.ID))

	_, err = db.ProjectRepo().FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = db.ProjectRepo().GetPublic(ctx, created.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = db.ProjectRepo().Update(ctx, created.ID, models.ProjectPatch{Title: models.Some("x")})
	assert.ErrorIs(t, err, database.ErrNotFound)

	assert.ErrorIs(t, db.ProjectRepo().Delete(ctx, created.ID), database.ErrNotFound)
}

func TestProjectRepo_Visibility(t *testing.T) {
	clock := newClock()
	db := dbtest.New(t, database.WithClock(clock.Now))
	ctx := context.Background()

	first, err := db.ProjectRepo().Create(ctx, projectInput("First", true))
	require.NoError(t, err)
	hidden, err := db.ProjectRepo().Create(ctx, projectInput("Hidden", false))
	require.NoError(t, err)
	second, err := db.ProjectRepo().Create(ctx, projectInput("Second", true))
	require.NoError(t, err)

	public, err := db.ProjectRepo().ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 2)
	assert.Equal(t, first.ID, public[0].ID)
	assert.Equal(t, second.ID, public[1].ID)

	admin, err := db.ProjectRepo().ListAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, admin, 3)
	assert.Equal(t, second.ID, admin[0].ID, "admin listing is newest first")
	assert.Equal(t, hidden.ID, admin[1].ID)

	_, err = db.ProjectRepo().GetPublic(ctx, hidden.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	found, err := db.ProjectRepo().FindByID(ctx, hidden.ID)
	require.NoError(t, err)
	assert.False(t, found.Visible)
}

func TestProjectRepo_ListEmptyIsNotNil(t *testing.T) {
	db := dbtest.New(t)

	projects, err := db.ProjectRepo().ListPublic(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestSkillRepo_OrderedByDisplayOrder(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	for _, in := range []models.SkillInput{
		{Name: "Python", Category: "Programming", Order: intPtr(12)},
		{Name: "Go", Category: "Programming", Order: intPtr(3)},
		{Name: "Rust", Category: "Programming", Order: intPtr(9)},
		{Name: "Secret", Category: "Programming", Order: intPtr(1), Visible: boolPtr(false)},
	} {
		_, err := db.SkillRepo().Create(ctx, in)
		require.NoError(t, err)
	}

	skills, err := db.SkillRepo().ListPublic(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Go", "Rust", "Python"}, names)

	all, err := db.SkillRepo().ListAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Secret", all[0].Name)
}

func TestSkillRepo_UpdateZeroValues(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	created, err := db.SkillRepo().Create(ctx, models.SkillInput{Name: "Go", Category: "Programming", Level: intPtr(90)})
	require.NoError(t, err)
	assert.Equal(t, 90, created.Level)

	updated, err := db.SkillRepo().Update(ctx, created.ID, models.SkillPatch{
		Level:   models.Some(0),
		Visible: models.Some(false),
		Icon:    models.Some("go.svg"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Level)
	assert.False(t, updated.Visible)
	assert.Equal(t, strPtr("go.svg"), updated.Icon)
	assert.Equal(t, "Go", updated.Name)
}

func TestCertificateRepo_PriorityAndDefaults(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	low, err := db.CertificateRepo().Create(ctx, models.CertificateInput{Name: "B", Issuer: "I", Date: "2024", Priority: intPtr(5)})
	require.NoError(t, err)
	high, err := db.CertificateRepo().Create(ctx, models.CertificateInput{Name: "A", Issuer: "I", Date: "2023", Priority: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, "active", low.Status)

	certs, err := db.CertificateRepo().ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, certs, 2)
	assert.Equal(t, high.ID, certs[0].ID)
	assert.Equal(t, low.ID, certs[1].ID)

	updated, err := db.CertificateRepo().Update(ctx, low.ID, models.CertificatePatch{Status: models.Some("expired")})
	require.NoError(t, err)
	assert.Equal(t, "expired", updated.Status)
	assert.Equal(t, "B", updated.Name)

	require.NoError(t, db.CertificateRepo().Delete(ctx, low.ID))
	_, err = db.CertificateRepo().Update(ctx, low.ID, models.CertificatePatch{})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestMessageRepo(t *testing.T) {
	clock := newClock()
	db := dbtest.New(t, database.WithClock(clock.Now))
	ctx := context.Background()

	older, err := db.MessageRepo().Create(ctx,
		models.MessageInput{Name: "Ada", Email: "ada@x.com", Message: "hi"},
		models.RequestMeta{IP: "10.0.0.1", UserAgent: "curl/8"},
	)
	require.NoError(t, err)
	assert.Equal(t, models.MessageStatusUnread, older.Status)
	assert.Equal(t, strPtr("10.0.0.1"), older.IP)
	assert.Equal(t, strPtr("curl/8"), older.UserAgent)

	newer, err := db.MessageRepo().Create(ctx,
		models.MessageInput{Name: "Grace", Email: "grace@x.com", Message: "hello"},
		models.RequestMeta{},
	)
	require.NoError(t, err)
	assert.Nil(t, newer.IP)

	messages, err := db.MessageRepo().ListAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, newer.ID, messages[0].ID)

	t.Run("status is unconstrained", func(t *testing.T) {
		require.NoError(t, db.MessageRepo().SetStatus(ctx, older.ID, "flagged"))

		stored, err := db.MessageRepo().FindByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, "flagged", stored.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, db.MessageRepo().SetStatus(ctx, uuid.New(), models.MessageStatusRead), database.ErrNotFound)
		assert.ErrorIs(t, db.MessageRepo().Delete(ctx, uuid.New()), database.ErrNotFound)
	})
}

func TestAdminRepo(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	_, err := db.AdminRepo().FindByUsername(ctx, "admin")
	assert.ErrorIs(t, err, database.ErrNotFound)

	created, err := db.AdminRepo().Create(ctx, "admin", "admin@example.com", "$2a$10$hash")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, created.Role)

	_, err = db.AdminRepo().Create(ctx, "admin", "other@example.com", "$2a$10$hash")
	assert.Error(t, err, "usernames are unique")

	at := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.AdminRepo().TouchLastLogin(ctx, created.ID, at))

	found, err := db.AdminRepo().FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, found.LastLogin)
	assert.True(t, found.LastLogin.Equal(at))

	require.NoError(t, db.AdminRepo().SetPasswordHash(ctx, "admin", "$2a$10$other"))
	assert.ErrorIs(t, db.AdminRepo().SetPasswordHash(ctx, "ghost", "x"), database.ErrNotFound)
}

func TestDatabase_Stats(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	for i, visible := range []bool{true, true, false} {
		_, err := db.ProjectRepo().Create(ctx, projectInput(string(rune('A'+i)), visible))
		require.NoError(t, err)
	}
	for _, name := range []string{"Go", "SQL"} {
		_, err := db.SkillRepo().Create(ctx, models.SkillInput{Name: name, Category: "Programming"})
		require.NoError(t, err)
	}
	read, err := db.MessageRepo().Create(ctx, models.MessageInput{Name: "A", Email: "a@x.com", Message: "m"}, models.RequestMeta{})
	require.NoError(t, err)
	_, err = db.MessageRepo().Create(ctx, models.MessageInput{Name: "B", Email: "b@x.com", Message: "m"}, models.RequestMeta{})
	require.NoError(t, err)
	require.NoError(t, db.MessageRepo().SetStatus(ctx, read.ID, models.MessageStatusRead))

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{
		TotalProjects:     3,
		TotalSkills:       2,
		TotalCertificates: 0,
		TotalMessages:     2,
		UnreadMessages:    1,
	}, stats)
}

func TestDatabase_Ping(t *testing.T) {
	db := dbtest.New(t)
	assert.NoError(t, db.Ping(context.Background()))
}
