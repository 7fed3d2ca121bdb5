package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanketkurve/portfolio-backend/auth"
	"github.com/sanketkurve/portfolio-backend/database/dbtest"
)

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok, "expected an oops error, got %v", err)
	assert.Equal(t, code, oopsErr.Code())
}

func TestSeedDatabase_RequiresCredentials(t *testing.T) {
	db := dbtest.New(t)

	err := seedDatabase(context.Background(), db, auth.NewBcryptHasher(bcrypt.MinCost), &seedConfig{username: "admin"}, &bytes.Buffer{})
	require.Error(t, err)
	assertErrorCode(t, err, "CONFIG_INVALID")
}

func TestSeedDatabase_IsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	cfg := &seedConfig{username: "SanketKurve", email: "sanket@example.com", password: "first-pass", demo: true}

	var out bytes.Buffer
	require.NoError(t, seedDatabase(ctx, db, hasher, cfg, &out))
	assert.Contains(t, out.String(), `Created admin "SanketKurve"`)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalProjects)
	assert.EqualValues(t, 3, stats.TotalSkills)
	assert.EqualValues(t, 1, stats.TotalCertificates)

	out.Reset()
	cfg.password = "second-pass"
	require.NoError(t, seedDatabase(ctx, db, hasher, cfg, &out))
	assert.Contains(t, out.String(), "already exists")
	assert.Contains(t, out.String(), "skipping demo content")

	admin, err := db.AdminRepo().FindByUsername(ctx, "SanketKurve")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("first-pass", admin.PasswordHash))

	stats, err = db.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalProjects)
}

func TestSeedDatabase_ResetPassword(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	require.NoError(t, seedDatabase(ctx, db, hasher, &seedConfig{username: "admin", password: "old"}, &bytes.Buffer{}))
	require.NoError(t, seedDatabase(ctx, db, hasher, &seedConfig{username: "admin", password: "new", resetPassword: true}, &bytes.Buffer{}))

	admin, err := db.AdminRepo().FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("new", admin.PasswordHash))
	assert.False(t, hasher.Verify("old", admin.PasswordHash))
}

func TestSeedConfig_FillFrom(t *testing.T) {
	cfg := &seedConfig{username: "flag-user"}
	cfg.fillFrom(map[string]string{
		"ADMIN_USERNAME": "env-user",
		"ADMIN_EMAIL":    "env@example.com",
		"ADMIN_PASSWORD": "env-pass",
	})

	assert.Equal(t, "flag-user", cfg.username)
	assert.Equal(t, "env@example.com", cfg.email)
	assert.Equal(t, "env-pass", cfg.password)
}

func TestHashPasswordCmd(t *testing.T) {
	cmd := NewHashPasswordCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(bytes.NewBufferString("from-stdin\n"))
	cmd.SetArgs([]string{"--cost", "4"})

	require.NoError(t, cmd.Execute())

	hash := bytes.TrimSpace(out.Bytes())
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("from-stdin")))
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "seed", "generate", "hash-password"}, names)
}
