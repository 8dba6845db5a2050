package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/filmcard"
	"github.com/fwojciec/filmcard/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestConfigService_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults when nothing is stored", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConfigService(setupTestDB(t))

		cfg, err := svc.Snapshot(context.Background(), "#films")
		require.NoError(t, err)
		assert.Equal(t, "#films", cfg.Destination)
		assert.Equal(t, filmcard.ParseLineSpec(filmcard.DefaultOrder), cfg.Order)
		assert.Equal(t, filmcard.DefaultFormats(), cfg.Formats)
		assert.NotZero(t, cfg.Version)
	})

	t.Run("destination overrides global overrides default", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConfigService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.SetFormat(ctx, filmcard.GlobalDestination, "rating", "IMDb: %(rating)s"))
		require.NoError(t, svc.SetFormat(ctx, filmcard.GlobalDestination, "runtime", "[%(runtime)s]"))
		require.NoError(t, svc.SetFormat(ctx, "#films", "rating", "%(rating)s/10"))
		require.NoError(t, svc.SetOrder(ctx, "#films", filmcard.ParseLineSpec("title;rating,runtime")))

		cfg, err := svc.Snapshot(ctx, "#films")
		require.NoError(t, err)
		assert.Equal(t, "%(rating)s/10", cfg.Formats["rating"])
		assert.Equal(t, "[%(runtime)s]", cfg.Formats["runtime"])
		assert.Equal(t, "%(name)s (%(year)s)", cfg.Formats["title"])
		assert.Equal(t, filmcard.LineSpec{{"title"}, {"rating", "runtime"}}, cfg.Order)

		other, err := svc.Snapshot(ctx, "#other")
		require.NoError(t, err)
		assert.Equal(t, "IMDb: %(rating)s", other.Formats["rating"])
		assert.Equal(t, filmcard.ParseLineSpec(filmcard.DefaultOrder), other.Order)
	})

	t.Run("snapshot is unaffected by later updates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConfigService(setupTestDB(t))
		ctx := context.Background()

		before, err := svc.Snapshot(ctx, "#films")
		require.NoError(t, err)

		require.NoError(t, svc.SetFormat(ctx, "#films", "url", "<%(url)s>"))

		after, err := svc.Snapshot(ctx, "#films")
		require.NoError(t, err)

		assert.Equal(t, "%(url)s", before.Formats["url"])
		assert.Equal(t, "<%(url)s>", after.Formats["url"])
		assert.NotEqual(t, before.Version, after.Version)
	})

	t.Run("version depends only on resolved values", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConfigService(setupTestDB(t))
		ctx := context.Background()

		a, err := svc.Snapshot(ctx, "#a")
		require.NoError(t, err)

		require.NoError(t, svc.SetFormat(ctx, "#b", "url", filmcard.DefaultFormats()["url"]))
		b, err := svc.Snapshot(ctx, "#b")
		require.NoError(t, err)

		assert.Equal(t, a.Version, b.Version)
	})
}

func TestConfigService_SetFormat(t *testing.T) {
	t.Parallel()

	t.Run("rejects malformed format", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConfigService(setupTestDB(t))

		err := svc.SetFormat(context.Background(), "#films", "rating", "%(rating")
		assert.Equal(t, filmcard.EINVALID, filmcard.ErrorCode(err))
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConfigService(setupTestDB(t))

		err := svc.SetFormat(context.Background(), "#films", "budget", "%(budget)s")
		assert.Equal(t, filmcard.EINVALID, filmcard.ErrorCode(err))
	})

	t.Run("rejects empty or separator names", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConfigService(setupTestDB(t))
		ctx := context.Background()

		assert.Equal(t, filmcard.EINVALID, filmcard.ErrorCode(svc.SetFormat(ctx, "#films", " ", "x")))
		assert.Equal(t, filmcard.EINVALID, filmcard.ErrorCode(svc.SetFormat(ctx, "#films", "a;b", "x")))
	})

	t.Run("overwrites and stamps update time", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConfigService(setupTestDB(t))
		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		svc.Now = func() time.Time { return now }
		ctx := context.Background()

		require.NoError(t, svc.SetFormat(ctx, "#films", "year", "%(year)s"))
		now = now.Add(time.Hour)
		require.NoError(t, svc.SetFormat(ctx, "#films", "year", "(%(year)s)"))

		settings, err := svc.FindSettings(ctx, filmcard.SettingFilter{Destination: ptr("#films")})
		require.NoError(t, err)
		require.Len(t, settings, 1)
		assert.Equal(t, "formats.year", settings[0].Key)
		assert.Equal(t, "(%(year)s)", settings[0].Value)
		assert.Equal(t, now, settings[0].UpdatedAt)
	})
}

func TestConfigService_SetOrder(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewConfigService(setupTestDB(t))

	err := svc.SetOrder(context.Background(), "#films", filmcard.ParseLineSpec(" ; ,"))
	assert.Equal(t, filmcard.EINVALID, filmcard.ErrorCode(err))
}

func TestConfigService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes stored values", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConfigService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.SetFormat(ctx, "#films", "url", "<%(url)s>"))
		require.NoError(t, svc.SetOrder(ctx, "#films", filmcard.LineSpec{{"url"}}))

		require.NoError(t, svc.DeleteFormat(ctx, "#films", "url"))
		require.NoError(t, svc.DeleteOrder(ctx, "#films"))

		cfg, err := svc.Snapshot(ctx, "#films")
		require.NoError(t, err)
		assert.Equal(t, "%(url)s", cfg.Formats["url"])
		assert.Equal(t, filmcard.ParseLineSpec(filmcard.DefaultOrder), cfg.Order)
	})

	t.Run("returns not found for missing values", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConfigService(setupTestDB(t))
		ctx := context.Background()

		assert.Equal(t, filmcard.ENOTFOUND, filmcard.ErrorCode(svc.DeleteFormat(ctx, "#films", "url")))
		assert.Equal(t, filmcard.ENOTFOUND, filmcard.ErrorCode(svc.DeleteOrder(ctx, "#films")))
	})
}

func TestConfigService_FindSettings(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewConfigService(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, svc.SetFormat(ctx, "#b", "url", "b"))
	require.NoError(t, svc.SetFormat(ctx, "#a", "url", "a"))
	require.NoError(t, svc.SetOrder(ctx, "#a", filmcard.LineSpec{{"url"}}))
	require.NoError(t, svc.SetFormat(ctx, filmcard.GlobalDestination, "url", "g"))

	t.Run("orders by destination and key", func(t *testing.T) {
		all, err := svc.FindSettings(ctx, filmcard.SettingFilter{})
		require.NoError(t, err)
		require.Len(t, all, 4)
		got := make([]string, len(all))
		for i, s := range all {
			got[i] = s.Destination + "/" + s.Key
		}
		assert.Equal(t, []string{"/formats.url", "#a/formats.url", "#a/order", "#b/formats.url"}, got)
	})

	t.Run("filters by key", func(t *testing.T) {
		settings, err := svc.FindSettings(ctx, filmcard.SettingFilter{Key: ptr(filmcard.SettingOrder)})
		require.NoError(t, err)
		require.Len(t, settings, 1)
		assert.Equal(t, "#a", settings[0].Destination)
	})

	t.Run("paginates", func(t *testing.T) {
		settings, err := svc.FindSettings(ctx, filmcard.SettingFilter{Offset: 1, Limit: 2})
		require.NoError(t, err)
		require.Len(t, settings, 2)
		assert.Equal(t, "#a", settings[0].Destination)
		assert.Equal(t, "order", settings[1].Key)

		rest, err := svc.FindSettings(ctx, filmcard.SettingFilter{Offset: 3})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "#b", rest[0].Destination)
	})
}
