package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/filmcard"
	main "github.com/fwojciec/filmcard/cmd/filmcard"
	"github.com/fwojciec/filmcard/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfigDeps(svc filmcard.ConfigService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdin:  strings.NewReader(""),
		Stdout: stdout,
		Stderr: stderr,
		Config: svc,
	}, stdout, stderr
}

func TestConfigShowCmd_Run(t *testing.T) {
	t.Parallel()

	svc := &mock.ConfigService{
		SnapshotFn: func(_ context.Context, dest string) (*filmcard.OutputConfig, error) {
			return &filmcard.OutputConfig{
				Destination: dest,
				Order:       filmcard.ParseLineSpec("title;rating"),
				Formats:     map[string]string{"title": "%(name)s", "rating": "*%(rating)s*"},
				Version:     0xbeef,
			}, nil
		},
	}
	deps, stdout, _ := newConfigDeps(svc)

	cmd := &main.ConfigShowCmd{Dest: "#films"}
	require.NoError(t, cmd.Run(deps))

	out := stdout.String()
	assert.Contains(t, out, "destination: #films\n")
	assert.Contains(t, out, "version: 000000000000beef\n")
	assert.Contains(t, out, "order: title;rating\n")
	assert.Less(t, strings.Index(out, "  rating"), strings.Index(out, "  title"))
}

func TestConfigListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("global flag filters on the global destination", func(t *testing.T) {
		t.Parallel()

		var got filmcard.SettingFilter
		svc := &mock.ConfigService{
			FindSettingsFn: func(_ context.Context, filter filmcard.SettingFilter) ([]*filmcard.Setting, error) {
				got = filter
				return []*filmcard.Setting{{
					Key:       "order",
					Value:     "title",
					UpdatedAt: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
				}}, nil
			},
		}
		deps, stdout, _ := newConfigDeps(svc)

		cmd := &main.ConfigListCmd{Global: true}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, got.Destination)
		assert.Equal(t, filmcard.GlobalDestination, *got.Destination)
		assert.Contains(t, stdout.String(), "(global)")
		assert.Contains(t, stdout.String(), "2024-03-01 12:30")
	})

	t.Run("no settings", func(t *testing.T) {
		t.Parallel()

		svc := &mock.ConfigService{
			FindSettingsFn: func(context.Context, filmcard.SettingFilter) ([]*filmcard.Setting, error) {
				return nil, nil
			},
		}
		deps, stdout, _ := newConfigDeps(svc)

		cmd := &main.ConfigListCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "No settings stored")
	})
}

func TestConfigSetOrderCmd_Run(t *testing.T) {
	t.Parallel()

	var got filmcard.LineSpec
	svc := &mock.ConfigService{
		SetOrderFn: func(_ context.Context, dest string, spec filmcard.LineSpec) error {
			assert.Equal(t, "#films", dest)
			got = spec
			return nil
		},
	}
	deps, stdout, _ := newConfigDeps(svc)

	cmd := &main.ConfigSetOrderCmd{Spec: " title , year ;; rating ", Dest: "#films"}
	require.NoError(t, cmd.Run(deps))

	assert.Equal(t, filmcard.LineSpec{{"title", "year"}, {"rating"}}, got)
	assert.Equal(t, "Set order \"title,year;rating\" for #films\n", stdout.String())
}

func TestConfigUnsetFormatCmd_Run(t *testing.T) {
	t.Parallel()

	svc := &mock.ConfigService{
		DeleteFormatFn: func(context.Context, string, string) error {
			return filmcard.Errorf(filmcard.ENOTFOUND, "format %q not set", "title")
		},
	}
	deps, stdout, stderr := newConfigDeps(svc)

	cmd := &main.ConfigUnsetFormatCmd{Name: "title"}
	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Equal(t, filmcard.ENOTFOUND, filmcard.ErrorCode(err))
	assert.Empty(t, stdout.String())
	assert.Equal(t, "error: format \"title\" not set\n", stderr.String())
}

func TestConfigImportCmd_Run(t *testing.T) {
	t.Parallel()

	var calls []string
	svc := &mock.ConfigService{
		SetFormatFn: func(_ context.Context, dest, name, format string) error {
			calls = append(calls, dest+"|"+name+"|"+format)
			return nil
		},
		SetOrderFn: func(_ context.Context, dest string, spec filmcard.LineSpec) error {
			calls = append(calls, dest+"|order|"+spec.String())
			return nil
		},
	}
	deps, stdout, _ := newConfigDeps(svc)
	deps.Stdin = strings.NewReader(`
global:
  formats:
    title: "%(name)s"
destinations:
  "#films":
    order: title
`)

	cmd := &main.ConfigImportCmd{File: "-"}
	require.NoError(t, cmd.Run(deps))

	assert.ElementsMatch(t, []string{"|title|%(name)s", "#films|order|title"}, calls)
	assert.Equal(t, "Imported 2 settings\n", stdout.String())
}
