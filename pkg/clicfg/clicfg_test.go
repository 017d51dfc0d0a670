package clicfg_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"groupme/pkg/clicfg"
)

type settings struct {
	Name    string        `flag:"name"`
	Verbose bool          `flag:"verbose"`
	Workers int           `flag:"workers"`
	TTL     time.Duration `flag:"ttl"`
	Tags    []string      `flag:"tag"`

	Ignored string
}

func parse(t *testing.T, args ...string) (settings, error) {
	t.Helper()

	var (
		got      settings
		parseErr error
	)

	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name"},
			&cli.BoolFlag{Name: "verbose"},
			&cli.IntFlag{Name: "workers", Value: 4},
			&cli.DurationFlag{Name: "ttl", Value: time.Hour},
			&cli.StringSliceFlag{Name: "tag"},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			parseErr = clicfg.ParseFlags(c, &got)
			return nil
		},
	}

	require.NoError(t, cmd.Run(t.Context(), append([]string{"test"}, args...)))
	return got, parseErr
}

func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		got, err := parse(t)
		require.NoError(t, err)
		require.Equal(t, 4, got.Workers)
		require.Equal(t, time.Hour, got.TTL)
		require.False(t, got.Verbose)
		require.Empty(t, got.Ignored)
	})

	t.Run("every supported type", func(t *testing.T) {
		t.Parallel()

		got, err := parse(t,
			"--name", "groupme",
			"--verbose",
			"--workers", "8",
			"--ttl", "90m",
			"--tag", "a", "--tag", "b",
		)
		require.NoError(t, err)
		require.Equal(t, settings{
			Name:    "groupme",
			Verbose: true,
			Workers: 8,
			TTL:     90 * time.Minute,
			Tags:    []string{"a", "b"},
		}, got)
	})

	t.Run("rejects non-pointers", func(t *testing.T) {
		t.Parallel()

		err := clicfg.ParseFlags(&cli.Command{}, settings{})
		require.ErrorIs(t, err, clicfg.ErrCannotParseFlags)
	})
}
