package slog_test

import (
	"bytes"
	stdslog "log/slog"
	"testing"

	"github.com/pproszowski/tagstrip"
	"github.com/pproszowski/tagstrip/mock"
	"github.com/pproszowski/tagstrip/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingStripper(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs timing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))

		next := &mock.Stripper{
			StripFn: func(document string, _ tagstrip.StripOptions) (string, error) {
				return "stripped", nil
			},
		}

		s := slog.NewLoggingStripper(next, logger)
		out, err := s.Strip("<p>x</p>", tagstrip.StripOptions{Tags: tagstrip.MustTagSet("p")})

		require.NoError(t, err)
		assert.Equal(t, "stripped", out)
		assert.Contains(t, buf.String(), "msg=strip")
		assert.Contains(t, buf.String(), "duration=")
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))

		next := &mock.Stripper{
			StripFn: func(string, tagstrip.StripOptions) (string, error) {
				return "", tagstrip.Errorf(tagstrip.EPARSE, "boom")
			},
		}

		s := slog.NewLoggingStripper(next, logger)
		_, err := s.Strip("x", tagstrip.StripOptions{})

		require.Error(t, err)
		assert.Equal(t, tagstrip.EPARSE, tagstrip.ErrorCode(err))
		assert.Contains(t, buf.String(), "strip failed")
	})
}
