package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	lines int
	name  string
}

func withLines(n int) Option[*target] {
	return New(func(t *target) error {
		if n < 0 {
			return errors.New("negative lines")
		}
		t.lines = n

		return nil
	})
}

func withName(name string) Option[*target] {
	return NoError(func(t *target) { t.name = name })
}

func TestApply(t *testing.T) {
	tg := &target{}
	err := Apply(tg, withLines(8), nil, withName("cache"))
	require.NoError(t, err)
	require.Equal(t, 8, tg.lines)
	require.Equal(t, "cache", tg.name)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	tg := &target{}
	err := Apply(tg, withLines(-1), withName("never"))
	require.Error(t, err)
	require.Empty(t, tg.name)
}

func TestApply_Order(t *testing.T) {
	tg := &target{}
	require.NoError(t, Apply(tg, withLines(1), withLines(2)))
	require.Equal(t, 2, tg.lines)
}
