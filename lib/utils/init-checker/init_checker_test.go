package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface{ Name() string }

type impl struct{}

func (*impl) Name() string { return "impl" }

func TestCheck(t *testing.T) {
	t.Run("initialized check", func(t *testing.T) {
		var p provider = &impl{}
		require.NoError(t, Check("provider", p, "limit", 0))
	})
	t.Run("typed nil check", func(t *testing.T) {
		var ptr *impl
		var p provider = ptr
		require.EqualError(t, Check("ok", &impl{}, "provider", p), "зависимость provider не инициализирована")
	})
	t.Run("bad pairs check", func(t *testing.T) {
		require.Error(t, Check("only-name"))
		require.Error(t, Check(1, &impl{}))
		require.Panics(t, func() { CheckInit("db", nil) })
	})
}
