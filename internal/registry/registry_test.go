package registry

import (
	"testing"

	"github.com/nfrund/alphaprime/internal/config"
	"github.com/stretchr/testify/assert"
)

type greeter struct{ name string }

func TestRegistry_SetGet(t *testing.T) {
	cfg := &config.Config{AppEnv: "test"}
	reg := New(cfg)
	key := Key[*greeter]("test.greeter")

	_, ok := Get(reg, key)
	assert.False(t, ok)

	Set(reg, key, &greeter{name: "hi"})
	got, ok := Get(reg, key)
	assert.True(t, ok)
	assert.Equal(t, "hi", got.name)
	assert.Same(t, cfg, reg.Config())
}

func TestRegistry_TypeMismatch(t *testing.T) {
	reg := New(nil)
	Set(reg, Key[string]("test.value"), "text")

	_, ok := Get(reg, Key[int]("test.value"))
	assert.False(t, ok)
}

func TestRegistry_MustGetPanics(t *testing.T) {
	reg := New(nil)
	assert.Panics(t, func() { MustGet(reg, Key[int]("missing")) })
}
