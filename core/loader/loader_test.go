package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	enabled := &stubFeature{name: "catalog", enabled: true}
	disabled := &stubFeature{name: "docs", enabled: false}

	mgr := NewManager()
	mgr.Register(enabled)
	mgr.Register(disabled)

	loaded, err := mgr.LoadAll(fiber.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog"}, loaded)
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
}

func TestManager_LoadAllError(t *testing.T) {
	mgr := NewManager()
	mgr.Register(&stubFeature{name: "broken", enabled: true, err: errors.New("bad routes")})

	_, err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "failed to load feature broken")
}
