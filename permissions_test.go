package session_test

import (
	"testing"

	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
)

func TestPermissionCacheHas(t *testing.T) {
	cache := session.NewPermissionCache()
	cache.Load(map[string]bool{
		"Ventas_Tienda:Ver":   true,
		"ventas_tienda:crear": false,
	})

	tests := []struct {
		name    string
		module  string
		action  string
		allowed bool
	}{
		{"granted entry", "ventas_tienda", "ver", true},
		{"case insensitive lookup", "VENTAS_TIENDA", "VER", true},
		{"entry explicitly false", "ventas_tienda", "crear", false},
		{"unknown action", "ventas_tienda", "eliminar", false},
		{"unknown module", "inventario", "ver", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, cache.Has(tt.module, tt.action))
		})
	}
}

func TestPermissionCacheHasAnyIn(t *testing.T) {
	cache := session.NewPermissionCache()
	cache.Load(map[string]bool{
		"ventas_tienda:ver":   true,
		"ventas_tienda:crear": false,
		"reportes:exportar":   false,
	})

	assert.True(t, cache.HasAnyIn("ventas_tienda"))
	assert.True(t, cache.HasAnyIn("VENTAS_TIENDA"))
	assert.False(t, cache.HasAnyIn("reportes"), "all entries false means no access")
	assert.False(t, cache.HasAnyIn("inventario"))
}

func TestPermissionCacheLoadReplaces(t *testing.T) {
	cache := session.NewPermissionCache()
	cache.Load(map[string]bool{"ventas_tienda:ver": true})
	cache.Load(map[string]bool{"inventario:ver": true})

	assert.False(t, cache.Has("ventas_tienda", "ver"), "load replaces wholesale")
	assert.True(t, cache.Has("inventario", "ver"))
}

func TestPermissionCacheClear(t *testing.T) {
	cache := session.NewPermissionCache()
	cache.Load(map[string]bool{"ventas_tienda:ver": true})
	cache.Clear()

	assert.False(t, cache.Has("ventas_tienda", "ver"))
	assert.False(t, cache.HasAnyIn("ventas_tienda"))
	assert.Empty(t, cache.All())
}

func TestPermissionCacheAllCopies(t *testing.T) {
	cache := session.NewPermissionCache()
	cache.Load(map[string]bool{"ventas_tienda:ver": true})

	all := cache.All()
	all["ventas_tienda:ver"] = false

	assert.True(t, cache.Has("ventas_tienda", "ver"), "All returns a copy")
}
