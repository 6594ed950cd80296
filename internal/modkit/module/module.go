// Package module holds the contract every API module satisfies and the
// registry of port sets filled while the API is composed
// It sits apart from modkit so port types can import it without cycles
package module

import (
	"sync"

	phttp "ordertrack/internal/platform/net/http"
)

// Module is a named route set with an optional port bundle
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	Ports() any
}

var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores the port set of a mounted module, nil ports are skipped
func Register(name string, ports any) {
	if ports == nil {
		return
	}
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs fetches the port set registered under name as T
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Reset clears the registry between tests that compose the API
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
