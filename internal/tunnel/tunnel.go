// Package tunnel maps backend-assigned network tunnels, keyed by container
// port, to logical service URLs.
//
// Two well-known ports matter: the primary interactive service (opencode)
// and the multiplexed gateway. The gateway additionally derives vscode,
// vnc and ttyd entries by path-suffixing its base URL; those are path
// routes behind the single gateway tunnel, not independent backend tunnels.
//
// Resolution is total: a missing port yields a missing map entry, never an
// error. Callers treat tunnel availability as optional per port.
package tunnel

// Logical service names exposed in tunnel maps.
const (
	ServiceOpencode = "opencode"
	ServiceGateway  = "gateway"
	ServiceVSCode   = "vscode"
	ServiceVNC      = "vnc"
	ServiceTTYD     = "ttyd"
)

// Ports identifies the two well-known container ports.
type Ports struct {
	Opencode int
	Gateway  int
}

// Resolve maps backend tunnels (container port → URL) to logical service
// URLs. Only ports present in tunnels produce entries.
func Resolve(tunnels map[int]string, ports Ports) map[string]string {
	urls := make(map[string]string)

	if u, ok := tunnels[ports.Opencode]; ok {
		urls[ServiceOpencode] = u
	}
	if u, ok := tunnels[ports.Gateway]; ok {
		urls[ServiceGateway] = u
		urls[ServiceVSCode] = u + "/vscode"
		urls[ServiceVNC] = u + "/vnc"
		urls[ServiceTTYD] = u + "/ttyd"
	}

	return urls
}
