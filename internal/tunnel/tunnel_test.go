package tunnel

import "testing"

var testPorts = Ports{Opencode: 4096, Gateway: 9000}

func TestResolve_BothPorts(t *testing.T) {
	got := Resolve(map[int]string{
		4096: "https://oc.example.com",
		9000: "https://gw.example.com",
	}, testPorts)

	want := map[string]string{
		ServiceOpencode: "https://oc.example.com",
		ServiceGateway:  "https://gw.example.com",
		ServiceVSCode:   "https://gw.example.com/vscode",
		ServiceVNC:      "https://gw.example.com/vnc",
		ServiceTTYD:     "https://gw.example.com/ttyd",
	}

	if len(got) != len(want) {
		t.Fatalf("Resolve() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("Resolve()[%s] = %q, want %q", k, got[k], v)
		}
	}
}

func TestResolve_GatewayOnly(t *testing.T) {
	got := Resolve(map[int]string{9000: "https://gw.example.com"}, testPorts)

	if len(got) != 4 {
		t.Fatalf("Resolve() has %d entries, want 4: %v", len(got), got)
	}
	for _, svc := range []string{ServiceGateway, ServiceVSCode, ServiceVNC, ServiceTTYD} {
		if _, ok := got[svc]; !ok {
			t.Errorf("missing %s entry", svc)
		}
	}
	if _, ok := got[ServiceOpencode]; ok {
		t.Error("opencode entry should be absent without its tunnel")
	}
}

func TestResolve_OpencodeOnly(t *testing.T) {
	got := Resolve(map[int]string{4096: "https://oc.example.com"}, testPorts)

	if len(got) != 1 {
		t.Fatalf("Resolve() has %d entries, want 1: %v", len(got), got)
	}
	if got[ServiceOpencode] != "https://oc.example.com" {
		t.Errorf("opencode = %q", got[ServiceOpencode])
	}
}

func TestResolve_NoPorts(t *testing.T) {
	got := Resolve(map[int]string{}, testPorts)
	if len(got) != 0 {
		t.Errorf("Resolve() = %v, want empty", got)
	}

	got = Resolve(nil, testPorts)
	if len(got) != 0 {
		t.Errorf("Resolve(nil) = %v, want empty", got)
	}
}

func TestResolve_UnknownPortsIgnored(t *testing.T) {
	got := Resolve(map[int]string{8080: "https://stray.example.com"}, testPorts)
	if len(got) != 0 {
		t.Errorf("unknown ports must not produce entries: %v", got)
	}
}
