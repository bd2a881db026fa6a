package main

import (
	"net"
	"testing"
)

func TestSubnetOf(t *testing.T) {
	ipnet, err := subnetOf(net.ParseIP("127.0.0.1"))
	if err != nil {
		t.Fatalf("subnetOf error: %v", err)
	}
	if !ipnet.Contains(net.ParseIP("127.0.0.1")) {
		t.Fatalf("expected subnet %s to contain 127.0.0.1", ipnet.String())
	}
}

func TestSubnetOf_Unspecified(t *testing.T) {
	if _, err := subnetOf(net.IPv4zero); err == nil {
		t.Fatal("expected error for unspecified ip")
	}
}

func TestAdvertisedAddress_Loopback(t *testing.T) {
	addr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}
	actual, err := advertisedAddress(addr)
	if err != nil {
		t.Fatal(err)
	}
	if actual != "127.0.0.1:12345" {
		t.Fatalf("expected 127.0.0.1:12345, actual %s", actual)
	}
}

func TestAdvertisedAddress_Wildcard(t *testing.T) {
	actual, err := advertisedAddress(&net.UDPAddr{IP: net.IPv4zero, Port: 12345})
	if err != nil {
		t.Fatal(err)
	}
	host, port, err := net.SplitHostPort(actual)
	if err != nil {
		t.Fatal(err)
	}
	if port != "12345" {
		t.Fatalf("expected port 12345, actual %s", port)
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsUnspecified() {
		t.Fatalf("expected a concrete ip, actual %s", host)
	}
}

func TestSplitHostPort(t *testing.T) {
	tests := []struct {
		addr, host, port string
	}{
		{"localhost:9000", "localhost", "9000"},
		{"localhost", "localhost", "8080"},
		{":7000", "", "7000"},
	}
	for _, tt := range tests {
		host, port, err := splitHostPort(tt.addr, 8080)
		if err != nil {
			t.Fatal(err)
		}
		if host != tt.host || port != tt.port {
			t.Fatalf("%s: expected %s %s, actual %s %s", tt.addr, tt.host, tt.port, host, port)
		}
	}
}
