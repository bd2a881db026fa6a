package main

import (
	"fmt"
	"net"
	"strconv"
)

// subnetOf returns the network of the local interface holding ip.
func subnetOf(ip net.IP) (net.IPNet, error) {
	if ip == nil || ip.IsUnspecified() {
		return net.IPNet{}, fmt.Errorf("unspecified IP %v", ip)
	}
	var found *net.IPNet
	err := eachInterfaceNet(func(ipnet *net.IPNet) bool {
		if ipnet.Contains(ip) || ipnet.IP.Equal(ip) {
			found = ipnet
			return true
		}
		return false
	})
	if err != nil {
		return net.IPNet{}, err
	}
	if found == nil {
		return net.IPNet{}, fmt.Errorf("no interface found for ip %v", ip)
	}
	return *found, nil
}

// eachInterfaceNet calls fn for every address of every local interface until
// fn returns true.
func eachInterfaceNet(fn func(*net.IPNet) bool) error {
	ifaces, err := net.Interfaces()
	if err != nil {
		return err
	}
	for _, ifi := range ifaces {
		if ifi.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := ifi.Addrs()
		for _, a := range addrs {
			var ipnet *net.IPNet
			switch v := a.(type) {
			case *net.IPNet:
				ipnet = v
			case *net.IPAddr:
				ipnet = &net.IPNet{IP: v.IP, Mask: v.IP.DefaultMask()}
			default:
				continue
			}
			if fn(ipnet) {
				return nil
			}
		}
	}
	return nil
}

// advertisedAddress turns the bound address into one clients can reach.
// A wildcard bind is replaced by the first non-loopback IPv4 address.
func advertisedAddress(addr *net.UDPAddr) (string, error) {
	if !addr.IP.IsUnspecified() && addr.IP != nil {
		if _, err := subnetOf(addr.IP); err != nil {
			return "", err
		}
		return addr.String(), nil
	}
	var ip net.IP
	err := eachInterfaceNet(func(ipnet *net.IPNet) bool {
		if v4 := ipnet.IP.To4(); v4 != nil && !v4.IsLoopback() {
			ip = v4
			return true
		}
		return false
	})
	if err != nil {
		return "", err
	}
	if ip == nil {
		ip = net.IPv4(127, 0, 0, 1)
	}
	return net.JoinHostPort(ip.String(), strconv.Itoa(addr.Port)), nil
}

// splitHostPort splits an address into host and port, using defaultPort if no port is specified.
func splitHostPort(addr string, defaultPort int) (string, string, error) {
	ipaddr, port, err := net.SplitHostPort(addr)
	if err != nil {
		addr = addr + ":" + strconv.Itoa(defaultPort)
		ipaddr, port, err = net.SplitHostPort(addr)
		if err != nil {
			return "", "", err
		}
	}
	return ipaddr, port, nil
}
