package discovery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"time"
)

const multicastIpAddress = "239.0.0.1"

// Service is the service name a croupier announces.
const Service = "croupier"

const keySize = 8

// Info is the announced payload.
type Info struct {
	Service  string `json:"service"`
	Address  string `json:"address"`
	Decks    int    `json:"decks,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

// Entry is an announcement received from another process.
type Entry struct {
	Info Info
	From *net.UDPAddr
	Time time.Time
}

// Announcer periodically multicasts Info. Configure Info, Port and Interval
// before calling Start. After Start succeeds, announcements of other
// croupiers on the same port arrive on Entries; the announcer's own packets
// are filtered out by key.
type Announcer struct {
	Info     Info
	Port     uint16
	Interval time.Duration
	Logger   *slog.Logger
	Entries  <-chan Entry

	sendConn   *net.UDPConn
	stopListen func() error
	key        []byte
	done       chan struct{}
}

func groupAddr(port uint16) (*net.UDPAddr, error) {
	return net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", multicastIpAddress, port))
}

func newKey() []byte {
	return []byte(fmt.Sprintf("%08x", rand.Uint32()))
}

// Start opens the multicast socket and starts announcing in the background.
func (a *Announcer) Start() error {
	if a.Logger == nil {
		a.Logger = slog.Default()
	}
	if a.Interval <= 0 {
		a.Interval = time.Second
	}
	packet, err := encode(newKey(), a.Info)
	if err != nil {
		return err
	}
	a.key = packet[:keySize]
	addr, err := groupAddr(a.Port)
	if err != nil {
		return err
	}
	a.Entries, a.stopListen, err = listen(a.Port, a.key)
	if err != nil {
		return err
	}
	a.sendConn, err = net.DialUDP("udp", nil, addr)
	if err != nil {
		a.stopListen()
		return err
	}
	a.done = make(chan struct{})
	go a.announce(packet)
	return nil
}

// Close stops announcing and listening.
func (a *Announcer) Close() error {
	close(a.done)
	err1 := a.stopListen()
	err2 := a.sendConn.Close()
	return errors.Join(err1, err2)
}

func (a *Announcer) announce(packet []byte) {
	ticker := time.NewTicker(a.Interval)
	defer ticker.Stop()
	for {
		if _, err := a.sendConn.Write(packet); err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			a.Logger.Warn("announcement failed", "error", err)
		}
		select {
		case <-a.done:
			return
		case <-ticker.C:
		}
	}
}

// Listen joins the multicast group on port and delivers every croupier
// announcement until stop is called.
func Listen(port uint16) (entries <-chan Entry, stop func() error, err error) {
	return listen(port, nil)
}

// listen is Listen dropping packets tagged with ownKey.
func listen(port uint16, ownKey []byte) (<-chan Entry, func() error, error) {
	addr, err := groupAddr(port)
	if err != nil {
		return nil, nil, err
	}
	conn, err := net.ListenMulticastUDP("udp", nil, addr)
	if err != nil {
		return nil, nil, err
	}
	out := make(chan Entry, 10)
	go func() {
		defer close(out)
		buffer := make([]byte, 1024)
		for {
			n, from, err := conn.ReadFromUDP(buffer)
			if err != nil {
				return
			}
			key, info, err := decode(buffer[:n])
			if err != nil || info.Service != Service {
				continue
			}
			if ownKey != nil && bytes.Equal(key, ownKey) {
				continue
			}
			select {
			case out <- Entry{Info: info, From: from, Time: time.Now()}:
			default:
			}
		}
	}()
	return out, conn.Close, nil
}

func encode(key []byte, info Info) ([]byte, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", keySize, len(key))
	}
	payload, err := json.Marshal(info)
	if err != nil {
		return nil, err
	}
	return append(bytes.Clone(key), payload...), nil
}

func decode(packet []byte) ([]byte, Info, error) {
	var info Info
	if len(packet) <= keySize {
		return nil, info, fmt.Errorf("packet too short: %d bytes", len(packet))
	}
	if err := json.Unmarshal(packet[keySize:], &info); err != nil {
		return nil, info, err
	}
	return packet[:keySize], info, nil
}
