// Package discovery announces a running croupier over UDP multicast so that
// clients on the local network can find its address.
//
// A dealer starts an Announcer:
//
//	a := &discovery.Announcer{
//		Info:     discovery.Info{Service: discovery.Service, Address: "192.168.1.10:12345"},
//		Port:     53550,
//		Interval: 2 * time.Second,
//	}
//	if err := a.Start(); err != nil {
//		return err
//	}
//	defer a.Close()
//	for entry := range a.Entries {
//		fmt.Println("another croupier at", entry.Info.Address)
//	}
//
// A client listens for it:
//
//	entries, stop, err := discovery.Listen(53550)
//	...
//	entry := <-entries
//	fmt.Println(entry.Info.Address)
//
// Behavior:
//   - Announcements are sent to 239.0.0.1 on the configured port.
//   - Each packet starts with a random 8-byte key; an Announcer listens on
//     the same group and drops packets carrying its own key.
//   - The payload after the key is the JSON encoded Info.
package discovery
