package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// Client is a managed top-level window as listed by the window manager.
type Client struct {
	ID    xproto.Window
	Title string
	Class string
}

// ListClients returns the EWMH client list with titles and WM_CLASS.
func (c *Connection) ListClients() ([]Client, error) {
	ids, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	clients := make([]Client, 0, len(ids))
	for _, id := range ids {
		client := Client{ID: id}
		if name, err := ewmh.WmNameGet(c.XUtil, id); err == nil && name != "" {
			client.Title = name
		} else if name, err := icccm.WmNameGet(c.XUtil, id); err == nil {
			client.Title = name
		}
		if class, err := icccm.WmClassGet(c.XUtil, id); err == nil && class != nil {
			client.Class = class.Class
		}
		clients = append(clients, client)
	}
	return clients, nil
}

// FindWindowByTitle returns the first client whose title contains substring.
func (c *Connection) FindWindowByTitle(substring string) (xproto.Window, error) {
	if substring == "" {
		return 0, fmt.Errorf("title must not be empty")
	}
	clients, err := c.ListClients()
	if err != nil {
		return 0, err
	}
	for _, client := range clients {
		if strings.Contains(client.Title, substring) {
			return client.ID, nil
		}
	}
	return 0, fmt.Errorf("no window found with title containing %q", substring)
}
