package events

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// SendFunc returns true if data was successfully sent
type SendFunc func([]byte) bool

type Client struct {
	mu   sync.Mutex
	send SendFunc
}

func NewClient(send SendFunc) *Client {
	return &Client{send: send}
}

// Send serializes writes, websocket connections allow a single writer
func (c *Client) Send(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.send(data)
}

// Clients is needed as a user may be connected more than once
type Clients []*Client

// Hub delivers events to the websocket clients of the user they belong to
type Hub struct {
	users cmap.ConcurrentMap[string, Clients]
}

func NewHub() *Hub {
	return &Hub{users: cmap.New[Clients]()}
}

func userKey(userID uint64) string {
	return strconv.FormatUint(userID, 10)
}

func (h *Hub) Add(userID uint64, c *Client) {
	h.users.Upsert(userKey(userID), Clients{c}, func(exist bool, valueInMap, newValue Clients) Clients {
		if exist {
			return append(valueInMap, c)
		}
		return newValue
	})
}

func (h *Hub) Remove(userID uint64, c *Client) {
	key := userKey(userID)
	h.users.Upsert(key, Clients{}, func(exist bool, valueInMap, newValue Clients) Clients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
	h.users.RemoveCb(key, func(_ string, v Clients, exists bool) bool {
		return exists && len(v) == 0
	})
}

// Connected returns the number of connections the user currently has
func (h *Hub) Connected(userID uint64) int {
	clients, _ := h.users.Get(userKey(userID))
	return len(clients)
}

func (h *Hub) Publish(_ context.Context, e Event) error {
	clients, ok := h.users.Get(userKey(e.UserID))
	if !ok || len(clients) == 0 {
		return nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	for _, c := range clients {
		c.Send(data)
	}
	return nil
}
