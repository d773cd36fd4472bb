// Package sse fans server events out to connected Server-Sent Events clients.
package sse

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// TopicAdmin carries back-office events to super admins.
const TopicAdmin = "admin"

const (
	EventQuoteCreated    = "quote_created"
	EventCatalogReloaded = "catalog_reloaded"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type QuoteCreatedEvent struct {
	QuoteID    uuid.UUID `json:"quote_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	TemplateID *string   `json:"template_id,omitempty"`
}

type CatalogReloadedEvent struct {
	Templates int `json:"templates"`
}

type Client struct {
	ID     string
	UserID uuid.UUID
	Topics map[string]bool
	Send   chan []byte
}

func NewClient(userID uuid.UUID, topics ...string) *Client {
	c := &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Topics: make(map[string]bool, len(topics)),
		Send:   make(chan []byte, 256),
	}
	for _, t := range topics {
		c.Topics[t] = true
	}
	return c
}

type topicMessage struct {
	topic string
	event Event
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *topicMessage
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *topicMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run dispatches registrations and broadcasts until ctx is cancelled. All
// remaining client channels are closed on exit. Run must be called once.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				delete(h.clients, id)
				close(client.Send)
			}
			h.mu.Unlock()
			close(h.done)
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.event)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for _, client := range h.clients {
				if client.Topics[msg.topic] {
					select {
					case client.Send <- data:
					default:
						// Slow client, drop
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds client to the hub. Once the hub has stopped, the client's
// Send channel is closed straight away so its reader returns.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

// Unregister is a no-op once the hub has stopped; Run already closed every
// client it held.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues event for every client subscribed to topic. Events published
// after the hub stopped are discarded.
func (h *Hub) Publish(topic string, event Event) {
	select {
	case h.broadcast <- &topicMessage{topic: topic, event: event}:
	case <-h.done:
	}
}

func (h *Hub) BroadcastQuoteCreated(e QuoteCreatedEvent) {
	h.Publish(TopicAdmin, Event{Type: EventQuoteCreated, Data: e})
}

func (h *Hub) BroadcastCatalogReloaded(templates int) {
	h.Publish(TopicAdmin, Event{Type: EventCatalogReloaded, Data: CatalogReloadedEvent{Templates: templates}})
}
