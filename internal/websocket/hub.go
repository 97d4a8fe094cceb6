package websocket

import (
	"log"
	"sync"
)

type HubInterface interface {
	BroadcastToPlayers(ids []string, msg OutgoingMessage)
	SendToPlayer(id string, msg OutgoingMessage)
	Close()
}

type Hub struct {
	clients    map[string]*Client // playerID -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastReq
	sendOne    chan sendReq
	incoming   chan IncomingMessage
	OnIncoming func(IncomingMessage)
	quit       chan struct{}
	mu         sync.RWMutex
}

type broadcastReq struct {
	PlayerIDs []string
	Message   OutgoingMessage
}

type sendReq struct {
	PlayerID string
	Message  OutgoingMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq),
		sendOne:    make(chan sendReq),
		incoming:   make(chan IncomingMessage),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	log.Println("Hub started")

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.PlayerID] = c
			log.Printf("Hub.register -> %s (当前连接数: %d)", c.PlayerID, len(h.clients))
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.PlayerID]; ok {
				delete(h.clients, c.PlayerID)
				log.Printf("Hub.unregister -> %s (当前连接数: %d)", c.PlayerID, len(h.clients))
				close(c.Send)
			}
			h.mu.Unlock()

		case req := <-h.broadcast:
			h.mu.RLock()
			for _, id := range req.PlayerIDs {
				if client, ok := h.clients[id]; ok {
					select {
					case client.Send <- req.Message:
					default:
						// 慢客户端直接丢弃，避免阻塞 Hub
					}
				}
			}
			h.mu.RUnlock()

		case req := <-h.sendOne:
			h.mu.RLock()
			if client, ok := h.clients[req.PlayerID]; ok {
				select {
				case client.Send <- req.Message:
				default:
				}
			}
			h.mu.RUnlock()

		case req := <-h.incoming:
			// 玩家消息统一转发给游戏层
			if h.OnIncoming != nil {
				h.OnIncoming(req)
			}

		case <-h.quit:
			h.mu.Lock()
			for _, c := range h.clients {
				close(c.Send)
			}
			h.clients = make(map[string]*Client)
			h.mu.Unlock()
			return
		}
	}
}

// Broadcast to multiple players
func (h *Hub) BroadcastToPlayers(ids []string, msg OutgoingMessage) {
	h.broadcast <- broadcastReq{
		PlayerIDs: ids,
		Message:   msg,
	}
}

// Send to a single player (safe concurrent)
func (h *Hub) SendToPlayer(id string, msg OutgoingMessage) {
	h.sendOne <- sendReq{
		PlayerID: id,
		Message:  msg,
	}
}

func (h *Hub) Close() {
	close(h.quit)
}
