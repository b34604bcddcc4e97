package booking

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

func topicKey(facilityID, date string) string {
	return facilityID + "_" + date
}

// HandleWS subscribes a client to live updates for one (facility, date).
// The UI refreshes its availability view whenever a booking lands or frees.
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := topicKey(ps.ByName("facilityid"), ps.ByName("date"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[key] = append(subscribers[key], conn)
	mu.Unlock()

	for {
		// Keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[key]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[key] = newList
	mu.Unlock()

	conn.Close()
}

type wsMessage struct {
	Type string `json:"type"`
}

func broadcastUpdate(facilityID, date string) {
	data, _ := json.Marshal(wsMessage{Type: "update"})
	broadcast(topicKey(facilityID, date), data)
}

func broadcast(key string, val []byte) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[key]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, val); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[key] = newList
}
