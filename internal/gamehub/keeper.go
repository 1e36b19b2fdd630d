package gamehub

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

// Keeper is a scorer's websocket connection: it feeds stat, shot and undo
// events onto the hub's mutation stream.
type Keeper struct {
	Hub   *Hub
	Conn  *websocket.Conn
	Close chan struct{}
}

func NewKeeper(hub *Hub, conn *websocket.Conn) *Keeper {
	return &Keeper{
		Hub:   hub,
		Conn:  conn,
		Close: make(chan struct{}),
	}
}

func (k *Keeper) WriteEvents() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		k.Conn.Close()
	}()
	for {
		select {
		case <-ticker.C:
			_ = k.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := k.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-k.Close:
			closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			writer, err := k.Conn.NextWriter(websocket.CloseMessage)
			if err != nil {
				return
			}
			_, _ = writer.Write(closeMessage)
			_ = writer.Close()
			return
		}
	}
}

func (k *Keeper) ReadEvents() {
	defer func() {
		select {
		case k.Hub.LeaveKeeper <- k:
		case <-k.Hub.Done():
		}
		k.Conn.Close()
	}()
	k.Conn.SetReadLimit(maxMessageSize)
	_ = k.Conn.SetReadDeadline(time.Now().Add(pongWait))
	k.Conn.SetPongHandler(func(string) error {
		_ = k.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, bytes, err := k.Conn.ReadMessage()
		if err != nil {
			select {
			case k.Hub.Errors <- err:
			case <-k.Hub.Done():
			}
			return
		}

		var genericEvent GenericEvent
		if err := json.Unmarshal(bytes, &genericEvent); err != nil {
			select {
			case k.Hub.Errors <- err:
			case <-k.Hub.Done():
			}
			continue
		}

		event, err := genericEvent.parseEvent()
		if err != nil {
			select {
			case k.Hub.Errors <- err:
			case <-k.Hub.Done():
			}
			continue
		}

		select {
		case k.Hub.Events <- event:
		case <-k.Hub.Done():
			return
		}
	}
}
