package websocket

import (
	"encoding/json"
	"time"
)

const (
	MessageTypePing           = "ping"
	MessageTypePong           = "pong"
	MessageTypeOrdersLoading  = "orders_loading"
	MessageTypeOrdersSnapshot = "orders_snapshot"
	MessageTypeError          = "error"
)

type WSMessage struct {
	Type      string      `json:"type"`
	Initial   bool        `json:"initial,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func Encode(msgType string, initial bool, data interface{}) []byte {
	b, err := json.Marshal(WSMessage{
		Type:      msgType,
		Initial:   initial,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		b, _ = json.Marshal(WSMessage{Type: MessageTypeError, Data: "encode failed"})
	}
	return b
}

// HandleIncoming answers client control frames. Order streams are read-only,
// so anything other than a ping is ignored.
func HandleIncoming(raw []byte) ([]byte, bool) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, false
	}
	if msg.Type == MessageTypePing {
		return Encode(MessageTypePong, false, nil), true
	}
	return nil, false
}
