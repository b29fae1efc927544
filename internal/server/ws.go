package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	. "EvasiveDelete/internal/game"
	"EvasiveDelete/internal/motion"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	formatJSON  = "json"
	formatProto = "proto"
)

// stateInterval is the period between state pushes to one client.
const stateInterval = time.Second / time.Duration(UpdateRateHz)

type liveConn struct {
	conn     *websocket.Conn
	format   string
	sendTick *time.Ticker
	out      chan outboundMessage
}

// send writes msg as a text frame, or as a binary protobuf frame for proto clients.
func (lc *liveConn) send(msg outboundMessage) error {
	if lc.format == formatProto {
		data, err := marshalProtoEnvelope(msg)
		if err != nil {
			return err
		}
		return lc.conn.WriteMessage(websocket.BinaryMessage, data)
	}
	return lc.conn.WriteJSON(msg)
}

// queue hands an event to the writer goroutine, dropping it if the client is too slow.
func (lc *liveConn) queue(msg outboundMessage) {
	select {
	case lc.out <- msg:
	default:
		log.Printf("dropping %s event: send queue full", msg.Type)
	}
}

func serveWS(h *Hub, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	roomID := query.Get("room")
	if roomID == "" {
		roomID = NewRoomID()
	}
	format := formatJSON
	if strings.ToLower(query.Get("format")) == formatProto {
		format = formatProto
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	lc := &liveConn{
		conn:     conn,
		format:   format,
		sendTick: time.NewTicker(stateInterval),
		out:      make(chan outboundMessage, 16),
	}

	room := h.Join(roomID)
	lc.queue(outboundMessage{Type: "welcome", Payload: welcomeDTO{
		Room:       room.ID,
		RangeX:     room.Params.RangeX,
		RangeY:     room.Params.RangeY,
		SampleSize: room.Params.SampleSize,
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		defer cancel()
		start := time.Now()
		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var inbound inboundMessage
			switch msgType {
			case websocket.BinaryMessage:
				inbound, err = unmarshalProtoEnvelope(data)
				if err != nil {
					log.Printf("%v", err)
					continue
				}
			case websocket.TextMessage:
				if err := json.Unmarshal(data, &inbound); err != nil {
					log.Printf("invalid JSON message: %v", err)
					continue
				}
			default:
				log.Printf("Received unsupported WebSocket message type %d", msgType)
				continue
			}

			switch inbound.Type {
			case "pointer:move":
				var payload pointerMoveDTO
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					log.Printf("invalid pointer:move payload: %v", err)
					continue
				}
				if payload.T <= 0 {
					payload.T = float64(time.Since(start).Microseconds()) / 1000
				}
				if !room.RecordPointer(motion.Sample{X: payload.X, Y: payload.Y, Time: payload.T}) {
					log.Printf("room %s: dropped pointer sample (%g, %g) at t=%g", room.ID, payload.X, payload.Y, payload.T)
				}
			case "pointer:enter":
				var payload pointerEnterDTO
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					log.Printf("invalid pointer:enter payload: %v", err)
					continue
				}
				c := room.PointerEnter(motion.Point{X: payload.X, Y: payload.Y}, payload.Rect.toRect())
				lc.queue(outboundMessage{Type: "collision", Payload: collisionToDTO(c)})
			case "confirm":
				lc.queue(outboundMessage{Type: "confirmed", Payload: confirmedDTO{Message: room.Confirm()}})
			default:
				log.Printf("unknown message type: %s", inbound.Type)
			}
		}
	}()

	go func() {
		var last ButtonState
		sent := false
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-lc.out:
				if err := lc.send(msg); err != nil {
					log.Printf("send %s error: %v", msg.Type, err)
					cancel()
					return
				}
			case <-lc.sendTick.C:
				st := room.Snapshot()
				if sent && st == last {
					continue
				}
				if err := lc.send(outboundMessage{Type: "state", Payload: stateToDTO(st)}); err != nil {
					log.Printf("send error: %v", err)
					cancel()
					return
				}
				last, sent = st, true
			}
		}
	}()

	<-ctx.Done()
	lc.sendTick.Stop()
	conn.Close()
	h.Leave(room)
}
