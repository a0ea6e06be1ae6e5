package ws

import (
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/pkg/errors"
)

type client struct {
	conn *websocket.Conn
	uuid string
}

func newClient(conn *websocket.Conn, uuid string) client {
	return client{
		conn: conn,
		uuid: uuid,
	}
}

func (c client) WriteMessage(msg domain.Message) error {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		return errors.WithMessage(err, "marshal json message")
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.WithMessage(err, "websocket conn write message")
	}
	return nil
}

func (c client) ReadMessage() (domain.Message, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return domain.Message{}, domain.ErrConnectionClosed
		}
		return domain.Message{}, errors.WithMessage(err, "websocket conn read message")
	}
	if len(data) == 0 {
		return domain.Message{}, domain.ErrEmptyMessage
	}
	var msg domain.Message
	if err := jsoniter.Unmarshal(data, &msg); err != nil {
		return domain.Message{}, errors.WithMessage(err, "unmarshal json message")
	}
	return msg, nil
}

func (c client) Uuid() string {
	return c.uuid
}

func (c client) Close() {
	_ = c.conn.Close()
}
