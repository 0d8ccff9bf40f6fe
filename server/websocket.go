package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var errMissingParams = errors.New("set_params requires params")

func errUnknownCommand(t string) error {
	return fmt.Errorf("unknown command %q", t)
}

// serveWS streams frames to one client and applies its commands. Only the
// handler goroutine writes to the connection; the reader hands replies over
// a channel.
func (s *Server) serveWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	frames, cancel := s.driver.Subscribe()
	defer cancel()

	replies := make(chan any, 8)
	done := make(chan struct{})
	go s.readCommands(conn, replies, done)

	s.log.Debug("websocket client connected", "remote", c.Request.RemoteAddr)
	if err = s.writeWS(conn, newFrameDTO(s.driver.Latest())); err != nil {
		return
	}
	for {
		select {
		case <-done:
			s.log.Debug("websocket client disconnected", "remote", c.Request.RemoteAddr)
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			if err = s.writeWS(conn, newFrameDTO(f)); err != nil {
				return
			}
		case r := <-replies:
			if err = s.writeWS(conn, r); err != nil {
				return
			}
		}
	}
}

func (s *Server) writeWS(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := conn.WriteJSON(v); err != nil {
		s.log.Debug("websocket write failed", "error", err)
		return err
	}
	return nil
}

func (s *Server) readCommands(conn *websocket.Conn, replies chan<- any, done chan<- struct{}) {
	defer close(done)
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			if _, ok := err.(*websocket.CloseError); !ok {
				s.log.Debug("websocket read failed", "error", err)
			}
			return
		}
		if err := s.apply(env); err != nil {
			_, dto := classify(err)
			dto.Type = "error"
			select {
			case replies <- dto:
			default:
			}
		}
	}
}

// apply runs one client command. Successful commands publish a frame
// through the driver, so no direct reply is needed.
func (s *Server) apply(env envelope) error {
	var err error
	switch env.Type {
	case cmdAddCity:
		_, err = s.driver.AddCity(env.X, env.Y)
	case cmdRemoveCity:
		_, err = s.driver.RemoveCity(env.Index)
	case cmdToggleCity:
		_, err = s.driver.ToggleCity(env.X, env.Y, s.toggleRadius)
	case cmdSetParams:
		if env.Params == nil {
			return badBody(errMissingParams)
		}
		_, err = s.driver.SetParams(*env.Params)
	case cmdReset:
		s.driver.Reset()
	case cmdPause:
		s.driver.Pause()
	case cmdResume:
		s.driver.Resume()
	case cmdStep:
		_, err = s.driver.Step()
	default:
		return badBody(errUnknownCommand(env.Type))
	}
	return err
}
