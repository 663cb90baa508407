package terminal

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gdamore/tcell/v2"
	gorillaws "github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/wricardo/nc2048/game/engine"
	"github.com/wricardo/nc2048/transport/websocket"
)

// Spectator shows a server-side session read-only, redrawing on every state
// pushed over the /ws stream
type Spectator struct {
	screen    tcell.Screen
	conn      *gorillaws.Conn
	sessionID string

	state   *engine.GameState
	updates int
	footer  string
	closed  bool
}

// SpectateURL builds the WebSocket URL for sessionID from a server base URL.
// http and https schemes are mapped to ws and wss.
func SpectateURL(base, sessionID string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(base, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http", "ws", "":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path += "/ws"
	u.RawQuery = url.Values{"session": {sessionID}}.Encode()
	return u.String(), nil
}

// DialSpectator opens the stream for sessionID
func DialSpectator(ctx context.Context, base, sessionID string) (*gorillaws.Conn, error) {
	wsURL, err := SpectateURL(base, sessionID)
	if err != nil {
		return nil, err
	}
	conn, resp, err := gorillaws.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("watch session %s: %s", sessionID, resp.Status)
		}
		return nil, fmt.Errorf("watch session %s: %w", sessionID, err)
	}
	return conn, nil
}

// NewSpectator draws the stream read from conn on screen. The screen must
// already be initialised; Run closes conn.
func NewSpectator(screen tcell.Screen, conn *gorillaws.Conn, sessionID string) *Spectator {
	return &Spectator{screen: screen, conn: conn, sessionID: sessionID}
}

// streamClosed carries the read error that ended the stream
type streamClosed struct {
	err error
}

// Run shows updates until q/Esc/Ctrl-C, ctx cancellation or the server
// closing the stream. A closed stream leaves the last board on screen until
// a key is pressed.
func (s *Spectator) Run(ctx context.Context) error {
	defer s.conn.Close()

	go s.readLoop()

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() {
		<-watchCtx.Done()
		if ctx.Err() != nil {
			_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()

	s.footer = fmt.Sprintf("Connecting to session %s...", s.sessionID)
	s.Draw()
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			if action, _ := KeyAction(ev); action == ActionQuit || s.closed {
				return nil
			}
		case *tcell.EventInterrupt:
			switch data := ev.Data().(type) {
			case *websocket.Message:
				s.apply(data)
			case streamClosed:
				log.WithError(data.err).Debug("spectator stream closed")
				s.closed = true
				s.footer = "Stream closed. Press any key to exit."
			default:
				if ctx.Err() != nil {
					return ctx.Err()
				}
			}
		}
		s.Draw()
	}
}

// Draw repaints the last received state
func (s *Spectator) Draw() {
	draw(s.screen, s.state, s.footer)
}

func (s *Spectator) readLoop() {
	for {
		var msg websocket.Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			_ = s.screen.PostEvent(tcell.NewEventInterrupt(streamClosed{err: err}))
			return
		}
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(&msg))
	}
}

func (s *Spectator) apply(msg *websocket.Message) {
	if msg.GameState == nil {
		return
	}
	s.state = msg.GameState
	if msg.Event == websocket.EventStateUpdate {
		s.updates++
	}
	s.footer = fmt.Sprintf("Watching %s, %d updates. Press 'q' to stop.", s.sessionID, s.updates)
}
