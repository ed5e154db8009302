package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/movegrid/tictactoe-backend/internal/entity"
	"github.com/movegrid/tictactoe-backend/internal/events"
)

const (
	sessionCookieName = "user_session"
	sessionCookieAge  = 24 * time.Hour

	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 30 * time.Second
)

type uGame interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error)
	GetGame(ctx context.Context, playerID string) (*entity.Game, error)
	ResetGame(ctx context.Context, playerID string) (*entity.Game, error)

	MakeMove(ctx context.Context, playerID string, cell int) (*entity.Game, error)
}

// client is one websocket connection. Writes go through a mutex because
// gorilla connections allow a single concurrent writer, and the game-over
// forwarder writes from its own goroutine.
type client struct {
	conn     *websocket.Conn
	playerID string

	writeMu sync.Mutex

	subMu       sync.Mutex
	unsubscribe func()
}

type Server struct {
	logger *slog.Logger
	uGame  uGame
	bus    *events.Bus

	upgrader websocket.Upgrader
	handlers map[string]func(ctx context.Context, cl *client, message *Message) error
}

func New(logger *slog.Logger, uGame uGame, bus *events.Bus) *Server {
	server := &Server{
		logger: logger,
		uGame:  uGame,
		bus:    bus,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		handlers: make(map[string]func(context.Context, *client, *Message) error),
	}

	server.handlers["connect"] = server.handleConnect
	server.handlers["game:new"] = server.handleNewGame
	server.handlers["game:state"] = server.handleGameState
	server.handlers["game:move"] = server.handleGameMove
	server.handlers["game:reset"] = server.handleGameReset

	return server
}

// Start - starts the WebSocket server and blocks until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveConnection - upgrades the request and runs the message loop.
func (that *Server) serveConnection(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveConnection")

	playerID, err := that.resolveSession(ctx, writer, req)
	if err != nil {
		log.Error("failed to resolve session", "error", err)
		http.Error(writer, "failed to resolve session", http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("WebSocket connection established", "player_id", playerID)

	cl := &client{conn: conn, playerID: playerID}
	defer cl.dropSubscription()

	that.handleMessages(ctx, cl)
}

// handleMessages - reads frames and dispatches them by action until the
// client goes away.
func (that *Server) handleMessages(ctx context.Context, cl *client) {
	log := that.logger.With("method", "handleMessages", "player_id", cl.playerID)

	for {
		var message Message
		if err := cl.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)

			if err := that.sendError(cl, message.Action, "unknown action"); err != nil {
				log.Error("error sending response", "error", err)
				return
			}
			continue
		}

		if err := handler(ctx, cl, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// resolveSession - reads the session cookie, minting a new player and cookie
// when there is none.
func (that *Server) resolveSession(ctx context.Context, writer http.ResponseWriter, req *http.Request) (string, error) {
	log := that.logger.With("method", "resolveSession")

	var sessionID string
	if cookie, err := req.Cookie(sessionCookieName); err == nil {
		sessionID = cookie.Value
	}

	player, err := that.uGame.GetOrCreatePlayer(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to get or create player: %w", err)
	}

	if player.ID != sessionID {
		http.SetCookie(writer, &http.Cookie{
			Name:    sessionCookieName,
			Value:   player.ID,
			Expires: time.Now().Add(sessionCookieAge),
			Path:    "/ws",
		})
		log.Info("session cookie not found, new one created", "player_id", player.ID)
	}

	return player.ID, nil
}

// watchConclusion - points the client's single bus subscription at gameID
// and forwards the conclusion as a game:over push when it lands.
func (that *Server) watchConclusion(cl *client, gameID string) {
	log := that.logger.With("method", "watchConclusion", "game_id", gameID)

	ch, cancel := that.bus.Subscribe(gameID)
	cl.swapSubscription(cancel)

	go func() {
		event, ok := <-ch
		if !ok {
			return
		}

		if err := that.sendEvent(cl, event); err != nil {
			log.Error("failed to push game over event", "error", err)
		}
	}()
}

func (that *Server) sendEvent(cl *client, event events.GameConcluded) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return cl.write(&Message{Action: "game:over", Payload: payload})
}

func (that *Server) sendGame(cl *client, action string, game *entity.Game) error {
	view, err := newGameView(game)
	if err != nil {
		return fmt.Errorf("failed to build game view: %w", err)
	}

	return that.sendPayload(cl, action, ResponsePayload{PlayerID: cl.playerID, Game: view})
}

func (that *Server) sendError(cl *client, action, message string) error {
	return that.sendPayload(cl, action, ResponsePayload{Error: message})
}

func (that *Server) sendPayload(cl *client, action string, payload ResponsePayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return cl.write(&Message{Action: action, Payload: raw})
}

func (that *client) write(message *Message) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.conn.WriteJSON(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// swapSubscription - replaces the client's bus subscription, releasing the
// previous one.
func (that *client) swapSubscription(cancel func()) {
	that.subMu.Lock()
	defer that.subMu.Unlock()

	if that.unsubscribe != nil {
		that.unsubscribe()
	}
	that.unsubscribe = cancel
}

func (that *client) dropSubscription() {
	that.swapSubscription(nil)
}
