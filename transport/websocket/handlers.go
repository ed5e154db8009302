package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/movegrid/tictactoe-backend/internal/apperror"
	"github.com/movegrid/tictactoe-backend/internal/repository"
)

// handleConnect - greets the session with its player ID and current game, if
// one is in progress.
func (that *Server) handleConnect(ctx context.Context, cl *client, message *Message) error {
	game, err := that.uGame.GetGame(ctx, cl.playerID)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) || errors.Is(err, repository.ErrPlayerNotFound) {
			return that.sendPayload(cl, message.Action, ResponsePayload{PlayerID: cl.playerID})
		}

		return fmt.Errorf("failed to get game: %w", err)
	}

	if !game.IsFinished() {
		that.watchConclusion(cl, game.ID)
	}

	return that.sendGame(cl, message.Action, game)
}

// handleNewGame - returns the player's session, starting one if needed.
func (that *Server) handleNewGame(ctx context.Context, cl *client, message *Message) error {
	game, err := that.uGame.GetOrCreateGame(ctx, cl.playerID)
	if err != nil {
		return fmt.Errorf("failed to get or create game: %w", err)
	}

	that.watchConclusion(cl, game.ID)

	return that.sendGame(cl, message.Action, game)
}

// handleGameState - re-sends the current session snapshot.
func (that *Server) handleGameState(ctx context.Context, cl *client, message *Message) error {
	game, err := that.uGame.GetGame(ctx, cl.playerID)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return that.sendError(cl, message.Action, "no active game")
		}

		return fmt.Errorf("failed to get game: %w", err)
	}

	return that.sendGame(cl, message.Action, game)
}

// handleGameMove - accepts one raw move and answers with the updated
// session. Contract violations come back as error payloads, not closed
// connections; the terminal push itself arrives via the conclusion watch.
func (that *Server) handleGameMove(ctx context.Context, cl *client, message *Message) error {
	var payload MovePayload
	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return that.sendError(cl, message.Action, "malformed payload")
	}

	if payload.Cell == nil {
		return that.sendError(cl, message.Action, "cell is required")
	}

	game, err := that.uGame.MakeMove(ctx, cl.playerID, *payload.Cell)
	if err != nil {
		if isMoveRejection(err) {
			return that.sendError(cl, message.Action, err.Error())
		}

		return fmt.Errorf("failed to make move: %w", err)
	}

	return that.sendGame(cl, message.Action, game)
}

// handleGameReset - abandons the current session and starts a fresh one.
func (that *Server) handleGameReset(ctx context.Context, cl *client, message *Message) error {
	game, err := that.uGame.ResetGame(ctx, cl.playerID)
	if err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}

	that.watchConclusion(cl, game.ID)

	return that.sendGame(cl, message.Action, game)
}

// isMoveRejection - separates expected move rejections from real failures.
func isMoveRejection(err error) bool {
	return errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrGameFinished)
}
