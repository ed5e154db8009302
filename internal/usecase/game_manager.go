package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/movegrid/tictactoe-backend/internal/apperror"
	"github.com/movegrid/tictactoe-backend/internal/entity"
	"github.com/movegrid/tictactoe-backend/internal/events"
	"github.com/movegrid/tictactoe-backend/internal/pkg"
	"github.com/movegrid/tictactoe-backend/internal/tictactoe"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager owns the move-acceptance path: it validates raw move requests
// before anything touches the move log, appends exactly one move per call,
// and runs the game-over evaluation synchronously on the same path.
type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo
	bus        *events.Bus
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, bus *events.Bus) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		bus:        bus,
	}
}

// MakeMove - accepts one raw move for the player's current game. Range,
// occupancy and terminal-state checks happen here; the core only ever sees a
// log that satisfies its contract.
func (that *GameManager) MakeMove(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if cell < 0 || cell >= tictactoe.BoardSize {
		return game, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if game.CellOccupied(cell) {
		return game, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	game.Moves = append(game.Moves, cell)

	conclusion, err := tictactoe.Evaluate(game.Moves)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate game: %w", err)
	}

	if conclusion.IsTerminal() {
		game.Conclude(conclusion)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed update game: %w", err)
	}

	if conclusion.IsTerminal() {
		that.publishConclusion(game, conclusion)
	}

	return game, nil
}

// GetOrCreateGame - returns the player's current game, starting a fresh
// session when there is none.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == "" {
		newGame, err := that.createGame(ctx, player)
		if err != nil {
			return nil, fmt.Errorf("failed create game: %w", err)
		}

		return newGame, nil
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	return game, nil
}

// GetGame - returns the player's current game without creating one.
func (that *GameManager) GetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	return game, nil
}

// ResetGame - discards the player's current session and starts a new one.
// The old move log is deleted, never truncated.
func (that *GameManager) ResetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID != "" {
		if err = that.gameRepo.DeleteByID(ctx, player.GameID); err != nil {
			return nil, fmt.Errorf("failed delete game: %w", err)
		}
	}

	newGame, err := that.createGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	return newGame, nil
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	gameID := pkg.GenerateGameID()

	newGame := entity.NewGame(gameID)
	newGame.PlayerID = player.ID

	if err := that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	player.GameID = gameID
	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player: %w", err)
	}

	return newGame, nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) publishConclusion(game *entity.Game, conclusion tictactoe.Conclusion) {
	log := that.logger.With("method", "publishConclusion")

	that.bus.Publish(events.GameConcluded{
		GameID: game.ID,
		State:  conclusion.State,
		Cells:  conclusion.Cells,
		Mark:   conclusion.Mark,
	})

	log.Info("game concluded", "game_id", game.ID, "state", conclusion.State, "mark", conclusion.Mark)
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
