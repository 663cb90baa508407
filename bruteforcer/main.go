// Command bruteforcer plays nc2048 through the REST API with a lookahead
// strategy, starting new games until it reaches 2048 or runs out of attempts.
// The session ID is saved to .session so a later run resumes it.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/nc2048/game/engine"
)

const sessionFile = ".session"

// Options control one bruteforcer run
type Options struct {
	MaxMoves    int
	MaxAttempts int
	Batch       int
	Delay       time.Duration
	Verbose     bool
}

// Result summarises a run
type Result struct {
	Attempts  int
	Won       bool
	BestScore int
	BestTile  int
	Moves     int
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Game configuration ID (classic, seeded, zen)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxMoves := flag.Int("max-moves", 5000, "Maximum moves per attempt")
	maxAttempts := flag.Int("max-attempts", 10, "Maximum attempts before giving up")
	depth := flag.Int("depth", 3, "Lookahead depth in moves")
	batch := flag.Int("batch", 1, "Moves sent per request; above 1 uses bulk-move")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between requests in milliseconds (0 = no delay)")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	log.Infof("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	savedSessionID := *continueSession
	if savedSessionID == "" {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if err := openSession(client, savedSessionID, *configID); err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}
	if err := os.WriteFile(sessionFile, []byte(client.SessionID()), 0o644); err != nil {
		log.Warnf("Failed to save session ID: %v", err)
	}

	result, err := Play(client, NewLookaheadStrategy(*depth), Options{
		MaxMoves:    *maxMoves,
		MaxAttempts: *maxAttempts,
		Batch:       *batch,
		Delay:       time.Duration(*delayMs) * time.Millisecond,
		Verbose:     *verbose,
	})
	if err != nil {
		log.Fatalf("Play failed: %v", err)
	}

	log.WithFields(log.Fields{
		"session":  client.SessionID(),
		"attempts": result.Attempts,
		"best":     result.BestScore,
		"tile":     result.BestTile,
	}).Info("done")
	if !result.Won {
		log.Infof("Failed to reach %d after %d attempts", engine.WinningValue, result.Attempts)
		os.Exit(1)
	}
	log.Infof("VICTORY in attempt %d", result.Attempts)
}

// openSession resumes savedID when it is still alive, otherwise creates a
// new session with configID
func openSession(client *Client, savedID, configID string) error {
	if savedID != "" {
		_, err := client.Resume(savedID)
		if err == nil {
			log.Infof("Resuming session: %s", savedID)
			return nil
		}
		log.Warnf("Failed to resume session %s (may be expired): %v", savedID, err)
	}

	if _, err := client.CreateSession(configID); err != nil {
		return err
	}
	log.Infof("Session created: %s", client.SessionID())
	return nil
}

// Play runs attempts until one reaches 2048. Every attempt starts with a new
// game in the same session.
func Play(client *Client, strategy *LookaheadStrategy, opts Options) (Result, error) {
	var result Result
	if opts.Batch < 1 {
		opts.Batch = 1
	}

	for result.Attempts < opts.MaxAttempts {
		result.Attempts++
		strategy.Reset()

		state, err := client.NewGame()
		if err != nil {
			return result, err
		}

		moves := 0
		for !state.GameOver && moves < opts.MaxMoves {
			var sent int
			state, sent, err = step(client, strategy, state, opts.Batch)
			if errors.Is(err, errStuck) {
				break
			}
			if err != nil {
				return result, err
			}
			before := moves
			moves += sent

			if opts.Verbose && moves/100 != before/100 {
				log.Debugf("move %d score %d highest %d", moves, state.Score, state.MaxTile)
			}
			if opts.Delay > 0 {
				time.Sleep(opts.Delay)
			}
		}

		result.Moves += moves
		result.BestScore = max(result.BestScore, state.Score)
		result.BestTile = max(result.BestTile, state.MaxTile)

		log.WithFields(log.Fields{
			"attempt": fmt.Sprintf("%d/%d", result.Attempts, opts.MaxAttempts),
			"moves":   moves,
			"score":   state.Score,
			"highest": state.MaxTile,
			"status":  state.Status,
		}).Info("attempt finished")

		if state.Victory {
			result.Won = true
			return result, nil
		}
	}
	return result, nil
}

var errStuck = errors.New("no direction changes the board")

// step plans from the current board and sends one move or one bulk request.
// It returns the new state and the number of moves the server applied.
func step(client *Client, strategy *LookaheadStrategy, state *engine.GameState, batch int) (*engine.GameState, int, error) {
	if batch == 1 {
		dir, ok := strategy.NextMove(state.Grid)
		if !ok {
			return state, 0, errStuck
		}
		res, err := client.Move(dir)
		if err != nil {
			return state, 0, err
		}
		return res.GameState, 1, nil
	}

	plan := strategy.Plan(state.Grid, min(batch, engine.MaxBulkMoves))
	if len(plan) == 0 {
		return state, 0, errStuck
	}
	res, err := client.BulkMove(plan)
	if err != nil {
		return state, 0, err
	}
	return res.GameState, res.MovesExecuted, nil
}
