// Command analyze prints quick, human-readable statistics about the random
// parts of the game: how evenly the cell selector spreads its draws, how often
// a spawned tile is a 4, and how a simple greedy player fares over many games.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wricardo/nc2048/game/engine"
)

// chiCritical is the 5% critical value of the chi-squared distribution with
// Size-1 = 3 degrees of freedom
const chiCritical = 7.815

// maxMovesPerGame stops a self-play game that somehow never ends
const maxMovesPerGame = 100000

// SelectorStats summarises draws of UniformInt(Size-1)
type SelectorStats struct {
	Samples    int
	Buckets    [engine.Size]int
	ChiSquared float64
}

// Uniform reports whether the buckets pass the chi-squared test at 5%
func (s SelectorStats) Uniform() bool {
	return s.ChiSquared < chiCritical
}

// SpawnStats summarises tiles spawned on an empty grid
type SpawnStats struct {
	Samples int
	Fours   int
	Cells   [engine.Size][engine.Size]int
}

// FourRate is the fraction of spawns that were a 4
func (s SpawnStats) FourRate() float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.Fours) / float64(s.Samples)
}

// PlayStats summarises greedy self-play
type PlayStats struct {
	Games      int
	Wins       int
	TotalScore int
	TotalMoves int
	BestTile   int
	BestScore  int
}

// WinRate is the fraction of games that reached 2048
func (p PlayStats) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games)
}

// MeanScore is the average final score
func (p PlayStats) MeanScore() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.TotalScore) / float64(p.Games)
}

// MeanMoves is the average number of moves per game
func (p PlayStats) MeanMoves() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.TotalMoves) / float64(p.Games)
}

func main() {
	games := flag.Int("games", 100, "number of greedy self-play games")
	seed := flag.Int64("seed", 1, "base seed; game i uses seed+i (0 seeds from the clock)")
	samples := flag.Int("samples", 100000, "number of selector and spawn samples")
	flag.Parse()

	if *games < 0 || *samples <= 0 {
		fmt.Fprintln(os.Stderr, "games must be >= 0 and samples > 0")
		os.Exit(2)
	}

	report(os.Stdout, analyzeSelector(*seed, *samples), analyzeSpawns(*seed, *samples), selfPlay(*seed, *games))
}

// analyzeSelector draws samples column indices and runs a chi-squared test
// against the uniform distribution
func analyzeSelector(seed int64, samples int) SelectorStats {
	rng := engine.NewSeededSelector(seed)
	stats := SelectorStats{Samples: samples}
	for i := 0; i < samples; i++ {
		stats.Buckets[rng.UniformInt(engine.Size-1)]++
	}

	expected := float64(samples) / float64(engine.Size)
	for _, observed := range stats.Buckets {
		diff := float64(observed) - expected
		stats.ChiSquared += diff * diff / expected
	}
	return stats
}

// analyzeSpawns spawns one tile on an empty grid samples times
func analyzeSpawns(seed int64, samples int) SpawnStats {
	rng := engine.NewSeededSelector(seed)
	stats := SpawnStats{Samples: samples}
	for i := 0; i < samples; i++ {
		var g engine.Grid
		spawn, err := g.SpawnTile(rng)
		if err != nil {
			continue
		}
		if spawn.Value == 4 {
			stats.Fours++
		}
		stats.Cells[spawn.Position.Y][spawn.Position.X]++
	}
	return stats
}

// selfPlay plays games with GreedyMove until each one is won or lost
func selfPlay(seed int64, games int) PlayStats {
	stats := PlayStats{Games: games}
	for i := 0; i < games; i++ {
		cfg := engine.DefaultConfig()
		if seed != 0 {
			cfg.Seed = seed + int64(i)
		}
		eng, err := engine.NewEngine(cfg)
		if err != nil {
			continue
		}

		moves := 0
		for !eng.IsGameOver() && moves < maxMovesPerGame {
			dir, ok := engine.GreedyMove(eng.GridSnapshot())
			if !ok {
				break
			}
			eng.ApplyMove(dir)
			moves++
		}

		stats.TotalMoves += moves
		stats.TotalScore += eng.GetScore()
		if eng.IsVictory() {
			stats.Wins++
		}
		if tile := eng.GetMaxTile(); tile > stats.BestTile {
			stats.BestTile = tile
		}
		if score := eng.GetScore(); score > stats.BestScore {
			stats.BestScore = score
		}
	}
	return stats
}

func report(w io.Writer, sel SelectorStats, spawns SpawnStats, play PlayStats) {
	fmt.Fprintf(w, "\n=== Selector (%d draws of 0..%d) ===\n", sel.Samples, engine.Size-1)
	for i, n := range sel.Buckets {
		fmt.Fprintf(w, "  %d: %d\n", i, n)
	}
	verdict := "uniform"
	if !sel.Uniform() {
		verdict = "NOT uniform"
	}
	fmt.Fprintf(w, "  chi-squared: %.3f (critical %.3f) -> %s\n", sel.ChiSquared, chiCritical, verdict)

	fmt.Fprintf(w, "\n=== Spawns (%d on an empty grid) ===\n", spawns.Samples)
	fmt.Fprintf(w, "  fours: %d (%.2f%%)\n", spawns.Fours, 100*spawns.FourRate())
	for _, row := range spawns.Cells {
		for _, n := range row {
			fmt.Fprintf(w, " %7d", n)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\n=== Greedy self-play (%d games) ===\n", play.Games)
	if play.Games == 0 {
		fmt.Fprintln(w, "  skipped")
		return
	}
	fmt.Fprintf(w, "  win rate:   %.2f%%\n", 100*play.WinRate())
	fmt.Fprintf(w, "  mean score: %.1f\n", play.MeanScore())
	fmt.Fprintf(w, "  best score: %d\n", play.BestScore)
	fmt.Fprintf(w, "  best tile:  %d\n", play.BestTile)
	fmt.Fprintf(w, "  mean moves: %.1f\n", play.MeanMoves())
}
