// Package tablebase implements a thin HTTP client for an endgame tablebase
// service (spec.md §6). The protocol is a GET against a configured base URL
// with a `fen` query parameter, returning a small JSON envelope describing
// the position's outcome and, at the root, candidate moves.
package tablebase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/chrisfishbob/Talia/pkg/board"
	"github.com/chrisfishbob/Talia/pkg/board/fen"
	"github.com/seekerror/logw"
)

// ErrUnavailable wraps any transport or schema failure talking to the
// tablebase service. Callers (the search) must treat it as "no answer" and
// fall back to the standard search algorithm (spec.md §6, §7).
var ErrUnavailable = errors.New("tablebase unavailable")

// MaxPieces is the piece count below which the search consults the
// tablebase at all (spec.md §4.4 step 1).
const MaxPieces = 8

// Client queries a tablebase HTTP service.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a Client against baseURL with a bounded request timeout.
// A zero baseURL disables lookups; Probe and ProbeRoot return ErrUnavailable
// immediately in that case.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type response struct {
	Category string `json:"category"`
	Moves    []struct {
		UCI      string `json:"uci"`
		DTM      int    `json:"dtm"`
		Category string `json:"category"`
	} `json:"moves"`
}

// category maps the response's category string to a side-relative score:
// +Inf for a win, 0 for a draw, -Inf for a loss (spec.md §6).
func category(s string) (board.Score, bool) {
	switch s {
	case "win":
		return board.Inf, true
	case "draw":
		return board.Draw, true
	case "loss":
		return board.NegInf, true
	default:
		return 0, false
	}
}

func (c *Client) query(ctx context.Context, pos *board.Position) (response, error) {
	if c.BaseURL == "" {
		return response{}, ErrUnavailable
	}

	u := fmt.Sprintf("%s?fen=%s", c.BaseURL, url.QueryEscape(fen.Encode(pos)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return response{}, fmt.Errorf("%w: building request: %v", ErrUnavailable, err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response{}, fmt.Errorf("%w: status %v", ErrUnavailable, resp.StatusCode)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return response{}, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return r, nil
}

// Probe returns the score of pos from the side-to-move's perspective under
// perfect play.
func (c *Client) Probe(ctx context.Context, pos *board.Position) (board.Score, error) {
	r, err := c.query(ctx, pos)
	if err != nil {
		return 0, err
	}
	score, ok := category(r.Category)
	if !ok {
		return 0, fmt.Errorf("%w: unrecognized category %q", ErrUnavailable, r.Category)
	}
	return score, nil
}

// ProbeRoot returns the best move at pos and its score, chosen per spec.md
// §6: among moves, prefer categories from the opponent's perspective in the
// order loss > draw > win, and among losses prefer the largest dtm.
func (c *Client) ProbeRoot(ctx context.Context, pos *board.Position) (board.Move, board.Score, error) {
	r, err := c.query(ctx, pos)
	if err != nil {
		return board.Move{}, 0, err
	}
	if len(r.Moves) == 0 {
		return board.Move{}, 0, fmt.Errorf("%w: no candidate moves in response", ErrUnavailable)
	}

	gen := board.NewMoveGenerator(pos)

	var best *board.Move
	var bestScore board.Score
	bestRank, bestDTM := -1, -1

	for _, cand := range r.Moves {
		uci, err := board.ParseUCI(cand.UCI)
		if err != nil {
			continue
		}
		legal, err := gen.ResolveUCI(uci)
		if err != nil {
			continue
		}

		rank := opponentRank(cand.Category)
		if rank < 0 {
			continue
		}
		if rank > bestRank || (rank == bestRank && cand.DTM > bestDTM) {
			m := legal
			best = &m
			bestRank = rank
			bestDTM = cand.DTM
			score, _ := category(invertForUs(cand.Category))
			bestScore = score
		}
	}

	if best == nil {
		return board.Move{}, 0, fmt.Errorf("%w: no response move resolved against legal moves", ErrUnavailable)
	}

	logw.Debugf(ctx, "talia: tablebase selected %v (category=%v dtm=%v)", *best, r.Moves, bestDTM)
	return *best, bestScore, nil
}

// opponentRank orders categories, from the opponent's perspective, loss >
// draw > win, since a loss for the opponent is the best outcome for us.
func opponentRank(cat string) int {
	switch cat {
	case "loss":
		return 2
	case "draw":
		return 1
	case "win":
		return 0
	default:
		return -1
	}
}

// invertForUs flips a move's opponent-perspective category into our
// perspective for scoring: their loss is our win and vice versa.
func invertForUs(cat string) string {
	switch cat {
	case "loss":
		return "win"
	case "win":
		return "loss"
	default:
		return cat
	}
}

// ShouldConsult reports whether pos has few enough pieces to warrant a
// tablebase lookup (spec.md §4.4 step 1).
func ShouldConsult(pos *board.Position) bool {
	count := 0
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		if !pos.IsEmpty(sq) {
			count++
		}
	}
	return count < MaxPieces
}
