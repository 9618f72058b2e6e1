// Package scoring turns aptitude quiz answers into a per-stream score board,
// a recommended stream and the recommendation bundle for that stream.
//
// Everything here is pure: no I/O, no shared mutable state.
package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

type Stream string

const (
	Science    Stream = "science"
	Arts       Stream = "arts"
	Commerce   Stream = "commerce"
	Vocational Stream = "vocational"
)

// Streams lists the known streams in declaration order. Winner selection and
// tie-breaking walk this slice.
var Streams = []Stream{Science, Arts, Commerce, Vocational}

var ErrNoAnswers = errors.New("at least one answer is required")

// ParseStream reports whether raw names a known stream, ignoring case.
func ParseStream(raw string) (Stream, bool) {
	s := Stream(strings.ToLower(raw))
	switch s {
	case Science, Arts, Commerce, Vocational:
		return s, true
	}
	return "", false
}

// SelectedOption is the option picked for a question. Weight is left untyped
// so that absent or non-numeric weights can fall back to 1.
type SelectedOption struct {
	Stream string `json:"stream"`
	Weight any    `json:"weight,omitempty"`
}

// UnmarshalJSON keeps a string stream as sent. Any other JSON value is kept
// as its compact JSON text, which never names a known stream.
func (o *SelectedOption) UnmarshalJSON(data []byte) error {
	var raw struct {
		Stream json.RawMessage `json:"stream"`
		Weight any             `json:"weight"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	o.Stream = rawText(raw.Stream)
	o.Weight = raw.Weight
	return nil
}

type Answer struct {
	QuestionID     int             `json:"questionId"`
	SelectedOption *SelectedOption `json:"selectedOption"`
}

// UnmarshalJSON accepts numeric or numeric-string question ids and drops a
// selectedOption that is not an object. Neither fails the answer.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw struct {
		QuestionID     json.RawMessage `json:"questionId"`
		SelectedOption json.RawMessage `json:"selectedOption"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.QuestionID = questionID(raw.QuestionID)
	a.SelectedOption = nil
	if opt := bytes.TrimSpace(raw.SelectedOption); len(opt) > 0 && opt[0] == '{' {
		var o SelectedOption
		if err := json.Unmarshal(opt, &o); err == nil {
			a.SelectedOption = &o
		}
	}
	return nil
}

func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func questionID(raw json.RawMessage) int {
	text := rawText(raw)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}

type NormalizedOption struct {
	Stream string  `json:"stream"`
	Weight float64 `json:"weight"`
}

// NormalizedAnswer is the audit record kept for every submitted answer,
// including the ones that did not score.
type NormalizedAnswer struct {
	QuestionID     int              `json:"questionId"`
	SelectedOption NormalizedOption `json:"selectedOption"`
}

// ScoreBoard always carries exactly the four known streams.
type ScoreBoard struct {
	Science    float64 `json:"science"`
	Arts       float64 `json:"arts"`
	Commerce   float64 `json:"commerce"`
	Vocational float64 `json:"vocational"`
}

func (b ScoreBoard) Of(s Stream) float64 {
	switch s {
	case Science:
		return b.Science
	case Arts:
		return b.Arts
	case Commerce:
		return b.Commerce
	case Vocational:
		return b.Vocational
	}
	return 0
}

func (b *ScoreBoard) add(s Stream, w float64) {
	switch s {
	case Science:
		b.Science += w
	case Arts:
		b.Arts += w
	case Commerce:
		b.Commerce += w
	case Vocational:
		b.Vocational += w
	}
}

// Winner returns the first stream, in declaration order, whose score is
// strictly greater than every earlier one, starting from a maximum of 0.
// An all-zero board therefore yields Science.
func (b ScoreBoard) Winner() Stream {
	winner, best := Science, 0.0
	for _, s := range Streams {
		if v := b.Of(s); v > best {
			winner, best = s, v
		}
	}
	return winner
}

// Score tallies answers in input order. Unknown streams are recorded in the
// normalized answers but contribute nothing to the board.
func Score(answers []Answer) (ScoreBoard, Stream, []NormalizedAnswer, error) {
	if len(answers) == 0 {
		return ScoreBoard{}, "", nil, ErrNoAnswers
	}

	var board ScoreBoard
	normalized := make([]NormalizedAnswer, 0, len(answers))

	for _, a := range answers {
		var raw string
		weight := 1.0
		if a.SelectedOption != nil {
			raw = a.SelectedOption.Stream
			weight = ResolveWeight(a.SelectedOption.Weight)
		}

		if s, ok := ParseStream(raw); ok {
			board.add(s, weight)
		}

		normalized = append(normalized, NormalizedAnswer{
			QuestionID: a.QuestionID,
			SelectedOption: NormalizedOption{
				Stream: raw,
				Weight: weight,
			},
		})
	}

	return board, board.Winner(), normalized, nil
}

// ResolveWeight returns the numeric value of w, or 1 when w is absent or not a
// finite number.
func ResolveWeight(w any) float64 {
	var v float64
	switch n := w.(type) {
	case float64:
		v = n
	case float32:
		v = float64(n)
	case int:
		v = float64(n)
	case int32:
		v = float64(n)
	case int64:
		v = float64(n)
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 1
		}
		v = f
	default:
		return 1
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	return v
}
