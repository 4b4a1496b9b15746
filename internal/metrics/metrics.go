// Package metrics counts game activity for Prometheus.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "twentyq"

// Guess outcomes.
const (
	OutcomeCorrect = "correct"
	OutcomeWrong   = "wrong"
)

// Game holds the game counters. A nil *Game records nothing.
type Game struct {
	registry *prometheus.Registry

	GamesStarted     prometheus.Counter
	Answers          *prometheus.CounterVec
	Guesses          *prometheus.CounterVec
	TurnErrors       *prometheus.CounterVec
	QuestionsPerGame prometheus.Histogram
}

// New registers the game metrics on a private registry.
func New() *Game {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Game{
		registry: reg,
		GamesStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games started from the pending phase.",
		}),
		Answers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Recorded answers by value.",
		}, []string{"answer"}),
		Guesses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guesses_total",
			Help:      "Confirmed or rejected guesses.",
		}, []string{"outcome"}),
		TurnErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turn_errors_total",
			Help:      "Turns that failed with a hard error, by kind.",
		}, []string{"kind"}),
		QuestionsPerGame: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "questions_per_game",
			Help:      "Answers recorded before a guess was confirmed.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
	}
}

// Registry exposes the private registry.
func (m *Game) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Game) GameStarted() {
	if m == nil {
		return
	}
	m.GamesStarted.Inc()
}

func (m *Game) Answered(answer string) {
	if m == nil {
		return
	}
	m.Answers.WithLabelValues(answer).Inc()
}

// Guessed records a guess outcome; questions is only observed for correct guesses.
func (m *Game) Guessed(outcome string, questions int) {
	if m == nil {
		return
	}
	m.Guesses.WithLabelValues(outcome).Inc()
	if outcome == OutcomeCorrect {
		m.QuestionsPerGame.Observe(float64(questions))
	}
}

func (m *Game) TurnFailed(kind string) {
	if m == nil {
		return
	}
	m.TurnErrors.WithLabelValues(kind).Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Game) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
