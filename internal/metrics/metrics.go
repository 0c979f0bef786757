package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RoomsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "othello_rooms_active",
			Help: "Number of rooms currently held in the registry",
		},
	)
	MovesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "othello_moves_total",
			Help: "Total accepted moves, human and bot",
		},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "othello_games_finished_total",
			Help: "Total finished games by result",
		},
		[]string{"result"},
	)
	CoinsAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "othello_coins_awarded_total",
			Help: "Total coins paid out to winners",
		},
	)
)

func init() {
	prometheus.MustRegister(RoomsActive)
	prometheus.MustRegister(MovesTotal)
	prometheus.MustRegister(GamesFinished)
	prometheus.MustRegister(CoinsAwarded)
}
