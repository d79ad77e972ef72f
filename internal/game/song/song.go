// Package song implements the "guess the singer" game: a lyric line is
// shown and players answer with the artist.
package song

import (
	"math/rand"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/game/quiz"
	"github.com/botabeer/linegames/internal/model"
)

const (
	maxRounds = 5
	points    = 2
)

type entry struct {
	lyric  string
	artist string
	accept []string
}

// New builds a fresh game instance over a random selection of lyrics.
func New() game.Game {
	picks := rand.Perm(len(catalog))
	return quiz.New(quiz.Config{
		Name:            "خمن المغني",
		Type:            model.GameSong,
		MaxRounds:       maxRounds,
		Points:          points,
		AdvanceOnReveal: true,
		Scored:          true,
		Source: func(round int) quiz.Round {
			e := catalog[picks[(round-1)%len(picks)]]
			return quiz.Round{
				Question: "من يغني: «" + e.lyric + "»؟",
				Answer:   e.artist,
				Accept:   e.accept,
				Hint:     "يبدأ بحرف " + string([]rune(e.artist)[0]),
			}
		},
	})
}

// Trigger is the Arabic token that starts this game.
const Trigger = "اغنيه"
