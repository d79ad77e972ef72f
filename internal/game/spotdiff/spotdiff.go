// Package spotdiff implements spot-the-difference: two nearly identical
// sentences are shown and players name the word that changed. Pure
// entertainment, never scored.
package spotdiff

import (
	"math/rand"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/game/quiz"
	"github.com/botabeer/linegames/internal/model"
)

// Trigger is the Arabic token that starts this game.
const Trigger = "اختلاف"

const maxRounds = 5

type puzzle struct {
	first  string
	second string
	answer string
}

var puzzles = []puzzle{
	{
		first:  "ذهب الولد الى السوق واشترى تفاحا",
		second: "ذهب الولد الى السوق واشترى عنبا",
		answer: "تفاحا",
	},
	{
		first:  "تشرق الشمس كل صباح من الشرق",
		second: "تشرق الشمس كل مساء من الشرق",
		answer: "صباح",
	},
	{
		first:  "قرأت في المكتبه ثلاثه كتب",
		second: "قرأت في المكتبه اربعه كتب",
		answer: "ثلاثه",
	},
	{
		first:  "سافرنا بالقطار الى المدينه القديمه",
		second: "سافرنا بالسياره الى المدينه القديمه",
		answer: "بالقطار",
	},
	{
		first:  "زرع الفلاح القمح في الحقل الواسع",
		second: "زرع الفلاح الشعير في الحقل الواسع",
		answer: "القمح",
	},
	{
		first:  "يلعب الاطفال في الحديقه الكبيره",
		second: "يلعب الاطفال في الساحه الكبيره",
		answer: "الحديقه",
	},
}

// New builds a fresh game instance. The answer is the word from the first
// sentence that changed in the second.
func New() game.Game {
	picks := rand.Perm(len(puzzles))
	return quiz.New(quiz.Config{
		Name:            "اوجد الاختلاف",
		Type:            model.GameSpotDiff,
		MaxRounds:       maxRounds,
		Points:          0,
		AdvanceOnReveal: true,
		Scored:          false,
		Source: func(round int) quiz.Round {
			p := puzzles[picks[(round-1)%len(puzzles)]]
			return quiz.Round{
				Question: "ما الكلمه التي تغيرت؟\n١) " + p.first + "\n٢) " + p.second,
				Answer:   p.answer,
			}
		},
	})
}
