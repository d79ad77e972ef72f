// Package categories implements the human/animal/plant/country game: each
// round picks a letter and a category and any fitting word starting with
// that letter scores.
package categories

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/game/quiz"
	"github.com/botabeer/linegames/internal/model"
)

// Trigger is the Arabic token that starts this game.
const Trigger = "انسان"

const (
	maxRounds = 5
	points    = 2
)

var names = []string{"اسم انسان", "اسم حيوان", "اسم نبات", "اسم جماد", "اسم بلاد"}

// letters excludes the rare ones nobody can answer with.
var letters = []rune("ابتجحخدرزسشصطعفقكلمنهوي")

// New builds a fresh game instance. There is no dictionary: any word of
// two or more letters starting with the drawn letter is accepted, which
// matches how the game is played in a group chat where other players call
// out wrong answers themselves.
func New() game.Game {
	return quiz.New(quiz.Config{
		Name:            "انسان حيوان نبات",
		Type:            model.GameCategories,
		MaxRounds:       maxRounds,
		Points:          points,
		AdvanceOnReveal: true,
		Scored:          true,
		Source: func(round int) quiz.Round {
			letter := letters[rand.Intn(len(letters))]
			category := names[(round-1)%len(names)]
			return quiz.Round{
				Question: fmt.Sprintf("%s يبدأ بحرف «%c»", category, letter),
				Answer:   fmt.Sprintf("اي %s يبدأ بحرف %c", category, letter),
				Hint:     fmt.Sprintf("اول حرف هو «%c»", letter),
				Check: func(normalized string) bool {
					if strings.ContainsRune(normalized, ' ') {
						return false
					}
					runes := []rune(normalized)
					return len(runes) >= 2 && runes[0] == letter
				},
			}
		},
	})
}
