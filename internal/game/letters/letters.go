// Package letters implements the letter-building game: the letters of a
// word are shown shuffled and players reassemble the word.
package letters

import (
	"math/rand"
	"strings"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/game/quiz"
	"github.com/botabeer/linegames/internal/model"
)

// Trigger is the Arabic token that starts this game.
const Trigger = "تكوين"

const (
	maxRounds = 5
	points    = 10
)

var words = []string{
	"مدرسه", "مستشفى", "مكتبه", "حديقه", "سياره",
	"طائره", "برتقال", "عصفور", "مفتاح", "نافذه",
	"صحراء", "جزيره", "مهندس", "كرسي", "ساعه",
}

// shuffle returns the runes of word in a different order. It retries so a
// short word never comes back unshuffled.
func shuffle(word string) string {
	runes := []rune(word)
	for attempt := 0; attempt < 10; attempt++ {
		rand.Shuffle(len(runes), func(i, j int) { runes[i], runes[j] = runes[j], runes[i] })
		if string(runes) != word {
			break
		}
	}
	return strings.Join(strings.Split(string(runes), ""), " ")
}

// New builds a fresh game instance over a random selection of words.
func New() game.Game {
	picks := rand.Perm(len(words))
	return quiz.New(quiz.Config{
		Name:            "تكوين الكلمات",
		Type:            model.GameLetters,
		MaxRounds:       maxRounds,
		Points:          points,
		AdvanceOnReveal: true,
		Scored:          true,
		Source: func(round int) quiz.Round {
			word := words[picks[(round-1)%len(picks)]]
			return quiz.Round{
				Question: "كون كلمه من الحروف: " + shuffle(word),
				Answer:   word,
				Hint:     "تبدأ بحرف " + string([]rune(word)[0]),
			}
		},
	})
}
