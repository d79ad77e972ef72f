// Package opposite implements the antonym game: a word is shown and
// players answer with its opposite.
package opposite

import (
	"math/rand"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/game/quiz"
	"github.com/botabeer/linegames/internal/model"
)

// Trigger is the Arabic token that starts this game.
const Trigger = "ضد"

const (
	maxRounds = 5
	points    = 2
)

type pair struct {
	word   string
	answer string
	accept []string
}

// pairs is the antonym table. Common spelling variants of the expected
// answer go in accept; the normalizer already folds hamza and teh-marbuta
// variants, so accept is only for genuinely different words.
var pairs = []pair{
	{word: "كبير", answer: "صغير"},
	{word: "طويل", answer: "قصير"},
	{word: "سريع", answer: "بطيء", accept: []string{"بطي"}},
	{word: "قريب", answer: "بعيد"},
	{word: "حار", answer: "بارد"},
	{word: "نور", answer: "ظلام", accept: []string{"عتمه", "ظلمه"}},
	{word: "فرح", answer: "حزن"},
	{word: "قوي", answer: "ضعيف"},
	{word: "غني", answer: "فقير"},
	{word: "نهار", answer: "ليل"},
	{word: "صعب", answer: "سهل"},
	{word: "جميل", answer: "قبيح"},
	{word: "مليء", answer: "فارغ", accept: []string{"خالي"}},
	{word: "بدايه", answer: "نهايه"},
	{word: "نظيف", answer: "وسخ", accept: []string{"قذر", "متسخ"}},
	{word: "صامت", answer: "ناطق", accept: []string{"متكلم"}},
	{word: "حلو", answer: "مر", accept: []string{"مالح"}},
	{word: "فوق", answer: "تحت"},
	{word: "يمين", answer: "يسار", accept: []string{"شمال"}},
	{word: "حرب", answer: "سلام", accept: []string{"سلم"}},
}

// New builds a fresh game instance over a random selection of pairs.
func New() game.Game {
	picks := rand.Perm(len(pairs))
	return quiz.New(quiz.Config{
		Name:            "لعبه الاضداد",
		Type:            model.GameOpposite,
		MaxRounds:       maxRounds,
		Points:          points,
		AdvanceOnReveal: true,
		Scored:          true,
		Source: func(round int) quiz.Round {
			p := pairs[picks[(round-1)%len(picks)]]
			return quiz.Round{
				Question: "ما هو ضد كلمه «" + p.word + "»؟",
				Answer:   p.answer,
				Accept:   p.accept,
				Hint:     "يبدأ بحرف " + string([]rune(p.answer)[0]),
			}
		},
	})
}
