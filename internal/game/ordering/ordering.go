// Package ordering implements the item-ordering game: the items of a
// known sequence are shown shuffled and players type them back in order,
// separated by spaces.
package ordering

import (
	"math/rand"
	"strings"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/game/quiz"
	"github.com/botabeer/linegames/internal/model"
)

// Trigger is the Arabic token that starts this game.
const Trigger = "ترتيب"

const (
	maxRounds = 5
	points    = 20
)

type sequence struct {
	title string
	items []string
}

var sequences = []sequence{
	{title: "ايام الاسبوع من السبت", items: []string{"السبت", "الاحد", "الاثنين", "الثلاثاء", "الاربعاء"}},
	{title: "الارقام تصاعديا", items: []string{"واحد", "اثنان", "ثلاثه", "اربعه", "خمسه"}},
	{title: "مراحل نمو النبات", items: []string{"بذره", "برعم", "ساق", "ورقه", "زهره"}},
	{title: "فصول السنه من الربيع", items: []string{"الربيع", "الصيف", "الخريف", "الشتاء"}},
	{title: "الصلوات من الفجر", items: []string{"الفجر", "الظهر", "العصر", "المغرب", "العشاء"}},
	{title: "مراحل العمر", items: []string{"طفل", "صبي", "شاب", "كهل", "شيخ"}},
}

// New builds a fresh game instance over a random selection of sequences.
func New() game.Game {
	picks := rand.Perm(len(sequences))
	return quiz.New(quiz.Config{
		Name:            "رتب العناصر",
		Type:            model.GameOrdering,
		MaxRounds:       maxRounds,
		Points:          points,
		AdvanceOnReveal: true,
		Scored:          true,
		Source: func(round int) quiz.Round {
			seq := sequences[picks[(round-1)%len(picks)]]

			shuffled := make([]string, len(seq.items))
			copy(shuffled, seq.items)
			for strings.Join(shuffled, " ") == strings.Join(seq.items, " ") {
				rand.Shuffle(len(shuffled), func(i, j int) {
					shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
				})
			}

			// Whitespace collapse in the normalizer makes the joined
			// answer robust to extra spaces from the sender.
			answer := strings.Join(seq.items, " ")
			return quiz.Round{
				Question: "رتب (" + seq.title + "): " + strings.Join(shuffled, " ، "),
				Answer:   answer,
				Hint:     "يبدأ بـ " + seq.items[0],
			}
		},
	})
}
