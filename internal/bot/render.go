package bot

import (
	"fmt"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/botabeer/linegames/internal/game"
	"github.com/botabeer/linegames/internal/handler"
	"github.com/botabeer/linegames/internal/model"
	"github.com/botabeer/linegames/internal/service"
)

// Card palette.
const (
	colorTitle = "#1DB446"
	colorMuted = "#aaaaaa"
	colorDark  = "#333333"
)

// Render turns a dispatcher response into LINE messages. LINE allows at
// most five messages per reply; a response never produces more than
// three.
func Render(resp *handler.Response) []messaging_api.MessageInterface {
	var out []messaging_api.MessageInterface
	if resp == nil {
		return out
	}
	if resp.Text != "" {
		out = append(out, &messaging_api.TextMessage{Text: resp.Text})
	}
	if resp.Summary != nil {
		out = append(out, summaryFlex(resp.Summary))
	}
	if resp.Prompt != nil {
		out = append(out, promptFlex(resp.Prompt))
	}
	if resp.Players != nil {
		out = append(out, leaderboardFlex(resp.Players))
	}
	if resp.Stats != nil {
		out = append(out, statsFlex(resp.Stats))
	}
	if resp.Help != nil {
		out = append(out, helpFlex(resp.Help))
	}
	return out
}

// promptFlex renders one round's question with the in-round control
// tokens attached as quick replies.
func promptFlex(p *game.Prompt) messaging_api.MessageInterface {
	contents := []messaging_api.FlexComponentInterface{
		&messaging_api.FlexText{Text: p.Title, Weight: "bold", Size: "lg", Color: colorTitle},
		&messaging_api.FlexText{Text: p.Question, Wrap: true, Margin: "md", Size: "md", Color: colorDark},
	}
	if p.TotalRounds > 0 {
		contents = append(contents, &messaging_api.FlexText{
			Text:   fmt.Sprintf("جوله %d من %d", p.Round, p.TotalRounds),
			Size:   "xs",
			Color:  colorMuted,
			Margin: "lg",
		})
	}
	card := bubble(contents)
	if p.ImageURL != "" {
		card.Hero = &messaging_api.FlexImage{
			Url:         p.ImageURL,
			Size:        "full",
			AspectMode:  "cover",
			AspectRatio: "20:13",
		}
	}
	return &messaging_api.FlexMessage{
		AltText:  p.Title,
		Contents: card,
		QuickReply: &messaging_api.QuickReply{
			Items: []messaging_api.QuickReplyItem{
				quickItem("تلميح", game.TokenHint),
				quickItem("الجواب", game.TokenReveal),
				quickItem("تخطي", game.TokenSkip),
			},
		},
	}
}

func summaryFlex(s *game.Summary) messaging_api.MessageInterface {
	contents := []messaging_api.FlexComponentInterface{
		&messaging_api.FlexText{Text: "انتهت لعبه " + s.GameName, Weight: "bold", Size: "lg", Color: colorTitle},
		&messaging_api.FlexSeparator{Margin: "md"},
	}
	if len(s.Entries) == 0 {
		contents = append(contents, &messaging_api.FlexText{
			Text: "ما سجل احد نقاط هالمره", Wrap: true, Margin: "md", Color: colorMuted,
		})
	}
	for i, e := range s.Entries {
		contents = append(contents, &messaging_api.FlexText{
			Text:   fmt.Sprintf("%d. %s — %d نقطه", i+1, e.DisplayName, e.Points),
			Wrap:   true,
			Margin: "md",
			Color:  colorDark,
		})
	}
	return &messaging_api.FlexMessage{AltText: "نتائج اللعبه", Contents: bubble(contents)}
}

func leaderboardFlex(players []*model.Player) messaging_api.MessageInterface {
	contents := []messaging_api.FlexComponentInterface{
		&messaging_api.FlexText{Text: "الصداره", Weight: "bold", Size: "lg", Color: colorTitle},
		&messaging_api.FlexSeparator{Margin: "md"},
	}
	if len(players) == 0 {
		contents = append(contents, &messaging_api.FlexText{
			Text: "ما فيه لاعبين بعد", Wrap: true, Margin: "md", Color: colorMuted,
		})
	}
	for i, p := range players {
		contents = append(contents, &messaging_api.FlexText{
			Text:   fmt.Sprintf("%d. %s — %d نقطه", i+1, p.DisplayName, p.Points),
			Wrap:   true,
			Margin: "md",
			Color:  colorDark,
		})
	}
	return &messaging_api.FlexMessage{AltText: "الصداره", Contents: bubble(contents)}
}

func statsFlex(st *service.PlayerStats) messaging_api.MessageInterface {
	p := st.Player
	contents := []messaging_api.FlexComponentInterface{
		&messaging_api.FlexText{Text: p.DisplayName, Weight: "bold", Size: "lg", Color: colorTitle},
		&messaging_api.FlexSeparator{Margin: "md"},
		&messaging_api.FlexText{Text: fmt.Sprintf("النقاط: %d", p.Points), Margin: "md", Color: colorDark},
		&messaging_api.FlexText{Text: fmt.Sprintf("الالعاب: %d", p.GamesPlayed), Margin: "sm", Color: colorDark},
		&messaging_api.FlexText{Text: fmt.Sprintf("الانتصارات: %d", p.Wins), Margin: "sm", Color: colorDark},
	}
	return &messaging_api.FlexMessage{AltText: "نقاطي", Contents: bubble(contents)}
}

func helpFlex(triggers []string) messaging_api.MessageInterface {
	contents := []messaging_api.FlexComponentInterface{
		&messaging_api.FlexText{Text: "الاوامر", Weight: "bold", Size: "lg", Color: colorTitle},
		&messaging_api.FlexText{Text: "انضم / انسحب — التسجيل في النقاط", Wrap: true, Margin: "md", Size: "sm", Color: colorDark},
		&messaging_api.FlexText{Text: "نقاطي / الصداره — النقاط والترتيب", Wrap: true, Margin: "sm", Size: "sm", Color: colorDark},
		&messaging_api.FlexText{Text: "ايقاف — انهاء اللعبه الحاليه", Wrap: true, Margin: "sm", Size: "sm", Color: colorDark},
		&messaging_api.FlexText{Text: "سؤال / تحدي / اعتراف / منشن — محتوى عشوائي", Wrap: true, Margin: "sm", Size: "sm", Color: colorDark},
		&messaging_api.FlexText{Text: "داخل الجوله: لمح / جاوب / تخطي", Wrap: true, Margin: "sm", Size: "sm", Color: colorDark},
		&messaging_api.FlexSeparator{Margin: "md"},
		&messaging_api.FlexText{Text: "الالعاب", Weight: "bold", Size: "md", Margin: "md", Color: colorTitle},
	}
	for _, trig := range triggers {
		contents = append(contents, &messaging_api.FlexText{
			Text: trig, Margin: "sm", Size: "sm", Color: colorDark,
		})
	}
	return &messaging_api.FlexMessage{AltText: "المساعده", Contents: bubble(contents)}
}

func bubble(contents []messaging_api.FlexComponentInterface) *messaging_api.FlexBubble {
	return &messaging_api.FlexBubble{
		Body: &messaging_api.FlexBox{
			Layout:   "vertical",
			Contents: contents,
		},
	}
}

func quickItem(label, text string) messaging_api.QuickReplyItem {
	return messaging_api.QuickReplyItem{
		Type:   "action",
		Action: &messaging_api.MessageAction{Label: label, Text: text},
	}
}
