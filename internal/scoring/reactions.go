package scoring

import (
	"puzzlestats/internal/models"
	"puzzlestats/internal/structures"
)

const (
	GlyphUnknown       = "❔"
	GlyphFailed        = "❌"
	GlyphPerfect       = "💯"
	GlyphReverse       = "⏪"
	GlyphRainbow       = "🌈"
	defaultWordle      = "<:wordle:1393063212248858805>"
	defaultConnections = "<:connections:1393063471616102461>"
	defaultMini        = "<:mini:1393063641309380799>"
	defaultFifty       = "<:fifty:1393060774087360552>"
	defaultSixty       = "<:sixty:1393039767746117652>"
	defaultSeventy     = "<:seventy:1393061147363508254>"
	defaultEighty      = "<:eighty:1393042634104111124>"
	defaultNinety      = "<:ninety:1393042776114855966>"
)

var keycaps = [10]string{"0️⃣", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣"}

// Reactions picks the acknowledgement glyphs for a stored result.
type Reactions struct {
	conf structures.ReactionConfig
}

func NewReactions(conf *structures.Config) *Reactions {
	r := conf.Game.Reactions
	r.Wordle = orDefault(r.Wordle, defaultWordle)
	r.Connections = orDefault(r.Connections, defaultConnections)
	r.Mini = orDefault(r.Mini, defaultMini)
	r.Fifty = orDefault(r.Fifty, defaultFifty)
	r.Sixty = orDefault(r.Sixty, defaultSixty)
	r.Seventy = orDefault(r.Seventy, defaultSeventy)
	r.Eighty = orDefault(r.Eighty, defaultEighty)
	r.Ninety = orDefault(r.Ninety, defaultNinety)
	return &Reactions{conf: r}
}

func (r *Reactions) Guess(rec models.GuessRecord) []string {
	if rec.Failed {
		return []string{r.conf.Wordle, GlyphFailed, "😔"}
	}
	return []string{r.conf.Wordle, Keycap(rec.Guesses), GuessMood(rec.Guesses)}
}

func (r *Reactions) Grouping(rec models.GroupingRecord) []string {
	glyphs := []string{
		r.conf.Connections,
		r.Tens(rec.Score),
		Keycap(rec.Score % 10),
		MistakeMood(rec.Mistakes),
	}
	if rec.Perfect() {
		glyphs = append(glyphs, GlyphPerfect)
	}
	if rec.ReverseRainbow() {
		glyphs = append(glyphs, GlyphReverse, GlyphRainbow)
	}
	return glyphs
}

func (r *Reactions) Mini() []string {
	return []string{r.conf.Mini}
}

// Tens maps a Connections score to its tens-bucket glyph.
func (r *Reactions) Tens(score int) string {
	switch {
	case score >= 90 && score <= 99:
		return r.conf.Ninety
	case score >= 80 && score < 90:
		return r.conf.Eighty
	case score >= 70 && score < 80:
		return r.conf.Seventy
	case score >= 60 && score < 70:
		return r.conf.Sixty
	case score >= 50 && score < 60:
		return r.conf.Fifty
	default:
		return GlyphUnknown
	}
}

func Keycap(digit int) string {
	if digit < 0 || digit > 9 {
		return GlyphUnknown
	}
	return keycaps[digit]
}

func GuessMood(guesses int) string {
	switch guesses {
	case 1:
		return "🤩"
	case 2:
		return "😁"
	case 3:
		return "😃"
	case 4:
		return "🙂"
	case 5:
		return "😬"
	case 6:
		return "😅"
	default:
		return GlyphUnknown
	}
}

func MistakeMood(mistakes int) string {
	switch mistakes {
	case 0:
		return "🤩"
	case 1:
		return "😁"
	case 2:
		return "🙂"
	case 3:
		return "😅"
	case 4:
		return "😔"
	default:
		return GlyphUnknown
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
