// Package icon renders the status symbols printed by the CLI.
//
// Icons come as emoji, nerd-font glyphs, plain ASCII, kaomoji or Unicode squares,
// picked by the icons.variant setting.
package icon

import (
	"github.com/mediactl/mediactl/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get renders i in the configured variant. Unknown variants render as empty.
func Get(i Icon) string {
	return icons[i].Get()
}

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	Stop
	Video
	NoVideo
	Repeat
	Snapshot
	Subtitle
	Arrow
)

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "\uf00c", plain: "+", kaomoji: "(ᵔ◡ᵔ)", squares: "▣"},
	Fail:     {emoji: "❌", nerd: "\uf00d", plain: "x", kaomoji: "(╥﹏╥)", squares: "▨"},
	Progress: {emoji: "⏳", nerd: "\uf254", plain: "~", kaomoji: "(・_・;)", squares: "▧"},
	Play:     {emoji: "▶️", nerd: "\uf04b", plain: ">", kaomoji: "ヽ(・∀・)ﾉ", squares: "▶"},
	Pause:    {emoji: "⏸️", nerd: "\uf04c", plain: "||", kaomoji: "(－_－) zzZ", squares: "▮"},
	Stop:     {emoji: "⏹️", nerd: "\uf04d", plain: "[]", kaomoji: "(ー_ー)!!", squares: "■"},
	Video:    {emoji: "🎞️", nerd: "\uf03d", plain: "V", kaomoji: "(⌐■_■)", squares: "▤"},
	NoVideo:  {emoji: "🚫", nerd: "\uf4e2", plain: "-V", kaomoji: "(¬_¬)", squares: "□"},
	Repeat:   {emoji: "🔁", nerd: "\uf01e", plain: "@", kaomoji: "(〜￣▽￣)〜", squares: "▥"},
	Snapshot: {emoji: "📸", nerd: "\uf030", plain: "*", kaomoji: "(◕‿◕)✌", squares: "▩"},
	Subtitle: {emoji: "💬", nerd: "\uf27a", plain: "S", kaomoji: "(°ロ°)", squares: "▦"},
	Arrow:    {emoji: "➡️", nerd: "\uf061", plain: "->", kaomoji: "(╯°□°）╯", squares: "▸"},
}
