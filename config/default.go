package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/mediactl/mediactl/color"
	"github.com/mediactl/mediactl/constant"
	"github.com/mediactl/mediactl/key"
	"github.com/mediactl/mediactl/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered setting and its default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for the config info command.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env is the environment variable bound to the field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Mediactl + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON includes the current value next to the default.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName names the type of the default value, as shown by config info.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlayerEngine, constant.EngineLibVLC, "Native engine to drive.\nAvailable options are: libvlc, fake")
	register(key.PlayerEngineArgs, []string{}, "Arguments passed to the engine instance, e.g. --no-xlib")
	register(key.PlayerStandardOptions, []string{}, "Options applied to every media before per-call options")
	register(key.PlayerRepeat, false, "Replay media when it finishes, and wrap sub-item chains")
	register(key.PlayerPlaySubItems, false, "Play the sub-items of a media one after another")
	register(key.PlayerStartTimeout, 10000, "Milliseconds to wait for playback to start with --wait")
	register(key.PlayerVideoOutputPoll, 50, "Milliseconds between video output checks")
	register(key.PlayerVideoOutputTimeout, 5000, "Milliseconds before giving up on a video output")
	register(key.SnapshotDirectory, "", "Directory for snapshots taken without a path.\nEmpty uses the cache directory")
	register(key.SnapshotKeepDays, 30, "Delete snapshots in the default directory after this many days.\n0 keeps them forever")
	register(key.HistorySave, true, "Remember played media")
	register(key.MetricsListen, "", "Address to serve Prometheus metrics on, e.g. :9090.\nEmpty disables the server")
	register(key.StatusRate, 4, "Status line updates per second while playing")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
