package daraja

import "time"

const (
	ModeLive    = "live"
	ModeSandbox = "sandbox"
)

type Config struct {
	Mode           string        `mapstructure:"mode"`
	BaseURL        string        `mapstructure:"base_url"`
	ConsumerKey    string        `mapstructure:"consumer_key"`
	ConsumerSecret string        `mapstructure:"consumer_secret"`
	ShortCode      string        `mapstructure:"short_code"`
	Passkey        string        `mapstructure:"passkey"`
	CallbackURL    string        `mapstructure:"callback_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
}
