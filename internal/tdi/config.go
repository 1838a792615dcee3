package tdi

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-tdi/internal/indicator"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/internal/version"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LineConfig configures one smoothed line of the oscillator.
type LineConfig struct {
	Period int          `yaml:"period" json:"period" jsonschema:"title=Period,minimum=1" validate:"gte=1"`
	Type   types.MAType `yaml:"type" json:"type" jsonschema:"title=Moving Average Type,enum=simple,enum=exponential,enum=smoothed,enum=weighted" validate:"oneof=simple exponential smoothed weighted"`
}

// AlertsConfig enables alert kinds individually.
type AlertsConfig struct {
	LineBvsMiddle bool `yaml:"line_b_vs_middle" json:"line_b_vs_middle" jsonschema:"title=Signal/Base Line Cross,description=Trade signal line crossing the market base line"`
	PriceHook     bool `yaml:"price_hook" json:"price_hook" jsonschema:"title=Price Line Hook,description=Price line hooking back inside a volatility band from beyond 68 or 32"`
	PriceVsSignal bool `yaml:"price_vs_signal" json:"price_vs_signal" jsonschema:"title=Price/Signal Line Cross,description=Price line crossing the trade signal line"`
	PriceVsMiddle bool `yaml:"price_vs_middle" json:"price_vs_middle" jsonschema:"title=Price/Base Line Cross,description=Price line crossing the market base line"`
}

// Enabled reports whether alerts of kind are on.
func (a AlertsConfig) Enabled(kind types.AlertKind) bool {
	switch kind {
	case types.AlertKindLineBvsMiddle:
		return a.LineBvsMiddle
	case types.AlertKindPriceHook:
		return a.PriceHook
	case types.AlertKindPriceVsSignal:
		return a.PriceVsSignal
	case types.AlertKindPriceVsMiddle:
		return a.PriceVsMiddle
	default:
		return false
	}
}

// Kinds returns the enabled alert kinds in evaluation order.
func (a AlertsConfig) Kinds() []types.AlertKind {
	var kinds []types.AlertKind

	for _, kind := range types.AllAlertKinds {
		if a.Enabled(kind) {
			kinds = append(kinds, kind)
		}
	}

	return kinds
}

type SMTPConfig struct {
	Host     string `yaml:"host" json:"host" jsonschema:"title=SMTP Host"`
	Port     int    `yaml:"port" json:"port" jsonschema:"title=SMTP Port,default=587" validate:"gte=0,lte=65535"`
	Username string `yaml:"username" json:"username" jsonschema:"title=SMTP Username"`
	Password string `yaml:"password" json:"password" jsonschema:"title=SMTP Password"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" json:"bot_token" jsonschema:"title=Bot Token"`
	ChatID   int64  `yaml:"chat_id" json:"chat_id" jsonschema:"title=Chat ID"`
}

// NotificationConfig controls where fired alerts are sent. With notifications
// enabled and neither SMTP nor Telegram configured, alerts are only logged.
type NotificationConfig struct {
	Enabled  bool           `yaml:"enabled" json:"enabled" jsonschema:"title=Enabled"`
	From     string         `yaml:"from" json:"from" jsonschema:"title=Sender Address" validate:"omitempty,email"`
	To       []string       `yaml:"to" json:"to" jsonschema:"title=Recipient Addresses" validate:"omitempty,dive,email"`
	SMTP     SMTPConfig     `yaml:"smtp" json:"smtp"`
	Telegram TelegramConfig `yaml:"telegram" json:"telegram"`
}

// DirectionColors are the annotation colors of one alert kind.
type DirectionColors struct {
	Bullish types.MarkColor `yaml:"bullish" json:"bullish" jsonschema:"enum=red,enum=green,enum=blue,enum=yellow,enum=purple,enum=orange" validate:"oneof=red green blue yellow purple orange"`
	Bearish types.MarkColor `yaml:"bearish" json:"bearish" jsonschema:"enum=red,enum=green,enum=blue,enum=yellow,enum=purple,enum=orange" validate:"oneof=red green blue yellow purple orange"`
}

// ColorsConfig holds annotation colors per alert kind.
type ColorsConfig struct {
	LineBvsMiddle DirectionColors `yaml:"line_b_vs_middle" json:"line_b_vs_middle"`
	PriceHook     DirectionColors `yaml:"price_hook" json:"price_hook"`
	PriceVsSignal DirectionColors `yaml:"price_vs_signal" json:"price_vs_signal"`
	PriceVsMiddle DirectionColors `yaml:"price_vs_middle" json:"price_vs_middle"`
}

// For returns the color of kind in direction.
func (c ColorsConfig) For(kind types.AlertKind, direction types.Direction) types.MarkColor {
	var colors DirectionColors

	switch kind {
	case types.AlertKindLineBvsMiddle:
		colors = c.LineBvsMiddle
	case types.AlertKindPriceHook:
		colors = c.PriceHook
	case types.AlertKindPriceVsSignal:
		colors = c.PriceVsSignal
	case types.AlertKindPriceVsMiddle:
		colors = c.PriceVsMiddle
	}

	if direction == types.DirectionBearish {
		return colors.Bearish
	}

	return colors.Bullish
}

type AnnotationConfig struct {
	Enabled bool         `yaml:"enabled" json:"enabled" jsonschema:"title=Enabled"`
	Prefix  string       `yaml:"prefix" json:"prefix" jsonschema:"title=Name Prefix,default=tdi" validate:"required"`
	Colors  ColorsConfig `yaml:"colors" json:"colors"`
}

// Config is the full set of options of one oscillator instance.
type Config struct {
	// Version is the engine version the file was written for. Empty skips the check.
	Version string `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Config Version"`

	RSIPeriod    int                `yaml:"rsi_period" json:"rsi_period" jsonschema:"title=RSI Period,minimum=1,default=13" validate:"gte=1"`
	BandPeriod   int                `yaml:"band_period" json:"band_period" jsonschema:"title=Volatility Band Period,minimum=1,default=34" validate:"gte=1"`
	StdDev       float64            `yaml:"std_dev" json:"std_dev" jsonschema:"title=Standard Deviations,minimum=0,default=1.6185" validate:"gte=0"`
	PriceLine    LineConfig         `yaml:"price_line" json:"price_line"`
	SignalLine   LineConfig         `yaml:"signal_line" json:"signal_line"`
	AppliedPrice types.AppliedPrice `yaml:"applied_price" json:"applied_price" jsonschema:"title=Applied Price,enum=close,enum=open,enum=high,enum=low,enum=median,enum=typical,enum=weighted,default=close" validate:"oneof=close open high low median typical weighted"`

	BaseResolution types.Resolution `yaml:"base_resolution" json:"base_resolution" jsonschema:"title=Base Resolution,default=1m" validate:"required"`
	// AggregationResolution empty means the base resolution.
	AggregationResolution types.Resolution `yaml:"aggregation_resolution,omitempty" json:"aggregation_resolution,omitempty" jsonschema:"title=Aggregation Resolution"`
	TriggerLag            types.TriggerLag `yaml:"trigger_lag" json:"trigger_lag" validate:"min=0,max=1"`

	Alerts       AlertsConfig       `yaml:"alerts" json:"alerts"`
	Notification NotificationConfig `yaml:"notification" json:"notification"`
	Annotation   AnnotationConfig   `yaml:"annotation" json:"annotation"`

	// Lookback caps how many aggregation bars feed the oscillator on each
	// evaluation. Zero feeds the whole history.
	Lookback int `yaml:"lookback" json:"lookback" jsonschema:"title=Lookback Bars,minimum=0,default=500" validate:"gte=0"`

	// Digits is the number of decimals bid and ask are printed with.
	Digits int `yaml:"digits" json:"digits" jsonschema:"title=Price Digits,minimum=0,maximum=10,default=5" validate:"gte=0,lte=10"`
}

// DefaultConfig returns the classic oscillator settings with every alert off.
func DefaultConfig() Config {
	return Config{
		Version:               "",
		RSIPeriod:             13,
		BandPeriod:            34,
		StdDev:                1.6185,
		PriceLine:             LineConfig{Period: 2, Type: types.MATypeSimple},
		SignalLine:            LineConfig{Period: 7, Type: types.MATypeSimple},
		AppliedPrice:          types.AppliedPriceClose,
		BaseResolution:        types.ResolutionOneMinute,
		AggregationResolution: "",
		TriggerLag:            types.TriggerLagPrevious,
		Alerts:                AlertsConfig{},
		Notification: NotificationConfig{
			Enabled:  false,
			From:     "",
			To:       nil,
			SMTP:     SMTPConfig{Port: 587},
			Telegram: TelegramConfig{},
		},
		Annotation: AnnotationConfig{
			Enabled: true,
			Prefix:  "tdi",
			Colors: ColorsConfig{
				LineBvsMiddle: DirectionColors{Bullish: types.MarkColorGreen, Bearish: types.MarkColorRed},
				PriceHook:     DirectionColors{Bullish: types.MarkColorBlue, Bearish: types.MarkColorOrange},
				PriceVsSignal: DirectionColors{Bullish: types.MarkColorGreen, Bearish: types.MarkColorRed},
				PriceVsMiddle: DirectionColors{Bullish: types.MarkColorYellow, Bearish: types.MarkColorPurple},
			},
		},
		Lookback: 500,
		Digits:   5,
	}
}

// Aggregation returns the resolution the oscillator is computed on.
func (c Config) Aggregation() types.Resolution {
	if c.AggregationResolution.IsZero() {
		return c.BaseResolution
	}

	return c.AggregationResolution
}

// PipelineOptions returns the indicator settings of the config.
func (c Config) PipelineOptions() indicator.TDIOptions {
	return indicator.TDIOptions{
		RSIPeriod:        c.RSIPeriod,
		BandPeriod:       c.BandPeriod,
		StdDev:           c.StdDev,
		PriceLinePeriod:  c.PriceLine.Period,
		PriceLineType:    c.PriceLine.Type,
		SignalLinePeriod: c.SignalLine.Period,
		SignalLineType:   c.SignalLine.Type,
	}
}

// Validate checks field ranges, resolutions and the config version.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := c.BaseResolution.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid base resolution", err)
	}

	if !c.AggregationResolution.IsZero() {
		if err := c.AggregationResolution.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid aggregation resolution", err)
		}
	}

	if c.Lookback > 0 {
		pipeline, err := indicator.NewTDI(c.PipelineOptions())
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid oscillator settings", err)
		}

		// two extra bars so the lagged sample and the one before it are defined
		if need := pipeline.WarmUp() + 3; c.Lookback < need {
			return errors.Newf(errors.ErrCodeInvalidConfiguration,
				"lookback %d is shorter than the %d aggregation bars the oscillator needs", c.Lookback, need)
		}
	}

	if c.Notification.Enabled && c.Notification.SMTP.Host != "" {
		if c.Notification.From == "" || len(c.Notification.To) == 0 {
			return errors.New(errors.ErrCodeInvalidConfiguration, "e-mail notifications need a sender and at least one recipient")
		}
	}

	if err := version.CheckConfigCompatibility(version.GetVersion(), c.Version); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidVersion, "config version is not supported", err)
	}

	return nil
}

// ParseConfig reads YAML (or JSON) over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// LoadConfig reads and validates a config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return ParseConfig(data)
}

// ConfigSchema returns the JSON schema of Config.
func ConfigSchema() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&Config{})

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
