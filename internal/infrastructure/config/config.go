package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ondieki1237/stayfresh-sub001/internal/domain/entities"

	"github.com/spf13/viper"
)

const (
	OutputText = "text"
	OutputJSON = "json"

	StoreDynamoDB = "dynamodb"
	StoreSQLite   = "sqlite"

	EnvPrefix = "MIGRATE"
)

// Viper keys. Flag names are identical.
const (
	KeyDryRun      = "dry-run"
	KeyAdminID     = "admin-id"
	KeyStatus      = "status"
	KeyIncludeSold = "include-sold"
	KeyAtomic      = "atomic"
	KeyOutput      = "output"
	KeyStore       = "store"
	KeySQLitePath  = "sqlite-path"
	KeyTimeout     = "timeout"
	KeyMetricsFile = "metrics-file"
)

var (
	ErrInvalidOutput  = errors.New("invalid output format")
	ErrInvalidStore   = errors.New("invalid store driver")
	ErrInvalidStatus  = errors.New("invalid eligibility status")
	ErrInvalidTimeout = errors.New("invalid store timeout")
)

// Config is the run configuration of the migration engine. It is built once at
// startup and passed by value; nothing downstream reads flags or environment.
type Config struct {
	DryRun  bool
	AdminID string

	// Statuses and IncludeSold form the eligibility predicate.
	Statuses    []string
	IncludeSold bool

	// Atomic commits each record in one store transaction when the store
	// supports it. Otherwise the step-wise path with compensation is used.
	Atomic bool

	Output       string
	StoreDriver  string
	SQLitePath   string
	StoreTimeout time.Duration

	// MetricsFile, when set, receives the run metrics in Prometheus text format.
	MetricsFile string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Statuses:     []string{string(entities.LegacyStatusActive), string(entities.LegacyStatusListed)},
		Atomic:       true,
		Output:       OutputText,
		StoreDriver:  StoreDynamoDB,
		SQLitePath:   "stayfresh.db",
		StoreTimeout: 10 * time.Second,
	}
}

// SetDefaults registers Default values on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyDryRun, d.DryRun)
	v.SetDefault(KeyAdminID, d.AdminID)
	v.SetDefault(KeyStatus, d.Statuses)
	v.SetDefault(KeyIncludeSold, d.IncludeSold)
	v.SetDefault(KeyAtomic, d.Atomic)
	v.SetDefault(KeyOutput, d.Output)
	v.SetDefault(KeyStore, d.StoreDriver)
	v.SetDefault(KeySQLitePath, d.SQLitePath)
	v.SetDefault(KeyTimeout, d.StoreTimeout)
	v.SetDefault(KeyMetricsFile, d.MetricsFile)
}

// NewViper returns a viper instance with defaults and MIGRATE_* environment
// binding (MIGRATE_DRY_RUN, MIGRATE_ADMIN_ID, ...).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// FromViper reads and validates a Config.
func FromViper(v *viper.Viper) (Config, error) {
	c := Config{
		DryRun:       v.GetBool(KeyDryRun),
		AdminID:      strings.TrimSpace(v.GetString(KeyAdminID)),
		Statuses:     splitList(v.GetStringSlice(KeyStatus)),
		IncludeSold:  v.GetBool(KeyIncludeSold),
		Atomic:       v.GetBool(KeyAtomic),
		Output:       strings.ToLower(strings.TrimSpace(v.GetString(KeyOutput))),
		StoreDriver:  strings.ToLower(strings.TrimSpace(v.GetString(KeyStore))),
		SQLitePath:   strings.TrimSpace(v.GetString(KeySQLitePath)),
		StoreTimeout: v.GetDuration(KeyTimeout),
		MetricsFile:  strings.TrimSpace(v.GetString(KeyMetricsFile)),
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output)
	}
	switch c.StoreDriver {
	case StoreDynamoDB, StoreSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStore, c.StoreDriver)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.StoreTimeout)
	}
	_, err := c.EligibilityFilter()
	return err
}

// EligibilityFilter converts the configured statuses into a filter. Status
// names match case-insensitively; Removed is rejected because removed records
// are never migrated. Sold is only accepted together with IncludeSold, since
// the filter drops sold records otherwise.
func (c Config) EligibilityFilter() (entities.EligibilityFilter, error) {
	if len(c.Statuses) == 0 {
		return entities.EligibilityFilter{}, fmt.Errorf("%w: empty", ErrInvalidStatus)
	}
	f := entities.EligibilityFilter{IncludeSold: c.IncludeSold}
	for _, raw := range c.Statuses {
		s, ok := parseStatus(raw)
		if !ok {
			return entities.EligibilityFilter{}, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
		}
		if s == entities.LegacyStatusSold && !c.IncludeSold {
			return entities.EligibilityFilter{}, fmt.Errorf("%w: %q requires %s", ErrInvalidStatus, raw, KeyIncludeSold)
		}
		f.Statuses = append(f.Statuses, s)
	}
	return f, nil
}

func parseStatus(raw string) (entities.LegacyStatus, bool) {
	for _, s := range []entities.LegacyStatus{entities.LegacyStatusActive, entities.LegacyStatusListed, entities.LegacyStatusSold} {
		if strings.EqualFold(strings.TrimSpace(raw), string(s)) {
			return s, true
		}
	}
	return "", false
}

// splitList accepts both repeated values and comma separated env values.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
