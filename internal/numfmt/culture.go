// Package numfmt implements culture-aware parsing and rendering of numbers.
//
// A [Culture] describes the lexical conventions of a locale: decimal and
// group separators, sign symbols, currency and percent placement. [Styles]
// select which lexical forms a parser accepts. Format patterns follow the
// familiar standard ("N2", "E3", "X8") and custom ("#,##0.00;(#,##0.00)")
// numeric format string conventions.
//
// Nothing in this package reads or mutates process-wide locale state. Callers
// pass a *Culture explicitly; nil means [Invariant].
package numfmt

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Culture holds the number formatting conventions of one locale.
// Cultures are treated as immutable once published.
type Culture struct {
	Name string // BCP-47 tag, "" for the invariant culture

	DecimalSeparator string
	GroupSeparator   string
	GroupSizes       []int // right to left; the last size repeats, a trailing 0 stops grouping
	NegativeSign     string
	PositiveSign     string
	NaNSymbol        string
	PositiveInfinity string
	NegativeInfinity string
	NumberDecimals   int // default precision for "F" and "N"

	CurrencySymbol          string
	CurrencyDecimals        int
	CurrencyPositivePattern int // 0 "$n", 1 "n$", 2 "$ n", 3 "n $"
	CurrencyNegativePattern int // index into currencyNegativePatterns

	PercentSymbol          string
	PerMilleSymbol         string
	PercentDecimals        int
	PercentPositivePattern int // 0 "n %", 1 "n%", 2 "%n", 3 "% n"
	PercentNegativePattern int // index into percentNegativePatterns
}

// Placeholders: '$' currency symbol, '%' percent symbol, '-' negative sign, 'n' number.
var (
	currencyPositivePatterns = []string{"$n", "n$", "$ n", "n $"}
	currencyNegativePatterns = []string{
		"($n)", "-$n", "$-n", "$n-", "(n$)", "-n$", "n-$", "n$-",
		"-n $", "-$ n", "n $-", "$ n-", "$ -n", "n- $", "($ n)", "(n $)", "$- n",
	}
	percentPositivePatterns = []string{"n %", "n%", "%n", "% n"}
	percentNegativePatterns = []string{
		"-n %", "-n%", "-%n", "%-n", "%n-", "n-%", "n%-", "-% n", "n %-", "% n-", "% -n", "n- %",
	}
)

// Invariant is the culture-neutral convention set. It is the default wherever
// a *Culture is nil.
var Invariant = &Culture{
	Name:                    "",
	DecimalSeparator:        ".",
	GroupSeparator:          ",",
	GroupSizes:              []int{3},
	NegativeSign:            "-",
	PositiveSign:            "+",
	NaNSymbol:               "NaN",
	PositiveInfinity:        "Infinity",
	NegativeInfinity:        "-Infinity",
	NumberDecimals:          2,
	CurrencySymbol:          "¤",
	CurrencyDecimals:        2,
	CurrencyPositivePattern: 0,
	CurrencyNegativePattern: 0,
	PercentSymbol:           "%",
	PerMilleSymbol:          "‰",
	PercentDecimals:         2,
	PercentPositivePattern:  0,
	PercentNegativePattern:  0,
}

// derive copies base and applies fn to the copy.
func derive(base *Culture, name string, fn func(c *Culture)) *Culture {
	c := *base
	c.Name = name
	c.GroupSizes = append([]int(nil), base.GroupSizes...)
	fn(&c)
	return &c
}

var (
	enUS = derive(Invariant, "en-US", func(c *Culture) {
		c.CurrencySymbol = "$"
		c.CurrencyNegativePattern = 1
		c.PercentPositivePattern = 1
		c.PercentNegativePattern = 1
	})
	enGB = derive(enUS, "en-GB", func(c *Culture) {
		c.CurrencySymbol = "£"
	})
	enIN = derive(enUS, "en-IN", func(c *Culture) {
		c.GroupSizes = []int{3, 2}
		c.CurrencySymbol = "₹"
		c.CurrencyPositivePattern = 0
		c.CurrencyNegativePattern = 1
	})
	deDE = derive(Invariant, "de-DE", func(c *Culture) {
		c.DecimalSeparator = ","
		c.GroupSeparator = "."
		c.CurrencySymbol = "€"
		c.CurrencyPositivePattern = 3
		c.CurrencyNegativePattern = 8
	})
	deCH = derive(Invariant, "de-CH", func(c *Culture) {
		c.GroupSeparator = "’"
		c.CurrencySymbol = "CHF"
		c.CurrencyPositivePattern = 2
		c.CurrencyNegativePattern = 12
		c.PercentPositivePattern = 1
		c.PercentNegativePattern = 1
	})
	frFR = derive(deDE, "fr-FR", func(c *Culture) {
		c.GroupSeparator = "\u202f"
	})
	esES = derive(deDE, "es-ES", func(*Culture) {})
	itIT = derive(deDE, "it-IT", func(*Culture) {})
	nlNL = derive(deDE, "nl-NL", func(c *Culture) {
		c.CurrencyPositivePattern = 2
		c.CurrencyNegativePattern = 12
		c.PercentPositivePattern = 1
		c.PercentNegativePattern = 1
	})
	ptBR = derive(deDE, "pt-BR", func(c *Culture) {
		c.CurrencySymbol = "R$"
		c.CurrencyPositivePattern = 2
		c.CurrencyNegativePattern = 9
		c.PercentPositivePattern = 1
		c.PercentNegativePattern = 1
	})
	ruRU = derive(deDE, "ru-RU", func(c *Culture) {
		c.GroupSeparator = "\u00a0"
		c.CurrencySymbol = "₽"
	})
	svSE = derive(deDE, "sv-SE", func(c *Culture) {
		c.GroupSeparator = "\u00a0"
		c.NegativeSign = "\u2212"
		c.NegativeInfinity = "\u2212Infinity"
		c.CurrencySymbol = "kr"
	})
	jaJP = derive(enUS, "ja-JP", func(c *Culture) {
		c.CurrencySymbol = "￥"
		c.CurrencyDecimals = 0
	})
	zhCN = derive(enUS, "zh-CN", func(c *Culture) {
		c.CurrencySymbol = "¥"
	})
)

var (
	cultureMu sync.RWMutex
	cultures  = map[string]*Culture{}
	matcher   language.Matcher
	tags      []language.Tag
)

func init() {
	for _, c := range []*Culture{enUS, enGB, enIN, deDE, deCH, frFR, esES, itIT, nlNL, ptBR, ruRU, svSE, jaJP, zhCN} {
		mustRegister(c)
	}
}

func mustRegister(c *Culture) {
	if err := RegisterCulture(c); err != nil {
		panic(err)
	}
}

// RegisterCulture adds c to the lookup table used by [LookupCulture].
// Registering a tag that already exists replaces the earlier culture.
func RegisterCulture(c *Culture) error {
	if c == nil || c.Name == "" {
		return fmt.Errorf("numfmt: culture must have a name")
	}
	tag, err := language.Parse(c.Name)
	if err != nil {
		return fmt.Errorf("numfmt: culture %q: %w", c.Name, err)
	}
	if c.DecimalSeparator == "" {
		return fmt.Errorf("numfmt: culture %q has no decimal separator", c.Name)
	}

	cultureMu.Lock()
	defer cultureMu.Unlock()

	key := tag.String()
	if _, exists := cultures[key]; !exists {
		tags = append(tags, tag)
	}
	cultures[key] = c
	matcher = language.NewMatcher(tags)
	return nil
}

// LookupCulture resolves a BCP-47 tag to a registered culture. Exact matches
// win; otherwise the closest registered culture with the same language is
// used ("de" resolves to de-DE, "en" to en-US). An empty tag or
// "invariant" returns [Invariant].
func LookupCulture(name string) (*Culture, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "invariant") {
		return Invariant, nil
	}
	tag, err := language.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("numfmt: unknown culture %q: %w", name, err)
	}

	cultureMu.RLock()
	defer cultureMu.RUnlock()

	if c, ok := cultures[tag.String()]; ok {
		return c, nil
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return nil, fmt.Errorf("numfmt: unknown culture %q", name)
	}
	best := tags[idx]
	want, _ := tag.Base()
	got, _ := best.Base()
	if want != got {
		return nil, fmt.Errorf("numfmt: unknown culture %q", name)
	}
	return cultures[best.String()], nil
}

// Cultures returns the names of all registered cultures, sorted.
func Cultures() []string {
	cultureMu.RLock()
	defer cultureMu.RUnlock()

	names := make([]string, 0, len(cultures))
	for _, c := range cultures {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// or returns c, or Invariant when c is nil.
func or(c *Culture) *Culture {
	if c == nil {
		return Invariant
	}
	return c
}
