// FILE: lixenwraith/emuconfig/logfilter/filter.go
// Package logfilter holds the process-wide log filter. It translates class:level
// rules into go-log subsystem levels and keeps a message regex that log sinks can consult.
package logfilter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"

	logging "github.com/ipfs/go-log/v2"
)

// AllClasses is the wildcard class matching every logger.
const AllClasses = "*"

// Rule sets the level of one log class and its children.
type Rule struct {
	Class string
	Level string // go-log level name
}

// Filter is an ordered rule list; later rules override earlier ones.
type Filter struct {
	Rules []Rule
}

// State is the live filter configuration.
type State struct {
	Filter Filter
	Raw    string
	Regex  string
}

type liveState struct {
	state State
	regex *regexp.Regexp
}

var live atomic.Pointer[liveState]

func init() {
	live.Store(&liveState{})
}

// levels maps rule level names to go-log levels.
var levels = map[string]string{
	"trace":    "debug",
	"debug":    "debug",
	"info":     "info",
	"warning":  "warn",
	"error":    "error",
	"critical": "dpanic",
}

// Parse reads whitespace-separated "Class:Level" rules. Malformed rules are
// skipped and reported together; the valid ones are still returned.
func Parse(filter string) (Filter, error) {
	var (
		f    Filter
		errs []error
	)
	for _, field := range strings.Fields(filter) {
		class, level, ok := strings.Cut(field, ":")
		if !ok || class == "" {
			errs = append(errs, fmt.Errorf("malformed rule %q", field))
			continue
		}
		mapped, ok := levels[strings.ToLower(level)]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown level %q in rule %q", level, field))
			continue
		}
		f.Rules = append(f.Rules, Rule{Class: class, Level: mapped})
	}
	return f, errors.Join(errs...)
}

// Apply parses filter, pushes its levels into go-log and installs regex as the
// message filter. An invalid regex clears the message filter. Errors are reported
// after the rest has been applied.
func Apply(filter, regex string) error {
	f, parseErr := Parse(filter)
	errs := []error{parseErr}

	for _, r := range f.Rules {
		errs = append(errs, applyRule(r))
	}

	next := &liveState{state: State{Filter: f, Raw: filter}}
	if regex != "" {
		re, err := regexp.Compile(regex)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid regex filter %q: %w", regex, err))
		} else {
			next.regex = re
			next.state.Regex = regex
		}
	}
	live.Store(next)

	return errors.Join(errs...)
}

func applyRule(r Rule) error {
	if r.Class == AllClasses {
		lvl, err := logging.LevelFromString(r.Level)
		if err != nil {
			return err
		}
		logging.SetAllLoggers(lvl)
		return nil
	}
	if err := logging.SetLogLevelRegex(ClassPattern(r.Class), r.Level); err != nil {
		return fmt.Errorf("class %q: %w", r.Class, err)
	}
	return nil
}

// ClassPattern returns the subsystem regex of a class. Class segments separated by
// '.' match subsystem segments separated by '.' or '/', and children match too.
func ClassPattern(class string) string {
	parts := strings.Split(class, ".")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return `(?i)^` + strings.Join(parts, `[./]`) + `([./].*)?$`
}

// Current returns the live filter state.
func Current() State {
	return live.Load().state
}

// Allow reports whether a message passes the regex filter. Without a regex
// every message passes.
func Allow(message string) bool {
	re := live.Load().regex
	return re == nil || re.MatchString(message)
}
