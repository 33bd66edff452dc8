// Package profile loads named scheduling profiles from a YAML file and
// resolves them into portable priority/policy pairs.
package profile

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	bosherr "github.com/cloudfoundry/schedutils/errors"
	"github.com/cloudfoundry/schedutils/threadpriority"
)

// Profile is one named scheduling configuration. Priority accepts "min",
// "max", "os:<native value>" or a bare cross-platform percentage. The
// three durations are only consulted for the deadline policy and use Go
// duration syntax ("1ms").
type Profile struct {
	Policy   string `yaml:"policy"`
	Priority string `yaml:"priority"`
	Runtime  string `yaml:"runtime"`
	Deadline string `yaml:"deadline"`
	Period   string `yaml:"period"`
}

type Profiles map[string]Profile

// Load reads a profiles file, e.g.:
//
//	background:
//	  policy: idle
//	  priority: min
//	audio:
//	  policy: deadline
//	  runtime: 1ms
//	  deadline: 10ms
//	  period: 100ms
func Load(path string) (Profiles, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, bosherr.WrapErrorf(err, "Reading profiles file '%s'", path)
	}
	return Parse(contents)
}

func Parse(contents []byte) (Profiles, error) {
	var profiles Profiles
	if err := yaml.Unmarshal(contents, &profiles); err != nil {
		return nil, bosherr.WrapError(err, "Parsing profiles")
	}
	return profiles, nil
}

// Lookup resolves the named profile in one step.
func (ps Profiles) Lookup(name string) (threadpriority.ThreadPriority, threadpriority.ThreadSchedulePolicy, error) {
	p, found := ps[name]
	if !found {
		return threadpriority.ThreadPriority{}, threadpriority.PolicyNormal, bosherr.Errorf("Profile '%s' not found", name)
	}
	priority, policy, err := p.Resolve()
	if err != nil {
		return threadpriority.ThreadPriority{}, threadpriority.PolicyNormal, bosherr.WrapErrorf(err, "Resolving profile '%s'", name)
	}
	return priority, policy, nil
}

// Resolve validates the profile and produces the priority and policy to
// apply. An empty policy means normal; an empty priority means min for the
// non-deadline policies.
func (p Profile) Resolve() (threadpriority.ThreadPriority, threadpriority.ThreadSchedulePolicy, error) {
	policy := threadpriority.PolicyNormal
	if p.Policy != "" {
		var err error
		policy, err = threadpriority.ParsePolicy(p.Policy)
		if err != nil {
			return threadpriority.ThreadPriority{}, policy, err
		}
	}

	if policy == threadpriority.PolicyDeadline {
		if p.Priority != "" {
			return threadpriority.ThreadPriority{}, policy, bosherr.Error("The deadline policy takes runtime/deadline/period, not a priority")
		}
		params, err := p.deadlineParams()
		if err != nil {
			return threadpriority.ThreadPriority{}, policy, err
		}
		priority, err := threadpriority.NewDeadlinePriority(params)
		if err != nil {
			return threadpriority.ThreadPriority{}, policy, err
		}
		return priority, policy, nil
	}

	priority, err := p.scalarPriority()
	if err != nil {
		return threadpriority.ThreadPriority{}, policy, err
	}
	return priority, policy, nil
}

func (p Profile) scalarPriority() (threadpriority.ThreadPriority, error) {
	spec := strings.TrimSpace(p.Priority)
	switch {
	case spec == "" || spec == "min":
		return threadpriority.MinPriority(), nil
	case spec == "max":
		return threadpriority.MaxPriority(), nil
	case strings.HasPrefix(spec, "os:"):
		v, err := strconv.Atoi(strings.TrimPrefix(spec, "os:"))
		if err != nil {
			return threadpriority.ThreadPriority{}, bosherr.WrapErrorf(err, "Parsing os priority '%s'", spec)
		}
		return threadpriority.OsPriority(v), nil
	default:
		v, err := strconv.Atoi(spec)
		if err != nil {
			return threadpriority.ThreadPriority{}, bosherr.Errorf("Unknown priority '%s', expected min, max, os:<value> or a value in [0; 99]", spec)
		}
		priority, err := threadpriority.NewCrossPlatformPriority(v)
		if err != nil {
			return threadpriority.ThreadPriority{}, err
		}
		return priority, nil
	}
}

func (p Profile) deadlineParams() (threadpriority.DeadlineParams, error) {
	runtime, err := parseDuration("runtime", p.Runtime)
	if err != nil {
		return threadpriority.DeadlineParams{}, err
	}
	deadline, err := parseDuration("deadline", p.Deadline)
	if err != nil {
		return threadpriority.DeadlineParams{}, err
	}
	period, err := parseDuration("period", p.Period)
	if err != nil {
		return threadpriority.DeadlineParams{}, err
	}
	return threadpriority.DeadlineParams{
		Runtime:  runtime,
		Deadline: deadline,
		Period:   period,
	}, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, bosherr.Errorf("The deadline policy requires '%s'", field)
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, bosherr.WrapErrorf(err, "Parsing %s '%s'", field, value)
	}
	return d, nil
}
