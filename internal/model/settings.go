package model

// Default pomodoro settings.
const (
	DefaultWorkInterval  = 25
	DefaultBreakInterval = 5
	DefaultIntervalCount = 4
)

// PomodoroSettings configures the pomodoro timer. Intervals are minutes.
type PomodoroSettings struct {
	WorkInterval  int `json:"workInterval"`
	BreakInterval int `json:"breakInterval"`
	IntervalCount int `json:"intervalCount"`
}

// DefaultPomodoroSettings returns the built-in settings.
func DefaultPomodoroSettings() PomodoroSettings {
	return PomodoroSettings{
		WorkInterval:  DefaultWorkInterval,
		BreakInterval: DefaultBreakInterval,
		IntervalCount: DefaultIntervalCount,
	}
}

// LongBreakInterval is twice the short break.
func (s PomodoroSettings) LongBreakInterval() int {
	return s.BreakInterval * 2
}

// SettingsPatch is a partial settings update.
type SettingsPatch struct {
	WorkInterval  *int `json:"workInterval,omitempty"`
	BreakInterval *int `json:"breakInterval,omitempty"`
	IntervalCount *int `json:"intervalCount,omitempty"`
}

// Apply merges the patch onto s.
func (p SettingsPatch) Apply(s *PomodoroSettings) {
	if p.WorkInterval != nil {
		s.WorkInterval = *p.WorkInterval
	}
	if p.BreakInterval != nil {
		s.BreakInterval = *p.BreakInterval
	}
	if p.IntervalCount != nil {
		s.IntervalCount = *p.IntervalCount
	}
}
