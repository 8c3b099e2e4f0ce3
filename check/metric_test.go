package check

import (
	"testing"
	"time"
)

func assertStatus(t *testing.T, got Severity, gotOK bool, want Severity, wantOK bool) {
	t.Helper()
	if gotOK != wantOK {
		t.Fatalf("Evaluate() ok = %v, want %v (status %v)", gotOK, wantOK, got)
	}
	if wantOK && got != want {
		t.Errorf("Evaluate() = %v, want %v", got, want)
	}
}

func TestMetric_EvaluateGreater(t *testing.T) {
	tests := []struct {
		value  int
		want   Severity
		wantOK bool
	}{
		{15, SeverityOK, false},
		{19, SeverityOK, false},
		{20, SeverityWarning, true},
		{42, SeverityWarning, true},
		{49, SeverityWarning, true},
		{50, SeverityCritical, true},
		{60, SeverityCritical, true},
	}

	for _, tt := range tests {
		t.Run(FormatValue(tt.value), func(t *testing.T) {
			m := NewMetric("test", tt.value).WithThresholds(20, 50, TriggerIfGreater)
			got, ok := m.Evaluate()
			assertStatus(t, got, ok, tt.want, tt.wantOK)
		})
	}
}

func TestMetric_EvaluateLess(t *testing.T) {
	tests := []struct {
		value  int
		want   Severity
		wantOK bool
	}{
		{35, SeverityOK, false},
		{31, SeverityOK, false},
		{30, SeverityWarning, true},
		{20, SeverityWarning, true},
		{15, SeverityCritical, true},
		{10, SeverityCritical, true},
	}

	for _, tt := range tests {
		t.Run(FormatValue(tt.value), func(t *testing.T) {
			m := NewMetric("test", tt.value).WithThresholds(30, 15, TriggerIfLess)
			got, ok := m.Evaluate()
			assertStatus(t, got, ok, tt.want, tt.wantOK)
		})
	}
}

func TestMetric_EvaluateSingleBound(t *testing.T) {
	onlyCritical := NewMetric("test", 52).WithCritical(50)
	got, ok := onlyCritical.Evaluate()
	assertStatus(t, got, ok, SeverityCritical, true)

	belowCritical := NewMetric("test", 15).WithCritical(50)
	got, ok = belowCritical.Evaluate()
	assertStatus(t, got, ok, SeverityOK, false)

	onlyWarning := NewMetric("test", 99).WithWarning(50)
	got, ok = onlyWarning.Evaluate()
	assertStatus(t, got, ok, SeverityWarning, true)

	lessWarning := NewMetric("free", 5.0).WithWarning(10.0).WithTrigger(TriggerIfLess)
	got, ok = lessWarning.Evaluate()
	assertStatus(t, got, ok, SeverityWarning, true)
}

func TestMetric_NoThresholdsHasNoOpinion(t *testing.T) {
	m := NewMetric("test", 1_000_000)
	got, ok := m.Evaluate()
	assertStatus(t, got, ok, SeverityOK, false)

	if _, ok := m.Message(); ok {
		t.Error("metric without thresholds should have no message")
	}
	if _, ok := m.Thresholds(); ok {
		t.Error("Thresholds() should report none configured")
	}
}

func TestMetric_FixedStatusWins(t *testing.T) {
	m := NewMetric("test", 100).
		WithThresholds(20, 50, TriggerIfGreater).
		WithFixedStatus(SeverityOK)

	got, ok := m.Evaluate()
	assertStatus(t, got, ok, SeverityOK, true)

	if _, ok := m.Message(); ok {
		t.Error("fixed status should not produce a breach message")
	}

	unknown := NewMetric("test", 1).WithFixedStatus(SeverityUnknown)
	got, ok = unknown.Evaluate()
	assertStatus(t, got, ok, SeverityUnknown, true)
}

func TestMetric_Message(t *testing.T) {
	tests := []struct {
		name   string
		metric Metric[int]
		want   string
	}{
		{
			name:   "critical reports critical bound",
			metric: NewMetric("alerting", 52).WithThresholds(40, 50, TriggerIfGreater),
			want:   "metric 'alerting' is CRITICAL: value '52' has exceeded threshold of '50'",
		},
		{
			name:   "warning reports warning bound",
			metric: NewMetric("alerting", 42).WithThresholds(40, 50, TriggerIfGreater),
			want:   "metric 'alerting' is WARNING: value '42' has exceeded threshold of '40'",
		},
		{
			name:   "less direction",
			metric: NewMetric("free", 10).WithThresholds(30, 15, TriggerIfLess),
			want:   "metric 'free' is CRITICAL: value '10' has exceeded threshold of '15'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.metric.Message()
			if !ok {
				t.Fatal("expected a message")
			}
			if got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, ok := NewMetric("quiet", 1).WithThresholds(40, 50, TriggerIfGreater).Message(); ok {
		t.Error("unbreached metric should have no message")
	}
}

func TestMetric_FloatMessageUsesPerfFormatting(t *testing.T) {
	m := NewMetric("load", 5.25).WithCritical(5.0)
	got, _ := m.Message()
	want := "metric 'load' is CRITICAL: value '5.25' has exceeded threshold of '5'"
	if got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestMetric_BoolMetric(t *testing.T) {
	down := NewBoolMetric("up", false).WithCritical(false).WithTrigger(TriggerIfLess)
	got, ok := down.Evaluate()
	assertStatus(t, got, ok, SeverityCritical, true)

	up := NewBoolMetric("up", true).WithCritical(false).WithTrigger(TriggerIfLess)
	got, ok = up.Evaluate()
	assertStatus(t, got, ok, SeverityOK, false)

	if up.PerfString().String() != "'up'=true;;false;;" {
		t.Errorf("PerfString() = %q", up.PerfString().String())
	}
}

func TestMetric_CustomCompare(t *testing.T) {
	byLength := func(a, b string) int { return len(a) - len(b) }
	m := NewMetricFunc("queue", "xxxxx", byLength).WithThresholds("xxx", "xxxxxx", TriggerIfGreater)
	got, ok := m.Evaluate()
	assertStatus(t, got, ok, SeverityWarning, true)
}

func TestMetric_DurationValue(t *testing.T) {
	m := NewMetric("latency", 1500*time.Millisecond).WithCritical(time.Second)
	got, ok := m.Evaluate()
	assertStatus(t, got, ok, SeverityCritical, true)
}

func TestMetric_WithIsCopyOnWrite(t *testing.T) {
	base := NewMetric("test", 10).WithWarning(5)
	derived := base.WithCritical(8).WithTrigger(TriggerIfLess)

	th, _ := base.Thresholds()
	if th.Critical != nil {
		t.Error("deriving a metric must not change the original's critical bound")
	}
	if th.Trigger != TriggerIfGreater {
		t.Errorf("original trigger = %v, want greater", th.Trigger)
	}

	dth, _ := derived.Thresholds()
	if dth.Warning == nil || *dth.Warning != 5 {
		t.Error("derived metric should keep the warning bound")
	}
	if dth.Critical == nil || *dth.Critical != 8 {
		t.Error("derived metric should have the critical bound")
	}
}

func TestMetric_Accessors(t *testing.T) {
	m := NewMetric("test", 15).WithUnit(UnitMegabytes)
	if m.Name() != "test" {
		t.Errorf("Name() = %q", m.Name())
	}
	if m.Value() != 15 {
		t.Errorf("Value() = %v", m.Value())
	}
	if m.Unit() != UnitMegabytes {
		t.Errorf("Unit() = %v", m.Unit())
	}
}

func TestMetric_PerfString(t *testing.T) {
	m := NewMetric("foo", 12).WithWarning(42).WithMax(60)
	if got := m.PerfString().String(); got != "'foo'=12;42;;;60" {
		t.Errorf("PerfString() = %q", got)
	}

	m2 := NewMetric("test", 15).
		WithThresholds(20, 50, TriggerIfGreater).
		WithUnit(UnitMegabytes).
		WithMin(0)
	if got := m2.PerfString().String(); got != "'test'=15MB;20;50;0;" {
		t.Errorf("PerfString() = %q", got)
	}
}

func TestMetric_CheckResult(t *testing.T) {
	quiet := NewMetric("test", 15).WithThresholds(20, 50, TriggerIfGreater).CheckResult()
	if _, ok := quiet.Status(); ok {
		t.Error("unbreached metric should carry no status")
	}
	if _, ok := quiet.Message(); ok {
		t.Error("unbreached metric should carry no message")
	}
	if p, ok := quiet.PerfString(); !ok || p.String() != "'test'=15;20;50;;" {
		t.Errorf("PerfString() = %q, %v", p.String(), ok)
	}

	loud := NewMetric("test", 60).WithThresholds(20, 50, TriggerIfGreater).CheckResult()
	if s, ok := loud.Status(); !ok || s != SeverityCritical {
		t.Errorf("Status() = %v, %v; want CRITICAL", s, ok)
	}
	if _, ok := loud.Message(); !ok {
		t.Error("breached metric should carry a message")
	}
}
