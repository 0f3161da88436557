package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func requireErrEq(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Fatalf("error=%q want %q", err.Error(), want)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTempConfig(t, "verbose: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GPS.Device != DefaultDevice || cfg.GPS.Baud != DefaultBaud {
		t.Fatalf("gps=%+v want defaults", cfg.GPS)
	}
	if !cfg.Verbose {
		t.Fatalf("verbose=false want true")
	}
	if cfg.Clock.Timezone != "utc" || cfg.Location() != time.UTC {
		t.Fatalf("timezone=%q", cfg.Clock.Timezone)
	}
}

func TestLoad_AllFields(t *testing.T) {
	path := writeTempConfig(t, "gps:\n  device: /dev/ttyUSB0\n  baud: 4800\nclock:\n  timezone: Local\n  dry_run: true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GPS.Device != "/dev/ttyUSB0" || cfg.GPS.Baud != 4800 {
		t.Fatalf("gps=%+v", cfg.GPS)
	}
	if !cfg.Clock.DryRun || cfg.Clock.Timezone != "local" || cfg.Location() != time.Local {
		t.Fatalf("clock=%+v", cfg.Clock)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "BadBaud",
			body: "gps:\n  baud: 1234\n",
			want: "gps.baud 1234 is not a supported rate",
		},
		{
			name: "BlankDevice",
			body: "gps:\n  device: '  '\n",
			want: "gps.device is required",
		},
		{
			name: "RecordRequiresPath",
			body: "record:\n  enable: true\n",
			want: "record.path is required when record.enable is true",
		},
		{
			name: "ReplayRequiresPath",
			body: "replay:\n  enable: true\n",
			want: "replay.path is required when replay.enable is true",
		},
		{
			name: "ReplayNegativeSpeed",
			body: "replay:\n  enable: true\n  path: ./x.capture\n  speed: -2\n",
			want: "replay.speed must be >= 0",
		},
		{
			name: "RecordAndReplay",
			body: "record:\n  enable: true\n  path: ./a\nreplay:\n  enable: true\n  path: ./b\n",
			want: "record and replay cannot both be enabled",
		},
		{
			name: "BadTimezone",
			body: "clock:\n  timezone: Europe/Dublin\n",
			want: "clock.timezone must be 'utc' or 'local'",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempConfig(t, tc.body)
			_, err := Load(path)
			requireErrEq(t, err, tc.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeTempConfig(t, "gps: [\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidate_EveryStandardRate(t *testing.T) {
	for _, b := range []int{50, 75, 110, 134, 150, 200, 300, 600, 1200, 1800, 2400, 4800, 9600, 19200, 38400, 57600, 115200, 230400} {
		cfg := Default()
		cfg.GPS.Baud = b
		if err := cfg.Validate(); err != nil {
			t.Fatalf("baud %d: %v", b, err)
		}
	}
}

func TestLoad_ReplaySpeedDefault(t *testing.T) {
	path := writeTempConfig(t, "replay:\n  enable: true\n  path: ./x.capture\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Replay.Speed != 1 {
		t.Fatalf("speed=%v want 1", cfg.Replay.Speed)
	}
}

func TestLoad_ReplaySpeedZeroMeansNoWait(t *testing.T) {
	path := writeTempConfig(t, "replay:\n  enable: true\n  path: ./x.capture\n  speed: 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Replay.Speed != 0 {
		t.Fatalf("speed=%v want 0", cfg.Replay.Speed)
	}
}
