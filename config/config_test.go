package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func setenv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		old, had := os.LookupEnv(k)
		os.Setenv(k, v)
		k := k
		t.Cleanup(func() {
			if had {
				os.Setenv(k, old)
			} else {
				os.Unsetenv(k)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"EDL_FRAME_RATE", "AWS_REGION", "HTTP_ADDR", "HTTP_MAX_BODY_LEN",
		"LOG_LEVEL", "LOG_FORMAT", "REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD", "REDIS_TTL", "SENTRY_DSN", "ENV", "EDL_SOURCE_BUCKETS"} {
		if v, ok := os.LookupEnv(k); ok {
			os.Unsetenv(k)
			k := k
			t.Cleanup(func() { os.Setenv(k, v) })
		}
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Server:    Server{Addr: ":8080", MaxBodyLen: 1 << 20},
		Log:       Log{Level: "info", Format: "json"},
		Redis:     Redis{Addr: "127.0.0.1:6379"},
		Sentry:    Sentry{Env: "dev"},
		FrameRate: 29.97,
		AWSRegion: "us-east-1",
	}
	if !cmp.Equal(cfg, want) {
		t.Fatalf("LoadConfig():\n%s", cmp.Diff(want, cfg))
	}
}

func TestLoadConfigEnv(t *testing.T) {
	setenv(t, map[string]string{
		"EDL_FRAME_RATE":     "25",
		"HTTP_ADDR":          ":9000",
		"REDIS_ADDR":         "redis:6380",
		"REDIS_DB":           "2",
		"REDIS_TTL":          "48h",
		"SENTRY_DSN":         "https://key@sentry.example.com/1",
		"LOG_LEVEL":          "debug",
		"EDL_SOURCE_BUCKETS": "edls,archive",
	})
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FrameRate != 25 || cfg.Server.Addr != ":9000" {
		t.Errorf("bad server config: %+v", cfg)
	}
	if cfg.Redis != (Redis{Addr: "redis:6380", DB: 2, TTL: 48 * time.Hour}) {
		t.Errorf("bad redis config: %+v", cfg.Redis)
	}
	if cfg.Sentry.DSN != "https://key@sentry.example.com/1" || cfg.Log.Level != "debug" {
		t.Errorf("bad config: %+v", cfg)
	}
	if !cmp.Equal(cfg.SourceBuckets, []string{"edls", "archive"}) {
		t.Errorf("bad source buckets: %q", cfg.SourceBuckets)
	}
}

func TestLoadConfigBadValue(t *testing.T) {
	setenv(t, map[string]string{"EDL_FRAME_RATE": "fast"})
	if _, err := LoadConfig(); err == nil {
		t.Fatal("want error")
	}
}

func TestLogger(t *testing.T) {
	l, err := Log{Level: "warn", Format: "text"}.Logger()
	if err != nil {
		t.Fatal(err)
	}
	if l.Level != logrus.WarnLevel {
		t.Errorf("level: %v", l.Level)
	}
	if _, ok := l.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("formatter: %T", l.Formatter)
	}
	if _, err := (Log{Level: "loud"}).Logger(); err == nil {
		t.Error("bad level accepted")
	}
}
