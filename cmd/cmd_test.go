package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/farguessr/internal/daily"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SIGNING_SECRET", "cli-test-secret")
	t.Setenv("ENV", "development")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestPairCommand(t *testing.T) {
	out, err := run(t, "pair", "2024-01-01", "--json")
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	var got struct {
		Seed string `json:"seed"`
		Pair struct {
			DistanceKm int    `json:"distanceKm"`
			Direction  string `json:"direction"`
		} `json:"pair"`
		Offered []string `json:"offered"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if got.Seed != "2024-01-01" || got.Pair.DistanceKm <= 0 || len(got.Offered) != 4 {
		t.Errorf("pair output = %+v", got)
	}

	again, err := run(t, "pair", "2024-01-01", "--json")
	if err != nil || again != out {
		t.Errorf("pair is not deterministic: %v", err)
	}
}

func TestPairCommandDefaultsToToday(t *testing.T) {
	today, err := run(t, "pair", "--json")
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	explicit, err := run(t, "pair", daily.DateKey(time.Now()), "--json")
	if err != nil {
		t.Fatalf("pair with date: %v", err)
	}
	if today != explicit {
		t.Errorf("default pair differs from today's:\n%s\n%s", today, explicit)
	}
}

func TestSignVerifyCommands(t *testing.T) {
	signed, err := run(t, "sign", "https://farguessr.example/share?status=GUESSED&rk=abc&dir=N&dist=10")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	signed = strings.TrimSpace(signed)
	if !strings.Contains(signed, "&sig=") {
		t.Fatalf("signed = %q", signed)
	}

	clean, err := run(t, "verify", signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got := strings.TrimSpace(clean); got != "https://farguessr.example/share?dir=N&dist=10&rk=abc&status=GUESSED" {
		t.Errorf("verify = %q", got)
	}

	if _, err := run(t, "verify", signed+"0"); err == nil {
		t.Errorf("tampered url verified")
	}
}
