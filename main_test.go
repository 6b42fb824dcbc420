//go:build !lambda

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"sleep-optimizer/internal/gamedata"
)

func TestListNames(t *testing.T) {
	store := gamedata.Default()

	islands, err := listNames(store, "islands", "*")
	if err != nil {
		t.Fatalf("listNames: %v", err)
	}
	if len(islands) != len(store.AllIslands()) {
		t.Errorf("got %d islands, want %d", len(islands), len(store.AllIslands()))
	}

	pokemon, err := listNames(store, "pokemon", "pika*")
	if err != nil {
		t.Fatalf("listNames: %v", err)
	}
	if len(pokemon) == 0 {
		t.Fatal("pika* matched nothing")
	}
	for _, line := range pokemon {
		if !strings.HasPrefix(line, "PIKACHU") {
			t.Errorf("pika* matched %q", line)
		}
	}

	none, err := listNames(store, "recipes", "NO_SUCH_*")
	if err != nil {
		t.Fatalf("listNames: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("want an empty, non-nil list, got %#v", none)
	}

	if _, err := listNames(store, "berries", "*"); err == nil {
		t.Error("want error for unknown table")
	}
}

func TestRootCommandList(t *testing.T) {
	t.Cleanup(func() { jsonOut = false })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"list", "islands", "--json", "--config", filepath.Join(t.TempDir(), "none.yaml")})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !gjson.Valid(out.String()) {
		t.Fatalf("output is not JSON:\n%s", out.String())
	}
	if got := gjson.Get(out.String(), "#").Int(); got != int64(len(gamedata.Default().AllIslands())) {
		t.Errorf("listed %d islands", got)
	}
	if requestID == "" {
		t.Error("request id not set")
	}
}
