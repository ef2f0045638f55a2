package catalog

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/pattern-island/internal/distractor"
	"github.com/vovakirdan/pattern-island/internal/pattern"
	"github.com/vovakirdan/pattern-island/internal/sequence"
)

func build(t *testing.T, seed int64) *Catalog {
	t.Helper()
	c, err := Build(rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return c
}

func TestBuildShape(t *testing.T) {
	c := build(t, 1)
	if c.Len() != 110 {
		t.Fatalf("Len() = %d, want 110", c.Len())
	}

	perCategory := map[pattern.Category]int{}
	for i, l := range c.Levels() {
		if l.ID != i+1 {
			t.Errorf("level at %d has id %d", i, l.ID)
		}
		perCategory[l.Category]++

		wantCat := pattern.Categories()[i/pattern.LevelsPerCategory]
		if l.Category != wantCat {
			t.Errorf("level %d category = %s, want %s", l.ID, l.Category, wantCat)
		}
		if l.LevelInGroup != i%pattern.LevelsPerCategory+1 {
			t.Errorf("level %d levelInGroup = %d", l.ID, l.LevelInGroup)
		}
		if l.Tier != pattern.TierFor(l.LevelInGroup) {
			t.Errorf("level %d tier = %v", l.ID, l.Tier)
		}
		wantBoss := l.LevelInGroup == 5 || l.LevelInGroup == 10
		if l.IsBoss != wantBoss {
			t.Errorf("level %d isBoss = %v", l.ID, l.IsBoss)
		}
		if l.IsBoss != strings.HasPrefix(l.Instruction, BossPrefix) {
			t.Errorf("level %d boss prefix mismatch: %q", l.ID, l.Instruction)
		}
	}
	for _, cat := range pattern.Categories() {
		if perCategory[cat] != 10 {
			t.Errorf("%s has %d levels, want 10", cat, perCategory[cat])
		}
	}
}

func TestOptionsInvariant(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		c := build(t, seed)
		for _, l := range c.Levels() {
			if len(l.Options) != pattern.OptionCount {
				t.Fatalf("seed %d level %d: %d options", seed, l.ID, len(l.Options))
			}
			keys := map[string]bool{}
			correct := 0
			for _, o := range l.Options {
				if keys[o.VisualKey()] {
					t.Errorf("seed %d level %d: duplicate option look %s", seed, l.ID, o.VisualKey())
				}
				keys[o.VisualKey()] = true
				if o.ID == l.CorrectAnswerID {
					correct++
				}
			}
			if correct != 1 {
				t.Errorf("seed %d level %d: %d options carry the correct id", seed, l.ID, correct)
			}
		}
	}
}

func TestCorrectOptionContinuesSequence(t *testing.T) {
	c := build(t, 3)
	l, ok := c.Level(1) // COLOR level 1: ABAB -> A
	if !ok {
		t.Fatal("level 1 missing")
	}
	if !pattern.Equivalent(l.CorrectOption(), l.Sequence[0]) {
		t.Errorf("correct option %s does not match slot A %s", l.CorrectOption().VisualKey(), l.Sequence[0].VisualKey())
	}
}

func TestStructureIsSeedIndependent(t *testing.T) {
	a := build(t, 100).Levels()
	b := build(t, 200).Levels()
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Category != b[i].Category || a[i].Tier != b[i].Tier || a[i].IsBoss != b[i].IsBoss {
			t.Fatalf("level %d structure differs between seeds", a[i].ID)
		}
	}
}

func TestSameSeedSameCatalog(t *testing.T) {
	a := build(t, 77).Levels()
	b := build(t, 77).Levels()
	for i := range a {
		for j := range a[i].Options {
			if a[i].Options[j].VisualKey() != b[i].Options[j].VisualKey() || a[i].Options[j].ID != b[i].Options[j].ID {
				t.Fatalf("level %d option %d differs under the same seed", a[i].ID, j)
			}
		}
	}
}

func TestQueries(t *testing.T) {
	c := build(t, 5)
	if _, ok := c.Level(0); ok {
		t.Error("Level(0) should not exist")
	}
	if _, ok := c.Level(111); ok {
		t.Error("Level(111) should not exist")
	}
	if c.Next(1) != 2 || c.Next(110) != 0 {
		t.Errorf("Next(1)=%d Next(110)=%d", c.Next(1), c.Next(110))
	}
	mirror := c.ByCategory(pattern.CategoryMirror)
	if len(mirror) != 10 || mirror[0].ID != 101 {
		t.Errorf("ByCategory(MIRROR) = %d levels starting at %d", len(mirror), mirror[0].ID)
	}
	if ids := c.IDs(); len(ids) != 110 || ids[109] != 110 {
		t.Errorf("IDs() malformed")
	}

	l, _ := c.Level(5)
	l.Options[0].ID = "tampered"
	again, _ := c.Level(5)
	if again.Options[0].ID == "tampered" {
		t.Error("Level returned an aliased slice")
	}
}

func TestBuildFailsWhenDistractorsRunOut(t *testing.T) {
	one := func(k *sequence.Kit, idx int) pattern.Item {
		return pattern.Item{Shape: pattern.ShapeCircle, Color: pattern.ColorRed}
	}
	rule := func(k *sequence.Kit) sequence.Puzzle {
		a := k.Slot(0)
		return sequence.Puzzle{Sequence: []pattern.Item{a, a}, Answer: a, Instruction: "Same again."}
	}
	flat := sequence.Family{
		Category: pattern.CategoryColor,
		Base:     one,
		Rules: map[pattern.Tier]sequence.Rule{
			pattern.TierBeginner:     rule,
			pattern.TierIntermediate: rule,
			pattern.TierAdvanced:     rule,
		},
	}

	c, err := buildFrom(rand.New(rand.NewSource(1)), []sequence.Family{flat})
	if c != nil {
		t.Fatal("buildFrom returned a catalog despite the error")
	}
	if !errors.Is(err, distractor.ErrInsufficientCandidates) {
		t.Fatalf("buildFrom error = %v, want ErrInsufficientCandidates", err)
	}
	if !strings.Contains(err.Error(), "level 1 (COLOR 1)") {
		t.Errorf("error %q does not name the level", err)
	}
}

func TestOptionIDsAreOpaque(t *testing.T) {
	c := build(t, 9)
	seen := map[string]bool{}
	for _, l := range c.Levels() {
		for _, o := range l.Options {
			if o.ID == pattern.CorrectOptionID || strings.Contains(o.ID, "wrong") {
				t.Fatalf("level %d: option id %q reveals its role", l.ID, o.ID)
			}
		}
		if _, ok := l.Option(l.CorrectAnswerID); !ok {
			t.Fatalf("level %d: correct id %q not among options", l.ID, l.CorrectAnswerID)
		}
		seen[l.CorrectAnswerID] = true
	}
	if len(seen) != c.Len() {
		t.Errorf("%d distinct correct ids across %d levels", len(seen), c.Len())
	}
}
