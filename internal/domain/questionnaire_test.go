package domain

import "testing"

func TestDISCQuestionnaireShape(t *testing.T) {
	q := DISCQuestionnaire()
	if len(q.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(q.Questions))
	}
	seen := map[string]bool{}
	for _, question := range q.Questions {
		if len(question.Options) != 4 {
			t.Fatalf("question %s: expected 4 options, got %d", question.ID, len(question.Options))
		}
		letters := map[Letter]bool{}
		for _, opt := range question.Options {
			if seen[opt.ID] {
				t.Fatalf("duplicate option id %s", opt.ID)
			}
			seen[opt.ID] = true
			if _, ok := CategoryOf(opt.Letter); !ok {
				t.Fatalf("option %s has unmapped letter %q", opt.ID, opt.Letter)
			}
			letters[opt.Letter] = true
		}
		if len(letters) != 4 {
			t.Fatalf("question %s does not cover all four letters", question.ID)
		}
	}
}

func TestDistributionEntriesOrder(t *testing.T) {
	d := Distribution{Dominance: 40, Influence: 20, Steadiness: 20, Conscientiousness: 20}
	entries := d.Entries()
	for i, c := range Categories {
		if entries[i].Category != c {
			t.Fatalf("entry %d: expected %s, got %s", i, c, entries[i].Category)
		}
	}
	if entries[0].Percent != 40 {
		t.Fatalf("expected dominance 40, got %v", entries[0].Percent)
	}
	if d.Total() != 100 {
		t.Fatalf("expected total 100, got %v", d.Total())
	}
}
