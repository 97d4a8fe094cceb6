package rules

import (
	"errors"
	"testing"

	"Doudizhu/internal/game/card"
)

func mustClassify(t *testing.T, cards []card.Card) Combination {
	t.Helper()
	combo, err := Classify(cards)
	if err != nil {
		t.Fatalf("classify failed for %v: %v", cards, err)
	}
	return combo
}

func TestCanBeat(t *testing.T) {
	tests := []struct {
		name      string
		candidate []card.Card
		reference []card.Card
		wantErr   error // nil = 压得过
	}{
		{"Higher single beats lower", cs(card.Rank9), cs(card.Rank5), nil},
		{"Equal single does not beat", cs(card.Rank9), cs(card.Rank9), ErrDoesNotBeat},
		{"Lower single does not beat", cs(card.Rank4), cs(card.Rank9), ErrDoesNotBeat},
		{"2 beats A", cs(card.Rank2), cs(card.RankA), nil},
		{"Big joker beats 2", cs(card.BigJoker), cs(card.Rank2), nil},

		{"Higher pair beats lower", cs(card.RankQ, card.RankQ), cs(card.Rank6, card.Rank6), nil},
		{"Single vs pair is invalid, not just weaker",
			cs(card.Rank2), cs(card.Rank5, card.Rank5), ErrInvalidCombination},
		{"Straight length mismatch is invalid",
			cs(card.Rank3, card.Rank4, card.Rank5, card.Rank6, card.Rank7, card.Rank8),
			cs(card.Rank4, card.Rank5, card.Rank6, card.Rank7, card.Rank8), ErrInvalidCombination},
		{"Higher straight same length beats",
			cs(card.Rank4, card.Rank5, card.Rank6, card.Rank7, card.Rank8),
			cs(card.Rank3, card.Rank4, card.Rank5, card.Rank6, card.Rank7), nil},

		{"Bomb beats straight regardless of rank",
			cs(card.Rank3, card.Rank3, card.Rank3, card.Rank3),
			cs(card.Rank10, card.RankJ, card.RankQ, card.RankK, card.RankA), nil},
		{"Bomb beats pair", cs(card.Rank5, card.Rank5, card.Rank5, card.Rank5), cs(card.Rank2, card.Rank2), nil},
		{"Higher bomb beats lower bomb",
			cs(card.Rank8, card.Rank8, card.Rank8, card.Rank8),
			cs(card.Rank5, card.Rank5, card.Rank5, card.Rank5), nil},
		{"Lower bomb does not beat higher bomb",
			cs(card.Rank5, card.Rank5, card.Rank5, card.Rank5),
			cs(card.Rank8, card.Rank8, card.Rank8, card.Rank8), ErrDoesNotBeat},
		{"Non-bomb cannot answer bomb",
			cs(card.Rank2, card.Rank2), cs(card.Rank5, card.Rank5, card.Rank5, card.Rank5), ErrInvalidCombination},

		{"Rocket beats bomb",
			cs(card.SmallJoker, card.BigJoker),
			cs(card.RankA, card.RankA, card.RankA, card.RankA), nil},
		{"Bomb does not beat rocket",
			cs(card.RankA, card.RankA, card.RankA, card.RankA),
			cs(card.SmallJoker, card.BigJoker), ErrDoesNotBeat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := mustClassify(t, tt.candidate)
			ref := mustClassify(t, tt.reference)
			err := CanBeat(cand, ref)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CanBeat = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// beats(X, X) 恒为假
func TestNoSelfBeat(t *testing.T) {
	hands := [][]card.Card{
		cs(card.Rank7),
		cs(card.RankK, card.RankK),
		cs(card.Rank9, card.Rank9, card.Rank9, card.Rank9),
		cs(card.Rank3, card.Rank4, card.Rank5, card.Rank6, card.Rank7),
	}
	for _, h := range hands {
		combo := mustClassify(t, h)
		if err := CanBeat(combo, combo); err == nil {
			t.Fatalf("combination %v should not beat itself", combo)
		}
	}
}
