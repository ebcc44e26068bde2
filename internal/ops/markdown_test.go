package ops

import (
	"strings"
	"testing"
)

func TestParseMarkdownCards_Basic(t *testing.T) {
	input := "Q: What is Go?\nA: A programming language.\n---\nQ: Capital of Brazil?\nA: Brasília\n"

	cards, err := ParseMarkdownCards(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[0].Front != "What is Go?" || cards[0].Back != "A programming language." {
		t.Errorf("card 0 = %+v", cards[0])
	}
	if cards[1].Front != "Capital of Brazil?" || cards[1].Back != "Brasília" {
		t.Errorf("card 1 = %+v", cards[1])
	}
}

func TestParseMarkdownCards_MultiLineFaces(t *testing.T) {
	input := strings.Join([]string{
		"Q: First line of question",
		"second line of question",
		"A: First line of answer",
		"second line of answer",
	}, "\n")

	cards, err := ParseMarkdownCards(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Front != "First line of question\nsecond line of question" {
		t.Errorf("Front = %q", cards[0].Front)
	}
	if cards[0].Back != "First line of answer\nsecond line of answer" {
		t.Errorf("Back = %q", cards[0].Back)
	}
}

func TestParseMarkdownCards_NewQuestionStartsNewCard(t *testing.T) {
	// No separator between the cards; the second Q: closes the first.
	input := "Q: one\nA: 1\nQ: two\nA: 2\n"

	cards, err := ParseMarkdownCards(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if cards[1].Front != "two" || cards[1].Back != "2" {
		t.Errorf("card 1 = %+v", cards[1])
	}
}

func TestParseMarkdownCards_DropsAnswerOnlyBlock(t *testing.T) {
	input := "A: orphan answer\n---\nQ: kept\nA: yes\n"

	cards, err := ParseMarkdownCards(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "kept" {
		t.Errorf("cards = %+v, want only the Q: block", cards)
	}
}

func TestParseMarkdownCards_DanglingBlockWithoutSeparator(t *testing.T) {
	input := "Q: question\nA: answer" // no trailing newline or separator

	cards, err := ParseMarkdownCards(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(cards) != 1 || cards[0].Back != "answer" {
		t.Errorf("cards = %+v, want the dangling block kept", cards)
	}
}

func TestParseMarkdownCards_MissingAnswerKept(t *testing.T) {
	input := "Q: lonely question\n---\n"

	cards, err := ParseMarkdownCards(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "lonely question" || cards[0].Back != "" {
		t.Errorf("cards = %+v, want question with empty back", cards)
	}
}

func TestParseMarkdownCards_Empty(t *testing.T) {
	cards, err := ParseMarkdownCards(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("got %d cards, want 0", len(cards))
	}
}

func TestParseMarkdownCards_ProseOutsideBlocksIgnored(t *testing.T) {
	input := "# My deck notes\n\nsome intro text\n\nQ: real card\nA: real answer\n"

	cards, err := ParseMarkdownCards(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "real card" {
		t.Errorf("cards = %+v, want prose ignored", cards)
	}
}
