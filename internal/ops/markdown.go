package ops

import (
	"bufio"
	"io"
	"strings"
)

const (
	frontPrefix = "Q:"
	backPrefix  = "A:"
)

type mdState int

const (
	mdSeeking mdState = iota
	mdReadingFront
	mdReadingBack
)

// ParseMarkdownCards reads Q:/A: card blocks separated by "---" lines.
// Content lines between prefixes belong to the current block, so both
// faces can span multiple lines. Blocks without a question are dropped.
func ParseMarkdownCards(r io.Reader) ([]CardInput, error) {
	scanner := bufio.NewScanner(r)
	var cards []CardInput
	var current CardInput
	var block []string
	state := mdSeeking

	flushBlock := func() {
		if len(block) == 0 {
			return
		}
		content := strings.Join(block, "\n")
		switch state {
		case mdReadingFront:
			current.Front = content
		case mdReadingBack:
			current.Back = content
		}
		block = nil
	}

	finishCard := func() {
		flushBlock()
		if strings.TrimSpace(current.Front) != "" {
			cards = append(cards, current)
		}
		current = CardInput{}
		state = mdSeeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == "---" {
			finishCard()
			continue
		}

		isFront := strings.HasPrefix(line, frontPrefix)
		isBack := strings.HasPrefix(line, backPrefix)

		if isFront || isBack {
			flushBlock()

			if isFront {
				// A new question always starts a new card.
				if state != mdSeeking {
					finishCard()
				}
				state = mdReadingFront
				block = append(block, strings.TrimPrefix(line[len(frontPrefix):], " "))
			} else {
				state = mdReadingBack
				block = append(block, strings.TrimPrefix(line[len(backPrefix):], " "))
			}
		} else if state != mdSeeking {
			block = append(block, line)
		}
	}

	finishCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}
