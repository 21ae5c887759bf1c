// lorem.go: Sample text for the demo producers
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"
)

var words = []string{
	"bacon", "ipsum", "dolor", "amet", "bresaola", "tempor", "strip", "leberkas",
	"excepteur", "irure", "hamburger", "alcatra", "veniam", "turkey", "est",
	"exercitation", "in", "sirloin", "chunk", "tri-tip", "salami", "steak", "anim",
	"chislic", "commodo", "sint", "pastrami", "lorem", "chuck", "sunt", "pork", "qui",
	"chicken", "minim", "voluptate", "ribeye", "laborum", "andouille", "elit",
	"spare ribs", "cow", "id", "ea", "meatloaf", "boudin", "capicola", "adipiscing",
	"tail", "belly", "culpa", "shoulder", "drumstick", "buffalo", "porchetta", "esse",
	"beef ribs", "ham hock", "ham", "consectetur", "occaecat", "fatback", "quis",
	"fugiat", "biltong", "t-bone", "kielbasa", "flank", "ut", "proident", "non",
	"turducken", "enim", "meatball", "nostrud", "officia", "short ribs", "nulla",
	"incididunt", "velit", "do", "ex", "dolore", "mollit", "reprehenderit",
	"landjaeger", "frankfurter", "ground", "round", "swine", "pariatur", "aute",
	"consequat", "venison", "pig", "tongue", "brisket", "picanha", "ball", "tip",
	"corned beef",
}

// loremIpsum returns between minSentences and maxSentences sentences of
// minWords to maxWords words each.
func loremIpsum(minWords, maxWords, minSentences, maxSentences int) string {
	sentences := minSentences + rand.IntN(maxSentences-minSentences)
	count := minWords + rand.IntN(maxWords-minWords)

	var b strings.Builder
	for s := 0; s < sentences; s++ {
		for w := 0; w < count; w++ {
			word := words[rand.IntN(len(words))]
			if w == 0 {
				word = titleCase(word)
			} else {
				b.WriteByte(' ')
			}
			b.WriteString(word)
		}
		if sentences > 1 {
			b.WriteString(". ")
		}
	}
	return strings.TrimSpace(b.String())
}

func titleCase(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + word[size:]
}
