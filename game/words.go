package game

import "math/rand"

// WordPicker returns a uniformly random word from a vocabulary.
type WordPicker interface {
	Pick() string
}

// RandomWordsGenerator is satisfied by storage.PostgresRepo.
type RandomWordsGenerator interface {
	Generate(count int) []string
}

var defaultWords = []string{
	"alligator", "bicycle", "campfire", "dinosaur", "elephant",
	"flamingo", "guitar", "helicopter", "igloo", "jellyfish",
	"kangaroo", "lighthouse", "mermaid", "narwhal", "octopus",
	"penguin", "rainbow", "scarecrow", "telescope", "umbrella",
	"volcano", "waterfall", "xylophone", "yoyo", "zeppelin",
}

type Words struct {
	list []string
}

// NewWords loads a vocabulary of up to count words from gen, falling back to
// the built-in list when gen is nil or returns nothing.
func NewWords(gen RandomWordsGenerator, count int) *Words {
	if gen != nil {
		if list := gen.Generate(count); len(list) > 0 {
			return &Words{list: list}
		}
	}
	return &Words{list: defaultWords}
}

func (w *Words) Pick() string {
	return w.list[rand.Intn(len(w.list))]
}
