package passgen

import (
	"fmt"
	"math/rand/v2"
)

// Словари намеренно маленькие: генератор дает удобную подсказку вида
// "peach-river-42", а не секрет криптографического качества. Пользователь
// может заменить значение перед сохранением.
var (
	adjectives = []string{"peach", "sunny", "bright", "calm"}
	nouns      = []string{"glow", "river", "cloud", "leaf"}
)

// Suggest возвращает парольную фразу вида {adjective}-{noun}-{NN},
// где NN - двузначное число.
func Suggest() string {
	return fmt.Sprintf("%s-%s-%d", sample(adjectives), sample(nouns), 10+rand.IntN(90))
}

func sample(words []string) string {
	return words[rand.IntN(len(words))]
}
