// Package codes отвечает за формат коротких кодов ссылок: проверку пользовательских кодов
// и генерацию случайных.
package codes

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

// MinLength и MaxLength границы длины кода.
const (
	MinLength = 6
	MaxLength = 8
)

// Alphabet алфавит генерируемых кодов (base36 в нижнем регистре).
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var codeRegex = regexp.MustCompile(`^[A-Za-z0-9]{6,8}$`)

// Validate проверяет что candidate является допустимым кодом. Никакой нормализации
// (обрезки пробелов, смены регистра) не производится.
func Validate(candidate string) bool {
	return codeRegex.MatchString(candidate)
}

// Generate генерирует случайный код. Длина выбирается равномерно из [MinLength, MaxLength],
// каждый символ равномерно из Alphabet.
//
// Уникальность не гарантируется, коллизии разрешает вызывающая сторона.
func Generate() (string, error) {
	n, err := randInt(MaxLength - MinLength + 1)
	if err != nil {
		return "", fmt.Errorf("generate code length: %w", err)
	}

	b := make([]byte, MinLength+n)
	for i := range b {
		idx, idxErr := randInt(len(Alphabet))
		if idxErr != nil {
			return "", fmt.Errorf("generate code char: %w", idxErr)
		}
		b[i] = Alphabet[idx]
	}
	return string(b), nil
}

func randInt(upper int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(upper)))
	if err != nil {
		return 0, err //nolint:wrapcheck
	}
	return int(v.Int64()), nil
}
