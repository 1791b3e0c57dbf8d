// Package thread реализует ключи сортировки древовидных комментариев.
//
// Ключ — цепочка сегментов через точку: "01", "01.00", "01.00.03".
// Сегмент (vancode) — число в base36 с префиксом длины, поэтому
// лексикографический порядок ключей совпадает с порядком вывода дерева:
// родитель идёт перед детьми ('.' < '0'), ветки — по возрастанию номера.
package thread

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Separator разделяет сегменты ключа.
const Separator = "."

// descSuffix замыкает ключ для обратного порядка: '.' < '/' < '0',
// поэтому при сортировке по убыванию родитель остаётся перед своими ответами.
const descSuffix = "/"

// ErrInvalidKey — ключ или сегмент не разбирается.
var ErrInvalidKey = errors.New("invalid thread key")

// Encode кодирует неотрицательное число в сегмент.
func Encode(n int64) string {
	if n < 0 {
		n = 0
	}

	digits := strconv.FormatInt(n, 36)

	return string(rune('0'+len(digits)-1)) + digits
}

// Decode разбирает сегмент обратно в число.
func Decode(code string) (int64, error) {
	if len(code) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, code)
	}

	if int(code[0]-'0') != len(code)-2 {
		return 0, fmt.Errorf("%w: length prefix of %q", ErrInvalidKey, code)
	}

	n, err := strconv.ParseInt(code[1:], 36, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, code)
	}

	return n, nil
}

// NextRoot возвращает ключ нового корневого комментария.
// maxRoot — наибольший существующий корневой ключ (пусто, если корней нет).
func NextRoot(maxRoot string) (string, error) {
	if maxRoot == "" {
		return Encode(1), nil
	}

	first, _, _ := strings.Cut(maxRoot, Separator)
	n, err := Decode(first)
	if err != nil {
		return "", err
	}

	return Encode(n + 1), nil
}

// NextChild возвращает ключ нового ответа на parent.
// maxChild — наибольший ключ среди прямых детей (пусто, если детей нет).
func NextChild(parent, maxChild string) (string, error) {
	if parent == "" {
		return "", fmt.Errorf("%w: empty parent", ErrInvalidKey)
	}

	if maxChild == "" {
		return parent + Separator + Encode(0), nil
	}

	if !strings.HasPrefix(maxChild, parent+Separator) {
		return "", fmt.Errorf("%w: %q is not a child of %q", ErrInvalidKey, maxChild, parent)
	}

	rest := strings.TrimPrefix(maxChild, parent+Separator)
	seg, _, _ := strings.Cut(rest, Separator)
	n, err := Decode(seg)
	if err != nil {
		return "", err
	}

	return parent + Separator + Encode(n+1), nil
}

// DescKey — ключ сортировки для вывода «сначала новые».
// По убыванию DescKey: ветки идут в обратном порядке, но каждый родитель — перед своим поддеревом.
func DescKey(key string) string {
	return key + descSuffix
}

// Depth — глубина ключа (корень = 0).
func Depth(key string) int {
	if key == "" {
		return 0
	}

	return strings.Count(key, Separator)
}
