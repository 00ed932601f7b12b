package lesson

import "strings"

// Banner centers title in a line of the given width padded with fill. When
// the padding is uneven the extra fill character goes on the right for even
// widths and on the left for odd ones.
func Banner(title string, width int, fill string) string {
	n := len([]rune(title))
	if width <= n || fill == "" {
		return title
	}

	marg := width - n
	left := marg/2 + (marg & width & 1)
	right := marg - left

	return strings.Repeat(fill, left) + title + strings.Repeat(fill, right)
}
