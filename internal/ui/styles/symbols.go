package styles

// Symbols holds the glyphs used to render favorites and checkboxes
type Symbols struct {
	Favorite    string
	NotFavorite string
	Checked     string
	Unchecked   string
	Cursor      string
}

var defaultSymbols = Symbols{
	Favorite:    "★",
	NotFavorite: "☆",
	Checked:     "[x]",
	Unchecked:   "[ ]",
	Cursor:      "›",
}

var asciiSymbols = Symbols{
	Favorite:    "*",
	NotFavorite: " ",
	Checked:     "[x]",
	Unchecked:   "[ ]",
	Cursor:      ">",
}

var currentSymbols = defaultSymbols

// SetASCII switches between the unicode and the plain ASCII symbol set
func SetASCII(enabled bool) {
	if enabled {
		currentSymbols = asciiSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// FavoriteSymbol returns the unstyled star for a favorite flag
func FavoriteSymbol(favorite bool) string {
	if favorite {
		return currentSymbols.Favorite
	}
	return currentSymbols.NotFavorite
}

// FormatFavorite returns the styled star for a favorite flag
func FormatFavorite(favorite bool) string {
	if favorite {
		return FavoriteStyle.Render(currentSymbols.Favorite)
	}
	return MutedStyle.Render(currentSymbols.NotFavorite)
}

// Checkbox returns the checkbox glyph for a flag
func Checkbox(checked bool) string {
	if checked {
		return currentSymbols.Checked
	}
	return currentSymbols.Unchecked
}
