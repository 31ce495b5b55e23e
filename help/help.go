// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package help holds the text of the help overlay shown by the browser and
// terminal frontends, in English, French and German.
//
// Translations live in a private golang.org/x/text message catalog; the
// language is picked from an Accept-Language header or a POSIX locale.
package help

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Entry is one line of the help overlay.
type Entry struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Keys of the overlay lines, in display order.
const (
	KeyDraw     = "help.draw"
	KeyColor    = "help.color"
	KeyEraser   = "help.eraser"
	KeyClear    = "help.clear"
	KeyDownload = "help.download"
	KeyUndo     = "help.undo"
	KeyRedo     = "help.redo"
	KeyClose    = "help.close"

	keyTitle = "help.title"
)

var order = []string{KeyDraw, KeyColor, KeyEraser, KeyClear, KeyDownload, KeyUndo, KeyRedo, KeyClose}

// Supported lists the available languages; the first one is the fallback.
var Supported = []language.Tag{language.English, language.French, language.German}

var messages = map[language.Tag]map[string]string{
	language.English: {
		keyTitle:    "How to use the pixel art editor",
		KeyDraw:     "Press and drag on the canvas to paint grid cells.",
		KeyColor:    "Pick a color to paint with. Picking a color turns the eraser off.",
		KeyEraser:   "Eraser paints cells with the background color.",
		KeyClear:    "Clear resets the whole canvas to white. Clear can be undone.",
		KeyDownload: "Download saves the canvas as pixel-art.png.",
		KeyUndo:     "Undo steps back through your edits.",
		KeyRedo:     "Redo re-applies an undone edit until you draw something new.",
		KeyClose:    "Close this help with the x or by clicking outside it.",
	},
	language.French: {
		keyTitle:    "Utiliser l'éditeur de pixel art",
		KeyDraw:     "Cliquez et glissez sur la toile pour peindre les cases.",
		KeyColor:    "Choisissez une couleur. Choisir une couleur désactive la gomme.",
		KeyEraser:   "La gomme peint les cases avec la couleur de fond.",
		KeyClear:    "Effacer remet toute la toile en blanc. Effacer peut être annulé.",
		KeyDownload: "Télécharger enregistre la toile sous pixel-art.png.",
		KeyUndo:     "Annuler revient en arrière dans vos modifications.",
		KeyRedo:     "Rétablir réapplique une modification annulée tant que vous ne dessinez rien de nouveau.",
		KeyClose:    "Fermez l'aide avec le x ou en cliquant à l'extérieur.",
	},
	language.German: {
		keyTitle:    "So benutzt du den Pixel-Art-Editor",
		KeyDraw:     "Auf der Leinwand drücken und ziehen, um Rasterzellen zu malen.",
		KeyColor:    "Wähle eine Farbe. Eine Farbwahl schaltet den Radierer aus.",
		KeyEraser:   "Der Radierer malt Zellen in der Hintergrundfarbe.",
		KeyClear:    "Leeren setzt die ganze Leinwand auf Weiß. Leeren lässt sich rückgängig machen.",
		KeyDownload: "Herunterladen speichert die Leinwand als pixel-art.png.",
		KeyUndo:     "Rückgängig geht schrittweise durch deine Änderungen zurück.",
		KeyRedo:     "Wiederholen stellt eine rückgängig gemachte Änderung wieder her, bis du neu zeichnest.",
		KeyClose:    "Schließe die Hilfe mit dem x oder durch einen Klick daneben.",
	},
}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(Supported)
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(Supported[0]))
	for tag, msgs := range messages {
		for key, text := range msgs {
			if err := b.SetString(tag, key, text); err != nil {
				panic("help: " + err.Error())
			}
		}
	}
	return b
}

// Match picks the best supported language for an Accept-Language header
// value. Empty or malformed input yields English.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}

// MatchLocale picks the best supported language for a POSIX locale such as
// "fr_FR.UTF-8", as found in $LANG.
func MatchLocale(locale string) language.Tag {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	return Match(strings.ReplaceAll(locale, "_", "-"))
}

// Title returns the overlay heading in the given language.
func Title(tag language.Tag) string {
	return printer(tag).Sprintf(message.Key(keyTitle, messages[Supported[0]][keyTitle]))
}

// Lines returns the overlay lines in display order.
func Lines(tag language.Tag) []Entry {
	p := printer(tag)
	out := make([]Entry, 0, len(order))
	for _, key := range order {
		out = append(out, Entry{Key: key, Text: p.Sprintf(message.Key(key, key))})
	}
	return out
}

func printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}
