// Package card renders songs into text cards and parses cards back.
//
// A card is a short text document with one "name: value" line per scalar
// field, bulleted genre and tag lists, and free-text note sections. Cards are
// rendered from a template whose {slot} placeholders are fixed (see Slots):
//
//	tmpl, err := card.LoadTemplate("templates/chanson_template.md")
//	if err != nil {
//		return err // errors.Is(err, model.ErrConfiguration)
//	}
//	text := tmpl.Render(song, card.DefaultNotes())
//
// Parse is the inverse for the structured fields. Rendering then parsing a
// song recovers title, artist, bpm, key, energy, genres and tags unchanged.
package card
