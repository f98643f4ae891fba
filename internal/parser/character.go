// Package parser extracts records from Rick and Morty API response bodies.
package parser

import (
	"errors"
	"fmt"

	"github.com/raphaelgruber/mortydex/internal/models"
	"github.com/tidwall/gjson"
)

// ErrEpisodeDecode is returned when an episode body has no usable name.
var ErrEpisodeDecode = errors.New("decode episode")

// ParseCharacters turns a character search body into Character records.
// A body without a "results" array yields an empty slice, never an error.
func ParseCharacters(body []byte) []models.Character {
	characters := []models.Character{}

	if !gjson.ValidBytes(body) {
		return characters
	}

	results := gjson.GetBytes(body, "results")
	if !results.IsArray() {
		return characters
	}

	results.ForEach(func(_, item gjson.Result) bool {
		characters = append(characters, parseCharacter(item))
		return true
	})

	return characters
}

func parseCharacter(item gjson.Result) models.Character {
	c := models.NewCharacter()

	c.Name = stringOr(item.Get("name"), models.Unknown)
	c.Status = stringOr(item.Get("status"), models.Unknown)
	c.Species = stringOr(item.Get("species"), models.UnknownSpecies)

	if origin := item.Get("origin"); origin.IsObject() {
		c.Origin = stringOr(origin.Get("name"), models.Unknown)
	}

	if episodes := item.Get("episode"); episodes.IsArray() {
		for _, ep := range episodes.Array() {
			if ep.Type == gjson.String {
				c.Episodes = append(c.Episodes, ep.String())
			} else {
				c.Episodes = append(c.Episodes, ep.Raw)
			}
		}
	}

	return c
}

// ParseEpisodeName returns the "name" field of a single episode body.
// There is no fallback: a malformed body or missing name is an error.
func ParseEpisodeName(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: malformed JSON", ErrEpisodeDecode)
	}

	name := gjson.GetBytes(body, "name")
	if !name.Exists() {
		return "", fmt.Errorf("%w: missing name field", ErrEpisodeDecode)
	}
	if name.Type != gjson.String {
		return "", fmt.Errorf("%w: name is %s, not a string", ErrEpisodeDecode, name.Type)
	}

	return name.String(), nil
}

// stringOr returns r as a string when it is a JSON string, else def.
func stringOr(r gjson.Result, def string) string {
	if r.Type != gjson.String {
		return def
	}
	return r.String()
}
