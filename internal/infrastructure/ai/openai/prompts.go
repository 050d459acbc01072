package openai

import (
	"fmt"
	"strings"

	"github.com/forkful/forkful/internal/ports/outbound"
)

const generationSystemPrompt = `You are a professional chef and recipe developer.
You respond with valid JSON only. No markdown, no commentary, no code fences.
Respond with a JSON array of recipe objects. Each object has exactly these fields:
"name" (string), "description" (string, one or two sentences),
"ingredients" (array of strings with quantities),
"instructions" (array of strings, one step each),
"cooking_time_minutes" (integer), "difficulty" ("easy", "medium" or "hard"),
"cuisine" (string), "servings" (integer).`

const identifySystemPrompt = `Identify the dish in this photo.
Respond with valid JSON only, no markdown. A single object with exactly these fields:
"name" (string), "description" (string, one or two sentences),
"cuisine" (string), "confidence" (number between 0 and 1),
"ingredients" (array of strings with quantities, the likely ingredients),
"instructions" (array of strings, one step each, a plausible way to prepare it),
"cooking_time_minutes" (integer), "difficulty" ("easy", "medium" or "hard"),
"servings" (integer).`

// buildGenerationPrompt assembles the user message for recipe
// generation, folding the optional constraints into plain sentences.
func buildGenerationPrompt(ingredients []string, opts outbound.GenerateOptions, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create %d distinct recipes using these ingredients: %s.", count, strings.Join(ingredients, ", "))
	b.WriteString(" Common pantry staples (salt, pepper, oil, water) may be assumed.")

	if opts.Cuisine != "" {
		fmt.Fprintf(&b, " The cuisine must be %s.", opts.Cuisine)
	}
	if opts.Difficulty != "" {
		fmt.Fprintf(&b, " The difficulty must be %s.", opts.Difficulty)
	}
	if opts.MaxCookingTime > 0 {
		fmt.Fprintf(&b, " Total cooking time must not exceed %d minutes.", opts.MaxCookingTime)
	}

	return b.String()
}

func buildImagePrompt(name, description string) string {
	return fmt.Sprintf("A professional food photograph of %s. %s Overhead shot, natural lighting, styled plating.", name, description)
}
