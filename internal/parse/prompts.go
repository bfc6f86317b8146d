package parse

import (
	"fmt"
	"strings"
	"time"
)

// PromptConfig carries the versioned prompt text used by the text extractor.
// Keeping the prompt as data rather than a compile-time constant lets
// deployments tune it without a rebuild.
type PromptConfig struct {
	Version string
	System  string
}

// DefaultPrompts returns the built-in prompt configuration.
func DefaultPrompts() PromptConfig {
	return PromptConfig{
		Version: "v1",
		System:  defaultSystemPrompt(),
	}
}

func defaultSystemPrompt() string {
	categories := `"` + strings.Join(CategoryNames, `","`) + `"`

	return fmt.Sprintf(`You are an expense parser.
Return *only* valid JSON for each request. No extra text.

Goal: extract a single expense from a short sentence.
Output JSON with keys:
{
  "amount": number,
  "currency": "INR",
  "date": "YYYY-MM-DD",        // normalized using the provided timezone
  "category": string,          // choose from the allowed list only
  "subcategory": string|null,
  "description": string|null,
  "merchant": string|null,
  "confidence": number         // 0..1 rough confidence in your extraction
}

Rules:
- If amount has "rs", "rupees", assume INR. Amount must be a number (no commas or currency symbol).
- Date: Resolve relative terms like "today", "yesterday", "last Friday" with the provided timezone.
- Category MUST be one of:
  [%s]
- If unsure, use "Others" and lower the confidence.
- Subcategory is optional (e.g., "Sandwich").
- Merchant is optional (e.g., "Subway", "Starbucks") if obvious.
- Description: short human-friendly summary.

Return JSON only. No markdown, no backticks.`, categories)
}

// userPayload embeds the request context and raw text into the user message
// of the chat completion.
func userPayload(text, timezone, currency, locale string) string {
	return fmt.Sprintf("Timezone: %s\nCurrency: %s\nLocale: %s\n\nText: %q\n", timezone, currency, locale, text)
}

// buildVoicePrompt assembles the voice extraction prompt. Today, yesterday
// and last week are embedded as literal computed dates so the model never
// reaches for a stale hardcoded year.
func buildVoicePrompt(transcript string, today time.Time) string {
	yesterday := today.AddDate(0, 0, -1).Format(isoDate)
	lastWeek := today.AddDate(0, 0, -7).Format(isoDate)
	lastMonth := today.AddDate(0, -1, 0).Format(isoDate)
	todayStr := today.Format(isoDate)

	return fmt.Sprintf(`You are an intelligent expense parsing assistant. Parse the following voice input into a structured expense format with high accuracy.

CURRENT DATE CONTEXT:
- Today's date is: %s
- Yesterday's date is: %s
- Last week's date is: %s

Voice Input: %q

CATEGORY MAPPING (be very specific):
- 1 (Food & Dining): restaurants, cafes, food delivery, groceries, dining out, lunch, dinner, breakfast, snacks, food items
- 2 (Transportation): fuel, gas, petrol, diesel, taxi, uber, bus, train, metro, parking, toll, car maintenance, bike, scooter
- 3 (Shopping): clothes, electronics, gadgets, accessories, fashion, retail stores, online shopping, malls, department stores
- 4 (Entertainment): movies, cinema, games, streaming services, Netflix, Amazon Prime, sports events, concerts, shows, amusement parks
- 5 (Healthcare): medicines, doctor visits, hospital, medical tests, pharmacy, health insurance, dental, optical, fitness
- 6 (Education): books, courses, tuition, school fees, college fees, training, workshops, online courses, educational materials
- 7 (Utilities): electricity, water, gas, internet, phone bills, mobile recharge, broadband, cable TV, maintenance
- 8 (Travel): flights, hotels, vacation, holiday, travel packages, tourism, sightseeing, accommodation
- 9 (Business): office supplies, business meetings, client expenses, work-related travel, professional services
- 10 (Other): anything that doesn't fit above categories

DATE PARSING RULES (CRITICAL - USE CURRENT DATE CONTEXT ABOVE):
- "yesterday" = %s
- "today" = %s
- "last week" = %s
- "last month" = %s (approximately)
- "Monday", "Tuesday", etc. = most recent occurrence of that day
- "this week" = within last 7 days from today
- "this month" = within current month
- If no date mentioned, use today's date: %s

Extract and return in this exact JSON format:
{
    "name": "clear expense name",
    "amount": 0.0,
    "categoryId": 1,
    "date": "YYYY-MM-DD",
    "description": "detailed description"
}

EXAMPLES WITH CURRENT DATES:
Input: "I spent 500 rupees on lunch yesterday at McDonald's"
Output: {"name": "Lunch at McDonald's", "amount": 500.0, "categoryId": 1, "date": "%s", "description": "Lunch at McDonald's restaurant"}

Input: "Bought petrol for 2000 rupees today"
Output: {"name": "Petrol", "amount": 2000.0, "categoryId": 2, "date": "%s", "description": "Fuel purchase for vehicle"}

CRITICAL RULES:
1. ALWAYS use the current date context provided above
2. Be very specific with category mapping based on the examples above
3. Parse dates accurately using the date rules and current date context
4. Extract amounts carefully (look for numbers followed by currency words)
5. Create descriptive names that clearly identify the expense
6. Only return valid JSON, no additional text or explanations
7. NEVER use hardcoded years - always calculate from the current date context`,
		todayStr, yesterday, lastWeek,
		transcript,
		yesterday, todayStr, lastWeek, lastMonth, todayStr,
		yesterday, todayStr)
}
