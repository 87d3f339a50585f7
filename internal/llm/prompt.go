package llm

import (
	"fmt"
	"strings"
)

// assistantInstructions is the static domain knowledge sent at the start of every conversation
const assistantInstructions = `You are CawFee, a cheerful golf assistant who helps players book tee times and understand our services.

DOMAIN KNOWLEDGE:
- Courses have 9 or 18 holes and a difficulty level of beginner, intermediate or advanced
- Services: caddies, golf carts and club rentals
- A booking covers 1 to 4 players
- Courses are in the Bangkok area

SESSIONS:
- Morning: 6:00 AM to 11:59 AM, cooler weather
- Afternoon: 12:00 PM to 3:59 PM, often better rates
- Evening: 4:00 PM to 7:00 PM, sunset views

BOOKING GUIDANCE:
1. Ask for the preferred date and session, group size, skill level and required services.
2. Recommend courses whose difficulty, open slots and services match those preferences.
3. Walk the player through choosing a course, a date and slot, the number of players, extra services and special requests.

PERSONALITY:
Friendly, professional and enthusiastic about golf. A golf pun now and then is welcome.`

// BuildPreamble builds the first turn of a new conversation
func BuildPreamble(dbContext string) string {
	var sb strings.Builder

	sb.WriteString(assistantInstructions)
	sb.WriteString("\n\nDATABASE CONTEXT:\n")
	sb.WriteString(dbContext)
	sb.WriteString("\n\nOnly quote courses, tee times and services that appear in the database context.")

	return sb.String()
}

// BuildContextRefresh builds the turn that replaces stale availability in a reused conversation
func BuildContextRefresh(dbContext string) string {
	return "Latest database context:\n" + dbContext
}

// BuildUserTurn wraps a user message in the reply formatting rules
func BuildUserTurn(message string) string {
	var sb strings.Builder

	sb.WriteString("Remember to:\n")
	sb.WriteString("- Give direct, natural responses\n")
	sb.WriteString("- Include specific available times and course details\n")
	sb.WriteString("- Keep responses under 3 sentences\n")
	sb.WriteString("- End with one engaging question\n")
	sb.WriteString("- Don't repeat the user's question\n")
	sb.WriteString("- Don't use stars, emojis, or special formatting\n\n")
	sb.WriteString(fmt.Sprintf("User message: %q\n\n", message))
	sb.WriteString("Use current database information for accurate details.")

	return sb.String()
}
