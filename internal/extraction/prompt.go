package extraction

import "fmt"

// fieldPromptFormat is the instruction sent to the field-extraction model.
// The category list is guidance to the model, not a validated constraint:
// the sanitizer accepts any string so that an off-list category never costs
// an otherwise-usable amount or date.
const fieldPromptFormat = `You are a receipt parser. Your job is to extract the total amount paid, the purchase date (in YYYY-MM-DD format), and a general category (from a fixed list) from the text of a shopping receipt.

Valid categories: ["Groceries", "Electronics", "Clothing", "Dining", "Pharmacy", "Other"]

Return only a valid JSON object like this:
{
  "amount": 23.45,
  "date": "2025-08-17",
  "category": "Groceries"
}

If any value is missing, return null or 0.

Receipt text:
"""
%s
"""`

func buildFieldPrompt(rawText string) string {
	return fmt.Sprintf(fieldPromptFormat, rawText)
}

// insightsPromptFormat asks for a narrative, not structured output, so the
// calling provider runs it at a non-zero temperature.
const insightsPromptFormat = `You are a helpful financial assistant. Given the following summary of a user's expenses by category for %s %d, provide 2-3 smart insights or tips on how the user could better manage their spending. Be polite, practical, and insightful.

Monthly Expenses:
%s

Respond with a short summary of your analysis.`
