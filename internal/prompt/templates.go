package prompt

import (
	"fmt"

	"pagewise/internal/content"
)

// FallbackAnswer is returned by ask when the user has no content at all.
const FallbackAnswer = "Sorry, there is no page or note content to answer your question."

func Summarize(text string) string {
	return "Summarize the following text in 2-4 sentences:\n\n" + text
}

func Ask(context, question string) string {
	return fmt.Sprintf("Based on the following context, answer the question.\n\n%s\n\nQuestion: %s", context, question)
}

func Compose(context, requirement string) string {
	return fmt.Sprintf("Based on the following context, create content to fulfill the requirement.\n\n%s\n\nRequirement: %s", context, requirement)
}

func Title(answer string) string {
	return "Create a short title for this answer. Return only the title.\n\n" + answer
}

// EditStructured asks for the modified document alone. The original content is
// passed verbatim.
func EditStructured(original, requirement string) string {
	return fmt.Sprintf("Edit this swagger document. Return only the modified document reflecting the changes requested in the Requirement, with no prose or reasoning.\n\nSwagger content:\n%s\n\nRequirement: %s", original, requirement)
}

func Edit(context string, target content.Document, requirement string) string {
	return fmt.Sprintf("Based on the provided context and the current content of the page you are editing, modify it to fulfill the requirement.\n\n%s\n\nCurrent content of the page %q (ID: %s):\n%s\n\nRequirement: %s",
		context, target.Title, target.ID, target.Content, requirement)
}
