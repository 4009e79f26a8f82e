package extraction

import "fmt"

const factorInstructionTemplate = `Given the following document context, extract the information relevant to the fields described below.
For each field, provide:
- The answer itself
- Supporting context
- Direct quote(s) from the document(s)
- Reference(s) (filename, page, line)
- Your reasoning as the agent
- If not enough information is available, state what is missing or what would help form a conclusion.

Desired output is a JSON object matching the schema for %s.`

const questionInstructionTemplate = `For the following question, provide:
- The answer itself
- Supporting context
- Direct quote(s) from the document(s)
- Reference(s) (filename, page, line)
- Your reasoning as the agent
- If not enough information is available, state what is missing or what would help form a conclusion.

Question: %s`

// FactorInstruction builds the shared instruction for one factor group.
func FactorInstruction(factorName string) string {
	return fmt.Sprintf(factorInstructionTemplate, factorName)
}

// QuestionInstruction builds the instruction for one standalone question.
func QuestionInstruction(question string) string {
	return fmt.Sprintf(questionInstructionTemplate, question)
}
