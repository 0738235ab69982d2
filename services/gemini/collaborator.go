package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/CHYou2Sef/BridgeEd/model"
)

// TutorFallbackReply is returned when the model produces an empty tutor reply
const TutorFallbackReply = "I'm sorry, I couldn't process that."

var exerciseSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"question": {Type: "string"},
		"type":     {Type: "string", Description: `Return either "multiple-choice" or "open-ended"`},
		"options": {
			Type:        "array",
			Items:       &Schema{Type: "string"},
			Description: "Required if type is multiple-choice, otherwise empty.",
		},
		"correct_answer": {Type: "string", Description: "Required for multiple-choice."},
	},
	Required: []string{"question", "type"},
}

var gradeSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"score":      {Type: "number"},
		"feedback":   {Type: "string"},
		"is_correct": {Type: "boolean"},
	},
	Required: []string{"score", "feedback", "is_correct"},
}

// Translate translates text to the target language. An empty model reply
// falls back to the source text so the caller always has something to show.
func (c *Client) Translate(ctx context.Context, text string, target model.Language) (string, error) {
	prompt := fmt.Sprintf("Translate the following text to %s. Only provide the translated text: %q", target, text)

	reply, err := c.GenerateText(ctx, prompt)
	if err != nil {
		return "", &model.CollaboratorError{Op: "translate", Err: err}
	}

	if reply == "" {
		return text, nil
	}
	return trimQuotes(reply), nil
}

// GenerateExercise asks the model for one practice exercise for a course.
// The payload is validated before use; unknown types are rejected.
func (c *Client) GenerateExercise(ctx context.Context, title, description string, lang model.Language) (*model.Exercise, error) {
	prompt := fmt.Sprintf(
		"Generate a challenging academic exercise for the course %q described as %q. The response must be in JSON format matching the schema. Respond in %s.",
		title, description, lang,
	)

	contents := []Content{
		{Role: "user", Parts: []Part{{Text: prompt}}},
	}

	resp, err := c.GenerateContent(ctx, contents, WithJSONSchema(exerciseSchema))
	if err != nil {
		return nil, &model.CollaboratorError{Op: "generate", Err: err}
	}

	var exercise model.Exercise
	if err := json.Unmarshal([]byte(resp.ExtractText()), &exercise); err != nil {
		return nil, &model.CollaboratorError{Op: "generate", Err: fmt.Errorf("unparseable exercise payload: %w", err)}
	}

	if err := exercise.Validate(); err != nil {
		return nil, &model.CollaboratorError{Op: "generate", Err: err}
	}

	if exercise.ID == "" {
		exercise.ID = uuid.New().String()
	}

	return &exercise, nil
}

// EvaluateExercise grades a candidate answer. Scores outside [0,100] are clamped.
func (c *Client) EvaluateExercise(ctx context.Context, exercise *model.Exercise, answer string, lang model.Language) (*model.GradeResult, error) {
	prompt := fmt.Sprintf(
		"Evaluate this answer for the exercise:\nQ: %s\nUser Answer: %s\n\nProvide a score (0-100) and detailed pedagogical feedback in %s. Respond in JSON.",
		exercise.Question, answer, lang,
	)

	contents := []Content{
		{Role: "user", Parts: []Part{{Text: prompt}}},
	}

	resp, err := c.GenerateContent(ctx, contents, WithJSONSchema(gradeSchema))
	if err != nil {
		return nil, &model.CollaboratorError{Op: "evaluate", Err: err}
	}

	var result model.GradeResult
	if err := json.Unmarshal([]byte(resp.ExtractText()), &result); err != nil {
		return nil, &model.CollaboratorError{Op: "evaluate", Err: fmt.Errorf("unparseable grade payload: %w", err)}
	}

	result.ClampScore()
	return &result, nil
}

// TutorReply sends the full ordered conversation history and returns the
// model's reply. An empty reply falls back to a fixed apology string.
func (c *Client) TutorReply(ctx context.Context, history []model.ChatMessage, lang model.Language) (string, error) {
	instruction := fmt.Sprintf(`You are BridgeEd's Multilingual AI Tutor.
Current language: %s.
If context is Western: focus on critical thinking and project collaboration.
If context is Arab World: focus on scientific rigor within cultural values.
Answer in %s.`, lang, lang)

	contents := make([]Content, 0, len(history))
	for _, msg := range history {
		role := "user"
		if msg.Role == model.MessageRoleModel {
			role = "model"
		}
		contents = append(contents, Content{Role: role, Parts: []Part{{Text: msg.Text}}})
	}

	resp, err := c.GenerateContent(ctx, contents, WithSystemInstruction(instruction))
	if err != nil {
		return "", &model.CollaboratorError{Op: "tutor", Err: err}
	}

	reply := resp.ExtractText()
	if reply == "" {
		return TutorFallbackReply, nil
	}
	return reply, nil
}

// trimQuotes strips a single pair of surrounding double quotes the model
// sometimes echoes back around translations
func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
