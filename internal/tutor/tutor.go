// Package tutor connects the labs to a generative model: a physics tutor
// chat and multiple-choice quiz generation. Every failure of the model is
// absorbed here and replaced by a fixed reply or an empty quiz.
package tutor

import (
	"context"
	"errors"
	"fmt"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Message struct {
	Role Role
	Text string
}

const (
	Greeting = `Asalam-o-Alaikum! I am your Physics companion. Ask me anything about Inter Part 1 Physics (e.g., "Explain Torque" or "Why does a projectile follow a parabolic path?").`

	// EmptyReply is returned when the model answers with no text.
	EmptyReply = "I'm sorry, I couldn't generate an explanation right now."

	// Unavailable is returned when the model could not be reached.
	Unavailable = "Sorry, I'm having trouble connecting to the Physics Lab server. Please check your connection."
)

const SystemInstruction = `You are a friendly and encouraging Physics Tutor for Pakistani Intermediate (FSc) students.
Your goal is to help them understand concepts from the Physics Book I and II (Punjab/Federal Board).

Guidelines:
1. Use simple English.
2. You can use relevant local examples (e.g., cricket, traffic in Lahore/Karachi) to explain physics concepts.
3. If a student asks in Roman Urdu, reply in a mix of English and simple explanations.
4. Focus on conceptual clarity.
5. Be concise.

Topics likely to be discussed: Vectors, Equilibrium, Force and Motion, Work and Energy, Circular Motion.`

var (
	ErrNoAPIKey      = errors.New("tutor: no API key")
	ErrMalformedQuiz = errors.New("tutor: malformed quiz")
)

// Backend is a generative model. Chat answers message given the earlier
// turns; Quiz returns the raw JSON array produced for prompt.
type Backend interface {
	Chat(ctx context.Context, system string, history []Message, message string) (string, error)
	Quiz(ctx context.Context, prompt string) (string, error)
}

// QuizPrompt asks for n questions about topic.
func QuizPrompt(topic string, n int) string {
	return fmt.Sprintf("Generate %d multiple choice questions (MCQs) about %q suitable for Pakistani FSc Part 1 Physics students.\nInclude difficult conceptual questions.", n, topic)
}
