package tutor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

type Options struct {
	Timeout     time.Duration
	QuizSize    int
	MaxFailures int
	Cooldown    time.Duration
}

func DefaultOptions() Options {
	return Options{
		Timeout:     30 * time.Second,
		QuizSize:    5,
		MaxFailures: 3,
		Cooldown:    30 * time.Second,
	}
}

// Service guards a Backend with a circuit breaker. After MaxFailures
// consecutive failures the backend is not called again until Cooldown has
// passed.
type Service struct {
	backend Backend
	opts    Options
	breaker *gobreaker.CircuitBreaker
	log     *slog.Logger
}

func NewService(b Backend, opts Options, log *slog.Logger) *Service {
	def := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.QuizSize <= 0 {
		opts.QuizSize = def.QuizSize
	}
	if opts.MaxFailures <= 0 {
		opts.MaxFailures = def.MaxFailures
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = def.Cooldown
	}
	if log == nil {
		log = slog.Default()
	}
	s := &Service{backend: b, opts: opts, log: log}
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "tutor",
		MaxRequests: 1,
		Timeout:     opts.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(opts.MaxFailures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return s
}

// State reports the breaker state.
func (s *Service) State() gobreaker.State { return s.breaker.State() }

// Ask returns the tutor's reply to message. It never fails: an unreachable
// backend yields Unavailable and an empty answer yields EmptyReply.
func (s *Service) Ask(ctx context.Context, history []Message, message string) string {
	if s.backend == nil {
		return Unavailable
	}
	out, err := s.call(ctx, func(ctx context.Context) (string, error) {
		return s.backend.Chat(ctx, SystemInstruction, history, message)
	})
	if err != nil {
		s.log.Warn("tutor reply failed", "error", err, "state", s.breaker.State().String())
		return Unavailable
	}
	if strings.TrimSpace(out) == "" {
		return EmptyReply
	}
	return out
}

// Quiz returns generated questions about topic, or nil when generation or
// validation fails.
func (s *Service) Quiz(ctx context.Context, topic string) []Question {
	if s.backend == nil {
		return nil
	}
	raw, err := s.call(ctx, func(ctx context.Context) (string, error) {
		return s.backend.Quiz(ctx, QuizPrompt(topic, s.opts.QuizSize))
	})
	if err != nil {
		s.log.Warn("quiz generation failed", "topic", topic, "error", err)
		return nil
	}
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	qs, err := ParseQuiz([]byte(raw))
	if err != nil {
		s.log.Warn("quiz rejected", "topic", topic, "error", err)
		return nil
	}
	return qs
}

func (s *Service) call(ctx context.Context, fn func(context.Context) (string, error)) (string, error) {
	res, err := s.breaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
		return fn(ctx)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}
