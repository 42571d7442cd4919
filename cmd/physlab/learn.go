package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/automation"
	"github.com/san-kum/physlab/internal/lab"
	"github.com/san-kum/physlab/internal/logging"
	"github.com/san-kum/physlab/internal/storage"
	"github.com/san-kum/physlab/internal/syllabus"
	"github.com/san-kum/physlab/internal/tutor"
)

func stderrLogger() *slog.Logger {
	return logging.New(os.Stderr, logging.LevelFromEnv(logLevel))
}

func showSyllabus(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		ch, err := syllabus.Find(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Chapter %d: %s (grade %d)\n", ch.ID, ch.Title, ch.Grade)
		fmt.Printf("%s\n\ntopics:\n", ch.Description)
		for _, t := range ch.Topics {
			fmt.Printf("  - %s\n", t)
		}
		if ch.HasLab() {
			fmt.Printf("\nlab: %s (physlab --lab %s)\n", ch.LabLabel, ch.Lab)
		}
		return nil
	}

	chapters, err := syllabus.Chapters()
	if grade != 0 {
		chapters, err = syllabus.ByGrade(grade)
	}
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CH\tGRADE\tTITLE\tLAB")
	for _, ch := range chapters {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", ch.ID, ch.Grade, ch.Title, ch.Lab)
	}
	return w.Flush()
}

func runTutor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	conv := tutor.NewConversation(newTutor(ctx, cfg, stderrLogger()))
	fmt.Printf("tutor: %s\n", tutor.Greeting)
	fmt.Println("(type exit to leave)")
	fmt.Println()

	if len(args) == 1 {
		ch, err := syllabus.Find(args[0])
		if err != nil {
			return err
		}
		prompt := ch.ExplainPrompt()
		fmt.Printf("you: %s\n", prompt)
		reply, _ := conv.Send(ctx, prompt)
		fmt.Printf("tutor: %s\n\n", reply)
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you: ")
		if !in.Scan() {
			fmt.Println()
			return in.Err()
		}
		text := strings.TrimSpace(in.Text())
		if text == "exit" || text == "quit" {
			return nil
		}
		reply, ok := conv.Send(ctx, text)
		if !ok {
			continue
		}
		fmt.Printf("tutor: %s\n\n", reply)
		if ctx.Err() != nil {
			return nil
		}
	}
}

func runQuiz(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	topic := strings.Join(args, " ")
	if ch, err := syllabus.Find(topic); err == nil {
		topic = ch.Title
	}
	ctx := cmd.Context()
	svc := newTutor(ctx, cfg, stderrLogger())

	fmt.Printf("generating a quiz on %s...\n", topic)
	questions := svc.Quiz(ctx, topic)
	if len(questions) == 0 {
		return fmt.Errorf("could not generate a quiz on %q, check your connection or API key", topic)
	}
	return askQuiz(tutor.NewSession(topic, questions), os.Stdin, os.Stdout)
}

// askQuiz runs a session over plain text: each question is answered with
// its option number.
func askQuiz(s *tutor.Session, r io.Reader, w io.Writer) error {
	in := bufio.NewScanner(r)
	for !s.Done() {
		q, _ := s.Current()
		fmt.Fprintf(w, "\nQuestion %d of %d\n%s\n", s.Index()+1, s.Len(), q.Question)
		for i, opt := range q.Options {
			fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
		}
		for {
			fmt.Fprint(w, "answer: ")
			if !in.Scan() {
				return in.Err()
			}
			n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
			if err == nil && s.Select(n-1) {
				break
			}
			fmt.Fprintf(w, "pick 1-%d\n", len(q.Options))
		}
		correct, _ := s.Check()
		if correct {
			fmt.Fprintln(w, "correct!")
		} else {
			fmt.Fprintf(w, "wrong, the answer is %d) %s\n", q.CorrectAnswer+1, q.Options[q.CorrectAnswer])
		}
		if q.Explanation != "" {
			fmt.Fprintln(w, q.Explanation)
		}
		s.Next()
	}
	fmt.Fprintf(w, "\nYou scored %d out of %d\n", s.Score(), s.Len())
	if s.Passed() {
		fmt.Fprintln(w, "Great job!")
	} else {
		fmt.Fprintln(w, "Keep practicing!")
	}
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	log := stderrLogger()
	runner := &automation.Runner{
		Host:  lab.NewHost(lab.NewRegistry(), log),
		Store: storage.New(cfg.DataDir),
		Log:   log,
	}
	results, err := runner.RunScenario(cmd.Context(), scenario)
	for i, res := range results {
		fmt.Printf("step %d: %s t=%.3fs %s\n", i+1, res.Lab, res.Clock.Time, res.Clock.Phase)
		for _, q := range res.Derived {
			fmt.Printf("  %s\n", q)
		}
		if res.RunID != "" {
			fmt.Printf("  saved run %s\n", res.RunID)
		}
		if res.SVG != "" {
			fmt.Printf("  wrote %s\n", res.SVG)
		}
	}
	if err != nil {
		return fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	fmt.Printf("scenario %s: %d steps passed\n", scenario.Name, len(results))
	return nil
}
