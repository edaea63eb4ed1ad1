package agent

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/markdave123-py/VectorVault/internal/core"
)

// CLIRunner answers questions by spawning a coding-agent CLI in headless
// print mode with NDJSON streaming output. Every raw output line is written
// to a log file so nothing is lost when parsing fails.
type CLIRunner struct {
	Cmd     string
	Model   string
	Timeout time.Duration
	LogDir  string
}

// Result aggregates everything extracted from one CLI invocation.
type Result struct {
	AnswerText   string
	ThinkingText string
	Model        string
	SessionID    string
	DurationMS   int64
}

type cliEvent struct {
	Type       string `json:"type"`
	Subtype    string `json:"subtype"`
	SessionID  string `json:"session_id"`
	Model      string `json:"model"`
	DurationMS int64  `json:"duration_ms"`
	Message    struct {
		Content []contentBlock `json:"content"`
	} `json:"message"`
}

type contentBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Thinking string `json:"thinking"`
}

func NewCLIRunner(cmd, model string, timeout time.Duration) *CLIRunner {
	if cmd == "" {
		cmd = "agent"
	}
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &CLIRunner{
		Cmd:     cmd,
		Model:   model,
		Timeout: timeout,
		LogDir:  filepath.Join("logs", "agent"),
	}
}

// BuildCommand returns the argument list for one headless invocation. The
// trailing "-" makes the CLI read the prompt from stdin.
func (r *CLIRunner) BuildCommand() []string {
	args := []string{
		"-p",
		"--output-format", "stream-json",
	}
	if r.Model != "" {
		args = append(args, "--model", r.Model)
	}
	args = append(args, "-")
	return args
}

// Generate implements core.LLMProvider by piping the combined prompt to the
// CLI and assembling assistant text from the event stream.
func (r *CLIRunner) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	prompt := userPrompt
	if systemPrompt != "" {
		prompt = systemPrompt + "\n\n" + userPrompt
	}
	res, err := r.Run(ctx, prompt)
	if err != nil {
		return "", err
	}
	return res.AnswerText, nil
}

// Run executes the CLI with the given prompt and parses its NDJSON output.
func (r *CLIRunner) Run(ctx context.Context, prompt string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	rawLog, logPath, err := r.openRawLog()
	if err != nil {
		// Logging is best effort; the run proceeds without it.
		log.Printf("agent raw log unavailable: %v", err)
		rawLog = nil
	} else {
		defer rawLog.Close()
		log.Printf("agent raw output logged to %s", logPath)
	}

	args := r.BuildCommand()
	cmd := exec.CommandContext(ctx, r.Cmd, args...)
	cmd.Stdin = strings.NewReader(prompt)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("agent stdout pipe: %w", err)
	}
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if rawLog != nil {
		fmt.Fprintf(rawLog, "# agent cli invocation\n# time: %s\n# cmd: %s %s\n# prompt length: %d chars\n\n",
			time.Now().UTC().Format(time.RFC3339), r.Cmd, strings.Join(args, " "), len(prompt))
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start agent cli %q: %w", r.Cmd, err)
	}

	result := &Result{}
	var answer, thinking strings.Builder

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if rawLog != nil {
			fmt.Fprintln(rawLog, line)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		var ev cliEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			log.Printf("agent: skipping unparseable output line: %.200s", line)
			continue
		}
		applyEvent(&ev, result, &answer, &thinking)
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Wait()
		return nil, fmt.Errorf("read agent output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("agent cli timed out after %s", r.Timeout)
		}
		return nil, fmt.Errorf("agent cli failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	result.AnswerText = answer.String()
	result.ThinkingText = thinking.String()
	if result.DurationMS == 0 {
		result.DurationMS = time.Since(start).Milliseconds()
	}

	if rawLog != nil {
		fmt.Fprintf(rawLog, "\n# --- ANSWER ---\n%s\n# --- END ANSWER ---\n", result.AnswerText)
	}
	log.Printf("agent cli completed in %dms (answer length %d)", result.DurationMS, len(result.AnswerText))
	return result, nil
}

// applyEvent folds one parsed event into the accumulated result.
func applyEvent(ev *cliEvent, result *Result, answer, thinking *strings.Builder) {
	if result.SessionID == "" && ev.SessionID != "" {
		result.SessionID = ev.SessionID
	}

	switch ev.Type {
	case "system":
		if ev.Subtype == "init" && ev.Model != "" {
			result.Model = ev.Model
		}
	case "assistant":
		for _, block := range ev.Message.Content {
			switch block.Type {
			case "text":
				answer.WriteString(block.Text)
			case "thinking":
				if block.Thinking != "" {
					thinking.WriteString(block.Thinking)
				} else {
					thinking.WriteString(block.Text)
				}
			}
		}
	case "result":
		if ev.DurationMS > 0 {
			result.DurationMS = ev.DurationMS
		}
	}
}

func (r *CLIRunner) openRawLog() (*os.File, string, error) {
	if err := os.MkdirAll(r.LogDir, 0o755); err != nil {
		return nil, "", err
	}
	model := r.Model
	if model == "" {
		model = "default"
	}
	safe := strings.NewReplacer("/", "_", " ", "_").Replace(model)
	path := filepath.Join(r.LogDir, fmt.Sprintf("%s_%s.log", safe, time.Now().UTC().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

var _ core.LLMProvider = (*CLIRunner)(nil)
